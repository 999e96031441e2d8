package xappender

import "sync"

// Registry 是冲突注册表：写入器标识 → 它声明的命名模式。
//
// 生命周期对应外围日志上下文，由调用方显式创建并传给同一上下文内的
// 所有写入器（[WithRegistry]）。注册表自带同步，写入器的启动/停止
// 可以并发进行，与任何单个写入器的锁无关。
//
// 设计决策: 不提供包级全局注册表。冲突检测的语义边界是"共享同一
// 命名空间的一组写入器"，全局状态会把不相关上下文的模式搅在一起，
// 并让测试之间相互污染。未传入 Registry 的写入器不参与冲突检测。
type Registry struct {
	mu      sync.Mutex
	entries map[string]NamingPattern
	// index 按模式散列建立的快速路径索引，散列相同再做结构比较
	index map[uint64]map[string]struct{}
}

// NewRegistry 创建空的冲突注册表。
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]NamingPattern),
		index:   make(map[uint64]map[string]struct{}),
	}
}

// Check 比对 p 与所有已注册的模式，命中时返回持有者标识。
// p 为 nil 时恒不命中。
func (r *Registry) Check(p NamingPattern) (owner string, found bool) {
	if r == nil || p == nil {
		return "", false
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for name := range r.index[p.Hash()] {
		if existing, ok := r.entries[name]; ok && p.Equal(existing) {
			return name, true
		}
	}
	return "", false
}

// Register 以 name 为标识注册模式 p，覆盖同名旧条目。
// name 为空或 p 为 nil 时为空操作。
func (r *Registry) Register(name string, p NamingPattern) {
	if r == nil || name == "" || p == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.registerLocked(name, p)
}

// CheckAndRegister 在同一个临界区内完成比对与注册：没有结构相同的
// 已有条目时登记 name→p 并返回 ok=true；命中时返回持有者标识且不做
// 任何修改。name 为空时只比对不登记（匿名写入器不声明模式）。
//
// 拆成 Check/Register 两步会留下窗口：两个模式相同的写入器并发启动
// 时各自的 Check 都扑空，双双注册成功。
func (r *Registry) CheckAndRegister(name string, p NamingPattern) (owner string, ok bool) {
	if r == nil || p == nil {
		return "", true
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for existing := range r.index[p.Hash()] {
		if existing == name {
			continue
		}
		if pat, present := r.entries[existing]; present && p.Equal(pat) {
			return existing, false
		}
	}
	if name != "" {
		r.registerLocked(name, p)
	}
	return "", true
}

func (r *Registry) registerLocked(name string, p NamingPattern) {
	r.removeLocked(name)
	r.entries[name] = p
	h := p.Hash()
	if r.index[h] == nil {
		r.index[h] = make(map[string]struct{})
	}
	r.index[h][name] = struct{}{}
}

// Remove 按标识注销条目。不存在时为空操作。
func (r *Registry) Remove(name string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removeLocked(name)
}

func (r *Registry) removeLocked(name string) {
	p, ok := r.entries[name]
	if !ok {
		return
	}
	delete(r.entries, name)
	h := p.Hash()
	delete(r.index[h], name)
	if len(r.index[h]) == 0 {
		delete(r.index, h)
	}
}

// Len 返回当前已注册的条目数。
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
