package xappender

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// moveWatcher 监视活动文件所在目录，在活动文件被外部移动或删除时打标。
// 写入器在下一次追加前消费该标记并重新打开文件，
// 使外部 logrotate 等工具搬走文件后写入不会继续落在旧 inode 上。
//
// 监视对象是目录而非文件本身: 文件被 rename 后对文件的 watch 即失效，
// 目录级事件在文件重建后依然有效。
type moveWatcher struct {
	watcher *fsnotify.Watcher

	mu     sync.Mutex
	target string // 活动文件的绝对路径
	moved  bool

	done chan struct{}
	wg   sync.WaitGroup
}

// newMoveWatcher 创建并启动一个针对 path 的移动监视器。
func newMoveWatcher(path string) (*moveWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("xappender: resolve watch path failed: %w", err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("xappender: create watcher failed: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("xappender: watch %s failed: %w", filepath.Dir(abs), err)
	}

	mw := &moveWatcher{
		watcher: w,
		target:  abs,
		done:    make(chan struct{}),
	}
	mw.wg.Add(1)
	go mw.run()
	return mw, nil
}

func (mw *moveWatcher) run() {
	defer mw.wg.Done()
	for {
		select {
		case <-mw.done:
			return
		case ev, ok := <-mw.watcher.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
				continue
			}
			mw.mu.Lock()
			if mw.target != "" && filepath.Clean(ev.Name) == mw.target {
				mw.moved = true
			}
			mw.mu.Unlock()
		case _, ok := <-mw.watcher.Errors:
			if !ok {
				return
			}
			// 监视错误不影响写入路径，忽略。
		}
	}
}

// setTarget 更新被监视的活动文件路径并清除已有标记。
// 翻转后活动文件名变化时调用。
func (mw *moveWatcher) setTarget(path string) {
	if mw == nil {
		return
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = filepath.Clean(path)
	}
	mw.mu.Lock()
	mw.target = abs
	mw.moved = false
	mw.mu.Unlock()
}

// consumeMoved 返回并清除移动标记。
func (mw *moveWatcher) consumeMoved() bool {
	if mw == nil {
		return false
	}
	mw.mu.Lock()
	moved := mw.moved
	mw.moved = false
	mw.mu.Unlock()
	return moved
}

// Close 停止监视并等待事件协程退出。
func (mw *moveWatcher) Close() error {
	if mw == nil {
		return nil
	}
	close(mw.done)
	err := mw.watcher.Close()
	mw.wg.Wait()
	return err
}
