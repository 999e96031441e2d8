package xpolicy

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/omeyang/xroll/pkg/rolling/xappender"
)

// DefaultDateLayout %d 省略布局时使用的时间布局（按天滚动）。
const DefaultDateLayout = "2006-01-02"

type tokenKind int

const (
	tokenLiteral tokenKind = iota
	tokenDate              // %d 或 %d{layout}
	tokenIndex             // %i
)

type token struct {
	kind tokenKind
	// literal 文本或时间布局
	text string
}

// Pattern 是解析后的命名模式，负责归档文件名的生成与识别。
//
// 语法与转换符：
//
//	%d          时间段，默认布局 2006-01-02
//	%d{layout}  时间段，Go 时间布局
//	%i          固定窗口序号
//	%%          字面 %
//
// Pattern 不可变，可被多 goroutine 并发使用。
type Pattern struct {
	raw    string
	canon  string
	tokens []token
	hash   uint64
}

// NewPattern 解析命名模式。
func NewPattern(raw string) (*Pattern, error) {
	canon := strings.TrimSpace(raw)
	if canon == "" {
		return nil, ErrEmptyPattern
	}

	var tokens []token
	var literal strings.Builder
	flushLiteral := func() {
		if literal.Len() > 0 {
			tokens = append(tokens, token{kind: tokenLiteral, text: literal.String()})
			literal.Reset()
		}
	}

	for i := 0; i < len(canon); i++ {
		c := canon[i]
		if c != '%' {
			literal.WriteByte(c)
			continue
		}
		if i+1 >= len(canon) {
			return nil, fmt.Errorf("%w: dangling %% at end of %q", ErrUnknownToken, canon)
		}
		i++
		switch canon[i] {
		case '%':
			literal.WriteByte('%')
		case 'i':
			flushLiteral()
			tokens = append(tokens, token{kind: tokenIndex})
		case 'd':
			layout := DefaultDateLayout
			if i+1 < len(canon) && canon[i+1] == '{' {
				end := strings.IndexByte(canon[i+2:], '}')
				if end < 0 {
					return nil, fmt.Errorf("%w: %q", ErrUnclosedBrace, canon)
				}
				layout = canon[i+2 : i+2+end]
				i += 2 + end
			}
			flushLiteral()
			tokens = append(tokens, token{kind: tokenDate, text: layout})
		default:
			return nil, fmt.Errorf("%w: %%%c in %q", ErrUnknownToken, canon[i], canon)
		}
	}
	flushLiteral()

	return &Pattern{
		raw:    raw,
		canon:  canon,
		tokens: tokens,
		hash:   xxhash.Sum64String(canon),
	}, nil
}

// String 返回模式的规范文本（原始文本去首尾空白）。
func (p *Pattern) String() string { return p.canon }

// HasIndexToken 报告模式是否含 %i。
func (p *Pattern) HasIndexToken() bool { return p.hasToken(tokenIndex) }

// HasDateToken 报告模式是否含 %d。
func (p *Pattern) HasDateToken() bool { return p.hasToken(tokenDate) }

func (p *Pattern) hasToken(kind tokenKind) bool {
	for _, tk := range p.tokens {
		if tk.kind == kind {
			return true
		}
	}
	return false
}

// PrimaryLayout 返回第一个 %d 的时间布局，没有 %d 时返回空串。
func (p *Pattern) PrimaryLayout() string {
	for _, tk := range p.tokens {
		if tk.kind == tokenDate {
			return tk.text
		}
	}
	return ""
}

// Format 按给定时间与序号展开模式。
func (p *Pattern) Format(t time.Time, index int) string {
	var b strings.Builder
	for _, tk := range p.tokens {
		switch tk.kind {
		case tokenLiteral:
			b.WriteString(tk.text)
		case tokenDate:
			b.WriteString(t.Format(tk.text))
		case tokenIndex:
			b.WriteString(strconv.Itoa(index))
		}
	}
	return b.String()
}

// ToRegex 返回模式的正则形式（未锚定）：字面量转义，%i 与 %d 的
// 展开结果用对应的字符类近似。
func (p *Pattern) ToRegex() string {
	var b strings.Builder
	for _, tk := range p.tokens {
		switch tk.kind {
		case tokenLiteral:
			b.WriteString(regexp.QuoteMeta(tk.text))
		case tokenDate:
			b.WriteString(layoutRegex(tk.text))
		case tokenIndex:
			b.WriteString(`\d+`)
		}
	}
	return b.String()
}

// Hash 返回规范文本的 xxhash。
func (p *Pattern) Hash() uint64 { return p.hash }

// Equal 按规范文本比较模式。布局不同的两个 %d 视为不同模式。
func (p *Pattern) Equal(other xappender.NamingPattern) bool {
	if other == nil {
		return false
	}
	if op, ok := other.(*Pattern); ok {
		return p.canon == op.canon
	}
	return p.canon == strings.TrimSpace(other.String())
}

// 编译时断言：Pattern 可参与 xappender 的冲突检测
var _ xappender.NamingPattern = (*Pattern)(nil)

// layoutTokens Go 时间布局中的字母类片段到字符类的映射，按长度降序匹配。
var layoutTokens = []struct {
	layout string
	regex  string
}{
	{"January", `[A-Za-z]+`},
	{"Monday", `[A-Za-z]+`},
	{"Jan", `[A-Za-z]{3}`},
	{"Mon", `[A-Za-z]{3}`},
	{"MST", `[A-Z]{3,5}`},
	{"Z07:00:00", `(?:Z|[+-]\d{2}:\d{2}:\d{2})`},
	{"Z070000", `(?:Z|[+-]\d{6})`},
	{"-07:00:00", `[+-]\d{2}:\d{2}:\d{2}`},
	{"-070000", `[+-]\d{6}`},
	{"Z07:00", `(?:Z|[+-]\d{2}:\d{2})`},
	{"Z0700", `(?:Z|[+-]\d{4})`},
	{"Z07", `(?:Z|[+-]\d{2})`},
	{"-07:00", `[+-]\d{2}:\d{2}`},
	{"-0700", `[+-]\d{4}`},
	{"-07", `[+-]\d{2}`},
	{"PM", `[AP]M`},
	{"pm", `[ap]m`},
	{"__2", `\s{0,2}\d+`},
	{"_2", `\s?\d+`},
}

// layoutRegex 把 Go 时间布局转换为识别其输出的正则。
// 数字片段统一近似为 \d+，足以在归档目录中识别自家产物。
func layoutRegex(layout string) string {
	var b strings.Builder
	for i := 0; i < len(layout); {
		matched := false
		for _, lt := range layoutTokens {
			if strings.HasPrefix(layout[i:], lt.layout) {
				b.WriteString(lt.regex)
				i += len(lt.layout)
				matched = true
				break
			}
		}
		if matched {
			continue
		}
		c := layout[i]
		if c >= '0' && c <= '9' {
			// 连续数字片段折叠为一个 \d+
			for i < len(layout) && layout[i] >= '0' && layout[i] <= '9' {
				i++
			}
			b.WriteString(`\d+`)
			continue
		}
		b.WriteString(regexp.QuoteMeta(string(c)))
		i++
	}
	return b.String()
}

// regexCache 已编译锚定正则的进程级缓存。命名模式数量有限且不可变，
// 小容量 LRU 即可避免历史清理路径上的重复编译。
var regexCache, _ = lru.New[string, *regexp.Regexp](128)

// compileAnchored 返回模式的锚定正则，带缓存。
func compileAnchored(p *Pattern) (*regexp.Regexp, error) {
	if re, ok := regexCache.Get(p.canon); ok {
		return re, nil
	}
	re, err := regexp.Compile("^" + p.ToRegex() + "$")
	if err != nil {
		return nil, fmt.Errorf("xpolicy: compile pattern %q failed: %w", p.canon, err)
	}
	regexCache.Add(p.canon, re)
	return re, nil
}
