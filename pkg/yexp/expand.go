package yexp

import "strings"

// DefaultTag 默认的展开标记。
const DefaultTag = "|expand"

// Expander 文档展开器。
//
// 展开过程只读访问替换映射，同一个 Expander 可被并发调用。
type Expander struct {
	reps *Replacements
	tag  string
}

// Option 展开器选项。
type Option func(*Expander)

// WithTag 设置键上的展开标记，默认为 [DefaultTag]。
func WithTag(tag string) Option {
	return func(e *Expander) {
		if tag != "" {
			e.tag = tag
		}
	}
}

// New 创建展开器。
func New(reps *Replacements, opts ...Option) *Expander {
	e := &Expander{reps: reps, tag: DefaultTag}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Expand 使用默认标记展开文档，等价于 New(reps).Expand(doc)。
func Expand(doc Document, reps *Replacements) (Document, bool, bool) {
	return New(reps).Expand(doc)
}

// Expand 递归展开文档。
//
// 返回新文档以及两个标志：
//   - found: 当前层映射中存在带标记的键
//   - substituted: 某个带标记的键的值发生了变化
//
// 标志只反映顶层节点自身的映射，嵌套在普通键下的标记不会向上传递。
// 输入文档不会被修改。
func (e *Expander) Expand(doc Document) (Document, bool, bool) {
	switch d := doc.(type) {
	case Mapping:
		var found, substituted bool
		out := make(Mapping, 0, len(d))
		for _, p := range d {
			key, ok := p.Key.(Scalar)
			if !ok || !key.IsString() || !strings.Contains(key.Value, e.tag) {
				value, _, _ := e.Expand(p.Value)
				out = out.Set(p.Key, value)

				continue
			}

			found = true
			value := e.substitute(p.Value)
			if !Equal(value, p.Value) {
				substituted = true
			}
			out = out.Set(String(strings.Replace(key.Value, e.tag, "", 1)), value)
		}

		return out, found, substituted
	case Sequence:
		return e.expandSequence(d), false, false
	default:
		return doc, false, false
	}
}

// substitute 处理带标记键下的值，只作用一层。
//
// 字符串按占位符展开为列表；其余类型交给 [Expander.Expand] 递归处理，
// 其中的嵌套标记按普通规则处理，不在本层做替换。
func (e *Expander) substitute(value Document) Document {
	switch v := value.(type) {
	case Scalar:
		if !v.IsString() {
			return v
		}
		if out := e.replaceAll(v.Value); len(out) > 0 {
			return out
		}

		return v
	case Sequence:
		return e.expandSequence(v)
	default:
		out, _, _ := e.Expand(value)
		return out
	}
}

// replaceAll 对字符串逐个应用匹配的占位符。
//
// 多个占位符同时命中时结果依次拼接，而不是做笛卡尔积：
// "%a%-%b%" 在 a、b 各有两个值时得到四个元素，每个元素只替换了其中一个占位符。
func (e *Expander) replaceAll(s string) Sequence {
	var out Sequence
	for placeholder, values := range e.reps.All() {
		if !strings.Contains(s, placeholder) {
			continue
		}
		for _, r := range values {
			out = append(out, String(strings.ReplaceAll(s, placeholder, r)))
		}
	}

	return out
}

func (e *Expander) expandSequence(seq Sequence) Sequence {
	out := make(Sequence, len(seq))
	for i, item := range seq {
		out[i], _, _ = e.Expand(item)
	}

	return out
}

// CountTags 统计文档中任意深度带标记的键数量。
//
// [Expander.Expand] 的标志不跨层汇总，需要全局判断时使用该函数。
func CountTags(doc Document, tag string) int {
	if tag == "" {
		tag = DefaultTag
	}

	n := 0
	switch d := doc.(type) {
	case Mapping:
		for _, p := range d {
			if k, ok := p.Key.(Scalar); ok && k.IsString() && strings.Contains(k.Value, tag) {
				n++
			}
			n += CountTags(p.Key, tag) + CountTags(p.Value, tag)
		}
	case Sequence:
		for _, item := range d {
			n += CountTags(item, tag)
		}
	}

	return n
}
