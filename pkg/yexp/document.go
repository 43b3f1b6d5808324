package yexp

// 标量的 YAML core schema 短标签。
const (
	TagStr   = "!!str"
	TagInt   = "!!int"
	TagFloat = "!!float"
	TagBool  = "!!bool"
	TagNull  = "!!null"
)

// Document 是待展开的文档树节点。
//
// 变体集合是封闭的：[Scalar]、[Sequence]、[Mapping]。
// 处理文档时使用 type switch 覆盖这三种情况。
type Document interface {
	isDocument()
}

// Scalar 标量节点（字符串、数字、布尔、空值）。
//
// 只有 Tag 为 [TagStr] 的标量参与占位符替换，其余类型原样保留。
type Scalar struct {
	Tag   string
	Value string
}

// Sequence 有序列表节点。
type Sequence []Document

// Pair 映射中的一个键值对。
type Pair struct {
	Key   Document
	Value Document
}

// Mapping 有序映射节点，保留键的插入顺序。
type Mapping []Pair

func (Scalar) isDocument()   {}
func (Sequence) isDocument() {}
func (Mapping) isDocument()  {}

// String 构造字符串标量。
func String(s string) Scalar {
	return Scalar{Tag: TagStr, Value: s}
}

// Null 构造空值标量。
func Null() Scalar {
	return Scalar{Tag: TagNull, Value: "null"}
}

// IsString 报告标量是否为字符串。
func (s Scalar) IsString() bool {
	return s.Tag == TagStr
}

// Set 写入键值对。
//
// 键已存在时替换其值并移动到末尾，与插入有序哈希表的语义一致。
func (m Mapping) Set(key, value Document) Mapping {
	for i, p := range m {
		if Equal(p.Key, key) {
			m = append(m[:i], m[i+1:]...)
			break
		}
	}

	return append(m, Pair{Key: key, Value: value})
}

// Get 按字符串键查找值。
func (m Mapping) Get(key string) (Document, bool) {
	for _, p := range m {
		if k, ok := p.Key.(Scalar); ok && k.IsString() && k.Value == key {
			return p.Value, true
		}
	}

	return nil, false
}

// Equal 判断两个文档在结构上是否相等。
//
// 所有空值标量彼此相等，不区分 "~"、"null" 等写法。
func Equal(a, b Document) bool {
	switch x := a.(type) {
	case Scalar:
		y, ok := b.(Scalar)
		if !ok {
			return false
		}
		if x.Tag == TagNull && y.Tag == TagNull {
			return true
		}
		return x == y
	case Sequence:
		y, ok := b.(Sequence)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	case Mapping:
		y, ok := b.(Mapping)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i].Key, y[i].Key) || !Equal(x[i].Value, y[i].Value) {
				return false
			}
		}
		return true
	default:
		return a == nil && b == nil
	}
}
