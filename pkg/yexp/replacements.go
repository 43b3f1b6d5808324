package yexp

import (
	"iter"
	"slices"
)

// Replacements 占位符到替换值列表的有序映射。
//
// 迭代顺序即插入顺序，[LoadDir] 按文件名排序插入，因此展开结果可复现。
// 构建完成后只读，可被多个 goroutine 并发使用。
type Replacements struct {
	order  []string
	values map[string][]string
}

// NewReplacements 创建空映射。
func NewReplacements() *Replacements {
	return &Replacements{values: make(map[string][]string)}
}

// Placeholder 将名称包装为占位符文本，如 color → %color%。
func Placeholder(name string) string {
	return "%" + name + "%"
}

// Add 写入占位符及其替换值，仅在构建阶段使用。
//
// 空列表会被忽略；重复写入同一占位符时覆盖旧值并保留原位置。
func (r *Replacements) Add(placeholder string, values ...string) {
	if len(values) == 0 {
		return
	}
	if _, ok := r.values[placeholder]; !ok {
		r.order = append(r.order, placeholder)
	}
	r.values[placeholder] = slices.Clone(values)
}

// Len 返回占位符数量。
func (r *Replacements) Len() int {
	if r == nil {
		return 0
	}

	return len(r.order)
}

// Get 返回占位符对应的替换值。
func (r *Replacements) Get(placeholder string) ([]string, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := r.values[placeholder]

	return v, ok
}

// Placeholders 按插入顺序返回全部占位符。
func (r *Replacements) Placeholders() []string {
	if r == nil {
		return nil
	}

	return slices.Clone(r.order)
}

// All 按插入顺序遍历占位符与替换值。
func (r *Replacements) All() iter.Seq2[string, []string] {
	return func(yield func(string, []string) bool) {
		if r == nil {
			return
		}
		for _, p := range r.order {
			if !yield(p, r.values[p]) {
				return
			}
		}
	}
}
