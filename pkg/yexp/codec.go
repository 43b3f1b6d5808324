package yexp

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	yamlv3 "go.yaml.in/yaml/v3"
)

// ═══════════════════════════════════════════════════════════════════════════
// YAML 解析
// ═══════════════════════════════════════════════════════════════════════════

// Decode 解析 YAML（JSON 是其子集）为文档树。
//
// 多文档输入只取第一个文档；空输入得到空值标量。
func Decode(content []byte) (Document, error) {
	return DecodeReader(bytes.NewReader(content))
}

// DecodeReader 从 reader 解析文档，见 [Decode]。
func DecodeReader(r io.Reader) (Document, error) {
	var node yamlv3.Node
	if err := yamlv3.NewDecoder(r).Decode(&node); err != nil {
		if errors.Is(err, io.EOF) {
			return Null(), nil
		}
		return nil, fmt.Errorf("parse document: %w", err)
	}

	doc, err := FromNode(&node)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	return doc, nil
}

var (
	// ErrAliasCycle 锚点内部引用了自身，展开后没有尽头。
	ErrAliasCycle = errors.New("alias cycle")

	// ErrAliasExpansion 别名展开后的节点数超出限制。
	ErrAliasExpansion = errors.New("alias expansion exceeds limit")
)

const (
	// minAliasBudget 展开后节点数的下限额度，小文档不受比例限制影响。
	minAliasBudget = 10000
	// aliasRatio 展开后节点数允许达到源节点数的倍数。
	aliasRatio = 64
)

// FromNode 将 yaml.Node 转换为文档树。
//
// 别名会被解析为其指向的节点内容。锚点引用自身时返回 [ErrAliasCycle]；
// 展开后的节点数超过 max(10000, 64×源节点数) 时返回 [ErrAliasExpansion]。
func FromNode(node *yamlv3.Node) (Document, error) {
	c := &nodeConverter{
		visiting: make(map[*yamlv3.Node]bool),
		budget:   max(minAliasBudget, aliasRatio*countNodes(node)),
	}

	return c.convert(node)
}

// nodeConverter 跟踪正在展开的锚点与已生成的节点数。
type nodeConverter struct {
	visiting map[*yamlv3.Node]bool
	built    int
	budget   int
}

func (c *nodeConverter) convert(node *yamlv3.Node) (Document, error) {
	if node == nil {
		return Null(), nil
	}

	c.built++
	if c.built > c.budget {
		return nil, fmt.Errorf("%w (%d nodes)", ErrAliasExpansion, c.budget)
	}

	if node.Anchor != "" {
		if c.visiting[node] {
			return nil, fmt.Errorf("%w: anchor %q contains itself", ErrAliasCycle, node.Anchor)
		}
		c.visiting[node] = true
		defer delete(c.visiting, node)
	}

	switch node.Kind {
	case yamlv3.DocumentNode:
		if len(node.Content) == 0 {
			return Null(), nil
		}
		return c.convert(node.Content[0])
	case yamlv3.AliasNode:
		return c.convert(node.Alias)
	case yamlv3.SequenceNode:
		seq := make(Sequence, 0, len(node.Content))
		for _, item := range node.Content {
			doc, err := c.convert(item)
			if err != nil {
				return nil, err
			}
			seq = append(seq, doc)
		}
		return seq, nil
	case yamlv3.MappingNode:
		m := make(Mapping, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, err := c.convert(node.Content[i])
			if err != nil {
				return nil, err
			}
			value, err := c.convert(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			m = m.Set(key, value)
		}
		return m, nil
	default:
		return Scalar{Tag: node.ShortTag(), Value: node.Value}, nil
	}
}

// countNodes 统计源树中的节点数，不跟随别名。
func countNodes(node *yamlv3.Node) int {
	if node == nil {
		return 0
	}

	n := 1
	for _, child := range node.Content {
		n += countNodes(child)
	}

	return n
}

// ═══════════════════════════════════════════════════════════════════════════
// YAML 输出
// ═══════════════════════════════════════════════════════════════════════════

// ToNode 将文档树转换为 yaml.Node。
func ToNode(doc Document) *yamlv3.Node {
	switch d := doc.(type) {
	case Mapping:
		node := &yamlv3.Node{Kind: yamlv3.MappingNode, Tag: "!!map"}
		for _, p := range d {
			node.Content = append(node.Content, ToNode(p.Key), ToNode(p.Value))
		}
		return node
	case Sequence:
		node := &yamlv3.Node{Kind: yamlv3.SequenceNode, Tag: "!!seq"}
		for _, item := range d {
			node.Content = append(node.Content, ToNode(item))
		}
		return node
	case Scalar:
		return &yamlv3.Node{Kind: yamlv3.ScalarNode, Tag: d.Tag, Value: d.Value}
	default:
		return &yamlv3.Node{Kind: yamlv3.ScalarNode, Tag: TagNull, Value: "null"}
	}
}

// EncodeYAML 将文档序列化为 YAML，缩进两个空格。
func EncodeYAML(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := yamlv3.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(ToNode(doc)); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}

	return buf.Bytes(), nil
}
