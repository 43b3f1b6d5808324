package yexp

import (
	"bytes"
	"fmt"
	"strconv"

	gojson "github.com/goccy/go-json"
)

// EncodeJSON 将文档序列化为带缩进的 JSON，保留映射键顺序。
//
// 标量映射规则：
//   - !!int / !!float 且为合法 JSON 数字 → 数字
//   - !!bool → true / false
//   - !!null → null
//   - 其余 → 字符串
//
// 映射键一律输出为字符串。
func EncodeJSON(doc Document) ([]byte, error) {
	var raw bytes.Buffer
	if err := writeJSON(&raw, doc); err != nil {
		return nil, err
	}

	var out bytes.Buffer
	if err := gojson.Indent(&out, raw.Bytes(), "", "  "); err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	out.WriteByte('\n')

	return out.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, doc Document) error {
	switch d := doc.(type) {
	case Mapping:
		buf.WriteByte('{')
		for i, p := range d {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONString(buf, keyText(p.Key)); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := writeJSON(buf, p.Value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case Sequence:
		buf.WriteByte('[')
		for i, item := range d {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case Scalar:
		return writeJSONScalar(buf, d)
	default:
		buf.WriteString("null")
	}

	return nil
}

func writeJSONScalar(buf *bytes.Buffer, s Scalar) error {
	switch s.Tag {
	case TagNull:
		buf.WriteString("null")
		return nil
	case TagBool:
		if b, err := strconv.ParseBool(s.Value); err == nil {
			buf.WriteString(strconv.FormatBool(b))
			return nil
		}
	case TagInt, TagFloat:
		if gojson.Valid([]byte(s.Value)) {
			buf.WriteString(s.Value)
			return nil
		}
	}

	return writeJSONString(buf, s.Value)
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	b, err := gojson.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode json string: %w", err)
	}
	buf.Write(b)

	return nil
}

// keyText 返回映射键的文本形式，非标量键使用其 YAML 文本。
func keyText(key Document) string {
	if s, ok := key.(Scalar); ok {
		return s.Value
	}
	out, err := EncodeYAML(key)
	if err != nil {
		return ""
	}

	return string(bytes.TrimSpace(out))
}
