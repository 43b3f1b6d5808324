package templexp

import (
	"fmt"
	"os"
	"strings"
)

// ═══════════════════════════════════════════════════════════════════════════
// 变量表
// ═══════════════════════════════════════════════════════════════════════════

// Vars 展开使用的变量表。
//
// ":=" / "=" 的赋值会写入该表，对同一次展开的后续引用可见。
type Vars map[string]string

// EnvVars 生成当前环境变量快照。
func EnvVars() Vars {
	vars := make(Vars)
	for _, env := range os.Environ() {
		if name, value, ok := strings.Cut(env, "="); ok {
			vars[name] = value
		}
	}

	return vars
}

// ═══════════════════════════════════════════════════════════════════════════
// 参数解析
// ═══════════════════════════════════════════════════════════════════════════

// operator ${NAME<op>WORD} 中的操作符。
type operator struct {
	kind  byte // 0 / '-' / '+' / '?' / '='
	colon bool // 带冒号时空值视同未设置
}

func isNameStart(ch byte) bool {
	return (ch >= 'A' && ch <= 'Z') || (ch >= 'a' && ch <= 'z') || ch == '_'
}

func isNameChar(ch byte) bool {
	return isNameStart(ch) || (ch >= '0' && ch <= '9')
}

func isOperator(ch byte) bool {
	return ch == '-' || ch == '+' || ch == '?' || ch == '='
}

// parseParameter 拆分 NAME、操作符与 WORD，无法识别时 ok 为 false。
func parseParameter(expr string) (name string, op operator, word string, ok bool) {
	if expr == "" || !isNameStart(expr[0]) {
		return "", op, "", false
	}

	i := 1
	for i < len(expr) && isNameChar(expr[i]) {
		i++
	}
	name, rest := expr[:i], expr[i:]

	switch {
	case rest == "":
		return name, op, "", true
	case len(rest) >= 2 && rest[0] == ':' && isOperator(rest[1]):
		return name, operator{kind: rest[1], colon: true}, rest[2:], true
	case isOperator(rest[0]):
		return name, operator{kind: rest[0]}, rest[1:], true
	}

	return "", op, "", false
}

// ═══════════════════════════════════════════════════════════════════════════
// 求值
// ═══════════════════════════════════════════════════════════════════════════

// word 展开操作符右侧的 WORD，WORD 本身可嵌套 ${...}。
func (v Vars) word(word string) (string, error) {
	if !strings.Contains(word, "${") {
		return word, nil
	}

	return v.expand(word)
}

// eval 对单个 ${...} 表达式求值，ok 为 false 表示应保留原文。
func (v Vars) eval(expr string) (string, bool, error) {
	name, op, word, ok := parseParameter(expr)
	if !ok {
		return "", false, nil
	}

	val, isSet := v[name]
	unset := !isSet || (op.colon && val == "")

	var (
		out string
		err error
	)
	switch op.kind {
	case 0:
		out = val
	case '-':
		out = val
		if unset {
			out, err = v.word(word)
		}
	case '=':
		out = val
		if unset {
			if out, err = v.word(word); err == nil {
				v[name] = out
			}
		}
	case '+':
		if !unset {
			out, err = v.word(word)
		}
	case '?':
		if unset {
			if word == "" {
				return "", false, fmt.Errorf("templexp: %s: parameter null or not set", name)
			}
			return "", false, fmt.Errorf("templexp: %s: %s", name, word)
		}
		out = val
	}
	if err != nil {
		return "", false, err
	}

	return out, true, nil
}

func (v Vars) expand(text string) (string, error) {
	var buf strings.Builder
	buf.Grow(len(text))

	for i := 0; i < len(text); {
		ch := text[i]
		if ch != '$' || i+1 >= len(text) {
			buf.WriteByte(ch)
			i++
			continue
		}

		switch text[i+1] {
		case '$':
			buf.WriteByte('$')
			i += 2
			continue
		case '{':
		default:
			buf.WriteByte(ch)
			i++
			continue
		}

		end := findClosingBrace(text, i+2)
		if end == -1 {
			buf.WriteByte(ch)
			i++
			continue
		}

		expanded, ok, err := v.eval(text[i+2 : end])
		if err != nil {
			return "", err
		}
		if ok {
			buf.WriteString(expanded)
		} else {
			buf.WriteString(text[i : end+1])
		}
		i = end + 1
	}

	return buf.String(), nil
}

// findClosingBrace 返回与 start 之前的 "${" 配对的 "}" 位置。
func findClosingBrace(text string, start int) int {
	depth := 0
	for i := start; i < len(text); i++ {
		switch {
		case text[i] == '$' && i+1 < len(text) && text[i+1] == '{':
			depth++
			i++
		case text[i] == '}':
			if depth == 0 {
				return i
			}
			depth--
		}
	}

	return -1
}

// ═══════════════════════════════════════════════════════════════════════════
// 入口
// ═══════════════════════════════════════════════════════════════════════════

// Expand 使用给定变量表对文本执行 Shell 参数展开。
//
// vars 会被 ":=" / "=" 修改；传入 nil 时所有变量视为未设置。
func Expand(text string, vars Vars) (string, error) {
	if vars == nil {
		vars = make(Vars)
	}

	return vars.expand(text)
}

// ExpandTemplate 使用环境变量快照对文本执行 Shell 参数展开。
//
// 支持语法：
//   - ${VAR} - 变量替换
//   - ${VAR:-default} / ${VAR-default} - fallback
//   - ${VAR:+alt} / ${VAR+alt} - 替代值
//   - ${VAR:?msg} / ${VAR?msg} - 必填校验
//   - ${VAR:=default} / ${VAR=default} - 赋值（仅作用于当前展开）
//
// 仅在必填校验失败时返回 error。
func ExpandTemplate(text string) (string, error) {
	return EnvVars().expand(text)
}
