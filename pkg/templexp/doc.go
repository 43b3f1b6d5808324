// Package templexp 提供文本的 Shell 参数展开。
//
// 仅处理 ${...} 语法，用于在解析 YAML/JSON 之前对原始文本做轻量替换：
// 应用配置文件默认启用，待展开的源文档可通过 --expand-env 启用。
// 不执行命令、不引入模板引擎。
//
// # 设计参考
//
//   - Bash 参数展开: https://www.gnu.org/software/bash/manual/bash.html#Shell-Parameter-Expansion
//
// # 语义说明
//
//  1. 仅做字符串层面的替换（不解析 $VAR）
//  2. 支持嵌套展开与 "$$" 字面量
//  3. ":=" 赋值仅作用于当前展开过程
//  4. 无法识别的表达式保持原样
//
// # 快速开始
//
// 使用环境变量：
//
//	expanded, err := templexp.ExpandTemplate(`dir: "${YEXP_DIR:-expand}"`)
//
// 使用自定义变量表：
//
//	expanded, err := templexp.Expand(`${REGION}-%color%`, templexp.Vars{"REGION": "eu"})
//
// 注意 %name% 占位符不属于本包语法，会原样保留。
package templexp
