// Package yexp 提供 YAML/JSON 文档中 "|expand" 标记键的占位符展开。
//
// 映射键中包含 "|expand" 时，其字符串值里的占位符 %name% 会被替换列表中的
// 每一个值依次替换，单个标量因此变为列表。替换列表来自目录中的 <name>.txt 文件，
// 每行一个值。
//
// 该包不是模板引擎：没有表达式、条件或循环，只做字面子串替换。
//
// # 快速开始
//
// 目录 expand/ 中有 color.txt：
//
//	red
//	blue
//
// 源文档：
//
//	name|expand: "shirt-%color%"
//
// 展开：
//
//	reps, err := yexp.LoadDir("expand")
//	doc, err := yexp.Decode(content)
//	out, found, substituted := yexp.Expand(doc, reps)
//	text, err := yexp.EncodeYAML(out)
//
// 结果：
//
//	name:
//	  - shirt-red
//	  - shirt-blue
//
// # 展开规则
//
//  1. 键中的标记只移除第一次出现，无论是否发生替换
//  2. 只有字符串值做替换；列表值只对元素做常规递归处理
//  3. 同一字符串命中多个占位符时结果依次拼接，不做笛卡尔积
//  4. 没有任何占位符命中时值保持为标量
//
// 返回的两个标志只反映顶层映射本身，见 [Expander.Expand]；
// 需要统计任意深度的标记时使用 [CountTags]。
//
// # 替换文件
//
// [LoadDir] 按文件名顺序读取，行首尾空白被去除，空文件被跳过。
// 目录不存在视为没有条目，最终返回 [ErrNoReplacementsFound]；
// [WithStrictDir] 可改为直接返回目录错误。
package yexp
