// Package expand 提供文档展开命令。
package expand

import (
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-yexp/internal/command"
)

// Command 展开命令
var Command = &cli.Command{
	Name:      "expand",
	Usage:     "展开文档中带 |expand 标记的键",
	ArgsUsage: "[file]",
	Action:    action,
	Flags: append(command.CommonFlags(),
		&cli.StringFlag{
			Name:    "expand-dir",
			Aliases: []string{"d"},
			Value:   command.Defaults.Expand.Dir,
			Usage:   "替换文件目录 (<name>.txt)",
		},
		&cli.StringFlag{
			Name:    "expand-input",
			Aliases: []string{"i"},
			Value:   command.Defaults.Expand.Input,
			Usage:   "源文档路径，- 表示标准输入",
		},
		&cli.StringFlag{
			Name:    "expand-output",
			Aliases: []string{"o"},
			Value:   command.Defaults.Expand.Output,
			Usage:   "输出路径，- 表示标准输出",
		},
		&cli.StringFlag{
			Name:    "expand-format",
			Aliases: []string{"f"},
			Value:   command.Defaults.Expand.Format,
			Usage:   "输出格式 yaml | json",
		},
		&cli.StringFlag{
			Name:  "expand-tag",
			Value: command.Defaults.Expand.Tag,
			Usage: "键上的展开标记",
		},
		&cli.BoolFlag{
			Name:  "expand-env",
			Usage: "解析前对源文档做 ${VAR} 展开",
		},
		&cli.BoolFlag{
			Name:  "expand-strict-dir",
			Usage: "替换目录无法读取时报错",
		},
		&cli.BoolFlag{
			Name:  "expand-require",
			Usage: "文档中没有展开标记时报错",
		},
	),
}
