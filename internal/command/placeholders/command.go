// Package placeholders 提供替换文件列表命令。
package placeholders

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-yexp/internal/command"
	"github.com/lwmacct/251207-go-pkg-yexp/internal/expander"
)

// Command 列出占位符
var Command = &cli.Command{
	Name:   "placeholders",
	Usage:  "列出替换目录中的占位符",
	Action: action,
	Flags: append(command.CommonFlags(),
		&cli.StringFlag{
			Name:    "expand-dir",
			Aliases: []string{"d"},
			Value:   command.Defaults.Expand.Dir,
			Usage:   "替换文件目录 (<name>.txt)",
		},
		&cli.BoolFlag{
			Name:  "expand-strict-dir",
			Usage: "替换目录无法读取时报错",
		},
		&cli.BoolFlag{
			Name:  "values",
			Usage: "同时输出替换值",
		},
	),
}

func action(_ context.Context, cmd *cli.Command) error {
	cfg, err := command.LoadConfig(cmd)
	if err != nil {
		return err
	}

	svc, err := expander.Load(cfg.Expand)
	if err != nil {
		return err
	}

	w := cmd.Root().Writer
	for placeholder, values := range svc.Replacements().All() {
		if cmd.Bool("values") {
			_, _ = fmt.Fprintf(w, "%s\t%s\n", placeholder, strings.Join(values, ", "))
			continue
		}
		_, _ = fmt.Fprintf(w, "%s\t%d\n", placeholder, len(values))
	}

	return nil
}
