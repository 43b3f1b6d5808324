// Package server 提供 HTTP 展开服务命令。
package server

import (
	"github.com/lwmacct/251207-go-pkg-version/pkg/version"
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-yexp/internal/command"
)

// Command 服务器命令
var Command = &cli.Command{
	Name:     "server",
	Usage:    "启动 HTTP 展开服务",
	Action:   action,
	Commands: []*cli.Command{version.Command},
	Flags: append(command.CommonFlags(),
		&cli.StringFlag{
			Name:    "server-addr",
			Aliases: []string{"a"},
			Value:   command.Defaults.Server.Addr,
			Usage:   "服务器监听地址",
		},
		&cli.DurationFlag{
			Name:  "server-timeout",
			Value: command.Defaults.Server.Timeout,
			Usage: "HTTP 读写超时",
		},
		&cli.DurationFlag{
			Name:  "server-idletime",
			Value: command.Defaults.Server.Idletime,
			Usage: "HTTP 空闲超时",
		},
		&cli.Int64Flag{
			Name:  "server-max-body",
			Value: command.Defaults.Server.MaxBody,
			Usage: "请求体最大字节数",
		},
		&cli.StringFlag{
			Name:    "expand-dir",
			Aliases: []string{"d"},
			Value:   command.Defaults.Expand.Dir,
			Usage:   "替换文件目录 (<name>.txt)",
		},
		&cli.StringFlag{
			Name:  "expand-tag",
			Value: command.Defaults.Expand.Tag,
			Usage: "键上的展开标记",
		},
		&cli.StringFlag{
			Name:  "expand-format",
			Value: command.Defaults.Expand.Format,
			Usage: "默认响应格式 yaml | json",
		},
		&cli.BoolFlag{
			Name:  "expand-strict-dir",
			Usage: "替换目录无法读取时报错",
		},
	),
}
