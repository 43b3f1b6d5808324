// Package client 提供访问展开服务的 HTTP 客户端命令。
package client

import (
	"github.com/lwmacct/251207-go-pkg-version/pkg/version"
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-yexp/internal/command"
)

// Command 客户端命令
var Command = &cli.Command{
	Name:  "client",
	Usage: "展开服务客户端",
	Flags: append(command.CommonFlags(),
		&cli.StringFlag{
			Name:    "client-url",
			Aliases: []string{"s"},
			Value:   command.Defaults.Client.URL,
			Usage:   "服务器地址",
		},
		&cli.DurationFlag{
			Name:  "client-timeout",
			Value: command.Defaults.Client.Timeout,
			Usage: "请求超时时间",
		},
		&cli.IntFlag{
			Name:  "client-retries",
			Value: command.Defaults.Client.Retries,
			Usage: "重试次数",
		},
		&cli.StringFlag{
			Name:  "client-format",
			Value: command.Defaults.Client.Format,
			Usage: "响应格式 yaml | json",
		},
	),
	Action: action,
	Commands: []*cli.Command{
		version.Command,
		{
			Name:   "health",
			Usage:  "检查服务器健康状态",
			Action: healthAction,
		},
		{
			Name:      "expand",
			Usage:     "发送文档到服务器展开，- 表示标准输入",
			ArgsUsage: "<file>",
			Action:    expandAction,
		},
	},
}
