// Package command 提供 expand、placeholders、server、client 命令的公共部分。
package command

import (
	"os"

	"github.com/lwmacct/251207-go-pkg-version/pkg/version"
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-yexp/internal/config"
	"github.com/lwmacct/251207-go-pkg-yexp/internal/logging"
)

// Defaults 为默认配置的单一来源。
var Defaults = config.DefaultConfig()

// CommonFlags 返回各命令共用的 flags。
//
// 每次调用都创建新的 flag 实例，避免多个命令共享解析状态。
func CommonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    config.ConfigFlag,
			Aliases: []string{"c"},
			Usage:   "配置文件路径（默认按搜索路径查找）",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Value: Defaults.Log.Level,
			Usage: "日志级别 debug | info | warn | error",
		},
		&cli.StringFlag{
			Name:  "log-format",
			Value: Defaults.Log.Format,
			Usage: "日志格式 text | json",
		},
	}
}

// LoadConfig 加载配置并按配置初始化日志。
func LoadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd, version.GetAppRawName())
	if err != nil {
		return nil, err
	}
	logging.Setup(cfg.Log, os.Stderr)

	return cfg, nil
}

// MustLoadConfig 调用 [LoadConfig] 并在失败时 panic，适合服务启动阶段。
func MustLoadConfig(cmd *cli.Command) *config.Config {
	cfg := config.MustLoad(cmd, version.GetAppRawName())
	logging.Setup(cfg.Log, os.Stderr)

	return cfg
}
