// Package config 提供应用配置管理。
//
// 配置加载优先级 (从低到高)：
//  1. 默认值 - DefaultConfig() 函数中定义
//  2. 配置文件 - --config 或默认搜索路径 (见 DefaultPaths)
//  3. 环境变量 - 前缀 YEXP_，如 YEXP_EXPAND_DIR
//  4. CLI flags - 仅用户显式设置的 flag
package config

import (
	"time"
)

// Config 应用配置。
type Config struct {
	Expand ExpandConfig `json:"expand" desc:"展开配置"`
	Server ServerConfig `json:"server" desc:"服务端配置"`
	Client ClientConfig `json:"client" desc:"客户端配置"`
	Log    LogConfig    `json:"log" desc:"日志配置"`
}

// ExpandConfig 展开配置。
//
//nolint:tagliatelle
type ExpandConfig struct {
	Dir       string `json:"dir" desc:"替换文件目录 (<name>.txt)"`
	Input     string `json:"input" desc:"源文档路径，- 表示标准输入"`
	Output    string `json:"output" desc:"输出路径，- 表示标准输出"`
	Format    string `json:"format" desc:"输出格式 yaml | json"`
	Tag       string `json:"tag" desc:"键上的展开标记"`
	Env       bool   `json:"env" desc:"解析前对源文档做 ${VAR} 展开"`
	StrictDir bool   `json:"strict-dir" desc:"替换目录无法读取时报错"`
	Require   bool   `json:"require" desc:"文档中没有展开标记时报错"`
}

// ServerConfig 服务端配置。
//
//nolint:tagliatelle
type ServerConfig struct {
	Addr     string        `json:"addr" desc:"服务器监听地址"`
	Timeout  time.Duration `json:"timeout" desc:"HTTP 读写超时"`
	Idletime time.Duration `json:"idletime" desc:"HTTP 空闲超时"`
	MaxBody  int64         `json:"max-body" desc:"请求体最大字节数"`
}

// ClientConfig 客户端配置。
type ClientConfig struct {
	URL     string        `json:"url" desc:"服务器地址"`
	Timeout time.Duration `json:"timeout" desc:"请求超时时间"`
	Retries int           `json:"retries" desc:"重试次数"`
	Format  string        `json:"format" desc:"响应格式 yaml | json"`
}

// LogConfig 日志配置。
type LogConfig struct {
	Level  string `json:"level" desc:"日志级别 debug | info | warn | error"`
	Format string `json:"format" desc:"日志格式 text | json"`
}

// DefaultConfig 返回默认配置。
// 注意：internal/command/command.go 中的 Defaults 变量引用此函数以实现单一配置来源。
func DefaultConfig() Config {
	return Config{
		Expand: ExpandConfig{
			Dir:    "expand",
			Input:  "-",
			Output: "-",
			Format: "yaml",
			Tag:    "|expand",
		},
		Server: ServerConfig{
			Addr:     ":40117",
			Timeout:  15 * time.Second,
			Idletime: 60 * time.Second,
			MaxBody:  4 << 20,
		},
		Client: ClientConfig{
			URL:     `${YEXP_SERVER_URL:-http://localhost:40117}`,
			Timeout: 30 * time.Second,
			Retries: 3,
			Format:  "yaml",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
