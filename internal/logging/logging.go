// Package logging 根据配置初始化全局 slog。
package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/lwmacct/251207-go-pkg-yexp/internal/config"
)

// New 创建 logger。
//
// Format 为 json 时输出 JSON，其余输出 text；日志写入 w（通常为 stderr，
// 避免与写到标准输出的展开结果混在一起）。
func New(cfg config.LogConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

// Setup 创建 logger 并设置为 slog 默认 logger。
func Setup(cfg config.LogConfig, w io.Writer) *slog.Logger {
	logger := New(cfg, w)
	slog.SetDefault(logger)

	return logger
}

// ParseLevel 解析日志级别，无法识别时返回 info。
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
