// Package expander 组合替换文件加载、文档解析、展开与输出编码，
// 供 expand 命令与 HTTP 服务共用。
package expander

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lwmacct/251207-go-pkg-yexp/internal/config"
	"github.com/lwmacct/251207-go-pkg-yexp/pkg/templexp"
	"github.com/lwmacct/251207-go-pkg-yexp/pkg/yexp"
)

// 输出格式。
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

var (
	// ErrUnknownFormat 不支持的输出格式。
	ErrUnknownFormat = errors.New("unknown output format")
	// ErrNothingExpanded 文档中没有任何展开标记。
	ErrNothingExpanded = errors.New("no expand tags found in document")
)

// Service 持有只读的替换映射，可被并发调用。
type Service struct {
	cfg      config.ExpandConfig
	reps     *yexp.Replacements
	expander *yexp.Expander
}

// Result 一次展开的结果。
type Result struct {
	Document    yexp.Document
	Found       bool // 顶层映射中存在标记
	Substituted bool // 顶层标记的值发生了替换
	Tags        int  // 任意深度的标记数量
}

// New 使用已加载的替换映射创建服务。
func New(cfg config.ExpandConfig, reps *yexp.Replacements) *Service {
	return &Service{
		cfg:      cfg,
		reps:     reps,
		expander: yexp.New(reps, yexp.WithTag(cfg.Tag)),
	}
}

// Load 从 cfg.Dir 加载替换文件并创建服务。
func Load(cfg config.ExpandConfig) (*Service, error) {
	var opts []yexp.LoadOption
	if cfg.StrictDir {
		opts = append(opts, yexp.WithStrictDir())
	}

	reps, err := yexp.LoadDir(cfg.Dir, opts...)
	if err != nil {
		return nil, fmt.Errorf("load replacements: %w", err)
	}
	slog.Debug("Replacements loaded", "dir", cfg.Dir, "placeholders", reps.Len())

	return New(cfg, reps), nil
}

// Replacements 返回替换映射。
func (s *Service) Replacements() *yexp.Replacements {
	return s.reps
}

// Expand 解析并展开原始文档内容。
//
// cfg.Env 为 true 时先对原始文本做 ${VAR} 展开；
// cfg.Require 为 true 且文档中没有任何标记时返回 [ErrNothingExpanded]。
func (s *Service) Expand(content []byte) (*Result, error) {
	if s.cfg.Env {
		expanded, err := templexp.ExpandTemplate(string(content))
		if err != nil {
			return nil, fmt.Errorf("expand env: %w", err)
		}
		content = []byte(expanded)
	}

	doc, err := yexp.Decode(content)
	if err != nil {
		return nil, err
	}

	out, found, substituted := s.expander.Expand(doc)
	res := &Result{
		Document:    out,
		Found:       found,
		Substituted: substituted,
		Tags:        yexp.CountTags(doc, s.cfg.Tag),
	}
	if res.Tags == 0 && s.cfg.Require {
		return nil, ErrNothingExpanded
	}

	return res, nil
}

// Encode 按格式序列化文档，空格式视为 yaml。
func Encode(doc yexp.Document, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "", FormatYAML, "yml":
		return yexp.EncodeYAML(doc)
	case FormatJSON:
		return yexp.EncodeJSON(doc)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}
