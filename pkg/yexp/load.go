package yexp

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"strings"
)

// ErrNoReplacementsFound 目录中没有可用的替换文件。
//
// 目录不存在、为空、或不含非空 .txt 文件时返回。
var ErrNoReplacementsFound = errors.New("no replacement files found")

// replacementExt 替换文件扩展名（区分大小写）。
const replacementExt = ".txt"

type loadOptions struct {
	strictDir bool // 目录无法列出时返回错误，而非视为空目录
}

// LoadOption 替换文件加载选项。
type LoadOption func(*loadOptions)

// WithStrictDir 目录无法列出时直接返回错误。
//
// 默认行为是静默视为空目录，最终表现为 [ErrNoReplacementsFound]。
func WithStrictDir() LoadOption {
	return func(o *loadOptions) {
		o.strictDir = true
	}
}

// LoadDir 扫描目录并构建替换映射，见 [LoadFS]。
func LoadDir(dir string, opts ...LoadOption) (*Replacements, error) {
	reps, err := LoadFS(os.DirFS(dir), opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", dir, err)
	}

	return reps, nil
}

// LoadFS 扫描 fsys 根目录并构建替换映射。
//
// 每个 <name>.txt 常规文件对应占位符 %name%，文件按行读取并去除首尾空白，
// 去除后为空的行仍然保留。不含任何行的文件被跳过。
//
// 单个文件读取失败会中止加载；目录本身无法列出默认视为没有条目
// （见 [WithStrictDir]）。结果为空时返回 [ErrNoReplacementsFound]。
func LoadFS(fsys fs.FS, opts ...LoadOption) (*Replacements, error) {
	o := &loadOptions{}
	for _, opt := range opts {
		opt(o)
	}

	reps := NewReplacements()

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		if o.strictDir {
			return nil, fmt.Errorf("read replacement dir: %w", err)
		}
		slog.Debug("Replacement dir not readable, treating as empty", "error", err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if path.Ext(name) != replacementExt {
			continue
		}
		key := strings.TrimSuffix(name, replacementExt)
		if key == "" {
			continue
		}

		// 跟随符号链接，只接受常规文件
		info, statErr := fs.Stat(fsys, name)
		if statErr != nil || !info.Mode().IsRegular() {
			continue
		}

		lines, readErr := readLines(fsys, name)
		if readErr != nil {
			return nil, readErr
		}
		if len(lines) == 0 {
			slog.Debug("Skipping empty replacement file", "file", name)
			continue
		}

		placeholder := Placeholder(key)
		reps.Add(placeholder, lines...)
		slog.Debug("Loaded replacement file", "placeholder", placeholder, "values", len(lines))
	}

	if reps.Len() == 0 {
		return nil, ErrNoReplacementsFound
	}

	return reps, nil
}

// readLines 读取文件全部行并去除首尾空白。
func readLines(fsys fs.FS, name string) ([]string, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open replacement file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var lines []string
	r := bufio.NewReader(f)
	for {
		line, readErr := r.ReadString('\n')
		if line != "" {
			lines = append(lines, strings.TrimSpace(line))
		}
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return nil, fmt.Errorf("read replacement file %s: %w", name, readErr)
		}
	}

	return lines, nil
}
