package expand

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-yexp/internal/command"
	"github.com/lwmacct/251207-go-pkg-yexp/internal/expander"
)

// stdio 表示标准输入/输出的路径。
const stdio = "-"

func action(_ context.Context, cmd *cli.Command) error {
	// 加载配置：默认值 → 配置文件 → 环境变量 → CLI flags
	cfg, err := command.LoadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.NArg() > 0 {
		cfg.Expand.Input = cmd.Args().First()
	}

	svc, err := expander.Load(cfg.Expand)
	if err != nil {
		return err
	}

	content, err := readInput(cfg.Expand.Input, cmd.Root().Reader)
	if err != nil {
		return err
	}

	res, err := svc.Expand(content)
	if err != nil {
		return fmt.Errorf("expand %s: %w", cfg.Expand.Input, err)
	}
	slog.Info("Document expanded",
		"input", cfg.Expand.Input,
		"found", res.Found,
		"substituted", res.Substituted,
		"tags", res.Tags,
	)
	if res.Tags > 0 && !res.Substituted {
		slog.Debug("Top-level tags produced no substitution", "placeholders", svc.Replacements().Placeholders())
	}

	data, err := expander.Encode(res.Document, cfg.Expand.Format)
	if err != nil {
		return err
	}

	return writeOutput(cfg.Expand.Output, data, cmd.Root().Writer)
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == stdio {
		if stdin == nil {
			stdin = os.Stdin
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is given by the user
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	return data, nil
}

func writeOutput(path string, data []byte, stdout io.Writer) error {
	if path == stdio {
		if stdout == nil {
			stdout = os.Stdout
		}
		if _, err := stdout.Write(data); err != nil {
			return fmt.Errorf("write stdout: %w", err)
		}
		return nil
	}

	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // output is a regular config file
		return fmt.Errorf("write output: %w", err)
	}
	slog.Debug("Output written", "path", path, "bytes", len(data))

	return nil
}
