package main

import (
	"context"
	"fmt"
	"os"

	"github.com/lwmacct/251207-go-pkg-version/pkg/version"
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-yexp/internal/command/client"
	"github.com/lwmacct/251207-go-pkg-yexp/internal/command/expand"
	"github.com/lwmacct/251207-go-pkg-yexp/internal/command/placeholders"
	"github.com/lwmacct/251207-go-pkg-yexp/internal/command/server"
)

func main() {
	app := &cli.Command{
		Name:  version.GetAppRawName(),
		Usage: "YAML/JSON 文档 |expand 占位符展开工具",
		Commands: []*cli.Command{
			version.Command,
			expand.Command,
			placeholders.Command,
			server.Command,
			client.Command,
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
