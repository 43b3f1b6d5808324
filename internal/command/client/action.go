package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	gojson "github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-yexp/internal/command"
	"github.com/lwmacct/251207-go-pkg-yexp/internal/config"
)

var errMissingFile = errors.New("missing document file argument")

func action(_ context.Context, cmd *cli.Command) error {
	// 默认行为：显示帮助
	return cli.ShowAppHelp(cmd)
}

func healthAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := command.LoadConfig(cmd)
	if err != nil {
		return err
	}

	resp, err := NewHTTPClient(&cfg.Client).Health(ctx)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}

	w := cmd.Root().Writer
	_, _ = fmt.Fprintf(w, "Server: %s\n", cfg.Client.URL)
	_, _ = fmt.Fprintf(w, "Status: %s\n", resp.Status)

	return nil
}

func expandAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() == 0 {
		return errMissingFile
	}

	cfg, err := command.LoadConfig(cmd)
	if err != nil {
		return err
	}

	path := cmd.Args().First()
	var content []byte
	if path == "-" {
		content, err = io.ReadAll(cmd.Root().Reader)
	} else {
		content, err = os.ReadFile(path) //nolint:gosec // path is given by the user
	}
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}

	body, err := NewHTTPClient(&cfg.Client).Expand(ctx, content)
	if err != nil {
		return fmt.Errorf("expand request failed: %w", err)
	}

	_, _ = io.WriteString(cmd.Root().Writer, body)

	return nil
}

// defaultBackoff 第 n 次重试前等待 n 倍该时长
const defaultBackoff = 200 * time.Millisecond

// HTTPClient HTTP 客户端封装
type HTTPClient struct {
	config  *config.ClientConfig
	client  *http.Client
	backoff time.Duration
}

// NewHTTPClient 创建新的 HTTP 客户端
func NewHTTPClient(cfg *config.ClientConfig) *HTTPClient {
	return &HTTPClient{
		config: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		backoff: defaultBackoff,
	}
}

// StatusError 服务端返回了非 2xx 状态码
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d, body: %s", e.Code, e.Body)
}

// retryable 传输错误与 5xx 可重试，4xx 表示请求本身有问题
func retryable(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code >= http.StatusInternalServerError
	}

	return true
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status string `json:"status"`
}

// Health 执行健康检查
func (c *HTTPClient) Health(ctx context.Context) (*HealthResponse, error) {
	resp, err := c.retry(ctx, "Health check", func() (string, error) {
		return c.doRequest(ctx, http.MethodGet, c.endpoint("/health"), nil)
	})
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := gojson.Unmarshal([]byte(resp), &health); err != nil {
		return nil, fmt.Errorf("failed to parse health response: %w", err)
	}

	return &health, nil
}

// Expand 发送文档并返回展开结果
func (c *HTTPClient) Expand(ctx context.Context, content []byte) (string, error) {
	target := c.endpoint("/expand")
	if c.config.Format != "" {
		target += "?format=" + url.QueryEscape(c.config.Format)
	}

	return c.retry(ctx, "Expand", func() (string, error) {
		return c.doRequest(ctx, http.MethodPost, target, content)
	})
}

func (c *HTTPClient) endpoint(path string) string {
	return strings.TrimSuffix(c.config.URL, "/") + path
}

// retry 最多执行 Retries+1 次，返回最后一次错误
//
// 4xx 响应立即返回；其余失败按线性退避等待后重试。
func (c *HTTPClient) retry(ctx context.Context, name string, fn func() (string, error)) (string, error) {
	var lastErr error
	for i := 0; i <= c.config.Retries; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(time.Duration(i) * c.backoff):
			}
		}
		if err := ctx.Err(); err != nil {
			return "", err
		}
		resp, err := fn()
		if err == nil {
			return resp, nil
		}
		if !retryable(err) {
			return "", err
		}
		lastErr = err
		slog.Debug(name+" attempt failed", "attempt", i+1, "error", err)
	}

	return "", fmt.Errorf("failed after %d retries: %w", c.config.Retries, lastErr)
}

// doRequest 执行 HTTP 请求
func (c *HTTPClient) doRequest(ctx context.Context, method, target string, body []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}

	return string(data), nil
}
