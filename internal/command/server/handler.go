package server

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	gojson "github.com/goccy/go-json"

	"github.com/lwmacct/251207-go-pkg-yexp/internal/expander"
)

// 展开结果的响应头。
const (
	HeaderFound       = "X-Expand-Found"
	HeaderSubstituted = "X-Expand-Substituted"
	HeaderTags        = "X-Expand-Tags"
)

// PlaceholderInfo /placeholders 响应中的一项。
type PlaceholderInfo struct {
	Placeholder string   `json:"placeholder"`
	Values      []string `json:"values"`
}

type handler struct {
	svc           *expander.Service
	maxBody       int64
	defaultFormat string
}

// NewHandler 创建 HTTP 路由。
//
//   - GET /health
//   - GET /placeholders
//   - POST /expand?format=yaml|json
func NewHandler(svc *expander.Service, maxBody int64, defaultFormat string) http.Handler {
	h := &handler{svc: svc, maxBody: maxBody, defaultFormat: defaultFormat}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", h.health)
	mux.HandleFunc("GET /placeholders", h.placeholders)
	mux.HandleFunc("POST /expand", h.expand)

	return mux
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprint(w, `{"status":"ok"}`)
}

func (h *handler) placeholders(w http.ResponseWriter, _ *http.Request) {
	items := make([]PlaceholderInfo, 0, h.svc.Replacements().Len())
	for placeholder, values := range h.svc.Replacements().All() {
		items = append(items, PlaceholderInfo{Placeholder: placeholder, Values: values})
	}

	body, err := gojson.Marshal(items)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)
}

func (h *handler) expand(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = h.defaultFormat
	}

	if h.maxBody > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)
	}
	content, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := h.svc.Expand(content)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, expander.ErrNothingExpanded) {
			status = http.StatusUnprocessableEntity
		}
		slog.Debug("Expand request failed", "error", err, "status", status)
		http.Error(w, err.Error(), status)
		return
	}

	body, err := expander.Encode(res.Document, format)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	contentType := "application/yaml"
	if strings.EqualFold(format, expander.FormatJSON) {
		contentType = "application/json"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set(HeaderFound, strconv.FormatBool(res.Found))
	w.Header().Set(HeaderSubstituted, strconv.FormatBool(res.Substituted))
	w.Header().Set(HeaderTags, strconv.Itoa(res.Tags))
	_, _ = w.Write(body)
}
