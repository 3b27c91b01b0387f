package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"openzoa-analyze-go/internal/fetcher"
	"openzoa-analyze-go/internal/service"
)

const (
	msgNotConfigured   = "GEMINI_API_KEY is not configured"
	msgInvalidJSON     = "Invalid JSON body"
	msgMissingContent  = `Body must include "content" (text to analyze)`
	msgInvalidUpstream = "Gemini API returned an invalid response"
	msgUpstreamFailed  = "Gemini API request failed"
)

// GeminiHandler 转发分析请求到Gemini
type GeminiHandler struct {
	service *service.AnalysisService
	log     *slog.Logger
}

// NewGeminiHandler 创建处理器
func NewGeminiHandler(svc *service.AnalysisService, log *slog.Logger) *GeminiHandler {
	return &GeminiHandler{service: svc, log: log}
}

// Analyze 处理分析请求
// POST /api/gemini
// Body: {"content": "https://www.youtube.com/watch?v=..."}
func (h *GeminiHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// 先检查配置，和请求体无关
	if !h.service.Configured() {
		h.log.ErrorContext(ctx, "Analysis is rejected because the API key is missing",
			"envVar", "GEMINI_API_KEY")
		writeError(w, http.StatusInternalServerError, msgNotConfigured)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil || !json.Valid(body) {
		writeError(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	content, ok := contentField(body)
	if !ok {
		writeError(w, http.StatusBadRequest, msgMissingContent)
		return
	}

	gen, err := h.service.Analyze(ctx, content)
	if err != nil {
		h.writeAnalyzeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, AnalyzeResponse{
		Text:         gen.Text,
		FinishReason: gen.FinishReason,
	})
}

func (h *GeminiHandler) writeAnalyzeError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()

	var (
		apiErr *fetcher.APIError
		reqErr *fetcher.RequestError
	)
	switch {
	case errors.Is(err, service.ErrEmptyContent):
		writeError(w, http.StatusBadRequest, msgMissingContent)

	case errors.Is(err, service.ErrNotConfigured):
		writeError(w, http.StatusInternalServerError, msgNotConfigured)

	case errors.As(err, &apiErr):
		h.log.WarnContext(ctx, "Gemini returned an error",
			"status", apiErr.Status,
			"message", apiErr.Message)
		writeJSON(w, apiErr.Status, ErrorResponse{
			Error:  apiErr.Message,
			Status: apiErr.Status,
		})

	case errors.Is(err, fetcher.ErrInvalidResponse):
		h.log.ErrorContext(ctx, "Gemini response could not be decoded",
			"error", err)
		writeError(w, http.StatusBadGateway, msgInvalidUpstream)

	case errors.As(err, &reqErr):
		h.log.ErrorContext(ctx, "Gemini request failed",
			"error", err)
		writeError(w, http.StatusBadGateway, msgUpstreamFailed+": "+reqErr.Err.Error())

	default:
		h.log.ErrorContext(ctx, "Analysis failed",
			"error", err)
		writeError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
}

// contentField 只认小写的 "content" 键且值必须是字符串；
// 不是对象、没有该键或类型不对都返回 false
func contentField(body []byte) (string, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return "", false
	}

	raw, ok := fields["content"]
	if !ok {
		return "", false
	}

	var content string
	if err := json.Unmarshal(raw, &content); err != nil {
		return "", false
	}
	return content, true
}
