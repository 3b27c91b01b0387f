package handler

import (
	"encoding/json"
	"log/slog"
	"mime"
	"net/http"
	"time"

	"openzoa-analyze-go/internal/youtube"
)

const msgMissingText = `Body must include "text" (analysis to export)`

// ExportHandler 把分析结果作为Markdown附件返回
type ExportHandler struct {
	log *slog.Logger
	now func() time.Time
}

// NewExportHandler 创建处理器
func NewExportHandler(log *slog.Logger) *ExportHandler {
	return &ExportHandler{log: log, now: time.Now}
}

// Export 导出Markdown
// POST /api/export
// Body: {"url": "https://youtu.be/...", "text": "# ..."}
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	var req ExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	if req.Text == "" {
		writeError(w, http.StatusBadRequest, msgMissingText)
		return
	}

	filename := youtube.ExportFilename(req.URL, h.now())

	h.log.DebugContext(r.Context(), "Analysis is exported",
		"filename", filename,
		"textLength", len(req.Text))

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(req.Text))
}
