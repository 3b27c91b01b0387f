package handler

import (
	"net/http"
	"time"
)

// DiagnosticsHandler 健康检查和问候接口，返回固定JSON
type DiagnosticsHandler struct {
	service string
	now     func() time.Time
}

// NewDiagnosticsHandler 创建处理器
func NewDiagnosticsHandler(service string) *DiagnosticsHandler {
	return &DiagnosticsHandler{service: service, now: time.Now}
}

// Health 健康检查
// GET /health
func (h *DiagnosticsHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": h.service,
	})
}

// Hello 问候接口，带当前UTC时间（毫秒精度）
// GET /api/hello
func (h *DiagnosticsHandler) Hello(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message":   "Hello from " + h.service,
		"timestamp": h.now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	})
}
