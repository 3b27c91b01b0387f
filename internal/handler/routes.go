package handler

import (
	"log/slog"
	"net/http"
)

// Routes 所有接口的处理器
type Routes struct {
	Gemini      *GeminiHandler
	Diagnostics *DiagnosticsHandler
	Export      *ExportHandler
	Page        http.Handler // 单页UI，可为nil
}

// NewRouter 注册固定路径（精确匹配）并套上中间件
func NewRouter(routes Routes, log *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/gemini", routes.Gemini.Analyze)
	mux.HandleFunc("GET /api/hello", routes.Diagnostics.Hello)
	mux.HandleFunc("GET /health", routes.Diagnostics.Health)
	mux.HandleFunc("POST /api/export", routes.Export.Export)
	if routes.Page != nil {
		mux.Handle("GET /{$}", routes.Page)
	}

	return Chain(mux, AccessLog(log), CORS, Recover(log))
}
