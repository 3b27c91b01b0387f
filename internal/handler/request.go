package handler

// AnalyzeResponse 分析成功响应
type AnalyzeResponse struct {
	Text         string `json:"text"`
	FinishReason string `json:"finishReason,omitempty"`
}

// ErrorResponse 统一的错误响应，status只在透传上游错误时出现
type ErrorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status,omitempty"`
}

// ExportRequest 导出Markdown请求参数
type ExportRequest struct {
	URL  string `json:"url"`
	Text string `json:"text"`
}
