package fetcher

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultUpstreamErrorMessage 上游没有给出错误信息时使用
const DefaultUpstreamErrorMessage = "Gemini API error"

// ErrInvalidResponse 上游返回成功状态但响应体不是合法JSON
var ErrInvalidResponse = errors.New("gemini returned an invalid response")

// RequestError 请求没有拿到完整的上游响应（DNS、连接、超时等）
type RequestError struct {
	Err error
}

func (e *RequestError) Error() string {
	return "gemini request failed: " + e.Err.Error()
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// APIError 上游返回的非2xx响应
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gemini returned status %d: %s", e.Status, e.Message)
}

// GeminiClient Gemini generateContent 客户端
type GeminiClient struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewGeminiClient 创建Gemini客户端，timeout为0时不限制
func NewGeminiClient(apiKey, baseURL, model string, timeout time.Duration) *GeminiClient {
	return &GeminiClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Part 内容片段
type Part struct {
	Text string `json:"text"`
}

// Content 一轮对话内容
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// GenerateRequest generateContent 请求体
type GenerateRequest struct {
	Contents []Content `json:"contents"`
}

// Candidate 一个生成候选
type Candidate struct {
	Content      Content `json:"content"`
	FinishReason string  `json:"finishReason,omitempty"`
}

// GenerateResponse generateContent 响应体（成功和失败共用）
type GenerateResponse struct {
	Candidates   []Candidate `json:"candidates"`
	ModelVersion string      `json:"modelVersion,omitempty"`
	Error        *struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error,omitempty"`
}

// FirstText 第一个候选的第一个文本片段，结构缺失时返回空字符串
func (r *GenerateResponse) FirstText() string {
	if len(r.Candidates) == 0 || len(r.Candidates[0].Content.Parts) == 0 {
		return ""
	}
	return r.Candidates[0].Content.Parts[0].Text
}

// FinishReason 第一个候选的结束原因
func (r *GenerateResponse) FinishReason() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	return r.Candidates[0].FinishReason
}

// Endpoint generateContent 完整地址
func (g *GeminiClient) Endpoint() string {
	return fmt.Sprintf("%s/models/%s:generateContent", g.baseURL, g.model)
}

// Generate 发送单轮prompt，不重试
func (g *GeminiClient) Generate(ctx context.Context, prompt string) (*Generation, error) {
	reqBody := GenerateRequest{
		Contents: []Content{
			{Parts: []Part{{Text: prompt}}},
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.Endpoint(), bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// key只放在header里，不进URL
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, &RequestError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RequestError{Err: fmt.Errorf("read body: %w", err)}
	}

	var data GenerateResponse
	decodeErr := json.Unmarshal(body, &data)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := DefaultUpstreamErrorMessage
		if decodeErr == nil && data.Error != nil && data.Error.Message != "" {
			message = data.Error.Message
		}
		return nil, &APIError{Status: resp.StatusCode, Message: message}
	}

	if decodeErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidResponse, decodeErr)
	}

	return &Generation{
		Text:         data.FirstText(),
		FinishReason: data.FinishReason(),
		ModelVersion: data.ModelVersion,
	}, nil
}
