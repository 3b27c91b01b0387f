// Package client 调用分析服务的 /api/gemini 接口。
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ErrCannotConnect 连不上分析服务
var ErrCannotConnect = errors.New("연결할 수 없습니다.")

// StatusError 服务返回非2xx
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	return e.Message
}

// Analysis 分析结果
type Analysis struct {
	Text         string `json:"text"`
	FinishReason string `json:"finishReason,omitempty"`
}

// Client 分析服务客户端
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New 创建客户端，httpClient为nil时使用http.DefaultClient
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Analyze 提交一次分析
func (c *Client) Analyze(ctx context.Context, content string) (*Analysis, error) {
	jsonBody, err := json.Marshal(map[string]string{"content": content})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/gemini", bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCannotConnect, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCannotConnect, err)
	}

	// 响应体解析失败时当作空对象
	var data struct {
		Analysis
		Error string `json:"error"`
	}
	_ = json.Unmarshal(body, &data)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := data.Error
		if message == "" {
			message = fmt.Sprintf("요청 실패 (%d)", resp.StatusCode)
		}
		return nil, &StatusError{Status: resp.StatusCode, Message: message}
	}

	return &data.Analysis, nil
}
