package fetcher

import "context"

// Generator 文本生成客户端 (Gemini)
type Generator interface {
	Generate(ctx context.Context, prompt string) (*Generation, error)
}

// Generation 一次生成的结果
type Generation struct {
	Text         string `json:"text"`
	FinishReason string `json:"finishReason,omitempty"`
	ModelVersion string `json:"modelVersion,omitempty"`
}
