package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"openzoa-analyze-go/internal/archive"
	"openzoa-analyze-go/internal/fetcher"
	"openzoa-analyze-go/internal/youtube"
)

var (
	// ErrNotConfigured 没有配置上游API key
	ErrNotConfigured = errors.New("gemini api key is not configured")
	// ErrEmptyContent 待分析内容为空
	ErrEmptyContent = errors.New("content is empty")
)

// AnalysisService 将用户内容拼接分析模板后转发给Gemini
type AnalysisService struct {
	llm     fetcher.Generator
	archive archive.Store
	log     *slog.Logger
}

// NewAnalysisService 创建服务；llm为nil表示未配置key，store为nil表示不存档
func NewAnalysisService(llm fetcher.Generator, store archive.Store, log *slog.Logger) *AnalysisService {
	return &AnalysisService{
		llm:     llm,
		archive: store,
		log:     log,
	}
}

// Configured 是否可以调用上游
func (s *AnalysisService) Configured() bool {
	return s.llm != nil
}

// Analyze 对内容做一次分析。上游错误原样返回（*fetcher.APIError 等），不重试
func (s *AnalysisService) Analyze(ctx context.Context, content string) (*fetcher.Generation, error) {
	if !s.Configured() {
		return nil, ErrNotConfigured
	}

	content = TrimContent(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	start := time.Now()
	gen, err := s.llm.Generate(ctx, BuildPrompt(content))
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "Analysis is generated",
		"contentLength", len(content),
		"textLength", len(gen.Text),
		"finishReason", gen.FinishReason,
		"durationMs", time.Since(start).Milliseconds())

	s.save(ctx, content, gen)

	return gen, nil
}

// save 存档失败只记日志，不影响响应
func (s *AnalysisService) save(ctx context.Context, content string, gen *fetcher.Generation) {
	if s.archive == nil {
		return
	}

	videoID, _ := youtube.VideoID(content)
	record := &archive.Record{
		VideoID:      videoID,
		Content:      content,
		Text:         gen.Text,
		FinishReason: gen.FinishReason,
		ModelVersion: gen.ModelVersion,
		CreatedAt:    time.Now(),
	}

	if err := s.archive.Save(ctx, record); err != nil {
		s.log.WarnContext(ctx, "Failed to archive analysis",
			"error", err,
			"videoID", videoID)
	}
}

// TrimContent 去掉首尾空白，包括 BOM (U+FEFF)
func TrimContent(content string) string {
	return strings.TrimFunc(content, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\uFEFF'
	})
}
