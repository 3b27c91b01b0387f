package archive

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// Record 一次成功分析的存档
type Record struct {
	VideoID      string    `json:"video_id,omitempty"` // 能解析出视频ID时才有
	Content      string    `json:"content"`            // 用户提交的原文（已trim）
	Text         string    `json:"text"`
	FinishReason string    `json:"finish_reason,omitempty"`
	ModelVersion string    `json:"model_version,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Store 存档接口
type Store interface {
	Save(ctx context.Context, record *Record) error
}

const schema = `
CREATE TABLE IF NOT EXISTS analysis_archive (
	id            BIGSERIAL PRIMARY KEY,
	video_id      TEXT,
	content       TEXT NOT NULL,
	text          TEXT NOT NULL,
	finish_reason TEXT,
	model_version TEXT,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// PostgresStore PostgreSQL存档实现
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore 连接数据库并确保表存在
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// 测试连接
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create analysis_archive: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

// Save 写入一条存档
func (s *PostgresStore) Save(ctx context.Context, record *Record) error {
	query := `
	INSERT INTO analysis_archive (video_id, content, text, finish_reason, model_version, created_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	`

	createdAt := record.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, query,
		nullString(record.VideoID),
		record.Content,
		record.Text,
		nullString(record.FinishReason),
		nullString(record.ModelVersion),
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("insert analysis_archive: %w", err)
	}
	return nil
}

// Close 关闭数据库连接
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
