package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	kerrors "github.com/go-kratos/kratos/v2/errors"
	_ "github.com/lib/pq"

	"github.com/min407/WRITEFACTORY/internal/conf"
	"github.com/min407/WRITEFACTORY/internal/model"
)

// Storage 搜索历史持久化
type Storage struct {
	db *sql.DB
}

// HistoryItem 历史列表项
type HistoryItem struct {
	ID           int       `json:"id"`
	Keyword      string    `json:"keyword"`
	ArticleCount int       `json:"articleCount"`
	InsightCount int       `json:"insightCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NewStorage 建立连接并初始化表结构
func NewStorage(cfg conf.DBConfig) (*Storage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS search_history (
			id SERIAL PRIMARY KEY,
			keyword TEXT NOT NULL,
			article_count INT NOT NULL DEFAULT 0,
			insight_count INT NOT NULL DEFAULT 0,
			result JSONB NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init search_history table: %w", err)
	}

	return &Storage{db: db}, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

// SaveSearch 保存一次完整的分析结果，返回记录 ID
func (s *Storage) SaveSearch(ctx context.Context, result *model.AnalysisResult) (int, error) {
	payload, err := json.Marshal(result)
	if err != nil {
		return 0, fmt.Errorf("marshal result failed: %w", err)
	}

	var id int
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO search_history (keyword, article_count, insight_count, result)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, result.Keyword, result.Stats.TotalArticles, len(result.Insights), payload).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert search_history failed: %w", err)
	}
	return id, nil
}

// ListHistory 按时间倒序返回最近的搜索记录
func (s *Storage) ListHistory(ctx context.Context, limit int) ([]HistoryItem, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, keyword, article_count, insight_count, created_at
		FROM search_history
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []HistoryItem
	for rows.Next() {
		var item HistoryItem
		if err := rows.Scan(&item.ID, &item.Keyword, &item.ArticleCount, &item.InsightCount, &item.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// GetSearch 按 ID 取回完整的分析结果
func (s *Storage) GetSearch(ctx context.Context, id int) (*model.AnalysisResult, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT result FROM search_history WHERE id = $1
	`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, kerrors.NotFound("HISTORY_NOT_FOUND", "history record not found")
	}
	if err != nil {
		return nil, err
	}

	var result model.AnalysisResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("unmarshal result failed: %w", err)
	}
	return &result, nil
}

// DeleteSearch 删除一条搜索记录
func (s *Storage) DeleteSearch(ctx context.Context, id int) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM search_history WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return kerrors.NotFound("HISTORY_NOT_FOUND", "history record not found")
	}
	return nil
}
