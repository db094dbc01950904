package service

import (
	"context"
	"fmt"

	"github.com/min407/WRITEFACTORY/internal/analyzer"
	"github.com/min407/WRITEFACTORY/internal/collect"
	"github.com/min407/WRITEFACTORY/internal/logger"
	"github.com/min407/WRITEFACTORY/internal/model"
	"github.com/min407/WRITEFACTORY/internal/stats"
	"github.com/min407/WRITEFACTORY/internal/storage"
)

// topLikedCount 仪表盘展示的高赞文章数量
const topLikedCount = 5

// AnalyzeService 关键词分析业务逻辑
type AnalyzeService struct {
	collector *collect.Collector
	analyzer  *analyzer.Analyzer
	store     *storage.Storage // 可为 nil，此时不保存历史
}

// New 创建业务逻辑实例
func New(collector *collect.Collector, an *analyzer.Analyzer, store *storage.Storage) *AnalyzeService {
	return &AnalyzeService{collector: collector, analyzer: an, store: store}
}

// DashboardData 一次分析的仪表盘完整数据
type DashboardData struct {
	Keyword    string                 `json:"keyword"`
	Stats      model.Stats            `json:"stats"`
	Articles   []model.ArticleInput   `json:"articles"`
	Summaries  []model.ArticleSummary `json:"summaries"`
	Insights   []model.TopicInsight   `json:"insights"`
	WordCloud  []model.WordCloudEntry `json:"wordCloud"`
	TopLiked   []model.ArticleInput   `json:"topLiked"`
	Engagement []model.ArticleInput   `json:"engagementRank"`
	HistoryID  int                    `json:"historyId,omitempty"`
}

// Analyze 执行一次完整的关键词分析：采集 → 统计 → 两阶段模型分析 → 保存历史
func (s *AnalyzeService) Analyze(ctx context.Context, keyword string) (*DashboardData, error) {
	if keyword == "" {
		return nil, fmt.Errorf("keyword is empty")
	}

	articles, err := s.collector.Collect(ctx, keyword)
	if err != nil {
		return nil, err
	}

	st := stats.Compute(articles)
	result, err := s.analyzer.Run(ctx, keyword, articles, st)
	if err != nil {
		return nil, err
	}

	data := &DashboardData{
		Keyword:    keyword,
		Stats:      result.Stats,
		Articles:   articles,
		Summaries:  result.Summaries,
		Insights:   result.Insights,
		WordCloud:  result.WordCloud,
		TopLiked:   stats.TopLiked(articles, topLikedCount),
		Engagement: stats.RankByEngagement(articles),
	}

	// 历史保存失败只记日志，不影响本次分析结果
	if s.store != nil && len(result.Summaries) > 0 {
		id, err := s.store.SaveSearch(ctx, result)
		if err != nil {
			logger.Log.Errorf("保存搜索历史失败 [%s]: %v", keyword, err)
		} else {
			data.HistoryID = id
		}
	}
	return data, nil
}

// History 返回最近的搜索记录
func (s *AnalyzeService) History(ctx context.Context, limit int) ([]storage.HistoryItem, error) {
	if s.store == nil {
		return nil, nil
	}
	return s.store.ListHistory(ctx, limit)
}

// HistoryDetail 取回一次历史分析的完整结果
func (s *AnalyzeService) HistoryDetail(ctx context.Context, id int) (*model.AnalysisResult, error) {
	if s.store == nil {
		return nil, fmt.Errorf("history store not configured")
	}
	return s.store.GetSearch(ctx, id)
}

// DeleteHistory 删除一条历史记录
func (s *AnalyzeService) DeleteHistory(ctx context.Context, id int) error {
	if s.store == nil {
		return fmt.Errorf("history store not configured")
	}
	return s.store.DeleteSearch(ctx, id)
}
