package analyzer

import (
	"context"

	"github.com/min407/WRITEFACTORY/internal/llm"
	"github.com/min407/WRITEFACTORY/internal/logger"
	"github.com/min407/WRITEFACTORY/internal/model"
)

// Completer 对话补全能力抽象，便于测试注入假实现
type Completer interface {
	Complete(ctx context.Context, messages []llm.Message, temperature float64) (string, error)
}

// 两个阶段使用的采样温度
const (
	deepAnalysisTemperature = 0.7
	insightTemperature      = 0.8
)

// Analyzer 两阶段分析流水线编排器
// 任一阶段失败即整体失败，不向调用方返回半成品结果
type Analyzer struct {
	llm       Completer
	onWarning func(Warning)
}

// New 创建编排器，onWarning 为 nil 时告警写入全局日志
func New(completer Completer, onWarning func(Warning)) *Analyzer {
	if onWarning == nil {
		onWarning = func(w Warning) {
			logger.Log.Warnf("分析结果校验告警: %s", w.Message)
		}
	}
	return &Analyzer{llm: completer, onWarning: onWarning}
}

// DeepAnalyze 第一阶段：逐篇深度分析
// 空输入直接返回空结果，不触发任何模型调用
func (a *Analyzer) DeepAnalyze(ctx context.Context, articles []model.ArticleInput) ([]model.ArticleSummary, error) {
	if len(articles) == 0 {
		return nil, nil
	}

	system, user := BuildDeepAnalysisPrompt(articles)
	raw, err := a.llm.Complete(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: system},
		{Role: llm.RoleUser, Content: user},
	}, deepAnalysisTemperature)
	if err != nil {
		return nil, err
	}

	var summaries []model.ArticleSummary
	if err := decodeModelJSON(raw, &summaries); err != nil {
		return nil, err
	}

	for _, w := range ValidateSummaries(summaries) {
		a.onWarning(w)
	}
	return summaries, nil
}

// GenerateInsights 第二阶段：跨文章选题洞察，结果按置信度降序并截断
func (a *Analyzer) GenerateInsights(ctx context.Context, summaries []model.ArticleSummary, stats model.Stats) ([]model.TopicInsight, error) {
	if len(summaries) == 0 {
		return nil, nil
	}

	system, user := BuildInsightPrompt(summaries, stats)
	raw, err := a.llm.Complete(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: system},
		{Role: llm.RoleUser, Content: user},
	}, insightTemperature)
	if err != nil {
		return nil, err
	}

	var insights []model.TopicInsight
	if err := decodeModelJSON(raw, &insights); err != nil {
		return nil, err
	}

	for _, w := range ValidateInsights(insights) {
		a.onWarning(w)
	}
	if len(insights) == 0 {
		a.onWarning(Warning{Message: "模型未产出任何洞察"})
	}
	return RankInsights(insights), nil
}

// Run 串联两个阶段，词云与第二阶段并行计算（两者都只依赖第一阶段的产出）
func (a *Analyzer) Run(ctx context.Context, keyword string, articles []model.ArticleInput, stats model.Stats) (*model.AnalysisResult, error) {
	summaries, err := a.DeepAnalyze(ctx, articles)
	if err != nil {
		return nil, err
	}

	var wordCloud []model.WordCloudEntry
	done := make(chan struct{})
	go func() {
		wordCloud = BuildWordCloud(summaries)
		close(done)
	}()

	// 双保险：第一阶段无产出时不进入第二阶段
	var insights []model.TopicInsight
	if len(summaries) > 0 {
		insights, err = a.GenerateInsights(ctx, summaries, stats)
	}
	<-done
	if err != nil {
		return nil, err
	}

	return &model.AnalysisResult{
		Keyword:   keyword,
		Stats:     stats,
		Summaries: summaries,
		Insights:  insights,
		WordCloud: wordCloud,
	}, nil
}
