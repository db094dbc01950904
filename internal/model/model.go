package model

// ArticleInput 待分析的文章原始数据，由搜索采集层提供
type ArticleInput struct {
	Title   string `json:"title"`
	Content string `json:"content"` // 正文可能为空，仅有摘要
	Likes   int    `json:"likes"`
	Reads   int    `json:"reads"`
	URL     string `json:"url"`
}

// ArticleSummary 第一阶段逐篇深度分析的结构化结果
// Index 为 1 起始的输入序号，用于回溯对应原文
type ArticleSummary struct {
	Index              int      `json:"index"`
	KeyPoints          []string `json:"keyPoints"`          // 核心观点 3-5 条
	Keywords           []string `json:"keywords"`           // 关键词 ≥5 个
	Highlights         []string `json:"highlights"`         // 亮点句 1-2 条
	EngagementAnalysis string   `json:"engagementAnalysis"` // 互动表现分析
	TargetAudience     string   `json:"targetAudience"`     // 目标人群
	Scenario           string   `json:"scenario"`           // 使用场景
	PainPoint          string   `json:"painPoint"`          // 用户痛点
	ContentAngle       string   `json:"contentAngle"`       // 内容切入角度
	EmotionType        string   `json:"emotionType"`        // 情绪类型
	WritingStyle       string   `json:"writingStyle"`       // 写作风格
}

// DecisionStage 用户旅程阶段归类
type DecisionStage struct {
	Stage  string `json:"stage"` // awareness/cognition/research/decision/action/outcome 六阶段之一
	Reason string `json:"reason"`
}

// AudienceScene 人群与场景
type AudienceScene struct {
	Audience string `json:"audience"`
	Scene    string `json:"scene"`
	Reason   string `json:"reason"`
}

// DemandPainPoint 需求痛点拆解
type DemandPainPoint struct {
	EmotionalPain string `json:"emotionalPain"`
	RealisticPain string `json:"realisticPain"`
	Expectation   string `json:"expectation"`
	Reason        string `json:"reason"`
}

// TopicInsight 第二阶段跨文章综合得出的选题洞察
// Confidence 为重要性指数，是排序的唯一依据
type TopicInsight struct {
	Title              string          `json:"title"`
	Description        string          `json:"description"`
	Confidence         int             `json:"confidence"`
	Evidence           []string        `json:"evidence"` // 引用的文章标题
	DecisionStage      DecisionStage   `json:"decisionStage"`
	AudienceScene      AudienceScene   `json:"audienceScene"`
	DemandPainPoint    DemandPainPoint `json:"demandPainPoint"`
	Tags               []string        `json:"tags"`
	MarketPotential    string          `json:"marketPotential"`   // high/medium/low
	ContentSaturation  int             `json:"contentSaturation"` // 0-100
	RecommendedFormat  string          `json:"recommendedFormat"`
	KeyDifferentiators string          `json:"keyDifferentiators"`
}

// WordCloudEntry 词云条目，size 仅作展示权重提示
type WordCloudEntry struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
	Size  int    `json:"size"`
}

// Stats 由本地统计层计算的汇总数据，第二阶段提示词原样引用
type Stats struct {
	TotalArticles int     `json:"totalArticles"`
	AvgReads      float64 `json:"avgReads"`
	AvgLikes      float64 `json:"avgLikes"`
	AvgEngagement float64 `json:"avgEngagement"` // 平均互动率（百分比）
}

// AnalysisResult 一次完整分析的产出
type AnalysisResult struct {
	Keyword   string           `json:"keyword"`
	Stats     Stats            `json:"stats"`
	Summaries []ArticleSummary `json:"summaries"`
	Insights  []TopicInsight   `json:"insights"`
	WordCloud []WordCloudEntry `json:"wordCloud"`
}
