package analyzer

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/min407/WRITEFACTORY/internal/model"
)

// maxContentLength 单篇正文嵌入提示词的字符上限，超出部分直接丢弃
const maxContentLength = 3000

const jsonOnlySystem = "你是一名资深内容营销分析师。请只输出 JSON 字符串，不要包含任何 markdown 标记或解释性文字。"

const deepAnalysisInstruction = `请逐篇深度分析以上文章，严格按照以下 JSON 数组格式返回，数组元素顺序与文章编号一致，index 为文章编号：
[
  {
    "index": 1,
    "keyPoints": ["核心观点，3-5 条"],
    "keywords": ["关键词，不少于 5 个"],
    "highlights": ["值得借鉴的亮点句，1-2 条"],
    "engagementAnalysis": "结合阅读数、点赞数与互动率分析该文为何有此表现",
    "targetAudience": "目标人群（必填）",
    "scenario": "使用场景（必填）",
    "painPoint": "用户痛点（必填）",
    "contentAngle": "内容切入角度",
    "emotionType": "情绪类型",
    "writingStyle": "写作风格"
  }
]
注意：targetAudience、scenario、painPoint 三个字段必须给出具体内容，不能为空。`

const insightInstruction = `请基于以上逐篇分析结果与整体统计数据，跨文章提炼 5-10 条选题洞察。
每条洞察必须归入用户旅程六阶段之一：awareness（认知唤起）、cognition（认知建立）、research（调研比较）、decision（决策）、action（行动）、outcome（效果复盘）。
confidence 为 70-95 之间的整数，代表该洞察的重要性指数。
请严格按照以下 JSON 数组格式返回：
[
  {
    "title": "洞察标题",
    "description": "洞察描述",
    "confidence": 85,
    "evidence": ["支撑该洞察的文章标题"],
    "decisionStage": {"stage": "六阶段之一", "reason": "归类理由"},
    "audienceScene": {"audience": "目标人群", "scene": "典型场景", "reason": "判断依据"},
    "demandPainPoint": {"emotionalPain": "情绪痛点", "realisticPain": "现实痛点", "expectation": "期望结果", "reason": "分析依据"},
    "tags": ["标签"],
    "marketPotential": "high/medium/low",
    "contentSaturation": 60,
    "recommendedFormat": "推荐内容形式",
    "keyDifferentiators": "差异化要点"
  }
]`

// engagementRate 计算互动率百分比，保留一位小数，阅读数为 0 时返回 "0"
func engagementRate(likes, reads int) string {
	if reads == 0 {
		return "0"
	}
	return strconv.FormatFloat(float64(likes)/float64(reads)*100, 'f', 1, 64)
}

// truncateContent 按字符截断正文，硬截断而非摘要
func truncateContent(content string) string {
	runes := []rune(content)
	if len(runes) <= maxContentLength {
		return content
	}
	return string(runes[:maxContentLength])
}

// BuildDeepAnalysisPrompt 构造第一阶段（逐篇深度分析）的提示词
// 文章编号从 1 开始，与输入顺序严格对齐
func BuildDeepAnalysisPrompt(articles []model.ArticleInput) (system, user string) {
	var sb strings.Builder
	sb.WriteString("以下是围绕同一关键词搜索到的一组文章：\n\n")
	for i, art := range articles {
		fmt.Fprintf(&sb, "文章 %d:\n标题: %s\n阅读数: %d\n点赞数: %d\n互动率: %s%%\n链接: %s\n正文: %s\n\n",
			i+1, art.Title, art.Reads, art.Likes, engagementRate(art.Likes, art.Reads), art.URL, truncateContent(art.Content))
	}
	sb.WriteString(deepAnalysisInstruction)
	return jsonOnlySystem, sb.String()
}

// BuildInsightPrompt 构造第二阶段（跨文章选题洞察）的提示词
// 第一阶段的分析结果与统计数据原样嵌入
func BuildInsightPrompt(summaries []model.ArticleSummary, stats model.Stats) (system, user string) {
	data, _ := json.MarshalIndent(summaries, "", "  ")

	var sb strings.Builder
	sb.WriteString("以下是逐篇深度分析的结果：\n\n")
	sb.Write(data)
	sb.WriteString("\n\n整体统计数据：\n")
	fmt.Fprintf(&sb, "文章总数: %d\n", stats.TotalArticles)
	fmt.Fprintf(&sb, "平均阅读数: %.1f\n", stats.AvgReads)
	fmt.Fprintf(&sb, "平均点赞数: %.1f\n", stats.AvgLikes)
	fmt.Fprintf(&sb, "平均互动率: %.1f%%\n\n", stats.AvgEngagement)
	sb.WriteString(insightInstruction)
	return jsonOnlySystem, sb.String()
}
