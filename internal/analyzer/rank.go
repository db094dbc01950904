package analyzer

import (
	"sort"

	"github.com/min407/WRITEFACTORY/internal/model"
)

// maxInsights 洞察数量上限，排序后截断，保留置信度最高的条目
const maxInsights = 10

// RankInsights 按 confidence 降序稳定排序并截断
// 同分条目保持模型给出的相对顺序，不修改入参
func RankInsights(insights []model.TopicInsight) []model.TopicInsight {
	ranked := make([]model.TopicInsight, len(insights))
	copy(ranked, insights)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Confidence > ranked[j].Confidence
	})

	if len(ranked) > maxInsights {
		ranked = ranked[:maxInsights]
	}
	return ranked
}
