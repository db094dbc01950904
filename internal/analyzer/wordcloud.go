package analyzer

import (
	"sort"

	"github.com/min407/WRITEFACTORY/internal/model"
)

const (
	maxWordCloudEntries = 20
	baseWordSize        = 48
	minWordSize         = 20
)

// BuildWordCloud 汇总所有分析结果的关键词，按出现次数降序取前 20
// 关键词按原文精确匹配计数，不做大小写或分词归一化
// size 按排名线性衰减并在 20 处封底，只是展示权重提示
func BuildWordCloud(summaries []model.ArticleSummary) []model.WordCloudEntry {
	counts := make(map[string]int)
	var order []string
	for _, s := range summaries {
		for _, w := range s.Keywords {
			if counts[w] == 0 {
				order = append(order, w)
			}
			counts[w]++
		}
	}

	entries := make([]model.WordCloudEntry, 0, len(order))
	for _, w := range order {
		entries = append(entries, model.WordCloudEntry{Word: w, Count: counts[w]})
	}

	// 稳定排序保证同频词维持首次出现的先后顺序
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})

	if len(entries) > maxWordCloudEntries {
		entries = entries[:maxWordCloudEntries]
	}

	for i := range entries {
		size := baseWordSize - 2*i
		if size < minWordSize {
			size = minWordSize
		}
		entries[i].Size = size
	}
	return entries
}
