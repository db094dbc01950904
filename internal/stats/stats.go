package stats

import (
	"sort"

	"github.com/min407/WRITEFACTORY/internal/model"
)

// Compute 计算文章批次的汇总统计，第二阶段提示词会原样引用
func Compute(articles []model.ArticleInput) model.Stats {
	s := model.Stats{TotalArticles: len(articles)}
	if len(articles) == 0 {
		return s
	}

	var totalReads, totalLikes int
	var totalEngagement float64
	for _, art := range articles {
		totalReads += art.Reads
		totalLikes += art.Likes
		totalEngagement += engagement(art)
	}

	n := float64(len(articles))
	s.AvgReads = float64(totalReads) / n
	s.AvgLikes = float64(totalLikes) / n
	s.AvgEngagement = totalEngagement / n
	return s
}

// TopLiked 按点赞数降序取前 n 篇，同赞数保持输入顺序
func TopLiked(articles []model.ArticleInput, n int) []model.ArticleInput {
	ranked := make([]model.ArticleInput, len(articles))
	copy(ranked, articles)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Likes > ranked[j].Likes
	})
	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// RankByEngagement 按互动率降序排列全部文章
func RankByEngagement(articles []model.ArticleInput) []model.ArticleInput {
	ranked := make([]model.ArticleInput, len(articles))
	copy(ranked, articles)
	sort.SliceStable(ranked, func(i, j int) bool {
		return engagement(ranked[i]) > engagement(ranked[j])
	})
	return ranked
}

// engagement 互动率百分比，阅读数为 0 时记 0
func engagement(art model.ArticleInput) float64 {
	if art.Reads == 0 {
		return 0
	}
	return float64(art.Likes) / float64(art.Reads) * 100
}
