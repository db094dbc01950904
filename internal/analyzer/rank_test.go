package analyzer

import (
	"testing"

	"github.com/min407/WRITEFACTORY/internal/model"
)

func insightWithConfidence(title string, confidence int) model.TopicInsight {
	return model.TopicInsight{Title: title, Confidence: confidence}
}

func TestRankInsightsDescending(t *testing.T) {
	insights := []model.TopicInsight{
		insightWithConfidence("低", 72),
		insightWithConfidence("高", 93),
		insightWithConfidence("中", 85),
	}

	ranked := RankInsights(insights)
	if len(ranked) != 3 {
		t.Fatalf("got %d insights, want 3", len(ranked))
	}
	for i := 0; i < len(ranked)-1; i++ {
		if ranked[i].Confidence < ranked[i+1].Confidence {
			t.Errorf("ranked[%d].Confidence=%d < ranked[%d].Confidence=%d",
				i, ranked[i].Confidence, i+1, ranked[i+1].Confidence)
		}
	}
	if ranked[0].Title != "高" {
		t.Errorf("highest confidence should rank first, got %q", ranked[0].Title)
	}

	// 入参不被修改
	if insights[0].Title != "低" {
		t.Error("input slice must not be mutated")
	}
}

func TestRankInsightsStableTies(t *testing.T) {
	insights := []model.TopicInsight{
		insightWithConfidence("先出现", 90),
		insightWithConfidence("后出现", 90),
		insightWithConfidence("次高", 80),
	}

	ranked := RankInsights(insights)
	if ranked[0].Title != "先出现" || ranked[1].Title != "后出现" {
		t.Errorf("ties must preserve model-given order, got %q then %q", ranked[0].Title, ranked[1].Title)
	}
}

func TestRankInsightsCap(t *testing.T) {
	var insights []model.TopicInsight
	for i := 0; i < 15; i++ {
		insights = append(insights, insightWithConfidence("t", 70+i))
	}

	ranked := RankInsights(insights)
	if len(ranked) != maxInsights {
		t.Fatalf("got %d insights, want %d", len(ranked), maxInsights)
	}
	// 截断发生在排序之后，保留的是置信度最高的 10 条
	if ranked[0].Confidence != 84 || ranked[len(ranked)-1].Confidence != 75 {
		t.Errorf("cap should keep the highest-confidence insights, got [%d..%d]",
			ranked[0].Confidence, ranked[len(ranked)-1].Confidence)
	}
}

func TestRankInsightsIdempotent(t *testing.T) {
	sorted := []model.TopicInsight{
		insightWithConfidence("一", 95),
		insightWithConfidence("二", 88),
		insightWithConfidence("三", 71),
	}

	once := RankInsights(sorted)
	twice := RankInsights(once)
	for i := range once {
		if once[i].Title != twice[i].Title {
			t.Errorf("ranking is not idempotent at %d: %q vs %q", i, once[i].Title, twice[i].Title)
		}
	}
}

func TestRankInsightsEmpty(t *testing.T) {
	if ranked := RankInsights(nil); len(ranked) != 0 {
		t.Errorf("empty input should return empty, got %d", len(ranked))
	}
}
