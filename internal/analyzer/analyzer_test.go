package analyzer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/min407/WRITEFACTORY/internal/llm"
	"github.com/min407/WRITEFACTORY/internal/model"
)

// fakeCompleter 按调用顺序返回预置响应，并记录调用次数
type fakeCompleter struct {
	calls     int
	responses []string
	err       error
}

func (f *fakeCompleter) Complete(ctx context.Context, messages []llm.Message, temperature float64) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	if len(f.responses) == 0 {
		return "", nil
	}
	resp := f.responses[0]
	f.responses = f.responses[1:]
	return resp, nil
}

const validSummariesJSON = `[
  {"index":1,"keyPoints":["p1","p2","p3"],"keywords":["k1","k2","k3","k4","k5"],
   "highlights":["h1"],"engagementAnalysis":"表现稳定",
   "targetAudience":"新手","scenario":"购前调研","painPoint":"选择困难",
   "contentAngle":"测评","emotionType":"理性","writingStyle":"清单体"},
  {"index":2,"keyPoints":["p1","p2","p3"],"keywords":["k1","k6","k7","k8","k9"],
   "highlights":["h1"],"engagementAnalysis":"互动偏低",
   "targetAudience":"进阶玩家","scenario":"升级装备","painPoint":"预算有限",
   "contentAngle":"对比","emotionType":"克制","writingStyle":"干货"}
]`

const validInsightsJSON = `[
  {"title":"洞察一","description":"d","confidence":80,"evidence":["第一篇"],
   "decisionStage":{"stage":"research","reason":"r"},
   "audienceScene":{"audience":"新手","scene":"调研","reason":"r"},
   "demandPainPoint":{"emotionalPain":"e","realisticPain":"p","expectation":"x","reason":"r"},
   "tags":["t"],"marketPotential":"high","contentSaturation":40,
   "recommendedFormat":"图文","keyDifferentiators":"差异点"},
  {"title":"洞察二","description":"d","confidence":92,"evidence":["第二篇"],
   "decisionStage":{"stage":"decision","reason":"r"},
   "audienceScene":{"audience":"进阶玩家","scene":"比价","reason":"r"},
   "demandPainPoint":{"emotionalPain":"e","realisticPain":"p","expectation":"x","reason":"r"},
   "tags":["t"],"marketPotential":"medium","contentSaturation":70,
   "recommendedFormat":"视频","keyDifferentiators":"差异点"}
]`

func testArticles(n int) []model.ArticleInput {
	var articles []model.ArticleInput
	for i := 0; i < n; i++ {
		articles = append(articles, model.ArticleInput{
			Title:   "标题",
			Content: strings.Repeat("文", 300),
			Likes:   10,
			Reads:   100,
			URL:     "https://example.com",
		})
	}
	return articles
}

func TestDeepAnalyzeEmptyInputNoCall(t *testing.T) {
	fake := &fakeCompleter{}
	a := New(fake, func(Warning) {})

	summaries, err := a.DeepAnalyze(context.Background(), nil)
	if err != nil {
		t.Fatalf("DeepAnalyze(nil) error = %v", err)
	}
	if len(summaries) != 0 {
		t.Errorf("got %d summaries, want 0", len(summaries))
	}
	if fake.calls != 0 {
		t.Errorf("empty input must not invoke the completion client, got %d calls", fake.calls)
	}
}

func TestGenerateInsightsEmptyInputNoCall(t *testing.T) {
	fake := &fakeCompleter{}
	a := New(fake, func(Warning) {})

	insights, err := a.GenerateInsights(context.Background(), nil, model.Stats{})
	if err != nil {
		t.Fatalf("GenerateInsights(nil) error = %v", err)
	}
	if len(insights) != 0 || fake.calls != 0 {
		t.Errorf("empty input must short-circuit: %d insights, %d calls", len(insights), fake.calls)
	}
}

func TestDeepAnalyzeRoundTrip(t *testing.T) {
	fake := &fakeCompleter{responses: []string{"```json\n" + validSummariesJSON + "\n```"}}
	var warnings []Warning
	a := New(fake, func(w Warning) { warnings = append(warnings, w) })

	articles := testArticles(2)
	summaries, err := a.DeepAnalyze(context.Background(), articles)
	if err != nil {
		t.Fatalf("DeepAnalyze error = %v", err)
	}
	if len(summaries) != len(articles) {
		t.Errorf("got %d summaries, want %d", len(summaries), len(articles))
	}
	if len(warnings) != 0 {
		t.Errorf("well-formed response should produce no warnings, got %+v", warnings)
	}
	if summaries[0].Index != 1 || summaries[1].Index != 2 {
		t.Errorf("index fields should align with input order: %d, %d", summaries[0].Index, summaries[1].Index)
	}
}

func TestDeepAnalyzeMissingFieldTolerance(t *testing.T) {
	// 第二条缺 targetAudience，记录保留、产生告警
	raw := `[
	  {"index":1,"targetAudience":"新手","scenario":"s","painPoint":"p"},
	  {"index":2,"scenario":"s","painPoint":"p"}
	]`
	fake := &fakeCompleter{responses: []string{raw}}
	var warnings []Warning
	a := New(fake, func(w Warning) { warnings = append(warnings, w) })

	summaries, err := a.DeepAnalyze(context.Background(), testArticles(2))
	if err != nil {
		t.Fatalf("DeepAnalyze error = %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("incomplete record must be retained, got %d summaries", len(summaries))
	}
	if len(warnings) != 1 || warnings[0].Record != 2 || warnings[0].Field != "targetAudience" {
		t.Errorf("unexpected warnings: %+v", warnings)
	}
}

func TestDeepAnalyzeMalformedResponse(t *testing.T) {
	fake := &fakeCompleter{responses: []string{"not json"}}
	a := New(fake, func(Warning) {})

	_, err := a.DeepAnalyze(context.Background(), testArticles(1))
	var malformed *MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected *MalformedResponseError, got %v", err)
	}
	if malformed.Raw != "not json" {
		t.Errorf("Raw = %q, want original text", malformed.Raw)
	}
}

func TestGenerateInsightsRanksResult(t *testing.T) {
	fake := &fakeCompleter{responses: []string{validInsightsJSON}}
	a := New(fake, func(Warning) {})

	summaries := []model.ArticleSummary{{Index: 1, TargetAudience: "新手", Scenario: "s", PainPoint: "p"}}
	insights, err := a.GenerateInsights(context.Background(), summaries, model.Stats{TotalArticles: 1})
	if err != nil {
		t.Fatalf("GenerateInsights error = %v", err)
	}
	if len(insights) != 2 {
		t.Fatalf("got %d insights, want 2", len(insights))
	}
	if insights[0].Title != "洞察二" {
		t.Errorf("insights should be ranked by confidence desc, got %q first", insights[0].Title)
	}
}

func TestRunPipeline(t *testing.T) {
	fake := &fakeCompleter{responses: []string{validSummariesJSON, validInsightsJSON}}
	a := New(fake, func(Warning) {})

	result, err := a.Run(context.Background(), "露营", testArticles(2), model.Stats{TotalArticles: 2})
	if err != nil {
		t.Fatalf("Run error = %v", err)
	}
	if fake.calls != 2 {
		t.Errorf("pipeline should call the model twice, got %d", fake.calls)
	}
	if len(result.Summaries) != 2 || len(result.Insights) != 2 {
		t.Errorf("unexpected result sizes: %d summaries, %d insights", len(result.Summaries), len(result.Insights))
	}
	// 词云来自第一阶段的关键词，k1 在两篇中都出现
	if len(result.WordCloud) == 0 || result.WordCloud[0].Word != "k1" || result.WordCloud[0].Count != 2 {
		t.Errorf("unexpected word cloud head: %+v", result.WordCloud)
	}
}

func TestRunEmptyArticles(t *testing.T) {
	fake := &fakeCompleter{}
	a := New(fake, func(Warning) {})

	result, err := a.Run(context.Background(), "露营", nil, model.Stats{})
	if err != nil {
		t.Fatalf("Run error = %v", err)
	}
	if fake.calls != 0 {
		t.Errorf("empty batch must not reach the model, got %d calls", fake.calls)
	}
	if len(result.Summaries) != 0 || len(result.Insights) != 0 || len(result.WordCloud) != 0 {
		t.Errorf("empty batch should yield empty result: %+v", result)
	}
}

func TestRunAbortsOnStageFailure(t *testing.T) {
	// 第二阶段失败时整体失败，不返回半成品
	fake := &fakeCompleter{responses: []string{validSummariesJSON, "not json"}}
	a := New(fake, func(Warning) {})

	result, err := a.Run(context.Background(), "露营", testArticles(2), model.Stats{TotalArticles: 2})
	if err == nil {
		t.Fatal("expected error when phase 2 fails")
	}
	if result != nil {
		t.Errorf("failed pipeline must not return partial results, got %+v", result)
	}
}
