package analyzer

import (
	"fmt"
	"strings"

	"github.com/min407/WRITEFACTORY/internal/model"
)

// Warning 校验告警，只提示不拦截，记录本身不会被丢弃或修改
type Warning struct {
	Record  int    // 记录在结果数组中的位置（1 起始），0 表示与具体记录无关
	Field   string // 缺失的字段，空表示整体性告警
	Message string
}

// ValidateSummaries 检查逐篇分析结果的三个必填定位字段
// 缺失只产生告警，作为质量信号交给调用方处理
func ValidateSummaries(summaries []model.ArticleSummary) []Warning {
	var warnings []Warning
	for i, s := range summaries {
		checks := []struct {
			field string
			value string
		}{
			{"targetAudience", s.TargetAudience},
			{"scenario", s.Scenario},
			{"painPoint", s.PainPoint},
		}
		for _, c := range checks {
			if strings.TrimSpace(c.value) == "" {
				warnings = append(warnings, Warning{
					Record:  i + 1,
					Field:   c.field,
					Message: fmt.Sprintf("第 %d 条分析结果缺少 %s 字段", i+1, c.field),
				})
			}
		}
	}
	return warnings
}

// ValidateInsights 检查洞察结果中实际产出的三个结构化子对象
func ValidateInsights(insights []model.TopicInsight) []Warning {
	var warnings []Warning
	for i, in := range insights {
		checks := []struct {
			field string
			value string
		}{
			{"decisionStage.stage", in.DecisionStage.Stage},
			{"audienceScene.audience", in.AudienceScene.Audience},
			{"audienceScene.scene", in.AudienceScene.Scene},
			{"demandPainPoint.realisticPain", in.DemandPainPoint.RealisticPain},
		}
		for _, c := range checks {
			if strings.TrimSpace(c.value) == "" {
				warnings = append(warnings, Warning{
					Record:  i + 1,
					Field:   c.field,
					Message: fmt.Sprintf("第 %d 条洞察缺少 %s 字段", i+1, c.field),
				})
			}
		}
	}
	return warnings
}
