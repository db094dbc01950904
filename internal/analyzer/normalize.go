package analyzer

import (
	"encoding/json"
	"fmt"
	"strings"
)

// MalformedResponseError 模型输出在清理围栏标记后仍无法解析为 JSON
// Raw 保留原始输出，供调用方记录诊断日志
type MalformedResponseError struct {
	Raw string
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("模型输出不是合法 JSON: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// cleanModelOutput 去掉模型常见的 markdown 代码围栏与首尾空白
func cleanModelOutput(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// decodeModelJSON 清理并解析模型输出
// 字段缺失不报错（零值即缺失），只有语法错误才失败
func decodeModelJSON(raw string, v any) error {
	if err := json.Unmarshal([]byte(cleanModelOutput(raw)), v); err != nil {
		return &MalformedResponseError{Raw: raw, Err: err}
	}
	return nil
}
