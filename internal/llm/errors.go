package llm

import (
	"errors"
	"fmt"
)

// ErrMissingAPIKey 未配置 API Key，发起任何网络请求前都会先检查
var ErrMissingAPIKey = errors.New("llm: api key 未配置")

// UpstreamError 模型服务返回非 2xx 状态码
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("llm: 上游服务错误 (status %d): %s", e.StatusCode, e.Message)
}
