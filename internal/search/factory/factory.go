package factory

import (
	"fmt"

	"github.com/min407/WRITEFACTORY/internal/conf"
	"github.com/min407/WRITEFACTORY/internal/search"
	"github.com/min407/WRITEFACTORY/internal/searxng"
	"github.com/min407/WRITEFACTORY/internal/tavily"
)

// NewSearcher 根据配置创建搜索实例
func NewSearcher(cfg *conf.Config) (search.Searcher, error) {
	provider := cfg.Search.Provider
	if provider == "" {
		// 未显式配置时，有 tavily key 就用 tavily
		if cfg.Search.Tavily.APIKey != "" {
			provider = "tavily"
		} else {
			return nil, fmt.Errorf("search provider not configured")
		}
	}

	switch provider {
	case "tavily":
		if cfg.Search.Tavily.APIKey == "" {
			return nil, fmt.Errorf("tavily api key is missing")
		}
		return tavily.NewClient(cfg.Search.Tavily.APIKey), nil

	case "searxng":
		if cfg.Search.SearXNG.BaseURL == "" {
			return nil, fmt.Errorf("searxng base url is missing")
		}
		return searxng.NewClient(cfg.Search.SearXNG.BaseURL, cfg.Search.SearXNG.Timeout), nil

	default:
		return nil, fmt.Errorf("unknown search provider: %s", provider)
	}
}
