package collect

import (
	"context"
	"fmt"
	"time"

	"github.com/go-shiori/go-readability"

	"github.com/min407/WRITEFACTORY/internal/logger"
	"github.com/min407/WRITEFACTORY/internal/model"
	"github.com/min407/WRITEFACTORY/internal/search"
)

const (
	searchMaxResults = 20
	minContentLength = 100  // 正文过短的结果直接丢弃
	thinContentLimit = 500  // 低于该长度时尝试抓取全文
	maxContentLength = 5000 // 入库与分析前的正文上限
)

// Collector 按关键词采集文章批次
type Collector struct {
	searcher     search.Searcher
	maxArticles  int
	fetchTimeout time.Duration

	// 可替换的全文抓取函数，测试时注入假实现
	fetch func(url string, timeout time.Duration) (string, error)
}

// New 创建采集器
func New(searcher search.Searcher, maxArticles int, fetchTimeout time.Duration) *Collector {
	if maxArticles <= 0 {
		maxArticles = 10
	}
	if fetchTimeout <= 0 {
		fetchTimeout = 30 * time.Second
	}
	return &Collector{
		searcher:     searcher,
		maxArticles:  maxArticles,
		fetchTimeout: fetchTimeout,
		fetch:        fetchAndCleanContent,
	}
}

// Collect 搜索关键词并整理出可供分析的文章批次
// 摘要过短的结果会尝试抓取全文，抓取失败则保留摘要
func (c *Collector) Collect(ctx context.Context, keyword string) ([]model.ArticleInput, error) {
	resp, err := c.searcher.Search(ctx, &search.Request{
		Query:      keyword,
		Topic:      "general",
		MaxResults: searchMaxResults,
	})
	if err != nil {
		return nil, fmt.Errorf("搜索关键词失败 [%s]: %w", keyword, err)
	}

	var articles []model.ArticleInput
	for _, item := range resp.Results {
		content := item.Content
		if len(content) < thinContentLimit {
			fetched, err := c.fetch(item.URL, c.fetchTimeout)
			if err == nil && len(fetched) > len(content) {
				content = fetched
			} else if err != nil {
				logger.Log.Debugf("抓取正文失败 [%s]: %v", item.URL, err)
			}
		}
		if len(content) > maxContentLength {
			content = content[:maxContentLength]
		}
		if len(content) < minContentLength {
			continue
		}

		articles = append(articles, model.ArticleInput{
			Title:   item.Title,
			Content: content,
			Likes:   item.Likes,
			Reads:   item.Reads,
			URL:     item.URL,
		})
		if len(articles) >= c.maxArticles {
			break
		}
	}

	if len(articles) == 0 {
		logger.Log.Warnf("关键词 [%s] 未找到足够的有效文章", keyword)
	}
	return articles, nil
}

func fetchAndCleanContent(url string, timeout time.Duration) (string, error) {
	article, err := readability.FromURL(url, timeout)
	if err != nil {
		return "", err
	}
	return article.TextContent, nil
}
