package conf

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// 默认的模型服务地址与模型名，可被配置文件或环境变量覆盖
const (
	DefaultAPIBase = "https://api.deepseek.com"
	DefaultModel   = "deepseek-chat"
)

// Config 项目配置结构体
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	LLM         LLMConfig         `yaml:"llm"`
	Search      SearchConfig      `yaml:"search"`
	Collect     CollectConfig     `yaml:"collect"`
	Log         LogConfig         `yaml:"log"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	DB          DBConfig          `yaml:"db"`
}

// ServerConfig HTTP 服务配置
type ServerConfig struct {
	Addr    string `yaml:"addr"`
	Timeout string `yaml:"timeout"`
}

// LLMConfig 模型服务相关配置
type LLMConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
}

// SearchConfig 文章搜索相关配置
type SearchConfig struct {
	Provider string        `yaml:"provider"`
	Tavily   TavilyConfig  `yaml:"tavily"`
	SearXNG  SearXNGConfig `yaml:"searxng"`
}

// TavilyConfig Tavily 配置
type TavilyConfig struct {
	APIKey string `yaml:"api_key"`
}

// SearXNGConfig SearXNG 配置
type SearXNGConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout int    `yaml:"timeout"`
}

// CollectConfig 文章采集配置
type CollectConfig struct {
	MaxArticles  int `yaml:"max_articles"`  // 单次分析的文章上限
	FetchTimeout int `yaml:"fetch_timeout"` // 正文抓取超时（秒）
}

// LogConfig 日志相关配置
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// ConcurrencyConfig 模型调用限流配置
type ConcurrencyConfig struct {
	QPS int `yaml:"qps"`
	RPM int `yaml:"rpm"`
}

// DBConfig 数据库相关配置
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

// Load 从指定路径加载配置，随后用环境变量覆盖敏感项
// 环境变量 API_KEY / API_BASE / MODEL 只在进程启动时读取一次
func Load(path string) (*Config, error) {
	// .env 文件不存在时忽略错误
	_ = godotenv.Load()

	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("解析配置文件失败: %w", err)
		}
	}

	if v := os.Getenv("API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("API_BASE"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("MODEL"); v != "" {
		cfg.LLM.Model = v
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = DefaultAPIBase
	}
	if c.LLM.Model == "" {
		c.LLM.Model = DefaultModel
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8000"
	}
	if c.Collect.MaxArticles <= 0 {
		c.Collect.MaxArticles = 10
	}
	if c.Collect.FetchTimeout <= 0 {
		c.Collect.FetchTimeout = 30
	}
	if c.Concurrency.RPM <= 0 {
		c.Concurrency.RPM = 60
	}
	if c.Concurrency.QPS <= 0 {
		c.Concurrency.QPS = 1
	}
}
