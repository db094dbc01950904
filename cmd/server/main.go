package main

import (
	"flag"
	"log"
	"time"

	"github.com/go-kratos/kratos/v2"
	"golang.org/x/time/rate"

	"github.com/min407/WRITEFACTORY/internal/analyzer"
	"github.com/min407/WRITEFACTORY/internal/collect"
	"github.com/min407/WRITEFACTORY/internal/conf"
	"github.com/min407/WRITEFACTORY/internal/llm"
	"github.com/min407/WRITEFACTORY/internal/logger"
	"github.com/min407/WRITEFACTORY/internal/search/factory"
	"github.com/min407/WRITEFACTORY/internal/server"
	"github.com/min407/WRITEFACTORY/internal/service"
	"github.com/min407/WRITEFACTORY/internal/storage"
)

// go build -ldflags "-X main.Version=x.y.z"
var (
	// Name 服务名称
	Name = "writefactory"
	// Version 服务版本号
	Version string
	// flagconf 配置文件路径
	flagconf string
)

func init() {
	flag.StringVar(&flagconf, "conf", "configs/config.yaml", "config path, eg: -conf config.yaml")
}

func main() {
	flag.Parse()

	// 1. 加载配置
	cfg, err := conf.Load(flagconf)
	if err != nil {
		log.Fatalf("无法加载配置文件: %v", err)
	}

	// 2. 初始化日志
	if err := logger.Init(cfg.Log.Level, cfg.Log.File); err != nil {
		log.Fatalf("无法初始化日志: %v", err)
	}
	logger.Log.Info("启动 WriteFactory 分析服务...")

	// API Key 缺失是硬失败，启动即报错，不等到请求时
	if cfg.LLM.APIKey == "" {
		logger.Log.Fatal("配置错误: 未设置 API_KEY")
	}

	// 3. 初始化历史存储（未配置数据库时仅跳过持久化）
	var store *storage.Storage
	if cfg.DB.Host != "" {
		s, err := storage.NewStorage(cfg.DB)
		if err != nil {
			logger.Log.Errorf("无法连接数据库: %v. 搜索历史将不可用。", err)
		} else {
			store = s
			defer store.Close()
			logger.Log.Info("已成功连接到数据库")
		}
	} else {
		logger.Log.Info("未配置数据库信息，跳过搜索历史持久化")
	}

	// 4. 初始化模型调用限流器
	limit := rate.Limit(float64(cfg.Concurrency.RPM) / 60.0)
	limiter := rate.NewLimiter(limit, cfg.Concurrency.QPS)
	logger.Log.Infof("限流器已配置: Limit=%.2f req/s, Burst=%d", limit, cfg.Concurrency.QPS)

	// 5. 初始化模型客户端
	llmClient := llm.NewClient(llm.Config{
		BaseURL: cfg.LLM.BaseURL,
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.LLM.Model,
	}, limiter)

	// 6. 初始化搜索与采集
	searcher, err := factory.NewSearcher(cfg)
	if err != nil {
		logger.Log.Fatalf("搜索客户端初始化失败: %v", err)
	}
	collector := collect.New(searcher, cfg.Collect.MaxArticles, time.Duration(cfg.Collect.FetchTimeout)*time.Second)

	// 7. 组装业务与 HTTP 服务
	svc := service.New(collector, analyzer.New(llmClient, nil), store)
	httpSrv := server.NewHTTPServer(cfg.Server, svc)

	app := kratos.New(
		kratos.Name(Name),
		kratos.Version(Version),
		kratos.Server(httpSrv),
	)
	if err := app.Run(); err != nil {
		logger.Log.Fatalf("服务退出: %v", err)
	}
}
