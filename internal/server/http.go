package server

import (
	"embed"
	"encoding/json"
	"errors"
	nethttp "net/http"
	"strconv"
	"time"

	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/min407/WRITEFACTORY/internal/analyzer"
	"github.com/min407/WRITEFACTORY/internal/conf"
	"github.com/min407/WRITEFACTORY/internal/llm"
	"github.com/min407/WRITEFACTORY/internal/logger"
	"github.com/min407/WRITEFACTORY/internal/service"
)

//go:embed assets/*
var assets embed.FS

// NewHTTPServer 创建仪表盘 HTTP 服务
func NewHTTPServer(c conf.ServerConfig, svc *service.AnalyzeService) *http.Server {
	opts := []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
		),
	}
	if c.Addr != "" {
		opts = append(opts, http.Address(c.Addr))
	}
	if c.Timeout != "" {
		if d, err := time.ParseDuration(c.Timeout); err == nil {
			opts = append(opts, http.Timeout(d))
		}
	}

	srv := http.NewServer(opts...)

	srv.HandleFunc("/", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.URL.Path != "/" {
			nethttp.NotFound(w, r)
			return
		}
		content, _ := assets.ReadFile("assets/index.html")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(content)
	})

	srv.HandleFunc("/api/analyze", handleAnalyze(svc))
	srv.HandleFunc("/api/history", handleHistory(svc))
	srv.HandleFunc("/api/history/detail", handleHistoryDetail(svc))

	return srv
}

type analyzeRequest struct {
	Keyword string `json:"keyword"`
}

func handleAnalyze(svc *service.AnalyzeService) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.Method != nethttp.MethodPost {
			writeError(w, nethttp.StatusMethodNotAllowed, "method not allowed")
			return
		}

		var req analyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Keyword == "" {
			writeError(w, nethttp.StatusBadRequest, "请输入要分析的关键词")
			return
		}

		data, err := svc.Analyze(r.Context(), req.Keyword)
		if err != nil {
			// 配置缺失、上游失败、模型输出不合法对用户都不可操作，统一提示重试
			logger.Log.Errorf("分析失败 [%s]: %v", req.Keyword, analyzeErrorDetail(err))
			writeError(w, nethttp.StatusInternalServerError, "分析失败，请稍后重试")
			return
		}
		writeJSON(w, data)
	}
}

// analyzeErrorDetail 为诊断日志补充上下文，模型输出不合法时附带原始文本
func analyzeErrorDetail(err error) string {
	var malformed *analyzer.MalformedResponseError
	if errors.As(err, &malformed) {
		return err.Error() + "; 原始输出: " + malformed.Raw
	}
	var upstream *llm.UpstreamError
	if errors.As(err, &upstream) {
		return err.Error()
	}
	return err.Error()
}

func handleHistory(svc *service.AnalyzeService) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		switch r.Method {
		case nethttp.MethodGet:
			limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
			items, err := svc.History(r.Context(), limit)
			if err != nil {
				logger.Log.Errorf("查询搜索历史失败: %v", err)
				writeError(w, nethttp.StatusInternalServerError, "查询历史失败")
				return
			}
			writeJSON(w, items)

		case nethttp.MethodDelete:
			id, err := strconv.Atoi(r.URL.Query().Get("id"))
			if err != nil {
				writeError(w, nethttp.StatusBadRequest, "invalid id")
				return
			}
			if err := svc.DeleteHistory(r.Context(), id); err != nil {
				if kerrors.IsNotFound(err) {
					writeError(w, nethttp.StatusNotFound, "记录不存在")
					return
				}
				logger.Log.Errorf("删除搜索历史失败 [%d]: %v", id, err)
				writeError(w, nethttp.StatusInternalServerError, "删除历史失败")
				return
			}
			writeJSON(w, map[string]bool{"success": true})

		default:
			writeError(w, nethttp.StatusMethodNotAllowed, "method not allowed")
		}
	}
}

func handleHistoryDetail(svc *service.AnalyzeService) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.Method != nethttp.MethodGet {
			writeError(w, nethttp.StatusMethodNotAllowed, "method not allowed")
			return
		}

		id, err := strconv.Atoi(r.URL.Query().Get("id"))
		if err != nil {
			writeError(w, nethttp.StatusBadRequest, "invalid id")
			return
		}

		result, err := svc.HistoryDetail(r.Context(), id)
		if err != nil {
			if kerrors.IsNotFound(err) {
				writeError(w, nethttp.StatusNotFound, "记录不存在")
				return
			}
			logger.Log.Errorf("查询历史详情失败 [%d]: %v", id, err)
			writeError(w, nethttp.StatusInternalServerError, "查询历史失败")
			return
		}
		writeJSON(w, result)
	}
}

func writeJSON(w nethttp.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Errorf("写响应失败: %v", err)
	}
}

func writeError(w nethttp.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
