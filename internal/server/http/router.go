package httpserver

import (
	"net/http"
	"time"
)

// NewMux 挂上 /api/*、/healthz，webDir 非空时再挂前端静态文件。
func NewMux(h *Handler, webDir string) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/api/", h)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if webDir != "" {
		RegisterStaticRoutes(mux, webDir)
	}
	return mux
}

// NewServer 返回带超时设置的 http.Server，ai_move 可能要想一会儿，写超时放宽。
func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      maxAiTime + 10*time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 16,
	}
}
