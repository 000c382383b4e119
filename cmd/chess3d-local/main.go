package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"strconv"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"chess3d/internal/server/game"
	httpserver "chess3d/internal/server/http"
)

func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default: // linux / bsd
		cmd = exec.Command("xdg-open", url)
	}

	_ = cmd.Start() // 不阻塞，无图形界面时失败也无所谓
}

func main() {
	// Flags (env fallbacks)
	addr := flag.String("addr", getenv("CHESS3D_ADDR", ":2888"), "listen address")
	webDir := flag.String("web", getenv("CHESS3D_WEB", ""), "directory with index.html / js (empty: API only)")
	depth := flag.Int("depth", getenvInt("CHESS3D_DEPTH", 2), "default AI search depth")
	open := flag.Bool("open", false, "open the default browser after start")
	idle := flag.Duration("idle", 6*time.Hour, "drop games untouched for this long (0: keep forever)")
	flag.Parse()

	games := game.NewManager()
	h := httpserver.NewHandler(games, *depth)
	srv := httpserver.NewServer(*addr, httpserver.NewMux(h, *webDir))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("listening on %s (web=%q, depth=%d)", *addr, *webDir, *depth)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Printf("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	if *idle > 0 {
		g.Go(func() error {
			t := time.NewTicker(*idle / 4)
			defer t.Stop()
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-t.C:
					if n := games.Prune(time.Now().Add(-*idle)); n > 0 {
						log.Printf("pruned %d idle games, %d left", n, games.Len())
					}
				}
			}
		})
	}

	if *open && *webDir != "" {
		// 延迟 100ms 打开浏览器，否则服务器可能还没起来
		go func() {
			time.Sleep(100 * time.Millisecond)
			openBrowser("http://127.0.0.1" + *addr)
		}()
	}

	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			log.Printf("ignoring %s=%q: %v", key, v, err)
			return def
		}
		return n
	}
	return def
}
