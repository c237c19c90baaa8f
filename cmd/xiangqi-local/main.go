package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"xiangqi/internal/config"
	"xiangqi/internal/engine"
	"xiangqi/internal/server/game"
	httpserver "xiangqi/internal/server/http"
	"xiangqi/internal/storage"
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

	_ = cmd.Start() // 不阻塞，不关心错误（某些服务器环境可能无图形界面）
}

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	addr := flag.String("addr", "", "listen address (overrides config)")
	webDir := flag.String("web", "", "directory with index.html / js / svg (overrides config)")
	dataDir := flag.String("data", "", "preferences database directory (overrides config)")
	depth := flag.Int("depth", 0, "default AI search depth (overrides config)")
	workers := flag.Int("workers", 0, "root-parallel search goroutines, 0 = config")
	timeLimit := flag.Duration("time", 0, "AI time limit per move (overrides config)")
	logLevel := flag.String("log-level", "", "debug / info / warn / error (overrides config)")
	noBrowser := flag.Bool("no-browser", false, "do not open the default browser")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *webDir != "" {
		cfg.WebDir = *webDir
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}
	if *depth > 0 {
		cfg.Search.Depth = *depth
	}
	if *workers > 0 {
		cfg.Search.Workers = *workers
	}
	if *timeLimit > 0 {
		cfg.Search.TimeLimit = *timeLimit
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	logger, err := cfg.Log.NewLogger(os.Stderr)
	if err != nil {
		log.Fatal().Err(err).Msg("logger")
	}
	log.Logger = logger

	store, err := storage.Open(cfg.DataDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("open preferences storage")
	}
	defer store.Close()

	eng := engine.NewEngine(
		engine.WithWorkers(cfg.Search.Workers),
		engine.WithLogger(logger),
	)
	games := game.NewManager(
		game.WithEngine(eng),
		game.WithDefaultDepth(cfg.Search.Depth),
		game.WithTimeLimit(cfg.Search.TimeLimit),
		game.WithLogger(logger),
	)
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpserver.NewServer(httpserver.NewHandler(games, eng, store, logger), cfg.WebDir, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("shutdown")
		}
	}()

	logger.Info().
		Str("addr", cfg.Addr).
		Str("web", cfg.WebDir).
		Str("data", cfg.DataDir).
		Int("depth", cfg.Search.Depth).
		Int("workers", cfg.Search.Workers).
		Msg("listening")

	// 延迟 100ms 打开默认浏览器，否则可能服务器未启动完成
	if !*noBrowser {
		go func() {
			time.Sleep(100 * time.Millisecond)
			openBrowser("http://127.0.0.1" + cfg.Addr)
		}()
	}

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error().Err(err).Msg("serve")
		return
	}
	logger.Info().Msg("bye")
}
