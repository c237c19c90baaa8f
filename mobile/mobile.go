// Package mobile 是给 gomobile bind 用的入口，在 App 里起一个本地 HTTP 服务。
package mobile

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"xiangqi/internal/engine"
	"xiangqi/internal/server/game"
	httpserver "xiangqi/internal/server/http"
	"xiangqi/internal/storage"
)

// Server 是正在运行的本地服务
type Server struct {
	srv   *http.Server
	ln    net.Listener
	store *storage.Storage
}

// StartServer starts the local HTTP server.
// webDir: physical path to the extracted web assets
// dataDir: where preferences are kept, "" keeps them in memory
// port: port to listen on, e.g. "2888"; "0" picks a free one
func StartServer(webDir, dataDir, port string) (*Server, error) {
	logger := log.Logger.Level(zerolog.InfoLevel)

	store, err := storage.Open(dataDir)
	if err != nil {
		return nil, err
	}
	ln, err := net.Listen("tcp", "127.0.0.1:"+port)
	if err != nil {
		store.Close()
		return nil, err
	}

	eng := engine.NewEngine(engine.WithWorkers(engine.DefaultWorkers()), engine.WithLogger(logger))
	games := game.NewManager(game.WithEngine(eng), game.WithLogger(logger))
	s := &Server{
		srv: &http.Server{
			Handler:           httpserver.NewServer(httpserver.NewHandler(games, eng, store, logger), webDir, logger),
			ReadHeaderTimeout: 5 * time.Second,
		},
		ln:    ln,
		store: store,
	}

	// Run in background so it doesn't block the Android UI thread
	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("server error")
		}
	}()
	return s, nil
}

// Addr 实际监听的地址，例如 127.0.0.1:2888
func (s *Server) Addr() string {
	return s.ln.Addr().String()
}

// Stop 关闭服务并释放数据库
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := s.srv.Shutdown(ctx)
	return errors.Join(err, s.store.Close())
}
