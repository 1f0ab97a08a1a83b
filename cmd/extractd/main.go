// extractd runs the stub extraction backend: the same wire contract as
// the real collaborator, with canned extraction results and in-memory
// per-thread storage. Meant for local development of the composer.
package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/quillchat-dev/quillchat/internal/stub/handler"
	"github.com/quillchat-dev/quillchat/internal/stub/router"
	"github.com/quillchat-dev/quillchat/internal/stub/service"
	"github.com/quillchat-dev/quillchat/shared/config"
	"github.com/quillchat-dev/quillchat/shared/jwt"
	"github.com/quillchat-dev/quillchat/shared/logger"
)

const (
	defaultListenAddr = ":8000"
	defaultSweepEvery = time.Minute
	readTimeout       = 10 * time.Second
	writeTimeout      = 30 * time.Second
)

func main() {
	var configFolder string
	flag.StringVar(&configFolder, "config_folder", "config", "path to folder with configs")
	flag.Parse()

	cfg := config.MustLoad(configFolder)
	logger.Initialize(cfg.Public.LogLevel, cfg.Public.LogJSON)

	store := service.NewFileStore(cfg.Public.FileTTL)
	sweepEvery := cfg.Public.FileSweepInterval
	if sweepEvery <= 0 {
		sweepEvery = defaultSweepEvery
	}
	if cfg.Public.FileTTL > 0 {
		store.StartBackgroundSweep(context.Background(), sweepEvery)
	}

	var jwtService jwt.JwtService
	if cfg.JwtKey() != "" {
		jwtService = jwt.New(cfg.JwtKey(), cfg.JwtTTL())
	}

	h := handler.New(store, cfg.Public.MaxAttachmentSizeBytes)
	r := router.New(h, jwtService, cfg.Public.StubAllowedOrigins)

	addr := cfg.Public.StubListenAddr
	if addr == "" {
		addr = defaultListenAddr
	}

	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	slog.Info("extractd listening", "addr", addr, "auth", jwtService != nil)
	if err := server.ListenAndServe(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
