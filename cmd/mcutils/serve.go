package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/llGaetanll/McUtils/internal/config"
	"github.com/llGaetanll/McUtils/internal/storage"
	"github.com/llGaetanll/McUtils/internal/transport/ws"
)

func runServe(ctx context.Context, args []string, _ io.Writer, log *slog.Logger) error {
	cfg := config.DefaultConfig()
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	path := bindConfig(fs, cfg)
	if err := loadConfig(fs, args, cfg, path); err != nil {
		return err
	}
	level, _ := cfg.Level()
	log = newLogger(level)

	var index *storage.Index
	if cfg.DBPath != "" {
		ix, err := storage.OpenIndex(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open index: %w", err)
		}
		defer ix.Close()
		index = ix
	}

	mux := http.NewServeMux()
	mux.Handle("GET /search", ws.NewServer(cfg.Search(log), index, log).Handler())
	srv := &http.Server{Addr: cfg.Addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdown)
	}()

	log.Info("listening", "addr", cfg.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
