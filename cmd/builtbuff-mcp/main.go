package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/lynx-zenchar/builtbuff/internal/config"
	"github.com/lynx-zenchar/builtbuff/internal/mcp"
	"github.com/lynx-zenchar/builtbuff/internal/remote"
	"github.com/lynx-zenchar/builtbuff/internal/storage"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	remoteURL := flag.String("remote", "", "base URL of a running BuiltBuff server; when set, data is fetched over HTTP instead of connecting to the database")
	parseMode := flag.Bool("parse", false, "fetch data from the hosted Parse-compatible backend configured under remote in the config file")
	user := flag.String("user", "local", "user ID to scope all queries to")
	flag.Parse()

	// Stdio transport owns stdout, so logs go to stderr.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	var ds mcp.RecordSource

	switch {
	case *remoteURL != "":
		ds = mcp.NewHTTPClient(*remoteURL)
		log.Info("remote mode", "url", *remoteURL)
	case *parseMode:
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Error("failed to load config", "error", err)
			os.Exit(1)
		}
		if cfg.Remote.BaseURL == "" {
			log.Error("parse mode requires remote.base_url in config")
			os.Exit(1)
		}
		ds = remote.NewClient(cfg.Remote.BaseURL, cfg.Remote.AppID, cfg.Remote.RestKey)
		log.Info("parse backend mode", "url", cfg.Remote.BaseURL)
	default:
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Error("failed to load config", "error", err)
			os.Exit(1)
		}

		db, err := storage.New(context.Background(), cfg.Database.DSN())
		if err != nil {
			log.Error("failed to connect database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		ds = db
		log.Info("local mode", "database", cfg.Database.Name)
	}

	s := mcp.New(ds, Version, log)

	err := server.ServeStdio(s, server.WithStdioContextFunc(
		func(ctx context.Context) context.Context {
			return mcp.WithUserID(ctx, *user)
		},
	))
	if err != nil {
		fmt.Fprintf(os.Stderr, "mcp server error: %v\n", err)
		os.Exit(1)
	}
}
