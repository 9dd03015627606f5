package main

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"prop-server/config"
	"prop-server/di"
)

// search sessions and location stores are swept this often
const SEARCH_SESSION_EVICTION_INTERVAL = time.Minute

func setupLogging(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warnf("Unknown log level %q, using info", cfg.LogLevel)
		level = log.InfoLevel
	}
	log.SetLevel(level)
	if cfg.IsProd() {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}

func main() {
	cfg := config.Load()
	setupLogging(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	container := di.NewContainer(ctx, cfg)

	log.Println("refreshing sections!")
	if err := container.SectionsRefresherService.RefreshSections(ctx); err != nil {
		log.Printf("Initial sections refresh failed: %v", err)
	}
	log.Println("starting periodic job!")
	container.SectionsRefresherService.StartPeriodicJob(ctx, cfg.SectionsRefreshInterval)
	container.SearchSessions.StartEvicting(ctx, SEARCH_SESSION_EVICTION_INTERVAL)
	container.LocationStores.StartEvicting(ctx, SEARCH_SESSION_EVICTION_INTERVAL)

	log.Println("starting server!")
	container.PropHttpServer.Start(cancel)
	log.Println("server stopped!")
}
