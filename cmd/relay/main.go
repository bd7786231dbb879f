// Command relay forwards battle frames between connected clients and serves status over HTTP
package main

import (
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/lixenwraith/story-knights/config"
	"github.com/lixenwraith/story-knights/core"
	"github.com/lixenwraith/story-knights/logging"
	"github.com/lixenwraith/story-knights/network"
	"github.com/lixenwraith/story-knights/parameter"
	"github.com/lixenwraith/story-knights/status"
	"github.com/lixenwraith/story-knights/storage"
)

var (
	configPath = flag.String("config", "", "YAML config, defaults when empty")
	listenAddr = flag.String("listen", "", "relay listen address, overrides the config")
	statusAddr = flag.String("status", "", "HTTP status address, overrides the config")
	dbPath     = flag.String("db", "", "SQLite player records served on /leaderboard")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.Fatal("failed to load config", err, nil)
	}

	reg := status.NewRegistry()
	hub := network.NewHub(network.FromConfig(cfg, network.RoleServer, *listenAddr), reg)
	if err := hub.Start(); err != nil {
		logging.Fatal("failed to start relay", err, nil)
	}
	defer hub.Stop()
	logging.Info("relay listening", logging.Fields{"addr": hub.Addr().String()})

	h := &statusHandler{hub: hub, reg: reg}
	if *dbPath != "" {
		repo, err := storage.Open(*dbPath)
		if err != nil {
			logging.Fatal("failed to open database", err, logging.Fields{"path": *dbPath})
		}
		defer repo.Close()
		h.repo = repo
	}

	addr := *statusAddr
	if addr == "" {
		addr = cfg.Network.StatusAddress
	}
	if addr == "" {
		addr = parameter.RelayStatusAddress
	}

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{Addr: addr, Handler: newRouter(h)}
	core.Go(func() {
		logging.Info("status server started", logging.Fields{"addr": addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("status server failed", err, logging.Fields{"addr": addr})
		}
	})

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	logging.Info("relay shutting down", logging.Fields{"peers": hub.PeerCount()})
	srv.Close()
}
