package main

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lixenwraith/story-knights/network"
	"github.com/lixenwraith/story-knights/status"
	"github.com/lixenwraith/story-knights/storage"
)

const (
	routeHealth      = "/health"
	routeStats       = "/stats"
	routeLeaderboard = "/leaderboard"

	defaultLeaderboardSize = 10
	maxLeaderboardSize     = 100
)

// statusHandler serves relay health, counters and the stored leaderboard
type statusHandler struct {
	hub  *network.Hub
	reg  *status.Registry
	repo storage.Repository // nil when the relay runs without a database
}

func newRouter(h *statusHandler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.GET(routeHealth, h.health)
	router.GET(routeStats, h.stats)
	router.GET(routeLeaderboard, h.leaderboard)
	return router
}

func (h *statusHandler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "peers": h.hub.PeerCount()})
}

func (h *statusHandler) stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.reg.Snapshot())
}

// leaderboard returns stored records ordered by wins, ?limit=N
func (h *statusHandler) leaderboard(c *gin.Context) {
	if h.repo == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no player database configured"})
		return
	}
	limit := defaultLeaderboardSize
	if s := c.Query("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= maxLeaderboardSize {
			limit = n
		}
	}
	records, err := h.repo.TopPlayers(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch leaderboard"})
		return
	}
	c.JSON(http.StatusOK, records)
}
