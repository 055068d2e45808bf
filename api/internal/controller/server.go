// Package controller is the viewer-facing leaderboard API.
package controller

import (
	"fmt"
	"net/http"

	"github.com/IBM/rotisserie/api/internal/db"
	"github.com/IBM/rotisserie/api/internal/entity"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	host      string
	port      string
	client    *redis.Client
	rankKey   string
	playerURL string
	logger    *zap.Logger
}

func NewServer(host, port string, client *redis.Client, rankKey, playerURL string, logger *zap.Logger) *Server {
	return &Server{
		host:      host,
		port:      port,
		client:    client,
		rankKey:   rankKey,
		playerURL: playerURL,
		logger:    logger.Named("api"),
	}
}

func (r *Server) Start() error {
	return r.NewAPI().Run(r.host + ":" + r.port)
}

func (r *Server) NewAPI() *gin.Engine {
	eng := gin.New()
	eng.Use(gin.Recovery())

	eng.GET("/all", r.all)
	eng.GET("/healthz", r.health)

	return eng
}

// all serves the full leaderboard, fewest remaining players first.
func (r *Server) all(ctx *gin.Context) {
	ranked, err := db.Leaderboard(ctx, r.client, r.rankKey, 0)
	if err != nil {
		r.logger.Error("read leaderboard", zap.Error(err))
		ctx.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	entries := make([]entity.Entry, 0, len(ranked))
	for _, row := range ranked {
		entries = append(entries, entity.Entry{
			StreamName: row.Stream,
			Alive:      row.Alive,
			StreamURL:  fmt.Sprintf(r.playerURL, row.Stream),
		})
	}

	ctx.JSON(http.StatusOK, entries)
}

func (r *Server) health(ctx *gin.Context) {
	if err := r.client.Ping(ctx).Err(); err != nil {
		ctx.AbortWithStatus(http.StatusServiceUnavailable)
		return
	}
	ctx.Status(http.StatusOK)
}
