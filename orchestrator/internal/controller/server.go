// Package controller is the orchestrator's admin API: registry lookups
// and manual enqueueing.
package controller

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/IBM/rotisserie/orchestrator/internal/db"
	"github.com/IBM/rotisserie/orchestrator/internal/entity"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Registry is the stream-registry surface the API needs.
type Registry interface {
	RecordSighting(ctx context.Context, name string, when time.Time) error
	GetStream(ctx context.Context, name string) (*entity.StreamRecord, error)
	ListStreams(ctx context.Context, limit int) ([]entity.StreamRecord, error)
}

type Server struct {
	host     string
	port     string
	registry Registry
	redis    *redis.Client
	workKey  string
	logger   *zap.Logger
}

func NewServer(host, port string, registry Registry, client *redis.Client, workKey string, logger *zap.Logger) *Server {
	return &Server{
		host:     host,
		port:     port,
		registry: registry,
		redis:    client,
		workKey:  workKey,
		logger:   logger.Named("controller"),
	}
}

func (r *Server) Start() error {
	return r.NewAPI().Run(r.host + ":" + r.port)
}

func (r *Server) NewAPI() *gin.Engine {
	eng := gin.New()
	eng.Use(gin.Recovery())

	eng.GET("/healthz", r.health)

	apiV1 := eng.Group("/v1")
	apiV1.GET("/streams", r.listStreams)
	apiV1.GET("/streams/:name", r.getStream)
	apiV1.POST("/streams", r.enqueueStream)

	return eng
}

func (r *Server) health(ctx *gin.Context) {
	ctx.Status(http.StatusOK)
}

func (r *Server) listStreams(ctx *gin.Context) {
	records, err := r.registry.ListStreams(ctx, 100)
	if err != nil {
		r.logger.Error("list streams failed", zap.Error(err))
		ctx.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	ctx.JSON(http.StatusOK, records)
}

func (r *Server) getStream(ctx *gin.Context) {
	name := ctx.Param("name")

	record, err := r.registry.GetStream(ctx, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			ctx.AbortWithStatus(http.StatusNotFound)
			return
		}
		r.logger.Error("get stream failed", zap.String("stream", name), zap.Error(err))
		ctx.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	ctx.JSON(http.StatusOK, record)
}

// enqueueStream pends a stream by hand, outside the scan cycle.
func (r *Server) enqueueStream(ctx *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := ctx.Bind(&req); err != nil {
		ctx.AbortWithStatus(http.StatusBadRequest)
		return
	}

	if _, err := db.SeedWork(ctx, r.redis, r.workKey, req.Name); err != nil {
		r.logger.Error("enqueue failed", zap.String("stream", req.Name), zap.Error(err))
		ctx.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	if err := r.registry.RecordSighting(ctx, req.Name, time.Now()); err != nil {
		r.logger.Warn("record sighting failed", zap.String("stream", req.Name), zap.Error(err))
	}

	ctx.JSON(http.StatusOK, gin.H{"name": req.Name, "status": "pending"})
}
