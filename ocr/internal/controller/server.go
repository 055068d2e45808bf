// Package controller is the HTTP surface of the OCR service.
package controller

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/IBM/rotisserie/ocr/internal/entity"
	"github.com/IBM/rotisserie/ocr/internal/metrics"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Version is reported by the health endpoint.
const Version = "0.3"

// Recognizer answers recognition requests for a set of games.
type Recognizer interface {
	Recognize(ctx context.Context, game string, image []byte) (entity.Reading, error)
	Games() []string
}

type Server struct {
	host       string
	port       string
	recognizer Recognizer
	metrics    *metrics.Metrics
	debug      bool
	debugDir   string
	logger     *zap.Logger
}

func NewServer(host, port string, recognizer Recognizer, m *metrics.Metrics, debug bool, debugDir string, logger *zap.Logger) *Server {
	return &Server{
		host:       host,
		port:       port,
		recognizer: recognizer,
		metrics:    m,
		debug:      debug,
		debugDir:   debugDir,
		logger:     logger.Named("ocr"),
	}
}

func (r *Server) Start() error {
	if r.debug {
		if err := os.MkdirAll(r.debugDir, 0o755); err != nil {
			return fmt.Errorf("create debug dir: %w", err)
		}
	}
	return r.NewAPI().Run(r.host + ":" + r.port)
}

// NewAPI builds the gin engine: one process endpoint per loaded model,
// plus health and metrics.
func (r *Server) NewAPI() *gin.Engine {
	eng := gin.New()
	eng.Use(gin.Recovery())

	eng.GET("/info", r.info)
	eng.GET("/metrics", gin.WrapH(r.metrics.Handler()))
	for _, game := range r.recognizer.Games() {
		eng.POST("/process_"+game, r.process(game))
	}

	return eng
}

func (r *Server) info(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"app":     "ocr",
		"version": Version,
		"health":  "good",
	})
}

// process answers every decodable request with a well-formed number.
// Requests without a usable image coerce to the sentinel rather than
// surfacing an error status.
func (r *Server) process(game string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		r.metrics.IncRequests(game)

		file, err := ctx.FormFile("image")
		if err != nil {
			r.metrics.IncSentinel(game)
			ctx.JSON(http.StatusOK, gin.H{"number": entity.SentinelAlive})
			return
		}

		src, err := file.Open()
		if err != nil {
			r.metrics.IncSentinel(game)
			ctx.JSON(http.StatusOK, gin.H{"number": entity.SentinelAlive})
			return
		}
		defer src.Close()

		image, err := io.ReadAll(src)
		if err != nil {
			r.metrics.IncSentinel(game)
			ctx.JSON(http.StatusOK, gin.H{"number": entity.SentinelAlive})
			return
		}

		reading, err := r.recognizer.Recognize(ctx, game, image)
		if err != nil {
			r.logger.Error("recognize failed", zap.String("game", game), zap.Error(err))
			ctx.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		if reading.Known {
			r.metrics.IncRecognized(game)
		} else {
			r.metrics.IncSentinel(game)
		}
		if r.debug {
			r.dumpDebug(game, image, reading)
		}

		ctx.JSON(http.StatusOK, gin.H{"number": reading.Number()})
	}
}

// dumpDebug persists the processed image named by a random id and the
// recognized value. Diagnostic only; never affects the response.
func (r *Server) dumpDebug(game string, image []byte, reading entity.Reading) {
	name := fmt.Sprintf("%s_%d.png", uuid.NewString(), reading.Number())
	path := filepath.Join(r.debugDir, name)
	if err := os.WriteFile(path, image, 0o644); err != nil {
		r.logger.Error("write debug image", zap.String("path", path), zap.Error(err))
		return
	}
	r.logger.Info("identified image",
		zap.String("game", game),
		zap.String("file", path),
		zap.Int("number", reading.Number()),
		zap.Float64("probability_pct", reading.Confidence*100))
}
