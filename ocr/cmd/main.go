package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/IBM/rotisserie/ocr/internal/config"
	"github.com/IBM/rotisserie/ocr/internal/controller"
	"github.com/IBM/rotisserie/ocr/internal/entity"
	"github.com/IBM/rotisserie/ocr/internal/metrics"
	"github.com/IBM/rotisserie/ocr/internal/recognizer"
	"go.uber.org/zap"
)

func main() {
	config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	models, err := modelPaths()
	if err != nil {
		logger.Fatal("model configuration", zap.Error(err))
	}

	registry, err := recognizer.LoadModels(models, logger)
	if err != nil {
		logger.Fatal("load models", zap.Error(err))
	}

	host := os.Getenv(entity.EnvHost)
	port := config.GetEnv(entity.EnvPort, entity.DefaultPort)
	debug := os.Getenv(entity.EnvDebug) != ""
	debugDir := config.GetEnv(entity.EnvDebugDir, entity.DefaultDebugDir)

	srv := controller.NewServer(host, port, registry, metrics.New(), debug, debugDir, logger)
	logger.Info("OCR service listening", zap.String("port", port))
	if err := srv.Start(); err != nil {
		logger.Fatal("serve", zap.Error(err))
	}
}

// modelPaths maps game names to model files. OCR_MODELS carries a
// "game=path" list; MODEL_PATH alone configures just the pubg model.
func modelPaths() (map[string]string, error) {
	models := make(map[string]string)

	if spec := os.Getenv(entity.EnvModels); spec != "" {
		for _, pair := range strings.Split(spec, ",") {
			game, path, ok := strings.Cut(strings.TrimSpace(pair), "=")
			if !ok || game == "" || path == "" {
				return nil, fmt.Errorf("bad %s entry %q", entity.EnvModels, pair)
			}
			models[game] = path
		}
		return models, nil
	}

	if path := os.Getenv(entity.EnvModelPath); path != "" {
		models["pubg"] = path
		return models, nil
	}

	return nil, fmt.Errorf("set %s or %s", entity.EnvModels, entity.EnvModelPath)
}
