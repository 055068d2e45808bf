// Package recognizer serves the per-game number-recognition models. Each
// model is loaded exactly once at startup; requests share nothing but
// the read-only nets.
package recognizer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sort"
	"strconv"
	"sync"

	"github.com/IBM/rotisserie/ocr/internal/entity"
	"go.uber.org/zap"
	"gocv.io/x/gocv"
)

const ratio = 0.003921568627

var inputSize = image.Pt(100, 32)

// Model wraps one loaded net. Forward passes are serialized; the
// OpenCV net is not safe for concurrent inference.
type Model struct {
	mu  sync.Mutex
	net gocv.Net
}

// Registry holds the loaded models keyed by game name.
type Registry struct {
	models map[string]*Model
	logger *zap.Logger
}

// LoadModels reads each game's ONNX model. Any model that fails to load
// is fatal; a process without its models must not serve.
func LoadModels(paths map[string]string, logger *zap.Logger) (*Registry, error) {
	if len(paths) == 0 {
		return nil, errors.New("no models configured")
	}

	models := make(map[string]*Model, len(paths))
	for game, path := range paths {
		net := gocv.ReadNetFromONNX(path)
		if net.Empty() {
			return nil, fmt.Errorf("load model for %s from %s", game, path)
		}
		net.SetPreferableBackend(gocv.NetBackendOpenCV)
		net.SetPreferableTarget(gocv.NetTargetCPU)
		models[game] = &Model{net: net}
		logger.Info("loaded model",
			zap.String("game", game),
			zap.String("path", path))
	}

	return &Registry{
		models: models,
		logger: logger.Named("recognizer"),
	}, nil
}

// Games lists the configured game names in stable order.
func (r *Registry) Games() []string {
	games := make([]string, 0, len(r.models))
	for game := range r.models {
		games = append(games, game)
	}
	sort.Strings(games)
	return games
}

// Recognize runs the game's model over raw image bytes. Everything that
// fails to yield a positive integer coerces to an unknown reading, never
// to an error: the caller always gets a publishable number.
func (r *Registry) Recognize(_ context.Context, game string, imageBytes []byte) (entity.Reading, error) {
	model, ok := r.models[game]
	if !ok {
		return entity.Reading{}, fmt.Errorf("no model for game %q", game)
	}

	img, err := gocv.IMDecode(imageBytes, gocv.IMReadGrayScale)
	if err != nil {
		return entity.Unknown(0), nil
	}
	if img.Empty() {
		img.Close()
		return entity.Unknown(0), nil
	}
	defer img.Close()

	resized := gocv.NewMat()
	defer resized.Close()
	gocv.Resize(img, &resized, inputSize, 0, 0, gocv.InterpolationLinear)

	blob := gocv.BlobFromImage(resized, ratio, inputSize, gocv.NewScalar(0, 0, 0, 0), false, false)
	defer blob.Close()

	model.mu.Lock()
	model.net.SetInput(blob, "")
	out := model.net.Forward("")
	model.mu.Unlock()
	defer out.Close()

	digits, conf := decode(stepRows(out))

	n, err := strconv.Atoi(digits)
	if err != nil || n <= 0 {
		// 0 isn't a possible reading; it is usually a clipped 100.
		return entity.Unknown(conf), nil
	}
	return entity.Reading{Count: n, Confidence: conf, Known: true}, nil
}

// stepRows flattens the forward output into per-step logit rows.
func stepRows(out gocv.Mat) [][]float32 {
	m := out
	if sz := out.Size(); len(sz) == 3 {
		reshaped := out.Reshape(1, sz[1])
		defer reshaped.Close()
		m = reshaped
	}

	rows, cols := m.Rows(), m.Cols()
	steps := make([][]float32, rows)
	for i := 0; i < rows; i++ {
		row := make([]float32, cols)
		for j := 0; j < cols; j++ {
			row[j] = m.GetFloatAt(i, j)
		}
		steps[i] = row
	}
	return steps
}
