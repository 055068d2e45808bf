// Package frame turns a local capture artifact into a single cropped
// grayscale still.
package frame

import (
	"errors"
	"fmt"
	"image"

	"github.com/IBM/rotisserie/worker/internal/entity"
	"gocv.io/x/gocv"
)

// ErrNoFrame is returned when the capture artifact yields no decodable
// frame (empty or corrupt recording).
var ErrNoFrame = errors.New("no frame in capture artifact")

// Frame is a decoded single-channel still. The caller owns it and must
// Close it.
type Frame struct {
	mat gocv.Mat
}

// FirstFrame decodes the first frame of the recording at path, applies
// the profile's crop rectangle and converts to grayscale.
func FirstFrame(path string, crop entity.CropRect) (*Frame, error) {
	video, err := gocv.OpenVideoCapture(path)
	if err != nil {
		return nil, fmt.Errorf("open capture artifact: %w", err)
	}
	defer video.Close()

	img := gocv.NewMat()
	defer img.Close()

	if ok := video.Read(&img); !ok || img.Empty() {
		return nil, ErrNoFrame
	}

	rect := crop.Rectangle().Intersect(image.Rect(0, 0, img.Cols(), img.Rows()))
	if rect.Empty() {
		return nil, ErrNoFrame
	}

	region := img.Region(rect)
	defer region.Close()

	gray := gocv.NewMat()
	gocv.CvtColor(region, &gray, gocv.ColorBGRToGray)
	if gray.Empty() {
		gray.Close()
		return nil, ErrNoFrame
	}

	return &Frame{mat: gray}, nil
}

// LuminanceAt reports the luminance of pixel (x, y). The bool is false
// when the coordinate falls outside the crop.
func (r *Frame) LuminanceAt(x, y int) (uint8, bool) {
	if x < 0 || y < 0 || x >= r.mat.Cols() || y >= r.mat.Rows() {
		return 0, false
	}
	return r.mat.GetUCharAt(y, x), true
}

// EncodePNG serializes the still for the recognition request.
func (r *Frame) EncodePNG() ([]byte, error) {
	buf, err := gocv.IMEncode(gocv.PNGFileExt, r.mat)
	if err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}
	defer buf.Close()

	out := make([]byte, buf.Len())
	copy(out, buf.GetBytes())
	return out, nil
}

// Close releases the underlying pixel data.
func (r *Frame) Close() error {
	return r.mat.Close()
}
