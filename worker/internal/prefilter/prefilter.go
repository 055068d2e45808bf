// Package prefilter guards recognition against the pre-match HUD layout.
//
// The crop is calibrated for a label reading "N | Alive". Before a match
// starts the same spot reads "N | Joined", one character longer, which
// pushes the leading digit out of the crop. The recognizer then reads the
// truncated number with high confidence, e.g. "96 | Joined" cropped to
// "6 |" scores that stream as 6 alive. Instead of re-cropping, we look
// for the "|" divider itself: three samples at fixed offsets, expecting a
// light, dark, light run when the bar is present.
package prefilter

// Sample coordinates of the divider within the cropped frame, in (x, y)
// pixel positions. Luminance runs dark (low) to light (high).
const (
	leftX   = 15
	centerX = 16
	rightX  = 17
	sampleY = 9
)

// Tuned against the broadcast HUD font; do not adjust independently.
const (
	sideTolerance = 0.10
	centerDrop    = 0.75
)

// Sampler reports the luminance of a single pixel of the cropped frame.
// The bool is false when the coordinate is outside the image.
type Sampler interface {
	LuminanceAt(x, y int) (uint8, bool)
}

// DividerPresent reports whether the three luminance samples look like a
// vertical bar: the two sides within 10% of each other and the center at
// least 25% darker than the right side.
func DividerPresent(left, center, right uint8) bool {
	l, c, r := float64(left), float64(center), float64(right)
	if !((1-sideTolerance)*r < l && l < (1+sideTolerance)*r) {
		return false
	}
	return c < centerDrop*r
}

// Ambiguous samples the fixed divider coordinates of a cropped frame and
// reports whether the frame is still showing the pre-match layout. Frames
// too small to sample are treated as usable; recognition decides.
func Ambiguous(frame Sampler) bool {
	left, ok := frame.LuminanceAt(leftX, sampleY)
	if !ok {
		return false
	}
	center, ok := frame.LuminanceAt(centerX, sampleY)
	if !ok {
		return false
	}
	right, ok := frame.LuminanceAt(rightX, sampleY)
	if !ok {
		return false
	}
	return DividerPresent(left, center, right)
}
