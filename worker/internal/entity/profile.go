package entity

import "image"

// CropRect is the region of a captured frame that contains the
// remaining-players label, in source pixel coordinates.
type CropRect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Rectangle converts the crop to an image.Rectangle.
func (r CropRect) Rectangle() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// GameProfile bundles the per-game calibration: where the alive counter
// sits on a 720p frame and which OCR endpoint reads it. Profiles are
// fixed at process start.
type GameProfile struct {
	Name        string
	Crop        CropRect
	ProcessPath string
}

// The pubg crop is calibrated against the "N | Alive" label on 720p
// broadcasts. The other profiles follow the same label placement of
// their respective HUDs.
var profiles = map[string]GameProfile{
	"pubg": {
		Name:        "pubg",
		Crop:        CropRect{X: 1190, Y: 20, Width: 22, Height: 22},
		ProcessPath: "/process_pubg",
	},
	"fortnite": {
		Name:        "fortnite",
		Crop:        CropRect{X: 1168, Y: 80, Width: 28, Height: 22},
		ProcessPath: "/process_fortnite",
	},
	"blackout": {
		Name:        "blackout",
		Crop:        CropRect{X: 1148, Y: 36, Width: 30, Height: 24},
		ProcessPath: "/process_blackout",
	},
}

// ProfileFor returns the profile for a game name.
func ProfileFor(name string) (GameProfile, bool) {
	p, ok := profiles[name]
	return p, ok
}
