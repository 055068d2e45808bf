package entity

// SentinelAlive is reported when an image yields no usable count: model
// output that does not parse as a positive integer, an undecodable
// upload, or a frame from a game that has not started. Downstream
// ranking treats all of these identically, sorting them last.
const SentinelAlive = 100

// Reading is the tagged recognition outcome. The distinction between a
// recognized count and an unknown one is kept here and only collapses to
// the literal sentinel at the JSON boundary.
type Reading struct {
	Count      int
	Confidence float64
	Known      bool
}

// Unknown builds a sentinel reading carrying whatever confidence the
// model reported.
func Unknown(confidence float64) Reading {
	return Reading{Confidence: confidence}
}

// Number is the wire representation of the reading.
func (r Reading) Number() int {
	if !r.Known {
		return SentinelAlive
	}
	return r.Count
}
