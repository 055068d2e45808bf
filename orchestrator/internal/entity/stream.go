package entity

import "time"

// StreamRecord is one row of the discovered-streams registry.
type StreamRecord struct {
	Name      string    `json:"name"`
	FirstSeen time.Time `json:"first_seen"`
	LastSeen  time.Time `json:"last_seen"`
	Cycles    int       `json:"cycles"`
}
