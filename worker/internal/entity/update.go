package entity

// Update is the message published to the results feed after every
// leaderboard write.
type Update struct {
	Stream    string `json:"stream"`
	Alive     int    `json:"alive"`
	Timestamp int64  `json:"ts"`
}
