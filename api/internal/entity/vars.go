package entity

const (
	EnvHost = "ENV_HOST"
	EnvPort = "ENV_PORT"

	EnvRedis         = "REDIS_ADDR"
	EnvRedisPassword = "REDIS_PASSWORD"
	EnvWriteKey      = "REDIS_WRITE_KEY"

	EnvPlayerURL = "PLAYER_URL_TEMPLATE"
)

const (
	DefaultPort      = "3000"
	DefaultWriteKey  = "stream-by-alive"
	DefaultPlayerURL = "https://player.twitch.tv/?channel=%s"
)

// Entry is one leaderboard row as served to viewers.
type Entry struct {
	StreamName string `json:"stream_name"`
	Alive      int    `json:"alive"`
	StreamURL  string `json:"stream_url"`
}
