package entity

const (
	EnvHost = "ENV_HOST"
	EnvPort = "ENV_PORT"

	EnvRedis         = "REDIS_ADDR"
	EnvRedisPassword = "REDIS_PASSWORD"
	EnvReadKey       = "REDIS_READ_KEY"

	EnvPostgres = "POSTGRES_DSN"

	EnvStreamsAPI = "STREAMS_API"
	EnvClientID   = "CLIENT_ID"
	EnvGameTitle  = "GAME_TITLE"
	EnvInterval   = "SCAN_INTERVAL_SECONDS"
	EnvLimit      = "SCAN_LIMIT"
)

const (
	DefaultPort      = "3002"
	DefaultReadKey   = "work"
	DefaultGameTitle = "PLAYERUNKNOWN'S BATTLEGROUNDS"
	DefaultInterval  = 60
	DefaultLimit     = 100
)
