package entity

const (
	EnvRedis         = "REDIS_ADDR"
	EnvRedisPassword = "REDIS_PASSWORD"
	EnvReadKey       = "REDIS_READ_KEY"
	EnvWriteKey      = "REDIS_WRITE_KEY"

	EnvMode        = "WORKER_MODE"
	EnvGame        = "GAME"
	EnvCrop        = "CROP_RECT"
	EnvWorkDir     = "WORK_DIR"
	EnvMetricsAddr = "METRICS_ADDR"

	EnvProvider = "STREAM_PROVIDER"
	EnvToken    = "TOKEN"

	EnvOCR   = "OCR_ADDR"
	EnvKafka = "KAFKA_ADDRESS"
)

const (
	DefaultReadKey  = "work"
	DefaultWriteKey = "stream-by-alive"
	DefaultProvider = "twitch.tv"
	DefaultOCRAddr  = "http://rotisserie-ocr:3001"
)
