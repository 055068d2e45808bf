package entity

const (
	EnvHost      = "ENV_HOST"
	EnvPort      = "ENV_PORT"
	EnvModelPath = "MODEL_PATH"
	EnvModels    = "OCR_MODELS"
	EnvDebug     = "OCR_DEBUG"
	EnvDebugDir  = "OCR_DEBUG_DIR"
)

const (
	DefaultPort     = "3001"
	DefaultDebugDir = "debug"
)
