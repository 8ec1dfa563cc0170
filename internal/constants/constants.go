package constants

const (
	ModuleName     = "storeadmin"
	DefaultEnvFile = ".env"
)

type ContextKey string

const (
	LoggerKey ContextKey = "logger"
)

type ENV string

const (
	Debug ENV = "debug"
	Dev   ENV = "development"
	Stag  ENV = "staging"
	Prod  ENV = "production"
)

func IsValidENV(env string) bool {
	switch ENV(env) {
	case Debug, Dev, Stag, Prod:
		return true
	default:
		return false
	}
}

// IsLocal 本機開發用人看得懂的 console log
func (e ENV) IsLocal() bool {
	return e == Debug || e == Dev
}

type RequestID string

const (
	RequestIDKey    RequestID = "request_id"
	RequestIDHeader           = "request_id"
)

// 資料來源
type StoreBackend string

const (
	StoreMemory    StoreBackend = "memory"
	StoreFirestore StoreBackend = "firestore"
)

// 異動通知
type NotifierKind string

const (
	NotifierNop   NotifierKind = "nop"
	NotifierKafka NotifierKind = "kafka"
	NotifierRedis NotifierKind = "redis"
)
