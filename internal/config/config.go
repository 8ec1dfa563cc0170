package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"
	"time"

	"github.com/RoyceAzure/lab/storeadmin/internal/constants"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

type Config struct {
	Env                      constants.ENV          `mapstructure:"ENV"`
	ServerPort               string                 `mapstructure:"SERVER_PORT"`
	LogLevel                 string                 `mapstructure:"LOG_LEVEL"`
	StoreBackend             constants.StoreBackend `mapstructure:"STORE_BACKEND"`
	FirestoreProjectID       string                 `mapstructure:"FIRESTORE_PROJECT_ID"`
	FirestoreCredentialsFile string                 `mapstructure:"FIRESTORE_CREDENTIALS_FILE"`
	FixtureFile              string                 `mapstructure:"FIXTURE_FILE"`
	Notifier                 constants.NotifierKind `mapstructure:"NOTIFIER"`
	KafkaBrokers             string                 `mapstructure:"KAFKA_BROKERS"`
	KafkaTopic               string                 `mapstructure:"KAFKA_TOPIC"`
	RedisAddress             string                 `mapstructure:"REDIS_ADDRESS"`
	RedisPassword            string                 `mapstructure:"REDIS_PASSWORD"`
	RedisDB                  int                    `mapstructure:"REDIS_DB"`
	RedisChannel             string                 `mapstructure:"REDIS_CHANNEL"`
	AggregationConcurrency   int                    `mapstructure:"AGGREGATION_CONCURRENCY"`
	ImageMaxWidth            int                    `mapstructure:"IMAGE_MAX_WIDTH"`
	ImageQuality             int                    `mapstructure:"IMAGE_QUALITY"`
	ShutdownTimeout          time.Duration          `mapstructure:"SHUTDOWN_TIMEOUT"`
	RateLimitRPS             float64                `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst           int                    `mapstructure:"RATE_LIMIT_BURST"`
}

var defaults = map[string]any{
	"ENV":                        string(constants.Dev),
	"SERVER_PORT":                "8080",
	"LOG_LEVEL":                  "info",
	"STORE_BACKEND":              string(constants.StoreMemory),
	"FIRESTORE_PROJECT_ID":       "",
	"FIRESTORE_CREDENTIALS_FILE": "",
	"FIXTURE_FILE":               "",
	"NOTIFIER":                   string(constants.NotifierNop),
	"KAFKA_BROKERS":              "",
	"KAFKA_TOPIC":                "storeadmin.mutations",
	"REDIS_ADDRESS":              "",
	"REDIS_PASSWORD":             "",
	"REDIS_DB":                   0,
	"REDIS_CHANNEL":              "storeadmin.mutations",
	"AGGREGATION_CONCURRENCY":    8,
	"IMAGE_MAX_WIDTH":            800,
	"IMAGE_QUALITY":              70,
	"SHUTDOWN_TIMEOUT":           "30s",
	"RATE_LIMIT_RPS":             5.0,
	"RATE_LIMIT_BURST":           10,
}

// Brokers KAFKA_BROKERS 以逗號分隔
func (c *Config) Brokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaBrokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func (c *Config) Validate() error {
	if !constants.IsValidENV(string(c.Env)) {
		return fmt.Errorf("unknown ENV %q", c.Env)
	}
	switch c.StoreBackend {
	case constants.StoreMemory:
	case constants.StoreFirestore:
		if c.FirestoreProjectID == "" {
			return errors.New("FIRESTORE_PROJECT_ID is required for the firestore backend")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}
	switch c.Notifier {
	case constants.NotifierNop:
	case constants.NotifierKafka:
		if len(c.Brokers()) == 0 || c.KafkaTopic == "" {
			return errors.New("KAFKA_BROKERS and KAFKA_TOPIC are required for the kafka notifier")
		}
	case constants.NotifierRedis:
		if c.RedisAddress == "" || c.RedisChannel == "" {
			return errors.New("REDIS_ADDRESS and REDIS_CHANNEL are required for the redis notifier")
		}
	default:
		return fmt.Errorf("unknown NOTIFIER %q", c.Notifier)
	}
	if c.AggregationConcurrency < 1 {
		return fmt.Errorf("AGGREGATION_CONCURRENCY must be at least 1, got %d", c.AggregationConcurrency)
	}
	if c.ImageMaxWidth < 1 {
		return fmt.Errorf("IMAGE_MAX_WIDTH must be positive, got %d", c.ImageMaxWidth)
	}
	if c.RateLimitRPS < 0 || c.RateLimitBurst < 0 {
		return errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must not be negative")
	}
	if c.ImageQuality < 1 || c.ImageQuality > 100 {
		return fmt.Errorf("IMAGE_QUALITY must be within 1..100, got %d", c.ImageQuality)
	}
	return nil
}

/*
Loader 負責讀取與監聽設定檔
init : 讀 .env 與環境變數，檔案不存在時只用環境變數
watch : 設定檔變動時重新讀取，讀取時需要使用讀寫鎖
*/
type Loader struct {
	v        *viper.Viper
	path     string
	fromFile bool

	mu     sync.RWMutex
	config *Config
}

func NewLoader(path string) *Loader {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()
	return &Loader{v: v, path: path}
}

// Load 單純回傳錯誤，由外部決定要不要 Fatal
func (l *Loader) Load() (*Config, error) {
	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", l.path, err)
		}
	} else {
		l.fromFile = true
	}
	cf, err := l.unmarshal()
	if err != nil {
		return nil, err
	}
	l.mu.Lock()
	l.config = cf
	l.mu.Unlock()
	return cf, nil
}

func (l *Loader) unmarshal() (*Config, error) {
	cf := &Config{}
	if err := l.v.Unmarshal(cf); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cf.Validate(); err != nil {
		return nil, err
	}
	return cf, nil
}

func (l *Loader) Current() *Config {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.config
}

func (l *Loader) FromFile() bool {
	return l.fromFile
}

// Watch 設定檔變動後呼叫 onChange，新設定不合法時保留舊設定並回傳錯誤給 onChange
// 沒有讀到設定檔時不監聽
func (l *Loader) Watch(onChange func(cf *Config, err error)) {
	if !l.fromFile {
		return
	}
	l.v.OnConfigChange(func(e fsnotify.Event) {
		cf, err := l.unmarshal()
		if err != nil {
			onChange(l.Current(), err)
			return
		}
		l.mu.Lock()
		l.config = cf
		l.mu.Unlock()
		onChange(cf, nil)
	})
	l.v.WatchConfig()
}
