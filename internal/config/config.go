package config

import (
	"flag"
	"fmt"
	"regexp"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	// Хранилища
	DatabaseDSN string `env:"DATABASE_URI" validate:"required"`
	CachePath   string `env:"CACHE_PATH"` // пусто — кэш сессий в памяти
	StoragePath string `env:"FOLDER_PATH" validate:"required"`

	// HTTP
	BaseURL     string `env:"BASE_URL" validate:"required,hostname_port"`
	EnableHTTPS bool   `env:"ENABLE_HTTPS"`
	MaxUploadMB int64  `env:"MAX_UPLOAD_MB" validate:"gte=1,lte=1024"`

	SessionTTL time.Duration `env:"SESSION_TTL" validate:"gte=1s"`

	// Миниатюры
	ThumbnailWorkers   int `env:"THUMBNAIL_WORKERS" validate:"gte=1,lte=64"`
	ThumbnailQueueSize int `env:"THUMBNAIL_QUEUE_SIZE" validate:"gte=1"`

	// Клиент
	TokenFile string `env:"TOKEN_FILE"` // пусто — каталог конфигурации пользователя
	Version   bool   `env:"-"`          // только флаг
}

const (
	defaultDatabaseDSN = "file:filekeeper.db"
	defaultStoragePath = "/tmp/files_manager"
	defaultBaseURL     = "localhost:5000"
	defaultMaxUploadMB = 50
	defaultSessionTTL  = 24 * time.Hour
	defaultWorkers     = 2
	defaultQueueSize   = 64
)

var hostPortRe = regexp.MustCompile(`^[A-Za-z0-9\.\-]+:\d{1,5}$`)

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// flags работают ТОЛЬКО если переменные из env не заданы
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "строка подключения к БД (postgres://... или файл SQLite)")
	flag.StringVar(&cfg.CachePath, "cache", cfg.CachePath, "каталог кэша сессий (пусто — в памяти)")
	flag.StringVar(&cfg.StoragePath, "storage", cfg.StoragePath, "каталог содержимого файлов")
	flag.StringVar(&cfg.BaseURL, "a", cfg.BaseURL, "адрес сервера host:port")
	flag.BoolVar(&cfg.EnableHTTPS, "https", cfg.EnableHTTPS, "enable HTTPS")
	flag.Int64Var(&cfg.MaxUploadMB, "max-upload-mb", cfg.MaxUploadMB, "максимальный размер тела POST /files, МБ")
	flag.DurationVar(&cfg.SessionTTL, "session-ttl", cfg.SessionTTL, "время жизни сессии")
	flag.IntVar(&cfg.ThumbnailWorkers, "thumb-workers", cfg.ThumbnailWorkers, "число обработчиков миниатюр")
	flag.IntVar(&cfg.ThumbnailQueueSize, "thumb-queue", cfg.ThumbnailQueueSize, "размер очереди миниатюр")
	// Client flags
	flag.StringVar(&cfg.TokenFile, "token-file", cfg.TokenFile, "path to session token file (client)")
	flag.BoolVar(&cfg.Version, "version", cfg.Version, "Show client version and exit")

	flag.Parse()

	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.DatabaseDSN == "" {
		c.DatabaseDSN = defaultDatabaseDSN
	}
	if c.StoragePath == "" {
		c.StoragePath = defaultStoragePath
	}
	// BaseURL: только "address:port" (без схемы и пути), иначе значение по умолчанию
	if !hostPortRe.MatchString(c.BaseURL) {
		c.BaseURL = defaultBaseURL
	}
	if c.MaxUploadMB <= 0 {
		c.MaxUploadMB = defaultMaxUploadMB
	}
	if c.SessionTTL <= 0 {
		c.SessionTTL = defaultSessionTTL
	}
	if c.ThumbnailWorkers <= 0 {
		c.ThumbnailWorkers = defaultWorkers
	}
	if c.ThumbnailQueueSize <= 0 {
		c.ThumbnailQueueSize = defaultQueueSize
	}
}

// MaxUploadBytes предел тела запроса на создание файла.
func (c *Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}

// ServerURL адрес сервера со схемой, для логов.
func (c *Config) ServerURL() string {
	if c.EnableHTTPS {
		return "https://" + c.BaseURL
	}
	return "http://" + c.BaseURL
}

var validate = validator.New()

// Validate проверяет значения после применения env, флагов и умолчаний.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
