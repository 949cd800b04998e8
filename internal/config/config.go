package config

import (
	"fmt"
	"time"
)

type Config struct {
	Env              string                  `env:"ENV,default=local"`
	Logger           LoggerConfig            `env:",prefix=LOGGER_"`
	Observability    ObservabilityHTTPConfig `env:",prefix=OBSERVABILITY_"`
	Web              WebConfig               `env:",prefix=WEB_"`
	ShutdownDuration time.Duration           `env:"SHUTDOWN_DURATION,default=30s"`
	Storage          StorageConfig           `env:",prefix=STORAGE_"`
	Redis            RedisConfig             `env:",prefix=REDIS_"`
	SMTP             SMTPConfig              `env:",prefix=SMTP_"`
	Telegram         TelegramConfig          `env:",prefix=TELEGRAM_"`
	Orders           OrdersConfig            `env:",prefix=ORDERS_"`
}

type TelegramConfig struct {
	BotToken string        `env:"BOT_TOKEN,required"`
	Timeout  time.Duration `env:"TIMEOUT,default=30s"`
	// OperatorID получает уведомления о новых заказах
	OperatorID        int64         `env:"OPERATOR_ID"`
	AdminIDs          []int64       `env:"ADMIN_IDS"`
	ValidationTimeout time.Duration `env:"VALIDATION_TIMEOUT,default=5s"`
}

type OrdersConfig struct {
	IdeaMinLength  int           `env:"IDEA_MIN_LENGTH,default=10"`
	TokenMinLength int           `env:"TOKEN_MIN_LENGTH,default=20"`
	StateTTL       time.Duration `env:"STATE_TTL,default=30m"`
	SweepInterval  time.Duration `env:"SWEEP_INTERVAL,default=1m"`
}

type StorageConfig struct {
	// Backend: memory или sqlite
	Backend string       `env:"BACKEND,default=memory"`
	SQLite  SQLiteConfig `env:",prefix=SQLITE_"`
}

type SQLiteConfig struct {
	Path         string        `env:"PATH,default=./data/amele.db"`
	MaxOpenConns int           `env:"MAX_OPEN_CONNS,default=25"`
	MaxIdleConns int           `env:"MAX_IDLE_CONNS,default=5"`
	MaxLifetime  time.Duration `env:"MAX_LIFETIME,default=5m"`
}

type RedisConfig struct {
	Addr     string `env:"ADDR"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB,default=0"`
}

type SMTPConfig struct {
	Host     string `env:"HOST,default=smtp.gmail.com"`
	Port     int    `env:"PORT,default=587"`
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`
	From     string `env:"FROM"`
}

type WebConfig struct {
	Host          string        `env:"HOST,default=0.0.0.0"`
	Port          uint16        `env:"PORT,default=8080"`
	BaseURL       string        `env:"BASE_URL"`
	AdminPassword string        `env:"ADMIN_PASSWORD"`
	AdminSecret   string        `env:"ADMIN_SECRET"`
	SessionTTL    time.Duration `env:"SESSION_TTL,default=12h"`
	ReadTimeout   time.Duration `env:"READ_TIMEOUT,default=30s"`
	WriteTimeout  time.Duration `env:"WRITE_TIMEOUT,default=30s"`
	IdleTimeout   time.Duration `env:"IDLE_TIMEOUT,default=1m"`
}

func (w WebConfig) ADDR() string {
	return fmt.Sprintf("%s:%d", w.Host, w.Port)
}

type LoggerConfig struct {
	Level string `env:"LEVEL,default=debug"`
}

type ObservabilityHTTPConfig struct {
	Host         string        `env:"HOST,default=127.0.0.1"`
	Port         uint16        `env:"PORT,default=8383"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT,default=30s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT,default=30s"`
	IdleTimeout  time.Duration `env:"IDLE_TIMEOUT,default=1m"`
}

func (a ObservabilityHTTPConfig) ADDR() string {
	return fmt.Sprintf("%s:%d", a.Host, a.Port)
}
