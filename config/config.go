package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Kafka - параметры консьюмера. Брокеры задаются отдельно (BOOTSTRAP_SERVERS).
type Kafka struct {
	GroupID          string        `default:"qwerty" envconfig:"KAFKA_GROUP_ID" validate:"required"`
	SecurityProtocol string        `default:"SASL_SSL" envconfig:"KAFKA_SECURITY_PROTOCOL" validate:"oneof=PLAINTEXT SSL SASL_PLAINTEXT SASL_SSL"`
	PollTimeout      time.Duration `default:"1s" envconfig:"KAFKA_POLL_TIMEOUT" validate:"gt=0"`
	ProcessTimeout   time.Duration `default:"5s" envconfig:"KAFKA_PROCESS_TIMEOUT" validate:"gt=0"`
}

// SASL - учётные данные брокера (SASL_USERNAME / SASL_PASSWORD).
type SASL struct {
	Username  string `envconfig:"SASL_USERNAME"`
	Password  string `envconfig:"SASL_PASSWORD"`
	Mechanism string `default:"PLAIN" envconfig:"SASL_MECHANISM" validate:"oneof=PLAIN SCRAM-SHA-256 SCRAM-SHA-512"`
}

// Database - параметры подключения к Postgres по частям (DATABASE_*).
type Database struct {
	Username string `default:"postgres" envconfig:"DATABASE_USERNAME" validate:"required"`
	Password string `envconfig:"DATABASE_PASSWORD"`
	IP       string `default:"localhost" envconfig:"DATABASE_IP" validate:"required"`
	Port     string `default:"5432" envconfig:"DATABASE_PORT" validate:"required,numeric"`
	Name     string `default:"museum" envconfig:"DATABASE_NAME" validate:"required"`
	SSLMode  string `default:"prefer" envconfig:"DATABASE_SSL_MODE" validate:"oneof=disable allow prefer require verify-ca verify-full"`
	MaxConns int32  `default:"2" envconfig:"DATABASE_MAX_CONNS" validate:"gte=0"`
}

// DSN - строка подключения postgres:// из частей конфигурации.
func (d Database) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.Username, d.Password),
		Host:   net.JoinHostPort(d.IP, d.Port),
		Path:   "/" + d.Name,
	}
	q := url.Values{}
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// ErrorLog - файл журнала отклонённых сообщений (включается флагом --l).
type ErrorLog struct {
	Path string `default:"./error-log.txt" envconfig:"ERROR_LOG_PATH" validate:"required"`
}

type Logger struct {
	IsProd bool `default:"false" envconfig:"LOGGER_IS_PROD"`
}

// HTTP - служебный эндпоинт (/ping, /healthz, /metrics). Пустой Addr отключает его.
type HTTP struct {
	Addr              string        `envconfig:"HTTP_ADDR"`
	GinMode           string        `default:"release" envconfig:"HTTP_GIN_MODE"`
	ReadHeaderTimeout time.Duration `default:"5s" envconfig:"HTTP_READ_HEADER_TIMEOUT"`
	GracefulTimeout   time.Duration `default:"5s" envconfig:"HTTP_GRACEFUL_TIMEOUT"`
}

type Tracing struct {
	Enabled     bool    `default:"false" envconfig:"TRACING_OTEL_ENABLED"`
	ServiceName string  `default:"lmnh-pipeline" envconfig:"TRACING_OTEL_SERVICE_NAME"`
	Endpoint    string  `default:"localhost:4318" envconfig:"TRACING_OTEL_ENDPOINT"`
	SampleRatio float64 `default:"1" envconfig:"TRACING_OTEL_SAMPLE_RATIO" validate:"gte=0,lte=1"`
}

type Config struct {
	BootstrapServers []string `default:"localhost:9092" envconfig:"BOOTSTRAP_SERVERS" validate:"min=1,dive,hostname_port"`

	// Секции встроены: полные имена переменных заданы в тегах полей,
	// иначе envconfig при отсутствии ключа читает короткое имя (PATH, PORT, NAME).
	Kafka
	SASL
	Database
	ErrorLog
	Logger
	HTTP
	Tracing
}

// ErrSASLCredentials - протокол SASL_* выбран, но SASL_USERNAME пуст.
var ErrSASLCredentials = errors.New("SASL_USERNAME is required for SASL security protocols")

// Load - загрузка конфигурации пайплайна без префикса (имена переменных как в .env развёртывания).
// Перед разбором подхватываются .env.local и .env, если они есть; уже заданные переменные не перезаписываются.
func Load() (Config, error) {
	loadDotEnv()
	return LoadWithPrefix("")
}

// LoadDatabase - то же для утилит, которым нужна только БД (reset-db, migrator):
// учётные данные Kafka не требуются.
func LoadDatabase() (Config, error) {
	loadDotEnv()
	return LoadDatabaseWithPrefix("")
}

// LoadWithPrefix - все переменные ищутся с префиксом (<PREFIX>_DATABASE_IP и т.д.).
func LoadWithPrefix(prefix string) (Config, error) {
	c, err := process(prefix)
	if err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// LoadDatabaseWithPrefix - загрузка с префиксом без проверки связки протокола и SASL_USERNAME.
func LoadDatabaseWithPrefix(prefix string) (Config, error) {
	c, err := process(prefix)
	if err != nil {
		return Config{}, err
	}
	if err := c.validateFields(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate - проверка значений (теги validate + связь протокола и учётных данных).
func (c *Config) Validate() error {
	if err := c.validateFields(); err != nil {
		return err
	}
	if strings.HasPrefix(c.Kafka.SecurityProtocol, "SASL_") && c.SASL.Username == "" {
		return ErrSASLCredentials
	}
	return nil
}

func (c *Config) validateFields() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func loadDotEnv() {
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")
}

func process(prefix string) (Config, error) {
	var c Config
	if err := envconfig.Process(prefix, &c); err != nil {
		return Config{}, err
	}
	c.normalize()
	return c, nil
}

func (c *Config) normalize() {
	c.Kafka.SecurityProtocol = strings.ToUpper(strings.TrimSpace(c.Kafka.SecurityProtocol))
	c.SASL.Mechanism = strings.ToUpper(strings.TrimSpace(c.SASL.Mechanism))

	brokers := c.BootstrapServers[:0]
	for _, b := range c.BootstrapServers {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	c.BootstrapServers = brokers
}
