// Package config предоставляет структуры и функции для загрузки конфигурации
// прокси-сервера и консоли администратора.
//
// Конфиг читается из YAML-файла (путь в CONFIG_PATH), секреты и адреса
// внешних сервисов могут быть переопределены переменными окружения.
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура настроек прокси-сервера.
type Config struct {
	Env             string `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer      `yaml:"http_server"`
	RemoteAPI       `yaml:"remote_api"`
	ObjectStorage   `yaml:"object_storage"`
	Categories      `yaml:"categories"`
	RedisConnection `yaml:"redis_connection"`
	RabbitMQ        `yaml:"rabbitmq"`
	CORS            `yaml:"cors"`
	RateLimit       `yaml:"rate_limit"`
}

// HTTPServer структура для настройки сервера.
type HTTPServer struct {
	AddressHTTP   string        `yaml:"addresshttp" env:"HTTP_ADDRESS" env-default:":8080"`
	TimeoutHTTP   time.Duration `yaml:"timeouthttp" env-default:"30s"`
	IdleTimeout   time.Duration `yaml:"idle_timeout" env-default:"60s"`
	MaxUploadSize int64         `yaml:"max_upload_size" env-default:"52428800"`
}

// RemoteAPI описывает удалённый REST API, которому принадлежат пользователи,
// журналы и категории.
type RemoteAPI struct {
	BaseURL         string        `yaml:"base_url" env:"REMOTE_API_BASE_URL" env-required:"true"`
	Timeout         time.Duration `yaml:"timeout" env:"REMOTE_API_TIMEOUT" env-default:"10s"`
	UsersPath       string        `yaml:"users_path" env-default:"/api/v1/admin/get-all-users"`
	UserDetailsPath string        `yaml:"user_details_path" env-default:"/api/v1/user/profile/{uid}"`
	DeleteUserPath  string        `yaml:"delete_user_path" env-default:"/api/v1/admin/delete-user/{uid}"`
	MagazinesPath   string        `yaml:"magazines_path" env-default:"/api/v1/admin/get-all-magzines"`
	CreateMagPath   string        `yaml:"create_magazine_path" env-default:"/api/v1/admin/create-magzine"`
}

// ObjectStorage настройки S3-совместимого хранилища (Cloudflare R2).
type ObjectStorage struct {
	AccountID       string        `yaml:"account_id" env:"OBJECT_STORAGE_ACCOUNT_ID"`
	Endpoint        string        `yaml:"endpoint" env:"OBJECT_STORAGE_ENDPOINT"`
	Region          string        `yaml:"region" env-default:"auto"`
	Bucket          string        `yaml:"bucket" env:"OBJECT_STORAGE_BUCKET" env-required:"true"`
	AccessKeyID     string        `yaml:"access_key_id" env:"OBJECT_STORAGE_ACCESS_KEY_ID"`
	SecretAccessKey string        `yaml:"secret_access_key" env:"OBJECT_STORAGE_SECRET_ACCESS_KEY"`
	PublicBaseURL   string        `yaml:"public_base_url" env:"OBJECT_STORAGE_PUBLIC_URL" env-required:"true"`
	SignedURLExpiry time.Duration `yaml:"signed_url_expiry" env-default:"60s"`
}

// Categories выбирает хранилище категорий: memory, redis или postgres.
type Categories struct {
	Backend                 string `yaml:"backend" env:"CATEGORIES_BACKEND" env-default:"memory"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"STORAGE_CONNECTION_STRING"`
	MigrationsPath          string `yaml:"migrations_path" env-default:"./migrations"`
}

// RedisConnection структура для настройки подключения к redis.
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env:"REDIS_ADDRESS"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries" env-default:"3"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env-default:"3s"`
}

// RabbitMQ настройки брокера для аудита изменений. Пустой URL отключает публикацию.
type RabbitMQ struct {
	URL      string        `yaml:"url" env:"RABBITMQ_URL"`
	Exchange string        `yaml:"exchange" env-default:"magazine-admin"`
	Retries  int           `yaml:"retries" env-default:"3"`
	Delay    time.Duration `yaml:"delay" env-default:"2s"`
}

// CORS настройки заголовков Access-Control-*.
type CORS struct {
	AllowedOrigin string `yaml:"allowed_origin" env:"CORS_ALLOWED_ORIGIN" env-default:"*"`
}

// RateLimit ограничение частоты запросов к эндпоинтам загрузки.
type RateLimit struct {
	RPS   float64 `yaml:"rps" env-default:"5"`
	Burst int     `yaml:"burst" env-default:"10"`
}

// Console настройки консоли администратора (CLI).
type Console struct {
	ProxyURL          string        `yaml:"proxy_url" env:"CONSOLE_PROXY_URL" env-default:"http://localhost:8080"`
	LoginURL          string        `yaml:"login_url" env:"CONSOLE_LOGIN_URL" env-required:"true"`
	Timeout           time.Duration `yaml:"timeout" env:"CONSOLE_TIMEOUT" env-default:"10s"`
	SessionPath       string        `yaml:"session_path" env:"CONSOLE_SESSION_PATH"`
	PublicBaseURL     string        `yaml:"public_base_url" env:"OBJECT_STORAGE_PUBLIC_URL"`
	UploadStrategy    string        `yaml:"upload_strategy" env-default:"proxy"`
	TokenScanFallback bool          `yaml:"token_scan_fallback" env-default:"true"`
	PageSize          int           `yaml:"page_size" env-default:"10"`
}

// MustLoad загружает конфиг прокси-сервера из файла CONFIG_PATH.
func MustLoad() *Config {
	var cfg Config
	mustRead(&cfg)
	return &cfg
}

// MustLoadConsole загружает конфиг консоли. Если CONFIG_PATH не задан,
// настройки берутся только из окружения.
func MustLoadConsole() *Console {
	var cfg Console
	if os.Getenv("CONFIG_PATH") == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			log.Fatalf("cannot read console config from env: %s", err)
		}
		return &cfg
	}
	mustRead(&cfg)
	return &cfg
}

func mustRead(cfg any) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	if err := cleanenv.ReadConfig(configPath, cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
}

// ResolvedEndpoint возвращает адрес S3 API. Если он не указан явно, используется
// адрес R2 по идентификатору аккаунта.
func (o ObjectStorage) ResolvedEndpoint() string {
	if o.Endpoint != "" {
		return o.Endpoint
	}
	return fmt.Sprintf("https://%s.r2.cloudflarestorage.com", o.AccountID)
}

// String печатает конфиг без секретов.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"RemoteAPI:\n"+
			"  BaseURL: %s\n"+
			"  Timeout: %s\n"+
			"ObjectStorage:\n"+
			"  Endpoint: %s\n"+
			"  Bucket: %s\n"+
			"  PublicBaseURL: %s\n"+
			"  AccessKeyID: %s\n"+
			"Categories:\n"+
			"  Backend: %s\n",
		c.Env,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		c.BaseURL,
		c.RemoteAPI.Timeout,
		c.ResolvedEndpoint(),
		c.Bucket,
		c.ObjectStorage.PublicBaseURL,
		mask(c.AccessKeyID),
		c.Backend,
	)
}

func mask(s string) string {
	if len(s) <= 4 {
		return "****"
	}
	return s[:4] + "****"
}
