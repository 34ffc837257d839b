package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type StoreDriver string

const (
	StoreMemory   StoreDriver = "memory"
	StorePostgres StoreDriver = "postgres"
	StoreSQLite   StoreDriver = "sqlite"
)

type PhotoDriver string

const (
	PhotoMemory PhotoDriver = "memory"
	PhotoS3     PhotoDriver = "s3"
)

const DefaultS3BaseURL = "https://s3-us-west-1.amazonaws.com/"

// Config agrupa todo lo que main necesita para levantar el servicio.
// Se arma una sola vez al arrancar y se pasa explícitamente (sin globals).
type Config struct {
	Addr string

	Store      StoreDriver
	DSN        string
	SQLitePath string

	SessionSecret string
	SessionTTL    time.Duration
	DevAuth       bool

	Photos PhotosConfig

	Location *time.Location
}

type PhotosConfig struct {
	Driver        PhotoDriver
	BaseURL       string
	Bucket        string
	Region        string
	Endpoint      string
	PathStyle     bool
	UploadTimeout time.Duration
}

// PublicBaseURL es el prefijo {BaseURL}{Bucket}/ de las URLs de fotos; vacío
// si no hay bucket.
func (p PhotosConfig) PublicBaseURL() string {
	if p.Bucket == "" {
		return ""
	}
	base := p.BaseURL
	if base != "" && !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + p.Bucket + "/"
}

// Load lee la configuración desde env. Si existe un .env en el cwd
// se carga primero (no pisa variables ya definidas).
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup arma Config usando lookup (os.LookupEnv en prod, map en tests).
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	get := func(key, def string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return def
	}

	cfg := Config{
		Addr:          ":" + get("PORT", "8080"),
		DSN:           get("DB_DSN", ""),
		SQLitePath:    get("SQLITE_PATH", "catcollector.db"),
		SessionSecret: get("SESSION_SECRET", ""),
		Photos: PhotosConfig{
			BaseURL:  get("S3_BASE_URL", DefaultS3BaseURL),
			Bucket:   get("S3_BUCKET", ""),
			Region:   get("S3_REGION", "us-west-1"),
			Endpoint: get("S3_ENDPOINT", ""),
		},
	}

	var err error

	// Driver de storage: explícito, o postgres si hay DSN.
	switch d := StoreDriver(strings.ToLower(get("STORE_DRIVER", ""))); d {
	case "":
		cfg.Store = StoreMemory
		if cfg.DSN != "" {
			cfg.Store = StorePostgres
		}
	case StoreMemory, StorePostgres, StoreSQLite:
		cfg.Store = d
	default:
		return Config{}, fmt.Errorf("STORE_DRIVER: unknown driver %q", d)
	}
	if cfg.Store == StorePostgres && cfg.DSN == "" {
		return Config{}, errors.New("DB_DSN required for postgres driver")
	}

	switch d := PhotoDriver(strings.ToLower(get("PHOTO_STORE", ""))); d {
	case "":
		cfg.Photos.Driver = PhotoMemory
		if cfg.Photos.Bucket != "" {
			cfg.Photos.Driver = PhotoS3
		}
	case PhotoMemory, PhotoS3:
		cfg.Photos.Driver = d
	default:
		return Config{}, fmt.Errorf("PHOTO_STORE: unknown driver %q", d)
	}
	if cfg.Photos.Driver == PhotoS3 && cfg.Photos.Bucket == "" {
		return Config{}, errors.New("S3_BUCKET required for s3 photo store")
	}
	if cfg.Photos.Bucket == "" {
		cfg.Photos.Bucket = "catcollector"
	}

	if cfg.SessionTTL, err = parseDuration(get("SESSION_TTL", "336h")); err != nil {
		return Config{}, fmt.Errorf("SESSION_TTL: %w", err)
	}
	if cfg.Photos.UploadTimeout, err = parseDuration(get("PHOTO_UPLOAD_TIMEOUT", "30s")); err != nil {
		return Config{}, fmt.Errorf("PHOTO_UPLOAD_TIMEOUT: %w", err)
	}
	if cfg.DevAuth, err = strconv.ParseBool(get("DEV_AUTH", "false")); err != nil {
		return Config{}, fmt.Errorf("DEV_AUTH: %w", err)
	}
	if cfg.Photos.PathStyle, err = strconv.ParseBool(get("S3_PATH_STYLE", "false")); err != nil {
		return Config{}, fmt.Errorf("S3_PATH_STYLE: %w", err)
	}

	cfg.Location = time.Local
	if name := get("TZ_NAME", ""); name != "" {
		loc, err := time.LoadLocation(name)
		if err != nil {
			return Config{}, fmt.Errorf("TZ_NAME: %w", err)
		}
		cfg.Location = loc
	}

	return cfg, nil
}

func parseDuration(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("must be positive, got %s", s)
	}
	return d, nil
}
