// Package config arma la configuración del servicio: defaults, luego un YAML
// opcional (CONFIG_FILE) y por último variables de entorno.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type AuthMode string

const (
	AuthModeDev  AuthMode = "dev" // headers X-Debug-*
	AuthModeJWT  AuthMode = "jwt"
	AuthModeOdin AuthMode = "odin"
)

type Config struct {
	App      string         `yaml:"app"`
	HTTP     HTTPConfig     `yaml:"http"`
	Log      LogConfig      `yaml:"log"`
	Storage  StorageConfig  `yaml:"storage"`
	Auth     AuthConfig     `yaml:"auth"`
	Workflow WorkflowConfig `yaml:"workflow"`
	Tracing  TracingConfig  `yaml:"tracing"`
}

type HTTPConfig struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// StorageConfig: sin DSN se usa memoria; sin RedisAddr los watermarks van al
// mismo storage que el resto.
type StorageConfig struct {
	DSN       string `yaml:"dsn"`
	RedisAddr string `yaml:"redis_addr"`
}

type AuthConfig struct {
	Mode AuthMode `yaml:"mode"`

	JWKSURL     string `yaml:"jwks_url"`
	HS256Secret string `yaml:"hs256_secret"`
	Audience    string `yaml:"audience"`
	Issuer      string `yaml:"issuer"`
	RoleClaim   string `yaml:"role_claim"`

	OdinBaseURL string `yaml:"odin_base_url"`
	OdinAPIKey  string `yaml:"odin_api_key"`
}

type WorkflowConfig struct {
	// AutoRejectCompeting rechaza las demás solicitudes vivas al aprobar una.
	AutoRejectCompeting bool `yaml:"auto_reject_competing"`
}

type TracingConfig struct {
	Stdout      bool    `yaml:"stdout"`
	SampleRatio float64 `yaml:"sample_ratio"`
}

func Default() Config {
	return Config{
		App: "pet-adoption",
		HTTP: HTTPConfig{
			Port:            8080,
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Log:     LogConfig{Level: "info", Format: "json"},
		Auth:    AuthConfig{Mode: AuthModeDev, RoleClaim: "role"},
		Tracing: TracingConfig{SampleRatio: 1},
	}
}

// Load aplica defaults, el YAML de CONFIG_FILE (si hay) y el entorno.
func Load() (Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (Config, error) {
	cfg := Default()

	if path := strings.TrimSpace(getenv("CONFIG_FILE")); path != "" {
		data, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := applyEnv(&cfg, getenv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config, getenv func(string) string) error {
	str := func(key string, dst *string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}

	str("APP_NAME", &cfg.App)
	str("LOG_LEVEL", &cfg.Log.Level)
	str("LOG_FORMAT", &cfg.Log.Format)
	str("DB_DSN", &cfg.Storage.DSN)
	str("REDIS_ADDR", &cfg.Storage.RedisAddr)
	str("JWKS_URL", &cfg.Auth.JWKSURL)
	str("JWT_HS256_SECRET", &cfg.Auth.HS256Secret)
	str("JWT_AUDIENCE", &cfg.Auth.Audience)
	str("JWT_ISSUER", &cfg.Auth.Issuer)
	str("JWT_ROLE_CLAIM", &cfg.Auth.RoleClaim)
	str("ODIN_BASE_URL", &cfg.Auth.OdinBaseURL)
	str("ODIN_API_KEY", &cfg.Auth.OdinAPIKey)

	if v := strings.TrimSpace(getenv("AUTH_MODE")); v != "" {
		cfg.Auth.Mode = AuthMode(strings.ToLower(v))
	}

	if v := strings.TrimSpace(getenv("PORT")); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.HTTP.Port = port
	}

	bools := []struct {
		key string
		dst *bool
	}{
		{"AUTO_REJECT_COMPETING", &cfg.Workflow.AutoRejectCompeting},
		{"TRACING_STDOUT", &cfg.Tracing.Stdout},
	}
	for _, b := range bools {
		v := strings.TrimSpace(getenv(b.key))
		if v == "" {
			continue
		}
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", b.key, v, err)
		}
		*b.dst = parsed
	}

	if v := strings.TrimSpace(getenv("TRACING_SAMPLE_RATIO")); v != "" {
		ratio, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid TRACING_SAMPLE_RATIO %q: %w", v, err)
		}
		cfg.Tracing.SampleRatio = ratio
	}
	return nil
}

// Validate junta todos los problemas en un solo error.
func (c Config) Validate() error {
	var problems []error

	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		problems = append(problems, fmt.Errorf("http.port out of range: %d", c.HTTP.Port))
	}
	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		problems = append(problems, fmt.Errorf("tracing.sample_ratio must be within [0,1]: %v", c.Tracing.SampleRatio))
	}

	switch c.Auth.Mode {
	case AuthModeDev:
	case AuthModeJWT:
		if c.Auth.JWKSURL == "" && c.Auth.HS256Secret == "" {
			problems = append(problems, errors.New("auth.mode=jwt requires jwks_url or hs256_secret"))
		}
	case AuthModeOdin:
		if c.Auth.OdinBaseURL == "" || c.Auth.OdinAPIKey == "" {
			problems = append(problems, errors.New("auth.mode=odin requires odin_base_url and odin_api_key"))
		}
	default:
		problems = append(problems, fmt.Errorf("unknown auth.mode %q", c.Auth.Mode))
	}

	return errors.Join(problems...)
}

// Addr devuelve la dirección de escucha del servidor HTTP.
func (c Config) Addr() string {
	return ":" + strconv.Itoa(c.HTTP.Port)
}
