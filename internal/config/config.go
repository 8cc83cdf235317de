package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	JWT        JWTConfig        `mapstructure:"jwt"`
	Auth       AuthConfig       `mapstructure:"auth"`
	AI         AIConfig         `mapstructure:"ai"`
	Generation GenerationConfig `mapstructure:"generation"`
	RateLimit  RateLimitConfig  `mapstructure:"ratelimit"`
	S3         S3Config         `mapstructure:"s3"`
	Log        LogConfig        `mapstructure:"log"`
}

type ServerConfig struct {
	Port          string        `mapstructure:"port"`
	AllowedOrigin string        `mapstructure:"allowed_origin"`
	ReadTimeout   time.Duration `mapstructure:"read_timeout"`
	WriteTimeout  time.Duration `mapstructure:"write_timeout"`
	// TrustedProxies are the CIDRs/IPs whose forwarding headers are believed.
	TrustedProxies []string `mapstructure:"trusted_proxies"`
}

// Address is the listen address derived from the port.
func (s ServerConfig) Address() string {
	if strings.Contains(s.Port, ":") {
		return s.Port
	}
	return ":" + s.Port
}

type DatabaseConfig struct {
	URI  string `mapstructure:"uri"`
	Name string `mapstructure:"name"`
}

// JWTConfig defines JWT specific configuration
type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

// AuthConfig controls login behaviour.
type AuthConfig struct {
	// VerifyPassword enables the bcrypt credential check at login. When off,
	// any password is accepted for an existing email.
	VerifyPassword bool `mapstructure:"verify_password"`
}

// AIConfig configures the generative text provider.
type AIConfig struct {
	APIKey      string        `mapstructure:"api_key"`
	Model       string        `mapstructure:"model"`
	Temperature float32       `mapstructure:"temperature"`
	TopP        float32       `mapstructure:"top_p"`
	MaxRetries  int           `mapstructure:"max_retries"`
	BaseDelay   time.Duration `mapstructure:"base_delay"`
}

type GenerationConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

// RateLimitConfig bounds how often one caller may request a generation.
type RateLimitConfig struct {
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Burst             int           `mapstructure:"burst"`
	IdleTTL           time.Duration `mapstructure:"idle_ttl"`
}

type S3Config struct {
	Endpoint        string        `mapstructure:"endpoint"`
	Region          string        `mapstructure:"region"`
	AccessKeyID     string        `mapstructure:"access_key_id"`
	SecretAccessKey string        `mapstructure:"secret_access_key"`
	BucketName      string        `mapstructure:"bucket_name"`
	URLExpiry       time.Duration `mapstructure:"url_expiry"`
}

// Enabled reports whether profile images should be resolved through S3.
func (s S3Config) Enabled() bool {
	return s.BucketName != ""
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// legacyEnv maps config keys to the environment names used by earlier
// deployments, which keep working alongside the SECTION_KEY form.
var legacyEnv = map[string][]string{
	"jwt.secret":            {"JSON_WEB_SECRET"},
	"ai.api_key":            {"GEMINI_API_KEY"},
	"server.port":           {"PORT"},
	"server.allowed_origin": {"FRONTEND_URL"},
	"database.uri":          {"MONGO_URI", "MONGODB_URI"},
}

// LoadConfig reads configuration from file or environment variables.
// A .env file in path is loaded into the environment first when present.
func LoadConfig(path string) (config Config, err error) {
	// Missing .env is fine; real environment variables always win.
	_ = godotenv.Load(strings.TrimRight(path, "/") + "/.env")

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// server.port -> SERVER_PORT, jwt.expiration -> JWT_EXPIRATION
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))
	for key, names := range legacyEnv {
		upper := strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err = v.BindEnv(append([]string{key, upper}, names...)...); err != nil {
			return
		}
	}

	setDefaults(v)

	err = v.ReadInConfig()
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		err = nil
	} else if err != nil {
		return
	}

	if err = v.Unmarshal(&config); err != nil {
		return
	}
	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "5600")
	v.SetDefault("server.allowed_origin", "http://localhost:3000")
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.trusted_proxies", []string{})
	v.SetDefault("database.uri", "mongodb://localhost:27017")
	v.SetDefault("database.name", "fitness")
	v.SetDefault("jwt.expiration", "1h")
	v.SetDefault("auth.verify_password", false)
	v.SetDefault("ai.model", "gemini-1.5-flash")
	v.SetDefault("ai.temperature", 0.4)
	v.SetDefault("ai.top_p", 0.9)
	v.SetDefault("ai.max_retries", 3)
	v.SetDefault("ai.base_delay", "1s")
	v.SetDefault("generation.timeout", "45s")
	v.SetDefault("ratelimit.requests_per_second", 1)
	v.SetDefault("ratelimit.burst", 3)
	v.SetDefault("ratelimit.idle_ttl", "10m")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.access_key_id", "")
	v.SetDefault("s3.secret_access_key", "")
	v.SetDefault("s3.bucket_name", "")
	v.SetDefault("s3.url_expiry", "15m")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Validate reports configuration that would make the server unusable.
func (c Config) Validate() error {
	var errs []error
	if c.JWT.Secret == "" {
		errs = append(errs, errors.New("jwt.secret is required"))
	}
	if c.AI.APIKey == "" {
		errs = append(errs, errors.New("ai.api_key is required"))
	}
	if c.Generation.Timeout <= 0 {
		errs = append(errs, errors.New("generation.timeout must be positive"))
	}
	if c.Server.WriteTimeout <= c.Generation.Timeout {
		errs = append(errs, fmt.Errorf("server.write_timeout (%s) must exceed generation.timeout (%s)",
			c.Server.WriteTimeout, c.Generation.Timeout))
	}
	return errors.Join(errs...)
}
