package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

type Configs struct {
	Env string `toml:"env"`

	Database  DatabaseConfigs  `toml:"database"`
	ApiServer ServerConfigs    `toml:"api_server"`
	Auth      AuthConfigs      `toml:"auth"`
	Session   SessionConfigs   `toml:"session"`
	Storage   S3Configs        `toml:"storage"`
	File      FileConfigs      `toml:"file"`
	Bot       BotConfigs       `toml:"bot"`
	RateLimit RateLimitConfigs `toml:"rate_limit"`
	Redis     RedisConfigs     `toml:"redis"`
}

// Load reads configurations from a TOML file. Secrets are expected to be
// overridden from the environment by the caller.
func Load(path string) (Configs, error) {
	var cfg Configs
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Configs{}, err
	}

	return cfg, nil
}

type DatabaseConfigs struct {
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	Database string `toml:"database"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host         string   `toml:"host"`
	Port         string   `toml:"port"`
	AllowOrigins []string `toml:"allow_origins"`
}

type AuthConfigs struct {
	TokenSecret string       `toml:"token_secret"`
	AccessToken TokenConfigs `toml:"access_token"`
}

type TokenConfigs struct {
	Name       string   `toml:"name"`
	Expiration Duration `toml:"expiration"`
}

type SessionConfigs struct {
	Secret string `toml:"secret"`
	Name   string `toml:"name"`
}

type S3Configs struct {
	Region         string `toml:"region"`
	Endpoint       string `toml:"endpoint"`
	PublicEndpoint string `toml:"public_endpoint"`
	AccessKey      string `toml:"access_key"`
	SecretKey      string `toml:"secret_key"`
	Bucket         string `toml:"bucket"`
	SSLDisabled    bool   `toml:"ssl_disabled"`
}

type FileConfigs struct {
	// MaxMemory is the multipart form memory budget in bytes.
	MaxMemory int64 `toml:"max_memory"`
}

type BotConfigs struct {
	// LegacyAPIKey is the static secret accepted for backward compatibility
	// when a bearer token matches no persisted API key.
	LegacyAPIKey string `toml:"legacy_api_key"`
}

type RateLimitConfigs struct {
	Requests int      `toml:"requests"`
	Window   Duration `toml:"window"`
}

type RedisConfigs struct {
	Addr string `toml:"addr"`
}

// Duration makes time.Duration decodable from TOML strings like "1h".
type Duration time.Duration

func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}

	*d = Duration(parsed)
	return nil
}
