package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Mode       string        `mapstructure:"mode"`
	Port       int           `mapstructure:"port"`
	StaticPath string        `mapstructure:"static_path"`
	ReadLimit  int64         `mapstructure:"read_limit"`
	PingPeriod time.Duration `mapstructure:"ping_period"`
	Secret     string        `mapstructure:"secret"`
	SendBuffer int           `mapstructure:"send_buffer"`

	RoomCapacity   int           `mapstructure:"room_capacity"`
	ReapInterval   time.Duration `mapstructure:"reap_interval"`
	ReapEmptyAfter time.Duration `mapstructure:"reap_empty_after"`

	RateLimit    int           `mapstructure:"rate_limit"`
	RateInterval time.Duration `mapstructure:"rate_interval"`

	StunURLs       []string `mapstructure:"stun_urls"`
	TurnURLs       []string `mapstructure:"turn_urls"`
	TurnUsername   string   `mapstructure:"turn_username"`
	TurnCredential string   `mapstructure:"turn_credential"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	fileName := fmt.Sprintf("config/config.%s.yaml", env)

	v.SetConfigFile(fileName)
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetDefault("mode", "release")
	v.SetDefault("port", 8080)
	v.SetDefault("static_path", "./web")
	v.SetDefault("read_limit", 32768)
	v.SetDefault("ping_period", "54s")
	v.SetDefault("send_buffer", 32)
	// Four parties per room; bigger calls want an SFU, not a mesh.
	v.SetDefault("room_capacity", 4)
	v.SetDefault("reap_interval", "10m")
	v.SetDefault("reap_empty_after", "24h")
	v.SetDefault("rate_limit", 60)
	v.SetDefault("rate_interval", "10s")
	v.SetDefault("stun_urls", []string{"stun:stun.l.google.com:19302"})

	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("⚠️ Config file not found (%s), using defaults\n", fileName)
	} else {
		fmt.Printf("✅ Loaded config: %s\n", fileName)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if _, err := cfg.ICEServers(); err != nil {
		return nil, fmt.Errorf("invalid ICE configuration: %w", err)
	}
	fmt.Printf("🧩 Mode: %s | Port: %d | Static: %s\n", cfg.Mode, cfg.Port, cfg.StaticPath)
	return &cfg, nil
}
