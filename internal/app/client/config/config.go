package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultServerAddress = "http://localhost:8080"
	defaultEnv           = "local"
	defaultConfigDir     = ".filevault"
)

type Config struct {
	Env           string `mapstructure:"app_env"`
	ServerAddress string `mapstructure:"server_address"`
	ConfigDir     string `mapstructure:"config_dir"`
	TokenPath     string `mapstructure:"token_path"`
}

// MustLoad reads the client configuration from the environment, falling
// back to defaults under the user's home directory.
func MustLoad() *Config {
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load(".env")
	}

	viper.AutomaticEnv()
	viper.SetDefault("APP_ENV", defaultEnv)
	viper.SetDefault("SERVER_ADDRESS", defaultServerAddress)
	viper.SetDefault("CONFIG_DIR", defaultConfigDir)

	configDir := viper.GetString("config_dir")
	if home, err := os.UserHomeDir(); err == nil && !filepath.IsAbs(configDir) {
		configDir = filepath.Join(home, configDir)
	}

	tokenPath := viper.GetString("token_path")
	if tokenPath == "" {
		tokenPath = filepath.Join(configDir, "token")
	}

	return &Config{
		Env:           viper.GetString("app_env"),
		ServerAddress: viper.GetString("server_address"),
		ConfigDir:     configDir,
		TokenPath:     tokenPath,
	}
}
