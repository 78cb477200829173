package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`
	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"log"`
	Feed FeedConfig `mapstructure:"feed"`
}

// FeedConfig holds the settings of the transaction feed and of its renderer.
type FeedConfig struct {
	Locale           string `mapstructure:"locale"`
	IgnoreDiacritics bool   `mapstructure:"ignore_diacritics"`
	CurrentUser      string `mapstructure:"current_user"`
	CurrencySymbol   string `mapstructure:"currency_symbol"`
	ReferenceLabel   string `mapstructure:"reference_label"`
	SeedFile         string `mapstructure:"seed_file"`
	QuickAdd         struct {
		Receiver string `mapstructure:"receiver"`
		Amount   string `mapstructure:"amount"`
	} `mapstructure:"quick_add"`
}

var AppConfig Config

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("feed.locale", "en")
	v.SetDefault("feed.ignore_diacritics", false)
	v.SetDefault("feed.current_user", "Alfred Lotsu")
	v.SetDefault("feed.currency_symbol", "GH¢")
	v.SetDefault("feed.reference_label", "lukatme")
	v.SetDefault("feed.seed_file", "")
	v.SetDefault("feed.quick_add.receiver", "BamBam")
	v.SetDefault("feed.quick_add.amount", "22.4782")
}

// LoadConfig reads config.yml and an optional .env from path into AppConfig.
// Environment variables win over the file (feed.locale -> FEED_LOCALE).
// A missing config file is not an error; defaults apply.
func LoadConfig(path string) error {
	if err := godotenv.Load(filepath.Join(path, ".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("unable to decode into struct: %w", err)
	}

	AppConfig = cfg
	return nil
}
