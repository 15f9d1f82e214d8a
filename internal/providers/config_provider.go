package providers

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"fontpair/internal/structures"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	// Secrets may live in a .env file next to the config; it is optional.
	_ = godotenv.Load(filepath.Join(filepath.Dir(flags.ConfigPath), ".env"))

	v := viper.New()
	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	v.SetDefault("storage.driver", "file")
	v.SetDefault("storage.saveInterval", 30*time.Second)
	v.SetDefault("license.backend", "none")
	v.SetDefault("license.timeout", 10*time.Second)
	v.SetDefault("ai.model", "gpt-4o")
	v.SetDefault("ai.timeout", 60*time.Second)
	v.SetDefault("cache.ttl", 10*time.Minute)

	v.BindEnv("logger.level", "FONTPAIR_LOG_LEVEL")
	v.BindEnv("storage.driver", "FONTPAIR_STORAGE_DRIVER")
	v.BindEnv("license.supabaseUrl", "FONTPAIR_SUPABASE_URL")
	v.BindEnv("license.anonKey", "FONTPAIR_SUPABASE_ANON_KEY")
	v.BindEnv("license.serviceKey", "FONTPAIR_SUPABASE_SERVICE_KEY")
	v.BindEnv("license.databaseUrl", "FONTPAIR_DATABASE_URL")
	v.BindEnv("ai.apiKey", "FONTPAIR_OPENAI_API_KEY")
	v.BindEnv("webhook.secret", "FONTPAIR_WEBHOOK_SECRET")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "FontPairDaemon"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
