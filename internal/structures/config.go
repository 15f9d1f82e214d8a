package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type StorageConfig struct {
	Driver       string        `yaml:"driver" validate:"required|in:file,sqlite"`
	FilePath     string        `yaml:"filePath"`
	SqlitePath   string        `yaml:"sqlitePath"`
	SaveInterval time.Duration `yaml:"saveInterval" validate:"required|min:1"`
	// QuotaBytes caps the total size of stored values, 0 disables the cap.
	QuotaBytes int `yaml:"quotaBytes" validate:"min:0"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type LicenseConfig struct {
	Backend     string        `yaml:"backend" validate:"required|in:none,rest,postgres"`
	SupabaseURL string        `yaml:"supabaseUrl"`
	AnonKey     string        `yaml:"anonKey"`
	ServiceKey  string        `yaml:"serviceKey"`
	DatabaseURL string        `yaml:"databaseUrl"`
	Timeout     time.Duration `yaml:"timeout"`
}

type AIConfig struct {
	APIKey  string        `yaml:"apiKey"`
	BaseURL string        `yaml:"baseUrl"`
	Model   string        `yaml:"model"`
	Timeout time.Duration `yaml:"timeout"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type CorsConfig struct {
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

type WebhookConfig struct {
	Secret string `yaml:"secret"`
}

type Config struct {
	AppName   string
	Debug     bool
	Path      string
	WebServer Server        `yaml:"webServer"`
	Storage   StorageConfig `yaml:"storage"`
	Logger    LoggerConfig  `yaml:"logger"`
	License   LicenseConfig `yaml:"license"`
	AI        AIConfig      `yaml:"ai"`
	Cache     CacheConfig   `yaml:"cache"`
	Metrics   MetricsConfig `yaml:"metrics"`
	Cors      CorsConfig    `yaml:"cors"`
	Webhook   WebhookConfig `yaml:"webhook"`
}
