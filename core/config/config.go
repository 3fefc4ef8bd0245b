package config

import (
	"reflect"
	"strings"

	"loadorder-manager/core/database"
	"loadorder-manager/core/logger"
	"loadorder-manager/core/server"
	"loadorder-manager/core/storage"
	"loadorder-manager/feature/loadorder"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// Each section is the partial configuration owned by one package.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the object storage receiving plugins.txt files.
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for lock persistence.
	Database database.Config `mapstructure:"database"`
	// LoadOrder holds configuration for reconciliation and publishing.
	LoadOrder loadorder.Config `mapstructure:"loadorder"`
}

// LoadConfig loads configuration from environment variables and the .env file in path.
func LoadConfig(path string) (*Config, error) {
	// 1. Load the .env file if there is one
	// The path is relative to the working directory
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// A missing file is not an error (e.g. in production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// 2. Register every key with its default from the struct tags
	bindValues(v, Config{}, "")

	// 3. Map environment variables to nested keys (e.g. LOADORDER_DEBOUNCE_MS -> loadorder.debounce_ms)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues walks the struct with reflection and registers every
// mapstructure key in Viper with the value of its 'default' tag.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// Pointers are walked through their element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Untagged fields are not configuration
		if tag == "" {
			continue
		}

		// Nested keys are dot separated
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// Sections recurse with their own prefix
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// An empty default still registers the key, otherwise AutomaticEnv never sees it
		v.SetDefault(key, defaultValue)
	}
}
