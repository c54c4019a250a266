package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"Globe3D/internal/globe"
	"Globe3D/internal/logger"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	// EnvPrefix prefixes every environment override, e.g. GLOBE3D_WINDOW_WIDTH
	// or GLOBE3D_GLOBE_AUTOROTATESPEED.
	EnvPrefix = "GLOBE3D"

	// DefaultName is the config file looked up, with any supported extension,
	// in the working directory when no path is given.
	DefaultName = "globe3d"
)

type Window struct {
	Width       int    `mapstructure:"width"`
	Height      int    `mapstructure:"height"`
	Title       string `mapstructure:"title"`
	VSync       bool   `mapstructure:"vsync"`
	Transparent bool   `mapstructure:"transparent"`
}

// Viewer is the settings of the globe3d command.
type Viewer struct {
	LogLevel string         `mapstructure:"logLevel"`
	Window   Window         `mapstructure:"window"`
	Globe    globe.Options  `mapstructure:"globe"`
	Markers  []globe.Marker `mapstructure:"markers"`
}

func setDefaults() {
	viper.SetDefault("logLevel", "info")

	viper.SetDefault("window.width", 1024)
	viper.SetDefault("window.height", 768)
	viper.SetDefault("window.title", "Globe3D")
	viper.SetDefault("window.vsync", true)
	viper.SetDefault("window.transparent", false)
}

// bindGlobeEnv registers an environment override for every globe option.
// Options have no defaults of their own, so viper would not otherwise know
// the keys.
func bindGlobeEnv() error {
	t := reflect.TypeOf(globe.Options{})
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("mapstructure")
		if tag == "" || t.Field(i).Type.Elem().Kind() == reflect.Struct {
			continue
		}
		if err := viper.BindEnv("globe." + tag); err != nil {
			return err
		}
	}
	return nil
}

// Load reads the viewer configuration. An empty path searches the working
// directory for DefaultName and falls back to defaults when there is none;
// an explicit path must exist.
func Load(path string) (*Viewer, error) {
	setDefaults()

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	if err := bindGlobeEnv(); err != nil {
		return nil, fmt.Errorf("error binding environment: %w", err)
	}

	if path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.SetConfigName(DefaultName)
		viper.AddConfigPath(".")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		logger.Log.Debug("No config file found, using defaults")
	} else {
		logger.Log.Info("Loaded config", zap.String("file", viper.ConfigFileUsed()))
	}

	return current()
}

func current() (*Viewer, error) {
	var v Viewer
	if err := viper.Unmarshal(&v); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	return &v, nil
}

// Watch calls fn with the reloaded configuration whenever the config file
// changes. fn runs on the watcher goroutine. It does nothing when no file
// was loaded.
func Watch(fn func(*Viewer)) {
	if viper.ConfigFileUsed() == "" {
		return
	}
	viper.OnConfigChange(func(e fsnotify.Event) {
		reload(e, fn)
	})
	viper.WatchConfig()
}

func reload(e fsnotify.Event, fn func(*Viewer)) {
	if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
		return
	}
	v, err := current()
	if err != nil {
		logger.Log.Warn("Ignoring config change", zap.String("file", e.Name), zap.Error(err))
		return
	}
	logger.Log.Info("Config changed", zap.String("file", e.Name))
	fn(v)
}
