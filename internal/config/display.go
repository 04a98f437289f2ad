package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// DisplayConfig controls how statements are titled and labelled on export.
type DisplayConfig struct {
	CurrencyCode   string `mapstructure:"currencyCode"`
	StatementTitle string `mapstructure:"statementTitle"`
	FilenamePrefix string `mapstructure:"filenamePrefix"`
	UnitLabel      string `mapstructure:"unitLabel"`
}

func DefaultDisplayConfig() DisplayConfig {
	return DisplayConfig{
		CurrencyCode:   "USD",
		StatementTitle: "Electricity Bill Statement",
		FilenamePrefix: "wattsplit-statement",
		UnitLabel:      "kWh",
	}
}

// DisplayConfigHolder exposes the current display config and hot-reloads it
// when the config file changes on disk.
type DisplayConfigHolder struct {
	current atomic.Value // holds DisplayConfig
}

func NewDisplayConfigHolder() (*DisplayConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("display")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/wattsplit")
	v.AddConfigPath(".")

	v.SetEnvPrefix("WATTSPLIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultDisplayConfig()
	v.SetDefault("display.currencyCode", defaults.CurrencyCode)
	v.SetDefault("display.statementTitle", defaults.StatementTitle)
	v.SetDefault("display.filenamePrefix", defaults.FilenamePrefix)
	v.SetDefault("display.unitLabel", defaults.UnitLabel)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		// no config file, defaults apply
	}

	var cfg DisplayConfig
	if err := v.UnmarshalKey("display", &cfg); err != nil {
		return nil, err
	}
	if err := validateDisplayConfig(cfg); err != nil {
		return nil, err
	}

	holder := &DisplayConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated DisplayConfig
		if err := v.UnmarshalKey("display", &updated); err != nil {
			log.Printf("[display-config] reload failed: %v", err)
			return
		}
		if err := validateDisplayConfig(updated); err != nil {
			log.Printf("[display-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[display-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

func (h *DisplayConfigHolder) Get() DisplayConfig {
	return h.current.Load().(DisplayConfig)
}

func validateDisplayConfig(cfg DisplayConfig) error {
	if strings.TrimSpace(cfg.CurrencyCode) == "" {
		return errors.New("display.currencyCode cannot be empty")
	}
	if strings.TrimSpace(cfg.FilenamePrefix) == "" {
		return errors.New("display.filenamePrefix cannot be empty")
	}
	return nil
}
