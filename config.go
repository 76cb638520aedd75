package occult

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

var (
	config    = _occultconfig{}
	cfgLoaded = false
)

// _occultconfig is a hidden struct which stores the occult configuration.
type _occultconfig struct {
	order          int
	planeCacheSize int
	workers        int
	outputDir      string
}

// occultConfig returns the configuration, lazily loaded from the TOML file
// in the directory pointed to by OCCULT_CONFIG. The variable is optional:
// when unset every knob falls back to its default. A set but unreadable
// configuration is a programming error and panics.
func occultConfig() _occultconfig {
	if cfgLoaded {
		return config
	}

	viper.SetDefault("quadrature.order", 20)
	viper.SetDefault("cache.wignerplanes", 128)
	viper.SetDefault("batch.workers", 0)
	viper.SetDefault("general.output_path", ".")

	if confPath := os.Getenv("OCCULT_CONFIG"); confPath != "" {
		viper.AddConfigPath(confPath)
		viper.SetConfigName("conf")
		if err := viper.ReadInConfig(); err != nil {
			panic(fmt.Errorf("error reading config file: %s", err))
		}
	}

	config = _occultconfig{
		order:          viper.GetInt("quadrature.order"),
		planeCacheSize: viper.GetInt("cache.wignerplanes"),
		workers:        viper.GetInt("batch.workers"),
		outputDir:      viper.GetString("general.output_path"),
	}
	if config.order <= 0 {
		panic(fmt.Errorf("quadrature.order must be positive, got %d", config.order))
	}
	if config.planeCacheSize <= 0 {
		panic(fmt.Errorf("cache.wignerplanes must be positive, got %d", config.planeCacheSize))
	}
	cfgLoaded = true
	return config
}
