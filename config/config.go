package config

import (
	"github.com/cloudflare/cfssl/log"
	viper2 "github.com/spf13/viper"

	"github.com/greenguardV2/commoncon"
)

type Config struct {
	ListenAddr      string
	Difficulty      int
	MaxMineAttempts uint64
}

// Load reads config.yaml from dir. A missing file is fine: defaults apply.
func Load(dir string) (Config, error) {
	viper := viper2.New()
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(dir)

	viper.SetDefault("listen", ":8545")
	viper.SetDefault("difficulty", commoncon.Difficulty)
	viper.SetDefault("max_mine_attempts", commoncon.DefaultMaxMineAttempts)

	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper2.ConfigFileNotFoundError); !notFound {
			return Config{}, err
		}
		log.Warningf("no config file in %s, using defaults", dir)
	}

	return Config{
		ListenAddr:      viper.GetString("listen"),
		Difficulty:      viper.GetInt("difficulty"),
		MaxMineAttempts: uint64(viper.GetInt64("max_mine_attempts")),
	}, nil
}
