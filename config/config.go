// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package config

import (
	"log"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// PersistenceConfig selects and configures the storage backend for finished
// conversations.
type PersistenceConfig struct {
	// Backend is "webhook" or "local".
	Backend string `mapstructure:"backend" validate:"required,oneof=webhook local"`

	// Webhook backend.
	WebhookURL      string `mapstructure:"webhook_url"`
	WebhookToken    string `mapstructure:"webhook_token"`
	WebhookTimeoutS int    `mapstructure:"webhook_timeout_s"`

	// Local backend.
	LocalDir string `mapstructure:"local_dir"`
}

// AudioConfigSection configures audio capture and encoding.
type AudioConfigSection struct {
	// EncodeBitrateKbps is the bitrate handed to the compressed-audio
	// encoder at session end.
	EncodeBitrateKbps int `mapstructure:"encode_bitrate_kbps" validate:"required"`
	// FfmpegPath is the external encoder binary; looked up on PATH when
	// not absolute.
	FfmpegPath string `mapstructure:"ffmpeg_path" validate:"required"`
}

// Application config structure
type AppConfig struct {
	Name     string `mapstructure:"service_name" validate:"required"`
	Version  string `mapstructure:"version" validate:"required"`
	Host     string `mapstructure:"host" validate:"required"`
	Port     int    `mapstructure:"port" validate:"required"`
	LogLevel string `mapstructure:"log_level" validate:"required"`
	LogPath  string `mapstructure:"log_path"`

	// AgentName is reported on every stored conversation.
	AgentName string `mapstructure:"agent_name" validate:"required"`

	// JournalPath is the sqlite file holding the session journal.
	JournalPath string `mapstructure:"journal_path" validate:"required"`

	Persistence PersistenceConfig  `mapstructure:"persistence" validate:"required"`
	Audio       AudioConfigSection `mapstructure:"audio" validate:"required"`
}

// reading config and intializing configs for application
func InitConfig() (*viper.Viper, error) {
	vConfig := viper.NewWithOptions(viper.KeyDelimiter("__"))

	vConfig.AddConfigPath(".")
	vConfig.SetConfigName(".env")
	path := os.Getenv("ENV_PATH")
	if path != "" {
		log.Printf("env path %v", path)
		vConfig.SetConfigFile(path)
	}
	vConfig.SetConfigType("env")
	vConfig.AutomaticEnv()

	setDefault(vConfig)
	if err := vConfig.ReadInConfig(); err != nil && !os.IsNotExist(err) {
		log.Printf("Reading from env varaibles.")
	}

	return vConfig, nil
}

func setDefault(v *viper.Viper) {
	// setting all default values
	v.SetDefault("SERVICE_NAME", "capture-api")
	v.SetDefault("VERSION", "0.0.1")
	v.SetDefault("HOST", "0.0.0.0")
	v.SetDefault("PORT", 9098)
	v.SetDefault("LOG_LEVEL", "debug")
	v.SetDefault("LOG_PATH", "")

	v.SetDefault("AGENT_NAME", "Camille")
	v.SetDefault("JOURNAL_PATH", "capture.db")

	v.SetDefault("PERSISTENCE__BACKEND", "local")
	v.SetDefault("PERSISTENCE__WEBHOOK_URL", "")
	v.SetDefault("PERSISTENCE__WEBHOOK_TOKEN", "")
	v.SetDefault("PERSISTENCE__WEBHOOK_TIMEOUT_S", 10)
	v.SetDefault("PERSISTENCE__LOCAL_DIR", "logs/conversations")

	v.SetDefault("AUDIO__ENCODE_BITRATE_KBPS", 64)
	v.SetDefault("AUDIO__FFMPEG_PATH", "ffmpeg")
}

// Getting application config from viper
func GetApplicationConfig(v *viper.Viper) (*AppConfig, error) {
	var config AppConfig
	err := v.Unmarshal(&config)
	if err != nil {
		log.Printf("%+v\n", err)
		return nil, err
	}
	validate := validator.New()
	if err := validate.Struct(&config); err != nil {
		return nil, err
	}
	return &config, nil
}
