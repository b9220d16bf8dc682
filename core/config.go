package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		AppName  string
		Env      string
		Debug    bool
		TestMode bool
		Build    string

		// DataFile is the default path of the roster snapshot.
		DataFile string
		// GPAPolicy selects how a student's GPA is derived: "scale" or "mean".
		GPAPolicy string

		RollbarToken string

		Server ServerConfig
	}

	ServerConfig struct {
		Addr            string
		ShutdownTimeout time.Duration
	}
)

func NewConfig() *Config {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("appName", "Gradebook")
	conf.SetDefault("debug", true)
	conf.SetDefault("build", "dev")
	conf.SetDefault("dataFile", "students.json")
	conf.SetDefault("gpaPolicy", "scale")
	conf.SetDefault("rollbarToken", "")
	conf.SetDefault("serverAddr", ":8000")
	conf.SetDefault("serverShutdownTimeout", 5*time.Second)

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		conf.SetDefault("testMode", true)
	}
	conf.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	return &Config{
		AppName:      conf.GetString("appName"),
		Env:          env,
		Debug:        conf.GetBool("debug"),
		TestMode:     conf.GetBool("testMode"),
		Build:        conf.GetString("build"),
		DataFile:     conf.GetString("dataFile"),
		GPAPolicy:    conf.GetString("gpaPolicy"),
		RollbarToken: conf.GetString("rollbarToken"),
		Server: ServerConfig{
			Addr:            conf.GetString("serverAddr"),
			ShutdownTimeout: conf.GetDuration("serverShutdownTimeout"),
		},
	}
}
