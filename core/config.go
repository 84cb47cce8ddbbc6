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

// Config holds every knob this layer exposes. The backend host is the only
// setting without a usable default.
type Config struct {
	AppName  string
	Env      string // DEV (local; default), TEST, QA, PROD
	Debug    bool
	TestMode bool

	// APIBaseURL selects the kazi backend host, eg. "https://hr.example.com/api/v1".
	// It is the only externally-visible configuration surface of the client layer.
	APIBaseURL string

	// RequestTimeout bounds every outgoing call; zero keeps the http.Client
	// default (no timeout).
	RequestTimeout time.Duration

	SessionFile  string
	RollbarToken string
}

// NewConfig loads configuration from the environment, prefixed with "<ENV>_",
// and from an optional config/.env.<env> file.
func NewConfig() *Config {
	v := viper.New()
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("appName", "Kazi")
	v.SetDefault("apiBaseURL", "http://localhost:8000/api/v1")
	v.SetDefault("requestTimeout", time.Duration(0))
	v.SetDefault("sessionFile", defaultSessionFile())
	v.SetDefault("rollbarToken", "")

	env := os.Getenv("ENV")
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	return &Config{
		AppName:        v.GetString("appName"),
		Env:            env,
		Debug:          v.GetBool("debug"),
		TestMode:       v.GetBool("testMode"),
		APIBaseURL:     strings.TrimRight(v.GetString("apiBaseURL"), "/"),
		RequestTimeout: v.GetDuration("requestTimeout"),
		SessionFile:    v.GetString("sessionFile"),
		RollbarToken:   v.GetString("rollbarToken"),
	}
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "kazi", "session.json")
}
