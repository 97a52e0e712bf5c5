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

// Store backends
const (
	BackendAPI      = "api"
	BackendFixtures = "fixtures"
)

type (
	apiConfig struct {
		BaseURL        string
		Token          string
		RequestTimeout time.Duration
	}

	storeConfig struct {
		Backend       string // BackendAPI | BackendFixtures
		LastWriteWins bool
	}

	mockAPIConfig struct {
		Address         string
		SecretKey       string
		JWTExpiration   time.Duration
		ShutdownTimeout time.Duration
	}

	Config struct {
		Env              string
		Build            string
		AppName          string
		Debug            bool
		TestMode         bool
		WorkDir          string
		RollbarToken     string
		AuthReadyTimeout time.Duration

		API     apiConfig
		Store   storeConfig
		MockAPI mockAPIConfig
	}
)

// NewConfig loads the configuration from the environment.
// Variables are prefixed with the current env, e.g. DEV_API_BASEURL, PROD_ROLLBARTOKEN.
func NewConfig() *Config {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("build", "dev")
	v.SetDefault("debug", true)
	v.SetDefault("appName", "Campus")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("authReadyTimeout", 10*time.Second)
	v.SetDefault("api.baseURL", "http://localhost:8000")
	v.SetDefault("api.token", "")
	v.SetDefault("api.requestTimeout", 30*time.Second)
	v.SetDefault("store.backend", BackendAPI)
	v.SetDefault("store.lastWriteWins", false)
	v.SetDefault("mockAPI.address", ":8000")
	v.SetDefault("mockAPI.secretKey", "x3#k9-campus-dev-secret-(do-not-use-in-prod)")
	v.SetDefault("mockAPI.jwtExpiration", 7*24*time.Hour)
	v.SetDefault("mockAPI.shutdownTimeout", 5*time.Second)

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	if env == "" {
		env = "DEV"
	}
	if env == "TEST" {
		v.SetDefault("testMode", true)
		v.SetDefault("store.backend", BackendFixtures)
	}
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	wd := Getwd()
	dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	return &Config{
		Env:              env,
		Build:            v.GetString("build"),
		AppName:          v.GetString("appName"),
		Debug:            v.GetBool("debug"),
		TestMode:         v.GetBool("testMode"),
		WorkDir:          wd,
		RollbarToken:     v.GetString("rollbarToken"),
		AuthReadyTimeout: v.GetDuration("authReadyTimeout"),
		API: apiConfig{
			BaseURL:        strings.TrimRight(v.GetString("api.baseURL"), "/"),
			Token:          v.GetString("api.token"),
			RequestTimeout: v.GetDuration("api.requestTimeout"),
		},
		Store: storeConfig{
			Backend:       strings.ToLower(v.GetString("store.backend")),
			LastWriteWins: v.GetBool("store.lastWriteWins"),
		},
		MockAPI: mockAPIConfig{
			Address:         v.GetString("mockAPI.address"),
			SecretKey:       v.GetString("mockAPI.secretKey"),
			JWTExpiration:   v.GetDuration("mockAPI.jwtExpiration"),
			ShutdownTimeout: v.GetDuration("mockAPI.shutdownTimeout"),
		},
	}
}

// UsesFixtures reports whether stores should be served by the in-process fixture API.
func (c *Config) UsesFixtures() bool {
	return c.Store.Backend == BackendFixtures
}
