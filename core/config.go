package core

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	APIConfig struct {
		BaseURL  string
		Timeout  time.Duration
		SchoolID string
		Token    string
	}

	SmokeConfig struct {
		Host     string
		Port     int
		Timeout  time.Duration
		PagePath string
	}

	ServerConfig struct {
		Address                   string
		ShutdownTimeout           time.Duration
		JWTExpirationDelta        time.Duration
		JWTRefreshExpirationDelta time.Duration
	}

	Config struct {
		Env          string
		Build        string
		AppName      string
		Debug        bool
		TestMode     bool
		SecretKey    string
		RollbarToken string
		WeekStart    time.Weekday
		API          APIConfig
		Smoke        SmokeConfig
		Server       ServerConfig
	}
)

// NewConfig loads the configuration from defaults, the optional `config/.env.<env>` file and the environment.
// Environment variables are prefixed with the upper-cased ENV name, eg. DEV_API_BASE_URL.
func NewConfig() *Config {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("testMode", false)
	conf.SetDefault("build", "dev")
	conf.SetDefault("appName", "Masomo")
	conf.SetDefault("secretKey", "poq5-wer)enb$+57=dz&uoxh2(h!x)#*c2(#yg4h^$cegm2emy")
	conf.SetDefault("rollbarToken", "")
	conf.SetDefault("weekStart", "sunday")

	conf.SetDefault("api.baseURL", "http://localhost:8000")
	conf.SetDefault("api.timeout", "10s") // a bare number is milliseconds, see durationOf
	conf.SetDefault("api.schoolID", "")
	conf.SetDefault("api.token", "")

	conf.SetDefault("smoke.host", "localhost")
	conf.SetDefault("smoke.port", 3000)
	conf.SetDefault("smoke.timeout", "5s")
	conf.SetDefault("smoke.pagePath", "/dashboard")

	conf.SetDefault("server.address", ":8000")
	conf.SetDefault("server.shutdownTimeout", 5*time.Second)
	conf.SetDefault("server.jwtExpirationDelta", 7*24*time.Hour)
	conf.SetDefault("server.jwtRefreshExpirationDelta", 4*time.Hour)

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		conf.SetDefault("testMode", true)
	case "PROD":
		conf.SetDefault("debug", false)
	}
	conf.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	if wd, err := os.Getwd(); err == nil {
		dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
		if _, err := os.Stat(dotEnvPath); err == nil {
			if err := godotenv.Load(dotEnvPath); err != nil {
				log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
			}
		} else if !os.IsNotExist(err) {
			log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
		}
	}

	// nested keys map to env vars with underscores: api.baseURL -> DEV_API_BASEURL
	conf.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	conf.AutomaticEnv()

	// the smoke runner is usually pointed at a deployment from CI: its keys are not prefixed
	for _, key := range []string{"host", "port", "timeout", "pagePath"} {
		_ = conf.BindEnv("smoke."+key, "SMOKE_"+strings.ToUpper(key))
	}

	return &Config{
		Env:          env,
		Build:        conf.GetString("build"),
		AppName:      conf.GetString("appName"),
		Debug:        conf.GetBool("debug"),
		TestMode:     conf.GetBool("testMode"),
		SecretKey:    conf.GetString("secretKey"),
		RollbarToken: conf.GetString("rollbarToken"),
		WeekStart:    ParseWeekStart(conf.GetString("weekStart")),
		API: APIConfig{
			BaseURL:  strings.TrimRight(conf.GetString("api.baseURL"), "/"),
			Timeout:  durationOf(conf, "api.timeout"),
			SchoolID: conf.GetString("api.schoolID"),
			Token:    conf.GetString("api.token"),
		},
		Smoke: SmokeConfig{
			Host:     conf.GetString("smoke.host"),
			Port:     conf.GetInt("smoke.port"),
			Timeout:  durationOf(conf, "smoke.timeout"),
			PagePath: conf.GetString("smoke.pagePath"),
		},
		Server: ServerConfig{
			Address:                   conf.GetString("server.address"),
			ShutdownTimeout:           conf.GetDuration("server.shutdownTimeout"),
			JWTExpirationDelta:        conf.GetDuration("server.jwtExpirationDelta"),
			JWTRefreshExpirationDelta: conf.GetDuration("server.jwtRefreshExpirationDelta"),
		},
	}
}

// ParseWeekStart maps "monday" to time.Monday; anything else is Sunday.
func ParseWeekStart(s string) time.Weekday {
	if CleanString(s, true /* lower */) == "monday" {
		return time.Monday
	}
	return time.Sunday
}

// durationOf reads a duration key such as "5s". A bare number is taken as milliseconds.
func durationOf(conf *viper.Viper, key string) time.Duration {
	if ms, err := strconv.ParseInt(strings.TrimSpace(conf.GetString(key)), 10, 64); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	return conf.GetDuration(key)
}
