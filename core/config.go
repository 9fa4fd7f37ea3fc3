package core

import (
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config carries all runtime settings. A single instance is built at startup
// and handed to whoever needs it; nothing reads the environment after that.
type Config struct {
	Env      string // DEV (default), TEST, QA, PROD
	Debug    bool
	TestMode bool

	AppName   string
	SecretKey []byte

	// DataPath is the SQLite file backing the document store.
	DataPath string

	DefaultFromEmail          mail.Address
	PasswordResetTimeoutDelta time.Duration

	// StrongPasswords switches new password hashes to bcrypt and enables the
	// stricter sign-up password checks. Off by default: documents written by
	// older installs carry plain SHA-256 digests.
	StrongPasswords bool

	SendgridAPIKey string
	RollbarToken   string
}

// NewConfig loads configuration from the environment, with an optional
// config/.env.<env> file on top of the built-in defaults.
func NewConfig() (*Config, error) {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	v.SetDefault("debug", true)
	v.SetDefault("appName", "TutorHub")
	v.SetDefault("secretKey", "k4u%x@vb+a)q(w$=8m&2^y!e7_z-0o#r5t1s6d9f3g8h(j)l")
	v.SetDefault("dataPath", filepath.Join("data", "tutorhub.db"))
	v.SetDefault("defaultFromEmail", "noreply@localhost")
	v.SetDefault("passwordResetTimeoutDelta", 3*24*time.Hour)
	v.SetDefault("strongPasswords", false)
	v.SetDefault("sendgridApiKey", "")
	v.SetDefault("rollbarToken", "")

	env := strings.ToUpper(os.Getenv("ENV"))
	if env == "" {
		env = "DEV"
	}
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			return nil, errors.Wrapf(err, "loading %s", dotEnvPath)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "checking %s", dotEnvPath)
	}
	v.AutomaticEnv()

	return &Config{
		Env:                       env,
		Debug:                     v.GetBool("debug"),
		TestMode:                  env == "TEST",
		AppName:                   v.GetString("appName"),
		SecretKey:                 []byte(v.GetString("secretKey")),
		DataPath:                  v.GetString("dataPath"),
		DefaultFromEmail:          mail.Address{Name: v.GetString("appName"), Address: v.GetString("defaultFromEmail")},
		PasswordResetTimeoutDelta: v.GetDuration("passwordResetTimeoutDelta"),
		StrongPasswords:           v.GetBool("strongPasswords"),
		SendgridAPIKey:            v.GetString("sendgridApiKey"),
		RollbarToken:              v.GetString("rollbarToken"),
	}, nil
}

// NewTestConfig returns a Config suitable for tests: deterministic key,
// no external services.
func NewTestConfig() *Config {
	return &Config{
		Env:                       "TEST",
		Debug:                     true,
		TestMode:                  true,
		AppName:                   "TutorHub",
		SecretKey:                 []byte("test-secret-key"),
		DefaultFromEmail:          mail.Address{Name: "TutorHub", Address: "noreply@localhost"},
		PasswordResetTimeoutDelta: 3 * 24 * time.Hour,
	}
}
