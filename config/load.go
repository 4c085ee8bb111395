package config

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

func Load() App {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	env := getenv("APP_ENV", "dev")

	cfg := App{
		Port:          getenv("APP_PORT", "8080"),
		DatabaseURL:   must("DATABASE_URL"),
		JWTSecret:     secret(env, "JWT_SECRET", "local_dev_secret"),
		AdminUsername: secret(env, "ADMIN_USERNAME", "admin"),
		AdminPassword: secret(env, "ADMIN_PASSWORD", "admin"),
		FineGraceDays: getint("FINE_GRACE_DAYS", 7),
		FineDailyRate: getenv("FINE_DAILY_RATE", "5"),
		Env:           env,
	}
	return cfg
}

// secret allows a fallback only in dev. Anywhere else the value
// has to come from the environment.
func secret(env, k, devDefault string) string {
	if env == "dev" {
		return getenv(k, devDefault)
	}
	return must(k)
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Error("invalid int env", "key", k, "value", v)
		panic("invalid env " + k)
	}
	return n
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		slog.Error("required env missing", "key", k)
		panic("missing env " + k)
	}
	return v
}
