package config

type App struct {
	Port          string `env:"APP_PORT" default:"8080"`
	DatabaseURL   string `env:"DATABASE_URL,required"`
	JWTSecret     string `env:"JWT_SECRET"`
	AdminUsername string `env:"ADMIN_USERNAME"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
	FineGraceDays int    `env:"FINE_GRACE_DAYS" default:"7"`
	FineDailyRate string `env:"FINE_DAILY_RATE" default:"5"`
	Env           string `env:"APP_ENV" default:"dev"`
}
