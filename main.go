// Package main library API.
//
// @title           Library Desk API
// @version         1.0
// @description     library management service (books, circulation, fines, students).
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"librarydesk/app/echoServer"
	authctrl "librarydesk/app/echoServer/controller/auth"
	bookctrl "librarydesk/app/echoServer/controller/book"
	circctrl "librarydesk/app/echoServer/controller/circulation"
	finesctrl "librarydesk/app/echoServer/controller/fines"
	"librarydesk/app/echoServer/validation"
	"librarydesk/config"
	bookrepo "librarydesk/repository/book"
	circrepo "librarydesk/repository/circulation"
	finerepo "librarydesk/repository/fine"
	studentrepo "librarydesk/repository/student"
	authsvc "librarydesk/service/auth"
	booksvc "librarydesk/service/book"
	circsvc "librarydesk/service/circulation"
	finesvc "librarydesk/service/fine"
	"librarydesk/util/database"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// DB: *sql.DB over the pgx driver
	db, err := database.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// fine policy
	policy, err := finesvc.NewPolicy(cfg.FineGraceDays, cfg.FineDailyRate)
	if err != nil {
		log.Error("invalid fine policy", "err", err)
		os.Exit(1)
	}

	// repos
	br := bookrepo.New(db)
	cr := circrepo.New(db)
	fr := finerepo.New(db)
	sr := studentrepo.New(db)

	// services
	as := authsvc.New(sr, cfg.JWTSecret, cfg.AdminUsername, cfg.AdminPassword)
	bs := booksvc.New(br)
	cs := circsvc.New(cr, policy)
	rep := finesvc.NewReporter(fr)

	// controllers
	v := validator.New()
	authC := &authctrl.Controller{Svc: as, Circ: cs, V: v, Log: log}
	bookC := &bookctrl.Controller{Svc: bs, V: v, Log: log}
	circC := &circctrl.Controller{Svc: cs, V: v, Log: log}
	finesC := &finesctrl.Controller{Svc: rep, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/metrics", echoServer.MetricsHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Auth:        authC,
		Book:        bookC,
		Circulation: circC,
		Fines:       finesC,

		JWTSecret: cfg.JWTSecret,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}
	if port == "" {
		port = "8080"
	}

	log.Info("starting server", "port", port, "env", cfg.Env)

	e.Logger.Fatal(e.Start(":" + port))
}
