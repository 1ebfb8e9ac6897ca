package main

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"github.com/rakhadjo/nusatrip/internal/config"
	"github.com/rakhadjo/nusatrip/internal/database"
	"github.com/rakhadjo/nusatrip/internal/handler"
	"github.com/rakhadjo/nusatrip/internal/logger"
	"github.com/rakhadjo/nusatrip/internal/queue"
	"github.com/rakhadjo/nusatrip/internal/repository"
	"github.com/rakhadjo/nusatrip/internal/router"
	"github.com/rakhadjo/nusatrip/internal/service/queue_publisher"
)

func main() {
	logger.Setup()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		logger.L().WithError(err).Fatal("database connection failed")
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	cacheCfg := config.LoadCacheConfig()

	users := repository.NewUserRepo(db)
	pesawats := repository.NewPesawatRepo(db)
	hotels := repository.NewHotelRepo(db)
	schedules := repository.NewScheduleRepo(db)
	flightBookings := repository.NewFlightBookingRepo(db)
	hotelBookings := repository.NewHotelBookingRepo(db)
	flightPayments := repository.NewFlightPaymentRepo(db)
	hotelPayments := repository.NewHotelPaymentRepo(db)

	events := queue_publisher.New()

	authH := handler.NewAuthHandler(users, cfg.JWTSecret)
	userH := handler.NewUserHandler(users, cfg.PublicDir)
	pesawatH := handler.NewPesawatHandler(pesawats, cfg.PublicDir)
	hotelH := handler.NewHotelHandler(hotels, cfg.PublicDir)
	scheduleH := handler.NewScheduleHandler(schedules)
	flightBookingH := handler.NewFlightBookingHandler(flightBookings, schedules, events, cfg.PublicDir)
	hotelBookingH := handler.NewHotelBookingHandler(hotelBookings, hotels, events, cfg.PublicDir)
	paymentH := handler.NewPaymentHandler(flightPayments, hotelPayments)

	go queue.StartBookingConsumer()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	router.RegisterHealth(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterUsers(e, userH, cfg.JWTSecret)
	router.RegisterCatalog(e, pesawatH, hotelH, scheduleH, cacheCfg, rdb)
	router.RegisterBookings(e, flightBookingH, hotelBookingH, cfg.JWTSecret)
	router.RegisterPayments(e, paymentH)

	addr := ":" + cfg.Port
	logger.L().WithFields(logrus.Fields{"addr": addr, "env": cfg.Env}).Info("server starting")
	if err := e.Start(addr); err != nil {
		logger.L().WithError(err).Fatal("server stopped")
	}
}
