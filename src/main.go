package main

import (
	_ "Backend-Celestia-Admin/docs"
	"Backend-Celestia-Admin/src/config"
	"Backend-Celestia-Admin/src/controllers"
	"Backend-Celestia-Admin/src/database"
	"Backend-Celestia-Admin/src/jobs"
	"Backend-Celestia-Admin/src/logger"
	"Backend-Celestia-Admin/src/middleware"
	"Backend-Celestia-Admin/src/qrcode"
	"Backend-Celestia-Admin/src/routes"
	"Backend-Celestia-Admin/src/seeder"
	"Backend-Celestia-Admin/src/services/approvals"
	"Backend-Celestia-Admin/src/services/auth"
	"Backend-Celestia-Admin/src/services/checkins"
	"Backend-Celestia-Admin/src/services/notifications"
	"Backend-Celestia-Admin/src/services/reports"
	"Backend-Celestia-Admin/src/services/seats"
	"Backend-Celestia-Admin/src/services/tickets"
	"Backend-Celestia-Admin/src/services/visitors"
	"Backend-Celestia-Admin/src/utils"
	"context"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// @title        Celestia Admin API
// @version      1.0
// @BasePath     /
// @securityDefinitions.apikey BearerAuth
// @in           header
// @name         Authorization
func main() {
	seedSeats := flag.String("seed-seats", "", "seed seats from a YAML layout file and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	logr := logger.New(cfg.LogLevel, cfg.LogFormat)
	ctx := context.Background()

	// เชื่อมต่อกับ MongoDB
	db, err := database.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDatabase, logr)
	if err != nil {
		logr.Fatalf("Error connecting to the database: %v", err)
	}
	defer func() { _ = db.Disconnect(context.Background()) }()

	if err := db.EnsureIndexes(ctx); err != nil {
		logr.WithError(err).Warn("⚠️ could not ensure indexes")
	}

	orderStore := database.NewOrderStore(db.Orders)
	seatStore := database.NewSeatStore(db.Seats)
	visitorStore := database.NewVisitorStore(db.Visitors)

	if *seedSeats != "" {
		if err := seeder.SeedSeats(ctx, seatStore, *seedSeats, logr); err != nil {
			logr.Fatalf("Error seeding seats: %v", err)
		}
		return
	}

	var redisClient *redis.Client
	if cfg.RedisEnabled() {
		redisClient, err = database.NewRedisClient(ctx, cfg.RedisURI, cfg.RedisPassword)
		if err != nil {
			logr.WithError(err).Warn("⚠️ Redis unavailable, running without token blacklist and job queue")
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	authSvc := auth.NewService(
		cfg.AdminUsername,
		cfg.AdminPasswordHash,
		utils.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL),
		utils.NewTokenBlacklist(redisClient),
		auth.NewLoginLimiter(redisClient),
		logr,
	)

	generator := tickets.NewGenerator(
		qrcode.NewEncoder(cfg.QRSize),
		tickets.NewChromeRenderer(cfg.PDFTimeout),
		cfg.TicketAttachPDF,
	)

	var gateway notifications.Gateway
	if gateway, err = notifications.NewGatewayFromConfig(cfg); err != nil {
		logr.WithError(err).Warn("⚠️ mail gateway disabled")
		gateway = nil
	}
	dispatcher := notifications.NewDispatcher(
		gateway,
		notifications.Address{Name: cfg.MailFromName, Email: cfg.MailFromAddress},
		cfg.MailTimeout,
		cfg.MailRetries,
		logr,
	)

	approvalSvc := approvals.NewService(orderStore, seatStore, generator, dispatcher, cfg.EventName, logr)
	checkinSvc := checkins.NewService(orderStore, logr)
	if cfg.DiscordEnabled() {
		feed, err := notifications.NewDiscordFeed(cfg.DiscordBotToken, cfg.DiscordChannelID)
		if err != nil {
			logr.WithError(err).Warn("⚠️ Discord feed disabled")
		} else {
			approvalSvc.WithFeed(feed)
			checkinSvc.WithFeed(feed)
		}
	}

	var worker *jobs.Worker
	if redisClient != nil {
		asynqClient := database.NewAsynqClient(cfg.RedisURI, cfg.RedisPassword)
		defer asynqClient.Close()
		approvalSvc.WithQueue(jobs.NewTicketQueue(asynqClient, jobs.DefaultResendDelay, logr))

		worker, err = startWorker(cfg, approvalSvc, seats.NewReconciler(orderStore, seatStore, cfg.SeatReleaseGrace, logr), logr)
		if err != nil {
			logr.WithError(err).Error("❌ asynq worker not started")
		}
	}

	validate := validator.New()
	handlers := &controllers.Handlers{
		Approvals: approvalSvc,
		CheckIns:  checkinSvc,
		Reports:   reports.NewService(orderStore, logr),
		Visitors:  visitors.NewService(visitorStore, generator, dispatcher, validate, cfg.EventName, logr),
		Auth:      authSvc,
		Validate:  validate,
	}

	// สร้าง app instance
	app := fiber.New(fiber.Config{ErrorHandler: utils.FiberErrorHandler})
	app.Use(recover.New())

	// ✅ เปิดใช้งาน CORS Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, " + middleware.HeaderRequestID,
		AllowCredentials: false, // ❌ ต้องเป็น false ถ้าใช้ "*"
	}))
	app.Use(middleware.RequestLogger(logr))

	// รวม routes จากแต่ละ module
	routes.InitRoutes(app, handlers, middleware.AuthJWT(authSvc))

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		logr.Info("shutting down")
		if worker != nil {
			worker.Shutdown()
		}
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logr.WithError(err).Error("❌ server shutdown")
		}
	}()

	// เริ่มเซิร์ฟเวอร์
	logr.WithField("port", cfg.AppPort).Info("Server is running")
	if err := app.Listen(fmt.Sprintf(":%s", url.PathEscape(cfg.AppPort))); err != nil {
		logr.Fatal(err)
	}
}

func startWorker(cfg *config.Config, resender jobs.TicketResender, reconciler jobs.SeatReconciler, logr *logrus.Logger) (*jobs.Worker, error) {
	w, err := jobs.NewWorker(database.AsynqRedisOpt(cfg.RedisURI, cfg.RedisPassword), jobs.NewServeMux(resender, reconciler, logr), cfg.SeatReconcileSpec, logr)
	if err != nil {
		return nil, err
	}
	if err := w.Start(); err != nil {
		return nil, err
	}
	return w, nil
}
