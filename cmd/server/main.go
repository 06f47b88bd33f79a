package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron"
	config "github.com/sufia0/social-dashboard/configs"
	"github.com/sufia0/social-dashboard/internal/api/handlers"
	"github.com/sufia0/social-dashboard/internal/api/middleware"
	job "github.com/sufia0/social-dashboard/internal/jobs"
	"github.com/sufia0/social-dashboard/internal/queue"
	"github.com/sufia0/social-dashboard/internal/repository"
	"github.com/sufia0/social-dashboard/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()

	db, err := sql.Open("postgres", cfg.PostgresURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer closeDB(db)

	if err := db.Ping(); err != nil {
		log.Fatalf("Database is unreachable: %v", err)
	}

	redisConn := asynq.RedisClientOpt{Addr: cfg.RedisURI}
	client := asynq.NewClient(redisConn)
	defer client.Close()

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisURI})
	defer rdb.Close()

	app := fiber.New(fiber.Config{
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "something went wrong"})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool {
			return origin == cfg.FrontendURL
		},
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	socialAccountRepo := repository.NewSocialAccountRepository(db)
	metricRepo := repository.NewMetricRepository(db)
	publishHistoryRepo := repository.NewPublishHistoryRepository(db)
	oauthStateRepo := repository.NewOAuthStateRepository(rdb)

	clients := service.NewClientRegistry(*cfg)

	authService := service.NewAuthService(*cfg, userRepo)
	userService := service.NewUserService(userRepo)
	postService := service.NewPostService(postRepo)
	platformService := service.NewPlatformService(*cfg, socialAccountRepo, oauthStateRepo)
	collectorService := service.NewCollectorService(socialAccountRepo, postRepo, metricRepo, clients)
	analyticsService := service.NewAnalyticsService(userRepo, socialAccountRepo, metricRepo)

	authMiddleware := middleware.NewAuthMiddleware(*cfg)

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := db.PingContext(c.Context()); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "Error", "error": "Database connection failed"})
		}
		return c.JSON(fiber.Map{"status": "OK", "database": "Connected"})
	})

	auth := handlers.NewAuthHandler(authService)
	app.Post("/auth/register", auth.Register)
	app.Post("/auth/login", auth.Login)

	platform := handlers.NewPlatformHandler(platformService)
	app.Get("/auth/:platform", authMiddleware.AuthMiddleware(), platform.AddSocialAccount)
	app.Get("/auth/:platform/callback", platform.CallbackHandler)

	api := app.Group("/api")
	api.Use(authMiddleware.AuthMiddleware())

	user := handlers.NewUserHandler(userService)
	api.Get("/user/info", user.GetUserInfo)

	dashboard := handlers.NewDashboardHandler(analyticsService, collectorService)
	api.Get("/dashboard/stats", dashboard.GetStats)
	api.Post("/metrics/collect", dashboard.CollectMetrics)

	post := handlers.NewPostHandler(postService, queue.NewPublisher(client))
	api.Post("/posts", post.CreatePost)
	api.Get("/posts", post.ListPosts)
	api.Post("/posts/remove", post.RemovePost)

	// social accounts api routes
	api.Get("/accounts", platform.ListSocialAccounts)
	api.Post("/accounts/remove", platform.DeleteSocialAccount)

	// cron jobs
	metricsJob := job.NewMetricsCollectionJob(socialAccountRepo, collectorService)

	// queue
	queueW := queue.NewQueue(postRepo, socialAccountRepo, publishHistoryRepo, clients)

	c := cron.New()
	c.AddFunc("@every 00h15m00s", metricsJob.CollectAll)
	c.Start()

	go func() {
		server := asynq.NewServer(redisConn, asynq.Config{
			Concurrency: 10,
		})

		mux := asynq.NewServeMux()
		mux.HandleFunc(queue.TaskTypePublishPost, queueW.HandlePublishPostTask)

		log.Println("Starting the Asynq server...")
		if err := server.Run(mux); err != nil {
			log.Fatalf("Could not start Asynq server: %v", err)
		}
	}()

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Printf("Server is running on http://localhost:%s", cfg.Port)

	gracefulShutdown(app, db)
}

func closeDB(db *sql.DB) {
	fmt.Fprint(os.Stdout, "Closing database connection... ")
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}

func gracefulShutdown(app *fiber.App, db *sql.DB) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}

	closeDB(db)
	log.Println("Server shutdown complete.")
}
