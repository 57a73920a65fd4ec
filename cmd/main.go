package main

import (
	"farmbiz-service/internal/cache"
	"farmbiz-service/internal/config"
	"farmbiz-service/internal/database/minio"
	"farmbiz-service/internal/database/postgres"
	"farmbiz-service/internal/database/redis"
	"farmbiz-service/internal/event"
	"farmbiz-service/internal/handlers"
	"farmbiz-service/internal/repository"
	"farmbiz-service/internal/services"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
)

func setupLogging() (*os.File, error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Recovered from panic: %v\n", r)
		}
	}()

	logDir := filepath.Join("/farmbiz", "log", "farmbiz_service")
	fmt.Println("Log directory:", logDir)
	err := os.MkdirAll(logDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create log directory: %v", err)
	}

	currentTime := time.Now()
	logFileName := fmt.Sprintf("log_%s.log", currentTime.Format("2006-01-02"))
	logFile := filepath.Join(logDir, logFileName)

	file, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %v", err)
	}

	log.SetOutput(file)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	return file, nil
}

func main() {
	// Setup logging
	logFile, err := setupLogging()
	if err != nil {
		log.Fatalf("Error setting up logging: %v", err)
	}
	defer logFile.Close()

	// Load configuration
	cfg := config.New()
	log.Printf("Connecting to PostgreSQL with: host=%s, port=%s, user=%s, dbname=%s",
		cfg.PostgresCfg.Host, cfg.PostgresCfg.Port, cfg.PostgresCfg.Username, cfg.PostgresCfg.DBname)

	// db connection
	db, err := postgres.ConnectAndCreateDB(cfg.PostgresCfg)
	if err != nil {
		log.Printf("error connect to database: %s", err)
		postgres.RetryConnectOnFailed(30*time.Second, &db, cfg.PostgresCfg)
	}
	defer db.Close()

	if err := postgres.InitSchema(db); err != nil {
		log.Fatalf("Error initializing schema: %v", err)
	}

	// redis connection
	redisClient, err := redis.NewRedisClient(cfg.RedisCfg.Host, cfg.RedisCfg.Port, cfg.RedisCfg.Password, cfg.RedisCfg.DB)
	if err != nil {
		log.Fatalf("Error connecting to Redis: %v", err)
	}
	defer redisClient.Close()

	// object storage
	minioClient, err := minio.NewMinioClient(cfg.MinioCfg)
	if err != nil {
		log.Fatalf("Error connecting to MinIO: %v", err)
	}

	// message broker; the service runs without it
	var publisher *event.Publisher
	rabbitConn, err := event.ConnectRabbitMQ(cfg.RabbitMQCfg)
	if err != nil {
		log.Printf("RabbitMQ unavailable, farm events disabled: %v", err)
	} else {
		defer rabbitConn.Close()
		publisher = event.NewPublisher(rabbitConn)
	}

	cacheStore := cache.NewRedisStore(redisClient.GetClient())

	//repositories
	farmerRepository := repository.NewFarmerRepository(db)
	activityRepository := repository.NewActivityRepository(db)
	businessRepository := repository.NewBusinessRepository(db)
	incentiveRepository := repository.NewIncentiveRepository(db)
	userRepository := repository.NewUserRepository(db)
	roleRepository := repository.NewRoleRepository(db)
	sessionRepository := repository.NewSessionRepository(redisClient.GetClient(),
		time.Duration(cfg.AuthCfg.RefreshTTLMinutes)*time.Minute)

	//services
	jwtService := services.NewJWTService(cfg.AuthCfg)
	sessionService := services.NewSessionService(sessionRepository)
	roleService := services.NewRoleService(roleRepository)
	weatherService := services.NewWeatherService(cfg.WeatherCfg, cacheStore)
	userService := services.NewUserService(userRepository, roleService, sessionService, jwtService)
	farmerService := services.NewFarmerService(farmerRepository)
	activityService := services.NewActivityService(activityRepository, farmerRepository, weatherService, cacheStore, minioClient, publisher)
	businessService := services.NewBusinessService(businessRepository, farmerRepository, userRepository, cacheStore, minioClient, publisher)
	incentiveService := services.NewIncentiveService(incentiveRepository, farmerRepository, publisher)

	if err := roleService.EnsureDefaultGroups(); err != nil {
		log.Fatalf("Error ensuring default role groups: %v", err)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.CustomRecovery(handlers.RecoveryHandler))

	// handlers
	authHandler := handlers.NewAuthHandler(userService, jwtService)
	farmerHandler := handlers.NewFarmerHandler(farmerService)
	activityHandler := handlers.NewActivityHandler(activityService)
	businessHandler := handlers.NewBusinessHandler(businessService)
	incentiveHandler := handlers.NewIncentiveHandler(incentiveService)

	// Register routes
	handlers.RegisterRootRoutes(r)
	authHandler.RegisterRoutes(r)
	farmerHandler.RegisterRoutes(r)
	activityHandler.RegisterRoutes(r)
	businessHandler.RegisterRoutes(r)
	incentiveHandler.RegisterRoutes(r)
	handlers.RegisterFallbackRoutes(r)

	log.Printf("Starting farmbiz-service on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
