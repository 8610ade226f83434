package main

import (
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	_ "photoshare/docs" // swagger docs

	"photoshare/internal/auth"
	"photoshare/internal/cache"
	"photoshare/internal/config"
	"photoshare/internal/db"
	"photoshare/internal/handler"
	"photoshare/internal/mail"
	"photoshare/internal/model"
	"photoshare/internal/repository"
	"photoshare/internal/router"
	"photoshare/internal/service"
)

// @title PhotoShare API
// @version 1.0
// @description Photo sharing API with image management, ratings, comments, and JWT authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}

	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Tag{},
		&model.Image{},
		&model.Rating{},
		&model.Comment{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	userRepo := repository.NewUserRepository(gormDB)
	imageRepo := repository.NewImageRepository(gormDB)
	tagRepo := repository.NewTagRepository(gormDB)
	ratingRepo := repository.NewRatingRepository(gormDB)
	commentRepo := repository.NewCommentRepository(gormDB)

	tokens := auth.NewTokenService(auth.Config{
		Secret:     cfg.JWTSecret,
		Algorithm:  cfg.JWTAlgorithm,
		AccessTTL:  cfg.AccessTTL,
		RefreshTTL: cfg.RefreshTTL,
		EmailTTL:   cfg.EmailTTL,
	})

	mailer := mail.NewSender(cfg.MailHost, cfg.MailPort, cfg.MailUsername, cfg.MailPassword, cfg.MailFrom)

	authService := service.NewAuthService(userRepo, tokens, mailer, cfg.AppBaseURL)
	userService := service.NewUserService(userRepo, cacheClient)
	imageService := service.NewImageService(imageRepo, tagRepo, ratingRepo, commentRepo)
	tagService := service.NewTagService(tagRepo)
	ratingService := service.NewRatingService(ratingRepo, imageRepo)
	commentService := service.NewCommentService(commentRepo, imageRepo)
	searchService := service.NewSearchService(imageRepo, ratingRepo)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	imageHandler := handler.NewImageHandler(imageService)
	tagHandler := handler.NewTagHandler(tagService)
	ratingHandler := handler.NewRatingHandler(ratingService)
	commentHandler := handler.NewCommentHandler(commentService)
	searchHandler := handler.NewSearchHandler(searchService)

	router.Register(
		e,
		tokens,
		userRepo,
		cacheClient,
		authHandler,
		userHandler,
		imageHandler,
		tagHandler,
		ratingHandler,
		commentHandler,
		searchHandler,
	)

	if cfg.SwaggerHost != "" {
		log.Printf("Swagger documentation available at: http://%s/swagger/index.html", cfg.SwaggerHost)
	} else {
		log.Printf("Swagger documentation available at: http://localhost:%s/swagger/index.html", cfg.ServerPort)
	}

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
