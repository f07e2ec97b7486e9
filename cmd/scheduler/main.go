package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/theyeesha/physioreact/internal/handlers"
	"github.com/theyeesha/physioreact/internal/middlewares"
	"github.com/theyeesha/physioreact/internal/repository"
	"github.com/theyeesha/physioreact/internal/service"
	"github.com/theyeesha/physioreact/pkg/config"
	"github.com/theyeesha/physioreact/pkg/db"
	"github.com/theyeesha/physioreact/pkg/mq"
	"github.com/theyeesha/physioreact/pkg/obs"
)

func must[T any](v T, err error) T {
	if err != nil {
		log.Fatal(err)
	}
	return v
}

func main() {
	_ = godotenv.Load()
	cfg := must(config.Load())

	shutdown := obs.InitTracer("scheduler")
	defer func() { _ = shutdown(context.Background()) }()

	logger := must(zap.NewProduction())
	defer func() { _ = logger.Sync() }()

	gdb := db.Open(cfg.PGDSN)
	userRepo := repository.NewUserRepo(gdb)
	shiftRepo := repository.NewShiftRepo(gdb)
	swapRepo := repository.NewSwapRepo(gdb)
	notifRepo := repository.NewNotificationRepo(gdb)
	must(0, userRepo.Migrate())
	must(0, shiftRepo.Migrate())
	must(0, swapRepo.Migrate())
	must(0, notifRepo.Migrate())

	pub := must(mq.NewPublisher(cfg.RabbitURL, cfg.SchedExchange))
	defer pub.Close()

	authSvc := service.NewAuthSvc(userRepo,
		time.Duration(cfg.JWTExpireMin)*time.Minute,
		time.Duration(cfg.RefreshExpireHr)*time.Hour)
	userSvc := service.NewUserSvc(userRepo)
	shiftSvc := service.NewShiftSvc(shiftRepo, pub)
	swapSvc := service.NewSwapSvc(swapRepo, shiftRepo, pub, logger)
	notifSvc := service.NewNotificationSvc(notifRepo)

	r := gin.Default()

	ah := handlers.NewAuthHandler(authSvc)
	uh := handlers.NewUserHandler(userSvc, authSvc)
	sh := handlers.NewShiftHandler(shiftSvc)
	wh := handlers.NewSwapHandler(swapSvc)
	nh := handlers.NewNotificationHandler(notifSvc)

	v1 := r.Group("/v1")
	{
		v1.POST("/auth/register", ah.Register)
		v1.POST("/auth/login", ah.Login)

		secured := v1.Group("")
		secured.Use(middlewares.JWTAuth())
		{
			secured.GET("/users/me", uh.GetMe)
			secured.GET("/users/colleagues", uh.Colleagues)
			secured.GET("/users/:id", uh.GetByID)
			secured.PUT("/users/:id", uh.Update)

			admin := secured.Group("")
			admin.Use(middlewares.RequireRole("ADMIN"))
			{
				admin.GET("/users", uh.List)
				admin.POST("/users", uh.Create)
				admin.DELETE("/users/:id", uh.Delete)
				admin.POST("/shifts", sh.Create)
				admin.PUT("/shifts/:id", sh.Update)
				admin.DELETE("/shifts/:id", sh.Delete)
			}

			secured.GET("/shifts", sh.List)
			secured.GET("/shifts/user/:id", sh.ListForUser)

			secured.GET("/swap-requests", wh.List)
			secured.POST("/swap-requests", wh.Create)
			secured.PUT("/swap-requests/:id/decision",
				middlewares.RequireRole("ADMIN"), wh.Decide)

			secured.GET("/notifications", nh.List)
			secured.PUT("/notifications/read-all", nh.MarkAllRead)
			secured.PUT("/notifications/:id/read", nh.MarkRead)
		}
	}

	log.Println("scheduler on", cfg.HTTPAddr)
	log.Fatal(r.Run(cfg.HTTPAddr))
}
