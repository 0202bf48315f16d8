package router

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	redisstorage "github.com/gofiber/storage/redis"

	"github.com/StefanHaring/InkPress/app/controllers"
	"github.com/StefanHaring/InkPress/app/repository"
	"github.com/StefanHaring/InkPress/internal/pkg/assetstore"
	"github.com/StefanHaring/InkPress/internal/pkg/blog"
	"github.com/StefanHaring/InkPress/internal/pkg/env"
	"github.com/StefanHaring/InkPress/internal/pkg/middleware"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	// Resolve the caller identity before anything else
	app.Use(middleware.UserContextMiddleware())

	repos := repository.GetGlobalRepositories()
	service := blog.NewService(repos.BlogPost, repos.Category, newAssetStore())

	blogController := controllers.NewBlogController(service)
	userController := controllers.NewUserController(repos.User)

	api := app.Group("/api", limiter.New(limiterConfig()))

	// API v1 routes
	v1 := api.Group("/v1")
	v1.Get("/ping", handlePing)

	v1.Get("/blogs", blogController.HandleList)
	v1.Get("/blogs/:slug", blogController.HandleGet)
	v1.Post("/blogs", middleware.RequireAPIAuth, blogController.HandleCreate)
	v1.Put("/blogs/:slug", middleware.RequireAPIAuth, blogController.HandleUpdate)
	v1.Delete("/blogs/:slug", middleware.RequireAPIAuth, blogController.HandleDelete)

	v1.Get("/categories", blogController.HandleListCategories)

	v1.Post("/users/sync", userController.HandleSync)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}

func handlePing(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"ping": "pong",
	})
}

// newAssetStore builds the S3 adapter when configured. Without it the
// service still runs; image uploads degrade to "post saved without image".
func newAssetStore() blog.AssetStore {
	cfg, err := assetstore.LoadConfig()
	if err != nil {
		log.Warnf("[AssetStore] invalid configuration: %v", err)
		return nil
	}
	if !cfg.IsEnabled() {
		log.Info("[AssetStore] disabled, image uploads will be skipped")
		return nil
	}
	client, err := assetstore.NewClient(cfg)
	if err != nil {
		log.Warnf("[AssetStore] initialization failed: %v", err)
		return nil
	}
	return client
}

// limiterConfig backs the API rate limiter with Redis when a cache host is
// configured so limits hold across instances; otherwise it stays in-memory.
func limiterConfig() limiter.Config {
	cfg := limiter.Config{
		Max:        120,
		Expiration: time.Minute,
	}
	if host := env.GetEnv("CACHE_HOST", ""); host != "" {
		port, err := strconv.Atoi(env.GetEnv("CACHE_PORT", "6379"))
		if err != nil {
			port = 6379
		}
		cfg.Storage = redisstorage.New(redisstorage.Config{
			Host: host,
			Port: port,
		})
	}
	return cfg
}
