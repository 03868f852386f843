package app

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/nodeverse/nodeverse-api/cache"
	"github.com/nodeverse/nodeverse-api/config"
	"github.com/nodeverse/nodeverse-api/database"
	"github.com/nodeverse/nodeverse-api/handlers"
	"github.com/nodeverse/nodeverse-api/notify"
	"github.com/nodeverse/nodeverse-api/router"
	"github.com/nodeverse/nodeverse-api/services"
	"github.com/nodeverse/nodeverse-api/store"
)

// SetupAndRunApp handle app and database start and graceful shutdown
func SetupAndRunApp(port string) error {
	l := logrus.New()

	if err := config.LoadENV(); err != nil {
		l.Warnf("no .env file loaded: %v", err)
	}

	// start database
	err := database.StartMongoDB()
	if err != nil {
		return err
	}

	// defer closing database
	defer database.CloseMongoDB()

	// optional redis cache; nil disables it
	userCache, err := cache.New(config.GetEnv("REDIS_URL"))
	if err != nil {
		return err
	}

	todoStore := store.NewMongo(database.GetCollection(collectionName("TODO_COLLECTION", "todos")))
	userStore := store.NewMongo(database.GetCollection(collectionName("USER_COLLECTION", "users")))

	h := handlers.NewHandler(
		services.NewTodoService(todoStore),
		services.NewUserService(userStore, userCache),
		l,
		notify.New(config.GetEnv("SLACK_WEBHOOK_URL"), l),
	)

	// create app
	app := fiber.New()

	// attach middleware
	FiberMiddleware(app)

	// attach swagger
	config.AddSwaggerRoutes(app)

	// setup routes; registers the 404 fallback, so it goes last
	router.SetupRoutes(app, h)

	StartServerWithGracefulShutdown(app, port)

	return nil
}

func collectionName(key, fallback string) string {
	if name := config.GetEnv(key); name != "" {
		return name
	}
	return fallback
}
