package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"store-pos/internal/cfg"
	"store-pos/internal/handler"
	"store-pos/internal/middleware"
	"store-pos/internal/model"
	"store-pos/internal/repository"
	"store-pos/internal/seed"
	"store-pos/internal/service"
	"store-pos/internal/ws"
	"store-pos/pkg/database"
	"store-pos/pkg/jwt"
	"store-pos/pkg/logger"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config, err := cfg.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	appLog := logger.NewSlogLogger().With("app", config.App.Name)

	// 2. Setup Database
	db, err := database.Connect(config.Db.Database())
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := model.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. Setup WebSocket Hub
	hub := ws.NewHub(appLog.With("component", "ws"))
	go hub.Run(ctx)

	// 4. Dependency Injection
	productRepo := repository.NewProductRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	supplierRepo := repository.NewSupplierRepo(db)
	clientRepo := repository.NewClientRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	userRepo := repository.NewUserRepo(db)

	tokens := jwt.NewManager(config.Session.Secret, config.Session.TTL)
	loc := config.App.Location

	authService := service.NewAuthService(userRepo, tokens, nil)
	userService := service.NewUserService(userRepo, clientRepo, db, nil)
	productService := service.NewProductService(productRepo, categoryRepo, hub)
	categoryService := service.NewCategoryService(categoryRepo, productRepo, db, hub)
	saleService := service.NewSaleService(saleRepo, productRepo, clientRepo, db, hub, appLog.With("component", "sales"), nil)

	if err := seed.New(userRepo, userService, appLog).EnsureSuperuser(config.Admin.Username, config.Admin.Password); err != nil {
		appLog.Errorf(err, "seed superuser")
	}

	// login throttling is optional; a nil Counter disables it
	var counter middleware.Counter
	if config.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     config.Redis.Addr,
			Password: config.Redis.Password,
			DB:       config.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			appLog.Warnf("redis %s unreachable, login throttling disabled: %s", config.Redis.Addr, err.Error())
		} else {
			counter = rdb
			defer rdb.Close()
		}
	}

	h := handler.Handlers{
		Auth:      handler.NewAuthHandler(authService, config.Session.CookieName, appLog),
		Dashboard: handler.NewDashboardHandler(service.NewDashboardService(productRepo, categoryRepo, supplierRepo, clientRepo, saleRepo, loc, nil), appLog),
		Product:   handler.NewProductHandler(productService, categoryService, appLog),
		Category:  handler.NewCategoryHandler(categoryService, appLog),
		Supplier:  handler.NewSupplierHandler(service.NewSupplierService(supplierRepo), appLog),
		Client:    handler.NewClientHandler(service.NewClientService(clientRepo), appLog),
		Sale:      handler.NewSaleHandler(saleService, appLog),
		Report:    handler.NewReportHandler(service.NewReportService(saleRepo, loc, nil), appLog),
		Portal:    handler.NewPortalHandler(service.NewPortalService(clientRepo, saleRepo), appLog),
		Role:      handler.NewRoleHandler(),
		User:      handler.NewUserHandler(userService, appLog),
	}

	// 5. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: config.App.Name,
	})

	app.Use(fiberlogger.New())
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: config.App.CORSOrigins,
	}))

	handler.RegisterRoutes(app, h,
		middleware.LoadSession(authService, config.Session.CookieName, appLog),
		middleware.LoginRateLimiter(counter, config.Redis.LoginLimit, config.Redis.LoginWindow, appLog),
		hub,
	)

	// 6. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + config.App.Port); err != nil {
			appLog.Errorf(err, "listen")
			stop()
		}
	}()

	<-ctx.Done()

	appLog.Infof("shutting down server")
	if err := app.ShutdownWithTimeout(config.App.ShutdownTimeout); err != nil {
		appLog.Errorf(err, "server forced to shutdown")
		os.Exit(1)
	}
	appLog.Infof("server exited")
}
