package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/pizzeria-api/internal/application/cart"
	"github.com/jhoicas/pizzeria-api/internal/application/catalog"
	"github.com/jhoicas/pizzeria-api/internal/application/inventory"
	"github.com/jhoicas/pizzeria-api/internal/application/order"
	"github.com/jhoicas/pizzeria-api/internal/application/promotion"
	infrapdf "github.com/jhoicas/pizzeria-api/internal/infrastructure/pdf"
	"github.com/jhoicas/pizzeria-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/pizzeria-api/internal/interfaces/http"
	"github.com/jhoicas/pizzeria-api/pkg/config"
	"github.com/jhoicas/pizzeria-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	catalogRepo := postgres.NewCatalogRepository(pool)
	cartRepo := postgres.NewCartRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	stockRepo := postgres.NewStockItemRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	alertRepo := postgres.NewStockAlertRepository(pool)
	promotionRepo := postgres.NewPromotionRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	catalogUC := catalog.NewUseCase(productRepo, catalogRepo)
	cartUC := cart.NewUseCase(cartRepo, productRepo, catalogRepo)
	stockUC := inventory.NewStockUseCase(txRunner, productRepo, stockRepo, movementRepo, alertRepo)
	promotionUC := promotion.NewUseCase(promotionRepo)

	receiptGen := infrapdf.NewOrderReceiptGenerator(cfg.App.Name, cfg.Store.Currency)
	checkoutUC := order.NewCheckoutUseCase(
		txRunner, stockUC, promotionUC, receiptGen,
		cartRepo, productRepo, orderRepo,
		order.Config{
			OrderPrefix:        cfg.Store.OrderPrefix,
			DefaultDeliveryFee: cfg.Store.DeliveryFee,
		},
		log,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Pizzería API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CatalogUC:  catalogUC,
		CartUC:     cartUC,
		CheckoutUC: checkoutUC,
		StockUC:    stockUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
