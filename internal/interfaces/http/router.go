package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/logbook-api/pkg/config"
	"github.com/jhoicas/logbook-api/pkg/jwt"
	"github.com/jhoicas/logbook-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	LogBook   LogBookStore
	Verifier  LogBookVerifier
	Receipts  ReceiptDownloader
	Inventory InventoryCatalog
	JWTSecret string
	// Redis puede ser nil: el limitador queda deshabilitado.
	Redis     redis.Scripter
	RateLimit config.RateLimitConfig
	Log       *logger.Logger
}

// Router registra las rutas de la API. Todo /api requiere Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api",
		AuthMiddleware(deps.JWTSecret),
		RateLimitMiddleware(deps.RateLimit, deps.Redis, deps.Log),
	)

	// Bitácora
	lb := api.Group("/logbook")
	logBookHandler := NewLogBookHandler(deps.LogBook, deps.Verifier, deps.Receipts, deps.Log)
	lb.Get("/", logBookHandler.List)
	lb.Post("/", logBookHandler.Create)
	lb.Patch("/", logBookHandler.Patch)
	lb.Delete("/", RequireRole(jwt.RoleAdmin), logBookHandler.Delete)
	lb.Get("/:id", logBookHandler.GetByID)
	lb.Put("/:id", RequireRole(jwt.RoleAdmin, jwt.RoleStaff), logBookHandler.Verify)
	lb.Get("/:id/receipt", logBookHandler.Receipt)

	// Catálogo de inventario
	inv := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Inventory, deps.Log)
	inv.Get("/", inventoryHandler.List)
	inv.Post("/", RequireRole(jwt.RoleAdmin), inventoryHandler.Create)
	inv.Get("/:id", inventoryHandler.GetByID)
}
