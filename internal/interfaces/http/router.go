package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/crm-api/internal/application/crm"
	"github.com/jhoicas/crm-api/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CustomerUC    *crm.CustomerUseCase
	InteractionUC *crm.InteractionUseCase
	PurchaseUC    *crm.PurchaseUseCase
	ExportUC      *crm.ExportUseCase
	Store         Pinger // backend para /health
	StoreDriver   string
	ServiceName   string
	JWTSecret     string // vacío = API sin autenticación
	JWTIssuer     string
	Logger        zerolog.Logger
}

// Router registra middlewares y rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(requestid.New())
	app.Use(RequestLogger(deps.Logger))
	app.Use(recover.New())

	app.Get("/health", NewHealthHandler(deps.Store, deps.StoreDriver, deps.ServiceName).Check)

	api := app.Group("/api")

	// Con JWT_SECRET toda la API exige Bearer Token y borrar requiere rol admin.
	var deleteGuard []fiber.Handler
	if deps.JWTSecret != "" {
		api = app.Group("/api", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))
		deleteGuard = append(deleteGuard, RequireRole(jwt.RoleAdmin))
	}
	withGuard := func(h fiber.Handler) []fiber.Handler {
		return append(append([]fiber.Handler{}, deleteGuard...), h)
	}

	customerHandler := NewCustomerHandler(deps.CustomerUC)
	interactionHandler := NewInteractionHandler(deps.InteractionUC)
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC)
	exportHandler := NewExportHandler(deps.ExportUC)

	// Customers (search antes de /:id)
	customers := api.Group("/customers")
	customers.Get("/", customerHandler.List)
	customers.Post("/", customerHandler.Create)
	customers.Get("/search", customerHandler.Search)
	customers.Get("/:id", customerHandler.Get)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", withGuard(customerHandler.Delete)...)
	customers.Post("/:id/interactions", interactionHandler.Add)
	customers.Get("/:id/interactions", interactionHandler.ListForCustomer)
	customers.Post("/:id/purchases", purchaseHandler.Add)
	customers.Get("/:id/purchases", purchaseHandler.ListForCustomer)
	customers.Get("/:id/statement.pdf", exportHandler.Statement)
	customers.Get("/:id/export.xml", exportHandler.XML)

	// Interactions
	interactions := api.Group("/interactions")
	interactions.Get("/", interactionHandler.FilterByStatus)
	interactions.Get("/:id", interactionHandler.Get)
	interactions.Put("/:id", interactionHandler.Update)
	interactions.Delete("/:id", withGuard(interactionHandler.Delete)...)

	// Purchases
	purchases := api.Group("/purchases")
	purchases.Get("/", purchaseHandler.FilterByDate)
	purchases.Get("/:id", purchaseHandler.Get)
	purchases.Put("/:id", purchaseHandler.Update)
	purchases.Delete("/:id", withGuard(purchaseHandler.Delete)...)
}
