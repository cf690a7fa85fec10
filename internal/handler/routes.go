package handler

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"store-pos/internal/access"
	"store-pos/internal/reqctx"
	"store-pos/internal/ws"
)

// Handlers groups every HTTP handler of the service.
type Handlers struct {
	Auth      *AuthHandler
	Dashboard *DashboardHandler
	Product   *ProductHandler
	Category  *CategoryHandler
	Supplier  *SupplierHandler
	Client    *ClientHandler
	Sale      *SaleHandler
	Report    *ReportHandler
	Portal    *PortalHandler
	Role      *RoleHandler
	User      *UserHandler
}

// RegisterRoutes mounts all routes. session must attach a request context; loginLimiter guards POST /login.
func RegisterRoutes(app *fiber.App, h Handlers, session, loginLimiter fiber.Handler, hub *ws.Hub) {
	app.Use(session)

	app.Get("/", h.Auth.Home)
	app.Get("/login", h.Auth.LoginForm)
	app.Post("/login", loginLimiter, h.Auth.Login)
	app.Post("/logout", h.Auth.Logout)

	app.Get("/dashboard", h.Dashboard.GetDashboardStats)

	products := app.Group("/products")
	products.Get("/", h.Product.List)
	products.Get("/new", h.Product.NewForm)
	products.Post("/new", h.Product.Create)
	products.Get("/:id/edit", h.Product.EditForm)
	products.Post("/:id/edit", h.Product.Update)
	products.Get("/:id/delete", h.Product.ConfirmDelete)
	products.Post("/:id/delete", h.Product.Delete)

	categories := app.Group("/categories")
	categories.Get("/", h.Category.List)
	categories.Get("/new", h.Category.NewForm)
	categories.Post("/new", h.Category.Create)
	categories.Get("/:id/edit", h.Category.EditForm)
	categories.Post("/:id/edit", h.Category.Update)
	categories.Get("/:id/delete", h.Category.ConfirmDelete)
	categories.Post("/:id/delete", h.Category.Delete)

	suppliers := app.Group("/suppliers")
	suppliers.Get("/", h.Supplier.List)
	suppliers.Get("/new", h.Supplier.NewForm)
	suppliers.Post("/new", h.Supplier.Create)
	suppliers.Get("/:id/edit", h.Supplier.EditForm)
	suppliers.Post("/:id/edit", h.Supplier.Update)
	suppliers.Get("/:id/delete", h.Supplier.ConfirmDelete)
	suppliers.Post("/:id/delete", h.Supplier.Delete)

	clients := app.Group("/clients")
	clients.Get("/", h.Client.List)
	clients.Get("/new", h.Client.NewForm)
	clients.Post("/new", h.Client.Create)
	clients.Get("/:id/edit", h.Client.EditForm)
	clients.Post("/:id/edit", h.Client.Update)
	clients.Get("/:id/delete", h.Client.ConfirmDelete)
	clients.Post("/:id/delete", h.Client.Delete)

	app.Get("/sales/new", h.Sale.NewForm)
	app.Post("/sales/new", h.Sale.Create)

	app.Get("/reports/sales", h.Report.SalesReport)
	app.Get("/reports/sales/export", h.Report.Export)

	app.Get("/portal", h.Portal.Dashboard)
	app.Get("/portal/sales/:id", h.Portal.SaleDetail)

	app.Get("/roles", h.Role.GetRoles)

	app.Get("/users", h.User.GetUsers)
	app.Post("/users", h.User.CreateUser)
	app.Post("/users/:id/profile", h.User.UpdateProfile)

	if hub != nil {
		app.Use("/ws", StockFeedGuard)
		app.Get("/ws", websocket.New(hub.Serve))
	}
}

// StockFeedGuard admits staff websocket upgrades only.
func StockFeedGuard(c *fiber.Ctx) error {
	rc := reqctx.From(c)
	if d := rc.Authorize(access.OpStockFeed); !d.Allowed() {
		return deny(c, rc, d)
	}
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return c.SendStatus(fiber.StatusUpgradeRequired)
}
