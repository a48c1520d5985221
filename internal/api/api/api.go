package api

import (
	"github.com/gin-contrib/cors"
	"github.com/wb-go/wbf/ginext"

	"github.com/Rajesh001100/cultural/cmd/middleware"
	"github.com/Rajesh001100/cultural/internal/service"
)

type Routers struct {
	Service   service.Service
	JWTSecret string
}

func NewRouters(r *Routers) *ginext.Engine {
	app := ginext.New("release")

	app.Use(middleware.LoggingMiddleware())
	app.Use(cors.Default())
	apiGroup := app.Group("/v1")

	apiGroup.GET("/events", r.Service.GetAllEvents)
	apiGroup.POST("/register", r.Service.Register)
	apiGroup.POST("/create-order", r.Service.CreateOrder)
	apiGroup.POST("/verify-payment", r.Service.VerifyPayment)
	apiGroup.POST("/contact", r.Service.Contact)
	apiGroup.GET("/config", r.Service.GetConfig)

	adminGroup := apiGroup.Group("/admin")
	adminGroup.POST("/login", r.Service.AdminLogin)

	protected := adminGroup.Group("")
	protected.Use(middleware.AdminAuth(r.JWTSecret))
	protected.GET("/registrations", r.Service.GetAllRegistrations)
	protected.POST("/events", r.Service.CreateEvent)
	protected.PUT("/events/:id", r.Service.UpdateEvent)
	protected.DELETE("/events/:id", r.Service.DeleteEvent)

	app.Static("/public", "./public")
	app.GET("/", func(c *ginext.Context) {
		c.File("./public/index.html")
	})

	return app
}
