package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"stayhub/internal/infra/config"
	"stayhub/internal/infra/obs"
)

type ReservationHTTP interface {
	Create(c *gin.Context)
	Transition(c *gin.Context)
	ListMine(c *gin.Context)
}

type AvailabilityHTTP interface {
	Check(c *gin.Context)
	Calendar(c *gin.Context)
	Slots(c *gin.Context)
	BookSlot(c *gin.Context)
	Summary(c *gin.Context)
	Block(c *gin.Context)
	Unblock(c *gin.Context)
}

type Handlers struct {
	Reservation  ReservationHTTP
	Availability AvailabilityHTTP
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", "Idempotency-Key"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}))

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.Reservation != nil {
		api.POST("/reservations", h.Reservation.Create)
		api.POST("/reservations/:id/transition", h.Reservation.Transition)
		api.GET("/me/reservations", h.Reservation.ListMine)
	}
	if h.Availability != nil {
		resources := api.Group("/resources/:id")
		resources.GET("/availability", h.Availability.Check)
		resources.GET("/calendar", h.Availability.Calendar)
		resources.GET("/slots", h.Availability.Slots)
		resources.POST("/slots/book", h.Availability.BookSlot)
		resources.GET("/summary", h.Availability.Summary)
		resources.POST("/blocks", h.Availability.Block)
		resources.DELETE("/blocks/:blockId", h.Availability.Unblock)
	}

	return &http.Server{Addr: cfg.HTTPAddr, Handler: router}
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
