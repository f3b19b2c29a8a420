package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/canehaul/internal/server/handlers"
)

// RecordRoutes is the REST surface of one record collection.
type RecordRoutes interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

// Handlers groups every handler the router mounts. Nil handlers are skipped.
type Handlers struct {
	Webhook   *handlers.WebhookHandler
	Summaries *handlers.SummaryHandler
	Reports   *handlers.ReportsHandler
	// Records maps a collection path such as "employees" to its handler.
	Records map[string]RecordRoutes
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if h.Webhook != nil {
		r.GET("/webhook", h.Webhook.Verify)
		r.POST("/webhook", h.Webhook.Receive)
		r.POST("/send-message", h.Webhook.SendMessage)
	}

	api := r.Group("/api")
	for name, records := range h.Records {
		g := api.Group("/" + name)
		g.GET("", records.List)
		g.POST("", records.Create)
		g.GET("/:id", records.Get)
		g.PUT("/:id", records.Update)
		g.DELETE("/:id", records.Delete)
	}

	if s := h.Summaries; s != nil {
		api.GET("/summaries/employees", s.Employees)
		api.GET("/summaries/groups", s.Groups)
		api.GET("/summaries/lands", s.Lands)
		api.GET("/summaries/routes/:dimension", s.Routes)
		api.GET("/travels-report", s.TravelsReport)
		api.GET("/employees/:id/travels", s.EmployeeTravels)
		api.GET("/employees/:id/debts", s.EmployeeDebts)
		api.GET("/export.xlsx", s.ExportExcel)
	}

	if h.Reports != nil {
		api.GET("/reports", h.Reports.Latest)
	}

	logger.Info("router initialized", zap.Int("record_collections", len(h.Records)))
	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
