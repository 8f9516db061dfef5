package handlers

import (
	"net/http"
	"time"

	_ "homepanel/docs"
	"homepanel/internal/config"
	"homepanel/internal/logger"
	"homepanel/internal/metrics"
	"homepanel/internal/service"
	"homepanel/web"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Options carries the request-facing settings the handlers need.
type Options struct {
	AuthMode     string
	SecureCookie bool
	AppName      string
	AppVersion   string
	Switches     []string // switch ids rendered on the dashboard
}

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	opts     Options
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, opts Options) *Handler {
	if opts.AuthMode == "" {
		opts.AuthMode = config.AuthModeBasic
	}
	if opts.AppName == "" {
		opts.AppName = config.DefaultAppName
	}
	if opts.AppVersion == "" {
		opts.AppVersion = config.DefaultAppVersion
	}
	return &Handler{services: services, log: log, opts: opts}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.observe)

	tmpl, err := web.Templates()
	if err != nil {
		panic(err) // embedded templates are fixed at build time
	}
	router.SetHTMLTemplate(tmpl)

	// Public endpoints
	router.GET("/health", h.health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	h.registerStaticRoutes(router)

	// Auth endpoints
	h.registerAuthRoutes(router)

	// Everything else sits behind the auth gate
	h.registerPanelRoutes(router)

	return router
}

func (h *Handler) registerStaticRoutes(r *gin.Engine) {
	assets := http.FS(web.Static())
	r.StaticFileFS("/manifest.json", "manifest.json", assets)
	r.StaticFileFS("/logo.svg", "logo.svg", assets)
	r.StaticFileFS("/climate.html", "climate.html", assets)
	r.StaticFS("/static", assets)
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	r.GET("/login", h.loginPage)
	r.POST("/login", h.login)
	r.GET("/logout", h.logout)

	auth := r.Group("/auth")
	{
		auth.POST("/token", h.issueToken)
	}
}

func (h *Handler) registerPanelRoutes(r *gin.Engine) {
	panel := r.Group("/", h.authRequired)
	{
		panel.GET("/", h.dashboard)

		panel.POST("/send-wol/", h.sendWake)
		panel.POST("/wake", h.wake)
		panel.POST("/switch/:device/:state", h.setSwitch)
		panel.POST("/climate", h.setClimate)

		panel.GET("/climate/status", h.climateStatus)
		panel.GET("/check-emby", h.checkEmby)
		panel.GET("/uptime", h.uptime)
		panel.GET("/logs/", h.getLogs)

		// WebSocket status stream (HTTP upgrade), same port
		panel.GET("/ws/status", h.wsStatus)
	}
}

// observe records request metrics under the matched route pattern.
func (h *Handler) observe(c *gin.Context) {
	start := time.Now()
	c.Next()
	elapsed := time.Since(start)
	metrics.ObserveHTTP(c.Request.Method, c.FullPath(), c.Writer.Status(), elapsed)
	if h.log != nil {
		h.log.Debugw("http_request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"elapsed", elapsed,
		)
	}
}

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}
