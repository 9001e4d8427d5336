package http

import (
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"liyu1981.xyz/maintenance-tracker/pkg/auth"
	"liyu1981.xyz/maintenance-tracker/pkg/limiter"
	"liyu1981.xyz/maintenance-tracker/pkg/tracker"
)

type RestfulServer struct {
	Server           *gin.Engine
	Tracker          *tracker.Tracker
	Sessions         *auth.SessionManager
	RateLimiterStore *limiter.Store
}

func (rs *RestfulServer) CheckUserLimiter(key string) bool {
	if rs.RateLimiterStore == nil {
		return true
	}
	return rs.RateLimiterStore.Allow(key)
}

// limiterKey identifies the caller: the signed-in user, or the client IP before login.
func limiterKey(c *gin.Context) string {
	if claims, ok := auth.CurrentUser(c); ok {
		return "user:" + strconv.FormatUint(uint64(claims.UserID), 10)
	}
	return "ip:" + c.ClientIP()
}

// RateLimited guards mutating endpoints with the per-user limiter.
func (rs *RestfulServer) RateLimited() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rs.CheckUserLimiter(limiterKey(c)) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"success": false, "error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}

func parseTemplates() (*template.Template, error) {
	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(assetsFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return tmpl, nil
}

func (rs *RestfulServer) Setup() error {
	tmpl, err := parseTemplates()
	if err != nil {
		return err
	}
	rs.Server.SetHTMLTemplate(tmpl)

	staticFS, err := fs.Sub(assetsFS, "static")
	if err != nil {
		return fmt.Errorf("static assets: %w", err)
	}
	rs.Server.StaticFS("/static", http.FS(staticFS))

	rs.Server.GET("/healthz", rs.HealthCheck)
	rs.Server.GET("/login", rs.LoginPage)
	rs.Server.POST("/login", rs.RateLimited(), rs.Login)
	rs.Server.GET("/register", rs.RegisterPage)
	rs.Server.POST("/register", rs.RateLimited(), rs.Register)

	app := rs.Server.Group("/", auth.RequireLogin(rs.Sessions))
	{
		app.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, "/dashboard") })
		app.POST("/logout", rs.Logout)

		app.GET("/dashboard", rs.Dashboard)
		app.GET("/maintenance_log", rs.MaintenanceLogPage)
		app.POST("/maintenance_log", rs.RateLimited(), rs.CreateMaintenanceLog)
		app.GET("/maintenance_logs", rs.MaintenanceLogList)
		app.GET("/work_order", rs.WorkOrderPage)
		app.POST("/work_order", rs.RateLimited(), rs.CreateWorkOrder)
		app.GET("/work_orders", rs.WorkOrderList)
		app.GET("/notifications", rs.NotificationList)
		app.POST("/notifications/:id/read", rs.RateLimited(), rs.AcknowledgeNotificationPage)
		app.GET("/company_setup", rs.CompanySetupPage)
		app.POST("/company_setup", rs.RateLimited(), rs.CompanySetup)

		app.POST("/update_work_order_status", rs.RateLimited(), rs.UpdateWorkOrderStatus)
	}

	api := app.Group("/api")
	{
		api.GET("/work_order_stats", rs.GetWorkOrderStats)
		api.GET("/work_order_completion_trend", rs.GetCompletionTrend)
		api.GET("/completion_rate", rs.GetCompletionRate)
		api.GET("/work_orders", rs.ListWorkOrders)
		api.POST("/work_orders", rs.RateLimited(), rs.PostWorkOrder)
		api.GET("/work_orders/:id", rs.GetWorkOrder)
		api.PATCH("/work_orders/:id", rs.RateLimited(), rs.PatchWorkOrder)
		api.GET("/notifications", rs.ListNotifications)
		api.POST("/notifications/:id/read", rs.RateLimited(), rs.AcknowledgeNotification)
	}

	export := app.Group("/export")
	{
		export.GET("/maintenance_logs.csv", rs.ExportLogsCSV)
		export.GET("/maintenance_logs.pdf", rs.ExportLogsPDF)
		export.GET("/work_orders.csv", rs.ExportWorkOrdersCSV)
		export.GET("/work_orders.pdf", rs.ExportWorkOrdersPDF)
	}

	return nil
}

func (rs *RestfulServer) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
