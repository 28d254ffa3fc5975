package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	employeehandler "employee_backend/internal/feature/employee/transport/handler"
	"employee_backend/internal/platform/http/handler"
	"employee_backend/internal/platform/http/middleware"
	"employee_backend/internal/platform/http/validation"
	"employee_backend/internal/platform/metrics"
)

// Deps groups everything the router needs.
type Deps struct {
	Logger    zerolog.Logger
	Metrics   *metrics.Metrics
	Gatherer  prometheus.Gatherer
	Employees *employeehandler.EmployeeHandler
	Readiness *handler.ReadinessHandler
}

func NewRouter(d Deps) (*gin.Engine, error) {
	if err := validation.Register(); err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery(), cors.Default(), middleware.RequestID(), middleware.AccessLog(d.Logger), middleware.Metrics(d.Metrics))

	// 導通確認用
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)
	r.OPTIONS("/healthz", handler.Health)
	// DB疎通確認
	if d.Readiness != nil {
		r.GET("/readyz", d.Readiness.Ready)
	}
	if d.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}

	employees := r.Group("/api/employees")
	{
		employees.POST("", d.Employees.Create)
		employees.GET("", d.Employees.List)
		employees.GET("/:id", d.Employees.Get)
		employees.PUT("/:id", d.Employees.Update)
		employees.DELETE("/:id", d.Employees.Delete)
	}

	return r, nil
}
