package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/rostech/erp-backend/cmd/docs"
	"github.com/rostech/erp-backend/internal/core/domain"
	portssvc "github.com/rostech/erp-backend/internal/core/ports/services"
	"github.com/rostech/erp-backend/internal/middleware"
	"github.com/rostech/erp-backend/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// through the service container.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	registerAuthRoutes(r, cfg, services)

	setupAPIV1Routes(r, cfg, services)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to the entity
// route registrations. Role gates follow the navigation matrix: cashiers
// handle sales and collections, accountants handle money and reports, and
// admins see everything.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	// All roles: customer registry and installment views/collection.
	RegisterCustomerRoutes(v1, services.Customer)
	registerInstallmentRoutes(v1, services.Installment)

	// Sales floor.
	salesGroup := v1.Group("", middleware.RequireRoles(domain.RoleAdmin, domain.RoleCashier))
	registerSaleRoutes(salesGroup, services.Sale)

	// Back office.
	accountingGroup := v1.Group("", middleware.RequireRoles(domain.RoleAdmin, domain.RoleAccountant))
	registerProductRoutes(accountingGroup, services.Product)
	registerSafeRoutes(accountingGroup, services.Safe)
	registerReportRoutes(accountingGroup, services.Reporting)

	// Owner-level operations.
	adminGroup := v1.Group("", middleware.RequireRoles(domain.RoleAdmin))
	registerPartnerRoutes(adminGroup, services.Partner)
	registerUserRoutes(adminGroup, services.User)
}

// setupSwaggerRoutes configures the swagger documentation routes.
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		// no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
