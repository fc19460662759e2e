package httpapi

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/solhub/admin-api/internal/auth"
	"github.com/solhub/admin-api/internal/model"
	"github.com/solhub/admin-api/internal/realtime"
	"github.com/solhub/admin-api/internal/service"
)

// Deps carries the constructed services into the router; nothing here is a
// package-level singleton.
type Deps struct {
	Laboratories *service.LaboratoryService
	Features     *service.FeatureService
	Modules      *service.ModuleService
	Codes        *service.AccessCodeService
	Profiles     *service.ProfileService
	Auth         *service.AuthService
	Tokens       *auth.JWTService
	Watcher      *realtime.Watcher
}

// NewRouter builds the console API. Everything under /api/v1 except the
// auth endpoints requires a dashboard admin access token.
func NewRouter(deps Deps) *gin.Engine {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("labslug", func(fl validator.FieldLevel) bool {
			return model.ValidSlug(fl.Field().String())
		})
	}

	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger())

	authHandler := NewAuthHandler(deps.Auth)
	labHandler := NewLaboratoryHandler(deps.Laboratories, deps.Watcher)
	featureHandler := NewFeatureHandler(deps.Features)
	moduleHandler := NewModuleHandler(deps.Modules)
	codeHandler := NewCodeHandler(deps.Codes)
	profileHandler := NewProfileHandler(deps.Profiles)

	v1 := r.Group("/api/v1")
	v1.POST("/auth/login", authHandler.Login)
	v1.POST("/auth/refresh", authHandler.Refresh)

	admin := v1.Group("", RequireAdmin(deps.Tokens))
	{
		admin.GET("/laboratories", labHandler.List)
		admin.GET("/laboratories/live", labHandler.Live)
		admin.POST("/laboratories", labHandler.Create)
		admin.GET("/laboratories/:id", labHandler.Get)
		admin.PUT("/laboratories/:id", labHandler.Update)
		admin.DELETE("/laboratories/:id", labHandler.Delete)
		admin.GET("/laboratories/:id/features", labHandler.Features)
		admin.PUT("/laboratories/:id/features/:key", labHandler.ToggleFeature)
		admin.GET("/laboratories/:id/modules", labHandler.Modules)
		admin.PUT("/laboratories/:id/modules/:name", labHandler.UpdateModuleConfig)
		admin.GET("/laboratories/:id/codes", codeHandler.List)
		admin.POST("/laboratories/:id/codes", codeHandler.Create)

		admin.GET("/features", featureHandler.List)
		admin.POST("/features", featureHandler.Create)
		admin.DELETE("/features/:key", featureHandler.Delete)

		admin.GET("/modules", moduleHandler.List)
		admin.POST("/modules", moduleHandler.Create)
		admin.DELETE("/modules/:name", moduleHandler.Delete)

		admin.PUT("/codes/:id/active", codeHandler.SetActive)
		admin.DELETE("/codes/:id", codeHandler.Delete)

		admin.GET("/profiles", profileHandler.List)
	}

	return r
}
