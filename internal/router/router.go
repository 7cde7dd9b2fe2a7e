package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"internhub/internal/auth"
	"internhub/internal/config"
	"internhub/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	internshipHandler *handler.InternshipHandler,
	applicationHandler *handler.ApplicationHandler,
	reportHandler *handler.ReportHandler,
	evaluationHandler *handler.EvaluationHandler,
	dashboardHandler *handler.DashboardHandler,
	templateHandler *handler.TemplateHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	// Public catalog and application intake
	api.GET("/internships", internshipHandler.ListOpen)
	api.GET("/internships/featured", internshipHandler.ListFeatured)
	api.GET("/internships/:id", internshipHandler.Get)
	api.GET("/skills", internshipHandler.ListSkills)
	api.POST("/applications", applicationHandler.Submit)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}))

	secured.GET("/me", userHandler.Me)
	secured.GET("/reports/:id", reportHandler.Get)
	secured.GET("/evaluations/:id", evaluationHandler.Get)
	secured.GET("/report-templates", templateHandler.ListActive)
	secured.GET("/report-templates/:id", templateHandler.Get)

	// Admin routes
	admin := secured.Group("/admin")
	admin.GET("/dashboard", dashboardHandler.Admin)
	admin.GET("/users", userHandler.List)
	admin.GET("/users/:id", userHandler.Get)
	admin.POST("/users/:id/approve", userHandler.Approve)
	admin.POST("/users/:id/deactivate", userHandler.Deactivate)
	admin.GET("/internships", internshipHandler.ListAll)
	admin.POST("/internships", internshipHandler.Create)
	admin.PUT("/internships/:id", internshipHandler.Update)
	admin.DELETE("/internships/:id", internshipHandler.Delete)
	admin.POST("/skills", internshipHandler.CreateSkill)
	admin.PUT("/internships/:id/skills", internshipHandler.SetSkillRequirements)
	admin.GET("/report-templates", templateHandler.ListAll)
	admin.POST("/report-templates", templateHandler.Create)
	admin.PUT("/report-templates/:id", templateHandler.Update)
	admin.GET("/applications", applicationHandler.List)
	admin.GET("/applications/:id", applicationHandler.Get)
	admin.POST("/applications/:id/approve", applicationHandler.Approve)
	admin.POST("/applications/:id/reject", applicationHandler.Reject)
	admin.POST("/applications/:id/create-intern", applicationHandler.CreateInternAccount)

	// Supervisor routes
	supervisor := secured.Group("/supervisor")
	supervisor.GET("/dashboard", dashboardHandler.Supervisor)
	supervisor.PUT("/profile", userHandler.UpdateSupervisorProfile)
	supervisor.GET("/internships", internshipHandler.ListAssigned)
	supervisor.GET("/reports", reportHandler.ListForSupervisor)
	supervisor.POST("/reports/:id/start-review", reportHandler.StartReview)
	supervisor.POST("/reports/:id/complete-review", reportHandler.CompleteReview)
	supervisor.POST("/reports/:id/request-revision", reportHandler.RequestRevision)
	supervisor.GET("/evaluations", evaluationHandler.ListAuthored)
	supervisor.POST("/evaluations", evaluationHandler.Create)
	supervisor.PUT("/evaluations/:id", evaluationHandler.Update)

	// Intern routes
	intern := secured.Group("/intern")
	intern.GET("/dashboard", dashboardHandler.Intern)
	intern.PUT("/profile", userHandler.UpdateInternProfile)
	intern.GET("/reports", reportHandler.ListMine)
	intern.POST("/reports", reportHandler.CreateDraft)
	intern.PUT("/reports/:id", reportHandler.UpdateDraft)
	intern.DELETE("/reports/:id", reportHandler.Delete)
	intern.POST("/reports/:id/submit", reportHandler.Submit)
	intern.GET("/evaluations", evaluationHandler.ListMine)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
