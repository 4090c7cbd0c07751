package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"patient-intake-server/internal/config"
	"patient-intake-server/internal/handlers"
	"patient-intake-server/internal/middleware"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config, log zerolog.Logger) {
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(cors.New(corsConfig(cfg)))

	// Any other method on a known path gets a JSON 405.
	router.HandleMethodNotAllowed = true
	router.NoMethod(handlers.MethodNotAllowed)

	patientHandler := handlers.NewPatientHandler(db, log)

	// The intake path answers POST and pre-flight requests only.
	router.POST(cfg.IntakePath, patientHandler.AddPatient)
	router.OPTIONS(cfg.IntakePath, patientHandler.Preflight)

	patients := router.Group("/api/patients")
	{
		patients.GET("", patientHandler.GetPatients)
		patients.GET("/:id", patientHandler.GetPatientByID)
	}

	router.GET("/health", handlers.Health(db))
}

// corsConfig allows the admission client to post from any origin unless
// ORIGIN pins one.
func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.DefaultConfig()
	if cfg.Origin == "" || cfg.Origin == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = []string{cfg.Origin}
	}
	corsCfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	corsCfg.AllowHeaders = []string{"Content-Type", middleware.RequestIDHeader}
	corsCfg.ExposeHeaders = []string{middleware.RequestIDHeader}
	return corsCfg
}
