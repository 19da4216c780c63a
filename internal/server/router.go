package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/medianoche-studio/archivo-anomalo-backend/internal/handlers"
	"github.com/medianoche-studio/archivo-anomalo-backend/internal/middleware"
)

type RouterConfig struct {
	AuthMiddleware  *middleware.AuthMiddleware
	RecordHandler   *handlers.RecordHandler
	TransferHandler *handlers.TransferHandler
	MediaHandler    *handlers.MediaHandler
	SuggestHandler  *handlers.SuggestHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// Public
	router.GET("/healthcheck", handlers.HealthCheck)
	router.GET("/plantilla", cfg.TransferHandler.Template)

	// Protected
	api := router.Group("/api")
	api.Use(cfg.AuthMiddleware.RequireAuth())

	api.POST("/historias", cfg.RecordHandler.Create)
	api.GET("/historias", cfg.RecordHandler.List)
	api.GET("/historias/:id", cfg.RecordHandler.Get)
	api.DELETE("/historias/:id", cfg.RecordHandler.Delete)

	api.PUT("/historias/:id/historia", cfg.RecordHandler.UpdateStory)
	api.PUT("/historias/:id/ubicacion", cfg.RecordHandler.UpdateLocation)
	api.PUT("/historias/:id/testigos", cfg.RecordHandler.UpdateWitnesses)
	api.PUT("/historias/:id/entidades", cfg.RecordHandler.UpdateEntities)
	api.PUT("/historias/:id/contexto-ambiental", cfg.RecordHandler.UpdateEnvironment)
	api.PUT("/historias/:id/credibilidad", cfg.RecordHandler.UpdateCredibility)
	api.PUT("/historias/:id/proyeccion", cfg.RecordHandler.UpdateProjection)
	api.PUT("/historias/:id/derechos", cfg.RecordHandler.UpdateRights)
	api.PUT("/historias/:id/elementos-clave", cfg.RecordHandler.UpdateKeyElements)

	api.POST("/historias/:id/transicion", cfg.RecordHandler.Transition)
	api.POST("/historias/:id/reparar", cfg.RecordHandler.Repair)
	api.GET("/historias/:id/exportar", cfg.TransferHandler.Export)

	// Static siblings of /historias/:id would conflict in gin's route tree,
	// so the collection-level actions live at the API root.
	api.POST("/duplicados", cfg.RecordHandler.ScreenDuplicates)
	api.POST("/importar", cfg.TransferHandler.Import)

	api.POST("/historias/:id/archivos", cfg.MediaHandler.Upload)
	api.DELETE("/historias/:id/archivos/:archivoID", cfg.MediaHandler.Delete)

	api.GET("/sugerencias/elementos-clave", cfg.SuggestHandler.KeyElements)
	api.GET("/sugerencias/generos", cfg.SuggestHandler.Genres)

	return router
}
