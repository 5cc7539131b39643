package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gcbaptista/go-facet-engine/internal/newsletter"
	"github.com/gcbaptista/go-facet-engine/services"
)

// API holds dependencies for API handlers: the collection manager and the newsletter registry.
type API struct {
	engine     services.CollectionManager
	newsletter *newsletter.Registry
	now        func() time.Time
}

// NewAPI creates a new API handler structure.
func NewAPI(engine services.CollectionManager, registry *newsletter.Registry) *API {
	return &API{
		engine:     engine,
		newsletter: registry,
		now:        time.Now,
	}
}

// SetupRoutes defines all the API routes for the facet engine.
func SetupRoutes(router *gin.Engine, engine services.CollectionManager, registry *newsletter.Registry) {
	apiHandler := NewAPI(engine, registry)

	// Health check and metrics
	router.GET("/health", apiHandler.HealthCheckHandler)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Collection management routes
	collectionRoutes := router.Group("/collections")
	{
		collectionRoutes.POST("", apiHandler.CreateCollectionHandler)                           // Create a new collection
		collectionRoutes.GET("", apiHandler.ListCollectionsHandler)                             // List all collections
		collectionRoutes.GET("/:collectionName", apiHandler.GetCollectionHandler)               // Settings and stats
		collectionRoutes.DELETE("/:collectionName", apiHandler.DeleteCollectionHandler)         // Delete a collection
		collectionRoutes.PATCH("/:collectionName/settings", apiHandler.UpdateSettingsHandler)   // Partial settings update
		collectionRoutes.GET("/:collectionName/facets", apiHandler.FacetsHandler)               // Facet value summary
		collectionRoutes.POST("/:collectionName/_filter", apiHandler.FilterHandler)             // Stateless filter
		collectionRoutes.GET("/:collectionName/_suggest", apiHandler.SuggestHandler)            // Stateless suggestions
		collectionRoutes.GET("/:collectionName/votes", apiHandler.GetVotesHandler)              // Recorded votes
		collectionRoutes.PUT("/:collectionName/records/:recordId/vote", apiHandler.VoteHandler) // Helpful / not helpful

		// Record management routes per collection
		recordRoutes := collectionRoutes.Group("/:collectionName/records")
		{
			recordRoutes.PUT("", apiHandler.AddRecordsHandler)                // Add/Update records
			recordRoutes.GET("", apiHandler.GetRecordsHandler)                // List records with pagination
			recordRoutes.DELETE("", apiHandler.DeleteAllRecordsHandler)       // Delete all records
			recordRoutes.GET("/:recordId", apiHandler.GetRecordHandler)       // Get specific record
			recordRoutes.DELETE("/:recordId", apiHandler.DeleteRecordHandler) // Delete specific record
		}

		// Browsing sessions per collection
		sessionRoutes := collectionRoutes.Group("/:collectionName/sessions")
		{
			sessionRoutes.POST("", apiHandler.CreateSessionHandler)
			sessionRoutes.GET("/:sessionId", apiHandler.GetSessionHandler)
			sessionRoutes.DELETE("/:sessionId", apiHandler.DeleteSessionHandler)
			sessionRoutes.PUT("/:sessionId/criteria", apiHandler.ReplaceCriteriaHandler)
			sessionRoutes.PUT("/:sessionId/categories/:facet", apiHandler.SetCategoryHandler)
			sessionRoutes.PUT("/:sessionId/ranges/:facet", apiHandler.SetRangeHandler)
			sessionRoutes.PUT("/:sessionId/search", apiHandler.SetSearchHandler)
			sessionRoutes.PUT("/:sessionId/sort", apiHandler.SetSortHandler)
			sessionRoutes.POST("/:sessionId/presets/:preset", apiHandler.ApplyPresetHandler)
			sessionRoutes.POST("/:sessionId/reset", apiHandler.ResetSessionHandler)
			sessionRoutes.POST("/:sessionId/suggestions/select", apiHandler.SelectSuggestionHandler)
			sessionRoutes.POST("/:sessionId/blur", apiHandler.BlurHandler)
			sessionRoutes.POST("/:sessionId/focus", apiHandler.FocusHandler)
		}
	}

	// Newsletter routes
	newsletterRoutes := router.Group("/newsletter")
	{
		newsletterRoutes.POST("/subscriptions", apiHandler.SubscribeHandler)
		newsletterRoutes.GET("/subscriptions/count", apiHandler.SubscriptionCountHandler)
	}
}

// HealthCheckHandler reports liveness and the number of loaded collections.
func (api *API) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"collections": len(api.engine.ListCollections()),
		"timestamp":   api.now().UTC(),
	})
}

// collection resolves the :collectionName parameter, sending the error response on failure.
func (api *API) collection(c *gin.Context) (services.CollectionAccessor, string, bool) {
	name := c.Param("collectionName")
	if result := ValidateCollectionName(name); result.HasErrors() {
		SendValidationError(c, result)
		return nil, name, false
	}
	accessor, err := api.engine.GetCollection(name)
	if err != nil {
		SendEngineError(c, "get collection", err)
		return nil, name, false
	}
	return accessor, name, true
}
