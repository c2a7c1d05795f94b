package routes

import (
	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"

	"github.com/gharkhoj/backend/analytics"
	"github.com/gharkhoj/backend/controllers"
	"github.com/gharkhoj/backend/middleware"
	"github.com/gharkhoj/backend/search"
)

func Routes(router *mux.Router, svc *search.Service, recorder *analytics.Recorder, agg *analytics.Aggregator, redisClient *redis.Client) {
	// Auth routes
	router.HandleFunc("/register", controllers.RegisterUser()).Methods("POST")
	router.HandleFunc("/login", controllers.LoginUser()).Methods("POST")

	// Search surface; public, viewer identity attached when present
	api := router.PathPrefix("/api").Subrouter()
	api.Use(middleware.OptionalAuth)

	api.HandleFunc("/search", controllers.SearchProperties(svc, redisClient)).Methods("GET")
	api.HandleFunc("/search/suggestions", controllers.GetSuggestions(svc)).Methods("GET")
	api.HandleFunc("/search/trending", controllers.GetTrending(agg, redisClient)).Methods("GET")
	api.HandleFunc("/search/nearby", controllers.GetNearby(svc)).Methods("GET")
	api.HandleFunc("/search/facets", controllers.GetFacets(svc, redisClient)).Methods("GET")
	api.HandleFunc("/properties/{id}/similar", controllers.GetSimilarProperties(svc)).Methods("GET")

	// View tracking; anonymous sessions allowed
	api.HandleFunc("/views", controllers.RecordView(recorder)).Methods("POST")
	api.HandleFunc("/views/{id}/interactions", controllers.UpdateViewInteraction(recorder)).Methods("PATCH")
	api.HandleFunc("/views/{id}/end", controllers.EndViewSession(recorder)).Methods("POST")

	// Owner-only engagement summary
	authenticated := router.PathPrefix("/api").Subrouter()
	authenticated.Use(middleware.AuthMiddleware)
	authenticated.HandleFunc("/properties/{id}/stats", controllers.GetPropertyStats(agg)).Methods("GET")
}
