package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"

	"github.com/gharkhoj/backend/analytics"
	"github.com/gharkhoj/backend/search"
)

// Cache lifetimes for the read-heavy search surfaces. Search results stay
// short-lived so counter-driven ordering does not go stale.
const (
	searchCacheTTL = 1 * time.Minute
	facetsCacheTTL = 5 * time.Minute
)

func SearchProperties(svc *search.Service, redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := search.ParseSearchRequest(r.URL.Query())
		if err != nil {
			writeError(w, err)
			return
		}

		key := cacheKey("search", r.URL.Query())
		if cached, err := redisClient.Get(r.Context(), key).Result(); err == nil {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(cached))
			return
		} else if err != redis.Nil {
			log.Printf("Redis GET error for key %s: %v", key, err)
		}

		resp, err := svc.Search(r.Context(), req)
		if err != nil {
			writeError(w, err)
			return
		}

		cacheAndWrite(w, r, redisClient, key, searchCacheTTL, resp)
	}
}

func GetSuggestions(svc *search.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

		sugg, err := svc.Suggest(r.Context(), q, limit)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sugg)
	}
}

func GetFacets(svc *search.Service, redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const key = "search:facets"
		if cached, err := redisClient.Get(r.Context(), key).Result(); err == nil {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(cached))
			return
		} else if err != redis.Nil {
			log.Printf("Redis GET error for key %s: %v", key, err)
		}

		facets, err := svc.Facets(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}

		cacheAndWrite(w, r, redisClient, key, facetsCacheTTL, facets)
	}
}

func GetTrending(agg *analytics.Aggregator, redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		days, _ := strconv.Atoi(r.URL.Query().Get("days"))
		if days < 1 {
			days = analytics.DefaultTrendingDays
		}
		if days > analytics.MaxTrendingDays {
			days = analytics.MaxTrendingDays
		}
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		if limit < 1 {
			limit = analytics.DefaultTrendingLimit
		}
		if limit > analytics.MaxTrendingLimit {
			limit = analytics.MaxTrendingLimit
		}

		// The default window is kept warm by the background refresher.
		key := analytics.TrendingCacheKey(days, limit)
		if cached, err := redisClient.Get(r.Context(), key).Result(); err == nil {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(cached))
			return
		} else if err != redis.Nil {
			log.Printf("Redis GET error for key %s: %v", key, err)
		}

		trending, err := agg.ComputeTrending(r.Context(), days, limit)
		if err != nil {
			writeError(w, err)
			return
		}

		cacheAndWrite(w, r, redisClient, key, analytics.TrendingCacheTTL, trending)
	}
}

func GetNearby(svc *search.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		lat, latErr := strconv.ParseFloat(query.Get("lat"), 64)
		lng, lngErr := strconv.ParseFloat(query.Get("lng"), 64)
		radius, radErr := strconv.ParseFloat(query.Get("radiusKm"), 64)
		if latErr != nil || lngErr != nil || radErr != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: "lat, lng and radiusKm must be numbers"})
			return
		}
		limit, _ := strconv.Atoi(query.Get("limit"))

		results, err := svc.Nearby(r.Context(), lat, lng, radius, limit)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"results": results})
	}
}

func GetSimilarProperties(svc *search.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

		results, err := svc.Similar(r.Context(), id, limit)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"results": results})
	}
}

// cacheAndWrite serializes the payload once, stores it in Redis, and
// writes it to the client. A failed cache write only logs.
func cacheAndWrite(w http.ResponseWriter, r *http.Request, redisClient *redis.Client, key string, ttl time.Duration, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to serialize response for key %s: %v", key, err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}

	if err := redisClient.Set(r.Context(), key, body, ttl).Err(); err != nil {
		log.Printf("Failed to cache response for key %s: %v", key, err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}
