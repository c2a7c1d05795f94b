package controllers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gharkhoj/backend/analytics"
	"github.com/gharkhoj/backend/config"
	"github.com/gharkhoj/backend/models"
)

// GetPropertyStats returns the engagement summary for a listing. Only the
// listing owner may read it.
func GetPropertyStats(agg *analytics.Aggregator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := r.Context().Value(UserIDKey).(string)
		if !ok {
			log.Println("User ID missing in context")
			http.Error(w, "User ID missing in context", http.StatusUnauthorized)
			return
		}

		propID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
		if err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: "invalid property id"})
			return
		}

		var listing models.Listing
		err = config.ListingCollection.FindOne(r.Context(), bson.M{"_id": propID}).Decode(&listing)
		if err == mongo.ErrNoDocuments {
			writeJSON(w, http.StatusNotFound, ErrorResponse{Message: "not found"})
			return
		}
		if err != nil {
			log.Printf("property stats: load listing %s failed: %v", propID.Hex(), err)
			writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{Message: "stats temporarily unavailable"})
			return
		}
		if listing.CreatedBy != userID {
			writeJSON(w, http.StatusForbidden, ErrorResponse{Message: "not the listing owner"})
			return
		}

		days, _ := strconv.Atoi(r.URL.Query().Get("days"))
		if days < 1 {
			days = analytics.DefaultTrendingDays
		}

		stats, err := agg.PropertyStats(r.Context(), propID, days)
		if err != nil {
			writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{Message: "stats temporarily unavailable"})
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}
