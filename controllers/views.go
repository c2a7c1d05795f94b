package controllers

import (
	"encoding/json"
	"log"
	"net"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gharkhoj/backend/analytics"
	"github.com/gharkhoj/backend/models"
	"github.com/gharkhoj/backend/utils"
)

type viewPayload struct {
	PropertyID   string              `json:"propertyId"`
	SessionID    string              `json:"sessionId"`
	Source       string              `json:"source"`
	SearchQuery  string              `json:"searchQuery"`
	Referrer     string              `json:"referrer"`
	Country      string              `json:"country"`
	OriginCity   string              `json:"originCity"`
	ViewDuration int                 `json:"viewDuration"`
	ScrollDepth  int                 `json:"scrollDepth"`
	Interactions models.Interactions `json:"interactions"`
}

type endSessionPayload struct {
	ViewDuration int `json:"viewDuration"`
	ScrollDepth  int `json:"scrollDepth"`
}

// RecordView ingests one property detail-page visit and returns the
// created event, including its id for later interaction patches.
func RecordView(recorder *analytics.Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload viewPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			log.Printf("Invalid view payload: %v", err)
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: "invalid request body"})
			return
		}

		propID, err := primitive.ObjectIDFromHex(payload.PropertyID)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: "propertyId is not a valid id"})
			return
		}
		if strings.TrimSpace(payload.SessionID) == "" {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: "sessionId is required"})
			return
		}

		event := &models.ViewEvent{
			PropertyID:   propID,
			ViewerID:     viewerID(r),
			SessionID:    payload.SessionID,
			IP:           clientIP(r),
			UserAgent:    r.UserAgent(),
			Device:       utils.ClassifyDevice(r.UserAgent()),
			Country:      payload.Country,
			OriginCity:   payload.OriginCity,
			Referrer:     payload.Referrer,
			Source:       payload.Source,
			SearchQuery:  payload.SearchQuery,
			ViewDuration: payload.ViewDuration,
			ScrollDepth:  payload.ScrollDepth,
			Interactions: payload.Interactions,
		}

		created, err := recorder.Record(r.Context(), event)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, created)
	}
}

// UpdateViewInteraction applies late interaction signals (a phone reveal,
// an inquiry fired after page load) to an existing view event.
func UpdateViewInteraction(recorder *analytics.Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var patch analytics.InteractionPatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			log.Printf("Invalid interaction patch: %v", err)
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: "invalid request body"})
			return
		}

		event, err := recorder.UpdateInteraction(r.Context(), mux.Vars(r)["id"], patch)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, event)
	}
}

// EndViewSession closes out final duration and scroll depth on page exit.
func EndViewSession(recorder *analytics.Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload endSessionPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			log.Printf("Invalid end-session payload: %v", err)
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: "invalid request body"})
			return
		}

		event, err := recorder.EndSession(r.Context(), mux.Vars(r)["id"], payload.ViewDuration, payload.ScrollDepth)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, event)
	}
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
