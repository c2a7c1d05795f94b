package controllers

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/gharkhoj/backend/analytics"
	"github.com/gharkhoj/backend/search"
)

type ContextKey string

const UserIDKey = ContextKey("userID")

// viewerID returns the authenticated viewer identity, or empty for
// anonymous requests.
func viewerID(r *http.Request) string {
	if id, ok := r.Context().Value(UserIDKey).(string); ok {
		return id
	}
	return ""
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeError maps search/analytics errors onto HTTP responses. Validation
// failures keep their field detail; store failures get a generic message.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, search.ErrInvalidRange), errors.Is(err, search.ErrInvalidQuery),
		errors.Is(err, analytics.ErrInvalidEvent):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: err.Error()})
	case errors.Is(err, search.ErrNotFound), errors.Is(err, analytics.ErrNotFound):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Message: "not found"})
	default:
		writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{Message: "search temporarily unavailable"})
	}
}

// cacheKey hashes normalized query params into a namespaced Redis key so
// equivalent requests share one cache entry.
func cacheKey(prefix string, queryParams url.Values) string {
	keys := make([]string, 0, len(queryParams))
	for k := range queryParams {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, key := range keys {
		values := queryParams[key]
		sort.Strings(values)
		for _, val := range values {
			sb.WriteString(key)
			sb.WriteString("=")
			sb.WriteString(val)
			sb.WriteString("&")
		}
	}
	rawKey := strings.TrimSuffix(sb.String(), "&")

	sum := sha256.Sum256([]byte(rawKey))
	return prefix + ":" + hex.EncodeToString(sum[:])
}
