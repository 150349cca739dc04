package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/nova-properties/backend/cache"
)

const (
	// cacheTTL is the server-side entry lifetime. The client-side max-age
	// is shorter so a client never serves a response past the server's own
	// expiry.
	cacheTTL           = 400 * time.Second
	clientCacheControl = "public, max-age=300"
)

var validate = validator.New()

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, messageResponse{Message: message})
}

// serveCached writes the cached bytes for key if present. Cache errors are
// treated as misses; the store remains the source of truth.
func serveCached(w http.ResponseWriter, r *http.Request, c cache.Store, key string, public bool) bool {
	data, ok, err := c.Get(r.Context(), key)
	if err != nil {
		log.Printf("Cache GET error for key %s: %v", key, err)
		return false
	}
	if !ok {
		return false
	}

	w.Header().Set("Content-Type", "application/json")
	if public {
		w.Header().Set("Cache-Control", clientCacheControl)
	}
	w.Write(data)
	return true
}

// writeAndCache serializes payload, stores it under key and sends it. The
// cached bytes are exactly the bytes returned to the client.
func writeAndCache(w http.ResponseWriter, r *http.Request, c cache.Store, key string, payload interface{}, public bool) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to serialize response for key %s: %v", key, err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if err := c.Set(r.Context(), key, data, cacheTTL); err != nil {
		log.Printf("Cache SET error for key %s: %v", key, err)
	}

	w.Header().Set("Content-Type", "application/json")
	if public {
		w.Header().Set("Cache-Control", clientCacheControl)
	}
	w.Write(data)
}
