package controllers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nova-properties/backend/cache"
	"github.com/nova-properties/backend/models"
	"github.com/nova-properties/backend/store"
)

const (
	featuredLimit     = 4
	agentsLimit       = 5
	testimonialsLimit = 3

	defaultPageSize = 12
	maxPageSize     = 50
)

type propertyPage struct {
	Data  []models.Property `json:"data"`
	Total int64             `json:"total"`
}

// GetProperties serves the paginated listing. The page is cached per
// (page, limit) pair.
func GetProperties(properties store.PropertyStore, c cache.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, limit := paginationParams(r)
		cacheKey := fmt.Sprintf("properties:page=%d:limit=%d", page, limit)

		if serveCached(w, r, c, cacheKey, true) {
			return
		}

		skip := (page - 1) * limit
		data, total, err := properties.Page(r.Context(), skip, limit)
		if err != nil {
			log.Printf("Error fetching properties page %d: %v", page, err)
			writeMessage(w, http.StatusInternalServerError, "Error fetching properties")
			return
		}

		writeAndCache(w, r, c, cacheKey, propertyPage{Data: data, Total: total}, true)
	}
}

func GetFeaturedProperties(properties store.PropertyStore, c cache.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const cacheKey = "featuredProperties"

		if serveCached(w, r, c, cacheKey, true) {
			return
		}

		data, err := properties.Featured(r.Context(), featuredLimit)
		if err != nil {
			log.Printf("Error fetching featured properties: %v", err)
			writeMessage(w, http.StatusInternalServerError, "Error fetching properties")
			return
		}

		writeAndCache(w, r, c, cacheKey, data, true)
	}
}

func GetPropertyByID(properties store.PropertyStore, c cache.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		objID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			log.Printf("Invalid property ID %s: %v", id, err)
			writeMessage(w, http.StatusBadRequest, "Invalid property ID")
			return
		}

		cacheKey := "property:" + id
		if serveCached(w, r, c, cacheKey, true) {
			return
		}

		property, err := properties.ByID(r.Context(), objID)
		if err == store.ErrNotFound {
			// Not-found responses are never cached, so a property inserted
			// right after this request is visible to the next one.
			writeMessage(w, http.StatusNotFound, "Property not found")
			return
		}
		if err != nil {
			log.Printf("Error fetching property %s: %v", id, err)
			writeMessage(w, http.StatusInternalServerError, "Error fetching property")
			return
		}

		writeAndCache(w, r, c, cacheKey, property, true)
	}
}

func GetAgents(agents store.AgentStore, c cache.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const cacheKey = "agentsList"

		if serveCached(w, r, c, cacheKey, true) {
			return
		}

		data, err := agents.List(r.Context(), agentsLimit)
		if err != nil {
			log.Printf("Error fetching agents: %v", err)
			writeMessage(w, http.StatusInternalServerError, "Error fetching agents")
			return
		}

		writeAndCache(w, r, c, cacheKey, data, true)
	}
}

func GetAgentByID(agents store.AgentStore, c cache.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		objID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			log.Printf("Invalid agent ID %s: %v", id, err)
			writeMessage(w, http.StatusBadRequest, "Invalid agent ID")
			return
		}

		cacheKey := "agents:" + id
		if serveCached(w, r, c, cacheKey, true) {
			return
		}

		agent, err := agents.ByID(r.Context(), objID)
		if err == store.ErrNotFound {
			writeMessage(w, http.StatusNotFound, "Not found")
			return
		}
		if err != nil {
			log.Printf("Error fetching agent %s: %v", id, err)
			writeMessage(w, http.StatusInternalServerError, "Error fetching agent")
			return
		}

		writeAndCache(w, r, c, cacheKey, agent, true)
	}
}

func GetTestimonials(testimonials store.TestimonialStore, c cache.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const cacheKey = "testimonialsList"

		if serveCached(w, r, c, cacheKey, true) {
			return
		}

		data, err := testimonials.List(r.Context(), testimonialsLimit)
		if err != nil {
			log.Printf("Error fetching testimonials: %v", err)
			writeMessage(w, http.StatusInternalServerError, "Error fetching testimonials")
			return
		}

		writeAndCache(w, r, c, cacheKey, data, true)
	}
}

func paginationParams(r *http.Request) (page, limit int64) {
	page = 1
	limit = defaultPageSize

	if v := r.URL.Query().Get("page"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil && parsed > 0 {
			page = parsed
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil && parsed > 0 {
			limit = parsed
			if limit > maxPageSize {
				limit = maxPageSize
			}
		}
	}
	return page, limit
}
