package controllers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nova-properties/backend/cache"
	"github.com/nova-properties/backend/middleware"
	"github.com/nova-properties/backend/store"
)

type favouriteRequest struct {
	PropertyID string `json:"propertyId"`
}

type favouritesResponse struct {
	Message    string               `json:"message"`
	Favourites []primitive.ObjectID `json:"favourites"`
}

func favouritesCacheKey(userID string) string {
	return "user:" + userID + ":favourites"
}

// AddFavourite appends a property to the caller's favourites. Adding a
// property that is already on the list is a no-op success.
func AddFavourite(users store.UserStore, properties store.PropertyStore, c cache.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := mux.Vars(r)["userId"]
		if !ownsResource(r, userID) {
			writeMessage(w, http.StatusForbidden, "Unauthorized to modify favourites")
			return
		}

		userObjID, err := primitive.ObjectIDFromHex(userID)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid user ID")
			return
		}

		var req favouriteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("Invalid favourite payload: %v", err)
			writeMessage(w, http.StatusBadRequest, "Invalid request payload")
			return
		}
		propertyID, err := primitive.ObjectIDFromHex(req.PropertyID)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid property ID")
			return
		}

		if _, err := properties.ByID(r.Context(), propertyID); err != nil {
			if err == store.ErrNotFound {
				writeMessage(w, http.StatusNotFound, "Property not found")
				return
			}
			log.Printf("Error checking property %s: %v", req.PropertyID, err)
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		user, err := users.ByID(r.Context(), userObjID)
		if err == store.ErrNotFound {
			writeMessage(w, http.StatusNotFound, "User not found")
			return
		}
		if err != nil {
			log.Printf("Error fetching user %s: %v", userID, err)
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		if !user.HasFavourite(propertyID) {
			user.Favourites = append(user.Favourites, propertyID)
			if err := users.UpdateFavourites(r.Context(), userObjID, user.Favourites); err != nil {
				log.Printf("Error updating favourites for user %s: %v", userID, err)
				writeMessage(w, http.StatusInternalServerError, "Internal server error")
				return
			}
		}

		refreshFavouritesCache(r.Context(), c, properties, userID, user.Favourites)

		writeJSON(w, http.StatusOK, favouritesResponse{
			Message:    "Property added to favourites",
			Favourites: user.Favourites,
		})
	}
}

// RemoveFavourite removes a property from the caller's favourites. Removing
// a property that is not on the list is a no-op success.
func RemoveFavourite(users store.UserStore, properties store.PropertyStore, c cache.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		userID := vars["userId"]
		if !ownsResource(r, userID) {
			writeMessage(w, http.StatusForbidden, "Unauthorized to modify favourites")
			return
		}

		userObjID, err := primitive.ObjectIDFromHex(userID)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid user ID")
			return
		}
		propertyID, err := primitive.ObjectIDFromHex(vars["propertyId"])
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid property ID")
			return
		}

		user, err := users.ByID(r.Context(), userObjID)
		if err == store.ErrNotFound {
			writeMessage(w, http.StatusNotFound, "User not found")
			return
		}
		if err != nil {
			log.Printf("Error fetching user %s: %v", userID, err)
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		if user.HasFavourite(propertyID) {
			filtered := user.Favourites[:0:0]
			for _, id := range user.Favourites {
				if id != propertyID {
					filtered = append(filtered, id)
				}
			}
			user.Favourites = filtered
			if err := users.UpdateFavourites(r.Context(), userObjID, user.Favourites); err != nil {
				log.Printf("Error updating favourites for user %s: %v", userID, err)
				writeMessage(w, http.StatusInternalServerError, "Internal server error")
				return
			}
		}

		refreshFavouritesCache(r.Context(), c, properties, userID, user.Favourites)

		writeJSON(w, http.StatusOK, favouritesResponse{
			Message:    "Property removed from favourites",
			Favourites: user.Favourites,
		})
	}
}

// GetFavourites returns the caller's favourites as populated properties,
// cache-aside keyed by user id.
func GetFavourites(users store.UserStore, properties store.PropertyStore, c cache.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := mux.Vars(r)["userId"]
		if !ownsResource(r, userID) {
			writeMessage(w, http.StatusForbidden, "Unauthorized to view favourites")
			return
		}

		userObjID, err := primitive.ObjectIDFromHex(userID)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid user ID")
			return
		}

		if serveCached(w, r, c, favouritesCacheKey(userID), false) {
			return
		}

		user, err := users.ByID(r.Context(), userObjID)
		if err == store.ErrNotFound {
			writeMessage(w, http.StatusNotFound, "User not found")
			return
		}
		if err != nil {
			log.Printf("Error fetching user %s: %v", userID, err)
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		favourites, err := properties.ByIDs(r.Context(), user.Favourites)
		if err != nil {
			log.Printf("Error fetching favourite properties for user %s: %v", userID, err)
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		writeAndCache(w, r, c, favouritesCacheKey(userID), favourites, false)
	}
}

// ownsResource compares the authenticated identity to the userId path
// parameter. Separate from the auth middleware so resource-level checks do
// not depend on how the request was authenticated.
func ownsResource(r *http.Request, userID string) bool {
	authUser, ok := middleware.UserFromContext(r.Context())
	return ok && authUser.ID == userID
}

// refreshFavouritesCache overwrites the user's favourites cache entry with
// the freshly populated list, so a cached read right after a mutation is
// already coherent. Failures only cost a cache miss later.
func refreshFavouritesCache(ctx context.Context, c cache.Store, properties store.PropertyStore, userID string, favourites []primitive.ObjectID) {
	populated, err := properties.ByIDs(ctx, favourites)
	if err != nil {
		log.Printf("Error populating favourites for cache refresh (user %s): %v", userID, err)
		return
	}
	data, err := json.Marshal(populated)
	if err != nil {
		log.Printf("Error serializing favourites for cache refresh (user %s): %v", userID, err)
		return
	}
	if err := c.Set(ctx, favouritesCacheKey(userID), data, cacheTTL); err != nil {
		log.Printf("Cache SET error for user %s favourites: %v", userID, err)
	}
}
