package routes

import (
	"github.com/gorilla/mux"

	"github.com/nova-properties/backend/cache"
	"github.com/nova-properties/backend/config"
	"github.com/nova-properties/backend/controllers"
	"github.com/nova-properties/backend/middleware"
	"github.com/nova-properties/backend/store"
)

// Deps carries everything the handlers need, injected once at startup.
type Deps struct {
	Users        store.UserStore
	Properties   store.PropertyStore
	Agents       store.AgentStore
	Testimonials store.TestimonialStore
	Messages     store.MessageStore
	Cache        cache.Store
	Config       *config.Config
}

// Routes wires the full HTTP surface under /api.
func Routes(router *mux.Router, deps Deps) {
	api := router.PathPrefix("/api").Subrouter()
	cfg := deps.Config
	secret := []byte(cfg.JWTSecret)

	// Auth routes
	api.HandleFunc("/auth/register", controllers.Register(deps.Users)).Methods("POST")
	api.HandleFunc("/auth/login", controllers.Login(deps.Users, cfg)).Methods("POST")
	api.HandleFunc("/auth/refresh", controllers.Refresh(deps.Users, cfg)).Methods("POST")
	api.Handle("/auth/me", middleware.Authenticate(secret)(controllers.Me(deps.Users))).Methods("GET")
	api.HandleFunc("/auth/logout", controllers.Logout(cfg)).Methods("GET", "POST")

	// Public read routes. /properties/featured must be registered before
	// /properties/{id}.
	api.HandleFunc("/properties", controllers.GetProperties(deps.Properties, deps.Cache)).Methods("GET")
	api.HandleFunc("/properties/featured", controllers.GetFeaturedProperties(deps.Properties, deps.Cache)).Methods("GET")
	api.HandleFunc("/properties/{id}", controllers.GetPropertyByID(deps.Properties, deps.Cache)).Methods("GET")
	api.HandleFunc("/agents", controllers.GetAgents(deps.Agents, deps.Cache)).Methods("GET")
	api.HandleFunc("/agents/{id}", controllers.GetAgentByID(deps.Agents, deps.Cache)).Methods("GET")
	api.HandleFunc("/testimonials", controllers.GetTestimonials(deps.Testimonials, deps.Cache)).Methods("GET")

	// Favourites routes require authentication
	authenticated := api.PathPrefix("/users").Subrouter()
	authenticated.Use(middleware.Authenticate(secret))
	authenticated.HandleFunc("/{userId}/favourites", controllers.AddFavourite(deps.Users, deps.Properties, deps.Cache)).Methods("POST")
	authenticated.HandleFunc("/{userId}/favourites", controllers.GetFavourites(deps.Users, deps.Properties, deps.Cache)).Methods("GET")
	authenticated.HandleFunc("/{userId}/favourites/{propertyId}", controllers.RemoveFavourite(deps.Users, deps.Properties, deps.Cache)).Methods("DELETE")

	// Contact accepts anonymous submissions but attaches the user when a
	// valid session cookie is present.
	api.Handle("/contact", middleware.OptionalAuth(secret)(controllers.SubmitMessage(deps.Messages))).Methods("POST")
}
