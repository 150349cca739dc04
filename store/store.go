package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nova-properties/backend/models"
)

// ErrNotFound is returned when a lookup matches no document.
var ErrNotFound = errors.New("not found")

type UserStore interface {
	Insert(ctx context.Context, user *models.User) (primitive.ObjectID, error)
	ByEmail(ctx context.Context, email string) (*models.User, error)
	ByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	// UpdateFavourites overwrites the user's favourites list. Plain
	// read-modify-write: concurrent mutations on the same user are
	// last-write-wins.
	UpdateFavourites(ctx context.Context, id primitive.ObjectID, favourites []primitive.ObjectID) error
}

type PropertyStore interface {
	Page(ctx context.Context, skip, limit int64) ([]models.Property, int64, error)
	Featured(ctx context.Context, limit int64) ([]models.Property, error)
	ByID(ctx context.Context, id primitive.ObjectID) (*models.Property, error)
	// ByIDs returns the properties for ids, in the order of ids. Missing
	// ids are skipped.
	ByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Property, error)
}

type AgentStore interface {
	List(ctx context.Context, limit int64) ([]models.Agent, error)
	ByID(ctx context.Context, id primitive.ObjectID) (*models.Agent, error)
}

type TestimonialStore interface {
	List(ctx context.Context, limit int64) ([]models.Testimonial, error)
}

type MessageStore interface {
	Insert(ctx context.Context, msg *models.UserMessage) error
}
