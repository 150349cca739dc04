package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID                primitive.ObjectID   `bson:"_id,omitempty" json:"id,omitempty"`
	Name              string               `bson:"name" json:"name"`
	Email             string               `bson:"email" json:"email"`
	Password          string               `bson:"password" json:"-"`
	Role              string               `bson:"role" json:"role"`
	Favourites        []primitive.ObjectID `bson:"favourites" json:"favourites"`
	PasswordUpdatedAt time.Time            `bson:"passwordUpdatedAt,omitempty" json:"-"`
	CreatedAt         time.Time            `bson:"createdAt" json:"createdAt"`
}

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// HasFavourite reports whether propertyID is already on the user's list.
func (u *User) HasFavourite(propertyID primitive.ObjectID) bool {
	for _, id := range u.Favourites {
		if id == propertyID {
			return true
		}
	}
	return false
}
