package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Agent struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name       string             `bson:"name" json:"name"`
	Title      string             `bson:"title" json:"title"`
	Experience string             `bson:"experience" json:"experience"`
	Languages  []string           `bson:"languages" json:"languages"`
	Phone      string             `bson:"phone" json:"phone"`
	Email      string             `bson:"email" json:"email"`
	Image      string             `bson:"image" json:"image"`
}
