package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Testimonial struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name        string             `bson:"name" json:"name"`
	Location    string             `bson:"location" json:"location"`
	Testimonial string             `bson:"testimonial" json:"testimonial"`
	Rating      float64            `bson:"rating" json:"rating"`
}
