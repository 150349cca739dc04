package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Property struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Image        string             `bson:"image" json:"image"`
	Price        string             `bson:"price" json:"price"`
	Location     string             `bson:"location" json:"location"`
	Bedrooms     int                `bson:"bedrooms" json:"bedrooms"`
	Bathrooms    int                `bson:"bathrooms" json:"bathrooms"`
	Area         string             `bson:"area" json:"area"`
	Type         string             `bson:"type" json:"type"`
	YearBuilt    int                `bson:"yearBuilt" json:"yearBuilt"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	Features     []string           `bson:"features,omitempty" json:"features,omitempty"`
	Address      string             `bson:"address,omitempty" json:"address,omitempty"`
	Category     string             `bson:"category,omitempty" json:"category,omitempty"`
	AgentID      primitive.ObjectID `bson:"agentId,omitempty" json:"agentId,omitempty"`
	Parking      string             `bson:"parking" json:"parking"`
	PropertyType string             `bson:"propertyType" json:"propertyType"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

const (
	CategoryBuy  = "Buy"
	CategoryRent = "Rent"
)
