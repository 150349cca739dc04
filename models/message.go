package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserMessage is a contact-form submission. Created once, never mutated.
type UserMessage struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	FullName   string              `bson:"fullName" json:"fullName"`
	Email      string              `bson:"email" json:"email"`
	Phone      string              `bson:"phone" json:"phone"`
	Message    string              `bson:"message" json:"message"`
	Subject    string              `bson:"subject" json:"subject"`
	Status     string              `bson:"status" json:"status"`
	SourcePage string              `bson:"sourcePage" json:"sourcePage"`
	PropertyID *primitive.ObjectID `bson:"propertyId,omitempty" json:"propertyId,omitempty"`
	UserID     *primitive.ObjectID `bson:"userId,omitempty" json:"userId,omitempty"`
	IPAddress  string              `bson:"ipAddress,omitempty" json:"ipAddress,omitempty"`
	UserAgent  string              `bson:"userAgent,omitempty" json:"userAgent,omitempty"`
	CreatedAt  time.Time           `bson:"createdAt" json:"createdAt"`
}
