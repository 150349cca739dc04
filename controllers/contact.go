package controllers

import (
	"encoding/json"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nova-properties/backend/middleware"
	"github.com/nova-properties/backend/models"
	"github.com/nova-properties/backend/store"
)

type contactRequest struct {
	FullName   string `json:"fullName" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required"`
	Message    string `json:"message" validate:"required"`
	Subject    string `json:"subject"`
	SourcePage string `json:"sourcePage"`
	PropertyID string `json:"propertyId"`
}

type contactResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    *models.UserMessage `json:"data,omitempty"`
}

// SubmitMessage records a contact-form inquiry. Submissions are accepted
// anonymously; when the request carries a valid session the user id is
// attached to the message.
func SubmitMessage(messages store.MessageStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req contactRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("Error decoding contact payload: %v", err)
			writeJSON(w, http.StatusBadRequest, contactResponse{Success: false, Message: "Invalid request payload"})
			return
		}
		if err := validate.Struct(req); err != nil {
			log.Printf("Contact validation failed: %v", err)
			writeJSON(w, http.StatusBadRequest, contactResponse{Success: false, Message: "Invalid request payload"})
			return
		}

		msg := &models.UserMessage{
			FullName:   req.FullName,
			Email:      req.Email,
			Phone:      req.Phone,
			Message:    req.Message,
			Subject:    req.Subject,
			Status:     "New",
			SourcePage: req.SourcePage,
			IPAddress:  clientIP(r),
			UserAgent:  r.UserAgent(),
			CreatedAt:  time.Now(),
		}
		if msg.Subject == "" {
			msg.Subject = "General Inquiry"
		}
		if msg.SourcePage == "" {
			msg.SourcePage = "Contact Us Page"
		}

		if req.PropertyID != "" {
			if propertyID, err := primitive.ObjectIDFromHex(req.PropertyID); err == nil {
				msg.PropertyID = &propertyID
			}
		}
		if authUser, ok := middleware.UserFromContext(r.Context()); ok {
			if userID, err := primitive.ObjectIDFromHex(authUser.ID); err == nil {
				msg.UserID = &userID
			}
		}

		if err := messages.Insert(r.Context(), msg); err != nil {
			log.Printf("Error submitting message: %v", err)
			writeJSON(w, http.StatusInternalServerError, contactResponse{Success: false, Message: "Failed to submit message"})
			return
		}

		writeJSON(w, http.StatusCreated, contactResponse{
			Success: true,
			Message: "Message submitted successfully",
			Data:    msg,
		})
	}
}

// clientIP prefers the first X-Forwarded-For hop since the app runs behind
// a proxy in production.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
