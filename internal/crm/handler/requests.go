package handler

import (
	"clienthub/internal/crm/models"
	"clienthub/internal/crm/service"
)

// SubscribeRequest is a newsletter signup submission.
type SubscribeRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	City    string `json:"city"`
	Country string `json:"country"`
}

func (r *SubscribeRequest) Fields() models.ContactFields {
	return models.ContactFields{
		Name:    r.Name,
		Email:   r.Email,
		Phone:   r.Phone,
		City:    r.City,
		Country: r.Country,
	}
}

// RegisterRequest is an event registration submission.
type RegisterRequest struct {
	EventID    string `json:"eventId"`
	EventTitle string `json:"eventTitle"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Message    string `json:"message"`
}

func (r *RegisterRequest) Input(submittedVia string) service.RegisterInput {
	return service.RegisterInput{
		EventID:      r.EventID,
		EventTitle:   r.EventTitle,
		Name:         r.Name,
		Phone:        r.Phone,
		Email:        r.Email,
		Message:      r.Message,
		SubmittedVia: submittedVia,
	}
}

// AdminClientRequest is an admin create or edit submission.
type AdminClientRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	City    string `json:"city"`
	Country string `json:"country"`
}

func (r *AdminClientRequest) Fields() models.ContactFields {
	return models.ContactFields{
		Name:    r.Name,
		Email:   r.Email,
		Phone:   r.Phone,
		City:    r.City,
		Country: r.Country,
	}
}

// LoginRequest is an admin login submission.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
