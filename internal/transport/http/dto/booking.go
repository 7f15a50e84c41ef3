package dto

import "golden_hour/internal/domain/models"

type CreateBookingInput struct {
	CustomerName  string `json:"customerName" validate:"required"`
	CustomerEmail string `json:"customerEmail" validate:"required,email"`
	PackageID     string `json:"packageId" validate:"required"`
	EventDate     string `json:"eventDate" validate:"required"`
}

func (in CreateBookingInput) ToRequest() models.BookingRequest {
	return models.BookingRequest{
		CustomerName:  in.CustomerName,
		CustomerEmail: in.CustomerEmail,
		PackageID:     in.PackageID,
		EventDate:     in.EventDate,
	}
}

type UpdateBookingStatusInput struct {
	Status models.BookingStatus `json:"status" validate:"required,oneof=pending confirmed completed rejected"`
}

type AssignPhotographerInput struct {
	Photographer string `json:"photographer" validate:"required"`
}
