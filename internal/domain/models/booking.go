package models

import (
	"fmt"
	"net/mail"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingRejected  BookingStatus = "rejected"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCompleted, BookingRejected:
		return true
	}
	return false
}

// Booking is a customer booking request. Created by the public booking form
// in status pending; every later mutation is admin only.
type Booking struct {
	ID                   string        `json:"id"`
	CustomerName         string        `json:"customerName"`
	CustomerEmail        string        `json:"customerEmail"`
	PackageID            string        `json:"packageId"`
	EventDate            string        `json:"eventDate"`
	Status               BookingStatus `json:"status"`
	AssignedPhotographer string        `json:"assignedPhotographer,omitempty"`
}

// BookingRequest is the public creation input. The status is never part of
// the request; the backend assigns pending.
type BookingRequest struct {
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	PackageID     string `json:"packageId"`
	EventDate     string `json:"eventDate"`
}

func (r BookingRequest) Validate() error {
	if r.CustomerName == "" {
		return fmt.Errorf("customer name is required")
	}
	if r.CustomerEmail == "" {
		return fmt.Errorf("customer email is required")
	}
	if _, err := mail.ParseAddress(r.CustomerEmail); err != nil {
		return fmt.Errorf("invalid customer email: %w", err)
	}
	if r.PackageID == "" {
		return fmt.Errorf("package id is required")
	}
	if r.EventDate == "" {
		return fmt.Errorf("event date is required")
	}
	return nil
}
