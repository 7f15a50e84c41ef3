package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golden_hour/internal/cache"
	"golden_hour/internal/domain/models"
	"golden_hour/internal/lib/logger/sl"
	"golden_hour/internal/remote"
)

var (
	ErrInvalidBooking = errors.New("invalid booking request")
	ErrInvalidStatus  = errors.New("invalid booking status")
)

// BookingService runs the booking lifecycle. It is the mutation layer for
// booking records: creation is the one public write in the system, every
// other operation is admin-triggered. Any state may move to any other state
// through UpdateStatus; Approve and Reject are pending-origin conveniences
// but deliberately carry no origin-state guard, matching the backend
// contract.
type BookingService struct {
	log     *slog.Logger
	cache   *cache.Store
	backend remote.Backend
}

func NewBookingService(log *slog.Logger, store *cache.Store, backend remote.Backend) *BookingService {
	return &BookingService{
		log:     log,
		cache:   store,
		backend: backend,
	}
}

// Create submits a public booking request. Required-field validation
// happens before any remote call; on success the backend assigns the id and
// the pending status, and the admin booking list is marked stale.
func (s *BookingService) Create(ctx context.Context, req models.BookingRequest) (string, error) {
	const op = "services.BookingService.Create"

	log := s.log.With(
		slog.String("op", op),
		slog.String("package_id", req.PackageID),
	)

	if err := req.Validate(); err != nil {
		log.Warn("booking request rejected", sl.Err(err))
		return "", fmt.Errorf("%s: %w: %v", op, ErrInvalidBooking, err)
	}

	id, err := s.backend.CreateBooking(ctx, req)
	if err != nil {
		log.Error("failed to create booking", sl.Err(err))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	s.cache.Invalidate(cache.KeyBookings)

	log.Info("booking created", slog.String("id", id))
	return id, nil
}

// Approve confirms a booking. Meaningful from pending, permitted from any
// state.
func (s *BookingService) Approve(ctx context.Context, id string) error {
	const op = "services.BookingService.Approve"

	if err := s.backend.ApproveBooking(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.cache.Invalidate(cache.KeyBookings)

	s.log.Info("booking approved", slog.String("id", id))
	return nil
}

// Reject declines a booking. Same permissiveness as Approve.
func (s *BookingService) Reject(ctx context.Context, id string) error {
	const op = "services.BookingService.Reject"

	if err := s.backend.RejectBooking(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.cache.Invalidate(cache.KeyBookings)

	s.log.Info("booking rejected", slog.String("id", id))
	return nil
}

// UpdateStatus overwrites the status directly. The only client-side check
// is membership in the known status set.
func (s *BookingService) UpdateStatus(ctx context.Context, id string, status models.BookingStatus) error {
	const op = "services.BookingService.UpdateStatus"

	if !status.Valid() {
		return fmt.Errorf("%s: %w: %q", op, ErrInvalidStatus, status)
	}

	if err := s.backend.UpdateBookingStatus(ctx, id, status); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.cache.Invalidate(cache.KeyBookings)

	s.log.Info("booking status updated",
		slog.String("id", id),
		slog.String("status", string(status)),
	)
	return nil
}

// AssignPhotographer sets the photographer without touching the status; the
// two attributes are orthogonal.
func (s *BookingService) AssignPhotographer(ctx context.Context, id, photographer string) error {
	const op = "services.BookingService.AssignPhotographer"

	if photographer == "" {
		return fmt.Errorf("%s: photographer identity is required", op)
	}

	if err := s.backend.AssignPhotographer(ctx, id, photographer); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.cache.Invalidate(cache.KeyBookings)
	return nil
}
