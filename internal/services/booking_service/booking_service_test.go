package services_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"golden_hour/internal/cache"
	"golden_hour/internal/domain/models"
	"golden_hour/internal/remote"
	services "golden_hour/internal/services/booking_service"
	queries "golden_hour/internal/services/query_service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBackend struct {
	mock.Mock
	remote.Backend
}

func (m *MockBackend) CreateBooking(ctx context.Context, req models.BookingRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockBackend) GetAllBookings(ctx context.Context) ([]models.Booking, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *MockBackend) ApproveBooking(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBackend) RejectBooking(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBackend) UpdateBookingStatus(ctx context.Context, id string, status models.BookingStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockBackend) AssignPhotographer(ctx context.Context, id, photographer string) error {
	args := m.Called(ctx, id, photographer)
	return args.Error(0)
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{}))
}

func validRequest() models.BookingRequest {
	return models.BookingRequest{
		CustomerName:  "Priya Nair",
		CustomerEmail: "priya@example.com",
		PackageID:     "p1",
		EventDate:     "2026-11-21",
	}
}

func TestBookingService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("created booking starts pending", func(t *testing.T) {
		backend := new(MockBackend)
		store := cache.NewStore(nil)
		bookings := services.NewBookingService(newLogger(), store, backend)
		query := queries.NewQueryService(newLogger(), store, backend)

		req := validRequest()
		backend.On("CreateBooking", mock.Anything, req).Return("b1", nil).Once()
		backend.On("GetAllBookings", mock.Anything).Return([]models.Booking{{
			ID:            "b1",
			CustomerName:  req.CustomerName,
			CustomerEmail: req.CustomerEmail,
			PackageID:     req.PackageID,
			EventDate:     req.EventDate,
			Status:        models.BookingPending,
		}}, nil).Once()

		id, err := bookings.Create(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "b1", id)

		listed, err := query.Bookings(ctx)
		require.NoError(t, err)
		require.Len(t, listed, 1)
		assert.Equal(t, models.BookingPending, listed[0].Status)
	})

	t.Run("validation failure never reaches the remote", func(t *testing.T) {
		backend := new(MockBackend)
		bookings := services.NewBookingService(newLogger(), cache.NewStore(nil), backend)

		for _, req := range []models.BookingRequest{
			{},
			{CustomerName: "X", CustomerEmail: "x@example.com", PackageID: "p1"},
			{CustomerName: "X", CustomerEmail: "not-an-email", PackageID: "p1", EventDate: "2026-01-01"},
		} {
			_, err := bookings.Create(ctx, req)
			require.ErrorIs(t, err, services.ErrInvalidBooking)
		}

		backend.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything)
	})

	t.Run("create invalidates the booking list", func(t *testing.T) {
		backend := new(MockBackend)
		store := cache.NewStore(nil)
		bookings := services.NewBookingService(newLogger(), store, backend)

		store.Set(cache.KeyBookings, []models.Booking{})
		backend.On("CreateBooking", mock.Anything, mock.Anything).Return("b2", nil).Once()

		_, err := bookings.Create(ctx, validRequest())
		require.NoError(t, err)

		_, freshness := store.Get(cache.KeyBookings)
		assert.Equal(t, cache.Stale, freshness)
	})
}

func TestBookingService_Lifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("approve and reject pass through and invalidate", func(t *testing.T) {
		backend := new(MockBackend)
		store := cache.NewStore(nil)
		bookings := services.NewBookingService(newLogger(), store, backend)

		store.Set(cache.KeyBookings, []models.Booking{{ID: "b1", Status: models.BookingPending}})

		backend.On("ApproveBooking", mock.Anything, "b1").Return(nil).Once()
		require.NoError(t, bookings.Approve(ctx, "b1"))

		_, freshness := store.Get(cache.KeyBookings)
		assert.Equal(t, cache.Stale, freshness)

		backend.On("RejectBooking", mock.Anything, "b1").Return(nil).Once()
		require.NoError(t, bookings.Reject(ctx, "b1"))

		backend.AssertExpectations(t)
	})

	t.Run("direct status overwrite accepts any known status", func(t *testing.T) {
		backend := new(MockBackend)
		bookings := services.NewBookingService(newLogger(), cache.NewStore(nil), backend)

		for _, status := range []models.BookingStatus{
			models.BookingPending,
			models.BookingConfirmed,
			models.BookingCompleted,
			models.BookingRejected,
		} {
			backend.On("UpdateBookingStatus", mock.Anything, "b1", status).Return(nil).Once()
			require.NoError(t, bookings.UpdateStatus(ctx, "b1", status))
		}

		backend.AssertExpectations(t)
	})

	t.Run("unknown status is rejected client-side", func(t *testing.T) {
		backend := new(MockBackend)
		bookings := services.NewBookingService(newLogger(), cache.NewStore(nil), backend)

		err := bookings.UpdateStatus(ctx, "b1", models.BookingStatus("archived"))
		require.ErrorIs(t, err, services.ErrInvalidStatus)
		backend.AssertNotCalled(t, "UpdateBookingStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("photographer assignment does not touch status", func(t *testing.T) {
		backend := new(MockBackend)
		store := cache.NewStore(nil)
		bookings := services.NewBookingService(newLogger(), store, backend)

		backend.On("AssignPhotographer", mock.Anything, "b1", "principal-7").Return(nil).Once()
		require.NoError(t, bookings.AssignPhotographer(ctx, "b1", "principal-7"))

		backend.AssertNotCalled(t, "UpdateBookingStatus", mock.Anything, mock.Anything, mock.Anything)

		err := bookings.AssignPhotographer(ctx, "b1", "")
		require.Error(t, err)
	})
}
