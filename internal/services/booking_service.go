package services

import (
	"context"
	"errors"

	"github.com/farellandr/eventstay/internal/apperrors"
	"github.com/farellandr/eventstay/internal/models"
	"github.com/farellandr/eventstay/internal/repository"
)

type BookingService struct {
	enrollments repository.EnrollmentRepository
	tickets     repository.TicketRepository
	rooms       repository.RoomRepository
	bookings    repository.BookingRepository
}

func NewBookingService(repos *repository.Repositories) *BookingService {
	return &BookingService{
		enrollments: repos.Enrollments,
		tickets:     repos.Tickets,
		rooms:       repos.Rooms,
		bookings:    repos.Bookings,
	}
}

type BookingWithRoom struct {
	ID   uint         `json:"id"`
	Room *models.Room `json:"Room"`
}

func (s *BookingService) GetBookingForUser(ctx context.Context, userID uint) (*BookingWithRoom, error) {
	booking, err := s.bookings.FindByUserID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("booking not found")
	}
	if err != nil {
		return nil, apperrors.Internal("find booking", err)
	}
	return &BookingWithRoom{ID: booking.ID, Room: booking.Room}, nil
}

// CreateBooking books roomID for the user and returns the new booking id.
func (s *BookingService) CreateBooking(ctx context.Context, userID, roomID uint) (uint, error) {
	enrollment, err := s.enrollments.FindByUserID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return 0, apperrors.NotFound("enrollment not found")
	}
	if err != nil {
		return 0, apperrors.Internal("find enrollment", err)
	}

	ticket, err := s.tickets.FindByEnrollmentID(ctx, enrollment.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return 0, apperrors.Forbidden("user has no ticket")
	}
	if err != nil {
		return 0, apperrors.Internal("find ticket", err)
	}
	if e := checkHotelEligibility(ticket); e != hotelEligible {
		return 0, apperrors.Forbidden(e.String())
	}

	room, err := s.findRoom(ctx, roomID)
	if err != nil {
		return 0, err
	}
	if err := s.ensureCapacity(ctx, room); err != nil {
		return 0, err
	}

	booking := &models.Booking{UserID: userID, RoomID: room.ID}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return 0, bookingWriteError(err)
	}
	return booking.ID, nil
}

// ChangeRoom moves the user's current booking to roomID. bookingID must name
// an existing booking, but the row that moves is always the user's own.
func (s *BookingService) ChangeRoom(ctx context.Context, userID, bookingID, roomID uint) (uint, error) {
	if bookingID == 0 {
		return 0, apperrors.Forbidden("booking id is required")
	}

	userBooking, err := s.bookings.FindByUserID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return 0, apperrors.Forbidden("user has no booking")
	}
	if err != nil {
		return 0, apperrors.Internal("find user booking", err)
	}

	room, err := s.findRoom(ctx, roomID)
	if err != nil {
		return 0, err
	}
	if err := s.ensureCapacity(ctx, room); err != nil {
		return 0, err
	}

	_, err = s.bookings.FindByID(ctx, bookingID)
	if errors.Is(err, repository.ErrNotFound) {
		return 0, apperrors.NotFound("booking not found")
	}
	if err != nil {
		return 0, apperrors.Internal("find booking", err)
	}

	updated, err := s.bookings.UpdateRoom(ctx, userBooking.ID, room.ID)
	if err != nil {
		return 0, bookingWriteError(err)
	}
	if updated.ID != userBooking.ID {
		return 0, apperrors.Internal("update booking", errors.New("updated booking id does not match the user's booking"))
	}
	return updated.ID, nil
}

func (s *BookingService) findRoom(ctx context.Context, roomID uint) (*models.Room, error) {
	room, err := s.rooms.FindByID(ctx, roomID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("room not found")
	}
	if err != nil {
		return nil, apperrors.Internal("find room", err)
	}
	return room, nil
}

func (s *BookingService) ensureCapacity(ctx context.Context, room *models.Room) error {
	count, err := s.bookings.CountByRoomID(ctx, room.ID)
	if err != nil {
		return apperrors.Internal("count bookings", err)
	}
	if count >= int64(room.Capacity) {
		return apperrors.Forbidden("room is full")
	}
	return nil
}

// bookingWriteError maps failures of the locked capacity re-check.
func bookingWriteError(err error) error {
	switch {
	case errors.Is(err, repository.ErrRoomFull):
		return apperrors.Forbidden("room is full")
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.NotFound("room not found")
	default:
		return apperrors.Internal("save booking", err)
	}
}
