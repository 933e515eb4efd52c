package services

import (
	"context"
	"errors"

	"github.com/farellandr/eventstay/internal/apperrors"
	"github.com/farellandr/eventstay/internal/models"
	"github.com/farellandr/eventstay/internal/repository"
)

// HotelCache is satisfied by cache.RedisHotelCache. A miss is reported with
// ok == false; implementations swallow their own errors.
type HotelCache interface {
	GetHotels(ctx context.Context) ([]models.Hotel, bool)
	SetHotels(ctx context.Context, hotels []models.Hotel)
	GetHotel(ctx context.Context, id uint) (*models.Hotel, bool)
	SetHotel(ctx context.Context, hotel *models.Hotel)
}

type HotelService struct {
	enrollments repository.EnrollmentRepository
	tickets     repository.TicketRepository
	hotels      repository.HotelRepository
	cache       HotelCache
}

// NewHotelService accepts a nil cache, in which case every read hits the database.
func NewHotelService(repos *repository.Repositories, cache HotelCache) *HotelService {
	return &HotelService{
		enrollments: repos.Enrollments,
		tickets:     repos.Tickets,
		hotels:      repos.Hotels,
		cache:       cache,
	}
}

func (s *HotelService) ListHotels(ctx context.Context, userID uint) ([]models.Hotel, error) {
	if err := s.checkUserCanStay(ctx, userID); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if hotels, ok := s.cache.GetHotels(ctx); ok && len(hotels) > 0 {
			return hotels, nil
		}
	}

	hotels, err := s.hotels.List(ctx)
	if err != nil {
		return nil, apperrors.Internal("list hotels", err)
	}
	if len(hotels) == 0 {
		return nil, apperrors.NotFound("no hotels found")
	}

	if s.cache != nil {
		s.cache.SetHotels(ctx, hotels)
	}
	return hotels, nil
}

func (s *HotelService) GetHotelDetail(ctx context.Context, hotelID, userID uint) (*models.Hotel, error) {
	if hotelID == 0 {
		return nil, apperrors.BadRequest("hotel id must be a positive number")
	}
	if err := s.checkUserCanStay(ctx, userID); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if hotel, ok := s.cache.GetHotel(ctx, hotelID); ok {
			return hotel, nil
		}
	}

	hotel, err := s.hotels.FindByIDWithRooms(ctx, hotelID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("hotel not found")
	}
	if err != nil {
		return nil, apperrors.Internal("find hotel", err)
	}

	if s.cache != nil {
		s.cache.SetHotel(ctx, hotel)
	}
	return hotel, nil
}

func (s *HotelService) checkUserCanStay(ctx context.Context, userID uint) error {
	enrollment, err := s.enrollments.FindByUserID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NotFound("enrollment not found")
	}
	if err != nil {
		return apperrors.Internal("find enrollment", err)
	}

	ticket, err := s.tickets.FindByEnrollmentID(ctx, enrollment.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NotFound("ticket not found")
	}
	if err != nil {
		return apperrors.Internal("find ticket", err)
	}

	if e := checkHotelEligibility(ticket); e != hotelEligible {
		return apperrors.PaymentRequired(e.String())
	}
	return nil
}
