// Package repository holds the persistence access for every entity. Each
// repository is a thin wrapper around single-table gorm queries with at most
// one level of eager loading.
package repository

import (
	"context"
	"errors"

	"github.com/farellandr/eventstay/internal/models"
	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
	ErrRoomFull  = errors.New("room has no free capacity")
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	FindByToken(ctx context.Context, token string) (*models.Session, error)
}

type EnrollmentRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Enrollment, error)
	FindByUserID(ctx context.Context, userID uint) (*models.Enrollment, error)
	Save(ctx context.Context, enrollment *models.Enrollment) error
}

type TicketRepository interface {
	ListTypes(ctx context.Context) ([]models.TicketType, error)
	FindTypeByID(ctx context.Context, id uint) (*models.TicketType, error)
	FindByID(ctx context.Context, id uint) (*models.Ticket, error)
	FindByEnrollmentID(ctx context.Context, enrollmentID uint) (*models.Ticket, error)
	Create(ctx context.Context, ticket *models.Ticket) error
}

type HotelRepository interface {
	List(ctx context.Context) ([]models.Hotel, error)
	FindByIDWithRooms(ctx context.Context, id uint) (*models.Hotel, error)
}

type RoomRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Room, error)
}

type BookingRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Booking, error)
	FindByUserID(ctx context.Context, userID uint) (*models.Booking, error)
	CountByRoomID(ctx context.Context, roomID uint) (int64, error)
	Create(ctx context.Context, booking *models.Booking) error
	UpdateRoom(ctx context.Context, bookingID, roomID uint) (*models.Booking, error)
}

type PaymentRepository interface {
	FindByTicketID(ctx context.Context, ticketID uint) (*models.Payment, error)
	CreateAndMarkTicketPaid(ctx context.Context, payment *models.Payment) error
}

// Repositories bundles every repository so it can be passed around as one
// dependency and swapped for a test double.
type Repositories struct {
	Users       UserRepository
	Sessions    SessionRepository
	Enrollments EnrollmentRepository
	Tickets     TicketRepository
	Hotels      HotelRepository
	Rooms       RoomRepository
	Bookings    BookingRepository
	Payments    PaymentRepository
}

// Migrate creates or updates the tables for every model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{}, &models.Session{},
		&models.Enrollment{}, &models.Address{},
		&models.TicketType{}, &models.Ticket{},
		&models.Hotel{}, &models.Room{}, &models.Booking{},
		&models.Payment{},
	)
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Users:       NewUserRepository(db),
		Sessions:    NewSessionRepository(db),
		Enrollments: NewEnrollmentRepository(db),
		Tickets:     NewTicketRepository(db),
		Hotels:      NewHotelRepository(db),
		Rooms:       NewRoomRepository(db),
		Bookings:    NewBookingRepository(db),
		Payments:    NewPaymentRepository(db),
	}
}

// translate maps gorm errors onto the package sentinels. The database is
// opened with TranslateError so unique violations surface as ErrDuplicatedKey.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}
