package repository

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/farellandr/eventstay/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a migrated SQLite database on a single connection, so
// transactions run one at a time the way the room row lock orders them in
// PostgreSQL.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "eventstay.db")), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, Migrate(db))
	return db
}

type seed struct {
	t  *testing.T
	db *gorm.DB
	n  int
}

func (s *seed) create(value any) {
	s.t.Helper()
	require.NoError(s.t, s.db.Create(value).Error)
}

func (s *seed) user() models.User {
	s.n++
	u := models.User{Email: fmt.Sprintf("user%d@example.com", s.n), Password: "hash"}
	s.create(&u)
	return u
}

func (s *seed) enrollment(userID uint) models.Enrollment {
	e := models.Enrollment{
		Name:     "Test Enrollee",
		CPF:      "12345678909",
		Birthday: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		Phone:    "(21) 99999-9999",
		UserID:   userID,
	}
	s.create(&e)
	return e
}

func (s *seed) ticket(enrollmentID uint) models.Ticket {
	s.n++
	tt := models.TicketType{Name: fmt.Sprintf("type-%d", s.n), Price: 60000, IncludesHotel: true}
	s.create(&tt)
	ticket := models.Ticket{Status: models.TicketStatusReserved, TicketTypeID: tt.ID, EnrollmentID: enrollmentID}
	s.create(&ticket)
	return ticket
}

func (s *seed) room(capacity int) models.Room {
	s.n++
	hotel := models.Hotel{Name: fmt.Sprintf("hotel-%d", s.n), Image: "https://example.com/h.png"}
	s.create(&hotel)
	room := models.Room{Name: "101", Capacity: capacity, HotelID: hotel.ID}
	s.create(&room)
	return room
}

func TestTranslate(t *testing.T) {
	other := errors.New("connection reset")

	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"not found", gorm.ErrRecordNotFound, ErrNotFound},
		{"wrapped not found", fmt.Errorf("query: %w", gorm.ErrRecordNotFound), ErrNotFound},
		{"duplicate", gorm.ErrDuplicatedKey, ErrDuplicate},
		{"room full passes through", ErrRoomFull, ErrRoomFull},
		{"other passes through", other, other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, translate(tt.in))
		})
	}
}

func TestBookingCreateRespectsCapacity(t *testing.T) {
	db := newTestDB(t)
	s := &seed{t: t, db: db}
	repo := NewBookingRepository(db)
	ctx := context.Background()
	room := s.room(1)

	first := &models.Booking{UserID: s.user().ID, RoomID: room.ID}
	require.NoError(t, repo.Create(ctx, first))
	assert.NotZero(t, first.ID)

	err := repo.Create(ctx, &models.Booking{UserID: s.user().ID, RoomID: room.ID})
	assert.ErrorIs(t, err, ErrRoomFull)

	count, err := repo.CountByRoomID(ctx, room.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	err = repo.Create(ctx, &models.Booking{UserID: s.user().ID, RoomID: 9999})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBookingUpdateRoomRespectsCapacity(t *testing.T) {
	db := newTestDB(t)
	s := &seed{t: t, db: db}
	repo := NewBookingRepository(db)
	ctx := context.Background()
	from, full, free := s.room(1), s.room(1), s.room(2)

	booking := &models.Booking{UserID: s.user().ID, RoomID: from.ID}
	require.NoError(t, repo.Create(ctx, booking))
	require.NoError(t, repo.Create(ctx, &models.Booking{UserID: s.user().ID, RoomID: full.ID}))

	_, err := repo.UpdateRoom(ctx, booking.ID, full.ID)
	assert.ErrorIs(t, err, ErrRoomFull)

	stored, err := repo.FindByID(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, from.ID, stored.RoomID)

	updated, err := repo.UpdateRoom(ctx, booking.ID, free.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.ID, updated.ID)
	assert.Equal(t, free.ID, updated.RoomID)

	_, err = repo.UpdateRoom(ctx, 9999, free.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBookingFindByUserIDReturnsNewestWithRoom(t *testing.T) {
	db := newTestDB(t)
	s := &seed{t: t, db: db}
	repo := NewBookingRepository(db)
	ctx := context.Background()
	user := s.user()
	older, newer := s.room(2), s.room(2)

	require.NoError(t, repo.Create(ctx, &models.Booking{UserID: user.ID, RoomID: older.ID}))
	require.NoError(t, repo.Create(ctx, &models.Booking{UserID: user.ID, RoomID: newer.ID}))

	booking, err := repo.FindByUserID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, booking.Room)
	assert.Equal(t, newer.ID, booking.Room.ID)

	_, err = repo.FindByUserID(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBookingCreateConcurrentLastBed(t *testing.T) {
	db := newTestDB(t)
	s := &seed{t: t, db: db}
	repo := NewBookingRepository(db)
	room := s.room(1)

	const guests = 6
	userIDs := make([]uint, guests)
	for i := range userIDs {
		userIDs[i] = s.user().ID
	}

	var wg sync.WaitGroup
	errs := make(chan error, guests)
	for _, userID := range userIDs {
		wg.Add(1)
		go func(userID uint) {
			defer wg.Done()
			errs <- repo.Create(context.Background(), &models.Booking{UserID: userID, RoomID: room.ID})
		}(userID)
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, ErrRoomFull)
	}
	assert.Equal(t, 1, succeeded)

	count, err := repo.CountByRoomID(context.Background(), room.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestPaymentCreateAndMarkTicketPaid(t *testing.T) {
	db := newTestDB(t)
	s := &seed{t: t, db: db}
	repo := NewPaymentRepository(db)
	tickets := NewTicketRepository(db)
	ctx := context.Background()
	ticket := s.ticket(s.enrollment(s.user().ID).ID)

	payment := &models.Payment{TicketID: ticket.ID, Value: 60000, CardIssuer: "VISA", CardLastDigits: "1111"}
	require.NoError(t, repo.CreateAndMarkTicketPaid(ctx, payment))
	assert.NotZero(t, payment.ID)

	stored, err := tickets.FindByID(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TicketStatusPaid, stored.Status)

	found, err := repo.FindByTicketID(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, payment.ID, found.ID)
}

func TestPaymentDuplicateLeavesTicketUntouched(t *testing.T) {
	db := newTestDB(t)
	s := &seed{t: t, db: db}
	repo := NewPaymentRepository(db)
	tickets := NewTicketRepository(db)
	ctx := context.Background()
	ticket := s.ticket(s.enrollment(s.user().ID).ID)

	require.NoError(t, repo.CreateAndMarkTicketPaid(ctx, &models.Payment{TicketID: ticket.ID, Value: 60000, CardIssuer: "VISA", CardLastDigits: "1111"}))
	require.NoError(t, db.Model(&models.Ticket{}).Where("id = ?", ticket.ID).Update("status", models.TicketStatusReserved).Error)

	err := repo.CreateAndMarkTicketPaid(ctx, &models.Payment{TicketID: ticket.ID, Value: 60000, CardIssuer: "MASTER", CardLastDigits: "2222"})
	assert.ErrorIs(t, err, ErrDuplicate)

	stored, err := tickets.FindByID(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TicketStatusReserved, stored.Status)

	var payments int64
	require.NoError(t, db.Model(&models.Payment{}).Count(&payments).Error)
	assert.EqualValues(t, 1, payments)
}

func TestUniqueKeysTranslateToDuplicate(t *testing.T) {
	db := newTestDB(t)
	s := &seed{t: t, db: db}
	ctx := context.Background()
	user := s.user()
	enrollment := s.enrollment(user.ID)
	ticket := s.ticket(enrollment.ID)

	err := NewUserRepository(db).Create(ctx, &models.User{Email: user.Email, Password: "hash"})
	assert.ErrorIs(t, err, ErrDuplicate)

	err = NewTicketRepository(db).Create(ctx, &models.Ticket{
		Status:       models.TicketStatusReserved,
		TicketTypeID: ticket.TicketTypeID,
		EnrollmentID: enrollment.ID,
	})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func newEnrollmentInput(userID uint, name, city string) *models.Enrollment {
	return &models.Enrollment{
		Name:     name,
		CPF:      "12345678909",
		Birthday: time.Date(1995, 5, 17, 0, 0, 0, 0, time.UTC),
		Phone:    "(21) 98888-7777",
		UserID:   userID,
		Address: &models.Address{
			CEP:          "22250-040",
			Street:       "Rua Voluntarios da Patria",
			City:         city,
			State:        "RJ",
			Number:       "100",
			Neighborhood: "Botafogo",
		},
	}
}

func TestEnrollmentSaveTwiceKeepsOneRow(t *testing.T) {
	db := newTestDB(t)
	s := &seed{t: t, db: db}
	repo := NewEnrollmentRepository(db)
	ctx := context.Background()
	user := s.user()

	first := newEnrollmentInput(user.ID, "First Name", "Rio de Janeiro")
	require.NoError(t, repo.Save(ctx, first))
	require.NotNil(t, first.Address)

	second := newEnrollmentInput(user.ID, "Second Name", "Niteroi")
	require.NoError(t, repo.Save(ctx, second))

	assert.Equal(t, first.ID, second.ID)
	assert.True(t, first.CreatedAt.Equal(second.CreatedAt))
	assert.Equal(t, "Second Name", second.Name)
	require.NotNil(t, second.Address)
	assert.Equal(t, first.Address.ID, second.Address.ID)
	assert.Equal(t, "Niteroi", second.Address.City)

	var enrollments, addresses int64
	require.NoError(t, db.Model(&models.Enrollment{}).Count(&enrollments).Error)
	require.NoError(t, db.Model(&models.Address{}).Count(&addresses).Error)
	assert.EqualValues(t, 1, enrollments)
	assert.EqualValues(t, 1, addresses)

	found, err := repo.FindByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Second Name", found.Name)
	require.NotNil(t, found.Address)
	assert.Equal(t, "Niteroi", found.Address.City)
}

func TestEnrollmentSaveFailureLeavesInputUntouched(t *testing.T) {
	db := newTestDB(t)
	s := &seed{t: t, db: db}
	repo := NewEnrollmentRepository(db)
	user := s.user()
	require.NoError(t, db.Migrator().DropTable(&models.Address{}))

	input := newEnrollmentInput(user.ID, "Guest", "Rio de Janeiro")
	address := input.Address

	err := repo.Save(context.Background(), input)
	require.Error(t, err)

	assert.Zero(t, input.ID)
	assert.Same(t, address, input.Address)

	var enrollments int64
	require.NoError(t, db.Model(&models.Enrollment{}).Count(&enrollments).Error)
	assert.EqualValues(t, 0, enrollments)
}
