// Package memory is an in-process implementation of the repository interfaces.
// It mirrors the constraints the PostgreSQL schema enforces (unique keys,
// room capacity under lock) and is used as the storage double in tests.
package memory

import (
	"sync"
	"time"

	"github.com/farellandr/eventstay/internal/models"
	"github.com/farellandr/eventstay/internal/repository"
)

type Store struct {
	mu sync.Mutex
	id uint

	users       map[uint]models.User
	sessions    map[uint]models.Session
	enrollments map[uint]models.Enrollment
	addresses   map[uint]models.Address
	ticketTypes map[uint]models.TicketType
	tickets     map[uint]models.Ticket
	hotels      map[uint]models.Hotel
	rooms       map[uint]models.Room
	bookings    map[uint]models.Booking
	payments    map[uint]models.Payment
}

func NewStore() *Store {
	return &Store{
		users:       make(map[uint]models.User),
		sessions:    make(map[uint]models.Session),
		enrollments: make(map[uint]models.Enrollment),
		addresses:   make(map[uint]models.Address),
		ticketTypes: make(map[uint]models.TicketType),
		tickets:     make(map[uint]models.Ticket),
		hotels:      make(map[uint]models.Hotel),
		rooms:       make(map[uint]models.Room),
		bookings:    make(map[uint]models.Booking),
		payments:    make(map[uint]models.Payment),
	}
}

func (s *Store) Repositories() *repository.Repositories {
	return &repository.Repositories{
		Users:       &userRepository{s},
		Sessions:    &sessionRepository{s},
		Enrollments: &enrollmentRepository{s},
		Tickets:     &ticketRepository{s},
		Hotels:      &hotelRepository{s},
		Rooms:       &roomRepository{s},
		Bookings:    &bookingRepository{s},
		Payments:    &paymentRepository{s},
	}
}

// nextID hands out ids from a single sequence so ids never collide across tables.
func (s *Store) nextID() uint {
	s.id++
	return s.id
}

func now() time.Time {
	return time.Now().UTC()
}

func (s *Store) AddUser(email string) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := models.User{ID: s.nextID(), Email: email, CreatedAt: now(), UpdatedAt: now()}
	s.users[u.ID] = u
	return u
}

func (s *Store) AddEnrollment(userID uint) models.Enrollment {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := models.Enrollment{
		ID:        s.nextID(),
		Name:      "Test Enrollee",
		CPF:       "00000000000",
		Birthday:  time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		Phone:     "(21) 99999-9999",
		UserID:    userID,
		CreatedAt: now(),
		UpdatedAt: now(),
	}
	s.enrollments[e.ID] = e
	return e
}

func (s *Store) AddTicketType(tt models.TicketType) models.TicketType {
	s.mu.Lock()
	defer s.mu.Unlock()
	tt.ID = s.nextID()
	tt.CreatedAt, tt.UpdatedAt = now(), now()
	s.ticketTypes[tt.ID] = tt
	return tt
}

func (s *Store) AddTicket(enrollmentID, ticketTypeID uint, status models.TicketStatus) models.Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := models.Ticket{
		ID:           s.nextID(),
		Status:       status,
		TicketTypeID: ticketTypeID,
		EnrollmentID: enrollmentID,
		CreatedAt:    now(),
		UpdatedAt:    now(),
	}
	s.tickets[t.ID] = t
	return t
}

func (s *Store) AddHotel(name string) models.Hotel {
	s.mu.Lock()
	defer s.mu.Unlock()
	h := models.Hotel{ID: s.nextID(), Name: name, Image: "https://example.com/" + name + ".png", CreatedAt: now(), UpdatedAt: now()}
	s.hotels[h.ID] = h
	return h
}

func (s *Store) AddRoom(hotelID uint, name string, capacity int) models.Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := models.Room{ID: s.nextID(), Name: name, Capacity: capacity, HotelID: hotelID, CreatedAt: now(), UpdatedAt: now()}
	s.rooms[r.ID] = r
	return r
}

func (s *Store) AddBooking(userID, roomID uint) models.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := models.Booking{ID: s.nextID(), UserID: userID, RoomID: roomID, CreatedAt: now(), UpdatedAt: now()}
	s.bookings[b.ID] = b
	return b
}

// Ticket returns a stored ticket for assertions.
func (s *Store) Ticket(id uint) (models.Ticket, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tickets[id]
	return t, ok
}

func (s *Store) Booking(id uint) (models.Booking, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	return b, ok
}

func (s *Store) countBookings(roomID uint) int64 {
	var count int64
	for _, b := range s.bookings {
		if b.RoomID == roomID {
			count++
		}
	}
	return count
}

func (s *Store) ticketWithType(t models.Ticket) *models.Ticket {
	if tt, ok := s.ticketTypes[t.TicketTypeID]; ok {
		t.TicketType = &tt
	}
	return &t
}
