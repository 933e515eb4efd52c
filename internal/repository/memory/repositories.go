package memory

import (
	"context"
	"sort"

	"github.com/farellandr/eventstay/internal/models"
	"github.com/farellandr/eventstay/internal/repository"
)

type userRepository struct{ s *Store }

func (r *userRepository) Create(_ context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	user.ID = r.s.nextID()
	user.CreatedAt, user.UpdatedAt = now(), now()
	r.s.users[user.ID] = *user
	return nil
}

func (r *userRepository) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

type sessionRepository struct{ s *Store }

func (r *sessionRepository) Create(_ context.Context, session *models.Session) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.sessions {
		if existing.Token == session.Token {
			return repository.ErrDuplicate
		}
	}
	session.ID = r.s.nextID()
	session.CreatedAt, session.UpdatedAt = now(), now()
	r.s.sessions[session.ID] = *session
	return nil
}

func (r *sessionRepository) FindByToken(_ context.Context, token string) (*models.Session, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, session := range r.s.sessions {
		if session.Token == token {
			return &session, nil
		}
	}
	return nil, repository.ErrNotFound
}

type enrollmentRepository struct{ s *Store }

func (r *enrollmentRepository) withAddress(e models.Enrollment) *models.Enrollment {
	for _, a := range r.s.addresses {
		if a.EnrollmentID == e.ID {
			address := a
			e.Address = &address
			break
		}
	}
	return &e
}

func (r *enrollmentRepository) FindByID(_ context.Context, id uint) (*models.Enrollment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.enrollments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return r.withAddress(e), nil
}

func (r *enrollmentRepository) FindByUserID(_ context.Context, userID uint) (*models.Enrollment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.enrollments {
		if e.UserID == userID {
			return r.withAddress(e), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *enrollmentRepository) Save(_ context.Context, enrollment *models.Enrollment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	address := enrollment.Address
	stored := *enrollment
	stored.Address = nil
	stored.UpdatedAt = now()
	for _, e := range r.s.enrollments {
		if e.UserID == enrollment.UserID {
			stored.ID = e.ID
			stored.CreatedAt = e.CreatedAt
		}
	}
	if stored.ID == 0 {
		stored.ID = r.s.nextID()
		stored.CreatedAt = now()
	}
	r.s.enrollments[stored.ID] = stored

	if address != nil {
		a := *address
		a.EnrollmentID = stored.ID
		a.UpdatedAt = now()
		for _, existing := range r.s.addresses {
			if existing.EnrollmentID == stored.ID {
				a.ID = existing.ID
				a.CreatedAt = existing.CreatedAt
			}
		}
		if a.ID == 0 {
			a.ID = r.s.nextID()
			a.CreatedAt = now()
		}
		r.s.addresses[a.ID] = a
		stored.Address = &a
	}

	*enrollment = stored
	return nil
}

type ticketRepository struct{ s *Store }

func (r *ticketRepository) ListTypes(_ context.Context) ([]models.TicketType, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	types := make([]models.TicketType, 0, len(r.s.ticketTypes))
	for _, tt := range r.s.ticketTypes {
		types = append(types, tt)
	}
	sort.Slice(types, func(i, j int) bool { return types[i].ID < types[j].ID })
	return types, nil
}

func (r *ticketRepository) FindTypeByID(_ context.Context, id uint) (*models.TicketType, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	tt, ok := r.s.ticketTypes[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &tt, nil
}

func (r *ticketRepository) FindByID(_ context.Context, id uint) (*models.Ticket, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tickets[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return r.s.ticketWithType(t), nil
}

func (r *ticketRepository) FindByEnrollmentID(_ context.Context, enrollmentID uint) (*models.Ticket, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, t := range r.s.tickets {
		if t.EnrollmentID == enrollmentID {
			return r.s.ticketWithType(t), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *ticketRepository) Create(_ context.Context, ticket *models.Ticket) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, t := range r.s.tickets {
		if t.EnrollmentID == ticket.EnrollmentID {
			return repository.ErrDuplicate
		}
	}
	stored := *ticket
	stored.TicketType = nil
	stored.ID = r.s.nextID()
	stored.CreatedAt, stored.UpdatedAt = now(), now()
	r.s.tickets[stored.ID] = stored
	*ticket = *r.s.ticketWithType(stored)
	return nil
}

type hotelRepository struct{ s *Store }

func (r *hotelRepository) List(_ context.Context) ([]models.Hotel, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	hotels := make([]models.Hotel, 0, len(r.s.hotels))
	for _, h := range r.s.hotels {
		hotels = append(hotels, h)
	}
	sort.Slice(hotels, func(i, j int) bool { return hotels[i].ID < hotels[j].ID })
	return hotels, nil
}

func (r *hotelRepository) FindByIDWithRooms(_ context.Context, id uint) (*models.Hotel, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	h, ok := r.s.hotels[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	h.Rooms = []models.Room{}
	for _, room := range r.s.rooms {
		if room.HotelID == id {
			h.Rooms = append(h.Rooms, room)
		}
	}
	sort.Slice(h.Rooms, func(i, j int) bool { return h.Rooms[i].ID < h.Rooms[j].ID })
	return &h, nil
}

type roomRepository struct{ s *Store }

func (r *roomRepository) FindByID(_ context.Context, id uint) (*models.Room, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	room, ok := r.s.rooms[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &room, nil
}

type bookingRepository struct{ s *Store }

func (r *bookingRepository) FindByID(_ context.Context, id uint) (*models.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &b, nil
}

func (r *bookingRepository) FindByUserID(_ context.Context, userID uint) (*models.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var newest *models.Booking
	for _, b := range r.s.bookings {
		if b.UserID == userID && (newest == nil || b.ID > newest.ID) {
			booking := b
			newest = &booking
		}
	}
	if newest == nil {
		return nil, repository.ErrNotFound
	}
	if room, ok := r.s.rooms[newest.RoomID]; ok {
		newest.Room = &room
	}
	return newest, nil
}

func (r *bookingRepository) CountByRoomID(_ context.Context, roomID uint) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.countBookings(roomID), nil
}

func (r *bookingRepository) checkCapacity(roomID uint) error {
	room, ok := r.s.rooms[roomID]
	if !ok {
		return repository.ErrNotFound
	}
	if r.s.countBookings(roomID) >= int64(room.Capacity) {
		return repository.ErrRoomFull
	}
	return nil
}

func (r *bookingRepository) Create(_ context.Context, booking *models.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.checkCapacity(booking.RoomID); err != nil {
		return err
	}
	stored := *booking
	stored.Room = nil
	stored.ID = r.s.nextID()
	stored.CreatedAt, stored.UpdatedAt = now(), now()
	r.s.bookings[stored.ID] = stored
	*booking = stored
	return nil
}

func (r *bookingRepository) UpdateRoom(_ context.Context, bookingID, roomID uint) (*models.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.checkCapacity(roomID); err != nil {
		return nil, err
	}
	b, ok := r.s.bookings[bookingID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	b.RoomID = roomID
	b.UpdatedAt = now()
	r.s.bookings[bookingID] = b
	return &b, nil
}

type paymentRepository struct{ s *Store }

func (r *paymentRepository) FindByTicketID(_ context.Context, ticketID uint) (*models.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.payments {
		if p.TicketID == ticketID {
			return &p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *paymentRepository) CreateAndMarkTicketPaid(_ context.Context, payment *models.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.payments {
		if p.TicketID == payment.TicketID {
			return repository.ErrDuplicate
		}
	}
	ticket, ok := r.s.tickets[payment.TicketID]
	if !ok {
		return repository.ErrNotFound
	}

	payment.ID = r.s.nextID()
	payment.CreatedAt, payment.UpdatedAt = now(), now()
	r.s.payments[payment.ID] = *payment

	ticket.Status = models.TicketStatusPaid
	ticket.UpdatedAt = now()
	r.s.tickets[ticket.ID] = ticket
	return nil
}
