package services

import (
	"io"

	"github.com/farellandr/eventstay/internal/models"
	"github.com/farellandr/eventstay/internal/repository"
	"github.com/farellandr/eventstay/internal/repository/memory"
	"github.com/sirupsen/logrus"
)

type fixture struct {
	store *memory.Store
	repos *repository.Repositories
}

func newFixture() *fixture {
	store := memory.NewStore()
	return &fixture{store: store, repos: store.Repositories()}
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// holder creates a user with an enrollment and a ticket of the given kind.
func (f *fixture) holder(email string, status models.TicketStatus, includesHotel, isRemote bool) (models.User, models.Enrollment, models.Ticket) {
	user := f.store.AddUser(email)
	enrollment := f.store.AddEnrollment(user.ID)
	ticketType := f.store.AddTicketType(models.TicketType{
		Name:          email + "-type",
		Price:         60000,
		IncludesHotel: includesHotel,
		IsRemote:      isRemote,
	})
	ticket := f.store.AddTicket(enrollment.ID, ticketType.ID, status)
	return user, enrollment, ticket
}

func (f *fixture) eligibleHolder(email string) models.User {
	user, _, _ := f.holder(email, models.TicketStatusPaid, true, false)
	return user
}
