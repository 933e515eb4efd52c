package services

import (
	"context"
	"errors"
	"time"

	"github.com/farellandr/eventstay/internal/apperrors"
	"github.com/farellandr/eventstay/internal/helpers"
	"github.com/farellandr/eventstay/internal/models"
	"github.com/farellandr/eventstay/internal/queue"
	"github.com/farellandr/eventstay/internal/repository"
	"github.com/sirupsen/logrus"
)

type PaymentPublisher interface {
	PublishPaymentProcessed(ctx context.Context, event queue.PaymentProcessedEvent) error
}

type PaymentService struct {
	tickets     repository.TicketRepository
	enrollments repository.EnrollmentRepository
	payments    repository.PaymentRepository
	publisher   PaymentPublisher
	log         *logrus.Logger
}

// NewPaymentService accepts a nil publisher; payments are then recorded without events.
func NewPaymentService(repos *repository.Repositories, publisher PaymentPublisher, log *logrus.Logger) *PaymentService {
	return &PaymentService{
		tickets:     repos.Tickets,
		enrollments: repos.Enrollments,
		payments:    repos.Payments,
		publisher:   publisher,
		log:         log,
	}
}

type CardData struct {
	Issuer string
	Number string
}

// RecordPayment charges the ticket's price and marks the ticket PAID. Only the
// issuer and the last four card digits are stored.
func (s *PaymentService) RecordPayment(ctx context.Context, userID, ticketID uint, card CardData) (*models.Payment, error) {
	ticket, err := s.authorizeTicket(ctx, userID, ticketID)
	if err != nil {
		return nil, err
	}

	ticketType, err := s.tickets.FindTypeByID(ctx, ticket.TicketTypeID)
	if err != nil {
		return nil, apperrors.Internal("find ticket type", err)
	}

	payment := &models.Payment{
		TicketID:       ticket.ID,
		Value:          ticketType.Price,
		CardIssuer:     card.Issuer,
		CardLastDigits: helpers.CardLastDigits(card.Number),
	}
	if err := s.payments.CreateAndMarkTicketPaid(ctx, payment); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.Conflict("ticket has already been paid")
		}
		return nil, apperrors.Internal("record payment", err)
	}

	s.publishProcessed(ctx, userID, payment)
	return payment, nil
}

func (s *PaymentService) GetPayment(ctx context.Context, userID, ticketID uint) (*models.Payment, error) {
	if _, err := s.authorizeTicket(ctx, userID, ticketID); err != nil {
		return nil, err
	}

	payment, err := s.payments.FindByTicketID(ctx, ticketID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("payment not found")
	}
	if err != nil {
		return nil, apperrors.Internal("find payment", err)
	}
	return payment, nil
}

// authorizeTicket loads the ticket and checks it belongs to the user's enrollment.
func (s *PaymentService) authorizeTicket(ctx context.Context, userID, ticketID uint) (*models.Ticket, error) {
	ticket, err := s.tickets.FindByID(ctx, ticketID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("ticket not found")
	}
	if err != nil {
		return nil, apperrors.Internal("find ticket", err)
	}

	enrollment, err := s.enrollments.FindByID(ctx, ticket.EnrollmentID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.Unauthorized("ticket does not belong to user")
	}
	if err != nil {
		return nil, apperrors.Internal("find enrollment", err)
	}
	if enrollment.UserID != userID {
		return nil, apperrors.Unauthorized("ticket does not belong to user")
	}
	return ticket, nil
}

func (s *PaymentService) publishProcessed(ctx context.Context, userID uint, payment *models.Payment) {
	if s.publisher == nil {
		return
	}
	event := queue.PaymentProcessedEvent{
		PaymentID:   payment.ID,
		TicketID:    payment.TicketID,
		UserID:      userID,
		Value:       payment.Value,
		CardIssuer:  payment.CardIssuer,
		ProcessedAt: time.Now().UTC(),
	}
	if err := s.publisher.PublishPaymentProcessed(ctx, event); err != nil {
		s.log.WithError(err).WithField("payment_id", payment.ID).Warn("payment event not published")
	}
}
