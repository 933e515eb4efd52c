package services

import (
	"context"
	"errors"

	"github.com/farellandr/eventstay/internal/apperrors"
	"github.com/farellandr/eventstay/internal/helpers"
	"github.com/farellandr/eventstay/internal/models"
	"github.com/farellandr/eventstay/internal/repository"
	"github.com/skip2/go-qrcode"
)

const ticketPassSize = 256

type TicketService struct {
	enrollments repository.EnrollmentRepository
	tickets     repository.TicketRepository
	passSecret  string
}

func NewTicketService(repos *repository.Repositories, passSecret string) *TicketService {
	return &TicketService{
		enrollments: repos.Enrollments,
		tickets:     repos.Tickets,
		passSecret:  passSecret,
	}
}

func (s *TicketService) ListTicketTypes(ctx context.Context) ([]models.TicketType, error) {
	types, err := s.tickets.ListTypes(ctx)
	if err != nil {
		return nil, apperrors.Internal("list ticket types", err)
	}
	return types, nil
}

func (s *TicketService) GetTicketForUser(ctx context.Context, userID uint) (*models.Ticket, error) {
	enrollment, err := s.findEnrollment(ctx, userID)
	if err != nil {
		return nil, err
	}

	ticket, err := s.tickets.FindByEnrollmentID(ctx, enrollment.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("ticket not found")
	}
	if err != nil {
		return nil, apperrors.Internal("find ticket", err)
	}
	return ticket, nil
}

// CreateTicket reserves a ticket of the given type. An enrollment holds at
// most one ticket.
func (s *TicketService) CreateTicket(ctx context.Context, userID, ticketTypeID uint) (*models.Ticket, error) {
	enrollment, err := s.findEnrollment(ctx, userID)
	if err != nil {
		return nil, err
	}

	_, err = s.tickets.FindByEnrollmentID(ctx, enrollment.ID)
	if err == nil {
		return nil, apperrors.Conflict("enrollment already has a ticket")
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.Internal("find ticket", err)
	}

	if _, err := s.tickets.FindTypeByID(ctx, ticketTypeID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("ticket type not found")
		}
		return nil, apperrors.Internal("find ticket type", err)
	}

	ticket := &models.Ticket{
		Status:       models.TicketStatusReserved,
		TicketTypeID: ticketTypeID,
		EnrollmentID: enrollment.ID,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.Conflict("enrollment already has a ticket")
		}
		return nil, apperrors.Internal("create ticket", err)
	}
	return ticket, nil
}

// GetTicketPass renders a signed QR code for the user's paid ticket as PNG.
func (s *TicketService) GetTicketPass(ctx context.Context, userID uint) ([]byte, error) {
	ticket, err := s.GetTicketForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !ticket.IsPaid() {
		return nil, apperrors.PaymentRequired("ticket has not been paid")
	}

	data := helpers.EncodeTicketPass(ticket.ID, ticket.EnrollmentID, s.passSecret)
	png, err := qrcode.Encode(data, qrcode.Medium, ticketPassSize)
	if err != nil {
		return nil, apperrors.Internal("encode ticket pass", err)
	}
	return png, nil
}

func (s *TicketService) VerifyTicketPass(ctx context.Context, data string) (*models.Ticket, error) {
	pass, err := helpers.ParseTicketPass(data)
	if err != nil {
		return nil, apperrors.BadRequest(err.Error())
	}
	if !pass.Valid(s.passSecret) {
		return nil, apperrors.Unauthorized("ticket pass signature is invalid")
	}

	ticket, err := s.tickets.FindByID(ctx, pass.TicketID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("ticket not found")
	}
	if err != nil {
		return nil, apperrors.Internal("find ticket", err)
	}
	if ticket.EnrollmentID != pass.EnrollmentID {
		return nil, apperrors.Unauthorized("ticket pass does not match the ticket")
	}
	if !ticket.IsPaid() {
		return nil, apperrors.PaymentRequired("ticket has not been paid")
	}
	return ticket, nil
}

func (s *TicketService) findEnrollment(ctx context.Context, userID uint) (*models.Enrollment, error) {
	enrollment, err := s.enrollments.FindByUserID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("enrollment not found")
	}
	if err != nil {
		return nil, apperrors.Internal("find enrollment", err)
	}
	return enrollment, nil
}
