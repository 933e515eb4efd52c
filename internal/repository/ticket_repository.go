package repository

import (
	"context"

	"github.com/farellandr/eventstay/internal/models"
	"gorm.io/gorm"
)

type ticketRepository struct {
	db *gorm.DB
}

func NewTicketRepository(db *gorm.DB) TicketRepository {
	return &ticketRepository{db: db}
}

func (r *ticketRepository) ListTypes(ctx context.Context) ([]models.TicketType, error) {
	var types []models.TicketType
	if err := r.db.WithContext(ctx).Order("id").Find(&types).Error; err != nil {
		return nil, translate(err)
	}
	return types, nil
}

func (r *ticketRepository) FindTypeByID(ctx context.Context, id uint) (*models.TicketType, error) {
	var ticketType models.TicketType
	if err := r.db.WithContext(ctx).First(&ticketType, id).Error; err != nil {
		return nil, translate(err)
	}
	return &ticketType, nil
}

func (r *ticketRepository) FindByID(ctx context.Context, id uint) (*models.Ticket, error) {
	var ticket models.Ticket
	if err := r.db.WithContext(ctx).Preload("TicketType").First(&ticket, id).Error; err != nil {
		return nil, translate(err)
	}
	return &ticket, nil
}

func (r *ticketRepository) FindByEnrollmentID(ctx context.Context, enrollmentID uint) (*models.Ticket, error) {
	var ticket models.Ticket
	err := r.db.WithContext(ctx).
		Preload("TicketType").
		Where("enrollment_id = ?", enrollmentID).
		First(&ticket).Error
	if err != nil {
		return nil, translate(err)
	}
	return &ticket, nil
}

func (r *ticketRepository) Create(ctx context.Context, ticket *models.Ticket) error {
	if err := r.db.WithContext(ctx).Omit("TicketType", "Enrollment").Create(ticket).Error; err != nil {
		return translate(err)
	}
	return translate(r.db.WithContext(ctx).Preload("TicketType").First(ticket, ticket.ID).Error)
}
