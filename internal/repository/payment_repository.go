package repository

import (
	"context"

	"github.com/farellandr/eventstay/internal/models"
	"gorm.io/gorm"
)

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) FindByTicketID(ctx context.Context, ticketID uint) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.WithContext(ctx).Where("ticket_id = ?", ticketID).First(&payment).Error; err != nil {
		return nil, translate(err)
	}
	return &payment, nil
}

// CreateAndMarkTicketPaid records the payment and flips the ticket to PAID in
// one transaction.
func (r *paymentRepository) CreateAndMarkTicketPaid(ctx context.Context, payment *models.Payment) error {
	return translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Ticket").Create(payment).Error; err != nil {
			return err
		}
		return tx.Model(&models.Ticket{}).
			Where("id = ?", payment.TicketID).
			Update("status", models.TicketStatusPaid).Error
	}))
}
