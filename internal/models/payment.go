package models

import "time"

// Payment stores only the card issuer and the last four digits of the card.
type Payment struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	TicketID       uint      `gorm:"uniqueIndex;not null" json:"ticketId"`
	Ticket         *Ticket   `gorm:"foreignKey:TicketID" json:"-"`
	Value          int       `gorm:"not null" json:"value"`
	CardIssuer     string    `gorm:"not null" json:"cardIssuer"`
	CardLastDigits string    `gorm:"type:varchar(4);not null" json:"cardLastDigits"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
