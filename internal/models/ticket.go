package models

import "time"

type TicketStatus string

const (
	TicketStatusReserved TicketStatus = "RESERVED"
	TicketStatusPaid     TicketStatus = "PAID"
)

type TicketType struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"unique;not null" json:"name"`
	Price         int       `gorm:"not null" json:"price"`
	IsRemote      bool      `gorm:"not null" json:"isRemote"`
	IncludesHotel bool      `gorm:"not null" json:"includesHotel"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Ticket belongs to exactly one enrollment; the unique index on EnrollmentID
// keeps it that way under concurrent creation.
type Ticket struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	Status       TicketStatus `gorm:"type:varchar(16);not null;default:'RESERVED'" json:"status"`
	TicketTypeID uint         `gorm:"not null;index" json:"ticketTypeId"`
	TicketType   *TicketType  `gorm:"foreignKey:TicketTypeID" json:"TicketType,omitempty"`
	EnrollmentID uint         `gorm:"uniqueIndex;not null" json:"enrollmentId"`
	Enrollment   *Enrollment  `gorm:"foreignKey:EnrollmentID" json:"-"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

func (t *Ticket) IsPaid() bool {
	return t.Status == TicketStatusPaid
}
