package models

import "time"

type Enrollment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	CPF       string    `gorm:"not null" json:"cpf"`
	Birthday  time.Time `gorm:"not null" json:"birthday"`
	Phone     string    `gorm:"not null" json:"phone"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"userId"`
	User      *User     `gorm:"foreignKey:UserID" json:"-"`
	Address   *Address  `gorm:"foreignKey:EnrollmentID" json:"address,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Address struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	CEP           string    `gorm:"not null" json:"cep"`
	Street        string    `gorm:"not null" json:"street"`
	City          string    `gorm:"not null" json:"city"`
	State         string    `gorm:"not null" json:"state"`
	Number        string    `gorm:"not null" json:"number"`
	Neighborhood  string    `gorm:"not null" json:"neighborhood"`
	AddressDetail string    `json:"addressDetail"`
	EnrollmentID  uint      `gorm:"uniqueIndex;not null" json:"enrollmentId"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
