package repository

import (
	"context"

	"github.com/farellandr/eventstay/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) FindByID(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).First(&booking, id).Error; err != nil {
		return nil, translate(err)
	}
	return &booking, nil
}

// FindByUserID returns the user's newest booking with its room.
func (r *bookingRepository) FindByUserID(ctx context.Context, userID uint) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).
		Preload("Room").
		Where("user_id = ?", userID).
		Order("id DESC").
		First(&booking).Error
	if err != nil {
		return nil, translate(err)
	}
	return &booking, nil
}

func (r *bookingRepository) CountByRoomID(ctx context.Context, roomID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Booking{}).Where("room_id = ?", roomID).Count(&count).Error; err != nil {
		return 0, translate(err)
	}
	return count, nil
}

// Create inserts the booking while holding a row lock on the room, so the
// capacity check and the insert cannot interleave with another request.
func (r *bookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	return translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockRoomWithCapacity(tx, booking.RoomID); err != nil {
			return err
		}
		return tx.Omit("Room", "User").Create(booking).Error
	}))
}

func (r *bookingRepository) UpdateRoom(ctx context.Context, bookingID, roomID uint) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockRoomWithCapacity(tx, roomID); err != nil {
			return err
		}
		if err := tx.First(&booking, bookingID).Error; err != nil {
			return err
		}
		return tx.Model(&booking).Update("room_id", roomID).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	booking.RoomID = roomID
	return &booking, nil
}

func lockRoomWithCapacity(tx *gorm.DB, roomID uint) error {
	var room models.Room
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&room, roomID).Error; err != nil {
		return err
	}

	var count int64
	if err := tx.Model(&models.Booking{}).Where("room_id = ?", roomID).Count(&count).Error; err != nil {
		return err
	}
	if count >= int64(room.Capacity) {
		return ErrRoomFull
	}
	return nil
}
