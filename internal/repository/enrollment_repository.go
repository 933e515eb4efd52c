package repository

import (
	"context"

	"github.com/farellandr/eventstay/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type enrollmentRepository struct {
	db *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

func (r *enrollmentRepository) FindByID(ctx context.Context, id uint) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	if err := r.db.WithContext(ctx).Preload("Address").First(&enrollment, id).Error; err != nil {
		return nil, translate(err)
	}
	return &enrollment, nil
}

func (r *enrollmentRepository) FindByUserID(ctx context.Context, userID uint) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	if err := r.db.WithContext(ctx).Preload("Address").Where("user_id = ?", userID).First(&enrollment).Error; err != nil {
		return nil, translate(err)
	}
	return &enrollment, nil
}

// Save upserts the enrollment keyed by user and replaces its address. On
// success enrollment is overwritten with the stored row; on failure it is left
// untouched.
func (r *enrollmentRepository) Save(ctx context.Context, enrollment *models.Enrollment) error {
	var saved models.Enrollment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := *enrollment
		row.Address = nil
		err := tx.Omit(clause.Associations).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "cpf", "birthday", "phone", "updated_at"}),
		}).Create(&row).Error
		if err != nil {
			return err
		}

		var stored models.Enrollment
		if err := tx.Where("user_id = ?", row.UserID).First(&stored).Error; err != nil {
			return err
		}

		if enrollment.Address != nil {
			address := *enrollment.Address
			address.ID = 0
			address.EnrollmentID = stored.ID
			err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "enrollment_id"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"cep", "street", "city", "state", "number", "neighborhood", "address_detail", "updated_at",
				}),
			}).Create(&address).Error
			if err != nil {
				return err
			}
		}

		return tx.Preload("Address").First(&saved, stored.ID).Error
	})
	if err != nil {
		return translate(err)
	}

	*enrollment = saved
	return nil
}
