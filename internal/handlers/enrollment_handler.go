package handlers

import (
	"net/http"
	"time"

	"github.com/farellandr/eventstay/internal/helpers"
	"github.com/farellandr/eventstay/internal/models"
	"github.com/farellandr/eventstay/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type AddressRequest struct {
	CEP           string `json:"cep" binding:"required"`
	Street        string `json:"street" binding:"required"`
	City          string `json:"city" binding:"required"`
	State         string `json:"state" binding:"required,len=2"`
	Number        string `json:"number" binding:"required"`
	Neighborhood  string `json:"neighborhood" binding:"required"`
	AddressDetail string `json:"addressDetail"`
}

type EnrollmentRequest struct {
	Name     string          `json:"name" binding:"required,min=3"`
	CPF      string          `json:"cpf" binding:"required,numeric,len=11"`
	Birthday time.Time       `json:"birthday" binding:"required"`
	Phone    string          `json:"phone" binding:"required"`
	Address  *AddressRequest `json:"address" binding:"required"`
}

func (r EnrollmentRequest) toModel() *models.Enrollment {
	return &models.Enrollment{
		Name:     r.Name,
		CPF:      r.CPF,
		Birthday: r.Birthday,
		Phone:    r.Phone,
		Address: &models.Address{
			CEP:           r.Address.CEP,
			Street:        r.Address.Street,
			City:          r.Address.City,
			State:         r.Address.State,
			Number:        r.Address.Number,
			Neighborhood:  r.Address.Neighborhood,
			AddressDetail: r.Address.AddressDetail,
		},
	}
}

func GetEnrollment(s *services.EnrollmentService, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		enrollment, err := s.GetEnrollmentForUser(c.Request.Context(), userID)
		if err != nil {
			helpers.RespondWithAppError(c, log, err)
			return
		}

		c.JSON(http.StatusOK, enrollment)
	}
}

func SaveEnrollment(s *services.EnrollmentService, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		var req EnrollmentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
			return
		}

		enrollment, err := s.SaveEnrollment(c.Request.Context(), userID, req.toModel())
		if err != nil {
			helpers.RespondWithAppError(c, log, err)
			return
		}

		c.JSON(http.StatusOK, enrollment)
	}
}
