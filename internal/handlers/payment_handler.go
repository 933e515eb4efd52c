package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/farellandr/eventstay/internal/helpers"
	"github.com/farellandr/eventstay/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// CardNumber accepts the number as a JSON string or a JSON number.
type CardNumber string

func (n *CardNumber) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*n = CardNumber(s)
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return errors.New("card number must be a string or a number")
	}
	*n = CardNumber(num.String())
	return nil
}

// CardDataRequest only requires issuer and number. The remaining fields are
// checked when present and never stored.
type CardDataRequest struct {
	Issuer         string     `json:"issuer" binding:"required"`
	Number         CardNumber `json:"number" binding:"required,cardnumber"`
	Name           string     `json:"name"`
	ExpirationDate string     `json:"expirationDate"`
	CVV            string     `json:"cvv" binding:"omitempty,numeric,min=3,max=4"`
}

type PaymentRequest struct {
	TicketID uint             `json:"ticketId" binding:"required"`
	CardData *CardDataRequest `json:"cardData" binding:"required"`
}

func GetPayment(s *services.PaymentService, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		ticketID := helpers.ParseID(c.Query("ticketId"))
		if ticketID == 0 {
			helpers.RespondWithError(c, http.StatusBadRequest, "ticketId query parameter is required.")
			return
		}

		payment, err := s.GetPayment(c.Request.Context(), userID, ticketID)
		if err != nil {
			helpers.RespondWithAppError(c, log, err)
			return
		}

		c.JSON(http.StatusOK, payment)
	}
}

func ProcessPayment(s *services.PaymentService, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		var req PaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
			return
		}

		payment, err := s.RecordPayment(c.Request.Context(), userID, req.TicketID, services.CardData{
			Issuer: req.CardData.Issuer,
			Number: string(req.CardData.Number),
		})
		if err != nil {
			helpers.RespondWithAppError(c, log, err)
			return
		}

		c.JSON(http.StatusOK, payment)
	}
}
