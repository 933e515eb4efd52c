package handlers

import (
	"net/http"

	"github.com/farellandr/eventstay/internal/helpers"
	"github.com/farellandr/eventstay/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type BookingRequest struct {
	RoomID uint `json:"roomId" binding:"required"`
}

func GetBooking(s *services.BookingService, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		booking, err := s.GetBookingForUser(c.Request.Context(), userID)
		if err != nil {
			helpers.RespondWithAppError(c, log, err)
			return
		}

		c.JSON(http.StatusOK, booking)
	}
}

func CreateBooking(s *services.BookingService, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		var req BookingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
			return
		}

		bookingID, err := s.CreateBooking(c.Request.Context(), userID, req.RoomID)
		if err != nil {
			helpers.RespondWithAppError(c, log, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"bookingId": bookingID})
	}
}

// ChangeRoom handles PUT /booking/:bookingId. A non-numeric id reaches the
// service as 0 and is refused there.
func ChangeRoom(s *services.BookingService, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		var req BookingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
			return
		}

		bookingID := helpers.ParseID(c.Param("bookingId"))
		updatedID, err := s.ChangeRoom(c.Request.Context(), userID, bookingID, req.RoomID)
		if err != nil {
			helpers.RespondWithAppError(c, log, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"bookingId": updatedID})
	}
}
