package handlers

import (
	"net/http"

	"github.com/farellandr/eventstay/internal/helpers"
	"github.com/farellandr/eventstay/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func ListHotels(s *services.HotelService, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		hotels, err := s.ListHotels(c.Request.Context(), userID)
		if err != nil {
			helpers.RespondWithAppError(c, log, err)
			return
		}

		c.JSON(http.StatusOK, hotels)
	}
}

func GetHotel(s *services.HotelService, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		hotelID := helpers.ParseID(c.Param("hotelId"))
		hotel, err := s.GetHotelDetail(c.Request.Context(), hotelID, userID)
		if err != nil {
			helpers.RespondWithAppError(c, log, err)
			return
		}

		c.JSON(http.StatusOK, hotel)
	}
}
