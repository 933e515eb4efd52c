package handlers

import (
	"net/http"

	"github.com/farellandr/eventstay/internal/helpers"
	"github.com/farellandr/eventstay/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type TicketRequest struct {
	TicketTypeID uint `json:"ticketTypeId" binding:"required"`
}

type VerifyPassRequest struct {
	Data string `json:"data" binding:"required"`
}

func ListTicketTypes(s *services.TicketService, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		types, err := s.ListTicketTypes(c.Request.Context())
		if err != nil {
			helpers.RespondWithAppError(c, log, err)
			return
		}

		c.JSON(http.StatusOK, types)
	}
}

func GetTicket(s *services.TicketService, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		ticket, err := s.GetTicketForUser(c.Request.Context(), userID)
		if err != nil {
			helpers.RespondWithAppError(c, log, err)
			return
		}

		c.JSON(http.StatusOK, ticket)
	}
}

func CreateTicket(s *services.TicketService, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		var req TicketRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
			return
		}

		ticket, err := s.CreateTicket(c.Request.Context(), userID, req.TicketTypeID)
		if err != nil {
			helpers.RespondWithAppError(c, log, err)
			return
		}

		c.JSON(http.StatusCreated, ticket)
	}
}

func GetTicketPass(s *services.TicketService, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		png, err := s.GetTicketPass(c.Request.Context(), userID)
		if err != nil {
			helpers.RespondWithAppError(c, log, err)
			return
		}

		c.Data(http.StatusOK, "image/png", png)
	}
}

func VerifyTicketPass(s *services.TicketService, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req VerifyPassRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
			return
		}

		ticket, err := s.VerifyTicketPass(c.Request.Context(), req.Data)
		if err != nil {
			helpers.RespondWithAppError(c, log, err)
			return
		}

		c.JSON(http.StatusOK, ticket)
	}
}
