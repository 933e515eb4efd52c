package handlers

import (
	"net/http"

	"github.com/farellandr/eventstay/internal/helpers"
	"github.com/farellandr/eventstay/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type SignUpRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func SignUp(s *services.AuthService, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignUpRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
			return
		}

		user, err := s.SignUp(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			helpers.RespondWithAppError(c, log, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"id":    user.ID,
			"email": user.Email,
		})
	}
}

func SignIn(s *services.AuthService, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignInRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
			return
		}

		result, err := s.SignIn(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			helpers.RespondWithAppError(c, log, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"token": result.Token,
			"user": gin.H{
				"id":    result.User.ID,
				"email": result.User.Email,
			},
		})
	}
}

// currentUserID reads the id set by the auth middleware and answers 401 when
// it is missing.
func currentUserID(c *gin.Context) (uint, bool) {
	userID, ok := helpers.UserIDFromContext(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return 0, false
	}
	return userID, true
}
