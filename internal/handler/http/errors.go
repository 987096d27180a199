package http

import (
	"errors"
	"net/http"

	"trivia-arena/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func HandleServiceError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrAuthenticationFailed) {
		ErrorResponse(c, http.StatusUnauthorized, err.Error())
	} else if errors.Is(err, service.ErrRegistrationFailed) || errors.Is(err, service.ErrInvalidQuestion) || errors.Is(err, service.ErrInvalidReport) {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
	} else if errors.Is(err, service.ErrUserNotFound) || errors.Is(err, service.ErrMatchNotFound) {
		ErrorResponse(c, http.StatusNotFound, err.Error())
	} else if errors.Is(err, service.ErrAlreadyInMatch) || errors.Is(err, service.ErrMatchAlreadyStarted) || errors.Is(err, service.ErrRoomFinalized) {
		ErrorResponse(c, http.StatusConflict, err.Error())
	} else if errors.Is(err, service.ErrNoQuestions) {
		ErrorResponse(c, http.StatusServiceUnavailable, err.Error())
	} else {
		// Log the internal error for debugging
		logrus.WithError(err).Error("Unhandled internal server error")
		ErrorResponse(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
