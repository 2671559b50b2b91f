package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/swiftparcel/parcel_broker_app/internal/apperrors"
	"github.com/swiftparcel/parcel_broker_app/internal/middleware"
)

// ErrorResponse is the generic error body returned by all handlers.
type ErrorResponse struct {
	Error     string `json:"error"`
	Shortfall string `json:"shortfall,omitempty"`
}

// respondError maps service errors onto HTTP responses. Every handler funnels
// its error path through here so the taxonomy stays uniform across the API.
func respondError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var insufficientFunds *apperrors.InsufficientFundsError
	if errors.As(err, &insufficientFunds) {
		c.JSON(http.StatusPaymentRequired, ErrorResponse{
			Error:     insufficientFunds.Error(),
			Shortfall: insufficientFunds.Shortfall.String(),
		})
		return
	}

	var invalidTransition *apperrors.InvalidTransitionError
	if errors.As(err, &invalidTransition) {
		c.JSON(http.StatusConflict, ErrorResponse{Error: invalidTransition.Error()})
		return
	}

	var alreadyMember *apperrors.AlreadyMemberError
	if errors.As(err, &alreadyMember) {
		c.JSON(http.StatusConflict, ErrorResponse{Error: alreadyMember.Error()})
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate), errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	default:
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code >= 400 && appErr.Code < 600 {
			logger.Error("Request failed", slog.Int("code", appErr.Code), slog.String("error", err.Error()))
			c.JSON(appErr.Code, ErrorResponse{Error: appErr.Message})
			return
		}
		logger.Error("Unhandled error in handler", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}
}

// requestingUserID pulls the authenticated user ID out of the request
// context. Aborts with 401 when the auth middleware did not run.
func requestingUserID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return "", false
	}
	return userID, true
}
