package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/churrascometro/churrascometro/internal/repository"
	"github.com/churrascometro/churrascometro/internal/services/planner"
	"github.com/churrascometro/churrascometro/internal/services/shopping"
)

var badRequest = []error{
	planner.ErrNoGuests,
	planner.ErrInvalidName,
	planner.ErrInvalidInput,
	planner.ErrInvalidPrice,
	planner.ErrInvalidBudget,
	shopping.ErrInvalidName,
}

var notFound = []error{
	repository.ErrNotFound,
	planner.ErrUnknownItem,
	shopping.ErrUnknownItem,
	shopping.ErrNoShoppingList,
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	for _, target := range badRequest {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	for _, target := range notFound {
		if errors.Is(err, target) {
			return http.StatusNotFound
		}
	}
	if errors.Is(err, shopping.ErrDuplicateStore) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func writeError(c *gin.Context, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "route", c.FullPath(), "error", err)
		msg = "internal error"
	}
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

func badBody(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
}
