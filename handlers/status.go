package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-nlpdocs/nlp"
	"go-nlpdocs/types"
)

// statusFor maps an extraction failure onto an HTTP status code.
func statusFor(err error) int {
	switch {
	case errors.Is(err, types.ErrUnsupportedTask), errors.Is(err, types.ErrInvalidOptions):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrInputTooLong):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, types.ErrServiceUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func abortWithError(c *gin.Context, err error) {
	body := gin.H{"error": err.Error()}
	var extErr *nlp.ExtractionError
	if errors.As(err, &extErr) {
		body["request_id"] = extErr.RequestID
	}
	c.AbortWithStatusJSON(statusFor(err), body)
}
