package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"trip_planner/internal/importer"
	"trip_planner/internal/planner"
)

// respondError maps domain errors to HTTP statuses. Every error is recovered
// here and surfaced as a JSON notice; none are fatal to the process.
func respondError(c *gin.Context, err error) {
	var validationErr *planner.ValidationError
	var parseErr *importer.ParseError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Reason})
	case errors.Is(err, planner.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, planner.ErrNoActiveRoute):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, planner.ErrInsufficientWaypoints):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.As(err, &parseErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": parseErr.Error()})
	default:
		logrus.WithError(err).Error("unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
