package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-table-manager/services"
	"github.com/yeremiapane/restaurant-table-manager/utils"
	"gorm.io/gorm"
)

var ErrNoPermission = errors.New("you do not have permission to perform this action")

// respondServiceError memetakan error dari layer service ke HTTP status.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		utils.RespondError(c, http.StatusNotFound, err)
	case errors.Is(err, services.ErrBlacklisted):
		utils.RespondError(c, http.StatusForbidden, err)
	case errors.Is(err, services.ErrDuplicateReservation):
		utils.RespondError(c, http.StatusConflict, err)
	case errors.Is(err, services.ErrTableNotIdle),
		errors.Is(err, services.ErrSessionActive),
		errors.Is(err, services.ErrSessionCompleted),
		errors.Is(err, services.ErrTableNotInBuffer),
		errors.Is(err, services.ErrInvalidExtension),
		errors.Is(err, services.ErrNoTableAssigned):
		utils.RespondError(c, http.StatusBadRequest, err)
	default:
		utils.RespondError(c, http.StatusInternalServerError, err)
	}
}
