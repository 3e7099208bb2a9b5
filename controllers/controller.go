package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/inkhub/inkhub/repository"
	"github.com/inkhub/inkhub/utils"
)

// parsePagination reads the page window from query strings with sane bounds.
func parsePagination(pageStr, limitStr string) (int, int) {
	page := 1
	limit := 10
	if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
		page = p
	}
	if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
		limit = l
	}
	return page, limit
}

// respondRepoError translates the repository error taxonomy to HTTP statuses:
// validation 400, conflict 409, not-found 404, everything else a logged 500
// whose details are never leaked to the client.
func respondRepoError(ctx *gin.Context, err error, notFoundMsg, internalMsg string) {
	var verr *repository.ValidationError
	switch {
	case errors.As(err, &verr):
		utils.Error(ctx, http.StatusBadRequest, verr.Message)
	case errors.Is(err, repository.ErrConflict):
		utils.Error(ctx, http.StatusConflict, err.Error())
	case errors.Is(err, repository.ErrNotFound):
		utils.Error(ctx, http.StatusNotFound, notFoundMsg)
	default:
		if utils.Sugar != nil {
			utils.Sugar.Errorw(internalMsg, "path", ctx.FullPath(), "err", err)
		}
		utils.Error(ctx, http.StatusInternalServerError, internalMsg)
	}
}
