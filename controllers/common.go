package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hyeonss0417/bulletin-board/services"
	"github.com/hyeonss0417/bulletin-board/utils"
)

// fail maps a service error to the response envelope, hiding internals behind
// a generic 500 for anything outside the taxonomy.
func fail(ctx *gin.Context, err error) {
	if se, ok := services.AsError(err); ok {
		status := services.HTTPStatus(err)
		var data interface{}
		if len(se.Fields) > 0 {
			data = gin.H{"errors": se.Fields}
		}
		utils.Respond(ctx, status, status*100, se.Message, data)
		return
	}
	if utils.Sugar != nil {
		utils.Sugar.Errorw("request failed", "path", ctx.Request.URL.Path, "err", err)
	}
	utils.Error(ctx, http.StatusInternalServerError, 50000, "internal server error")
}

// parseID reads a positive numeric path parameter. Responds 400 and returns
// false when it is missing or malformed.
func parseID(ctx *gin.Context, name string) (uint, bool) {
	raw := strings.TrimSpace(ctx.Param(name))
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// parsePagination reads page/pageSize query params with defaults 1/10.
func parsePagination(ctx *gin.Context) services.PaginateInput {
	in := services.PaginateInput{Page: 1, PageSize: 10}
	if v := strings.TrimSpace(ctx.Query("page")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			in.Page = n
		}
	}
	if v := strings.TrimSpace(ctx.Query("pageSize")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			in.PageSize = n
		}
	}
	return in
}
