package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cppla/postbox/middleware"
	"github.com/cppla/postbox/utils"
)

// principal returns the authenticated user name or writes 401.
func principal(ctx *gin.Context) (string, bool) {
	name, ok := middleware.Principal(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
	}
	return name, ok
}

// pathID parses an integer path parameter or writes 400.
func pathID(ctx *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(ctx.Param(name))
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40002, "invalid "+name)
		return 0, false
	}
	return id, true
}

// bindPayload decodes a JSON object body or writes 400. Numbers stay json.Number.
func bindPayload(ctx *gin.Context) (map[string]any, bool) {
	var payload map[string]any
	dec := json.NewDecoder(ctx.Request.Body)
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil || payload == nil {
		utils.Error(ctx, http.StatusBadRequest, 40003, "invalid request payload")
		return nil, false
	}
	return payload, true
}

func zapRequestID(ctx *gin.Context) zap.Field {
	return zap.String("request_id", ctx.GetString(utils.RequestIDHeader))
}
