package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cppla/postbox/store"
	"github.com/cppla/postbox/utils"
	"github.com/cppla/postbox/validators"
)

// notFound carries a user facing message and matches store.ErrNotFound.
type notFound struct {
	msg string
}

func (e *notFound) Error() string { return e.msg }
func (e *notFound) Unwrap() error { return store.ErrNotFound }

func errNotFound(msg string) error { return &notFound{msg: msg} }

// respondError maps domain errors onto HTTP statuses.
// Password format errors deliberately answer 500.
func respondError(ctx *gin.Context, err error) {
	var (
		bugged *validators.BuggedClientError
		client *validators.ClientError
	)
	switch {
	case errors.Is(err, store.ErrNotFound):
		utils.Error(ctx, http.StatusNotFound, 40401, err.Error())
	case errors.As(err, &bugged):
		utils.Error(ctx, http.StatusInternalServerError, 50001, "Client error: "+bugged.Msg)
	case errors.As(err, &client):
		utils.Error(ctx, http.StatusBadRequest, 40001, "Client error: "+client.Msg)
	default:
		utils.Logger.Error("request failed", zapRequestID(ctx), zap.Error(err))
		utils.Error(ctx, http.StatusInternalServerError, 50000, "internal server error")
	}
}
