package controllers

import (
	"math/rand"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cppla/postbox/models"
	"github.com/cppla/postbox/store"
	"github.com/cppla/postbox/utils"
)

// UserController exposes read-only user listings to authenticated callers.
type UserController struct {
	users *store.UserStore
}

// NewUserController creates a UserController.
func NewUserController(users *store.UserStore) *UserController {
	return &UserController{users: users}
}

type userSummary struct {
	Email  string `json:"email"`
	ID     string `json:"id"`
	Active bool   `json:"active"`
}

// ListUsers returns every user sorted by id, with ids rendered as strings.
func (u *UserController) ListUsers(ctx *gin.Context) {
	if _, ok := principal(ctx); !ok {
		return
	}
	all := u.users.GetAll()
	items := make([]userSummary, 0, len(all))
	for _, user := range all {
		items = append(items, userSummary{Email: user.Email, ID: strconv.Itoa(user.ID), Active: user.IsActive})
	}
	utils.Success(ctx, items)
}

// ListActiveUsers returns user #1 followed by the active users in random order.
// User #1 is listed whatever its state, and twice when it is active.
func (u *UserController) ListActiveUsers(ctx *gin.Context) {
	if _, ok := principal(ctx); !ok {
		return
	}
	active := u.users.GetActive()
	rand.Shuffle(len(active), func(i, j int) { active[i], active[j] = active[j], active[i] })

	items := make([]models.User, 0, len(active)+1)
	if first, ok := u.users.GetByID(1); ok {
		items = append(items, first)
	}
	items = append(items, active...)
	utils.Success(ctx, items)
}

// GetUser returns a one element list with the requested user.
func (u *UserController) GetUser(ctx *gin.Context) {
	if _, ok := principal(ctx); !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	user, found := u.users.GetByID(id)
	if !found {
		respondError(ctx, errNotFound("Такого пользователя не существует"))
		return
	}
	utils.Success(ctx, []models.User{user})
}
