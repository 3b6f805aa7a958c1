package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wcraske/simpleCalendar/internal/api/httpx"
	"github.com/wcraske/simpleCalendar/internal/middleware"
	"github.com/wcraske/simpleCalendar/internal/services"
)

type UserHandler struct {
	Users *services.UserService
}

func NewUserHandler(us *services.UserService) *UserHandler {
	return &UserHandler{Users: us}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.FromCtx(r.Context())
	users, err := h.Users.List(r.Context(), actor)
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, users)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.FromCtx(r.Context())
	if err := h.Users.Delete(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
