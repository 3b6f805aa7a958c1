// internal/api/handlers/auth.go
package handlers

import (
	"net/http"

	"github.com/wcraske/simpleCalendar/internal/api/httpx"
	"github.com/wcraske/simpleCalendar/internal/middleware"
	"github.com/wcraske/simpleCalendar/internal/services"
)

type AuthHandler struct {
	Users *services.UserService
}

func NewAuthHandler(us *services.UserService) *AuthHandler {
	return &AuthHandler{Users: us}
}

type tokenResp struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func bearer(t services.Token) tokenResp {
	return tokenResp{AccessToken: t.AccessToken, TokenType: "bearer"}
}

// Login handles POST /token with form fields username and password.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid form body", nil)
		return
	}
	tok, err := h.Users.Login(r.Context(), r.PostFormValue("username"), r.PostFormValue("password"))
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, bearer(tok))
}

// Register handles POST /register. The new account is logged in straight away.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid form body", nil)
		return
	}
	_, tok, err := h.Users.Register(r.Context(), r.PostFormValue("username"), r.PostFormValue("password"))
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, bearer(tok))
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	u, _ := middleware.FromCtx(r.Context())
	httpx.WriteJSON(w, http.StatusOK, u)
}
