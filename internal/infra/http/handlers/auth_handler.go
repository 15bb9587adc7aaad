package handlers

import (
	"net/http"

	"github.com/vantora/leadhub/internal/usecase"
)

type AuthHandler struct {
	Auth *usecase.AuthUseCase
}

func NewAuthHandler(auth *usecase.AuthUseCase) *AuthHandler {
	return &AuthHandler{Auth: auth}
}

// HandleRegister handles POST /auth/register.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var input usecase.RegisterInput
	if err := decodeJSON(r, &input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	output, err := h.Auth.Register(r.Context(), input)
	if err != nil {
		respondUseCaseError(w, err, "server error during registration")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message":  "user registered successfully",
		"token":    output.Token,
		"username": output.Username,
	})
}

// HandleLogin handles POST /auth/login.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var input usecase.LoginInput
	if err := decodeJSON(r, &input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	output, err := h.Auth.Login(r.Context(), input)
	if err != nil {
		respondUseCaseError(w, err, "server error during login")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "login successful",
		"token":    output.Token,
		"username": output.Username,
	})
}
