package http

import (
	"encoding/json"
	"net/http"

	"github.com/mkarev/go-note-keeper/internal/logger"
	"github.com/mkarev/go-note-keeper/internal/utils"
	"github.com/mkarev/go-note-keeper/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteError(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	registeredUser, err := h.services.AuthService.Register(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		h.writeDomainError(w, r, err, "user registration failed")
		return
	}

	log.Debug().Str("id", registeredUser.ID).Str("username", registeredUser.Username).Msg("user registered")

	utils.WriteJSON(w, models.RegisterResponse{
		Message: "User registered successfully",
		User:    registeredUser,
	}, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteError(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	foundUser, err := h.services.AuthService.Login(ctx, req.Email, req.Password)
	if err != nil {
		h.writeDomainError(w, r, err, "user login failed")
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, foundUser)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		utils.WriteError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	log.Debug().Str("id", foundUser.ID).Str("username", foundUser.Username).Msg("user successfully logged in")

	utils.WriteJSON(w, models.LoginResponse{
		Message:  "Login successful",
		Token:    token.SignedString,
		Username: foundUser.Username,
	}, http.StatusOK)
}

// writeDomainError translates a service/store failure into the uniform error
// envelope. Unexpected failures collapse to a generic 500 so that no
// internals leak to the client.
func (h *Handler) writeDomainError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	log := logger.FromRequest(r)
	log.Err(err).Msg(msg)

	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		utils.WriteError(w, http.StatusText(status), status)
		return
	}

	utils.WriteError(w, err.Error(), status)
}
