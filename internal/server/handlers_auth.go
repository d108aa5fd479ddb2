package server

import (
	"net/http"
	"strings"

	"gitlab.com/yelinaung/finance-tracker/internal/auth"
	"gitlab.com/yelinaung/finance-tracker/internal/logger"
	"gitlab.com/yelinaung/finance-tracker/internal/models"
	"gitlab.com/yelinaung/finance-tracker/internal/service"
)

type registerRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if req.Username == "" {
		writeError(w, &service.ValidationError{Field: "username", Reason: "must not be empty"})
		return
	}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		writeError(w, &service.ValidationError{Field: "email", Reason: "must be a valid email address"})
		return
	}
	if err := auth.ValidatePassword(req.Password); err != nil {
		writeError(w, err)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		PasswordHash: hash,
	}
	if err := s.users.Create(r.Context(), user); err != nil {
		if service.IsUniqueViolation(err) {
			writeErrorMessage(w, http.StatusConflict, "username or email already registered")
			return
		}
		writeError(w, err)
		return
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	logger.Log.Info().
		Str("user_hash", logger.HashUserID(user.ID)).
		Msg("User registered")
	writeJSON(w, http.StatusCreated, sessionResponse{Token: token, User: toUserResponse(user)})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	user, err := s.users.GetByUsername(r.Context(), req.Username)
	if err != nil {
		// Unknown username and wrong password look identical to the caller.
		writeError(w, auth.ErrInvalidCredentials)
		return
	}
	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		writeError(w, auth.ErrInvalidCredentials)
		return
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	logger.Log.Info().
		Str("user_hash", logger.HashUserID(user.ID)).
		Msg("User logged in")
	writeJSON(w, http.StatusOK, sessionResponse{Token: token, User: toUserResponse(user)})
}
