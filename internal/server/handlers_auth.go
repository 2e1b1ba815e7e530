package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/docuchat/internal/server/middleware"
	"github.com/jonathan/docuchat/internal/types"
)

// handleSignup registers a new account and signs it in.
func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req types.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	user, err := s.userService.Register(r.Context(), &req)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.respondWithToken(w, http.StatusCreated, user)
}

// handleSignin authenticates an existing account.
func (s *Server) handleSignin(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	user, err := s.userService.Login(r.Context(), &req)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.respondWithToken(w, http.StatusOK, user)
}

// handleUpdatePassword changes the authenticated user's password.
func (s *Server) handleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req types.UpdatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	if err := s.userService.UpdatePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"message": "Password updated successfully"})
}

// respondWithToken issues a signed token for the user and writes the login
// payload.
func (s *Server) respondWithToken(w http.ResponseWriter, status int, user *types.User) {
	token, err := s.jwtService.GenerateToken(user.ID, user.Role)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to generate token")
		s.errorResponse(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}
	s.jsonResponse(w, status, types.LoginResponse{User: user, Token: token})
}

// validationMessage renders the first field failure of a validator error.
func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return fmt.Sprintf("validation error: %s - %s", fieldErrs[0].Field(), fieldErrs[0].Tag())
	}
	return "validation error: invalid request"
}
