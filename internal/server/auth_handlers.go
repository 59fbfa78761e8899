package server

import (
	"net/http"

	"github.com/fredrickmpepo89-ctrl/vicoba-unified-platform/internal/models"
)

type registerRequest struct {
	Phone   string `json:"phone"`
	PIN     string `json:"pin"`
	GroupID string `json:"group_id"`
	Role    string `json:"role,omitempty"`
}

type loginRequest struct {
	Phone string `json:"phone"`
	PIN   string `json:"pin"`
}

type tokenResponse struct {
	Token string `json:"token"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decode(r, &req); err != nil {
		writeErrorStatus(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := s.authn.Register(r.Context(), req.Phone, req.PIN, req.GroupID, models.Role(req.Role))
	if err != nil {
		writeError(w, err)
		return
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tokenResponse{Token: token, Phone: user.Phone, Role: string(user.Role)})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decode(r, &req); err != nil {
		writeErrorStatus(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := s.authn.Authenticate(r.Context(), req.Phone, req.PIN)
	if err != nil {
		writeError(w, err)
		return
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{Token: token, Phone: user.Phone, Role: string(user.Role)})
}
