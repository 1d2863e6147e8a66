package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/jonathan/hiring-portal/internal/server/middleware"
	"github.com/jonathan/hiring-portal/internal/session"
	"github.com/jonathan/hiring-portal/internal/types"
)

// handleLogin checks credentials against the fixture and returns a token
// carrying the session.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, session.MsgMissingInput)
		return
	}

	res := s.sessions.Authenticate(req.Email, req.Password)
	if !res.Success {
		status := http.StatusUnauthorized
		if res.Reason == session.MsgMissingInput {
			status = http.StatusBadRequest
		}
		log.Printf("[auth] login failed for %q", req.Email)
		s.errorResponse(w, status, res.Reason)
		return
	}

	token, err := s.jwtService.GenerateToken(*res.Session)
	if err != nil {
		s.failWith(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, types.LoginResponse{
		Session:  *res.Session,
		Token:    token,
		Redirect: res.Redirect,
	})
}

// handleLogout revokes the presented token.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r)
	if !ok {
		s.failWith(w, session.ErrUnauthenticated)
		return
	}
	s.jwtService.Revoke(claims.GetTokenID(), claims.GetExpiry())
	w.WriteHeader(http.StatusNoContent)
}

// handleMe returns the session of the presented token.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSession(r)
	if !ok {
		s.failWith(w, session.ErrUnauthenticated)
		return
	}
	s.jsonResponse(w, http.StatusOK, sess)
}
