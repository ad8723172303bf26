package api

import (
	"database/sql"
	"errors"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"lorekeep/internal/auth"
)

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email,max=120"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid username, email or password")
		return
	}

	if taken, err := h.store.UsernameTaken(req.Username); err != nil {
		h.serverError(w, err, "check username")
		return
	} else if taken {
		h.writeError(w, http.StatusBadRequest, "Username already exists")
		return
	}
	if taken, err := h.store.EmailTaken(req.Email); err != nil {
		h.serverError(w, err, "check email")
		return
	} else if taken {
		h.writeError(w, http.StatusBadRequest, "Email already exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.serverError(w, err, "hash password")
		return
	}

	id, err := h.store.CreateUser(req.Username, req.Email, string(hash))
	if err != nil {
		h.serverError(w, err, "create user")
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]any{
		"id":       id,
		"username": req.Username,
		"message":  "User registered successfully!",
	})
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	user, err := h.store.GetUserByUsername(req.Username)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			h.serverError(w, err, "load user")
			return
		}
		h.writeError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		h.writeError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	token := h.sessions.Create(user.ID)
	auth.SetSessionCookie(w, h.signer, token)

	h.writeJSON(w, http.StatusOK, map[string]any{
		"id":       user.ID,
		"username": user.Username,
		"message":  "Login successful",
	})
}

// Logout always succeeds, with or without a live session.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if token, err := auth.TokenFromRequest(r, h.signer); err == nil {
		h.sessions.Delete(token)
	}
	auth.ClearSessionCookie(w)
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

func (h *Handlers) ValidateSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	user, err := h.store.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			h.writeError(w, http.StatusNotFound, "User not found")
			return
		}
		h.serverError(w, err, "load user")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"id":       user.ID,
		"username": user.Username,
		"message":  "Session is valid",
	})
}

func (h *Handlers) Test(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "LoreKeep API is working!"})
}
