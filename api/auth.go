package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/worldreach/careers/pkg/repository"
	"golang.org/x/crypto/bcrypt"
)

type AuthHandler struct {
	adminRepo     repository.AdminRepo
	jwtSecret     string
	tokenDuration time.Duration
}

// NewAuthHandler creates a new AuthHandler with required dependencies.
func NewAuthHandler(ar repository.AdminRepo, jwtSecret string, tokenDuration time.Duration) *AuthHandler {
	return &AuthHandler{adminRepo: ar, jwtSecret: jwtSecret, tokenDuration: tokenDuration}
}

type signinRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string `json:"token"`
}

type meResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var req signinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.Username == "" || req.Password == "" {
		http.Error(w, "Missing fields", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	admin, err := h.adminRepo.GetAdminByUsername(ctx, req.Username)
	if err != nil || admin == nil {
		http.Error(w, "Credentials not found", http.StatusUnauthorized)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)) != nil {
		http.Error(w, "Credentials not found", http.StatusUnauthorized)
		return
	}

	// Issue JWT carrying the role claim the dashboard guard checks
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"admin_id": admin.ID,
		"username": admin.Username,
		"role":     admin.Role,
		"exp":      time.Now().Add(h.tokenDuration).Unix(),
	})
	tokenStr, err := token.SignedString([]byte(h.jwtSecret))
	if err != nil {
		http.Error(w, "Error signing token", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(authResponse{Token: tokenStr})
}

func (h *AuthHandler) Signout(w http.ResponseWriter, r *http.Request) {
	// For stateless JWT, signout is client-side (just delete token)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, `{"message":"signed out"}`)
}

// Me returns the authenticated admin record. The dashboard calls it on load
// to restore a session before rendering guarded views.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := r.Context().Value(CtxAdminID).(int64)
	if !ok {
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	admin, err := h.adminRepo.GetAdminByID(r.Context(), id)
	if err != nil {
		http.Error(w, "Failed to load admin", http.StatusInternalServerError)
		return
	}
	if admin == nil {
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	writeJSON(w, meResponse{ID: admin.ID, Username: admin.Username, Role: admin.Role}, http.StatusOK)
}
