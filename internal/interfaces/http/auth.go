package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"bursar/internal/domain/budget"
	"bursar/internal/domain/user"
	"bursar/internal/shared/auth"
	"bursar/internal/shared/middleware"
)

type AuthHandler struct {
	userRepo   user.Repository
	budgetRepo budget.Repository
	jwt        *auth.JWT
}

func NewAuthHandler(userRepo user.Repository, budgetRepo budget.Repository, jwt *auth.JWT) *AuthHandler {
	return &AuthHandler{
		userRepo:   userRepo,
		budgetRepo: budgetRepo,
		jwt:        jwt,
	}
}

type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	StudentID string `json:"studentId"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
}

type LoginRequest struct {
	StudentID string `json:"studentId"`
	Password  string `json:"password"`
}

type AuthResponse struct {
	Message string     `json:"message"`
	Token   string     `json:"token"`
	User    *user.User `json:"user"`
}

// HandleRegister creates a user plus their default budget row and
// returns a fresh session token.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.FirstName == "" || req.LastName == "" || req.StudentID == "" || req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "firstName, lastName, studentId, email and password are required")
		return
	}

	ctx := r.Context()

	exists, err := h.userRepo.ExistsByStudentIDOrEmail(ctx, req.StudentID, req.Email)
	if err != nil {
		respondStorageError(w, "Failed to register user", err)
		return
	}
	if exists {
		respondError(w, http.StatusConflict, "Student ID or email already exists")
		return
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		respondStorageError(w, "Failed to register user", err)
		return
	}

	u, err := h.userRepo.Create(ctx, user.CreateUserParams{
		StudentID:      req.StudentID,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		PasswordHash:   passwordHash,
		AvatarInitials: user.AvatarInitials(req.FirstName, req.LastName),
	})
	if err != nil {
		if errors.Is(err, user.ErrDuplicate) {
			respondError(w, http.StatusConflict, "Student ID or email already exists")
			return
		}
		respondStorageError(w, "Failed to register user", err)
		return
	}

	if err := h.budgetRepo.CreateDefault(ctx, u.ID); err != nil {
		// The user exists; the budget row will be created lazily on
		// first access instead.
		log.Printf("Failed to create default budget for user %d: %v", u.ID, err)
	}

	token, err := h.jwt.Generate(u.ID)
	if err != nil {
		respondStorageError(w, "Failed to generate token", err)
		return
	}

	respondJSON(w, http.StatusCreated, AuthResponse{
		Message: "User registered successfully",
		Token:   token,
		User:    u,
	})
}

// HandleLogin verifies credentials and issues a fresh session token.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx := r.Context()

	u, err := h.userRepo.GetByStudentID(ctx, req.StudentID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			respondError(w, http.StatusUnauthorized, "Invalid student ID or password")
			return
		}
		respondStorageError(w, "Failed to log in", err)
		return
	}

	if err := auth.VerifyPassword(u.PasswordHash, req.Password); err != nil {
		respondError(w, http.StatusUnauthorized, "Invalid student ID or password")
		return
	}

	token, err := h.jwt.Generate(u.ID)
	if err != nil {
		respondStorageError(w, "Failed to generate token", err)
		return
	}

	respondJSON(w, http.StatusOK, AuthResponse{
		Message: "Login successful",
		Token:   token,
		User:    u,
	})
}

// HandleMe returns the user projection resolved by the auth middleware.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	u := middleware.CurrentUser(r.Context())
	if u == nil {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	respondJSON(w, http.StatusOK, map[string]*user.User{"user": u})
}
