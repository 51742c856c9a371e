package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bursar/internal/domain/budget"
	"bursar/internal/domain/user"
	"bursar/internal/shared/auth"
	"bursar/internal/shared/middleware"
)

// MockUserRepo implements user.Repository for testing
type MockUserRepo struct {
	CreateFunc                   func(ctx context.Context, params user.CreateUserParams) (*user.User, error)
	GetByIDFunc                  func(ctx context.Context, id int64) (*user.User, error)
	GetByStudentIDFunc           func(ctx context.Context, studentID string) (*user.User, error)
	ExistsByStudentIDOrEmailFunc func(ctx context.Context, studentID, email string) (bool, error)
}

func (m *MockUserRepo) Create(ctx context.Context, params user.CreateUserParams) (*user.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return nil, nil
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*user.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockUserRepo) GetByStudentID(ctx context.Context, studentID string) (*user.User, error) {
	if m.GetByStudentIDFunc != nil {
		return m.GetByStudentIDFunc(ctx, studentID)
	}
	return nil, nil
}

func (m *MockUserRepo) ExistsByStudentIDOrEmail(ctx context.Context, studentID, email string) (bool, error) {
	if m.ExistsByStudentIDOrEmailFunc != nil {
		return m.ExistsByStudentIDOrEmailFunc(ctx, studentID, email)
	}
	return false, nil
}

// MockBudgetRepo implements budget.Repository for testing
type MockBudgetRepo struct {
	GetOrCreateFunc   func(ctx context.Context, userID int64) (*budget.Settings, error)
	GetFunc           func(ctx context.Context, userID int64) (*budget.Settings, error)
	UpsertFunc        func(ctx context.Context, userID int64, params budget.UpdateSettingsParams) (*budget.Settings, error)
	CreateDefaultFunc func(ctx context.Context, userID int64) error
}

func (m *MockBudgetRepo) GetOrCreate(ctx context.Context, userID int64) (*budget.Settings, error) {
	if m.GetOrCreateFunc != nil {
		return m.GetOrCreateFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockBudgetRepo) Get(ctx context.Context, userID int64) (*budget.Settings, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockBudgetRepo) Upsert(ctx context.Context, userID int64, params budget.UpdateSettingsParams) (*budget.Settings, error) {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, userID, params)
	}
	return nil, nil
}

func (m *MockBudgetRepo) CreateDefault(ctx context.Context, userID int64) error {
	if m.CreateDefaultFunc != nil {
		return m.CreateDefaultFunc(ctx, userID)
	}
	return nil
}

// withUser injects an authenticated user the way the auth middleware does.
func withUser(r *http.Request, u *user.User) *http.Request {
	ctx := context.WithValue(r.Context(), middleware.UserKey, u)
	return r.WithContext(ctx)
}

func testJWT() *auth.JWT {
	return auth.NewJWT("test-secret", 24*time.Hour)
}

func TestHandleRegister(t *testing.T) {
	validBody := map[string]string{
		"firstName": "Amina",
		"lastName":  "Diallo",
		"studentId": "STU-2025-001",
		"email":     "amina@example.edu",
		"phone":     "555-0101",
		"password":  "correct horse battery",
	}

	tests := []struct {
		name           string
		body           any
		mockUserRepo   func() *MockUserRepo
		expectedStatus int
	}{
		{
			name: "Success",
			body: validBody,
			mockUserRepo: func() *MockUserRepo {
				return &MockUserRepo{
					CreateFunc: func(ctx context.Context, params user.CreateUserParams) (*user.User, error) {
						return &user.User{
							ID:             1,
							StudentID:      params.StudentID,
							FirstName:      params.FirstName,
							LastName:       params.LastName,
							Email:          params.Email,
							AvatarInitials: params.AvatarInitials,
						}, nil
					},
				}
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "MissingFields",
			body: map[string]string{"firstName": "Amina"},
			mockUserRepo: func() *MockUserRepo {
				return &MockUserRepo{}
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "DuplicateStudent",
			body: validBody,
			mockUserRepo: func() *MockUserRepo {
				return &MockUserRepo{
					ExistsByStudentIDOrEmailFunc: func(ctx context.Context, studentID, email string) (bool, error) {
						return true, nil
					},
				}
			},
			expectedStatus: http.StatusConflict,
		},
		{
			// The existence check can race a concurrent registration;
			// the insert itself reports the duplicate.
			name: "DuplicateOnInsert",
			body: validBody,
			mockUserRepo: func() *MockUserRepo {
				return &MockUserRepo{
					CreateFunc: func(ctx context.Context, params user.CreateUserParams) (*user.User, error) {
						return nil, user.ErrDuplicate
					},
				}
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "InvalidBody",
			body: "not json",
			mockUserRepo: func() *MockUserRepo {
				return &MockUserRepo{}
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewAuthHandler(tt.mockUserRepo(), &MockBudgetRepo{}, testJWT())

			var buf bytes.Buffer
			if s, ok := tt.body.(string); ok {
				buf.WriteString(s)
			} else {
				json.NewEncoder(&buf).Encode(tt.body)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/auth/register", &buf)
			rec := httptest.NewRecorder()

			handler.HandleRegister(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d: %s", tt.expectedStatus, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestHandleRegisterIssuesToken(t *testing.T) {
	userRepo := &MockUserRepo{
		CreateFunc: func(ctx context.Context, params user.CreateUserParams) (*user.User, error) {
			return &user.User{ID: 42, StudentID: params.StudentID}, nil
		},
	}
	budgetCreated := false
	budgetRepo := &MockBudgetRepo{
		CreateDefaultFunc: func(ctx context.Context, userID int64) error {
			budgetCreated = true
			if userID != 42 {
				t.Errorf("expected budget for user 42, got %d", userID)
			}
			return nil
		},
	}
	jwt := testJWT()
	handler := NewAuthHandler(userRepo, budgetRepo, jwt)

	body, _ := json.Marshal(map[string]string{
		"firstName": "Amina",
		"lastName":  "Diallo",
		"studentId": "STU-2025-001",
		"email":     "amina@example.edu",
		"password":  "correct horse battery",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.HandleRegister(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if !budgetCreated {
		t.Error("expected default budget row to be created")
	}

	var resp AuthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	claims, err := jwt.Validate(resp.Token)
	if err != nil {
		t.Fatalf("returned token failed validation: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("expected token for user 42, got %d", claims.UserID)
	}
}

func TestHandleLogin(t *testing.T) {
	passwordHash, err := auth.HashPassword("secret-password")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	tests := []struct {
		name           string
		body           map[string]string
		mockUserRepo   func() *MockUserRepo
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]string{"studentId": "STU-1", "password": "secret-password"},
			mockUserRepo: func() *MockUserRepo {
				return &MockUserRepo{
					GetByStudentIDFunc: func(ctx context.Context, studentID string) (*user.User, error) {
						return &user.User{ID: 1, StudentID: studentID, PasswordHash: passwordHash}, nil
					},
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "WrongPassword",
			body: map[string]string{"studentId": "STU-1", "password": "wrong"},
			mockUserRepo: func() *MockUserRepo {
				return &MockUserRepo{
					GetByStudentIDFunc: func(ctx context.Context, studentID string) (*user.User, error) {
						return &user.User{ID: 1, StudentID: studentID, PasswordHash: passwordHash}, nil
					},
				}
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "UnknownStudent",
			body: map[string]string{"studentId": "STU-404", "password": "secret-password"},
			mockUserRepo: func() *MockUserRepo {
				return &MockUserRepo{
					GetByStudentIDFunc: func(ctx context.Context, studentID string) (*user.User, error) {
						return nil, user.ErrNotFound
					},
				}
			},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewAuthHandler(tt.mockUserRepo(), &MockBudgetRepo{}, testJWT())

			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
			rec := httptest.NewRecorder()

			handler.HandleLogin(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d: %s", tt.expectedStatus, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestHandleMe(t *testing.T) {
	handler := NewAuthHandler(&MockUserRepo{}, &MockBudgetRepo{}, testJWT())

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req = withUser(req, &user.User{ID: 7, StudentID: "STU-7", FirstName: "Kofi"})
	rec := httptest.NewRecorder()

	handler.HandleMe(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		User *user.User `json:"user"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.User == nil || resp.User.ID != 7 {
		t.Errorf("expected user 7 in response, got %+v", resp.User)
	}
}
