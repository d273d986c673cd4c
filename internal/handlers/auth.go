package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/careconnect/homecare/internal/db"
	"github.com/careconnect/homecare/internal/logger"
	"github.com/careconnect/homecare/internal/models"
)

const sessionCookie = "cc_session"

type ctxKey int

const userKey ctxKey = iota

// Session is the authenticated identity attached to a request.
type Session struct {
	UserID   uint
	Role     string
	FullName string
}

// AuthHandler issues and checks JWT session cookies.
type AuthHandler struct {
	Secret   []byte
	TokenTTL time.Duration
	Log      logger.Logger
}

func NewAuthHandler(secret string, ttl time.Duration, log logger.Logger) *AuthHandler {
	return &AuthHandler{Secret: []byte(secret), TokenTTL: ttl, Log: log}
}

type sessionClaims struct {
	Role     string `json:"role"`
	FullName string `json:"name"`
	jwt.RegisteredClaims
}

func (a *AuthHandler) issueCookie(w http.ResponseWriter, u *models.User) error {
	claims := sessionClaims{
		Role:     u.Role,
		FullName: u.FullName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strings.ToLower(u.Email),
			ID:        uintToString(u.ID),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(a.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.Secret)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(a.TokenTTL),
	})
	return nil
}

func (a *AuthHandler) readSession(r *http.Request) (*Session, bool) {
	c, err := r.Cookie(sessionCookie)
	if err != nil || c.Value == "" {
		return nil, false
	}
	var claims sessionClaims
	tok, err := jwt.ParseWithClaims(c.Value, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return a.Secret, nil
	})
	if err != nil || !tok.Valid {
		return nil, false
	}
	id, err := stringToUint(claims.ID)
	if err != nil {
		return nil, false
	}
	return &Session{UserID: id, Role: claims.Role, FullName: claims.FullName}, true
}

// SessionFrom returns the authenticated session stored on the request
// context, if any.
func SessionFrom(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(userKey).(*Session)
	return s, ok
}

// WithSession resolves the session cookie when present without requiring it.
func (a *AuthHandler) WithSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s, ok := a.readSession(r); ok {
			r = r.WithContext(context.WithValue(r.Context(), userKey, s))
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole guards a route group: a valid session with the given role must
// be present. An empty role accepts any authenticated user.
func (a *AuthHandler) RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, ok := a.readSession(r)
			if !ok {
				respondError(w, http.StatusUnauthorized, "login required")
				return
			}
			if role != "" && s.Role != role {
				respondError(w, http.StatusForbidden, "wrong account type for this action")
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, s)))
		})
	}
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

// Signup creates an account and logs it in.
func (a *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || len(req.Password) < 8 || strings.TrimSpace(req.FullName) == "" {
		respondError(w, http.StatusBadRequest, "email, full name and a password of at least 8 characters are required")
		return
	}
	if req.Role != models.RoleCaregiver && req.Role != models.RoleCustomer {
		respondError(w, http.StatusBadRequest, "role must be caregiver or customer")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "could not create account")
		return
	}
	u := models.User{Email: req.Email, PasswordHash: string(hash), FullName: strings.TrimSpace(req.FullName), Role: req.Role}
	if err := db.Conn().Create(&u).Error; err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			respondError(w, http.StatusConflict, "email already registered")
			return
		}
		respondError(w, http.StatusInternalServerError, "could not create account")
		return
	}

	if err := a.issueCookie(w, &u); err != nil {
		respondError(w, http.StatusInternalServerError, "could not create session")
		return
	}
	a.Log.Info("user signed up", map[string]interface{}{"userId": u.ID, "role": u.Role})
	respondJSON(w, http.StatusCreated, userView(&u))
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login checks credentials and issues the session cookie.
func (a *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	var u models.User
	err := db.Conn().Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		respondError(w, http.StatusInternalServerError, "login failed")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err := a.issueCookie(w, &u); err != nil {
		respondError(w, http.StatusInternalServerError, "could not create session")
		return
	}
	respondJSON(w, http.StatusOK, userView(&u))
}

// Logout clears the session cookie.
func (a *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:    sessionCookie,
		Value:   "",
		Path:    "/",
		Expires: time.Unix(0, 0),
		MaxAge:  -1,
	})
	respondJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// Me returns the current session's user.
func (a *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	s, ok := SessionFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "login required")
		return
	}
	var u models.User
	if err := db.Conn().First(&u, s.UserID).Error; err != nil {
		respondError(w, http.StatusNotFound, "user not found")
		return
	}
	respondJSON(w, http.StatusOK, userView(&u))
}

func userView(u *models.User) map[string]interface{} {
	return map[string]interface{}{
		"id":       u.ID,
		"email":    u.Email,
		"fullName": u.FullName,
		"role":     u.Role,
	}
}
