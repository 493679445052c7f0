// ============================================================================
// internal/auth/service.go
// Teacher credential store: salted password hashing, registration, login
// with session tokens, and password changes
// ============================================================================

package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"studentdesk/internal/shared"
	"studentdesk/internal/storage"
)

// ErrInvalidCredentials is returned when a password does not match the
// stored digest, or a session token fails verification.
var ErrInvalidCredentials = errors.New("invalid credentials")

const (
	// saltLength is the bytes of entropy per salt; hex-encoded on disk.
	saltLength = 32

	// minPasswordLength is the registration floor.
	minPasswordLength = 6

	// defaultTokenTTL bounds the lifetime of issued session tokens.
	defaultTokenTTL = 24 * time.Hour
)

// HashPassword digests password+salt with SHA-256. When salt is empty a
// fresh random one is generated. Returns the hex digest and the salt used.
func HashPassword(password, salt string) (hash, usedSalt string, err error) {
	if salt == "" {
		raw := make([]byte, saltLength)
		if _, err := rand.Read(raw); err != nil {
			return "", "", fmt.Errorf("generating salt: %w", err)
		}
		salt = hex.EncodeToString(raw)
	}

	sum := sha256.Sum256([]byte(password + salt))
	return hex.EncodeToString(sum[:]), salt, nil
}

// VerifyPassword recomputes the salted digest and compares it against the
// stored hash in constant time.
func VerifyPassword(password, hash, salt string) bool {
	computed, _, err := HashPassword(password, salt)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(computed), []byte(hash)) == 1
}

// Claims are the session token claims for a logged-in teacher.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// Service manages teacher accounts over the credential file and issues
// signed session tokens on login.
type Service struct {
	teachers  *storage.TeacherStore
	jwtSecret []byte
	tokenTTL  time.Duration

	now func() time.Time
}

// NewService creates an auth service over the given credential store.
func NewService(teachers *storage.TeacherStore, jwtSecret string) *Service {
	return &Service{
		teachers:  teachers,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  defaultTokenTTL,
		now:       time.Now,
	}
}

// Register creates a new teacher account. All fields are required and the
// password must be at least six characters; a duplicate email rejects the
// write and leaves the store unchanged.
func (s *Service) Register(email, password, name string) (shared.PublicTeacher, error) {
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)

	if email == "" {
		return shared.PublicTeacher{}, shared.NewValidationError("email", "cannot be empty")
	}
	if name == "" {
		return shared.PublicTeacher{}, shared.NewValidationError("name", "cannot be empty")
	}
	if strings.TrimSpace(password) == "" {
		return shared.PublicTeacher{}, shared.NewValidationError("password", "cannot be empty")
	}
	if len(password) < minPasswordLength {
		return shared.PublicTeacher{}, shared.NewValidationError("password", "must be at least 6 characters long")
	}

	teachers, err := s.teachers.Load()
	if err != nil {
		return shared.PublicTeacher{}, err
	}
	for _, t := range teachers {
		if t.Email == email {
			return shared.PublicTeacher{}, &shared.DuplicateKeyError{Field: "email", Value: email}
		}
	}

	hash, salt, err := HashPassword(password, "")
	if err != nil {
		return shared.PublicTeacher{}, err
	}

	account := shared.TeacherAccount{
		Email:        email,
		PasswordHash: hash,
		Salt:         salt,
		Name:         name,
		CreatedAt:    s.now(),
	}

	teachers = append(teachers, account)
	if err := s.teachers.Save(teachers); err != nil {
		return shared.PublicTeacher{}, err
	}
	return account.Public(), nil
}

// Login verifies the password for the given email and returns the public
// account view plus a signed session token. An unknown email reports
// ErrNotFound; a bad password reports ErrInvalidCredentials.
func (s *Service) Login(email, password string) (shared.PublicTeacher, string, error) {
	email = strings.TrimSpace(email)

	teachers, err := s.teachers.Load()
	if err != nil {
		return shared.PublicTeacher{}, "", err
	}

	for _, t := range teachers {
		if t.Email != email {
			continue
		}
		if !VerifyPassword(password, t.PasswordHash, t.Salt) {
			return shared.PublicTeacher{}, "", ErrInvalidCredentials
		}
		token, err := s.issueToken(t)
		if err != nil {
			return shared.PublicTeacher{}, "", err
		}
		return t.Public(), token, nil
	}

	return shared.PublicTeacher{}, "", shared.ErrNotFound
}

// ValidateToken verifies a session token and returns the teacher it was
// issued for.
func (s *Service) ValidateToken(tokenString string) (shared.PublicTeacher, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return shared.PublicTeacher{}, ErrInvalidCredentials
	}

	teachers, err := s.teachers.Load()
	if err != nil {
		return shared.PublicTeacher{}, err
	}
	for _, t := range teachers {
		if t.Email == claims.Email {
			return t.Public(), nil
		}
	}
	return shared.PublicTeacher{}, shared.ErrNotFound
}

// ChangePassword replaces the stored credential after verifying the old
// password. A fresh salt is generated alongside the new digest.
func (s *Service) ChangePassword(email, oldPassword, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return shared.NewValidationError("password", "must be at least 6 characters long")
	}

	teachers, err := s.teachers.Load()
	if err != nil {
		return err
	}

	for i := range teachers {
		if teachers[i].Email != email {
			continue
		}
		if !VerifyPassword(oldPassword, teachers[i].PasswordHash, teachers[i].Salt) {
			return ErrInvalidCredentials
		}
		hash, salt, err := HashPassword(newPassword, "")
		if err != nil {
			return err
		}
		teachers[i].PasswordHash = hash
		teachers[i].Salt = salt
		return s.teachers.Save(teachers)
	}

	return shared.ErrNotFound
}

func (s *Service) issueToken(t shared.TeacherAccount) (string, error) {
	now := s.now()
	claims := Claims{
		Email: t.Email,
		Name:  t.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   t.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("signing session token: %w", err)
	}
	return signed, nil
}
