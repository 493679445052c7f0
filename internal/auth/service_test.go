package auth

import (
	"errors"
	"path/filepath"
	"testing"

	"studentdesk/internal/shared"
	"studentdesk/internal/storage"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	store := storage.NewTeacherStore(filepath.Join(t.TempDir(), "teachers.json"))
	return NewService(store, "test-secret-key")
}

func TestHashPassword(t *testing.T) {
	t.Run("Fresh Salt Generated", func(t *testing.T) {
		hash, salt, err := HashPassword("secret123", "")
		if err != nil {
			t.Fatalf("HashPassword failed: %v", err)
		}
		if len(salt) != 64 {
			t.Errorf("Salt length = %d, want 64 hex characters", len(salt))
		}
		if len(hash) != 64 {
			t.Errorf("Hash length = %d, want 64 hex characters", len(hash))
		}
	})

	t.Run("Deterministic For Fixed Salt", func(t *testing.T) {
		h1, _, _ := HashPassword("secret123", "abc")
		h2, _, _ := HashPassword("secret123", "abc")
		if h1 != h2 {
			t.Error("Same password and salt produced different digests")
		}
		h3, _, _ := HashPassword("secret123", "def")
		if h1 == h3 {
			t.Error("Different salts produced the same digest")
		}
	})

	t.Run("Verify Round Trip", func(t *testing.T) {
		hash, salt, _ := HashPassword("secret123", "")
		if !VerifyPassword("secret123", hash, salt) {
			t.Error("Correct password failed verification")
		}
		if VerifyPassword("wrong", hash, salt) {
			t.Error("Wrong password passed verification")
		}
	})
}

func TestRegister(t *testing.T) {
	svc := newTestService(t)

	t.Run("Register Success", func(t *testing.T) {
		teacher, err := svc.Register("prof@example.com", "secret123", "Prof. Plum")
		if err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		if teacher.Email != "prof@example.com" || teacher.Name != "Prof. Plum" {
			t.Errorf("Unexpected public view: %+v", teacher)
		}
		if teacher.CreatedAt.IsZero() {
			t.Error("CreatedAt not set")
		}
	})

	t.Run("Duplicate Email", func(t *testing.T) {
		_, err := svc.Register("prof@example.com", "another1", "Someone Else")
		var dup *shared.DuplicateKeyError
		if !errors.As(err, &dup) {
			t.Fatalf("Expected DuplicateKeyError, got %v", err)
		}
	})

	t.Run("Validation", func(t *testing.T) {
		cases := []struct {
			email, password, name string
		}{
			{"", "secret123", "Name"},
			{"x@example.com", "secret123", ""},
			{"x@example.com", "", "Name"},
			{"x@example.com", "short", "Name"},
		}
		for _, c := range cases {
			_, err := svc.Register(c.email, c.password, c.name)
			var verr *shared.ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("Register(%q, %q, %q) error = %v, want ValidationError", c.email, c.password, c.name, err)
			}
		}
	})
}

func TestLoginAndTokens(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.Register("prof@example.com", "secret123", "Prof. Plum"); err != nil {
		t.Fatalf("Setup register failed: %v", err)
	}

	var token string

	t.Run("Login Success", func(t *testing.T) {
		teacher, issued, err := svc.Login("prof@example.com", "secret123")
		if err != nil {
			t.Fatalf("Login failed: %v", err)
		}
		if teacher.Email != "prof@example.com" {
			t.Errorf("Wrong account returned: %+v", teacher)
		}
		if issued == "" {
			t.Fatal("Expected a session token")
		}
		token = issued
	})

	t.Run("Login Wrong Password", func(t *testing.T) {
		_, _, err := svc.Login("prof@example.com", "wrongpass")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("Login Unknown Email", func(t *testing.T) {
		_, _, err := svc.Login("nobody@example.com", "secret123")
		if !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Validate Token", func(t *testing.T) {
		teacher, err := svc.ValidateToken(token)
		if err != nil {
			t.Fatalf("ValidateToken failed: %v", err)
		}
		if teacher.Email != "prof@example.com" {
			t.Errorf("Token resolved to wrong account: %+v", teacher)
		}
	})

	t.Run("Validate Garbage Token", func(t *testing.T) {
		if _, err := svc.ValidateToken("not.a.token"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("Validate Token Signed With Other Secret", func(t *testing.T) {
		other := newTestService(t)
		if _, err := other.Register("prof@example.com", "secret123", "Prof. Plum"); err != nil {
			t.Fatalf("Setup register failed: %v", err)
		}
		other.jwtSecret = []byte("different-secret")
		_, foreign, err := other.Login("prof@example.com", "secret123")
		if err != nil {
			t.Fatalf("Login failed: %v", err)
		}
		if _, err := svc.ValidateToken(foreign); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Expected ErrInvalidCredentials for foreign signature, got %v", err)
		}
	})
}

func TestChangePassword(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.Register("prof@example.com", "secret123", "Prof. Plum"); err != nil {
		t.Fatalf("Setup register failed: %v", err)
	}

	t.Run("Wrong Old Password", func(t *testing.T) {
		err := svc.ChangePassword("prof@example.com", "wrong", "newsecret1")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("New Password Too Short", func(t *testing.T) {
		err := svc.ChangePassword("prof@example.com", "secret123", "tiny")
		var verr *shared.ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("Expected ValidationError, got %v", err)
		}
	})

	t.Run("Change And Relogin", func(t *testing.T) {
		if err := svc.ChangePassword("prof@example.com", "secret123", "newsecret1"); err != nil {
			t.Fatalf("ChangePassword failed: %v", err)
		}

		if _, _, err := svc.Login("prof@example.com", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
			t.Error("Old password still accepted after change")
		}
		if _, _, err := svc.Login("prof@example.com", "newsecret1"); err != nil {
			t.Errorf("Could not login with new password: %v", err)
		}
	})

	t.Run("Unknown Email", func(t *testing.T) {
		err := svc.ChangePassword("nobody@example.com", "secret123", "newsecret1")
		if !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})
}
