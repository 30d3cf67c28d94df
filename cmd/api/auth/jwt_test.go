package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signWith(t *testing.T, secret string, method jwt.SigningMethod, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(method, claims)
	s, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return s
}

func TestNewJWTManagerFromEnvRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("JWT_ISSUER", "issuer-for-test")

	manager, err := NewJWTManagerFromEnv()
	if err == nil {
		t.Fatalf("expected error when JWT_SECRET is empty")
	}
	if manager != nil {
		t.Fatalf("expected nil manager when env is invalid")
	}
}

func TestNewJWTManagerFromEnvUsesDefaultIssuer(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_ISSUER", "")

	manager, err := NewJWTManagerFromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if manager.issuer != DefaultIssuer {
		t.Fatalf("expected default issuer %s, got %q", DefaultIssuer, manager.issuer)
	}
	if manager.ttl != 24*time.Hour {
		t.Fatalf("expected default ttl 24h, got %s", manager.ttl)
	}
}

func TestJWTManagerSignAndParse(t *testing.T) {
	manager := NewJWTManager("test-secret", "test-issuer")

	token, err := manager.Sign("user-001", RoleUser)
	if err != nil {
		t.Fatalf("unexpected sign error: %v", err)
	}

	userCode, role, err := manager.Parse(token)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if userCode != "user-001" {
		t.Fatalf("expected userCode user-001, got %q", userCode)
	}
	if role != RoleUser {
		t.Fatalf("expected role %q, got %q", RoleUser, role)
	}
}

func TestJWTManagerParseRejectsInvalidSignature(t *testing.T) {
	manager := NewJWTManager("service-secret", "issuer")

	forged := signWith(t, "other-secret", jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-001",
		"iss": "issuer",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	if _, _, err := manager.Parse(forged); err == nil {
		t.Fatalf("expected parse error for invalid signature")
	}
}

func TestJWTManagerParseRejectsOtherIssuer(t *testing.T) {
	manager := NewJWTManager("service-secret", "issuer")

	token := signWith(t, "service-secret", jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-001",
		"iss": "someone-else",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	_, _, err := manager.Parse(token)
	if !errors.Is(err, jwt.ErrTokenInvalidIssuer) {
		t.Fatalf("expected invalid issuer error, got %v", err)
	}
}

func TestJWTManagerParseRejectsExpiredAndMissingExp(t *testing.T) {
	manager := NewJWTManager("service-secret", "issuer")

	expired := signWith(t, "service-secret", jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-001",
		"iss": "issuer",
		"exp": time.Now().Add(-time.Minute).Unix(),
	})
	if _, _, err := manager.Parse(expired); !errors.Is(err, jwt.ErrTokenExpired) {
		t.Fatalf("expected expired error, got %v", err)
	}

	noExp := signWith(t, "service-secret", jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-001",
		"iss": "issuer",
	})
	if _, _, err := manager.Parse(noExp); err == nil {
		t.Fatalf("expected error when exp is missing")
	}
}

func TestJWTManagerParseRejectsOtherAlgorithms(t *testing.T) {
	manager := NewJWTManager("service-secret", "issuer")

	token := signWith(t, "service-secret", jwt.SigningMethodHS512, jwt.MapClaims{
		"sub": "user-001",
		"iss": "issuer",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	if _, _, err := manager.Parse(token); err == nil {
		t.Fatalf("expected error for HS512 token")
	}
}

func TestJWTManagerParseRejectsMissingSubClaim(t *testing.T) {
	manager := NewJWTManager("service-secret", "issuer")

	token := signWith(t, "service-secret", jwt.SigningMethodHS256, jwt.MapClaims{
		"role": RoleUser,
		"iss":  "issuer",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	_, _, err := manager.Parse(token)
	if !errors.Is(err, ErrMissingSubject) {
		t.Fatalf("expected missing sub error, got %v", err)
	}
}

func TestJWTManagerParseAllowsMissingRoleClaimAsEmptyString(t *testing.T) {
	manager := NewJWTManager("service-secret", "issuer")

	token := signWith(t, "service-secret", jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-001",
		"iss": "issuer",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	userCode, role, err := manager.Parse(token)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if userCode != "user-001" {
		t.Fatalf("expected userCode user-001, got %q", userCode)
	}
	if role != "" {
		t.Fatalf("expected empty role when claim is missing, got %q", role)
	}
}
