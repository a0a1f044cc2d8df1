package jwt

import (
	"errors"
	"strings"
	"testing"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

var testSecret = []byte("test-secret-0123456789-0123456789")

func newTestIssuer(t *testing.T) *Issuer {
	t.Helper()
	iss, err := NewIssuer("competencias-api", testSecret)
	if err != nil {
		t.Fatalf("NewIssuer: %v", err)
	}
	return iss
}

func TestNewIssuerEmptySecret(t *testing.T) {
	if _, err := NewIssuer("x", nil); err == nil {
		t.Fatal("NewIssuer with empty secret must fail")
	}
}

func TestIssueParseRoundtrip(t *testing.T) {
	iss := newTestIssuer(t)

	token, exp, err := iss.IssueAccess("42")
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}
	if !exp.After(time.Now().Add(7 * time.Hour)) {
		t.Errorf("default TTL should be ~8h, exp=%v", exp)
	}

	sub, err := iss.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if sub != "42" {
		t.Errorf("sub = %q, want %q", sub, "42")
	}
}

func TestParseExpired(t *testing.T) {
	iss := newTestIssuer(t)

	// Congelar el reloj para emitir, luego avanzar para validar.
	base := time.Now()
	iss.now = func() time.Time { return base }

	token, _, err := iss.IssueAccessTTL("42", 0)
	if err != nil {
		t.Fatalf("IssueAccessTTL: %v", err)
	}

	iss.now = func() time.Time { return base.Add(1 * time.Second) }
	if _, err := iss.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("ttl=0 token must be rejected as invalid, got %v", err)
	}
}

func TestParseTampered(t *testing.T) {
	iss := newTestIssuer(t)
	token, _, err := iss.IssueAccess("42")
	if err != nil {
		t.Fatal(err)
	}

	// Alterar un byte del payload invalida la firma.
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected JWT shape: %s", token)
	}
	payload := []byte(parts[1])
	if payload[3] == 'A' {
		payload[3] = 'B'
	} else {
		payload[3] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	if _, err := iss.Parse(tampered); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("tampered token must fail with ErrInvalidToken, got %v", err)
	}
}

func TestParseGarbage(t *testing.T) {
	iss := newTestIssuer(t)
	for _, raw := range []string{"", "garbage", "a.b", "a.b.c"} {
		if _, err := iss.Parse(raw); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Parse(%q): want ErrInvalidToken, got %v", raw, err)
		}
	}
}

func TestParseWrongSecret(t *testing.T) {
	iss := newTestIssuer(t)
	token, _, err := iss.IssueAccess("42")
	if err != nil {
		t.Fatal(err)
	}

	other, err := NewIssuer("competencias-api", []byte("otro-secreto-completamente-distinto"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := other.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("token signed with another secret must fail, got %v", err)
	}
}

func TestParseMissingSub(t *testing.T) {
	iss := newTestIssuer(t)
	if _, _, err := iss.IssueAccessTTL("", time.Minute); err == nil {
		t.Error("issuing without subject must fail")
	}

	// Token con firma válida pero sin claim sub: debe normalizar a ErrInvalidToken.
	now := time.Now().UTC()
	tk := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, jwtv5.MapClaims{
		"iss": "competencias-api",
		"iat": now.Unix(),
		"exp": now.Add(time.Minute).Unix(),
	})
	signed, err := tk.SignedString(testSecret)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := iss.Parse(signed); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("token without sub must fail with ErrInvalidToken, got %v", err)
	}
}
