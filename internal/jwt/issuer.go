// Package jwt emite y valida los access tokens del servicio.
//
// Los tokens son JWT HS256 firmados con un secreto simétrico único del
// proceso. El secreto se inyecta al construir el Issuer (nunca una variable
// global ni un default hardcodeado); en producción debe venir de un gestor
// de secretos vía configuración.
package jwt

import (
	"errors"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

// DefaultAccessTTL es el TTL por defecto de un access token.
const DefaultAccessTTL = 8 * time.Hour

// ErrInvalidToken cubre todo fallo de validación: firma inválida, encoding
// malformado, claim sub ausente o exp vencido. Para el caller un token
// expirado es indistinguible de uno inválido: ambos son "no autenticado".
var ErrInvalidToken = errors.New("invalid_token")

// Issuer firma y valida tokens con el secreto del proceso.
// No tiene estado mutable por request: es seguro para uso concurrente.
type Issuer struct {
	iss       string
	secret    []byte
	accessTTL time.Duration
	now       func() time.Time // inyectable en tests
}

// NewIssuer crea un Issuer. El secreto no puede estar vacío.
func NewIssuer(iss string, secret []byte) (*Issuer, error) {
	if len(secret) == 0 {
		return nil, errors.New("jwt: empty signing secret")
	}
	return &Issuer{
		iss:       iss,
		secret:    secret,
		accessTTL: DefaultAccessTTL,
		now:       time.Now,
	}, nil
}

// WithAccessTTL cambia el TTL por defecto (fluent, para wiring).
func (i *Issuer) WithAccessTTL(ttl time.Duration) *Issuer {
	if ttl > 0 {
		i.accessTTL = ttl
	}
	return i
}

// AccessTTL expone el TTL por defecto vigente.
func (i *Issuer) AccessTTL() time.Duration { return i.accessTTL }

// IssueAccess emite un access token para el subject con el TTL por defecto.
func (i *Issuer) IssueAccess(sub string) (string, time.Time, error) {
	return i.IssueAccessTTL(sub, i.accessTTL)
}

// IssueAccessTTL emite un access token con TTL explícito.
// Claims: iss, sub, iat, nbf, exp (UTC). ttl=0 produce un token ya vencido.
func (i *Issuer) IssueAccessTTL(sub string, ttl time.Duration) (string, time.Time, error) {
	if sub == "" {
		return "", time.Time{}, errors.New("jwt: empty subject")
	}
	now := i.now().UTC()
	exp := now.Add(ttl)

	claims := jwtv5.MapClaims{
		"iss": i.iss,
		"sub": sub,
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"exp": exp.Unix(),
	}
	tk := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	tk.Header["typ"] = "JWT"

	signed, err := tk.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Parse valida firma (solo HS256), iss si fue configurado, exp/nbf, y
// extrae el subject. Cualquier fallo se normaliza a ErrInvalidToken para
// no filtrar detalles de decode al caller.
func (i *Issuer) Parse(token string) (string, error) {
	keyfunc := func(t *jwtv5.Token) (any, error) {
		return i.secret, nil
	}

	opts := []jwtv5.ParserOption{
		jwtv5.WithValidMethods([]string{"HS256"}),
		jwtv5.WithExpirationRequired(),
		jwtv5.WithTimeFunc(i.now),
	}
	if i.iss != "" {
		opts = append(opts, jwtv5.WithIssuer(i.iss))
	}

	tok, err := jwtv5.Parse(token, keyfunc, opts...)
	if err != nil || !tok.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := tok.Claims.(jwtv5.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", ErrInvalidToken
	}
	return sub, nil
}
