// Package auth signs and verifies the HS256 tokens shared with the
// external editing server.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/dochost/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Document is the "document" section of an editor token.
type Document struct {
	Key      string `json:"key"`
	URL      string `json:"url"`
	FileType string `json:"fileType"`
	Title    string `json:"title"`
}

// EditorConfig is the "editorConfig" section of an editor token.
type EditorConfig struct {
	Mode        string `json:"mode"`
	CallbackURL string `json:"callbackUrl"`
}

// DocumentClaims binds a document key, its source URL, file type, title and
// the callback URL the editor must report to.
type DocumentClaims struct {
	jwt.RegisteredClaims
	Document     Document     `json:"document"`
	EditorConfig EditorConfig `json:"editorConfig"`
}

// Policy says what to do with requests that carry no token.
type Policy int

const (
	// Optional lets anonymous requests through.
	Optional Policy = iota
	// Required rejects them with common.ErrMissingToken.
	Required
)

// PolicyFor maps the RequireToken config flag onto a Policy.
func PolicyFor(requireToken bool) Policy {
	if requireToken {
		return Required
	}
	return Optional
}

// Verifier signs and checks tokens with a single shared secret.
type Verifier struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewVerifier builds a Verifier. Tokens produced by Sign expire after ttl;
// ttl <= 0 produces tokens without exp.
func NewVerifier(secret []byte, ttl time.Duration) *Verifier {
	return &Verifier{secret: secret, ttl: ttl, now: time.Now}
}

func (v *Verifier) Sign(claims DocumentClaims) (string, error) {
	now := v.now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	if v.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(v.ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(v.secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// Verify checks signature, algorithm (HS256 only) and exp when present.
// It returns common.ErrTokenExpired for expired tokens and
// common.ErrInvalidToken for everything else.
func (v *Verifier) Verify(tokenString string) (*DocumentClaims, error) {
	claims := &DocumentClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}

// Check applies policy to a possibly empty token. It returns nil claims and
// no error for an anonymous request under Optional.
func (v *Verifier) Check(tokenString string, policy Policy) (*DocumentClaims, error) {
	if tokenString == "" {
		if policy == Required {
			return nil, common.ErrMissingToken
		}
		return nil, nil
	}
	return v.Verify(tokenString)
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header value. Anything else yields "".
func BearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
