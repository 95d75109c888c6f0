package crypto

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is used when the caller does not specify a lifetime.
const DefaultTokenTTL = 30 * time.Minute

// Verification failures are distinguishable for logging and tests but
// all collapse to a single 401 at the HTTP boundary.
var (
	ErrInvalidSignature = errors.New("token signature invalid")
	ErrTokenExpired     = errors.New("token expired")
	ErrMalformedClaims  = errors.New("token missing required claims")
)

// Claims is the payload of an access token: subject is the username,
// user_id the numeric user id, role the stored role string. Role may be
// absent on older tokens and then grants no elevated privilege.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64  `json:"user_id"`
	Role   string `json:"role,omitempty"`
}

// IssueToken creates a signed HS256 access token. Expiry is computed
// as now (UTC) plus ttl; a zero ttl falls back to DefaultTokenTTL.
func IssueToken(username string, userID int64, role string, secret string, ttl time.Duration) (string, error) {
	if ttl == 0 {
		ttl = DefaultTokenTTL
	}

	now := time.Now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
		Role:   role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// VerifyToken parses and validates an access token. Failure kinds:
//
//   - ErrTokenExpired: the embedded expiry has elapsed;
//   - ErrInvalidSignature: MAC mismatch, wrong algorithm, or a token
//     that is not structurally a JWT;
//   - ErrMalformedClaims: a well-signed token missing subject or user_id.
func VerifyToken(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSignature
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidSignature
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidSignature
	}

	if claims.Subject == "" || claims.UserID == 0 {
		return nil, ErrMalformedClaims
	}

	return claims, nil
}
