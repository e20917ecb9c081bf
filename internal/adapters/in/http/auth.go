package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// OperatorRole is the role claim operator tokens carry.
const OperatorRole = "operator"

var ErrSecretIsRequired = errors.New("operator token secret is required")

// OperatorClaims are the claims of an operator bearer token.
type OperatorClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// OperatorAuth verifies HS256 operator tokens.
type OperatorAuth struct {
	secret []byte
	now    func() time.Time
}

func NewOperatorAuth(secret string) (*OperatorAuth, error) {
	if secret == "" {
		return nil, ErrSecretIsRequired
	}
	return &OperatorAuth{secret: []byte(secret), now: time.Now}, nil
}

// Issue signs a token for subject with the given role, valid for ttl.
func (a *OperatorAuth) Issue(subject, role string, ttl time.Duration) (string, error) {
	now := a.now()
	claims := OperatorClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// Middleware rejects requests without a valid bearer token with 401 and tokens
// without the operator role with 403.
func (a *OperatorAuth) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			header := ctx.Request().Header.Get(echo.HeaderAuthorization)
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || raw == "" {
				return deny(ctx, http.StatusUnauthorized, "missing bearer token")
			}

			claims := &OperatorClaims{}
			_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
				return a.secret, nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(a.now))
			if err != nil {
				return deny(ctx, http.StatusUnauthorized, "invalid or expired token")
			}
			if claims.Role != OperatorRole {
				return deny(ctx, http.StatusForbidden, "operator role required")
			}

			ctx.Set("operator", claims.Subject)
			return next(ctx)
		}
	}
}

func deny(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, Error{Code: code, Message: message})
}
