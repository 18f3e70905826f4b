package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/AnushkaaaaS/Neighborly/internal/api/handlers"
)

type contextKey string

const userIDKey contextKey = "userID"

// HeaderUserID заголовок с ID пользователя, используется когда JWT секрет не задан
const HeaderUserID = "X-User-ID"

const (
	msgMissingCredentials = "missing credentials"
	msgInvalidToken       = "invalid token"
)

var (
	errMissingCredentials = errors.New("missing credentials")
	errInvalidToken       = errors.New("invalid token")
)

// Auth аутентификация запросов
// С секретом ожидается "Authorization: Bearer <HS256 JWT>", ID пользователя берётся из claim sub.
// Без секрета ID пользователя берётся из заголовка X-User-ID.
type Auth struct {
	secret []byte
	issuer string
}

// NewAuth создает middleware аутентификации
func NewAuth(secret, issuer string) *Auth {
	return &Auth{secret: []byte(secret), issuer: issuer}
}

// Required отклоняет запросы без валидной аутентификации
func (a *Auth) Required(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := a.authenticate(r)
		if err != nil {
			msg := msgInvalidToken
			if errors.Is(err, errMissingCredentials) {
				msg = msgMissingCredentials
			}
			handlers.RespondUnauthorized(w, msg)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}

// Optional кладёт ID пользователя в контекст, если запрос аутентифицирован, и никогда не отклоняет
func (a *Auth) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userID, err := a.authenticate(r); err == nil {
			r = r.WithContext(WithUserID(r.Context(), userID))
		}
		next.ServeHTTP(w, r)
	})
}

func (a *Auth) authenticate(r *http.Request) (string, error) {
	if len(a.secret) == 0 {
		userID := strings.TrimSpace(r.Header.Get(HeaderUserID))
		if userID == "" {
			return "", errMissingCredentials
		}
		return userID, nil
	}

	header := r.Header.Get("Authorization")
	if header == "" {
		return "", errMissingCredentials
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errInvalidToken
	}

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if a.issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.issuer))
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(strings.TrimSpace(parts[1]), claims, func(*jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, opts...)
	if err != nil || !token.Valid {
		return "", errInvalidToken
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return "", errInvalidToken
	}

	return claims.Subject, nil
}

// WithUserID кладёт ID пользователя в контекст
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserID возвращает ID аутентифицированного пользователя
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}
