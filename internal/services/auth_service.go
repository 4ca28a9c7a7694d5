package services

import (
	"context"
	"errors"
	"strconv"
	"time"

	"nutrition-admin/config"
	apperrors "nutrition-admin/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
	initdata "github.com/telegram-mini-apps/init-data-golang"
)

// ErrAuthDisabled is returned when no BOT_TOKEN is configured.
var ErrAuthDisabled = errors.New("auth disabled")

type AuthService struct {
	botToken    string
	initDataTTL time.Duration
	jwtSecret   []byte
}

func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{
		botToken:    cfg.BotToken,
		initDataTTL: cfg.InitDataTTL,
		jwtSecret:   []byte(cfg.ServiceJWTSecret),
	}
}

// Enabled reports whether requests must be authenticated at all.
func (s *AuthService) Enabled() bool {
	return s.botToken != ""
}

// ServiceTokensEnabled reports whether Bearer service tokens are accepted.
func (s *AuthService) ServiceTokensEnabled() bool {
	return len(s.jwtSecret) > 0
}

// Caller identifies who made an authenticated request.
type Caller struct {
	TelegramUserID int64
	Username       string
	Service        string
}

// Key is the identity used for rate limiting.
func (c Caller) Key() string {
	if c.TelegramUserID != 0 {
		return "tg:" + strconv.FormatInt(c.TelegramUserID, 10)
	}
	if c.Service != "" {
		return "svc:" + c.Service
	}
	return ""
}

// ValidateInitData checks the Mini App initData signature against the bot token
// and its auth_date against the configured TTL.
func (s *AuthService) ValidateInitData(raw string) (Caller, error) {
	if !s.Enabled() {
		return Caller{}, ErrAuthDisabled
	}
	if raw == "" {
		return Caller{}, apperrors.ErrUnauthorized
	}
	if err := initdata.Validate(raw, s.botToken, s.initDataTTL); err != nil {
		return Caller{}, err
	}
	data, err := initdata.Parse(raw)
	if err != nil {
		return Caller{}, err
	}
	return Caller{
		TelegramUserID: data.User.ID,
		Username:       data.User.Username,
	}, nil
}

type ServiceClaims struct {
	Service string `json:"svc"`
	jwt.RegisteredClaims
}

// ParseServiceToken validates an HS256 token minted for automation clients.
func (s *AuthService) ParseServiceToken(tokenString string) (Caller, error) {
	if tokenString == "" || !s.ServiceTokensEnabled() {
		return Caller{}, apperrors.ErrUnauthorized
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &ServiceClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.ErrUnauthorized
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return Caller{}, apperrors.ErrUnauthorized
	}

	claims, ok := parsed.Claims.(*ServiceClaims)
	if !ok || !parsed.Valid || claims.Service == "" {
		return Caller{}, apperrors.ErrUnauthorized
	}

	return Caller{Service: claims.Service}, nil
}

// IssueServiceToken mints a service token. Operators use it to hand out
// credentials to scripts that pull dashboard data.
func (s *AuthService) IssueServiceToken(service string, ttl time.Duration) (string, error) {
	if !s.ServiceTokensEnabled() {
		return "", apperrors.ErrUnauthorized
	}
	if service == "" {
		return "", apperrors.ErrInvalidInput
	}
	now := time.Now()
	claims := ServiceClaims{
		Service: service,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   service,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

type ctxKey string

var callerKey ctxKey = "caller"

func WithCaller(ctx context.Context, caller Caller) context.Context {
	return context.WithValue(ctx, callerKey, caller)
}

func CallerFromContext(ctx context.Context) (Caller, bool) {
	caller, ok := ctx.Value(callerKey).(Caller)
	return caller, ok
}
