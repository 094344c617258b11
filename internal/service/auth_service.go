package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/monitoring-admin-api/internal/gateway"
	"github.com/noah-isme/monitoring-admin-api/internal/models"
	appErrors "github.com/noah-isme/monitoring-admin-api/pkg/errors"
)

// uiRulePrefix turns a role UI rule name such as "administration.users" into the
// capability it controls.
const uiRulePrefix = "ui."

type authGateway interface {
	gateway.Gateway
	Login(ctx context.Context, username, password string) (*models.APILoginUser, error)
	Logout(ctx context.Context, sessionID string) error
}

// AuthConfig defines configuration for authentication flows.
type AuthConfig struct {
	AccessTokenSecret string
	AccessTokenExpiry time.Duration
	Issuer            string
}

// AuthService checks console credentials against the monitoring API and issues
// console access tokens carrying the user's role UI rules.
type AuthService struct {
	gateway   authGateway
	validator *validator.Validate
	logger    *zap.Logger
	config    AuthConfig
	now       func() time.Time
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(gw authGateway, validate *validator.Validate, logger *zap.Logger, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if config.AccessTokenExpiry <= 0 {
		config.AccessTokenExpiry = 8 * time.Hour
	}
	return &AuthService{gateway: gw, validator: validate, logger: logger, config: config, now: time.Now}
}

// Login authenticates a user and returns an access token.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}

	user, err := s.gateway.Login(ctx, req.Username, req.Password)
	if err != nil {
		s.logger.Info("login rejected", zap.String("username", req.Username), zap.Error(err))
		return nil, err
	}
	// The API session only proves the credentials; later reads use the console token.
	if err := s.gateway.Logout(ctx, user.SessionID); err != nil {
		s.logger.Warn("failed to close API session", zap.String("userid", user.UserID), zap.Error(err))
	}

	userType, err := strconv.Atoi(user.Type)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrGateway.Code, appErrors.ErrGateway.Status, "unexpected user type")
	}

	var roles []models.APIRole
	criteria := gateway.Criteria{
		Output: []string{"roleid", "name", "type"},
		IDs:    map[string][]string{"roleids": {user.RoleID}},
		Select: map[string][]string{"selectRules": {"ui", "ui.default_access"}},
	}
	if err := s.gateway.Query(ctx, gateway.EntityRole, criteria, &roles); err != nil {
		return nil, err
	}

	claims := &models.JWTClaims{
		UserID:   user.UserID,
		Username: user.Username,
		UserType: userType,
		RoleID:   user.RoleID,
		UIRules:  map[string]bool{},
	}
	if len(roles) > 0 && roles[0].Rules != nil {
		claims.UIDefaultAccess = roles[0].Rules.UIDefaultAccess == "1"
		for _, rule := range roles[0].Rules.UI {
			claims.UIRules[uiRulePrefix+rule.Name] = rule.Status == "1"
		}
	}

	token, issuedAt, err := s.sign(claims)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create access token")
	}

	s.logger.Info("console login", zap.String("userid", user.UserID), zap.Int("user_type", userType))
	return &models.LoginResponse{
		AccessToken: token,
		ExpiresIn:   int64(s.config.AccessTokenExpiry.Seconds()),
		IssuedAt:    issuedAt,
		User: models.UserInfo{
			UserID:   user.UserID,
			Username: user.Username,
			Name:     user.Name,
			Surname:  user.Surname,
			Type:     userType,
			RoleID:   user.RoleID,
		},
	}, nil
}

// ValidateToken parses and validates an access token returning the claims.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.AccessTokenSecret), nil
	}, jwt.WithIssuer(s.config.Issuer), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}
	return claims, nil
}

func (s *AuthService) sign(claims *models.JWTClaims) (string, time.Time, error) {
	issuedAt := s.now().UTC()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   claims.UserID,
		Issuer:    s.config.Issuer,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.config.AccessTokenExpiry)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.AccessTokenSecret))
	return signed, issuedAt, err
}
