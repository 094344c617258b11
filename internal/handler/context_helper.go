package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/monitoring-admin-api/internal/access"
	"github.com/noah-isme/monitoring-admin-api/internal/middleware"
	"github.com/noah-isme/monitoring-admin-api/internal/models"
	"github.com/noah-isme/monitoring-admin-api/internal/preference"
	"github.com/noah-isme/monitoring-admin-api/internal/validation"
	appErrors "github.com/noah-isme/monitoring-admin-api/pkg/errors"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

// subjectFromClaims keeps only the rules naming a known capability.
func subjectFromClaims(claims *models.JWTClaims) access.Subject {
	subject := access.Subject{
		UserType:      access.UserType(claims.UserType),
		DefaultAccess: claims.UIDefaultAccess,
		Rules:         make(map[access.Capability]bool, len(claims.UIRules)),
	}
	for name, allowed := range claims.UIRules {
		if capability := access.Capability(name); access.Known(capability) {
			subject.Rules[capability] = allowed
		}
	}
	return subject
}

// requestValues merges query parameters with a posted form. Body values win.
func requestValues(c *gin.Context, skip ...string) (validation.Request, error) {
	if err := c.Request.ParseForm(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid form payload")
	}
	req := make(validation.Request, len(c.Request.Form))
	for field, values := range c.Request.URL.Query() {
		req[field] = values
	}
	for field, values := range c.Request.PostForm {
		req[field] = values
	}
	for _, field := range skip {
		delete(req, field)
	}
	return req, nil
}

var guard = access.NewGuard()

// listContext resolves what every list endpoint needs from an authenticated request.
// A body that cannot be parsed is reported only to users allowed to open capability.
func listContext(c *gin.Context, profiles preference.Backend, capability access.Capability, skip ...string) (access.Subject, preference.Store, validation.Request, error) {
	claims := claimsFromContext(c)
	if claims == nil {
		return access.Subject{}, nil, nil, appErrors.ErrUnauthorized
	}
	subject := subjectFromClaims(claims)
	req, err := requestValues(c, skip...)
	if err != nil {
		if !guard.CheckPermission(subject, capability) {
			return access.Subject{}, nil, nil, appErrors.Clone(appErrors.ErrForbidden, "")
		}
		return access.Subject{}, nil, nil, err
	}
	return subject, preference.Bind(profiles, claims.UserID), req, nil
}
