package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/monitoring-admin-api/internal/access"
	"github.com/noah-isme/monitoring-admin-api/internal/middleware"
	"github.com/noah-isme/monitoring-admin-api/internal/models"
)

type settingsServiceMock struct {
	invalidated int
}

func (m *settingsServiceMock) Get(context.Context) (models.GlobalSettings, error) {
	return models.GlobalSettings{SearchLimit: 1000, RowsPerPage: 50, MaxInTable: 50, LoginAttempts: 5}, nil
}

func (m *settingsServiceMock) Invalidate(context.Context) error {
	m.invalidated++
	return nil
}

func TestSettingsHandlerRefresh(t *testing.T) {
	cases := map[string]struct {
		userType    access.UserType
		status      int
		invalidated int
	}{
		"super admin": {access.UserTypeSuperAdmin, http.StatusOK, 1},
		"admin":       {access.UserTypeAdmin, http.StatusForbidden, 0},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			svc := &settingsServiceMock{}
			h := NewSettingsHandler(svc)
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodPost, "/settings/refresh", nil)
			c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "1", UserType: int(tc.userType), UIDefaultAccess: true})

			h.Refresh(c)

			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, tc.invalidated, svc.invalidated)
			if tc.status == http.StatusOK {
				assert.Contains(t, w.Body.String(), `"search_limit":1000`)
			}
		})
	}
}
