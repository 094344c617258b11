package service

import (
	"context"
	"fmt"
	"maps"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/monitoring-admin-api/internal/access"
	"github.com/noah-isme/monitoring-admin-api/internal/dto"
	"github.com/noah-isme/monitoring-admin-api/internal/listpage"
	"github.com/noah-isme/monitoring-admin-api/internal/models"
	"github.com/noah-isme/monitoring-admin-api/internal/preference"
	"github.com/noah-isme/monitoring-admin-api/internal/validation"
	appErrors "github.com/noah-isme/monitoring-admin-api/pkg/errors"
	"github.com/noah-isme/monitoring-admin-api/pkg/export"
)

// Export formats.
const (
	FormatCSV = "csv"
	FormatPDF = "pdf"
)

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type userLister interface {
	List(ctx context.Context, subject access.Subject, store preference.Store, req validation.Request) (*dto.UserListView, error)
}

// ExportResult is a rendered export ready to be sent as an attachment.
type ExportResult struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ExportService renders the visible page of the user list as a file.
type ExportService struct {
	users  userLister
	csv    csvRenderer
	pdf    pdfRenderer
	logger *zap.Logger
	now    func() time.Time
}

// NewExportService constructs an ExportService. Nil renderers get the defaults.
func NewExportService(users userLister, csv csvRenderer, pdf pdfRenderer, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{users: users, csv: csv, pdf: pdf, logger: logger, now: time.Now}
}

var userColumns = []export.Column{
	{Key: "username", Label: "Username"},
	{Key: "name", Label: "Name"},
	{Key: "surname", Label: "Last name"},
	{Key: "role_name", Label: "User role"},
	{Key: "groups", Label: "Groups"},
	{Key: "source", Label: "Provisioned"},
	{Key: "lastaccess", Label: "Last access"},
	{Key: "login", Label: "Login"},
	{Key: "status", Label: "Status"},
}

// ExportUsers renders the user list page that req would show. Saved sort, filter and
// page preferences are read but never changed, and filter_set/filter_rst are ignored.
func (s *ExportService) ExportUsers(ctx context.Context, subject access.Subject, store preference.Store, req validation.Request, format string) (*ExportResult, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format != FormatCSV && format != FormatPDF {
		return nil, appErrors.Invalid("format", fmt.Sprintf("unsupported export format %q", format))
	}

	req = maps.Clone(req)
	delete(req, listpage.FieldFilterSet)
	delete(req, listpage.FieldFilterRst)

	view, err := s.users.List(ctx, subject, preference.ReadOnly(store), req)
	if err != nil {
		return nil, err
	}

	data := export.Dataset{Title: UserListTitle, Columns: userColumns}
	for _, u := range view.Users {
		data.Rows = append(data.Rows, map[string]string{
			"username":   u.Username,
			"name":       u.Name,
			"surname":    u.Surname,
			"role_name":  u.RoleName,
			"groups":     groupList(u.Groups, view.Config.MaxInTable),
			"source":     u.Source,
			"lastaccess": lastAccess(u.Session.LastAccess),
			"login":      loginState(u.AttemptFailed, view.Config.LoginAttempts),
			"status":     userStatus(u.UsersStatus),
		})
	}

	stamp := s.now().UTC().Format("20060102_150405")
	result := &ExportResult{Filename: fmt.Sprintf("users_%s.%s", stamp, format)}
	switch format {
	case FormatCSV:
		result.ContentType = "text/csv"
		result.Body, err = s.csv.Render(data)
	case FormatPDF:
		result.ContentType = "application/pdf"
		result.Body, err = s.pdf.Render(data)
	}
	if err != nil {
		s.logger.Error("failed to render user export", zap.String("format", format), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}
	return result, nil
}

func groupList(groups []models.UserGroupRef, limit int) string {
	names := make([]string, 0, len(groups))
	for i, g := range groups {
		if limit > 0 && i == limit {
			names = append(names, "...")
			break
		}
		names = append(names, g.Name)
	}
	return strings.Join(names, ", ")
}

func lastAccess(ts int64) string {
	if ts == 0 {
		return "Never"
	}
	return time.Unix(ts, 0).UTC().Format(time.RFC3339)
}

func loginState(attemptFailed, loginAttempts int) string {
	if loginAttempts > 0 && attemptFailed >= loginAttempts {
		return "Blocked"
	}
	return "Ok"
}

func userStatus(usersStatus int) string {
	if usersStatus == 1 {
		return "Disabled"
	}
	return "Enabled"
}
