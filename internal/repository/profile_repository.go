package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/monitoring-admin-api/internal/models"
	"github.com/noah-isme/monitoring-admin-api/internal/preference"
)

// ProfileObserver records the duration of preference store operations.
type ProfileObserver interface {
	ObserveProfileOperation(operation, outcome string, d time.Duration)
}

// ProfileRepository stores user preferences in the profiles table. It implements
// preference.Backend.
type ProfileRepository struct {
	db       *sqlx.DB
	observer ProfileObserver
}

// NewProfileRepository constructs the repository. observer may be nil.
func NewProfileRepository(db *sqlx.DB, observer ProfileObserver) *ProfileRepository {
	return &ProfileRepository{db: db, observer: observer}
}

var _ preference.Backend = (*ProfileRepository)(nil)

const profileColumns = `userid, idx, idx2, value_id, value_int, value_str, type`

const upsertProfile = `INSERT INTO profiles (userid, idx, idx2, value_id, value_int, value_str, type)
VALUES (:userid, :idx, :idx2, :value_id, :value_int, :value_str, :type)
ON CONFLICT (userid, idx, idx2)
DO UPDATE SET value_id = EXCLUDED.value_id, value_int = EXCLUDED.value_int,
              value_str = EXCLUDED.value_str, type = EXCLUDED.type`

// Get returns the scalar stored under key.
func (r *ProfileRepository) Get(ctx context.Context, userID, key string) (value string, found bool, err error) {
	defer r.observe("get", time.Now(), &err)

	query := `SELECT ` + profileColumns + ` FROM profiles WHERE userid = $1 AND idx = $2 AND idx2 = 0`
	var row models.Profile
	if err = r.db.GetContext(ctx, &row, query, userID, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get profile %s: %w", key, err)
	}
	return profileValue(row), true, nil
}

// GetList returns every value stored under key ordered by position.
func (r *ProfileRepository) GetList(ctx context.Context, userID, key string) (values []string, err error) {
	defer r.observe("get_list", time.Now(), &err)

	query := `SELECT ` + profileColumns + ` FROM profiles WHERE userid = $1 AND idx = $2 ORDER BY idx2 ASC`
	var rows []models.Profile
	if err = r.db.SelectContext(ctx, &rows, query, userID, key); err != nil {
		return nil, fmt.Errorf("list profile %s: %w", key, err)
	}
	values = make([]string, 0, len(rows))
	for _, row := range rows {
		values = append(values, profileValue(row))
	}
	return values, nil
}

// Set stores value at position zero of key.
func (r *ProfileRepository) Set(ctx context.Context, userID, key, value string, typ preference.ValueType) (err error) {
	defer r.observe("set", time.Now(), &err)

	row, err := newProfile(userID, key, 0, value, typ)
	if err != nil {
		return err
	}
	if _, err = r.db.NamedExecContext(ctx, upsertProfile, row); err != nil {
		return fmt.Errorf("upsert profile %s: %w", key, err)
	}
	return nil
}

// SetList replaces every value of key within one transaction.
func (r *ProfileRepository) SetList(ctx context.Context, userID, key string, values []string, typ preference.ValueType) (err error) {
	defer r.observe("set_list", time.Now(), &err)

	rows := make([]models.Profile, 0, len(values))
	for i, value := range values {
		row, err := newProfile(userID, key, i, value, typ)
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin profile tx: %w", err)
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM profiles WHERE userid = $1 AND idx = $2`, userID, key); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clear profile %s: %w", key, err)
	}
	for i := range rows {
		if _, err = tx.NamedExecContext(ctx, upsertProfile, rows[i]); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert profile %s: %w", key, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit profile tx: %w", err)
	}
	return nil
}

// Delete removes the scalar stored under key.
func (r *ProfileRepository) Delete(ctx context.Context, userID, key string) (err error) {
	defer r.observe("delete", time.Now(), &err)

	if _, err = r.db.ExecContext(ctx, `DELETE FROM profiles WHERE userid = $1 AND idx = $2 AND idx2 = 0`, userID, key); err != nil {
		return fmt.Errorf("delete profile %s: %w", key, err)
	}
	return nil
}

// DeleteList removes every value stored under key.
func (r *ProfileRepository) DeleteList(ctx context.Context, userID, key string) (err error) {
	defer r.observe("delete_list", time.Now(), &err)

	if _, err = r.db.ExecContext(ctx, `DELETE FROM profiles WHERE userid = $1 AND idx = $2`, userID, key); err != nil {
		return fmt.Errorf("delete profile list %s: %w", key, err)
	}
	return nil
}

func (r *ProfileRepository) observe(operation string, start time.Time, err *error) {
	if r.observer == nil {
		return
	}
	outcome := "success"
	if *err != nil {
		outcome = "error"
	}
	r.observer.ObserveProfileOperation(operation, outcome, time.Since(start))
}

// newProfile maps value onto the column of its type. An empty numeric value is
// stored as NULL and read back as an empty string.
func newProfile(userID, key string, idx2 int, value string, typ preference.ValueType) (models.Profile, error) {
	row := models.Profile{UserID: userID, Idx: key, Idx2: idx2, Type: int(typ)}
	switch typ {
	case preference.TypeID, preference.TypeInt:
		if value == "" {
			return row, nil
		}
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return models.Profile{}, fmt.Errorf("profile %s: %q is not a %s value", key, value, typ)
		}
		if typ == preference.TypeID {
			row.ValueID = &n
		} else {
			row.ValueInt = &n
		}
	case preference.TypeStr:
		row.ValueStr = &value
	default:
		return models.Profile{}, fmt.Errorf("profile %s: unsupported value type %s", key, typ)
	}
	return row, nil
}

func profileValue(row models.Profile) string {
	var n *int64
	switch preference.ValueType(row.Type) {
	case preference.TypeID:
		n = row.ValueID
	case preference.TypeInt:
		n = row.ValueInt
	default:
		if row.ValueStr != nil {
			return *row.ValueStr
		}
		return ""
	}
	if n == nil {
		return ""
	}
	return strconv.FormatInt(*n, 10)
}
