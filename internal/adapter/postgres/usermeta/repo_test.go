package usermeta

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/writeassist-backend/internal/domain"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestRepo_Get(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	tests := []struct {
		name    string
		setup   func(mock pgxmock.PgxPoolIface)
		want    string
		wantErr error
	}{
		{
			name: "found",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT meta_value FROM user_meta WHERE user_id = \$1 AND meta_key = \$2`).
					WithArgs(pgxmock.AnyArg(), domain.MetaKeyPreferredLanguage).
					WillReturnRows(pgxmock.NewRows([]string{"meta_value"}).AddRow("hi"))
			},
			want: "hi",
		},
		{
			name: "not found",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT meta_value FROM user_meta`).
					WithArgs(pgxmock.AnyArg(), domain.MetaKeyPreferredLanguage).
					WillReturnError(pgx.ErrNoRows)
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mock := newMock(t)
			tt.setup(mock)

			got, err := New(mock).Get(context.Background(), userID, domain.MetaKeyPreferredLanguage)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepo_GetMany(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	mock.ExpectQuery(`SELECT meta_key, meta_value FROM user_meta WHERE user_id = \$1 AND meta_key IN \(\$2,\$3\)`).
		WithArgs(pgxmock.AnyArg(), domain.MetaKeyAPIKey, domain.MetaKeyPreferredLanguage).
		WillReturnRows(pgxmock.NewRows([]string{"meta_key", "meta_value"}).
			AddRow(domain.MetaKeyPreferredLanguage, "ta"))

	got, err := New(mock).GetMany(context.Background(), uuid.New(), domain.MetaKeyAPIKey, domain.MetaKeyPreferredLanguage)

	require.NoError(t, err)
	assert.Equal(t, map[string]string{domain.MetaKeyPreferredLanguage: "ta"}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_GetMany_NoKeys(t *testing.T) {
	t.Parallel()

	mock := newMock(t)

	got, err := New(mock).GetMany(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_Set(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	mock := newMock(t)
	mock.ExpectExec(`INSERT INTO user_meta \(user_id,meta_key,meta_value,updated_at\) VALUES \(\$1,\$2,\$3,now\(\)\) ON CONFLICT \(user_id, meta_key\) DO UPDATE`).
		WithArgs(userID, domain.MetaKeyAPIKey, "sealed").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := New(mock).Set(context.Background(), userID, domain.MetaKeyAPIKey, "sealed")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_Set_CheckViolation(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	mock.ExpectExec(`INSERT INTO user_meta`).
		WithArgs(pgxmock.AnyArg(), "", "v").
		WillReturnError(&pgconn.PgError{Code: "23514"})

	err := New(mock).Set(context.Background(), uuid.New(), "", "v")

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_Delete(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rows int64
	}{
		{"existing key", 1},
		{"missing key", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mock := newMock(t)
			mock.ExpectExec(`DELETE FROM user_meta WHERE user_id = \$1 AND meta_key = \$2`).
				WithArgs(pgxmock.AnyArg(), domain.MetaKeyAPIKey).
				WillReturnResult(pgxmock.NewResult("DELETE", tt.rows))

			err := New(mock).Delete(context.Background(), uuid.New(), domain.MetaKeyAPIKey)

			require.NoError(t, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepo_Delete_ConnectionError(t *testing.T) {
	t.Parallel()

	connErr := errors.New("connection reset")
	mock := newMock(t)
	mock.ExpectExec(`DELETE FROM user_meta`).
		WithArgs(pgxmock.AnyArg(), domain.MetaKeyAPIKey).
		WillReturnError(connErr)

	err := New(mock).Delete(context.Background(), uuid.New(), domain.MetaKeyAPIKey)

	assert.ErrorIs(t, err, connErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}
