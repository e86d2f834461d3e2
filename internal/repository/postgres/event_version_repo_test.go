package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"eventplanner/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var versionRowColumns = []string{"id", "event_id", "version_number", "created_at", "created_by", "changes_summary", "event_snapshot"}

func TestEventVersionRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	created := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	user := "user-1"
	mock.ExpectQuery(`INSERT INTO event_versions \(event_id, version_number, created_by, changes_summary, event_snapshot\)`).
		WithArgs("ev-1", 3, &user, "", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("ver-3", created))

	v := &domain.EventVersion{
		EventID:       "ev-1",
		VersionNumber: 3,
		CreatedBy:     &user,
		Snapshot:      domain.EventSnapshot{SchemaVersion: 1, Name: "B"},
	}
	require.NoError(t, NewEventVersionRepository(db).Create(context.Background(), v))
	assert.Equal(t, "ver-3", v.ID)
	assert.Equal(t, created, v.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventVersionRepository_MaxNumber(t *testing.T) {
	tests := []struct {
		name string
		max  int
	}{
		{"no versions", 0},
		{"existing versions", 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			mock.ExpectQuery(`SELECT COALESCE\(MAX\(version_number\), 0\) FROM event_versions WHERE event_id = \$1`).
				WithArgs("ev-1").
				WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(tt.max))

			n, err := NewEventVersionRepository(db).MaxNumber(context.Background(), "ev-1")
			require.NoError(t, err)
			assert.Equal(t, tt.max, n)
		})
	}
}

func TestEventVersionRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("decodes snapshot", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		payload := []byte(`{"schema_version":1,"name":"B","budget":10,"status":"draft","start_time":"2025-06-01T09:00:00Z"}`)
		mock.ExpectQuery(`FROM event_versions\s+WHERE id = \$1`).
			WithArgs("ver-1").
			WillReturnRows(sqlmock.NewRows(versionRowColumns).AddRow("ver-1", "ev-1", 1, time.Now(), nil, "first", payload))

		v, err := NewEventVersionRepository(db).GetByID(ctx, "ver-1")
		require.NoError(t, err)
		assert.Equal(t, "B", v.Snapshot.Name)
		assert.Equal(t, 10, v.Snapshot.Budget)
		assert.Nil(t, v.CreatedBy)
		assert.Equal(t, "first", v.ChangesSummary)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`FROM event_versions`).WillReturnError(sql.ErrNoRows)
		_, err = NewEventVersionRepository(db).GetByID(ctx, "nope")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestEventVersionRepository_ListByEventID_NewestFirst(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows(versionRowColumns).
		AddRow("ver-2", "ev-1", 2, time.Now(), "u", "", []byte(`{"schema_version":1}`)).
		AddRow("ver-1", "ev-1", 1, time.Now(), "u", "", []byte(`{}`))
	mock.ExpectQuery(`ORDER BY version_number DESC`).WithArgs("ev-1").WillReturnRows(rows)

	versions, err := NewEventVersionRepository(db).ListByEventID(context.Background(), "ev-1")
	require.NoError(t, err)
	require.Len(t, versions, 2)
	assert.Equal(t, 2, versions[0].VersionNumber)
	assert.Equal(t, 1, versions[1].Snapshot.SchemaVersion)
}
