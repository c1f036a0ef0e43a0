package cache

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/leapstack-labs/phpstyle/pkg/core"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "cache", "phpstyle.db"), WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sample() []core.Violation {
	return []core.Violation{
		{File: "old/a.php", Line: 1, Column: 2, Offset: 1, RuleID: "no-tabs", Severity: core.SeverityWarning, Message: "Tabs must not be used; use spaces"},
		{File: "old/a.php", Line: 3, Column: 1, Offset: 12, RuleID: "end-of-file", Severity: core.SeverityError, Message: "Expected 1 newline at end of file; 0 found"},
	}
}

func TestContentHash(t *testing.T) {
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", ContentHash(nil))
	assert.NotEqual(t, ContentHash([]byte("a")), ContentHash([]byte("b")))
}

func TestStore_GetPut(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)

	_, ok, err := s.Get(ctx, "a.php", "h1", "fp1")
	require.NoError(t, err)
	assert.False(t, ok, "empty cache")

	require.NoError(t, s.Put(ctx, "a.php", "h1", "fp1", sample()))

	got, ok, err := s.Get(ctx, "a.php", "h1", "fp1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got, 2)
	assert.Equal(t, "a.php", got[0].File, "file is rewritten to the requested path")
	assert.Equal(t, core.SeverityWarning, got[0].Severity)
	assert.Equal(t, core.SeverityError, got[1].Severity)
	assert.Equal(t, 12, got[1].Offset)

	tests := []struct {
		name, hash, fp string
	}{
		{"content changed", "h2", "fp1"},
		{"standard changed", "h1", "fp2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok, err := s.Get(ctx, "a.php", tt.hash, tt.fp)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}

	// Replace with a clean result.
	require.NoError(t, s.Put(ctx, "a.php", "h2", "fp1", nil))
	got, ok, err = s.Get(ctx, "a.php", "h2", "fp1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Empty(t, got)

	require.NoError(t, s.Clear(ctx))
	_, ok, err = s.Get(ctx, "a.php", "h2", "fp1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "phpstyle.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, "a.php", "h", "fp", sample()))
	v, err := s.Version()
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err, "migrations are idempotent")
	defer s.Close()
	assert.Equal(t, path, s.Path())
	_, ok, err := s.Get(ctx, "a.php", "h", "fp")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestStore_Memory(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	defer s.Close()
	require.NoError(t, s.Put(context.Background(), "a.php", "h", "fp", nil))
}

func TestStore_RunLifecycle(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)

	run, err := s.CreateRun(ctx, "ZF2")
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)

	got, err := s.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, "ZF2", got.Standard)
	assert.Nil(t, got.CompletedAt)

	require.NoError(t, s.CompleteRun(ctx, run.ID, RunTotals{Files: 3, Errors: 1, Warnings: 4, Cached: 2}))
	got, err = s.GetRun(ctx, run.ID)
	require.NoError(t, err)
	require.NotNil(t, got.CompletedAt)
	assert.Equal(t, 3, got.Files)
	assert.Equal(t, 1, got.Errors)
	assert.Equal(t, 4, got.Warnings)
	assert.Equal(t, 2, got.Cached)

	_, err = s.GetRun(ctx, "missing")
	assert.ErrorContains(t, err, "run not found")
	assert.ErrorContains(t, s.CompleteRun(ctx, "missing", RunTotals{}), "run not found")
}

func TestStore_LatestRun(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)

	got, err := s.LatestRun(ctx)
	require.NoError(t, err)
	assert.Nil(t, got, "no runs yet")

	_, err = s.CreateRun(ctx, "PSR2")
	require.NoError(t, err)
	second, err := s.CreateRun(ctx, "ZF2")
	require.NoError(t, err)
	require.NoError(t, s.CompleteRun(ctx, second.ID, RunTotals{Files: 2, Warnings: 1}))

	got, err = s.LatestRun(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, second.ID, got.ID)
	assert.Equal(t, "ZF2", got.Standard)
	assert.Equal(t, 2, got.Files)
	assert.Equal(t, 1, got.Warnings)
}

func TestStore_Failures(t *testing.T) {
	boom := errors.New("disk I/O error")
	ctx := context.Background()

	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		call    func(s *Store) error
		wantErr string
	}{
		{
			name: "get query fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT content_hash").WillReturnError(boom)
			},
			call: func(s *Store) error {
				_, _, err := s.Get(ctx, "a.php", "h", "fp")
				return err
			},
			wantErr: "failed to read cached result",
		},
		{
			name: "corrupt entry",
			setup: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"content_hash", "fingerprint", "violations"}).
					AddRow("h", "fp", "{not json")
				mock.ExpectQuery("SELECT content_hash").WithArgs("a.php").WillReturnRows(rows)
			},
			call: func(s *Store) error {
				_, _, err := s.Get(ctx, "a.php", "h", "fp")
				return err
			},
			wantErr: "failed to decode cached result for a.php",
		},
		{
			name: "put fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO results").WillReturnError(boom)
			},
			call: func(s *Store) error {
				return s.Put(ctx, "a.php", "h", "fp", sample())
			},
			wantErr: "failed to store result for a.php",
		},
		{
			name: "create run fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO runs").WillReturnError(boom)
			},
			call: func(s *Store) error {
				_, err := s.CreateRun(ctx, "PSR2")
				return err
			},
			wantErr: "failed to create run",
		},
		{
			name: "complete run fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("UPDATE runs").WillReturnError(boom)
			},
			call: func(s *Store) error {
				return s.CompleteRun(ctx, "id", RunTotals{})
			},
			wantErr: "failed to complete run",
		},
		{
			name: "clear fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("DELETE FROM results").WillReturnError(boom)
			},
			call: func(s *Store) error {
				return s.Clear(ctx)
			},
			wantErr: "failed to clear cache",
		},
		{
			name: "latest run fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT id FROM runs").WillReturnError(boom)
			},
			call: func(s *Store) error {
				_, err := s.LatestRun(ctx)
				return err
			},
			wantErr: "failed to find latest run",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.setup(mock)
			err = tt.call(New(db))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestStore_NotOpened(t *testing.T) {
	s := &Store{}
	assert.Error(t, s.Migrate())
	_, err := s.Version()
	assert.Error(t, err)
	assert.NoError(t, s.Close())
}
