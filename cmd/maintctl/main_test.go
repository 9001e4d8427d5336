package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"liyu1981.xyz/maintenance-tracker/pkg/common"
	"liyu1981.xyz/maintenance-tracker/pkg/db"
	_ "liyu1981.xyz/maintenance-tracker/pkg/testing"
	"liyu1981.xyz/maintenance-tracker/pkg/tracker"
)

// fileStore keeps data between commands of one test, since every command closes its handle.
func fileStore(t *testing.T) openFunc {
	path := filepath.Join(t.TempDir(), "maintctl.db")
	return func() (*db.DB, error) {
		return db.Open(db.UseSqliteDialector(path))
	}
}

func run(t *testing.T, open openFunc, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(open)
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestVersionCmd(t *testing.T) {
	out, err := run(t, fileStore(t), "version")
	require.NoError(t, err)
	assert.Contains(t, out, "maintctl dev")
	assert.Contains(t, out, "commit: none")
}

func TestMigrateCmd(t *testing.T) {
	common.SetTestLoggerNop()

	out, err := run(t, fileStore(t), "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "Migrated 5 tables")
}

func TestSeedCmd(t *testing.T) {
	common.SetTestLoggerNop()
	open := fileStore(t)

	out, err := run(t, open, "seed", "--file", "pkg/seed/testdata/fixtures.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "Company saved")
	assert.Contains(t, out, "Seeded 1 users, 3 maintenance logs, 4 work orders")

	database, err := open()
	require.NoError(t, err)
	defer database.Close()
	counts, err := tracker.New(database).Stats.StatusCounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), counts.Total)

	_, err = run(t, open, "seed", "--file", "pkg/seed/testdata/missing.yaml")
	assert.Error(t, err)
}

func TestUserCreateCmd(t *testing.T) {
	common.SetTestLoggerNop()
	open := fileStore(t)

	out, err := run(t, open, "user", "create", "-u", "alice", "-e", "Alice@Example.com", "-p", "correct horse")
	require.NoError(t, err)
	assert.Contains(t, out, "Created user alice (id 1)")

	database, err := open()
	require.NoError(t, err)
	defer database.Close()
	user, err := tracker.New(database).User.AuthenticateUser(context.Background(), "alice", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)

	// duplicate and short password are rejected
	_, err = run(t, open, "user", "create", "-u", "alice", "-e", "other@example.com", "-p", "correct horse")
	assert.ErrorIs(t, err, tracker.ErrValidation)
	_, err = run(t, open, "user", "create", "-u", "bob", "-e", "bob@example.com", "-p", "short")
	assert.ErrorIs(t, err, tracker.ErrValidation)

	// required flags
	_, err = run(t, open, "user", "create", "-u", "carol")
	assert.Error(t, err)
}
