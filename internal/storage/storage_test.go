package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "nested", "test.db"))
	require.NoError(t, err)
	require.NoError(t, db.MigrateUp())
	t.Cleanup(func() { db.Close() })
	return db
}

func testSession(name string) *Session {
	return &Session{
		Name:        &name,
		Puzzle:      "cube3",
		Size:        3,
		HistoryJSON: `{"initial_history":[1,2],"undo_history":[3]}`,
		Fingerprint: "abcd",
		MoveCount:   1,
	}
}

func TestMigrations(t *testing.T) {
	db := openTestDB(t)

	version, err := db.CurrentVersion()
	require.NoError(t, err)
	assert.Equal(t, len(migrations), version)

	// Re-running is a no-op
	require.NoError(t, db.MigrateUp())
	version, err = db.CurrentVersion()
	require.NoError(t, err)
	assert.Equal(t, len(migrations), version)
}

func TestFreshDatabaseVersion(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "fresh.db"))
	require.NoError(t, err)
	defer db.Close()

	version, err := db.CurrentVersion()
	require.NoError(t, err)
	assert.Equal(t, 0, version)
}

func TestSessionCreateGet(t *testing.T) {
	repo := NewSessionRepository(openTestDB(t))

	s := testSession("first")
	id, err := repo.Create(s)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	got, err := repo.Get(id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "first", *got.Name)
	assert.Equal(t, s.HistoryJSON, got.HistoryJSON)
	assert.Equal(t, 3, got.Size)
	assert.False(t, got.Solved)
	assert.WithinDuration(t, s.CreatedAt, got.CreatedAt, 0)
}

func TestSessionGetMissing(t *testing.T) {
	repo := NewSessionRepository(openTestDB(t))

	got, err := repo.Get("missing")
	require.NoError(t, err)
	assert.Nil(t, got)

	last, err := repo.GetLast()
	require.NoError(t, err)
	assert.Nil(t, last)
}

func TestSessionCorruptTimestamp(t *testing.T) {
	db := openTestDB(t)
	repo := NewSessionRepository(db)

	id, err := repo.Create(testSession("broken"))
	require.NoError(t, err)
	_, err = db.Exec("UPDATE sessions SET updated_at = ? WHERE session_id = ?", "yesterday", id)
	require.NoError(t, err)

	got, err := repo.Get(id)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "yesterday")
	assert.Nil(t, got)

	_, err = repo.List(10)
	assert.Error(t, err)
}

func TestSessionUpdate(t *testing.T) {
	repo := NewSessionRepository(openTestDB(t))

	s := testSession("edit")
	_, err := repo.Create(s)
	require.NoError(t, err)

	s.HistoryJSON = `{"initial_history":[],"undo_history":[]}`
	s.Solved = true
	require.NoError(t, repo.Update(s))

	got, err := repo.Get(s.SessionID)
	require.NoError(t, err)
	assert.Equal(t, s.HistoryJSON, got.HistoryJSON)
	assert.True(t, got.Solved)

	assert.Error(t, repo.Update(&Session{SessionID: "missing"}))
}

func TestSessionListAndLast(t *testing.T) {
	repo := NewSessionRepository(openTestDB(t))

	var ids []string
	for _, name := range []string{"a", "b", "c"} {
		id, err := repo.Create(testSession(name))
		require.NoError(t, err)
		ids = append(ids, id)
	}

	list, err := repo.List(2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, ids[2], list[0].SessionID)
	assert.Equal(t, ids[1], list[1].SessionID)

	last, err := repo.GetLast()
	require.NoError(t, err)
	assert.Equal(t, ids[2], last.SessionID)
}

func TestSessionDeleteCascades(t *testing.T) {
	db := openTestDB(t)
	sessions := NewSessionRepository(db)
	moves := NewMoveRepository(db)

	id, err := sessions.Create(testSession("gone"))
	require.NoError(t, err)
	require.NoError(t, moves.Replace(id, []int{3, 4}, nil))

	require.NoError(t, sessions.Delete(id))

	got, err := sessions.Get(id)
	require.NoError(t, err)
	assert.Nil(t, got)

	count, err := moves.Count(id)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestMoveReplace(t *testing.T) {
	db := openTestDB(t)
	id, err := NewSessionRepository(db).Create(testSession("moves"))
	require.NoError(t, err)
	repo := NewMoveRepository(db)

	require.NoError(t, repo.Replace(id, []int{5, 6, 7}, []string{"R", "U", "F'"}))
	require.NoError(t, repo.Replace(id, []int{8, 9}, []string{"L"}))

	got, err := repo.GetBySession(id)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 8, got[0].MoveID)
	assert.Equal(t, 0, got[0].MoveIndex)
	require.NotNil(t, got[0].Notation)
	assert.Equal(t, "L", *got[0].Notation)
	assert.Nil(t, got[1].Notation)
}

func TestMoveReplaceUnknownSession(t *testing.T) {
	repo := NewMoveRepository(openTestDB(t))
	assert.Error(t, repo.Replace("missing", []int{1}, nil))
}
