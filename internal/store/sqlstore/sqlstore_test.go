package sqlstore

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lorekeep/internal/models"
)

func newTestStore(t *testing.T) *SQLStore {
	t.Helper()
	st, err := New("sqlite3", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestRebind(t *testing.T) {
	sqlite := &SQLStore{dbType: SQLite}
	postgres := &SQLStore{dbType: Postgres}

	query := "SELECT id FROM users WHERE username = ? AND email = ?"
	assert.Equal(t, query, sqlite.rebind(query))
	assert.Equal(t, "SELECT id FROM users WHERE username = $1 AND email = $2", postgres.rebind(query))
	assert.Equal(t, "SELECT 1", postgres.rebind("SELECT 1"))
}

func TestUserAccessors(t *testing.T) {
	st := newTestStore(t)

	id, err := st.CreateUser("alice", "alice@example.com", "hash")
	require.NoError(t, err)
	require.Positive(t, id)

	u, err := st.GetUserByUsername("alice")
	require.NoError(t, err)
	assert.Equal(t, id, u.ID)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.Equal(t, "hash", u.PasswordHash)

	_, err = st.GetUserByUsername("nobody")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	taken, err := st.UsernameTaken("alice")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = st.EmailTaken("other@example.com")
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestLoreMapScoping(t *testing.T) {
	st := newTestStore(t)

	alice, err := st.CreateUser("alice", "alice@example.com", "hash")
	require.NoError(t, err)
	bob, err := st.CreateUser("bob", "bob@example.com", "hash")
	require.NoError(t, err)

	lm, err := st.CreateLoreMap(alice, "Campaign", "desc")
	require.NoError(t, err)

	_, err = st.GetLoreMap(lm.ID, alice)
	require.NoError(t, err)

	_, err = st.GetLoreMap(lm.ID, bob)
	assert.ErrorIs(t, err, sql.ErrNoRows)

	err = st.DeleteLoreMap(lm.ID, bob)
	assert.ErrorIs(t, err, sql.ErrNoRows)

	// The failed delete must not have touched anything.
	maps, err := st.GetLoreMaps(alice)
	require.NoError(t, err)
	require.Len(t, maps, 1)
}

func TestEventUpdateBumpsLoreMapTimestamp(t *testing.T) {
	st := newTestStore(t)

	alice, err := st.CreateUser("alice", "alice@example.com", "hash")
	require.NoError(t, err)
	lm, err := st.CreateLoreMap(alice, "Campaign", "")
	require.NoError(t, err)

	ev, err := st.CreateEvent(models.Event{Title: "Event", LoreMapID: lm.ID})
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	ev.Title = "Renamed"
	require.NoError(t, st.UpdateEvent(ev))

	after, err := st.GetLoreMap(lm.ID, alice)
	require.NoError(t, err)
	assert.True(t, after.UpdatedAt.After(lm.UpdatedAt), "update should bump updated_at")
}

func TestCharacterStatFallbacks(t *testing.T) {
	st := newTestStore(t)

	alice, err := st.CreateUser("alice", "alice@example.com", "hash")
	require.NoError(t, err)

	// Insert a row with NULL stat columns, as legacy data may have.
	res, err := st.db.Exec(
		"INSERT INTO characters (name, user_id, strength, dexterity, constitution, intelligence, wisdom, charisma, armor_class, hit_points) VALUES ('Legacy', ?, NULL, NULL, NULL, NULL, NULL, NULL, NULL, NULL)",
		alice)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)

	c, err := st.GetCharacterOwned(int(id), alice)
	require.NoError(t, err)
	assert.Equal(t, 10, c.Strength)
	assert.Equal(t, 10, c.ArmorClass)
	assert.Equal(t, 1, c.HitPoints)
}

func TestConnectionOwnershipFollowsSourceEvent(t *testing.T) {
	st := newTestStore(t)

	alice, err := st.CreateUser("alice", "alice@example.com", "hash")
	require.NoError(t, err)
	bob, err := st.CreateUser("bob", "bob@example.com", "hash")
	require.NoError(t, err)

	lm, err := st.CreateLoreMap(alice, "Campaign", "")
	require.NoError(t, err)
	from, err := st.CreateEvent(models.Event{Title: "A", LoreMapID: lm.ID})
	require.NoError(t, err)
	to, err := st.CreateEvent(models.Event{Title: "B", LoreMapID: lm.ID})
	require.NoError(t, err)

	conn, err := st.CreateConnection(models.EventConnection{
		FromEventID:    from.ID,
		ToEventID:      to.ID,
		ConnectionType: models.ConnectionDefault,
	})
	require.NoError(t, err)

	_, err = st.GetConnectionOwned(conn.ID, alice)
	require.NoError(t, err)

	_, err = st.GetConnectionOwned(conn.ID, bob)
	assert.ErrorIs(t, err, sql.ErrNoRows)

	err = st.DeleteConnection(conn.ID, bob)
	assert.ErrorIs(t, err, sql.ErrNoRows)

	require.NoError(t, st.DeleteConnection(conn.ID, alice))
	err = st.DeleteConnection(conn.ID, alice)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}
