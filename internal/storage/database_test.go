package storage

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/wizpro/internal/db"
)

// Runs against a real database when WIZPRO_TEST_DSN is set.
func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("WIZPRO_TEST_DSN")
	if dsn == "" {
		t.Skip("WIZPRO_TEST_DSN not set")
	}

	conn, closeDB, err := db.Open(context.Background(), dsn, nil)
	require.NoError(t, err)
	defer closeDB()

	profile := "test-" + t.Name()
	_, err = conn.Exec(`DELETE FROM editor_state WHERE profile = $1`, profile)
	require.NoError(t, err)

	s := NewPostgresStore(conn.DB, profile, nil)

	_, ok := s.Get("language")
	assert.False(t, ok)

	require.NoError(t, s.Set("language", "python"))
	require.NoError(t, s.Set("language", "go"))
	v, ok := s.Get("language")
	require.True(t, ok)
	assert.Equal(t, "go", v)

	other := NewPostgresStore(conn.DB, profile+"-other", nil)
	_, ok = other.Get("language")
	assert.False(t, ok)
}
