package testsupport

import (
	"path/filepath"
	"testing"

	"bingeboard/internal/store"
)

// MustOpenStore opens a fresh database in a temp directory and closes it
// when the test ends.
func MustOpenStore(t testing.TB) *store.Store {
	t.Helper()

	st, err := store.OpenPath(filepath.Join(t.TempDir(), "bingeboard.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}
