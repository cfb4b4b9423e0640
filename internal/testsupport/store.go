package testsupport

import (
	"testing"

	"montage/internal/config"
	"montage/internal/renderjobs"
)

// MustOpenStore opens a renderjobs.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *renderjobs.Store {
	t.Helper()

	store, err := renderjobs.Open(cfg)
	if err != nil {
		t.Fatalf("renderjobs.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}
