package localstore_test

import (
	"os"
	"path/filepath"
	"testing"

	"atlas_travel/internal/domain"
	"atlas_travel/internal/storage/localstore"
)

func TestSaveLoadClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	st := localstore.New(path)

	if _, ok, err := st.Load(); err != nil || ok {
		t.Fatalf("expected empty store, ok=%v err=%v", ok, err)
	}

	sess := domain.Session{
		Token: "tok-abc",
		User:  domain.User{ID: "u1", Username: "admin", Role: "admin"},
	}
	if err := st.Save(sess); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, ok, err := st.Load()
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if got.Token != "tok-abc" || got.User.Username != "admin" {
		t.Fatalf("unexpected session: %+v", got)
	}

	fi, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := fi.Mode().Perm(); perm != 0o600 {
		t.Fatalf("expected 0600 perms, got %o", perm)
	}

	if err := st.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok, _ := st.Load(); ok {
		t.Fatalf("expected no session after clear")
	}
	// Clear is idempotent.
	if err := st.Clear(); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}

func TestLoadCorruptFileTreatedAsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	st := localstore.New(path)
	if _, ok, err := st.Load(); err != nil || ok {
		t.Fatalf("corrupt file should read as empty, ok=%v err=%v", ok, err)
	}
}
