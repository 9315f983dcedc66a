package testkit

import (
	"bytes"
	"testing"

	"xdao.co/tokenreg/statestore"
)

// NewStore constructs a fresh, empty Store instance for a test.
// The returned Store MUST be isolated from other tests.
type NewStore func(t *testing.T) statestore.Store

// RunStoreConformance exercises the statestore.Store contract against an
// arbitrary backend.
func RunStoreConformance(t *testing.T, newStore NewStore) {
	t.Helper()

	t.Run("PutGetRoundTrip", func(t *testing.T) {
		st := newStore(t)
		key := []byte("k/round-trip")
		want := []byte("hello, statestore")

		if err := st.Put(key, want); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		got, err := st.Get(key)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if !bytes.Equal(got, want) {
			t.Fatalf("Get bytes mismatch: got %q want %q", got, want)
		}
	})

	t.Run("OverwriteLastWins", func(t *testing.T) {
		st := newStore(t)
		key := []byte("k/overwrite")

		if err := st.Put(key, []byte("first")); err != nil {
			t.Fatalf("Put(1) failed: %v", err)
		}
		if err := st.Put(key, []byte("second")); err != nil {
			t.Fatalf("Put(2) failed: %v", err)
		}
		got, err := st.Get(key)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if string(got) != "second" {
			t.Fatalf("overwrite did not win: got %q", got)
		}
	})

	t.Run("HasAndNotFound", func(t *testing.T) {
		st := newStore(t)
		key := []byte("k/missing")

		if st.Has(key) {
			t.Fatalf("Has returned true for missing key")
		}
		if _, err := st.Get(key); !statestore.IsNotFound(err) {
			t.Fatalf("Get missing: got err=%v want ErrNotFound", err)
		}
		if err := st.Put(key, []byte("x")); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		if !st.Has(key) {
			t.Fatalf("Has returned false after Put")
		}
	})

	t.Run("DeleteThenGone", func(t *testing.T) {
		st := newStore(t)
		key := []byte("k/delete")

		if err := st.Put(key, []byte("x")); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		if err := st.Delete(key); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if st.Has(key) {
			t.Fatalf("Has returned true after Delete")
		}
		if _, err := st.Get(key); !statestore.IsNotFound(err) {
			t.Fatalf("Get after Delete: got err=%v want ErrNotFound", err)
		}
		// Deleting an absent key is a no-op.
		if err := st.Delete(key); err != nil {
			t.Fatalf("Delete of absent key failed: %v", err)
		}
	})

	t.Run("ValueIsolation", func(t *testing.T) {
		st := newStore(t)
		key := []byte("k/isolation")
		val := []byte("original")

		if err := st.Put(key, val); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		val[0] = 'X'

		got, err := st.Get(key)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if string(got) != "original" {
			t.Fatalf("stored value aliased the caller's buffer: %q", got)
		}
	})

	t.Run("RejectEmptyKey", func(t *testing.T) {
		st := newStore(t)
		if err := st.Put(nil, []byte("x")); err == nil {
			t.Fatalf("Put with empty key should fail")
		}
		if _, err := st.Get(nil); err == nil {
			t.Fatalf("Get with empty key should fail")
		}
		if st.Has(nil) {
			t.Fatalf("Has should be false for empty key")
		}
	})
}
