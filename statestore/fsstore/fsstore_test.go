package fsstore

import (
	"testing"

	"xdao.co/tokenreg/statestore"
	"xdao.co/tokenreg/statestore/testkit"
)

func TestFSStore_Conformance(t *testing.T) {
	testkit.RunStoreConformance(t, func(t *testing.T) statestore.Store {
		st, err := New(t.TempDir())
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		return st
	})
}

func TestFSStore_RequiresRoot(t *testing.T) {
	if _, err := New(""); err == nil {
		t.Fatalf("expected error for empty root")
	}
}

func TestFSStore_Reopen(t *testing.T) {
	dir := t.TempDir()
	st, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := st.Put([]byte("persist"), []byte("v")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	st2, err := New(dir)
	if err != nil {
		t.Fatalf("New(reopen): %v", err)
	}
	got, err := st2.Get([]byte("persist"))
	if err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
	if string(got) != "v" {
		t.Fatalf("value lost across reopen: %q", got)
	}
}
