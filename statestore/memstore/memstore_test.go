package memstore

import (
	"testing"

	"xdao.co/tokenreg/statestore"
	"xdao.co/tokenreg/statestore/testkit"
)

func TestMemStore_Conformance(t *testing.T) {
	testkit.RunStoreConformance(t, func(t *testing.T) statestore.Store {
		return New()
	})
}

func TestMemStore_Len(t *testing.T) {
	st := New()
	if st.Len() != 0 {
		t.Fatalf("fresh store not empty")
	}
	if err := st.Put([]byte("a"), []byte("1")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := st.Put([]byte("a"), []byte("2")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if st.Len() != 1 {
		t.Fatalf("overwrite changed key count: %d", st.Len())
	}
}
