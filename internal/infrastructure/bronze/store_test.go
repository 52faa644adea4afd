package bronze

import (
	"testing"
)

func TestWriteEventsIsWriteOnce(t *testing.T) {
	store := NewStore(t.TempDir())

	rows := []EventRow{
		{MatchID: 42, EventID: "a1", Index: 1, Payload: `{"id":"a1"}`},
		{MatchID: 42, EventID: "b2", Index: 2, Payload: `{"id":"b2"}`},
	}

	written, err := store.WriteEvents(42, rows, false)
	if err != nil {
		t.Fatalf("write events: %v", err)
	}
	if !written {
		t.Fatal("first write must report written")
	}

	written, err = store.WriteEvents(42, []EventRow{{MatchID: 42, EventID: "c3", Index: 3, Payload: `{}`}}, false)
	if err != nil {
		t.Fatalf("rewrite events: %v", err)
	}
	if written {
		t.Fatal("second write without force must skip")
	}

	back, err := store.ReadEvents(42)
	if err != nil {
		t.Fatalf("read events: %v", err)
	}
	if len(back) != 2 {
		t.Fatalf("skip must preserve the original file, got %d rows", len(back))
	}
	if back[0].EventID != "a1" || back[1].Payload != `{"id":"b2"}` {
		t.Fatalf("unexpected rows: %+v", back)
	}

	written, err = store.WriteEvents(42, []EventRow{{MatchID: 42, EventID: "c3", Index: 3, Payload: `{}`}}, true)
	if err != nil {
		t.Fatalf("forced rewrite: %v", err)
	}
	if !written {
		t.Fatal("forced write must overwrite")
	}
	back, err = store.ReadEvents(42)
	if err != nil {
		t.Fatalf("read events after force: %v", err)
	}
	if len(back) != 1 || back[0].EventID != "c3" {
		t.Fatalf("unexpected rows after force: %+v", back)
	}
}

func TestListEventMatchIDs(t *testing.T) {
	store := NewStore(t.TempDir())

	for _, id := range []int64{3857256, 3869685} {
		if _, err := store.WriteEvents(id, []EventRow{{MatchID: id, EventID: "x", Index: 1, Payload: `{}`}}, false); err != nil {
			t.Fatalf("write events %d: %v", id, err)
		}
	}

	ids, err := store.ListEventMatchIDs()
	if err != nil {
		t.Fatalf("list match ids: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("unexpected ids: %+v", ids)
	}
	seen := map[int64]bool{}
	for _, id := range ids {
		seen[id] = true
	}
	if !seen[3857256] || !seen[3869685] {
		t.Fatalf("unexpected ids: %+v", ids)
	}
}

func TestReadMissingFileFails(t *testing.T) {
	store := NewStore(t.TempDir())
	if _, err := store.ReadEvents(999); err == nil {
		t.Fatal("expected error for missing bronze file")
	}
}
