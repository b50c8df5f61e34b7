package registry

import (
	"testing"

	pdfservice "github.com/shelfwise/pdf-service"
)

// fakeDoc implements pdfservice.Document with just enough behavior to track
// Close calls.
type fakeDoc struct {
	closed int
}

func (d *fakeDoc) PageCount() int                                 { return 1 }
func (d *fakeDoc) Info() (pdfservice.DocumentInfo, error)         { return pdfservice.DocumentInfo{}, nil }
func (d *fakeDoc) RenderPage(pdfservice.RenderRequest) ([]byte, error) { return nil, nil }
func (d *fakeDoc) RenderThumbnail(int, int) ([]byte, error)       { return nil, nil }
func (d *fakeDoc) TextLayer(int) (*pdfservice.TextLayer, error)   { return nil, nil }
func (d *fakeDoc) PageText(int) (string, error)                   { return "", nil }
func (d *fakeDoc) PageDimensions(int) (pdfservice.PageDimensions, error) {
	return pdfservice.PageDimensions{}, nil
}
func (d *fakeDoc) Search(string, int) ([]pdfservice.SearchResult, error) { return nil, nil }
func (d *fakeDoc) Close() error {
	d.closed++
	return nil
}

type testObserver struct {
	events []Event
}

func (o *testObserver) OnRegistryEvent(e Event) {
	o.events = append(o.events, e)
}

func entry(key string, pages int) *Entry {
	return &Entry{
		Doc:  &fakeDoc{},
		Info: pdfservice.DocumentInfo{Key: key, PageCount: pages},
	}
}

func TestTable_Basic(t *testing.T) {
	table := NewTable()

	if table.Has("a") {
		t.Fatal("empty table should not have key")
	}

	replaced := table.Put("a", entry("a", 3))
	if replaced {
		t.Fatal("first Put should not report replacement")
	}

	e, ok := table.Get("a")
	if !ok {
		t.Fatal("Get failed")
	}
	if e.Info.PageCount != 3 {
		t.Fatalf("Expected 3 pages, got %d", e.Info.PageCount)
	}
	if !table.Has("a") {
		t.Fatal("Has should be true after Put")
	}
	if table.Len() != 1 {
		t.Fatalf("Expected Len() == 1, got %d", table.Len())
	}

	if !table.Remove("a") {
		t.Fatal("Remove failed")
	}
	if table.Has("a") {
		t.Fatal("Has should be false after Remove")
	}
	if table.Len() != 0 {
		t.Fatal("Expected Len() == 0 after Remove")
	}
}

func TestTable_ReplaceClosesPrevious(t *testing.T) {
	table := NewTable()

	first := &fakeDoc{}
	table.Put("a", &Entry{Doc: first, Info: pdfservice.DocumentInfo{Key: "a", PageCount: 1}})

	replaced := table.Put("a", entry("a", 2))
	if !replaced {
		t.Fatal("second Put should report replacement")
	}
	if first.closed != 1 {
		t.Fatalf("previous document should be closed once, got %d", first.closed)
	}

	// Subsequent reads observe only the replacing entry.
	e, _ := table.Get("a")
	if e.Info.PageCount != 2 {
		t.Fatalf("Expected replacing entry with 2 pages, got %d", e.Info.PageCount)
	}
	if table.Len() != 1 {
		t.Fatalf("Expected Len() == 1 after replace, got %d", table.Len())
	}
}

func TestTable_RemoveAbsentIsNoop(t *testing.T) {
	table := NewTable()
	if table.Remove("missing") {
		t.Fatal("removing an absent key should report false")
	}
}

func TestTable_Keys(t *testing.T) {
	table := NewTable()
	table.Put("beta", entry("beta", 1))
	table.Put("alpha", entry("alpha", 1))
	table.Put("gamma", entry("gamma", 1))

	keys := table.Keys()
	if len(keys) != 3 {
		t.Fatalf("Expected 3 keys, got %d", len(keys))
	}
	if keys[0] != "alpha" || keys[1] != "beta" || keys[2] != "gamma" {
		t.Fatalf("Keys not sorted: %v", keys)
	}
}

func TestTable_Observer(t *testing.T) {
	table := NewTable()
	obs := &testObserver{}
	table.Subscribe(obs)

	table.Put("a", entry("a", 1))
	if len(obs.events) != 1 || obs.events[0].Type != EventOpened {
		t.Fatalf("Expected EventOpened, got %+v", obs.events)
	}

	table.Put("a", entry("a", 2))
	if len(obs.events) != 2 || obs.events[1].Type != EventReplaced {
		t.Fatalf("Expected EventReplaced, got %+v", obs.events)
	}

	table.Remove("a")
	if len(obs.events) != 3 || obs.events[2].Type != EventRemoved {
		t.Fatalf("Expected EventRemoved, got %+v", obs.events)
	}
	if obs.events[2].Key != "a" {
		t.Fatal("Wrong key in event")
	}

	table.Unsubscribe(obs)
	table.Put("b", entry("b", 1))
	if len(obs.events) != 3 {
		t.Fatal("Should not receive events after Unsubscribe")
	}
}

func TestTable_Clear(t *testing.T) {
	table := NewTable()

	docs := []*fakeDoc{{}, {}, {}}
	table.Put("a", &Entry{Doc: docs[0]})
	table.Put("b", &Entry{Doc: docs[1]})
	table.Put("c", &Entry{Doc: docs[2]})

	table.Clear()

	if table.Len() != 0 {
		t.Fatalf("Expected empty table after Clear, got %d", table.Len())
	}
	for i, d := range docs {
		if d.closed != 1 {
			t.Fatalf("doc %d should be closed once, got %d", i, d.closed)
		}
	}
}
