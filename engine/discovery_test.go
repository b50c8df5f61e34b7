package engine

import (
	"fmt"
	"strings"
	"testing"

	"github.com/shelfwise/pdf-service/errors"
)

func TestBind_ExhaustedChainListsEveryAttempt(t *testing.T) {
	orig := loadLibrary
	defer func() { loadLibrary = orig }()

	var tried []string
	loadLibrary = func(path string) (uintptr, error) {
		tried = append(tried, path)
		return 0, fmt.Errorf("cannot open %s", path)
	}

	eng, err := Bind(nil)
	if eng != nil {
		t.Fatal("no engine should be returned when every candidate fails")
	}
	if err == nil {
		t.Fatal("expected a bind error")
	}

	var bindErr *errors.BindError
	if !errors.As(err, &bindErr) {
		t.Fatalf("error type = %T, want *errors.BindError", err)
	}
	if len(bindErr.Attempts) != len(tried) {
		t.Fatalf("reported %d attempts, tried %d", len(bindErr.Attempts), len(tried))
	}
	for i, a := range bindErr.Attempts {
		if a.Location != tried[i] {
			t.Errorf("attempt %d = %q, want %q (order must match the probe order)", i, a.Location, tried[i])
		}
	}
	if !strings.Contains(err.Error(), tried[0]) {
		t.Errorf("error message should name the failed locations: %v", err)
	}
}

func TestBind_DirOverrideChangesProbes(t *testing.T) {
	orig := loadLibrary
	defer func() { loadLibrary = orig }()

	var tried []string
	loadLibrary = func(path string) (uintptr, error) {
		tried = append(tried, path)
		return 0, fmt.Errorf("nope")
	}

	Bind(&Config{Dirs: []string{"/opt/custom"}})

	if len(tried) != 2 {
		t.Fatalf("tried = %v, want custom dir plus bare name", tried)
	}
	if !strings.HasPrefix(tried[0], "/opt/custom") {
		t.Errorf("first probe = %q, want the override directory", tried[0])
	}
}
