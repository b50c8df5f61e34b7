package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseRender,
				Kind:   KindPageRange,
				Key:    "book-1",
				Page:   12,
				Detail: "document has 10 page(s)",
			},
			contains: []string{"[render]", "page_out_of_range", `"book-1"`, "page 12", "10 page(s)"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseTransport,
				Kind:  KindActorStopped,
				Page:  -1,
			},
			contains: []string{"[transport]", "actor_stopped"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseOpen,
				Kind:   KindParse,
				Key:    "broken",
				Page:   -1,
				Detail: "parse document",
				Cause:  errors.New("format error"),
			},
			contains: []string{"[open]", "parse", "caused by", "format error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_PageOmittedWhenUnset(t *testing.T) {
	err := NotLoaded(PhaseText, "missing")
	if strings.Contains(err.Error(), "page") {
		t.Errorf("message %q should not mention a page", err.Error())
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := ParseFailed("book-1", cause)

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}

	// Test with errors.Unwrap
	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := NotLoaded(PhaseRender, "book-1")

	// Same phase and kind
	if !err.Is(&Error{Phase: PhaseRender, Kind: KindNotLoaded}) {
		t.Error("Is should match same phase and kind")
	}

	// Different phase
	if err.Is(&Error{Phase: PhaseText, Kind: KindNotLoaded}) {
		t.Error("Is should not match different phase")
	}

	// Different kind
	if err.Is(&Error{Phase: PhaseRender, Kind: KindPageRange}) {
		t.Error("Is should not match different kind")
	}

	// Test with errors.Is
	target := &Error{Phase: PhaseRender, Kind: KindNotLoaded}
	if !errors.Is(err, target) {
		t.Error("errors.Is should match")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseSearch, KindEngine).
		Key("book-1").
		Page(3).
		Cause(cause).
		Detail("query %q failed", "hello").
		Build()

	if err.Phase != PhaseSearch {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseSearch)
	}
	if err.Kind != KindEngine {
		t.Errorf("Kind = %v, want %v", err.Kind, KindEngine)
	}
	if err.Key != "book-1" {
		t.Errorf("Key = %v, want 'book-1'", err.Key)
	}
	if err.Page != 3 {
		t.Errorf("Page = %v, want 3", err.Page)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != `query "hello" failed` {
		t.Errorf("Detail = %v", err.Detail)
	}
}

func TestBuilder_DefaultPageUnset(t *testing.T) {
	err := New(PhaseTransport, KindActorStopped).Build()
	if err.Page != -1 {
		t.Errorf("Page = %d, want -1", err.Page)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("NotLoaded", func(t *testing.T) {
		err := NotLoaded(PhaseRender, "book-1")
		if err.Kind != KindNotLoaded {
			t.Errorf("Kind = %v, want %v", err.Kind, KindNotLoaded)
		}
		if err.Key != "book-1" {
			t.Errorf("Key = %v, want 'book-1'", err.Key)
		}
	})

	t.Run("PageOutOfRange", func(t *testing.T) {
		err := PageOutOfRange(PhaseText, "book-1", 12, 10)
		if err.Kind != KindPageRange {
			t.Errorf("Kind = %v, want %v", err.Kind, KindPageRange)
		}
		if err.Page != 12 {
			t.Errorf("Page = %v, want 12", err.Page)
		}
		if !strings.Contains(err.Detail, "10") {
			t.Errorf("Detail = %v, should contain page count", err.Detail)
		}
	})

	t.Run("ParseFailed", func(t *testing.T) {
		cause := errors.New("bad xref")
		err := ParseFailed("book-1", cause)
		if err.Phase != PhaseOpen || err.Kind != KindParse {
			t.Errorf("Phase=%v Kind=%v", err.Phase, err.Kind)
		}
		if !errors.Is(err, &Error{Phase: PhaseOpen, Kind: KindParse}) {
			t.Error("errors.Is should match")
		}
	})

	t.Run("RenderFailed", func(t *testing.T) {
		err := RenderFailed("book-1", 2, errors.New("bitmap"))
		if err.Kind != KindRenderFailed {
			t.Errorf("Kind = %v, want %v", err.Kind, KindRenderFailed)
		}
		if err.Page != 2 {
			t.Errorf("Page = %v, want 2", err.Page)
		}
	})

	t.Run("ActorStopped", func(t *testing.T) {
		err := ActorStopped("job queue closed")
		if err.Phase != PhaseTransport || err.Kind != KindActorStopped {
			t.Errorf("Phase=%v Kind=%v", err.Phase, err.Kind)
		}
	})

	t.Run("InvalidInput", func(t *testing.T) {
		err := InvalidInput(PhaseOpen, "empty key")
		if err.Kind != KindInvalidInput {
			t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidInput)
		}
	})
}

func TestPredicates(t *testing.T) {
	if !IsActorStopped(ActorStopped("gone")) {
		t.Error("IsActorStopped should match")
	}
	if IsActorStopped(NotLoaded(PhaseRender, "k")) {
		t.Error("IsActorStopped should not match a resource error")
	}
	if !IsNotLoaded(NotLoaded(PhaseSearch, "k")) {
		t.Error("IsNotLoaded should match")
	}
	if !IsPageOutOfRange(PageOutOfRange(PhaseRender, "k", 5, 3)) {
		t.Error("IsPageOutOfRange should match")
	}
	if IsNotLoaded(errors.New("plain")) {
		t.Error("predicates should reject plain errors")
	}
}

func TestBindError(t *testing.T) {
	t.Run("attempts listed in order", func(t *testing.T) {
		err := NewBindError([]BindAttempt{
			{Location: "./", Err: errors.New("no such file")},
			{Location: "/usr/lib", Err: errors.New("no such file")},
			{Location: "system", Err: errors.New("not found")},
		})
		msg := err.Error()
		if !strings.Contains(msg, "3 candidate(s)") {
			t.Errorf("error should contain count, got %q", msg)
		}
		if !strings.Contains(msg, "/usr/lib") {
			t.Errorf("error should contain candidate location")
		}
		if strings.Index(msg, "./") > strings.Index(msg, "/usr/lib") {
			t.Error("attempts should render in chain order")
		}
	})

	t.Run("empty attempts", func(t *testing.T) {
		err := NewBindError(nil)
		if !strings.Contains(err.Error(), "no candidate locations") {
			t.Errorf("empty error should have specific message, got: %s", err.Error())
		}
	})

	t.Run("errors.Is", func(t *testing.T) {
		err := NewBindError([]BindAttempt{{Location: "./", Err: errors.New("x")}})
		if !errors.Is(err, &BindError{}) {
			t.Error("errors.Is should match BindError")
		}
	})
}
