// Package errors provides structured error types for the pdf-service library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type includes rich context: document key, page index,
// and cause chain.
//
// The one distinction callers must care about is transport vs. operation
// errors: KindActorStopped means the service itself is gone (queue closed or
// actor exited), while every other kind reports a failure of the one
// operation that was attempted. Use the predicates:
//
//	if errors.IsActorStopped(err) { /* service shut down, stop retrying */ }
//	if errors.IsNotLoaded(err)    { /* key was never opened or was removed */ }
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseRender, errors.KindPageRange).
//		Key("book-1").
//		Page(12).
//		Detail("document has %d page(s)", 10).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.NotLoaded(errors.PhaseRender, "book-1")
//	err := errors.PageOutOfRange(errors.PhaseText, "book-1", 12, 10)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
