// Package service implements the actor that serializes all access to the
// native PDF engine.
//
// # Why an Actor
//
// PDFium must be initialized exactly once, destroyed exactly once, and used
// only from the thread it was initialized on. Pooled workers (anything that
// reuses threads) violate that contract sooner or later. The actor model
// makes the contract structural: one goroutine, locked to one OS thread for
// the whole process lifetime, owns the engine and the open-document
// registry; everyone else talks to it through a FIFO job queue.
//
// # Guarantees
//
//   - At most one engine operation is in flight at any instant.
//   - Jobs execute in global submission order; nothing is reordered,
//     batched or coalesced.
//   - An operation failure affects only its own caller; the actor keeps
//     running until an explicit Shutdown.
//   - After Shutdown acknowledges, every open document is closed before the
//     engine is torn down, and any later call fails fast with the
//     "actor stopped" transport error instead of blocking.
//
// # Usage
//
//	svc, err := service.Start(service.WithLogger(logger))
//	if err != nil {
//	    // PDFium could not be bound anywhere; no actor exists
//	}
//	defer svc.Shutdown(context.Background())
//
//	info, err := svc.OpenBytes(ctx, "book-1", data)
//	png, err := svc.RenderPage(ctx, "book-1", pdfservice.RenderRequest{Page: 0})
//
// Callers impose their own deadlines through the context; the actor never
// cancels a job mid-operation. A caller that stops waiting merely stops
// observing the result.
package service
