// Package pdfservice provides serialized access to the PDFium rendering
// engine from any number of concurrent goroutines.
//
// PDFium keeps global C++ state: initializing or destroying the library more
// than once, or touching it from different threads, corrupts that state. This
// library makes those misuses structurally impossible by routing every
// operation through a single actor that owns the engine for the whole process
// lifetime.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct
// responsibilities:
//
//	pdfservice/          Root package with the Engine and Document contracts
//	├── service/         The actor, job queue and cloneable service handle
//	├── engine/          PDFium binding via dlopen with a discovery fallback chain
//	├── registry/        Open-document table keyed by caller-chosen strings
//	├── svgtext/         Selectable-text SVG overlay generation
//	└── errors/          Structured error types for debugging
//
// # Quick Start
//
// Start the service once at process startup and share the handle:
//
//	svc, err := service.Start()
//	if err != nil {
//	    log.Fatal(err) // PDFium could not be bound
//	}
//	defer svc.Shutdown(ctx)
//
//	info, err := svc.OpenBytes(ctx, "book-1", pdfBytes)
//	png, err := svc.RenderPage(ctx, "book-1", pdfservice.RenderRequest{Page: 0, Scale: 2})
//	layer, err := svc.TextLayer(ctx, "book-1", 0)
//	svg := svgtext.Generate(layer)
//
// # Concurrency Model
//
// Service handles are safe for concurrent use; every call becomes a job on a
// shared FIFO queue consumed by one dedicated OS thread. Operations never
// overlap and are executed in global submission order. Callers block only on
// their own reply; a caller that gives up (context expiry) stops observing
// the result, not the job.
package pdfservice
