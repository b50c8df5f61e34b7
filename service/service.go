package service

import (
	"context"
	"runtime"

	"go.uber.org/zap"

	pdfservice "github.com/shelfwise/pdf-service"
	"github.com/shelfwise/pdf-service/engine"
	"github.com/shelfwise/pdf-service/errors"
)

// EngineFactory constructs the engine singleton. It is invoked exactly once,
// on the actor's dedicated OS thread, so that the native library is
// initialized on the same thread that will host it for the process lifetime.
type EngineFactory func() (pdfservice.Engine, error)

type config struct {
	factory EngineFactory
	log     *zap.Logger
}

// Option configures Start.
type Option func(*config)

// WithEngine overrides the engine factory. Tests use this to substitute a
// fake engine; production code normally relies on the default PDFium
// discovery chain.
func WithEngine(factory EngineFactory) Option {
	return func(c *config) { c.factory = factory }
}

// WithLogger sets the service logger. Defaults to a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(c *config) { c.log = log }
}

// WithLibraryDirs overrides the directories searched for the native PDFium
// library, in order. The system-default lookup is still tried last.
func WithLibraryDirs(dirs ...string) Option {
	return func(c *config) {
		c.factory = func() (pdfservice.Engine, error) {
			return engine.Bind(&engine.Config{Dirs: dirs})
		}
	}
}

// Service is the caller-facing handle to the PDF actor. It is cheap to share:
// all copies reference the same job queue, and every method is safe for
// concurrent use.
type Service struct {
	q    *queue
	done chan struct{}
}

// Start binds the native engine and spawns the actor on its own OS thread.
// If the engine cannot be bound under any candidate location, Start returns
// the bind error and no actor is created; the caller decides whether that is
// fatal to the process.
func Start(opts ...Option) (*Service, error) {
	cfg := config{
		factory: func() (pdfservice.Engine, error) { return engine.Bind(nil) },
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	q := newQueue()
	done := make(chan struct{})
	ready := make(chan error, 1)

	// A plain goroutine pinned to its thread, not a pooled worker: the
	// engine's global state is only valid on the thread that initialized it.
	go func() {
		runtime.LockOSThread()

		eng, err := cfg.factory()
		if err != nil {
			ready <- err
			q.close()
			close(done)
			return
		}
		ready <- nil

		newActor(eng, q, done, cfg.log).run()
	}()

	if err := <-ready; err != nil {
		return nil, err
	}
	return &Service{q: q, done: done}, nil
}

// submit enqueues j and awaits its reply. Transport-level failures map to
// the distinguished "actor stopped" error so callers can tell "the service
// is gone" from "the operation failed". Context expiry abandons the wait but
// never cancels the job itself.
func submit[T any](ctx context.Context, s *Service, j job, r reply[T]) (T, error) {
	var zero T
	if !s.q.push(j) {
		return zero, errors.ActorStopped("job queue closed")
	}
	select {
	case res := <-r:
		return res.value, res.err
	case <-s.done:
		// The reply may have raced the shutdown; prefer it if present.
		select {
		case res := <-r:
			return res.value, res.err
		default:
		}
		return zero, errors.ActorStopped("actor exited before replying")
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// OpenBytes parses a document from memory and registers it under key,
// replacing any document previously opened under the same key. It returns
// the derived metadata that subsequent metadata reads are served from.
func (s *Service) OpenBytes(ctx context.Context, key string, data []byte) (pdfservice.DocumentInfo, error) {
	if key == "" {
		return pdfservice.DocumentInfo{}, errors.InvalidInput(errors.PhaseOpen, "empty key")
	}
	if len(data) == 0 {
		return pdfservice.DocumentInfo{}, errors.InvalidInput(errors.PhaseOpen, "empty document data")
	}
	j := &openJob{key: key, data: data, reply: newReply[pdfservice.DocumentInfo]()}
	return submit(ctx, s, j, j.reply)
}

// OpenPath parses a document from a file on disk and registers it under key.
func (s *Service) OpenPath(ctx context.Context, key, path string) (pdfservice.DocumentInfo, error) {
	if key == "" {
		return pdfservice.DocumentInfo{}, errors.InvalidInput(errors.PhaseOpen, "empty key")
	}
	if path == "" {
		return pdfservice.DocumentInfo{}, errors.InvalidInput(errors.PhaseOpen, "empty path")
	}
	j := &openJob{key: key, path: path, reply: newReply[pdfservice.DocumentInfo]()}
	return submit(ctx, s, j, j.reply)
}

// RenderPage rasterizes one page to PNG bytes.
func (s *Service) RenderPage(ctx context.Context, key string, req pdfservice.RenderRequest) ([]byte, error) {
	j := &renderJob{key: key, req: req, reply: newReply[[]byte]()}
	return submit(ctx, s, j, j.reply)
}

// RenderThumbnail rasterizes one page scaled to at most maxSize pixels on
// its longer edge.
func (s *Service) RenderThumbnail(ctx context.Context, key string, page, maxSize int) ([]byte, error) {
	j := &thumbnailJob{key: key, page: page, maxSize: maxSize, reply: newReply[[]byte]()}
	return submit(ctx, s, j, j.reply)
}

// TextLayer returns the positioned text spans of one page.
func (s *Service) TextLayer(ctx context.Context, key string, page int) (*pdfservice.TextLayer, error) {
	j := &textLayerJob{key: key, page: page, reply: newReply[*pdfservice.TextLayer]()}
	return submit(ctx, s, j, j.reply)
}

// PageText returns the plain text of one page.
func (s *Service) PageText(ctx context.Context, key string, page int) (string, error) {
	j := &pageTextJob{key: key, page: page, reply: newReply[string]()}
	return submit(ctx, s, j, j.reply)
}

// PageDimensions returns the size of one page in points.
func (s *Service) PageDimensions(ctx context.Context, key string, page int) (pdfservice.PageDimensions, error) {
	j := &dimensionsJob{key: key, page: page, reply: newReply[pdfservice.PageDimensions]()}
	return submit(ctx, s, j, j.reply)
}

// Search scans a document for query and returns up to limit matches.
func (s *Service) Search(ctx context.Context, key, query string, limit int) ([]pdfservice.SearchResult, error) {
	j := &searchJob{key: key, query: query, limit: limit, reply: newReply[[]pdfservice.SearchResult]()}
	return submit(ctx, s, j, j.reply)
}

// Has reports whether a document is registered under key. Absence is a
// normal outcome, never an error.
func (s *Service) Has(ctx context.Context, key string) (bool, error) {
	j := &hasJob{key: key, reply: newReply[bool]()}
	return submit(ctx, s, j, j.reply)
}

// Remove closes and forgets the document under key. Removing an absent key
// succeeds silently.
func (s *Service) Remove(ctx context.Context, key string) error {
	j := &removeJob{key: key, reply: newReply[struct{}]()}
	_, err := submit(ctx, s, j, j.reply)
	return err
}

// Keys returns the keys of all currently open documents, sorted.
func (s *Service) Keys(ctx context.Context) ([]string, error) {
	j := &keysJob{reply: newReply[[]string]()}
	return submit(ctx, s, j, j.reply)
}

// Shutdown stops the actor. It is dispatched like any other job, so every
// operation submitted before it runs to completion first. The engine is torn
// down after all open documents are released. Shutdown is idempotent: once
// the actor has exited, further calls return immediately.
func (s *Service) Shutdown(ctx context.Context) error {
	j := &shutdownJob{reply: newReply[struct{}]()}
	if !s.q.push(j) {
		return nil
	}
	select {
	case <-j.reply:
		return nil
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done is closed when the actor has exited. Useful for supervisors that want
// to observe unexpected termination.
func (s *Service) Done() <-chan struct{} {
	return s.done
}
