package service

import (
	"go.uber.org/zap"

	pdfservice "github.com/shelfwise/pdf-service"
	"github.com/shelfwise/pdf-service/errors"
	"github.com/shelfwise/pdf-service/registry"
)

// actor owns the engine singleton and the registry. It is the only code in
// the process allowed to touch either, and it runs entirely on one dedicated
// OS thread: PDFium corrupts its global state if its initializing thread
// changes or if init/teardown runs twice.
type actor struct {
	eng      pdfservice.Engine
	docs     *registry.Table
	q        *queue
	done     chan struct{}
	log      *zap.Logger
	stopping bool
}

func newActor(eng pdfservice.Engine, q *queue, done chan struct{}, log *zap.Logger) *actor {
	a := &actor{
		eng:  eng,
		docs: registry.NewTable(),
		q:    q,
		done: done,
		log:  log,
	}
	a.docs.Subscribe(&logObserver{log: log})
	return a
}

// run is the actor main loop. One job at a time, in submission order, until
// a shutdown job is executed. Operation failures never terminate the loop.
func (a *actor) run() {
	a.log.Info("pdf actor started")

	for {
		j, ok := a.q.pop()
		if !ok {
			break
		}
		j.execute(a)
		if a.stopping {
			break
		}
	}

	// Reject everything still queued or arriving late, then release in
	// strict order: every open document first, the engine last.
	a.q.close()
	close(a.done)

	a.log.Info("pdf actor stopping", zap.Int("open_documents", a.docs.Len()))
	a.docs.Clear()
	if err := a.eng.Close(); err != nil {
		a.log.Warn("engine teardown failed", zap.Error(err))
	}
	a.log.Info("pdf actor stopped")
}

func (a *actor) handleOpen(j *openJob) (pdfservice.DocumentInfo, error) {
	var (
		doc pdfservice.Document
		err error
	)
	if j.path != "" {
		doc, err = a.eng.OpenPath(j.path)
	} else {
		doc, err = a.eng.OpenBytes(j.data)
	}
	if err != nil {
		return pdfservice.DocumentInfo{}, errors.ParseFailed(j.key, err)
	}

	info, err := deriveInfo(j.key, doc)
	if err != nil {
		doc.Close()
		return pdfservice.DocumentInfo{}, errors.ParseFailed(j.key, err)
	}

	// Key collision replaces (and closes) the prior document.
	a.docs.Put(j.key, &registry.Entry{Doc: doc, Info: info})
	return info, nil
}

// deriveInfo computes the metadata cached alongside the document so that
// later metadata reads never hit the engine again.
func deriveInfo(key string, doc pdfservice.Document) (pdfservice.DocumentInfo, error) {
	info, err := doc.Info()
	if err != nil {
		return pdfservice.DocumentInfo{}, err
	}
	info.Key = key
	info.PageCount = doc.PageCount()
	info.Pages = make([]pdfservice.PageDimensions, info.PageCount)
	for i := 0; i < info.PageCount; i++ {
		dims, err := doc.PageDimensions(i)
		if err != nil {
			return pdfservice.DocumentInfo{}, err
		}
		info.Pages[i] = dims
	}
	return info, nil
}

// lookup resolves key and validates page against the cached page count.
// A negative page skips the range check (whole-document operations).
func (a *actor) lookup(phase errors.Phase, key string, page int) (*registry.Entry, error) {
	e, ok := a.docs.Get(key)
	if !ok {
		return nil, errors.NotLoaded(phase, key)
	}
	if page >= 0 && page >= e.Info.PageCount {
		return nil, errors.PageOutOfRange(phase, key, page, e.Info.PageCount)
	}
	return e, nil
}

func (a *actor) handleRender(key string, req pdfservice.RenderRequest) ([]byte, error) {
	e, err := a.lookup(errors.PhaseRender, key, req.Page)
	if err != nil {
		return nil, err
	}
	png, err := e.Doc.RenderPage(req)
	if err != nil {
		return nil, errors.RenderFailed(key, req.Page, err)
	}
	return png, nil
}

func (a *actor) handleThumbnail(key string, page, maxSize int) ([]byte, error) {
	e, err := a.lookup(errors.PhaseRender, key, page)
	if err != nil {
		return nil, err
	}
	if maxSize <= 0 {
		return nil, errors.InvalidInput(errors.PhaseRender, "thumbnail max size must be positive")
	}
	png, err := e.Doc.RenderThumbnail(page, maxSize)
	if err != nil {
		return nil, errors.RenderFailed(key, page, err)
	}
	return png, nil
}

func (a *actor) handleTextLayer(key string, page int) (*pdfservice.TextLayer, error) {
	e, err := a.lookup(errors.PhaseText, key, page)
	if err != nil {
		return nil, err
	}
	layer, err := e.Doc.TextLayer(page)
	if err != nil {
		return nil, errors.Engine(errors.PhaseText, key, page, err, "extract text layer")
	}
	return layer, nil
}

func (a *actor) handlePageText(key string, page int) (string, error) {
	e, err := a.lookup(errors.PhaseText, key, page)
	if err != nil {
		return "", err
	}
	text, err := e.Doc.PageText(page)
	if err != nil {
		return "", errors.Engine(errors.PhaseText, key, page, err, "extract page text")
	}
	return text, nil
}

func (a *actor) handleDimensions(key string, page int) (pdfservice.PageDimensions, error) {
	e, err := a.lookup(errors.PhaseText, key, page)
	if err != nil {
		return pdfservice.PageDimensions{}, err
	}
	// Served from the metadata cached at open time.
	return e.Info.Pages[page], nil
}

func (a *actor) handleSearch(key, query string, limit int) ([]pdfservice.SearchResult, error) {
	e, err := a.lookup(errors.PhaseSearch, key, -1)
	if err != nil {
		return nil, err
	}
	if query == "" {
		return nil, errors.InvalidInput(errors.PhaseSearch, "empty query")
	}
	results, err := e.Doc.Search(query, limit)
	if err != nil {
		return nil, errors.Engine(errors.PhaseSearch, key, -1, err, "search")
	}
	return results, nil
}

// logObserver forwards registry lifecycle events to the service logger.
type logObserver struct {
	log *zap.Logger
}

func (o *logObserver) OnRegistryEvent(e registry.Event) {
	switch e.Type {
	case registry.EventOpened:
		o.log.Info("document opened",
			zap.String("key", e.Key),
			zap.Int("pages", e.Info.PageCount))
	case registry.EventReplaced:
		o.log.Info("document replaced",
			zap.String("key", e.Key),
			zap.Int("pages", e.Info.PageCount))
	case registry.EventRemoved:
		o.log.Info("document removed", zap.String("key", e.Key))
	}
}
