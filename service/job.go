package service

import (
	pdfservice "github.com/shelfwise/pdf-service"
)

// job is one queued request. Each job carries its parameters and an
// exclusive one-shot reply channel; it is consumed exactly once by the actor
// and never re-enqueued.
type job interface {
	execute(a *actor)
}

type result[T any] struct {
	value T
	err   error
}

// reply is a one-shot reply channel. Capacity 1 with a single producer, so
// delivery never blocks the actor; an abandoned reply is simply never read.
type reply[T any] chan result[T]

func newReply[T any]() reply[T] {
	return make(reply[T], 1)
}

func (r reply[T]) deliver(value T, err error) {
	r <- result[T]{value: value, err: err}
}

type openJob struct {
	key   string
	data  []byte // nil when path is set
	path  string
	reply reply[pdfservice.DocumentInfo]
}

func (j *openJob) execute(a *actor) {
	info, err := a.handleOpen(j)
	j.reply.deliver(info, err)
}

type renderJob struct {
	key   string
	req   pdfservice.RenderRequest
	reply reply[[]byte]
}

func (j *renderJob) execute(a *actor) {
	png, err := a.handleRender(j.key, j.req)
	j.reply.deliver(png, err)
}

type thumbnailJob struct {
	key     string
	page    int
	maxSize int
	reply   reply[[]byte]
}

func (j *thumbnailJob) execute(a *actor) {
	png, err := a.handleThumbnail(j.key, j.page, j.maxSize)
	j.reply.deliver(png, err)
}

type textLayerJob struct {
	key   string
	page  int
	reply reply[*pdfservice.TextLayer]
}

func (j *textLayerJob) execute(a *actor) {
	layer, err := a.handleTextLayer(j.key, j.page)
	j.reply.deliver(layer, err)
}

type pageTextJob struct {
	key   string
	page  int
	reply reply[string]
}

func (j *pageTextJob) execute(a *actor) {
	text, err := a.handlePageText(j.key, j.page)
	j.reply.deliver(text, err)
}

type dimensionsJob struct {
	key   string
	page  int
	reply reply[pdfservice.PageDimensions]
}

func (j *dimensionsJob) execute(a *actor) {
	dims, err := a.handleDimensions(j.key, j.page)
	j.reply.deliver(dims, err)
}

type searchJob struct {
	key   string
	query string
	limit int
	reply reply[[]pdfservice.SearchResult]
}

func (j *searchJob) execute(a *actor) {
	results, err := a.handleSearch(j.key, j.query, j.limit)
	j.reply.deliver(results, err)
}

type hasJob struct {
	key   string
	reply reply[bool]
}

func (j *hasJob) execute(a *actor) {
	j.reply.deliver(a.docs.Has(j.key), nil)
}

type removeJob struct {
	key   string
	reply reply[struct{}]
}

func (j *removeJob) execute(a *actor) {
	a.docs.Remove(j.key)
	j.reply.deliver(struct{}{}, nil)
}

type keysJob struct {
	reply reply[[]string]
}

func (j *keysJob) execute(a *actor) {
	j.reply.deliver(a.docs.Keys(), nil)
}

type shutdownJob struct {
	reply reply[struct{}]
}

func (j *shutdownJob) execute(a *actor) {
	// Acknowledge first; teardown happens after the loop exits.
	j.reply.deliver(struct{}{}, nil)
	a.stopping = true
}
