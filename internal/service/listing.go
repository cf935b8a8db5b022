package service

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"bulletin/internal/model"
	"bulletin/pkg/logger"
	"bulletin/pkg/pagination"

	"go.uber.org/zap"
)

const DefaultDebounce = 500 * time.Millisecond

type ListingStatus int

const (
	StatusIdle ListingStatus = iota
	StatusLoading
	StatusLoaded
	StatusFailed
)

func (s ListingStatus) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

type Timer interface {
	Stop() bool
}

// Clock schedules the debounce timer.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type systemClock struct{}

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// ListQuery is everything one page fetch depends on.
type ListQuery struct {
	pagination.PageRequest
	Identity *model.Identity
}

type PageFetcher[T any] func(ctx context.Context, q ListQuery) (pagination.Page[T], error)

type ListingState[T any] struct {
	Status ListingStatus
	Query  string
	Page   pagination.Page[T]
	Err    error
	// Token of the request this state belongs to.
	Token uint64
}

type StatePublisher[T any] interface {
	Publish(ctx context.Context, topic string, state ListingState[T]) error
}

type ListingConfig struct {
	Name     string
	PageSize int
	Debounce time.Duration
	Clock    Clock
}

// Listing drives one paged list surface. Every change of query, page, page
// size or identity issues a new fetch with a larger token; a result is
// accepted only if its token is still the latest one, so the state always
// reflects the most recently issued request.
type Listing[T any] struct {
	name      string
	fetch     PageFetcher[T]
	keyOf     func(T) int64
	clock     Clock
	debounce  time.Duration
	publisher StatePublisher[T]

	mu       sync.Mutex
	idle     *sync.Cond
	active   int
	req      pagination.PageRequest
	identity *model.Identity
	token    uint64
	typed    uint64
	pending  Timer
	state    ListingState[T]
	// id -> latest token issued when the item was deleted locally
	tombstones map[int64]uint64
}

func NewListing[T any](cfg ListingConfig, fetch PageFetcher[T], keyOf func(T) int64) *Listing[T] {
	if cfg.Clock == nil {
		cfg.Clock = systemClock{}
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	req := pagination.PageRequest{Size: cfg.PageSize}.Normalize()

	l := &Listing[T]{
		name:       cfg.Name,
		fetch:      fetch,
		keyOf:      keyOf,
		clock:      cfg.Clock,
		debounce:   cfg.Debounce,
		req:        req,
		tombstones: make(map[int64]uint64),
	}
	l.state.Page = pagination.Page[T]{PageSize: req.Size}
	l.idle = sync.NewCond(&l.mu)
	return l
}

func (l *Listing[T]) PublishTo(p StatePublisher[T]) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.publisher = p
}

func (l *Listing[T]) Name() string {
	return l.name
}

// Load fetches the current page again with the current query.
func (l *Listing[T]) Load(ctx context.Context) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.issueLocked(ctx)
}

// TypeQuery records a keystroke. The query is sent only once no further
// keystroke arrives for the debounce interval.
func (l *Listing[T]) TypeQuery(ctx context.Context, query string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.cancelPendingLocked()
	seq := l.typed
	l.pending = l.clock.AfterFunc(l.debounce, func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if seq != l.typed {
			return
		}
		l.pending = nil
		l.req.Query = query
		l.req.Page = 0
		l.issueLocked(ctx)
	})
}

// SubmitQuery sends query right away and drops any pending keystrokes.
func (l *Listing[T]) SubmitQuery(ctx context.Context, query string) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.cancelPendingLocked()
	l.req.Query = query
	l.req.Page = 0
	return l.issueLocked(ctx)
}

// SetPage moves to a zero-based page and keeps the query.
func (l *Listing[T]) SetPage(ctx context.Context, page int) (uint64, error) {
	if page < 0 {
		return 0, fmt.Errorf("page must be >= 0: %w", ErrInvalidRequest)
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	l.req.Page = page
	return l.issueLocked(ctx), nil
}

// SetPageSize changes the page size and goes back to the first page.
func (l *Listing[T]) SetPageSize(ctx context.Context, size int) (uint64, error) {
	if size < 1 {
		return 0, fmt.Errorf("page size must be >= 1: %w", ErrInvalidRequest)
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	l.req.Size = min(size, pagination.MaxPageSize)
	l.req.Page = 0
	return l.issueLocked(ctx), nil
}

// SetIdentity reloads the current page for a new requester.
func (l *Listing[T]) SetIdentity(ctx context.Context, id *model.Identity) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.identity = copyIdentity(id)
	return l.issueLocked(ctx)
}

func (l *Listing[T]) Identity() *model.Identity {
	l.mu.Lock()
	defer l.mu.Unlock()
	return copyIdentity(l.identity)
}

func (l *Listing[T]) State() ListingState[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshotLocked()
}

// Wait blocks until no fetch is in flight.
func (l *Listing[T]) Wait() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for l.active > 0 {
		l.idle.Wait()
	}
}

// Close drops a pending debounced query.
func (l *Listing[T]) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cancelPendingLocked()
}

func (l *Listing[T]) Find(id int64) (T, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if i := l.indexLocked(id); i >= 0 {
		return l.state.Page.Items[i], true
	}
	var zero T
	return zero, false
}

// Replace swaps the item with the same id in place.
func (l *Listing[T]) Replace(ctx context.Context, item T) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.indexLocked(l.keyOf(item))
	if i < 0 {
		return false
	}
	items := slices.Clone(l.state.Page.Items)
	items[i] = item
	l.state.Page.Items = items
	l.publishLocked(ctx)
	return true
}

// Remove drops a deleted item and decrements TotalElements so ordinals of
// the remaining rows stay right without a refetch. A fetch issued before
// the deletion that completes later has the item filtered out as well.
func (l *Listing[T]) Remove(ctx context.Context, id int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.tombstones[id] = l.token

	i := l.indexLocked(id)
	if i < 0 {
		return false
	}
	l.state.Page.Items = slices.Delete(slices.Clone(l.state.Page.Items), i, i+1)
	l.state.Page.SetTotal(l.state.Page.TotalElements - 1)
	l.publishLocked(ctx)
	return true
}

// Prepend inserts a newly created item at the top of an unfiltered first
// page. Other pages and search results are left alone.
func (l *Listing[T]) Prepend(ctx context.Context, item T) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state.Status != StatusLoaded || l.req.Page != 0 || l.req.Query != "" {
		return false
	}
	items := append([]T{item}, l.state.Page.Items...)
	if len(items) > l.state.Page.PageSize && l.state.Page.PageSize > 0 {
		items = items[:l.state.Page.PageSize]
	}
	l.state.Page.Items = items
	l.state.Page.SetTotal(l.state.Page.TotalElements + 1)
	l.publishLocked(ctx)
	return true
}

func (l *Listing[T]) cancelPendingLocked() {
	if l.pending != nil {
		l.pending.Stop()
		l.pending = nil
	}
	// a callback that already fired but is waiting for the lock sees a
	// different sequence and gives up
	l.typed++
}

func (l *Listing[T]) issueLocked(ctx context.Context) uint64 {
	l.token++
	token := l.token
	q := ListQuery{PageRequest: l.req, Identity: copyIdentity(l.identity)}

	l.state.Status = StatusLoading
	l.state.Query = l.req.Query
	l.state.Err = nil
	l.state.Token = token
	l.publishLocked(ctx)

	l.active++
	go l.run(ctx, token, q)
	return token
}

func (l *Listing[T]) run(ctx context.Context, token uint64, q ListQuery) {
	page, err := l.fetch(ctx, q)

	l.mu.Lock()
	defer l.mu.Unlock()
	defer func() {
		l.active--
		if l.active == 0 {
			l.idle.Broadcast()
		}
	}()

	if token != l.token {
		logger.FromContext(ctx).Debug("discarding superseded page",
			zap.String("listing", l.name),
			zap.Uint64("token", token),
			zap.Uint64("latest", l.token),
		)
		return
	}

	if err != nil {
		logger.FromContext(ctx).Warn("listing fetch failed",
			zap.String("listing", l.name),
			zap.String("query", q.Query),
			zap.Int("page", q.Page),
			zap.Error(err),
		)
		l.state.Status = StatusFailed
		l.state.Err = err
		l.state.Page = pagination.Page[T]{PageNumber: q.Page, PageSize: q.Size}
		l.publishLocked(ctx)
		return
	}

	l.state.Status = StatusLoaded
	l.state.Err = nil
	l.state.Page = l.applyTombstonesLocked(page.Clone(), token)
	l.publishLocked(ctx)
}

func (l *Listing[T]) applyTombstonesLocked(page pagination.Page[T], token uint64) pagination.Page[T] {
	for id, deletedAt := range l.tombstones {
		// fetches issued after the deletion already reflect it
		if deletedAt < token {
			delete(l.tombstones, id)
			continue
		}
		i := slices.IndexFunc(page.Items, func(it T) bool { return l.keyOf(it) == id })
		if i < 0 {
			continue
		}
		page.Items = slices.Delete(page.Items, i, i+1)
		page.SetTotal(page.TotalElements - 1)
	}
	return page
}

func (l *Listing[T]) indexLocked(id int64) int {
	return slices.IndexFunc(l.state.Page.Items, func(it T) bool { return l.keyOf(it) == id })
}

func (l *Listing[T]) snapshotLocked() ListingState[T] {
	s := l.state
	s.Page = s.Page.Clone()
	return s
}

func (l *Listing[T]) publishLocked(ctx context.Context) {
	if l.publisher == nil {
		return
	}
	if err := l.publisher.Publish(ctx, l.name, l.snapshotLocked()); err != nil {
		logger.FromContext(ctx).Debug("publish listing state", zap.String("listing", l.name), zap.Error(err))
	}
}
