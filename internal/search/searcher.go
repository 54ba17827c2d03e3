package search

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
)

// Session is a snapshot of what an incremental search currently shows.
type Session struct {
	Query       string
	Results     []ProfessionalSummary
	Loading     bool
	Error       string
	InfoMessage string
}

// Searcher is an incremental search over a Directory. Typing is debounced,
// force key changes search immediately, and only the latest dispatched
// request may update the session.
//
// Observer callbacks are delivered one at a time in the order the session
// changed. They must not call back into the Searcher synchronously.
type Searcher struct {
	dir   Directory
	opts  Options
	log   *slog.Logger
	sched *Scheduler

	mu       sync.Mutex
	text     string
	location string
	minExp   *float64
	forceKey any
	seq      uint64
	cancel   context.CancelFunc
	session  Session
	closed   bool

	// held while observers run; acquired before mu is released
	notifyMu sync.Mutex
	// set by Close, checked under notifyMu
	unmounted atomic.Bool
}

// New mounts a Searcher. With auto search enabled the initial query is
// searched after the debounce delay.
func New(dir Directory, opts ...Option) *Searcher {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	log := o.Logger
	if log == nil {
		log = slog.Default()
	}

	s := &Searcher{
		dir:      dir,
		opts:     o,
		log:      log.With(slog.String("component", "search")),
		sched:    NewScheduler(o.Clock),
		text:     o.InitialQuery,
		location: o.Location,
		minExp:   copyFloat(o.MinExperience),
		forceKey: o.ForceKey,
		session: Session{
			Query:   o.InitialQuery,
			Results: []ProfessionalSummary{},
		},
	}

	if o.AutoSearch {
		s.sched.Schedule(o.Debounce, s.executeDebounced)
	}
	return s
}

// Options returns the configuration the Searcher was mounted with.
func (s *Searcher) Options() Options {
	return s.opts
}

// SetText records typed input and, with auto search on, restarts the
// debounce timer.
func (s *Searcher) SetText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || text == s.text {
		return
	}
	s.text = text
	s.session.Query = text
	s.scheduleLocked()
}

// SetLocation changes the external location filter.
func (s *Searcher) SetLocation(location string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || location == s.location {
		return
	}
	s.location = location
	s.scheduleLocked()
}

// SetMinExperience changes the external experience floor. nil removes it.
func (s *Searcher) SetMinExperience(years *float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || floatPtrEqual(years, s.minExp) {
		return
	}
	s.minExp = copyFloat(years)
	s.scheduleLocked()
}

// SetForceKey searches immediately whenever key differs from the previous
// key, including a change from nil. Keys that are not comparable always
// count as a change.
func (s *Searcher) SetForceKey(key any) {
	s.mu.Lock()
	if s.closed || sameKey(key, s.forceKey) {
		s.mu.Unlock()
		return
	}
	s.forceKey = key
	s.mu.Unlock()

	s.Search()
}

// Search runs the current criteria now, dropping any pending debounce.
func (s *Searcher) Search() {
	s.sched.CancelPending()
	s.execute()
}

// Select handles a picked result: the selection observer if configured,
// the profile navigation otherwise.
func (s *Searcher) Select(p ProfessionalSummary) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return
	}

	if s.opts.OnSelect != nil {
		s.opts.OnSelect(p)
		return
	}
	path := ProfilePath(p, s.opts.SelectKey)
	if s.opts.Navigator == nil {
		s.log.Warn("no navigator configured, dropping profile navigation", slog.String("path", path))
		return
	}
	s.opts.Navigator(path)
}

// Session returns a copy of the current session state.
func (s *Searcher) Session() Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.session
	snap.Results = make([]ProfessionalSummary, len(s.session.Results))
	copy(snap.Results, s.session.Results)
	return snap
}

// Close unmounts the Searcher. The pending timer is cancelled and any
// in-flight response is ignored when it arrives. Close waits for a running
// observer to return, so no callback starts after it. Calling Close twice
// is fine.
func (s *Searcher) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.unmounted.Store(true)
	s.sched.Stop()
	s.seq++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.session.Loading = false
	s.mu.Unlock()

	s.notifyMu.Lock()
	s.notifyMu.Unlock()
}

func (s *Searcher) scheduleLocked() {
	if !s.opts.AutoSearch {
		return
	}
	s.sched.Schedule(s.opts.Debounce, s.executeDebounced)
}

// executeDebounced runs when the debounce timer fires. Input that arrived
// between the timer firing and mu being taken has already scheduled a
// newer timer, which will search the same criteria, so this run is skipped.
func (s *Searcher) executeDebounced() {
	s.mu.Lock()
	if s.sched.Pending() {
		s.mu.Unlock()
		return
	}
	s.executeLocked()
}

// execute dispatches the current criteria under a fresh sequence number.
func (s *Searcher) execute() {
	s.mu.Lock()
	s.executeLocked()
}

// executeLocked is execute with mu already held. It releases mu.
func (s *Searcher) executeLocked() {
	if s.closed {
		s.mu.Unlock()
		return
	}

	c := NewCriteria(s.text, s.location, s.minExp, s.opts.Limit)
	s.seq++
	seq := s.seq
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}

	q, ok := Compose(c)
	if !ok {
		s.session.Results = []ProfessionalSummary{}
		s.session.Error = ""
		s.session.InfoMessage = ""
		s.session.Loading = false
		s.notifyAndUnlock(s.session.Results)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.session.Loading = true
	s.mu.Unlock()

	s.log.Debug("search dispatched",
		slog.Uint64("seq", seq),
		slog.String("text", c.Text),
		slog.String("location", c.Location),
	)
	go s.run(ctx, seq, c, q)
}

func (s *Searcher) run(ctx context.Context, seq uint64, c Criteria, q Query) {
	results, err := s.dir.Find(ctx, q)
	s.complete(seq, c, results, err)
}

func (s *Searcher) complete(seq uint64, c Criteria, results []ProfessionalSummary, err error) {
	s.mu.Lock()
	if s.closed || seq != s.seq {
		s.mu.Unlock()
		s.log.Debug("stale search response discarded", slog.Uint64("seq", seq))
		return
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}

	out := Reconcile(c, results, err)
	s.session.Results = out.Results
	s.session.Error = out.Error
	s.session.InfoMessage = out.InfoMessage
	s.session.Loading = false

	if err != nil {
		s.log.Warn("search failed", slog.Uint64("seq", seq), slog.String("error", err.Error()))
	}
	s.notifyAndUnlock(out.Results)
}

// notifyAndUnlock hands the lock over to notifyMu so observers see
// sessions in the order they were applied. Called with mu held.
func (s *Searcher) notifyAndUnlock(results []ProfessionalSummary) {
	cb := s.opts.OnResults
	if cb == nil {
		s.mu.Unlock()
		return
	}
	list := append([]ProfessionalSummary{}, results...)

	s.notifyMu.Lock()
	s.mu.Unlock()
	defer s.notifyMu.Unlock()
	if s.unmounted.Load() {
		return
	}
	cb(list)
}

func floatPtrEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func sameKey(a, b any) (same bool) {
	defer func() {
		if recover() != nil {
			same = false
		}
	}()
	return a == b
}
