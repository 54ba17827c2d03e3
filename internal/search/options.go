package search

import (
	"log/slog"
	"net/url"
	"time"
)

const (
	DefaultDebounce    = 400 * time.Millisecond
	DefaultPlaceholder = "Search professionals by name, profession or skill"
)

// SelectKey decides which field keys the default profile navigation.
type SelectKey int

const (
	// SelectByName navigates to /profile/<name>. This matches the existing
	// frontend routes, but two professionals can share a display name.
	SelectByName SelectKey = iota
	// SelectByID navigates to /profile/<id>.
	SelectByID
)

// Options configure a Searcher. Use the With* functions to set them.
type Options struct {
	InitialQuery  string
	Placeholder   string
	Debounce      time.Duration
	Limit         int
	ShowResults   bool
	RenderInput   bool
	AutoSearch    bool
	Location      string
	MinExperience *float64
	ForceKey      any

	// OnResults receives the result list after every applied search.
	OnResults func([]ProfessionalSummary)
	// OnSelect replaces the default navigation when a result is picked.
	OnSelect func(ProfessionalSummary)
	// Navigator receives profile paths from the default selection handler.
	Navigator func(path string)
	SelectKey SelectKey

	Logger *slog.Logger
	Clock  Clock
}

type Option func(*Options)

func defaultOptions() Options {
	return Options{
		Placeholder: DefaultPlaceholder,
		Debounce:    DefaultDebounce,
		Limit:       DefaultLimit,
		ShowResults: true,
		RenderInput: true,
		AutoSearch:  true,
		SelectKey:   SelectByName,
	}
}

func WithInitialQuery(q string) Option {
	return func(o *Options) { o.InitialQuery = q }
}

func WithPlaceholder(p string) Option {
	return func(o *Options) { o.Placeholder = p }
}

// WithDebounce sets the quiet period before a typed query is searched.
// Negative values are treated as zero.
func WithDebounce(d time.Duration) Option {
	return func(o *Options) {
		if d < 0 {
			d = 0
		}
		o.Debounce = d
	}
}

// WithLimit sets the maximum number of results, clamped to [1, 50].
func WithLimit(n int) Option {
	return func(o *Options) { o.Limit = ClampLimit(n) }
}

func WithShowResults(show bool) Option {
	return func(o *Options) { o.ShowResults = show }
}

func WithRenderInput(render bool) Option {
	return func(o *Options) { o.RenderInput = render }
}

// WithAutoSearch controls whether typing alone schedules a search. When
// disabled only the force key (or Search) runs one.
func WithAutoSearch(enabled bool) Option {
	return func(o *Options) { o.AutoSearch = enabled }
}

func WithLocation(location string) Option {
	return func(o *Options) { o.Location = location }
}

func WithMinExperience(years *float64) Option {
	return func(o *Options) { o.MinExperience = copyFloat(years) }
}

// WithForceKey sets the initial force key. Only later changes trigger.
func WithForceKey(key any) Option {
	return func(o *Options) { o.ForceKey = key }
}

func WithOnResults(fn func([]ProfessionalSummary)) Option {
	return func(o *Options) { o.OnResults = fn }
}

func WithOnSelect(fn func(ProfessionalSummary)) Option {
	return func(o *Options) { o.OnSelect = fn }
}

func WithNavigator(fn func(path string)) Option {
	return func(o *Options) { o.Navigator = fn }
}

func WithSelectKey(key SelectKey) Option {
	return func(o *Options) { o.SelectKey = key }
}

func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

func WithClock(c Clock) Option {
	return func(o *Options) { o.Clock = c }
}

// ProfilePath returns the detail route for p.
func ProfilePath(p ProfessionalSummary, key SelectKey) string {
	if key == SelectByID {
		return "/profile/" + url.PathEscape(p.ID)
	}
	return "/profile/" + url.PathEscape(p.Name)
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
