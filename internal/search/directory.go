package search

import "context"

// Directory executes composed queries against the professional directory.
// Implementations should return *Error so failures can be classified;
// any other error is reported as a transport failure.
type Directory interface {
	Find(ctx context.Context, q Query) ([]ProfessionalSummary, error)
}

// Outcome is the visible state produced by one completed search.
type Outcome struct {
	Results     []ProfessionalSummary `json:"results"`
	Error       string                `json:"error,omitempty"`
	InfoMessage string                `json:"info,omitempty"`
}

// Reconcile turns a directory response into the state a caller shows.
func Reconcile(c Criteria, results []ProfessionalSummary, err error) Outcome {
	if err != nil {
		return Outcome{Results: []ProfessionalSummary{}, Error: UserMessage(err)}
	}

	limit := ClampLimit(c.Limit)
	if len(results) > limit {
		results = results[:limit]
	}
	out := Outcome{Results: make([]ProfessionalSummary, len(results))}
	copy(out.Results, results)

	if len(out.Results) == 0 && c.Text != "" {
		out.InfoMessage = MsgNotFound
	}
	return out
}

// Run performs a single search outside any session: compose, send and
// reconcile. Criteria without constraints yield an empty outcome and the
// directory is not called.
func Run(ctx context.Context, dir Directory, c Criteria) Outcome {
	q, ok := Compose(c)
	if !ok {
		return Outcome{Results: []ProfessionalSummary{}}
	}
	results, err := dir.Find(ctx, q)
	return Reconcile(c, results, err)
}
