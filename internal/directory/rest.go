package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sps2604/Prosearch-sub001/internal/search"
)

const defaultRESTTimeout = 10 * time.Second

// RESTClient searches a hosted PostgREST-compatible backend, such as the
// one behind a Supabase project.
type RESTClient struct {
	baseURL    string
	table      string
	apiKey     string
	httpClient *http.Client
	log        *slog.Logger
}

func NewRESTClient(baseURL, table, apiKey string, log *slog.Logger) *RESTClient {
	if log == nil {
		log = slog.Default()
	}
	return &RESTClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		table:      table,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: defaultRESTTimeout},
		log:        log.With(slog.String("component", "directory.rest")),
	}
}

// WithHTTPClient replaces the default client (10s timeout).
func (c *RESTClient) WithHTTPClient(hc *http.Client) *RESTClient {
	c.httpClient = hc
	return c
}

type restError struct {
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
	Code    string `json:"code"`
}

func (c *RESTClient) Find(ctx context.Context, q search.Query) ([]search.ProfessionalSummary, error) {
	params, err := EncodeQuery(q)
	if err != nil {
		return nil, search.Rejected(err.Error(), err)
	}
	endpoint := fmt.Sprintf("%s/%s?%s", c.baseURL, url.PathEscape(c.table), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, search.Transport("build request", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("directory request failed", slog.String("error", err.Error()))
		return nil, search.Transport("directory unreachable", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, search.Transport("read directory response", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var apiErr restError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
			return nil, search.Rejected(apiErr.Message, fmt.Errorf("status %d, code %s", resp.StatusCode, apiErr.Code))
		}
		return nil, search.Rejected(http.StatusText(resp.StatusCode), fmt.Errorf("status %d", resp.StatusCode))
	}

	var rows []search.ProfessionalSummary
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, search.Transport("decode directory response", err)
	}
	return rows, nil
}

// EncodeQuery renders q in PostgREST's query-string syntax.
func EncodeQuery(q search.Query) (url.Values, error) {
	v := url.Values{}

	fields := q.Fields
	if len(fields) == 0 {
		fields = search.SummaryFields
	}
	for _, f := range fields {
		if _, ok := columns[f]; !ok {
			return nil, fmt.Errorf("unknown field %q", f)
		}
	}
	v.Set("select", strings.Join(fields, ","))

	if len(q.AnyOf) > 0 {
		parts := make([]string, 0, len(q.AnyOf))
		for _, p := range q.AnyOf {
			op, operand, err := restFilter(p)
			if err != nil {
				return nil, err
			}
			parts = append(parts, p.Field+"."+op+"."+quoteOperand(operand))
		}
		v.Set("or", "("+strings.Join(parts, ",")+")")
	}

	for _, p := range q.AllOf {
		op, operand, err := restFilter(p)
		if err != nil {
			return nil, err
		}
		v.Add(p.Field, op+"."+operand)
	}

	v.Set("limit", strconv.Itoa(search.ClampLimit(q.Limit)))
	return v, nil
}

func restFilter(p search.Predicate) (string, string, error) {
	if _, ok := columns[p.Field]; !ok {
		return "", "", fmt.Errorf("unknown field %q", p.Field)
	}
	switch p.Op {
	case search.OpContains:
		s, ok := p.Value.(string)
		if !ok {
			return "", "", fmt.Errorf("field %q: contains needs a string, got %T", p.Field, p.Value)
		}
		return "ilike", "*" + likeLiteral(s) + "*", nil
	case search.OpGte:
		switch n := p.Value.(type) {
		case float64:
			return "gte", strconv.FormatFloat(n, 'f', -1, 64), nil
		case float32:
			return "gte", strconv.FormatFloat(float64(n), 'f', -1, 32), nil
		case int:
			return "gte", strconv.Itoa(n), nil
		case int64:
			return "gte", strconv.FormatInt(n, 10), nil
		default:
			return "", "", fmt.Errorf("field %q: gte needs a number, got %T", p.Field, p.Value)
		}
	default:
		return "", "", fmt.Errorf("unsupported operator %q", p.Op)
	}
}

// likeLiteral escapes the LIKE wildcards in s. PostgREST rewrites every *
// to %, so a typed * cannot stay literal and is narrowed to one character.
var likeLiteral = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`, `*`, `_`).Replace

// quoteOperand wraps values containing PostgREST delimiters in double quotes.
func quoteOperand(s string) string {
	if !strings.ContainsAny(s, `,.:()"\ `) {
		return s
	}
	s = strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
	return `"` + s + `"`
}
