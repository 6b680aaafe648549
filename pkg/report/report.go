package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/validation/pkg/constraint"
	"github.com/dmitrymomot/validation/pkg/path"
)

// Status is the result of one check.
type Status string

const (
	StatusPassed Status = "passed"
	StatusFailed Status = "failed"
	StatusError  Status = "error"
)

// Report is the outcome of evaluating a set of checks.
type Report struct {
	ID          uuid.UUID `json:"id" yaml:"id"`
	GeneratedAt time.Time `json:"generatedAt" yaml:"generatedAt"`
	Summary     Summary   `json:"summary" yaml:"summary"`
	Results     []Result  `json:"results" yaml:"results"`
}

// Summary counts results by status.
type Summary struct {
	Checks  int    `json:"checks" yaml:"checks"`
	Passed  int    `json:"passed" yaml:"passed"`
	Failed  int    `json:"failed" yaml:"failed"`
	Errored int    `json:"errored" yaml:"errored"`
	Status  Status `json:"status" yaml:"status"`
}

// Result is the outcome of one declaration applied to one value.
type Result struct {
	Name       string  `json:"name" yaml:"name"`
	Path       string  `json:"path,omitempty" yaml:"path,omitempty"`
	Constraint string  `json:"constraint" yaml:"constraint"`
	Status     Status  `json:"status" yaml:"status"`
	Violations []Entry `json:"violations,omitempty" yaml:"violations,omitempty"`
	Error      string  `json:"error,omitempty" yaml:"error,omitempty"`
}

// Entry is the serializable form of a constraint.Violation.
type Entry struct {
	Path         string `json:"path" yaml:"path"`
	Nodes        []Node `json:"nodes,omitempty" yaml:"nodes,omitempty"`
	Message      string `json:"message" yaml:"message"`
	Template     string `json:"template" yaml:"template"`
	InvalidValue any    `json:"invalidValue,omitempty" yaml:"invalidValue,omitempty"`
}

// Node is the serializable form of a path.Node.
type Node struct {
	Kind      string `json:"kind" yaml:"kind"`
	Name      string `json:"name,omitempty" yaml:"name,omitempty"`
	Index     *int   `json:"index,omitempty" yaml:"index,omitempty"`
	Key       string `json:"key,omitempty" yaml:"key,omitempty"`
	Container string `json:"container,omitempty" yaml:"container,omitempty"`
}

// Option configures a new Report.
type Option func(*Report)

// WithClock overrides the generation timestamp source.
func WithClock(now func() time.Time) Option {
	return func(r *Report) {
		if now != nil {
			r.GeneratedAt = now().UTC()
		}
	}
}

// WithID sets a fixed report ID.
func WithID(id uuid.UUID) Option {
	return func(r *Report) { r.ID = id }
}

// New creates an empty report with a random ID.
func New(opts ...Option) *Report {
	r := &Report{
		ID:          uuid.New(),
		GeneratedAt: time.Now().UTC(),
		Summary:     Summary{Status: StatusPassed},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Add appends results and updates the summary.
func (r *Report) Add(results ...Result) {
	for _, res := range results {
		r.Results = append(r.Results, res)
		r.Summary.Checks++
		switch res.Status {
		case StatusPassed:
			r.Summary.Passed++
		case StatusFailed:
			r.Summary.Failed++
		default:
			r.Summary.Errored++
		}
	}
	switch {
	case r.Summary.Errored > 0:
		r.Summary.Status = StatusError
	case r.Summary.Failed > 0:
		r.Summary.Status = StatusFailed
	default:
		r.Summary.Status = StatusPassed
	}
}

// Failed reports whether any result failed or errored.
func (r *Report) Failed() bool {
	return r.Summary.Status != StatusPassed
}

// NewResult converts the output of constraint.Engine.Validate into a Result.
// A non-nil err takes precedence over violations.
func NewResult(name string, p path.Path, kind string, vs constraint.Violations, err error) Result {
	res := Result{
		Name:       name,
		Path:       p.String(),
		Constraint: kind,
		Status:     StatusPassed,
	}
	switch {
	case err != nil:
		res.Status = StatusError
		res.Error = err.Error()
	case len(vs) > 0:
		res.Status = StatusFailed
		res.Violations = make([]Entry, 0, len(vs))
		for _, v := range vs {
			res.Violations = append(res.Violations, NewEntry(p, v))
		}
	}
	return res
}

// NewEntry converts a violation. base is prepended to the violation path.
func NewEntry(base path.Path, v constraint.Violation) Entry {
	nodes := make([]Node, 0, base.Len()+v.Path().Len())
	for _, n := range base.All() {
		nodes = append(nodes, newNode(n))
	}
	for _, n := range v.Path().All() {
		nodes = append(nodes, newNode(n))
	}
	return Entry{
		Path:         joinPath(base, v.Path()),
		Nodes:        nodes,
		Message:      v.Message(),
		Template:     v.MessageTemplate(),
		InvalidValue: v.InvalidValue(),
	}
}

func newNode(n path.Node) Node {
	out := Node{
		Kind:      n.Kind().String(),
		Name:      n.Name(),
		Container: string(n.ContainerType()),
	}
	if i, ok := n.Index(); ok {
		out.Index = &i
	}
	if k, ok := n.Key(); ok {
		out.Key = k.String()
	}
	return out
}

func joinPath(base, rel path.Path) string {
	switch {
	case base.IsEmpty():
		return rel.String()
	case rel.IsEmpty():
		return base.String()
	default:
		return base.String() + path.Separator + rel.String()
	}
}
