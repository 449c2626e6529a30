// internal/batch/report.go
package batch

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"
)

type Outcome string

const (
	Updated Outcome = "updated"
	Linked  Outcome = "linked"
	Created Outcome = "created"
	Skipped Outcome = "skipped"
	Failed  Outcome = "failed"
)

// Result: wynik przetworzenia jednego rekordu.
type Result struct {
	Kind    string // booking, order, tour, ...
	ID      uint
	Ref     string // np. numer zamówienia
	Outcome Outcome
	Reason  string
	Err     error
}

func (r Result) OK() bool { return r.Outcome != Failed }

// Report zbiera wyniki jednej fazy/przebiegu.
type Report struct {
	Name  string
	Items []Result
}

func New(name string) *Report { return &Report{Name: name} }

func (r *Report) Add(res Result) Result {
	r.Items = append(r.Items, res)
	return res
}

func (r *Report) Ok(kind string, id uint, outcome Outcome) Result {
	return r.Add(Result{Kind: kind, ID: id, Outcome: outcome})
}

func (r *Report) Skip(kind string, id uint, reason string) Result {
	return r.Add(Result{Kind: kind, ID: id, Outcome: Skipped, Reason: reason})
}

func (r *Report) Fail(kind string, id uint, err error) Result {
	return r.Add(Result{Kind: kind, ID: id, Outcome: Failed, Reason: err.Error(), Err: err})
}

func (r *Report) Count(o Outcome) int {
	n := 0
	for _, it := range r.Items {
		if it.Outcome == o {
			n++
		}
	}
	return n
}

func (r *Report) Total() int { return len(r.Items) }

func (r *Report) Failures() []Result {
	var out []Result
	for _, it := range r.Items {
		if it.Outcome == Failed {
			out = append(out, it)
		}
	}
	return out
}

// Counts: liczniki per outcome (tylko niezerowe).
func (r *Report) Counts() map[Outcome]int {
	out := map[Outcome]int{}
	for _, it := range r.Items {
		out[it.Outcome]++
	}
	return out
}

func (r *Report) String() string {
	counts := r.Counts()
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, counts[Outcome(k)]))
	}
	return fmt.Sprintf("%s: total=%d %s", r.Name, r.Total(), strings.Join(parts, " "))
}

// Log wypisuje podsumowanie i listę błędów.
func (r *Report) Log(log zerolog.Logger) {
	ev := log.Info().Str("report", r.Name).Int("total", r.Total())
	for o, n := range r.Counts() {
		ev = ev.Int(string(o), n)
	}
	ev.Msg("batch summary")

	for _, f := range r.Failures() {
		log.Warn().
			Str("report", r.Name).
			Str("kind", f.Kind).
			Uint("id", f.ID).
			Str("ref", f.Ref).
			Str("reason", f.Reason).
			Msg("batch item failed")
	}
}
