package bench

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"

	"github.com/pcacs/rsalab-go/pkg/rsalab/arith"
)

// Phase names a stage of a benchmark trial set.
type Phase string

const (
	PhaseKeygen      Phase = "keygen"
	PhaseRoundTrip   Phase = "roundtrip"
	PhaseEquivalence Phase = "equivalence"
)

// Outcome is the verdict of one record.
type Outcome string

const (
	Pass Outcome = "pass"
	Fail Outcome = "fail"
)

// Record is one timed measurement. Trial is the key pair index within its
// bit length.
type Record struct {
	BitLength int
	Backend   arith.ID
	Phase     Phase
	Trial     int
	Elapsed   time.Duration
	Outcome   Outcome
}

// Report collects the records of one harness run.
type Report struct {
	RunID   uuid.UUID
	Seed    int64
	Started time.Time
	Records []Record
}

func newReport(seed int64) *Report {
	return &Report{RunID: uuid.New(), Seed: seed, Started: time.Now()}
}

func (r *Report) add(rec Record) {
	r.Records = append(r.Records, rec)
}

// Passed reports whether every record passed.
func (r *Report) Passed() bool {
	for _, rec := range r.Records {
		if rec.Outcome != Pass {
			return false
		}
	}
	return true
}

// Total sums the elapsed time of the matching records.
func (r *Report) Total(bits int, backend arith.ID, phase Phase) time.Duration {
	var total time.Duration
	for _, rec := range r.Records {
		if rec.BitLength == bits && rec.Backend == backend && rec.Phase == phase {
			total += rec.Elapsed
		}
	}
	return total
}

// BitLengths lists the swept bit lengths in the order they ran.
func (r *Report) BitLengths() []int {
	var out []int
	for _, rec := range r.Records {
		if !slices.Contains(out, rec.BitLength) {
			out = append(out, rec.BitLength)
		}
	}
	return out
}

// Backends lists the backends seen in the report in the order they ran.
func (r *Report) Backends() []arith.ID {
	var out []arith.ID
	for _, rec := range r.Records {
		if !slices.Contains(out, rec.Backend) {
			out = append(out, rec.Backend)
		}
	}
	return out
}

func (r *Report) outcome(bits int) Outcome {
	for _, rec := range r.Records {
		if rec.BitLength == bits && rec.Outcome == Fail {
			return Fail
		}
	}
	return Pass
}

// WriteTable prints one row per bit length with the summed time of every
// backend and phase, then the verdict for that bit length.
func (r *Report) WriteTable(w io.Writer) error {
	backends := r.Backends()
	phases := []Phase{PhaseKeygen, PhaseRoundTrip, PhaseEquivalence}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "run %s (seed %d)\n", r.RunID, r.Seed)

	header := []string{"bits"}
	for _, b := range backends {
		for _, p := range phases {
			header = append(header, fmt.Sprintf("%s %s", b, p))
		}
	}
	header = append(header, "result")
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	for _, bits := range r.BitLengths() {
		row := []string{fmt.Sprint(bits)}
		for _, b := range backends {
			for _, p := range phases {
				row = append(row, formatDuration(r.Total(bits, b, p)))
			}
		}
		row = append(row, strings.ToUpper(string(r.outcome(bits))))
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

func formatDuration(d time.Duration) string {
	if d == 0 {
		return "-"
	}
	return d.Round(time.Microsecond).String()
}
