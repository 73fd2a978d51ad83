// Package bench drives arithmetic backends through key generation and
// encrypt/decrypt round trips over a sweep of key sizes, timing each phase
// and checking that every backend agrees with the first one bit for bit.
package bench

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"math/rand"
	"time"

	"github.com/pcacs/rsalab-go/pkg/rsalab"
	"github.com/pcacs/rsalab-go/pkg/rsalab/arith"
	"github.com/pcacs/rsalab-go/pkg/rsalab/engine"
	"github.com/pcacs/rsalab-go/pkg/rsalab/keygen"
	"github.com/pcacs/rsalab-go/pkg/rsalab/logging"
)

// Harness runs the benchmark described by a Config. It is sequential and not
// safe for concurrent use.
type Harness struct {
	settings    rsalab.BenchSettings
	certainty   int
	maxAttempts int
	inverse     keygen.InverseMethod
	backends    []arith.Backend
	logger      logging.Logger
}

// Resolve constructs the backends named in ids, in order.
func Resolve(ids []string) ([]arith.Backend, error) {
	out := make([]arith.Backend, 0, len(ids))
	for _, s := range ids {
		id, err := arith.ParseID(s)
		if err != nil {
			return nil, err
		}
		b, err := arith.New(id)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

// NewHarness checks cfg and returns a Harness over backends. The first
// backend is the reference for equivalence checks. A nil logger discards
// records.
func NewHarness(cfg rsalab.Config, backends []arith.Backend, logger logging.Logger) (*Harness, error) {
	if len(backends) == 0 {
		return nil, errors.New("bench: at least one backend is required")
	}
	seen := make(map[arith.ID]bool, len(backends))
	for _, b := range backends {
		if b == nil {
			return nil, errors.New("bench: nil backend")
		}
		if seen[b.ID()] {
			return nil, fmt.Errorf("bench: backend %s listed twice", b.ID())
		}
		seen[b.ID()] = true
	}

	s := cfg.Bench
	if len(s.BitLengths) == 0 {
		return nil, errors.New("bench: no bit lengths to sweep")
	}
	for _, bits := range s.BitLengths {
		if bits < keygen.MinBits {
			return nil, fmt.Errorf("bench: %d bits: %w", bits, rsalab.ErrInvalidBitLength)
		}
	}
	if s.KeyPairs < 1 || s.Messages < 1 {
		return nil, fmt.Errorf("bench: key pairs (%d) and messages (%d) must be positive", s.KeyPairs, s.Messages)
	}

	if logger == nil {
		logger = logging.Discard()
	}
	return &Harness{
		settings:    s,
		certainty:   cfg.Certainty,
		maxAttempts: cfg.MaxExponentAttempts,
		inverse:     keygen.InverseMethod(cfg.InverseMethod),
		backends:    backends,
		logger:      logger.With("component", "bench"),
	}, nil
}

// trialSet holds what one backend produced for one bit length.
type trialSet struct {
	keys     []*keygen.KeyPair
	messages [][]*big.Int
}

// Run executes the sweep. On a mismatch or divergence it stops and returns
// the report built so far together with a *rsalab.MismatchError or
// *rsalab.DivergenceError.
func (h *Harness) Run(ctx context.Context) (*Report, error) {
	report := newReport(h.settings.Seed)
	h.logger.Info(ctx, "benchmark started",
		"run_id", report.RunID.String(),
		"seed", h.settings.Seed,
		"bit_lengths", h.settings.BitLengths,
	)

	for _, bits := range h.settings.BitLengths {
		var reference *trialSet
		for i, b := range h.backends {
			set, err := h.runBackend(ctx, report, b, bits)
			if err != nil {
				return report, err
			}
			if i == 0 {
				reference = set
			}
		}
		for _, candidate := range h.backends[1:] {
			if err := h.compare(ctx, report, h.backends[0], candidate, bits, reference); err != nil {
				return report, err
			}
		}
	}

	h.logger.Info(ctx, "benchmark finished", "run_id", report.RunID.String(), "records", len(report.Records))
	return report, nil
}

// runBackend builds the key pairs for one backend and bit length and round
// trips the sampled messages through each.
func (h *Harness) runBackend(ctx context.Context, report *Report, b arith.Backend, bits int) (*trialSet, error) {
	rnd := rand.New(rand.NewSource(h.settings.Seed))
	gen, err := keygen.NewGenerator(b, &keygen.Params{
		Certainty:           h.certainty,
		Rand:                rnd,
		MaxExponentAttempts: h.maxAttempts,
		InverseMethod:       h.inverse,
		Logger:              h.logger,
	})
	if err != nil {
		return nil, err
	}

	set := &trialSet{}
	for k := 0; k < h.settings.KeyPairs; k++ {
		start := time.Now()
		kp, err := gen.FromBits(ctx, bits)
		rec := Record{BitLength: bits, Backend: b.ID(), Phase: PhaseKeygen, Trial: k, Elapsed: time.Since(start), Outcome: Pass}
		if err != nil {
			rec.Outcome = Fail
			report.add(rec)
			return nil, fmt.Errorf("bench: %s keygen at %d bits: %w", b.ID(), bits, err)
		}
		report.add(rec)
		set.keys = append(set.keys, kp)
	}
	h.logger.Debug(ctx, "keygen phase done", "backend", b.ID().String(), "bits", bits,
		"elapsed", report.Total(bits, b.ID(), PhaseKeygen))

	for k, kp := range set.keys {
		msgs, err := sampleMessages(rnd, b, kp.N(), h.settings.Messages)
		if err != nil {
			return nil, err
		}
		set.messages = append(set.messages, msgs)

		en, err := engine.New(kp, b)
		if err != nil {
			return nil, err
		}
		start := time.Now()
		failed := -1
		for i, m := range msgs {
			ok, err := roundTrip(en, m)
			if err != nil {
				return nil, fmt.Errorf("bench: %s round trip at %d bits: %w", b.ID(), bits, err)
			}
			if !ok {
				failed = i
				break
			}
		}
		rec := Record{BitLength: bits, Backend: b.ID(), Phase: PhaseRoundTrip, Trial: k, Elapsed: time.Since(start), Outcome: Pass}
		if failed >= 0 {
			rec.Outcome = Fail
			report.add(rec)
			h.logger.Error(ctx, "decryption mismatch", "backend", b.ID().String(), "bits", bits, "key_pair", k, "message", failed)
			return nil, &rsalab.MismatchError{Backend: b.ID().String(), BitLength: bits, KeyPair: k, Message: failed}
		}
		report.add(rec)
	}
	h.logger.Info(ctx, "backend trial set passed", "backend", b.ID().String(), "bits", bits,
		"keygen", report.Total(bits, b.ID(), PhaseKeygen),
		"roundtrip", report.Total(bits, b.ID(), PhaseRoundTrip),
	)
	return set, nil
}

// sampleMessages draws count messages of at most bitlen(n)-1 bits, so each is
// below n.
func sampleMessages(rnd *rand.Rand, b arith.Backend, n *big.Int, count int) ([]*big.Int, error) {
	bound := new(big.Int).Lsh(big.NewInt(1), uint(n.BitLen()-1))
	out := make([]*big.Int, count)
	for i := range out {
		m, err := b.RandomBelow(rnd, bound)
		if err != nil {
			return nil, err
		}
		out[i] = m
	}
	return out, nil
}

func roundTrip(en *engine.Engine, m *big.Int) (bool, error) {
	c, err := en.Encrypt(m)
	if err != nil {
		return false, err
	}
	got, err := en.Decrypt(c)
	if err != nil {
		return false, err
	}
	return got.Cmp(m) == 0, nil
}

// compare replays the reference key pairs and messages on candidate and
// requires identical results for every operation.
func (h *Harness) compare(ctx context.Context, report *Report, ref, candidate arith.Backend, bits int, set *trialSet) error {
	for k, kp := range set.keys {
		if err := ctx.Err(); err != nil {
			return err
		}
		start := time.Now()
		op, err := diverges(ref, candidate, kp, set.messages[k])
		rec := Record{BitLength: bits, Backend: candidate.ID(), Phase: PhaseEquivalence, Trial: k, Elapsed: time.Since(start), Outcome: Pass}
		if err != nil {
			rec.Outcome = Fail
			report.add(rec)
			return fmt.Errorf("bench: %s against %s at %d bits: %w", candidate.ID(), ref.ID(), bits, err)
		}
		if op != "" {
			rec.Outcome = Fail
			report.add(rec)
			h.logger.Error(ctx, "backends diverge", "operation", op,
				"reference", ref.ID().String(), "candidate", candidate.ID().String(), "bits", bits, "key_pair", k)
			return &rsalab.DivergenceError{
				Operation: op,
				Reference: ref.ID().String(),
				Candidate: candidate.ID().String(),
				BitLength: bits,
				KeyPair:   k,
			}
		}
		report.add(rec)
	}
	return nil
}

// diverges returns the name of the first operation on which the two backends
// disagree, or "" when they agree everywhere.
func diverges(ref, candidate arith.Backend, kp *keygen.KeyPair, msgs []*big.Int) (string, error) {
	e, d, n, phi := kp.E(), kp.D(), kp.N(), kp.Phi()

	if ref.GCD(e, phi).Cmp(candidate.GCD(e, phi)) != 0 {
		return "gcd", nil
	}
	want, err := ref.ModInverse(e, phi)
	if err != nil {
		return "", err
	}
	got, err := candidate.ModInverse(e, phi)
	if err != nil {
		return "", err
	}
	if want.Cmp(got) != 0 {
		return "mod_inverse", nil
	}

	for _, m := range msgs {
		wantC, err := ref.ModPow(m, e, n)
		if err != nil {
			return "", err
		}
		gotC, err := candidate.ModPow(m, e, n)
		if err != nil {
			return "", err
		}
		if wantC.Cmp(gotC) != 0 {
			return "encrypt", nil
		}
		wantM, err := ref.ModPow(wantC, d, n)
		if err != nil {
			return "", err
		}
		gotM, err := candidate.ModPow(wantC, d, n)
		if err != nil {
			return "", err
		}
		if wantM.Cmp(gotM) != 0 {
			return "decrypt", nil
		}
	}
	return "", nil
}
