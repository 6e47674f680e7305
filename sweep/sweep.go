// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package sweep

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/siemens/ipchk/dnsworker"
	"github.com/siemens/ipchk/ping"
	"github.com/siemens/ipchk/targets"
	"github.com/siemens/ipchk/types"

	"github.com/gammazero/workerpool"
	"github.com/thediveo/lxkns/log"
)

// Defaults of a Sweeper's run configuration.
const (
	DefaultTimeout     = 2 * time.Second
	DefaultAttempts    = 4
	DefaultConcurrency = 128
)

// maxBuffered limits the buffer of the channel between probes and collector.
const maxBuffered = 4096

// Sweeper sweeps targets in waves of concurrent reachability probes, never
// running more than its concurrency limit of probes at the same time.
type Sweeper struct {
	prober      ping.Prober
	timeout     time.Duration // per probe attempt.
	attempts    int           // probe attempts per target.
	concurrency int           // maximum wave size.
	progress    func(done, total uint64)
	names       *dnsworker.DnsPool // optional PTR lookups for reachable targets.
}

// Option can be passed to New when creating new Sweeper objects.
type Option func(*Sweeper)

// New returns a new [Sweeper] using the specified Prober for testing
// reachability. Unless configured otherwise using options, the new Sweeper
// probes up to 128 targets concurrently, with 4 attempts of 2s each.
//
//   - [WithTimeout]
//   - [WithAttempts]
//   - [WithConcurrency]
//   - [WithProgress]
//   - [WithNames]
func New(prober ping.Prober, options ...Option) *Sweeper {
	s := &Sweeper{
		prober:      prober,
		timeout:     DefaultTimeout,
		attempts:    DefaultAttempts,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// WithTimeout sets the timeout for each individual probe attempt.
func WithTimeout(timeout time.Duration) Option {
	return func(s *Sweeper) {
		s.timeout = timeout
	}
}

// WithAttempts sets the number of probe attempts per target; values below 1
// are taken as 1.
func WithAttempts(attempts int) Option {
	return func(s *Sweeper) {
		if attempts < 1 {
			attempts = 1
		}
		s.attempts = attempts
	}
}

// WithConcurrency sets the maximum number of concurrent probes, which is also
// the size of the waves; values below 1 are taken as 1.
func WithConcurrency(concurrency int) Option {
	return func(s *Sweeper) {
		if concurrency < 1 {
			concurrency = 1
		}
		s.concurrency = concurrency
	}
}

// WithProgress sets a function that gets called after each completed wave with
// the number of targets swept so far and the total number of targets.
func WithProgress(fn func(done, total uint64)) Option {
	return func(s *Sweeper) {
		s.progress = fn
	}
}

// WithNames looks up the PTR names of reachable targets using the specified
// DNS pool. Lookup failures leave the names empty.
func WithNames(pool *dnsworker.DnsPool) Option {
	return func(s *Sweeper) {
		s.names = pool
	}
}

// Sweep probes all targets from the specified Enumerator and returns their
// outcomes, sorted in ascending order of their numeric IPv4 address values
// (see [Sort]). There is exactly one outcome for each target.
//
// Targets are taken from the enumerator in waves of at most the Sweeper's
// concurrency limit. All targets of a wave are probed concurrently and the
// next wave starts only after the whole current wave has completed.
//
// If the context gets cancelled, no further waves are started. Sweep then
// returns the outcomes of the waves swept so far, together with the context's
// error. Probes of the current wave see the cancelled context and end up
// down.
func (s *Sweeper) Sweep(ctx context.Context, tgts targets.Enumerator) ([]types.Outcome, error) {
	// The outcomes of concurrent probes all converge on a single channel that
	// is drained by the collector; the collector finishes only after we've
	// closed the channel once all waves are done.
	total := tgts.Len()
	wavesize := s.concurrency
	if total < uint64(wavesize) {
		wavesize = int(total)
		if wavesize < 1 {
			wavesize = 1
		}
	}
	buffered := wavesize
	if buffered > maxBuffered {
		buffered = maxBuffered
	}
	news := make(chan types.Outcome, buffered)
	collector := NewCollector()
	collected := make(chan struct{})
	go func() {
		_ = collector.Track(context.Background(), news)
		close(collected)
	}()

	workers := workerpool.New(wavesize)
	var done uint64
	var err error
	for wave := 1; ; wave++ {
		if err = ctx.Err(); err != nil {
			log.Warnf("sweep cancelled after %d of %d targets", done, total)
			break
		}
		tgtwave := targets.Take(tgts, wavesize)
		if len(tgtwave) == 0 {
			break
		}
		log.Debugf("sweeping wave #%d of %d targets", wave, len(tgtwave))
		var barrier sync.WaitGroup
		barrier.Add(len(tgtwave))
		for _, t := range tgtwave {
			t := t
			workers.Submit(func() {
				defer barrier.Done()
				news <- s.probe(ctx, t)
			})
		}
		barrier.Wait()
		done += uint64(len(tgtwave))
		if s.progress != nil {
			s.progress(done, total)
		}
	}
	workers.StopWait()
	close(news)
	<-collected

	outcomes := collector.Outcomes()
	Sort(outcomes)
	return outcomes, err
}

// probe returns the outcome for the specified target. It always returns an
// outcome, even if probing panics: the target then is down.
func (s *Sweeper) probe(ctx context.Context, t types.Target) (outcome types.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("probing %s panicked: %v", t.Address, r)
			outcome = types.NewOutcome(t, types.Down, fmt.Errorf("probe panicked: %v", r))
		}
	}()
	outcome = ping.Classify(ctx, s.prober, t, s.timeout, s.attempts)
	if s.names != nil && outcome.Status == types.Up {
		outcome = s.named(ctx, outcome)
	}
	return outcome
}

// named returns the outcome with the PTR names of its target added. If the
// lookup fails or even panics, the outcome is returned unchanged.
func (s *Sweeper) named(ctx context.Context, outcome types.Outcome) (named types.Outcome) {
	named = outcome
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("looking up PTR names of %s panicked: %v", outcome.Target.Address, r)
			named = outcome
		}
	}()
	names, err := s.names.LookupAddr(ctx, outcome.Target.Address)
	if err != nil {
		log.Debugf("no PTR names for %s: %s", outcome.Target.Address, err.Error())
		return outcome
	}
	return outcome.WithNames(names)
}
