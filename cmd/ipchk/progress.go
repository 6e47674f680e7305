// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/gosuri/uilive"
)

// progressor renders a live, single-line progress report with yet another
// (braille) spinner. Updates can come in at any time from any goroutine, while
// rendering happens in the background at the spinner interval.
type progressor struct {
	term   *uilive.Writer
	phases []string
	ticker *time.Ticker
	done   chan struct{}
	wg     sync.WaitGroup

	mu           sync.Mutex
	phase        int
	swept, total uint64
}

// newProgress returns a new progressor rendering to w and already spinning;
// call Stop to render the final state and release the background resources.
func newProgress(w io.Writer, interval time.Duration) *progressor {
	// We avoid uilive's background updating using Start(), as it may trigger
	// while we're still rendering. Instead, we flush explicitly after having
	// rendered.
	term := uilive.New()
	term.Out = w
	phases := []string{}
	for _, r := range "⠉⠘⠰⠤⠆⠃" {
		phases = append(phases, string(r))
	}
	p := &progressor{
		term:   term,
		phases: phases,
		ticker: time.NewTicker(interval),
		done:   make(chan struct{}),
	}
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		for {
			select {
			case <-p.ticker.C:
				p.mu.Lock()
				p.phase = (p.phase + 1) % len(p.phases)
				p.mu.Unlock()
				p.render(false)
			case <-p.done:
				p.ticker.Stop()
				return
			}
		}
	}()
	return p
}

// Update the progress with the number of swept targets out of the total number
// of targets.
func (p *progressor) Update(swept, total uint64) {
	p.mu.Lock()
	p.swept, p.total = swept, total
	p.mu.Unlock()
}

// Stop spinning and render the final progress.
func (p *progressor) Stop() {
	close(p.done)
	p.wg.Wait()
	p.render(true)
}

func (p *progressor) render(final bool) {
	p.mu.Lock()
	spinner := p.phases[p.phase]
	if final {
		spinner = "✔"
	}
	fmt.Fprintf(p.term, "%s swept %d of %d targets\n", spinner, p.swept, p.total)
	p.mu.Unlock()
	_ = p.term.Flush()
}
