// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package dnsworker

import (
	"context"
	"fmt"
	"sync"

	"github.com/gammazero/workerpool"
	"github.com/miekg/dns"
	"github.com/thediveo/lxkns/ops"
	"github.com/thediveo/lxkns/ops/relations"
	"github.com/thediveo/lxkns/species"
)

// DnsPool is a (size-limited) pool of DNS client connections talking with the
// same DNS resolver address.
type DnsPool struct {
	netns   relations.Relation // network namespace to dial from, or nil.
	client  *dns.Client
	workers *workerpool.WorkerPool
	mu      sync.Mutex // protects the pool of DNS connections
	free    []*dns.Conn
}

// DnsPoolOption can be passed to New when creating new [DnsPool] objects.
type DnsPoolOption func(*DnsPool)

// New returns a pool of the specified size of DNS client connections, with each
// connection using the specified context and talking to the same DNS resolver
// address.
//
// The passed context is used for creating (dialing) the DNS client connections
// only. Lookups get their own contexts.
//
// To operate a DnsPool in a network namespace different to that of the OS-level
// thread of the caller specify the [InNetworkNamespace] option and pass it a
// filesystem path that must reference a network namespace (such as
// "/proc/666/ns/net").
func New(ctx context.Context, size int, dnsclnt *dns.Client, addr string, options ...DnsPoolOption) (*DnsPool, error) {
	if size < 1 {
		size = 1
	}
	dnspool := &DnsPool{
		client: dnsclnt,
	}
	for _, opt := range options {
		opt(dnspool)
	}
	free := make([]*dns.Conn, 0, size)
	dial := func() interface{} {
		for i := 0; i < size; i++ {
			conn, err := dnsclnt.DialContext(ctx, addr)
			if err != nil {
				// Immediately release all connections created so far.
				for _, conn := range free {
					conn.Close()
				}
				return err
			}
			free = append(free, conn)
		}
		return nil
	}
	// Dial the connections in the requested network namespace, if necessary.
	var err error
	var dialerr interface{}
	if dnspool.netns != nil {
		dialerr, err = ops.Execute(dial, dnspool.netns)
	} else {
		dialerr = dial()
	}
	if err != nil {
		return nil, err
	}
	if dialerr != nil {
		return nil, dialerr.(error)
	}
	dnspool.free = free
	dnspool.workers = workerpool.New(size)
	return dnspool, nil
}

// InNetworkNamespace optionally runs a DnsPool inside the network namespace
// referenced by the specified filesystem path.
func InNetworkNamespace(netnsref string) DnsPoolOption {
	return func(p *DnsPool) {
		if netnsref == "" {
			return
		}
		p.netns = ops.NewTypedNamespacePath(netnsref, species.CLONE_NEWNET)
	}
}

// Submit a task to the DNS client connection pool, where it gets enqueued to be
// executed on an available DNS client connection.
func (p *DnsPool) Submit(task func(conn *dns.Conn)) {
	p.workers.Submit(func() { p.task(task) })
}

// ResolveAddr is a convenience method for submitting a PTR query for the
// specified IP address and passing the names found, or an error, to the
// specified callback function fn. The names are FQDNs, so they end in a dot.
//
// Please note that when the passed context is cancelled this will cancel all
// scheduled lookups, with fn receiving the context's error.
func (p *DnsPool) ResolveAddr(ctx context.Context, addr string, fn func([]string, error)) {
	p.Submit(func(conn *dns.Conn) {
		var names []string
		var err error
		defer func() { fn(names, err) }() // ...ensure triggering the result callback on our way out

		select {
		case <-ctx.Done():
			err = ctx.Err()
			return
		default:
		}

		var revname string
		revname, err = dns.ReverseAddr(addr)
		if err != nil {
			return
		}
		msg := dns.Msg{
			MsgHdr: dns.MsgHdr{Id: dns.Id()},
		}
		msg.SetQuestion(revname, dns.TypePTR)
		msg.RecursionDesired = true
		var r *dns.Msg
		r, _, err = p.client.ExchangeWithConn(&msg, conn)
		if err != nil {
			return
		}
		if r.Rcode != dns.RcodeSuccess {
			err = fmt.Errorf("ResolveAddr: query for %q failed with %s",
				revname, dns.RcodeToString[r.Rcode])
			return
		}
		for _, rr := range r.Answer {
			if ptr, ok := rr.(*dns.PTR); ok {
				names = append(names, ptr.Ptr)
			}
		}
		if len(names) == 0 {
			err = fmt.Errorf("ResolveAddr: query for %q yields no answers", revname)
		}
	})
}

// LookupAddr returns the PTR names of the specified IP address, blocking until
// the lookup has been done or the context is done.
func (p *DnsPool) LookupAddr(ctx context.Context, addr string) ([]string, error) {
	type result struct {
		names []string
		err   error
	}
	ch := make(chan result, 1) // never block the worker.
	p.ResolveAddr(ctx, addr, func(names []string, err error) {
		ch <- result{names: names, err: err}
	})
	select {
	case res := <-ch:
		return res.names, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// task grabs the next free DNS client and passes it to the specified function.
// After the function returns, the connection is put back into the free list.
func (p *DnsPool) task(task func(conn *dns.Conn)) {
	p.mu.Lock()
	if len(p.free) == 0 {
		p.mu.Unlock()
		panic("no free DNS client connection available")
	}
	last := len(p.free) - 1
	conn := p.free[last]
	p.free = p.free[:last]
	p.mu.Unlock()
	defer func() {
		p.mu.Lock()
		p.free = append(p.free, conn)
		p.mu.Unlock()
	}()
	task(conn)
}

// StopWait waits for all enqueued lookups or generic DNS request tasks to
// finish, and then shuts down the pool.
func (p *DnsPool) StopWait() {
	p.workers.StopWait()
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, conn := range p.free {
		conn.Close()
	}
	p.free = nil
}
