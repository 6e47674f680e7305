/*
Package dnsworker implements a simple limiting DNS client-request execution
pool. ipchk uses [DnsPool] with a pool of “DNS workers” for looking up the PTR
names of reachable hosts.

Usage

	dnsclnt := dns.Client{}
	workers, err := dnsworker.New(
	    context.Background(),
	    4,                    // number of parallel DNS connections and thus workers
	    &dnsclnt,             // DNS client
	    "127.0.0.53:53",      // address of server/resolver
	)
	names, err := workers.LookupAddr(ctx, "127.0.0.1")
	workers.Submit(func(conn *dns.Conn){
	    // do something with the DNS connection
	})
	workers.StopWait()

# Acknowledgements

Under its hood, [DnsPool] leverages [gammazero/workerpool] as
the limiting goroutine pool.

[gammazero/workerpool]: https://github.com/gammazero/workerpool
*/
package dnsworker
