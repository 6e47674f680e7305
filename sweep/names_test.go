// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package sweep

import (
	"context"
	"net"
	"time"

	"github.com/siemens/ipchk/dnsworker"
	"github.com/siemens/ipchk/targets"
	"github.com/siemens/ipchk/types"

	"github.com/miekg/dns"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	. "github.com/thediveo/success"
)

var _ = Describe("naming reachable targets", func() {

	It("looks up PTR names only of reachable targets", NodeTimeout(10*time.Second), func(ctx context.Context) {
		queries := make(chan string, 10)
		pc := Successful(net.ListenPacket("udp", "127.0.0.1:0"))
		mux := dns.NewServeMux()
		mux.HandleFunc("in-addr.arpa.", func(w dns.ResponseWriter, r *dns.Msg) {
			q := r.Question[0]
			queries <- q.Name
			m := new(dns.Msg)
			m.SetReply(r)
			m.Answer = append(m.Answer, &dns.PTR{
				Hdr: dns.RR_Header{Name: q.Name, Rrtype: dns.TypePTR, Class: dns.ClassINET, Ttl: 60},
				Ptr: "host-" + q.Name[:2] + "example.org.",
			})
			_ = w.WriteMsg(m)
		})
		started := make(chan struct{})
		srv := &dns.Server{PacketConn: pc, Handler: mux, NotifyStartedFunc: func() { close(started) }}
		go func() { _ = srv.ActivateAndServe() }()
		defer func() { _ = srv.Shutdown() }()
		Eventually(started).Should(BeClosed())

		dnsclnt := dns.Client{}
		pool := Successful(dnsworker.New(ctx, 2, &dnsclnt, pc.LocalAddr().String()))
		defer pool.StopWait()

		s := New(upProber("10.0.0.2"), WithNames(pool))
		outcomes := Successful(s.Sweep(ctx, targets.List([]string{"10.0.0.1", "10.0.0.2", "::1"})))
		Expect(outcomes).To(HaveExactElements(
			HaveField("Names", BeEmpty()),
			HaveField("Names", BeEmpty()),
			And(HaveField("Status", types.Up), HaveField("Names", ConsistOf("host-2.example.org."))),
		))
		Expect(queries).To(HaveLen(1))
	})

	It("keeps reachable targets up when looking up their names panics", NodeTimeout(10*time.Second), func(ctx context.Context) {
		pc := Successful(net.ListenPacket("udp", "127.0.0.1:0"))
		defer pc.Close()
		dnsclnt := dns.Client{}
		pool := Successful(dnsworker.New(ctx, 1, &dnsclnt, pc.LocalAddr().String()))
		pool.StopWait() // ...submitting lookups to a stopped pool panics.

		s := New(upProber("10.0.0.2"), WithNames(pool))
		outcomes := Successful(s.Sweep(ctx, targets.List([]string{"10.0.0.1", "10.0.0.2"})))
		Expect(outcomes).To(HaveExactElements(
			And(HaveField("Status", types.Down), HaveField("Names", BeEmpty())),
			And(HaveField("Status", types.Up), HaveField("Names", BeEmpty())),
		))
		Expect(outcomes[1].Err()).NotTo(HaveOccurred())
	})

})
