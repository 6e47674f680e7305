// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package ping_test

import (
	"github.com/siemens/ipchk/ping"

	"context"
	"net/netip"
	"os/exec"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	. "github.com/thediveo/success"
)

var _ = Describe("ping command prober", func() {

	addr := netip.MustParseAddr("10.0.0.1")

	DescribeTable("builds command lines",
		func(goos string, timeout time.Duration, expected []string) {
			c := &ping.Command{GOOS: goos}
			Expect(c.Args(addr, timeout, 3)).To(Equal(expected))
		},
		Entry("Linux whole seconds", "linux", 2500*time.Millisecond,
			[]string{"-n", "-c", "3", "-W", "2", "10.0.0.1"}),
		Entry("Linux minimum wait", "linux", 100*time.Millisecond,
			[]string{"-n", "-c", "3", "-W", "1", "10.0.0.1"}),
		Entry("macOS milliseconds", "darwin", 750*time.Millisecond,
			[]string{"-n", "-c", "3", "-W", "750", "10.0.0.1"}),
		Entry("macOS maximum wait", "darwin", 2*time.Minute,
			[]string{"-n", "-c", "3", "-W", "60000", "10.0.0.1"}),
	)

	It("judges by exit status", func(ctx context.Context) {
		for _, bin := range []string{"true", "false"} {
			if _, err := exec.LookPath(bin); err != nil {
				Skip("needs " + bin)
			}
		}
		Expect(Successful((&ping.Command{Binary: "true"}).Reachable(ctx, addr, time.Second, 1))).To(BeTrue())
		Expect(Successful((&ping.Command{Binary: "false"}).Reachable(ctx, addr, time.Second, 1))).To(BeFalse())
	})

	It("reports failing to run ping", func(ctx context.Context) {
		up, err := (&ping.Command{Binary: "/nonexisting/ping"}).Reachable(ctx, addr, time.Second, 1)
		Expect(err).To(HaveOccurred())
		Expect(up).To(BeFalse())
	})

})
