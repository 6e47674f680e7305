// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package types

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("targets and outcomes", func() {

	DescribeTable("classifies address families",
		func(addr string, family Family, key uint32) {
			t := ParseTarget(addr, 42)
			Expect(t.Address).To(Equal(addr))
			Expect(t.Index).To(Equal(42))
			Expect(t.Family()).To(Equal(family))
			Expect(t.Key()).To(Equal(key))
		},
		Entry("IPv4", "10.0.0.1", IPv4, uint32(0x0a000001)),
		Entry("IPv4 broadcast", "255.255.255.255", IPv4, uint32(0xffffffff)),
		Entry("IPv6 loopback", "::1", IPv6, uint32(0)),
		Entry("IPv4-mapped IPv6", "::ffff:10.0.0.1", IPv6, uint32(0)),
		Entry("zoned IPv6", "fe80::1%eth0", InvalidFamily, uint32(0)),
		Entry("garbage", "not-an-ip", InvalidFamily, uint32(0)),
		Entry("leading zeros", "010.0.0.1", InvalidFamily, uint32(0)),
		Entry("empty", "", InvalidFamily, uint32(0)),
	)

	It("creates IPv4 targets from numeric values", func() {
		t := TargetFromUint32(0xc0a80101, 7)
		Expect(t.Address).To(Equal("192.168.1.1"))
		Expect(t.Index).To(Equal(7))
		Expect(t.Key()).To(Equal(uint32(0xc0a80101)))
		Expect(t.Family()).To(Equal(IPv4))
	})

	It("keys only probed outcomes by address", func() {
		t := ParseTarget("127.0.0.1", 0)
		Expect(NewOutcome(t, Up, nil).Key()).To(Equal(uint32(0x7f000001)))
		Expect(NewOutcome(t, Down, nil).Key()).To(Equal(uint32(0x7f000001)))
		Expect(NewOutcome(ParseTarget("::1", 0), UnsupportedFamily, nil).Key()).To(BeZero())
		Expect(NewOutcome(ParseTarget("foo", 0), Invalid, nil).Key()).To(BeZero())
	})

	It("returns copies with names", func() {
		names := []string{"localhost."}
		o := NewOutcome(ParseTarget("127.0.0.1", 0), Down, errors.New("D'OH!"))
		on := o.WithNames(names)
		names[0] = "foo."
		Expect(o.Names).To(BeEmpty())
		Expect(on.Names).To(ConsistOf("localhost."))
		Expect(on.Err()).To(MatchError("D'OH!"))
	})

	It("stringifies", func() {
		Expect(Up.String()).To(Equal("up"))
		Expect(Down.String()).To(Equal("down"))
		Expect(Invalid.String()).To(Equal("invalid"))
		Expect(UnsupportedFamily.String()).To(Equal("IPv6 currently unsupported"))
		Expect(Status(666).String()).To(Equal("Status(666)"))
		Expect(IPv6.String()).To(Equal("IPv6"))
		Expect(Family(42).String()).To(Equal("Family(42)"))
	})

})
