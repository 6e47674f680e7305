// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package mobynet

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	. "github.com/onsi/gomega/gleak"
	. "github.com/thediveo/success"
)

type fakeMoby map[string]types.ContainerJSON

func (m fakeMoby) ContainerInspect(_ context.Context, name string) (types.ContainerJSON, error) {
	details, ok := m[name]
	if !ok {
		return types.ContainerJSON{}, errors.New("no such container")
	}
	return details, nil
}

func cntr(name string, pid int, netmode string) types.ContainerJSON {
	return types.ContainerJSON{
		ContainerJSONBase: &types.ContainerJSONBase{
			Name:       "/" + name,
			State:      &types.ContainerState{Pid: pid},
			HostConfig: &container.HostConfig{NetworkMode: container.NetworkMode(netmode)},
		},
	}
}

var _ = Describe("container network namespaces", func() {

	moby := fakeMoby{
		"foo":    cntr("foo", 42, "bridge"),
		"bar":    cntr("bar", 0, "bridge"),
		"hostie": cntr("hostie", 666, "host"),
	}

	It("returns the netns path of a running container", func(ctx context.Context) {
		Expect(ContainerNetns(ctx, moby, "foo")).To(Equal("/proc/42/ns/net"))
	})

	It("returns no netns for host network containers", func(ctx context.Context) {
		Expect(ContainerNetns(ctx, moby, "hostie")).To(BeEmpty())
	})

	It("rejects stopped containers", func(ctx context.Context) {
		Expect(ContainerNetns(ctx, moby, "bar")).Error().To(MatchError(ContainSubstring(`container "bar" is not running`)))
	})

	It("reports unknown containers", func(ctx context.Context) {
		Expect(ContainerNetns(ctx, moby, "fool")).Error().To(MatchError(ContainSubstring("no such container")))
	})

	When("talking to the Docker daemon", func() {

		BeforeEach(func() {
			if os.Getuid() != 0 {
				Skip("needs root")
			}
			goodgos := Goroutines()
			DeferCleanup(func() {
				Eventually(Goroutines).WithTimeout(3 * time.Second).WithPolling(250 * time.Millisecond).
					ShouldNot(HaveLeaked(IgnoringTopFunction("net/http.(*persistConn).writeLoop"),
						IgnoringTopFunction("net/http.(*persistConn).readLoop"), goodgos))
			})
		})

		It("reports non-existing containers", NodeTimeout(30*time.Second), func(ctx context.Context) {
			cln := Successful(client.NewClientWithOpts(
				client.WithHost("unix:///var/run/docker.sock"),
				client.WithAPIVersionNegotiation(),
			))
			defer cln.Close()
			if _, err := cln.Ping(ctx); err != nil {
				Skip("needs a Docker daemon")
			}
			Expect(ContainerNetns(ctx, cln, "ipchk-nonexisting-container")).Error().To(HaveOccurred())
		})

	})

})
