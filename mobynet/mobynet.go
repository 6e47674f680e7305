// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package mobynet

import (
	"context"
	"fmt"
	"strings"

	"github.com/docker/docker/api/types"
)

// ContainerInspector inspects Docker containers; it is satisfied by
// [github.com/docker/docker/client.Client].
type ContainerInspector interface {
	ContainerInspect(ctx context.Context, container string) (types.ContainerJSON, error)
}

// ContainerNetns returns the filesystem path referencing the network namespace
// of the container identified by its name or ID, so that probes can be run
// from the perspective of this container.
func ContainerNetns(ctx context.Context, moby ContainerInspector, nameOrID string) (string, error) {
	details, err := moby.ContainerInspect(ctx, nameOrID)
	if err != nil {
		return "", fmt.Errorf("cannot inspect container %q: %w", nameOrID, err)
	}
	name := strings.TrimPrefix(details.Name, "/") // argh, Docker's "/name" legacy!
	if details.State == nil || details.State.Pid == 0 {
		return "", fmt.Errorf("container %q is not running", name)
	}
	if details.HostConfig != nil && details.HostConfig.NetworkMode.IsHost() {
		// nothing to switch into; the container shares our network namespace.
		return "", nil
	}
	return fmt.Sprintf("/proc/%d/ns/net", details.State.Pid), nil
}
