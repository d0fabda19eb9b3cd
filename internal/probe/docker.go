package probe

import (
	"context"
	"errors"
	"fmt"

	"github.com/containerd/errdefs"
	"github.com/docker/docker/client"
)

// Compile-time interface guard.
var _ Prober = (*DockerProber)(nil)

// DockerProber inspects containers through the Docker Engine API.
type DockerProber struct {
	cli *client.Client
}

// NewDockerProber creates a prober with a Docker client from the
// environment (DOCKER_HOST et al.) and API version negotiation.
func NewDockerProber() (*DockerProber, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("create docker client: %w", err)
	}
	return &DockerProber{cli: cli}, nil
}

// NewDockerProberFromClient wraps an existing Docker client.
func NewDockerProberFromClient(cli *client.Client) *DockerProber {
	return &DockerProber{cli: cli}
}

// Probe returns the container's health status when it defines a
// healthcheck, otherwise its run state ("running", "exited", ...).
// A missing container maps to ErrNotFound and an expired context to
// ErrTimeout so the normalizer can classify them.
func (p *DockerProber) Probe(ctx context.Context, name string) (string, error) {
	info, err := p.cli.ContainerInspect(ctx, name)
	if err != nil {
		switch {
		case errdefs.IsNotFound(err):
			return "", fmt.Errorf("%w: %s", ErrNotFound, name)
		case errors.Is(err, context.DeadlineExceeded):
			return "", fmt.Errorf("%w: inspect %s: %v", ErrTimeout, name, err)
		}
		return "", fmt.Errorf("inspect container %q: %w", name, err)
	}
	if info.State == nil {
		return "", fmt.Errorf("inspect container %q: no state in response", name)
	}
	if info.State.Health != nil {
		return info.State.Health.Status, nil
	}
	return info.State.Status, nil
}

// Close releases the underlying Docker client.
func (p *DockerProber) Close() error {
	return p.cli.Close()
}
