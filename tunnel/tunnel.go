// Copyright 2026 Helix Data Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package tunnel checks that the database tunnel is accepting connections
// before a sync run touches Postgres. The database sits behind an SSH
// tunnel managed outside this process; all the pipeline can do is probe
// the local endpoint and fail fast with a clear error when it is down.
package tunnel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/helixdata/desksync/config"
)

// ErrTunnelDown indicates the tunnel endpoint refused every probe.
var ErrTunnelDown = errors.New("database tunnel is not reachable")

// Checker probes a TCP endpoint a fixed number of times.
type Checker struct {
	cfg    config.TunnelConfig
	dial   func(ctx context.Context, addr string, timeout time.Duration) error
	logger *slog.Logger
}

// NewChecker creates a checker for the configured tunnel endpoint.
func NewChecker(cfg config.TunnelConfig) *Checker {
	return &Checker{
		cfg:    cfg,
		dial:   dialTCP,
		logger: slog.Default().With("component", "tunnel"),
	}
}

func dialTCP(ctx context.Context, addr string, timeout time.Duration) error {
	d := net.Dialer{Timeout: timeout}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	return conn.Close()
}

// Wait probes the endpoint until a connection succeeds or the attempt
// budget runs out, sleeping the configured delay between probes. A checker
// with no address configured is a no-op.
func (c *Checker) Wait(ctx context.Context) error {
	if c.cfg.Addr == "" {
		return nil
	}

	var lastErr error
	for attempt := 1; attempt <= c.cfg.Attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = c.dial(ctx, c.cfg.Addr, c.cfg.Timeout)
		if lastErr == nil {
			c.logger.Info("tunnel is up", "addr", c.cfg.Addr, "attempt", attempt)
			return nil
		}

		c.logger.Warn("tunnel probe failed", "addr", c.cfg.Addr, "attempt", attempt, "err", lastErr)
		if attempt < c.cfg.Attempts {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.cfg.Delay):
			}
		}
	}

	return fmt.Errorf("%w: %s after %d attempts: %v", ErrTunnelDown, c.cfg.Addr, c.cfg.Attempts, lastErr)
}
