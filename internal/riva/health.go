// Package riva provides availability probing for NVIDIA Riva speech
// services via the standard gRPC health-checking protocol.
package riva

import (
	"context"
	"fmt"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/keepalive"
)

// HealthProbe checks whether a Riva endpoint is serving. The connection is
// dialed lazily and kept alive across checks.
type HealthProbe struct {
	target string

	mu   sync.Mutex
	conn *grpc.ClientConn
}

// NewHealthProbe creates a probe for the given host:port target.
func NewHealthProbe(target string) *HealthProbe {
	return &HealthProbe{target: target}
}

func (p *HealthProbe) client() (healthpb.HealthClient, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn == nil {
		conn, err := grpc.NewClient(p.target,
			grpc.WithTransportCredentials(insecure.NewCredentials()),
			grpc.WithKeepaliveParams(keepalive.ClientParameters{
				Time:                10 * time.Second,
				Timeout:             3 * time.Second,
				PermitWithoutStream: true,
			}),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to dial %s: %w", p.target, err)
		}
		p.conn = conn
	}
	return healthpb.NewHealthClient(p.conn), nil
}

// Available reports whether the endpoint answers the health check as
// serving. Any dial or RPC failure reads as unavailable.
func (p *HealthProbe) Available(ctx context.Context) bool {
	client, err := p.client()
	if err != nil {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{})
	if err != nil {
		return false
	}
	return resp.Status == healthpb.HealthCheckResponse_SERVING
}

// Close releases the underlying connection.
func (p *HealthProbe) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn == nil {
		return nil
	}
	err := p.conn.Close()
	p.conn = nil
	return err
}
