package client

import (
	"context"

	"github.com/voxelgate/client/pkg/wire"
)

// Conn is the reliable ordered channel to the authoritative server.
// Requests are fire-and-forget; responses arrive later as push events on
// ReadPush. The concrete transport lives outside this package (see
// pkg/transport/ws for the reference adapter).
type Conn interface {
	// WriteMessage sends one request.
	WriteMessage(msg wire.Message) error
	// ReadPush blocks until the next push event or a connection error.
	ReadPush() (*wire.Push, error)
	// Close tears the connection down. ReadPush unblocks with an error.
	Close() error
}

// Dialer opens a fresh Conn. Used by the reconnect loop, which never reuses
// a connection across attempts.
type Dialer func(ctx context.Context) (Conn, error)
