package client

import "github.com/voxelgate/client/pkg/wire"

// Module is a pluggable game-state component.
type Module interface {
	// Name returns a unique key for this module (e.g. "inventory", "input").
	Name() string
	// Init is called once when the module is registered on a client.
	// Store the *Client reference for later use.
	Init(c *Client)
	// HandlePush is called for every incoming server push event.
	HandlePush(p *wire.Push)
	// Reset is called on reconnect to clear module state.
	Reset()
}

// ConnectHandler is optionally implemented by modules that need to act
// right after the connection is established, before the push loop starts.
type ConnectHandler interface {
	OnConnect()
}

// CommandHandler is optionally implemented by modules that accept text
// commands from the interactive console. Handled reports whether the module
// claimed the command.
type CommandHandler interface {
	HandleCommand(cmd string) (handled bool, err error)
}

// Handler is a lightweight push callback for one-off matching.
type Handler func(c *Client, p *wire.Push)
