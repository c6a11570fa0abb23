package client

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/voxelgate/client/pkg/wire"
)

// Client owns the connection to the authoritative server and dispatches push
// events to registered modules. Register modules before calling Run.
type Client struct {
	// connection
	Address string
	Dial    Dialer

	// reconnection; -1 retries indefinitely, 0 disables reconnecting
	MaxReconnectAttempts int
	shouldReconnect      bool

	Logger        *log.Logger
	OutgoingQueue chan wire.Message

	// modules
	modules       []Module
	modulesByName map[string]Module
	handlers      []Handler

	conn Conn
}

// New creates a minimal client. Register modules before calling Run.
func New(address string, dial Dialer) *Client {
	return &Client{
		Address:              address,
		Dial:                 dial,
		MaxReconnectAttempts: 5,
		OutgoingQueue:        make(chan wire.Message, 100),
		Logger:               log.New(os.Stdout, "", log.LstdFlags),
		modulesByName:        make(map[string]Module),
	}
}

// Register adds a module to the client. Panics on duplicate name.
func (c *Client) Register(m Module) {
	if _, exists := c.modulesByName[m.Name()]; exists {
		panic("module already registered: " + m.Name())
	}
	c.modules = append(c.modules, m)
	c.modulesByName[m.Name()] = m
	m.Init(c)
}

// Module returns a registered module by name, or nil.
func (c *Client) Module(name string) Module {
	return c.modulesByName[name]
}

// RegisterHandler appends a lightweight push callback (escape hatch).
func (c *Client) RegisterHandler(h Handler) {
	c.handlers = append(c.handlers, h)
}

// Send queues a request for outgoing transmission.
func (c *Client) Send(msg wire.Message) {
	c.OutgoingQueue <- msg
}

// WriteMessage sends a request directly, bypassing the queue.
func (c *Client) WriteMessage(msg wire.Message) error {
	if c.conn == nil {
		return errors.New("not connected")
	}
	return c.conn.WriteMessage(msg)
}

// SendCommand offers a console command to registered modules in registration
// order until one claims it.
func (c *Client) SendCommand(cmd string) error {
	for _, m := range c.modules {
		if ch, ok := m.(CommandHandler); ok {
			handled, err := ch.HandleCommand(cmd)
			if handled || err != nil {
				return err
			}
		}
	}
	return fmt.Errorf("unknown command: %q", cmd)
}

// GetAddress returns the server address (satisfies tui.ClientInterface).
func (c *Client) GetAddress() string { return c.Address }

// UseConn installs a connection without entering the dispatch loop. Meant
// for tests and for hosts that drive DispatchPush themselves.
func (c *Client) UseConn(conn Conn) { c.conn = conn }

// Disconnect closes the connection. If force is true, no reconnect is
// attempted.
func (c *Client) Disconnect(force bool) error {
	c.shouldReconnect = !force
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// Run connects and enters the push dispatch loop, reconnecting per
// MaxReconnectAttempts. It returns when the context is done, reconnection
// is exhausted, or Disconnect(true) is called.
func (c *Client) Run(ctx context.Context) error {
	attempts := 0
	maxAttempts := c.MaxReconnectAttempts

	for {
		// Disconnect(true) flips this off mid-session to stop the loop
		c.shouldReconnect = true
		err := c.runOnce(ctx)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		c.Logger.Printf("connection error: %v", err)

		if !c.shouldReconnect || maxAttempts == 0 {
			return err
		}

		attempts++
		if maxAttempts > 0 && attempts > maxAttempts {
			c.Logger.Printf("max reconnect attempts (%d) reached, giving up", maxAttempts)
			return err
		}
		c.Logger.Printf("reconnecting in 3 seconds... (attempt %d)", attempts)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(3 * time.Second):
		}
	}
}

func (c *Client) runOnce(ctx context.Context) error {
	// reset all modules
	for _, m := range c.modules {
		m.Reset()
	}

	conn, err := c.Dial(ctx)
	if err != nil {
		return fmt.Errorf("dial %s: %w", c.Address, err)
	}
	c.conn = conn
	defer func() {
		conn.Close()
		c.conn = nil
	}()

	// notify modules of connection
	for _, m := range c.modules {
		if ch, ok := m.(ConnectHandler); ok {
			ch.OnConnect()
		}
	}

	// outgoing queue worker, stopped when this connection ends
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		for {
			select {
			case <-stop:
				return
			case <-ctx.Done():
				return
			case msg := <-c.OutgoingQueue:
				if err := conn.WriteMessage(msg); err != nil {
					c.Logger.Println("error writing request from queue:", err)
				}
			}
		}
	}()

	// push loop
	for {
		push, err := conn.ReadPush()
		if err != nil {
			return fmt.Errorf("read push: %w", err)
		}
		c.DispatchPush(push)
	}
}

// DispatchPush offers a push to every module, then every handler,
// synchronously in registration order. Exported for tests and for transports
// that deliver pushes out of band.
func (c *Client) DispatchPush(push *wire.Push) {
	for _, m := range c.modules {
		m.HandlePush(push)
	}
	for _, h := range c.handlers {
		h(c, push)
	}
}
