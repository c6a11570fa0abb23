// Package ws is the reference websocket transport: a thin gorilla/websocket
// adapter behind the client.Conn interface. The engine itself never imports
// this package; hosts pick their transport by handing the client a Dialer.
package ws

import (
	"context"
	"fmt"

	"github.com/gorilla/websocket"

	"github.com/voxelgate/client/pkg/client"
	"github.com/voxelgate/client/pkg/wire"
)

type Conn struct {
	ws *websocket.Conn
}

// Dial opens a websocket connection to url (ws:// or wss://).
func Dial(ctx context.Context, url string) (*Conn, error) {
	ws, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("ws dial %s: %w", url, err)
	}
	return &Conn{ws: ws}, nil
}

// Dialer adapts Dial to the client.Dialer signature for a fixed url.
func Dialer(url string) client.Dialer {
	return func(ctx context.Context) (client.Conn, error) {
		return Dial(ctx, url)
	}
}

func (c *Conn) WriteMessage(msg wire.Message) error {
	env, err := wire.Seal(msg)
	if err != nil {
		return err
	}
	return c.ws.WriteJSON(env)
}

func (c *Conn) ReadPush() (*wire.Push, error) {
	var push wire.Push
	if err := c.ws.ReadJSON(&push); err != nil {
		return nil, err
	}
	return &push, nil
}

func (c *Conn) Close() error {
	// best effort: tell the peer before tearing the socket down
	_ = c.ws.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return c.ws.Close()
}
