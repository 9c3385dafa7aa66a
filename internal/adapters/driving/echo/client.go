package echo

import (
	"context"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
)

// Probe dials url, checks the greeting and round-trips message. It returns
// the relay's reply.
func Probe(ctx context.Context, url, message string) (string, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return "", fmt.Errorf("dialing %s: %w", url, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetReadDeadline(deadline)
	} else {
		_ = conn.SetReadDeadline(time.Now().Add(writeWait))
	}

	_, greeting, err := conn.ReadMessage()
	if err != nil {
		return "", fmt.Errorf("reading greeting: %w", err)
	}
	if string(greeting) != Greeting {
		return "", fmt.Errorf("unexpected greeting %q", greeting)
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte(message)); err != nil {
		return "", fmt.Errorf("sending message: %w", err)
	}
	_, reply, err := conn.ReadMessage()
	if err != nil {
		return "", fmt.Errorf("reading reply: %w", err)
	}

	_ = conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return string(reply), nil
}
