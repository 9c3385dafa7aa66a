package echo

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRelay(t *testing.T) (*Relay, string) {
	t.Helper()
	relay := NewRelay()
	srv := httptest.NewServer(relay)
	t.Cleanup(srv.Close)
	return relay, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestRelay_GreetsAndEchoes(t *testing.T) {
	_, url := newTestRelay(t)

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, Greeting, string(msg))

	for _, text := range []string{"hi", "second message"} {
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(text)))
		_, reply, err := conn.ReadMessage()
		require.NoError(t, err)
		assert.Equal(t, "Server received: "+text, string(reply))
	}
}

func TestRelay_TracksClients(t *testing.T) {
	relay, url := newTestRelay(t)

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	_, _, err = conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, 1, relay.Clients())

	require.NoError(t, conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
	conn.Close()

	assert.Eventually(t, func() bool { return relay.Clients() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestProbe(t *testing.T) {
	_, url := newTestRelay(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	reply, err := Probe(ctx, url, "ping")
	require.NoError(t, err)
	assert.Equal(t, "Server received: ping", reply)
}

func TestProbe_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := Probe(ctx, "ws://127.0.0.1:1/", "ping")
	assert.Error(t, err)
}
