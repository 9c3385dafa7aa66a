package cli

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ideapad/internal/adapters/driving/echo"
)

func TestEchoCmd_HasProbe(t *testing.T) {
	assert.Contains(t, commandNames(echoCmd), "probe")
}

func TestEchoProbe(t *testing.T) {
	srv := httptest.NewServer(echo.NewRelay())
	defer srv.Close()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/"

	out, err := execute(t, "", "echo", "probe", "--url", url, "hello", "relay")

	require.NoError(t, err)
	assert.Contains(t, out, echo.ReplyPrefix+"hello relay")
}

func TestEchoProbe_Unreachable(t *testing.T) {
	srv := httptest.NewServer(echo.NewRelay())
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/"
	srv.Close()

	_, err := execute(t, "", "echo", "probe", "--url", url, "hello")

	assert.Error(t, err)
}
