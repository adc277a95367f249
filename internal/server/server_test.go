package server

import (
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daybook-app/daybook-client/internal/logger"
)

func TestNewServer_EmptyAddress(t *testing.T) {
	_, err := NewServer(http.NewServeMux(), "", logger.Nop())
	require.ErrorIs(t, err, errEmptyAddress)
}

func TestServer_ServesAndShutsDown(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	address := freeAddress(t)
	srv, err := NewServer(mux, address, logger.Nop())
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		srv.RunServer()
		close(done)
	}()

	url := fmt.Sprintf("http://%s/healthz", address)
	require.Eventually(t, func() bool {
		resp, getErr := http.Get(url)
		if getErr != nil {
			return false
		}
		defer func() { _ = resp.Body.Close() }()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	srv.Shutdown()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after Shutdown")
	}

	_, err = http.Get(url)
	assert.Error(t, err)
}

// freeAddress reserves an ephemeral port and releases it for the server to
// bind. The port can be taken by another process in between, which would
// fail the test rather than hang it.
func freeAddress(t *testing.T) string {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	address := l.Addr().String()
	require.NoError(t, l.Close())

	return address
}
