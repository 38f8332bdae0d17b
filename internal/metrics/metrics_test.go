package metrics

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerExposesMetrics(t *testing.T) {
	server := NewServer("127.0.0.1:0")
	require.NoError(t, server.Start())
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Stop(ctx)
	}()

	server.Metrics().Observe(OutcomeOK, 2*time.Millisecond)
	server.Metrics().Observe(OutcomeSyntaxError, time.Millisecond)

	resp, err := http.Get("http://" + server.Addr() + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	text := string(body)

	assert.Contains(t, text, "solast_parse_attempts_total")
	assert.Contains(t, text, "solast_parse_duration_seconds")
	assert.Contains(t, text, `outcome="ok"`)
	assert.Contains(t, text, `outcome="syntax_error"`)
	assert.True(t, strings.Contains(text, "go_goroutines"))
}

func TestStartTwiceFails(t *testing.T) {
	server := NewServer("127.0.0.1:0")
	require.NoError(t, server.Start())
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Stop(ctx)
	}()

	assert.Error(t, server.Start())
}
