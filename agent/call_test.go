package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// TestMain ensures no call context outlives its request.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"),
	)
}

func TestCall_ReturnsResult(t *testing.T) {
	c := startCall(context.Background(), "test", func(ctx context.Context) (Result, error) {
		return Text("ok"), nil
	})
	res, err := c.wait()
	c.close()

	require.NoError(t, err)
	assert.Equal(t, Text("ok"), res)
}

func TestCall_RecoversPanic(t *testing.T) {
	c := startCall(context.Background(), "test", func(ctx context.Context) (Result, error) {
		panic("boom")
	})
	defer c.close()
	_, err := c.wait()

	var rerr *RuntimeError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, "test", rerr.Runtime)
	assert.EqualError(t, rerr.Err, "panic: boom")
	assert.Contains(t, rerr.Trace, "goroutine")
}

func TestCall_CloseCancelsContext(t *testing.T) {
	var seen context.Context
	c := startCall(context.Background(), "test", func(ctx context.Context) (Result, error) {
		seen = ctx
		return nil, nil
	})
	_, _ = c.wait()
	require.NoError(t, seen.Err())
	c.close()
	assert.ErrorIs(t, seen.Err(), context.Canceled)
}

func TestCall_ParentCancellation(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	started := make(chan struct{})
	c := startCall(parent, "test", func(ctx context.Context) (Result, error) {
		close(started)
		<-ctx.Done()
		return nil, ctx.Err()
	})
	defer c.close()

	<-started
	cancel()
	_, err := c.wait()
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCall_Independent(t *testing.T) {
	var first, second context.Context
	a := startCall(context.Background(), "a", func(ctx context.Context) (Result, error) {
		first = ctx
		return Text("a"), nil
	})
	b := startCall(context.Background(), "b", func(ctx context.Context) (Result, error) {
		second = ctx
		return Text("b"), nil
	})
	ra, _ := a.wait()
	rb, _ := b.wait()
	a.close()

	assert.Equal(t, Text("a"), ra)
	assert.Equal(t, Text("b"), rb)
	assert.Error(t, first.Err())
	assert.NoError(t, second.Err())
	b.close()
}
