package retry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coinbase/cb-rsa-go/pkg/cbrsa/retry"
)

func counter() func() (int, error) {
	n := 0
	return func() (int, error) {
		n++
		return n, nil
	}
}

func TestUntilReturnsFirstAccepted(t *testing.T) {
	v, attempts, err := retry.Until(context.Background(), retry.Unbounded, counter(), func(n int) bool { return n%7 == 0 })
	require.NoError(t, err)
	assert.Equal(t, 7, v)
	assert.Equal(t, 7, attempts)
}

func TestUntilUnboundedKeepsGoing(t *testing.T) {
	v, attempts, err := retry.Until(context.Background(), retry.Unbounded, counter(), func(n int) bool { return n == 10000 })
	require.NoError(t, err)
	assert.Equal(t, 10000, v)
	assert.Equal(t, 10000, attempts)
}

func TestUntilBoundedExhausts(t *testing.T) {
	_, attempts, err := retry.Until(context.Background(), retry.Bounded(5), counter(), func(int) bool { return false })
	assert.ErrorIs(t, err, retry.ErrExhausted)
	assert.Equal(t, 5, attempts)
}

func TestUntilBoundedAcceptsOnLastAttempt(t *testing.T) {
	v, attempts, err := retry.Until(context.Background(), retry.Bounded(3), counter(), func(n int) bool { return n == 3 })
	require.NoError(t, err)
	assert.Equal(t, 3, v)
	assert.Equal(t, 3, attempts)
}

func TestUntilPropagatesDrawError(t *testing.T) {
	sentinel := errors.New("entropy gone")
	calls := 0
	draw := func() (int, error) {
		calls++
		if calls == 2 {
			return 0, sentinel
		}
		return calls, nil
	}

	_, attempts, err := retry.Until(context.Background(), retry.Unbounded, draw, func(int) bool { return false })
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, 2, attempts)
}

func TestUntilStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	draw := func() (int, error) {
		calls++
		if calls == 3 {
			cancel()
		}
		return calls, nil
	}

	_, attempts, err := retry.Until(ctx, retry.Unbounded, draw, func(int) bool { return false })
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 3, attempts)
}

func TestPolicy(t *testing.T) {
	assert.False(t, retry.Unbounded.IsBounded())
	assert.False(t, retry.Policy{MaxAttempts: -1}.IsBounded())
	assert.True(t, retry.Bounded(1).IsBounded())
}
