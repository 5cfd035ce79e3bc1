package circuitbreaker_test

import (
	"errors"
	"testing"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/require"
	"github.com/tdex-network/tdex-faucet/pkg/circuitbreaker"
)

func TestCircuitBreaker(t *testing.T) {
	cb := circuitbreaker.NewCircuitBreaker("test")
	require.Equal(t, "test", cb.Name())

	failure := errors.New("failure")
	for i := 0; i <= circuitbreaker.MaxNumOfFailingRequests; i++ {
		require.Equal(t, gobreaker.StateClosed, cb.State())
		_, err := cb.Execute(func() (interface{}, error) {
			return nil, failure
		})
		require.ErrorIs(t, err, failure)
	}

	require.Equal(t, gobreaker.StateOpen, cb.State())
	_, err := cb.Execute(func() (interface{}, error) {
		return nil, nil
	})
	require.ErrorIs(t, err, gobreaker.ErrOpenState)
}

func TestCircuitBreakerStaysClosedBelowRatio(t *testing.T) {
	cb := circuitbreaker.NewCircuitBreaker("test")

	for i := 0; i < 3*circuitbreaker.MaxNumOfFailingRequests; i++ {
		_, _ = cb.Execute(func() (interface{}, error) {
			if i%2 == 0 {
				return nil, errors.New("failure")
			}
			return nil, nil
		})
	}
	require.Equal(t, gobreaker.StateClosed, cb.State())
}
