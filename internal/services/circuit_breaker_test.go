package services

import (
	"testing"
	"time"

	"transactions-dashboard/internal/config"

	"github.com/stretchr/testify/suite"
)

type CircuitBreakerTestSuite struct {
	suite.Suite
	clock   time.Time
	breaker *CircuitBreaker
}

func TestCircuitBreakerSuite(t *testing.T) {
	suite.Run(t, new(CircuitBreakerTestSuite))
}

func (s *CircuitBreakerTestSuite) SetupTest() {
	s.clock = time.Date(2022, 2, 28, 12, 0, 0, 0, time.UTC)
	s.breaker = newCircuitBreaker(config.CircuitBreakerConfig{
		MaxFailures:     2,
		ResetTimeout:    time.Minute,
		HalfOpenMaxSucc: 2,
	}, func() time.Time { return s.clock })
}

func (s *CircuitBreakerTestSuite) trip() {
	s.breaker.RecordFailure()
	s.breaker.RecordFailure()
}

func (s *CircuitBreakerTestSuite) TestStartsClosed() {
	s.Equal(StateClosed, s.breaker.GetState())
	s.False(s.breaker.IsOpen())
	s.Equal("closed", s.breaker.GetState().String())
}

func (s *CircuitBreakerTestSuite) TestOpensAfterMaxFailures() {
	s.breaker.RecordFailure()
	s.False(s.breaker.IsOpen())
	s.Equal(1, s.breaker.GetFailureCount())

	s.breaker.RecordFailure()
	s.True(s.breaker.IsOpen())
	s.Equal(StateOpen, s.breaker.GetState())
}

func (s *CircuitBreakerTestSuite) TestSuccessResetsFailureCount() {
	s.breaker.RecordFailure()
	s.breaker.RecordSuccess()
	s.Equal(0, s.breaker.GetFailureCount())

	s.breaker.RecordFailure()
	s.False(s.breaker.IsOpen())
}

func (s *CircuitBreakerTestSuite) TestHalfOpenAfterResetTimeout() {
	s.trip()
	s.clock = s.clock.Add(59 * time.Second)
	s.True(s.breaker.IsOpen())

	s.clock = s.clock.Add(time.Second)
	s.False(s.breaker.IsOpen())
	s.Equal(StateHalfOpen, s.breaker.GetState())
}

func (s *CircuitBreakerTestSuite) TestHalfOpenClosesAfterSuccesses() {
	s.trip()
	s.clock = s.clock.Add(time.Minute)
	s.Require().False(s.breaker.IsOpen())

	s.breaker.RecordSuccess()
	s.Equal(StateHalfOpen, s.breaker.GetState())
	s.breaker.RecordSuccess()
	s.Equal(StateClosed, s.breaker.GetState())
	s.Equal(0, s.breaker.GetFailureCount())
}

func (s *CircuitBreakerTestSuite) TestHalfOpenFailureReopens() {
	s.trip()
	s.clock = s.clock.Add(time.Minute)
	s.Require().False(s.breaker.IsOpen())

	s.breaker.RecordFailure()
	s.True(s.breaker.IsOpen())
}

func (s *CircuitBreakerTestSuite) TestZeroConfigUsesDefaults() {
	cb := NewCircuitBreaker(config.CircuitBreakerConfig{}).(*CircuitBreaker)
	s.Equal(DefaultCircuitBreakerConfig(), cb.config)
}
