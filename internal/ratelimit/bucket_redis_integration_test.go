//go:build integration

package ratelimit_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"clienthub/internal/ratelimit"
	"clienthub/pkg/testutil/containers"
)

type RedisBucketStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *ratelimit.RedisBucketStore
}

func TestRedisBucketStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisBucketStoreSuite))
}

func (s *RedisBucketStoreSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.redis = mgr.GetRedis(s.T())
	s.store = ratelimit.NewRedisBucketStore(s.redis.Client)
}

func (s *RedisBucketStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisBucketStoreSuite) TestAllowUnderLimit() {
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		result, err := s.store.Allow(ctx, "ip:1.2.3.4", 3, time.Minute)
		s.Require().NoError(err)
		s.True(result.Allowed)
		s.Equal(2-i, result.Remaining)
	}

	result, err := s.store.Allow(ctx, "ip:1.2.3.4", 3, time.Minute)
	s.Require().NoError(err)
	s.False(result.Allowed)
	s.Equal(0, result.Remaining)
}

func (s *RedisBucketStoreSuite) TestKeysAreIndependent() {
	ctx := context.Background()

	result, err := s.store.Allow(ctx, "ip:1.2.3.4", 1, time.Minute)
	s.Require().NoError(err)
	s.True(result.Allowed)

	result, err = s.store.Allow(ctx, "ip:5.6.7.8", 1, time.Minute)
	s.Require().NoError(err)
	s.True(result.Allowed)
}

func (s *RedisBucketStoreSuite) TestWindowExpires() {
	ctx := context.Background()

	result, err := s.store.Allow(ctx, "ip:1.2.3.4", 1, time.Second)
	s.Require().NoError(err)
	s.True(result.Allowed)

	result, err = s.store.Allow(ctx, "ip:1.2.3.4", 1, time.Second)
	s.Require().NoError(err)
	s.False(result.Allowed)

	time.Sleep(1100 * time.Millisecond)

	result, err = s.store.Allow(ctx, "ip:1.2.3.4", 1, time.Second)
	s.Require().NoError(err)
	s.True(result.Allowed)
}
