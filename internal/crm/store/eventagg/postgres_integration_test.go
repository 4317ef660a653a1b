//go:build integration

package eventagg_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"clienthub/internal/crm/store/eventagg"
	"clienthub/pkg/testutil/containers"
)

type PostgresEventAggSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *eventagg.PostgresStore
}

func TestPostgresEventAggSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresEventAggSuite))
}

func (s *PostgresEventAggSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.store = eventagg.NewPostgres(s.postgres.DB)
}

func (s *PostgresEventAggSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "events"))
}

func (s *PostgresEventAggSuite) TestFirstIncrementCreatesAggregate() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	s.Require().NoError(s.store.IncrementRegistrationCount(ctx, "evt-gala", now))

	agg, err := s.store.Get(ctx, "evt-gala")
	s.Require().NoError(err)
	s.Equal(int64(1), agg.RegistrationCount)
	s.Equal(now, agg.LastRegistrationAt.UTC())
}

func (s *PostgresEventAggSuite) TestGetMissReturnsNotFound() {
	_, err := s.store.Get(context.Background(), "evt-ghost")
	s.ErrorIs(err, eventagg.ErrNotFound)
}

// TestConcurrentIncrementsCountExactly is the load-bearing property: N
// concurrent registrations must produce a count of exactly N, no lost updates.
func (s *PostgresEventAggSuite) TestConcurrentIncrementsCountExactly() {
	ctx := context.Background()
	const goroutines = 50

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.NoError(s.store.IncrementRegistrationCount(ctx, "evt-popular", time.Now().UTC()))
		}()
	}
	wg.Wait()

	agg, err := s.store.Get(ctx, "evt-popular")
	s.Require().NoError(err)
	s.Equal(int64(goroutines), agg.RegistrationCount)
}
