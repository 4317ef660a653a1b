//go:build integration

package registration_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"clienthub/internal/crm/models"
	"clienthub/internal/crm/store/registration"
	id "clienthub/pkg/domain"
	"clienthub/pkg/testutil/containers"
)

type PostgresRegistrationStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *registration.PostgresStore
}

func TestPostgresRegistrationStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresRegistrationStoreSuite))
}

func (s *PostgresRegistrationStoreSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.store = registration.NewPostgres(s.postgres.DB)
}

func (s *PostgresRegistrationStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "registrations"))
}

func (s *PostgresRegistrationStoreSuite) newRegistration(eventID id.EventID, email string, createdAt time.Time) *models.Registration {
	r, err := models.NewRegistration(
		id.RegistrationID(uuid.New()),
		eventID,
		"Spring Gala",
		"Dana Ionescu",
		"+40721555333",
		email,
		"",
		"Chrome on macOS",
		createdAt,
	)
	s.Require().NoError(err)
	return r
}

func (s *PostgresRegistrationStoreSuite) TestCreateAndFindByID() {
	ctx := context.Background()
	r := s.newRegistration("evt-gala", "dana@example.com", time.Now().UTC().Truncate(time.Microsecond))
	s.Require().NoError(s.store.Create(ctx, r))

	got, err := s.store.FindByID(ctx, r.ID)
	s.Require().NoError(err)
	s.Equal(r.EventID, got.EventID)
	s.Equal(id.RegistrationStatusPending, got.Status)
	s.Equal("Chrome on macOS", got.SubmittedVia)
}

func (s *PostgresRegistrationStoreSuite) TestFindMissReturnsNotFound() {
	_, err := s.store.FindByID(context.Background(), id.RegistrationID(uuid.New()))
	s.ErrorIs(err, registration.ErrNotFound)
}

func (s *PostgresRegistrationStoreSuite) TestListFiltersAndOrders() {
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Microsecond)

	s.Require().NoError(s.store.Create(ctx, s.newRegistration("evt-gala", "dana@example.com", base.Add(-2*time.Hour))))
	s.Require().NoError(s.store.Create(ctx, s.newRegistration("evt-gala", "radu@example.com", base.Add(-time.Hour))))
	s.Require().NoError(s.store.Create(ctx, s.newRegistration("evt-fair", "dana@example.com", base)))

	all, err := s.store.List(ctx, registration.Filter{})
	s.Require().NoError(err)
	s.Require().Len(all, 3)
	s.Equal(id.EventID("evt-fair"), all[0].EventID, "newest first")

	byEvent, err := s.store.List(ctx, registration.Filter{EventID: "evt-gala"})
	s.Require().NoError(err)
	s.Len(byEvent, 2)

	byBoth, err := s.store.List(ctx, registration.Filter{EventID: "evt-gala", Email: "dana@example.com"})
	s.Require().NoError(err)
	s.Len(byBoth, 1)

	byPhone, err := s.store.List(ctx, registration.Filter{Phone: "+40721555333"})
	s.Require().NoError(err)
	s.Len(byPhone, 3)
}
