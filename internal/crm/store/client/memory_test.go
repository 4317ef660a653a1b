package client

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"clienthub/internal/crm/models"
	id "clienthub/pkg/domain"
	"clienthub/pkg/platform/sentinel"
)

type ClientStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func (s *ClientStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func TestClientStoreSuite(t *testing.T) {
	suite.Run(t, new(ClientStoreSuite))
}

func (s *ClientStoreSuite) newClient(email, phone string) *models.Client {
	now := time.Now().UTC()
	return &models.Client{
		ID:        id.ClientID(uuid.New()),
		Name:      "Dana Ionescu",
		Email:     email,
		Phone:     phone,
		Sources:   []id.Source{id.SourceNewsletter},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// TestLookups verifies the store correctly indexes and retrieves clients.
func (s *ClientStoreSuite) TestLookups() {
	s.Run("finds by email after creation", func() {
		c := s.newClient("dana@example.com", "")
		s.Require().NoError(s.store.Create(s.ctx, c))

		found, err := s.store.FindByEmail(s.ctx, "dana@example.com")
		s.Require().NoError(err)
		s.Equal(c.ID, found.ID)
	})

	s.Run("finds by phone after creation", func() {
		c := s.newClient("", "+40721555333")
		s.Require().NoError(s.store.Create(s.ctx, c))

		found, err := s.store.FindByPhone(s.ctx, "+40721555333")
		s.Require().NoError(err)
		s.Equal(c.ID, found.ID)
	})

	s.Run("returns ErrNotFound for unknown lookups", func() {
		_, err := s.store.FindByID(s.ctx, id.ClientID(uuid.New()))
		s.Require().ErrorIs(err, sentinel.ErrNotFound)

		_, err = s.store.FindByEmail(s.ctx, "nobody@example.com")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("empty key never matches", func() {
		c := s.newClient("dana@example.com", "")
		s.Require().NoError(s.store.Create(s.ctx, c))

		_, err := s.store.FindByPhone(s.ctx, "")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

// TestWriteSemantics verifies the three write paths behave per contract:
// Create is blind, MergeWrite upserts by id, Overwrite requires existence.
func (s *ClientStoreSuite) TestWriteSemantics() {
	s.Run("create does not enforce email uniqueness", func() {
		a := s.newClient("dup@example.com", "")
		b := s.newClient("dup@example.com", "")
		s.Require().NoError(s.store.Create(s.ctx, a))
		s.Require().NoError(s.store.Create(s.ctx, b))

		all, err := s.store.List(s.ctx)
		s.Require().NoError(err)
		s.Len(all, 2)
	})

	s.Run("merge write updates in place", func() {
		s.SetupTest()
		c := s.newClient("dana@example.com", "")
		s.Require().NoError(s.store.Create(s.ctx, c))

		updated := c.Clone()
		updated.Phone = "+40721555333"
		updated.City = "Cluj"
		s.Require().NoError(s.store.MergeWrite(s.ctx, updated))

		found, err := s.store.FindByID(s.ctx, c.ID)
		s.Require().NoError(err)
		s.Equal("Cluj", found.City)

		all, err := s.store.List(s.ctx)
		s.Require().NoError(err)
		s.Len(all, 1)
	})

	s.Run("merge write reindexes a changed email", func() {
		s.SetupTest()
		c := s.newClient("old@example.com", "")
		s.Require().NoError(s.store.Create(s.ctx, c))

		updated := c.Clone()
		updated.Email = "new@example.com"
		s.Require().NoError(s.store.MergeWrite(s.ctx, updated))

		_, err := s.store.FindByEmail(s.ctx, "old@example.com")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)

		found, err := s.store.FindByEmail(s.ctx, "new@example.com")
		s.Require().NoError(err)
		s.Equal(c.ID, found.ID)
	})

	s.Run("overwrite requires an existing record", func() {
		s.SetupTest()
		ghost := s.newClient("ghost@example.com", "")
		s.Require().ErrorIs(s.store.Overwrite(s.ctx, ghost), sentinel.ErrNotFound)
	})

	s.Run("overwrite persists blank fields verbatim", func() {
		s.SetupTest()
		c := s.newClient("dana@example.com", "+40721555333")
		c.City = "Cluj"
		s.Require().NoError(s.store.Create(s.ctx, c))

		edited := c.Clone()
		edited.Phone = ""
		edited.City = ""
		s.Require().NoError(s.store.Overwrite(s.ctx, edited))

		found, err := s.store.FindByID(s.ctx, c.ID)
		s.Require().NoError(err)
		s.Empty(found.Phone)
		s.Empty(found.City)

		_, err = s.store.FindByPhone(s.ctx, "+40721555333")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

// TestCreateOrMerge verifies the atomic create-if-absent-else-merge path.
func (s *ClientStoreSuite) TestCreateOrMerge() {
	now := time.Now().UTC()

	s.Run("creates when no match exists", func() {
		c, err := s.store.CreateOrMerge(s.ctx, id.ClientID(uuid.New()), models.ContactFields{
			Email: "dana@example.com",
		}, id.SourceNewsletter, now)
		s.Require().NoError(err)
		s.NotNil(c)

		all, listErr := s.store.List(s.ctx)
		s.Require().NoError(listErr)
		s.Len(all, 1)
	})

	s.Run("merges into the existing match", func() {
		c, err := s.store.CreateOrMerge(s.ctx, id.ClientID(uuid.New()), models.ContactFields{
			Email: "dana@example.com",
			Phone: "+40721555333",
		}, id.SourceEventRegistration, now.Add(time.Second))
		s.Require().NoError(err)
		s.Equal("+40721555333", c.Phone)
		s.ElementsMatch([]id.Source{id.SourceNewsletter, id.SourceEventRegistration}, c.Sources)

		all, listErr := s.store.List(s.ctx)
		s.Require().NoError(listErr)
		s.Len(all, 1)
	})

	s.Run("concurrent writes for one contact yield one record", func() {
		s.SetupTest()
		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := s.store.CreateOrMerge(s.ctx, id.ClientID(uuid.New()), models.ContactFields{
					Email: "racer@example.com",
				}, id.SourceNewsletter, time.Now().UTC())
				s.NoError(err)
			}()
		}
		wg.Wait()

		all, err := s.store.List(s.ctx)
		s.Require().NoError(err)
		s.Len(all, 1)
	})
}

// TestListOrdering verifies listings come back most recently updated first.
func (s *ClientStoreSuite) TestListOrdering() {
	base := time.Now().UTC()
	older := s.newClient("older@example.com", "")
	older.UpdatedAt = base.Add(-time.Hour)
	newer := s.newClient("newer@example.com", "")
	newer.UpdatedAt = base

	s.Require().NoError(s.store.Create(s.ctx, older))
	s.Require().NoError(s.store.Create(s.ctx, newer))

	all, err := s.store.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.Equal("newer@example.com", all[0].Email)
	s.Equal("older@example.com", all[1].Email)
}

// TestAliasing verifies stored records are isolated from caller mutation.
func (s *ClientStoreSuite) TestAliasing() {
	c := s.newClient("dana@example.com", "")
	s.Require().NoError(s.store.Create(s.ctx, c))

	c.Name = "mutated after store"

	found, err := s.store.FindByID(s.ctx, c.ID)
	s.Require().NoError(err)
	s.Equal("Dana Ionescu", found.Name)

	found.Sources = append(found.Sources, id.SourceAdmin)
	again, err := s.store.FindByID(s.ctx, c.ID)
	s.Require().NoError(err)
	s.Equal([]id.Source{id.SourceNewsletter}, again.Sources)
}
