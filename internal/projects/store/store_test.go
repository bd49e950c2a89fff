package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/archdesign/internal/projects/domain"
	"github.com/GoSim-25-26J-441/archdesign/internal/storage/memstore"
)

var fixedNow = time.UnixMilli(1_700_000_000_000)

func seqIDs() domain.IDGenerator {
	var n int64
	return func(prefix string) string {
		return fmt.Sprintf("%s-%d", prefix, atomic.AddInt64(&n, 1))
	}
}

func newTestStore(t *testing.T, backend *memstore.Store) *Store {
	t.Helper()
	s, err := Open(context.Background(), backend,
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(seqIDs()))
	require.NoError(t, err)
	return s
}

func TestOpen_StartsFromDefaultsWithoutWriting(t *testing.T) {
	backend := memstore.New()
	s := newTestStore(t, backend)

	p := s.Get()
	assert.Equal(t, "project-1", p.ID)
	assert.Equal(t, domain.DefaultTitle, p.Title)
	assert.Len(t, p.Microservices, 4)
	assert.Equal(t, fixedNow.UnixMilli(), p.LastUpdated)
	assert.Equal(t, 0, backend.Len())
	assert.Equal(t, DefaultKey, s.Key())
}

func TestOpen_NilBackend(t *testing.T) {
	_, err := Open(context.Background(), nil)
	assert.Error(t, err)
}

func TestMicroserviceLifecycle(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, memstore.New())

	t.Run("add then rename keeps other fields", func(t *testing.T) {
		_, err := s.AddMicroservice(ctx, domain.Microservice{ID: "s1", Name: "Auth", DatabaseType: "PostgreSQL"})
		require.NoError(t, err)

		name := "AuthZ"
		found, err := s.UpdateMicroservice(ctx, "s1", domain.MicroserviceUpdate{Name: &name})
		require.NoError(t, err)
		assert.True(t, found)

		p := s.Get()
		last := p.Microservices[len(p.Microservices)-1]
		assert.Equal(t, domain.Microservice{ID: "s1", Name: "AuthZ", DatabaseType: "PostgreSQL"}, last)
	})

	t.Run("duplicate id rejected", func(t *testing.T) {
		_, err := s.AddMicroservice(ctx, domain.Microservice{ID: "s1", Name: "Again"})
		assert.ErrorIs(t, err, domain.ErrDuplicateID)
	})

	t.Run("empty id generated", func(t *testing.T) {
		svc, err := s.AddMicroservice(ctx, domain.Microservice{Name: "Search"})
		require.NoError(t, err)
		assert.Equal(t, "service-2", svc.ID)
	})

	t.Run("remove keeps order of the rest", func(t *testing.T) {
		found, err := s.RemoveMicroservice(ctx, "s1")
		require.NoError(t, err)
		assert.True(t, found)

		var ids []string
		for _, svc := range s.Get().Microservices {
			ids = append(ids, svc.ID)
		}
		assert.Equal(t, []string{"auth-service", "product-service", "order-service", "payment-service", "service-2"}, ids)
	})
}

func TestAbsentIDIsNoop(t *testing.T) {
	ctx := context.Background()
	backend := memstore.New()
	s := newTestStore(t, backend)
	before := s.Get()

	name := "x"
	found, err := s.UpdateMicroservice(ctx, "missing", domain.MicroserviceUpdate{Name: &name})
	require.NoError(t, err)
	assert.False(t, found)

	found, err = s.RemoveMicroservice(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)

	found, err = s.RemoveDiagramNode(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)

	found, err = s.UpdateConnection(ctx, "missing", domain.DiagramConnectionUpdate{})
	require.NoError(t, err)
	assert.False(t, found)

	found, err = s.RemoveConnection(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)

	assert.Empty(t, cmp.Diff(before, s.Get()))
	assert.Equal(t, 0, backend.Len())
}

func TestToggleSectionComplete(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, memstore.New())

	p, err := s.ToggleSectionComplete(ctx, "C")
	require.NoError(t, err)
	assert.True(t, p.IsSectionComplete("C"))

	p, err = s.ToggleSectionComplete(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "A"}, p.CompletedSections)

	p, err = s.ToggleSectionComplete(ctx, "C")
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, p.CompletedSections)
	assert.Equal(t, p, s.Get())

	_, err = s.ToggleSectionComplete(ctx, "Z")
	assert.ErrorIs(t, err, domain.ErrUnknownSection)
}

func TestToggleSecurityMeasure(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, memstore.New())

	on, err := s.ToggleSecurityMeasure(ctx, "jwt")
	require.NoError(t, err)
	assert.True(t, on)

	on, err = s.ToggleSecurityMeasure(ctx, "apiSecurity")
	require.NoError(t, err)
	assert.True(t, on)

	on, err = s.ToggleSecurityMeasure(ctx, "jwt")
	require.NoError(t, err)
	assert.False(t, on)

	_, err = s.ToggleSecurityMeasure(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidProject)
}

func TestDiagram(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, memstore.New())

	_, err := s.AddDiagramNode(ctx, domain.DiagramNode{ID: "web", Type: domain.NodeClient, Label: "Web"})
	require.NoError(t, err)
	_, err = s.AddDiagramNode(ctx, domain.DiagramNode{ID: "gw", Type: domain.NodeGateway, Label: "Gateway"})
	require.NoError(t, err)

	_, err = s.AddDiagramNode(ctx, domain.DiagramNode{Type: "mainframe"})
	assert.ErrorIs(t, err, domain.ErrInvalidNodeType)

	conn, err := s.AddConnection(ctx, domain.DiagramConnection{From: "web", To: "gw", Protocol: "HTTP/REST"})
	require.NoError(t, err)
	assert.Equal(t, "conn-2", conn.ID)

	t.Run("update node validates type", func(t *testing.T) {
		bad := "mainframe"
		_, err := s.UpdateDiagramNode(ctx, "gw", domain.DiagramNodeUpdate{Type: &bad})
		assert.ErrorIs(t, err, domain.ErrInvalidNodeType)

		x := 120.0
		found, err := s.UpdateDiagramNode(ctx, "gw", domain.DiagramNodeUpdate{X: &x})
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, 120.0, s.Get().DiagramNodes[1].X)
	})

	t.Run("removing a node keeps its connections", func(t *testing.T) {
		found, err := s.RemoveDiagramNode(ctx, "gw")
		require.NoError(t, err)
		require.True(t, found)

		p := s.Get()
		require.Len(t, p.DiagramConnections, 1)
		assert.Empty(t, p.ResolvedConnections())
		assert.Len(t, p.DanglingConnections(), 1)
	})

	t.Run("update connection", func(t *testing.T) {
		proto := "gRPC"
		found, err := s.UpdateConnection(ctx, conn.ID, domain.DiagramConnectionUpdate{Protocol: &proto})
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "gRPC", s.Get().DiagramConnections[0].Protocol)

		found, err = s.RemoveConnection(ctx, conn.ID)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Empty(t, s.Get().DiagramConnections)
	})
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, memstore.New())

	title := "Ride Sharing"
	steps := []string{"client -> gateway", "gateway -> trips"}
	p, err := s.Update(ctx, domain.ProjectUpdate{Title: &title, SequenceFlowSteps: &steps})
	require.NoError(t, err)
	assert.Equal(t, p, s.Get())

	assert.Equal(t, "Ride Sharing", p.Title)
	assert.Equal(t, domain.DefaultDescription, p.Description)
	assert.Equal(t, steps, p.SequenceFlowSteps)

	bad := []string{"A", "Q"}
	_, err = s.Update(ctx, domain.ProjectUpdate{CompletedSections: &bad})
	assert.ErrorIs(t, err, domain.ErrUnknownSection)
}

func TestEveryMutationAdvancesLastUpdated(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, memstore.New())

	last := s.Get().LastUpdated
	ops := []func() error{
		func() error { _, err := s.Save(ctx); return err },
		func() error { _, err := s.ToggleSectionComplete(ctx, "B"); return err },
		func() error { _, err := s.AddMicroservice(ctx, domain.Microservice{Name: "a"}); return err },
		func() error { _, err := s.ToggleSecurityMeasure(ctx, "jwt"); return err },
		func() error { _, err := s.Save(ctx); return err },
	}
	for i, op := range ops {
		require.NoError(t, op(), "op %d", i)
		now := s.Get().LastUpdated
		assert.Greater(t, now, last, "op %d", i)
		last = now
	}
}

func TestPersistAndReopen(t *testing.T) {
	ctx := context.Background()
	backend := memstore.New()
	s := newTestStore(t, backend)

	_, err := s.AddMicroservice(ctx, domain.Microservice{ID: "s1", Name: "Auth"})
	require.NoError(t, err)
	_, err = s.AddDiagramNode(ctx, domain.DiagramNode{ID: "n1", Type: domain.NodeDatabase, X: 10, Y: 20})
	require.NoError(t, err)
	_, err = s.AddConnection(ctx, domain.DiagramConnection{ID: "c1", From: "n1", To: "n9"})
	require.NoError(t, err)
	_, err = s.ToggleSectionComplete(ctx, "G")
	require.NoError(t, err)
	_, err = s.ToggleSecurityMeasure(ctx, "encryption")
	require.NoError(t, err)
	assert.Equal(t, 1, backend.Len())

	reopened := newTestStore(t, backend)
	if diff := cmp.Diff(s.Get(), reopened.Get()); diff != "" {
		t.Errorf("reopened project mismatch (-want +got):\n%s", diff)
	}
}

func TestFailedSaveLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	backend := memstore.New()
	s := newTestStore(t, backend)
	before := s.Get()

	backend.SetFailSave(errors.New("disk full"))

	_, err := s.AddMicroservice(ctx, domain.Microservice{ID: "s1", Name: "Auth"})
	assert.Error(t, err)
	assert.ErrorContains(t, err, "disk full")
	_, err = s.ToggleSectionComplete(ctx, "A")
	assert.Error(t, err)
	_, err = s.Save(ctx)
	assert.Error(t, err)

	assert.Empty(t, cmp.Diff(before, s.Get()))

	backend.SetFailSave(nil)
	_, err = s.AddMicroservice(ctx, domain.Microservice{ID: "s1", Name: "Auth"})
	assert.NoError(t, err)
}

func TestReplaceAndReset(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, memstore.New())

	next := domain.Project{
		ID:           "imported",
		Title:        "Imported",
		DiagramNodes: []domain.DiagramNode{{ID: "n1", Type: "robot"}},
	}
	_, err := s.Replace(ctx, next)
	assert.ErrorIs(t, err, domain.ErrInvalidNodeType)
	assert.Equal(t, domain.DefaultTitle, s.Get().Title)

	next.DiagramNodes[0].Type = domain.NodeExternal
	p, err := s.Replace(ctx, next)
	require.NoError(t, err)
	assert.Equal(t, "imported", p.ID)
	assert.Empty(t, p.Microservices)
	assert.NotNil(t, p.SecurityMeasures)

	p, err = s.Reset(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultTitle, p.Title)
	assert.Len(t, p.Microservices, 4)
	assert.Greater(t, p.LastUpdated, fixedNow.UnixMilli())
}

func TestReloadPicksUpExternalWrite(t *testing.T) {
	ctx := context.Background()
	backend := memstore.New()
	a := newTestStore(t, backend)
	b := newTestStore(t, backend)

	title := "Edited elsewhere"
	_, err := a.Update(ctx, domain.ProjectUpdate{Title: &title})
	require.NoError(t, err)

	ch, cancel := b.Subscribe()
	defer cancel()

	require.NoError(t, b.Reload(ctx))
	assert.Equal(t, "Edited elsewhere", b.Get().Title)

	select {
	case p := <-ch:
		assert.Equal(t, "Edited elsewhere", p.Title)
	case <-time.After(time.Second):
		t.Fatal("no notification after reload")
	}
}

func TestReloadKeepsDocumentWhenStoredCopyVanishes(t *testing.T) {
	ctx := context.Background()
	backend := memstore.New()
	s := newTestStore(t, backend)

	title := "Keep me"
	before, err := s.Update(ctx, domain.ProjectUpdate{Title: &title})
	require.NoError(t, err)

	backend.Delete(DefaultKey)
	require.NoError(t, s.Reload(ctx))
	assert.Empty(t, cmp.Diff(before, s.Get()))

	_, err = s.Save(ctx)
	require.NoError(t, err)
	reopened := newTestStore(t, backend)
	assert.Equal(t, before.ID, reopened.Get().ID)
	assert.Equal(t, "Keep me", reopened.Get().Title)
}

func TestSubscribe(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, memstore.New())

	ch, cancel := s.Subscribe()
	_, err := s.ToggleSectionComplete(ctx, "A")
	require.NoError(t, err)
	_, err = s.ToggleSectionComplete(ctx, "B")
	require.NoError(t, err)

	p := <-ch
	assert.Equal(t, []string{"A", "B"}, p.CompletedSections, "slow reader sees the latest value")

	cancel()
	cancel()
	_, ok := <-ch
	assert.False(t, ok)

	_, err = s.Save(ctx)
	require.NoError(t, err)
}

func TestConcurrentAdds(t *testing.T) {
	ctx := context.Background()
	backend := memstore.New()
	s, err := Open(ctx, backend)
	require.NoError(t, err)

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.AddDiagramNode(ctx, domain.DiagramNode{Type: domain.NodeService, Label: fmt.Sprint(i)})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.Len(t, s.Get().DiagramNodes, n)

	reopened, err := Open(ctx, backend)
	require.NoError(t, err)
	assert.Len(t, reopened.Get().DiagramNodes, n)
}
