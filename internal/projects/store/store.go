// Package store holds the single project document, applies every mutation
// to it and writes it through to a storage backend.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/archdesign/internal/projects/domain"
	"github.com/GoSim-25-26J-441/archdesign/internal/storage"
)

// Store owns one Project. It is safe for concurrent use; operations are
// serialized and each one either persists and commits, or leaves the
// in-memory document untouched.
type Store struct {
	mu      sync.Mutex
	backend storage.Backend
	key     string
	log     *zap.Logger
	now     func() time.Time
	newID   domain.IDGenerator

	project domain.Project

	subs    map[int]chan domain.Project
	nextSub int
}

type Option func(*Store)

// WithKey overrides the storage key (DefaultKey).
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

func WithIDGenerator(gen domain.IDGenerator) Option {
	return func(s *Store) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// Open builds a store and rehydrates it from the backend. When nothing is
// stored yet the default project is used; it is written on first mutation.
func Open(ctx context.Context, backend storage.Backend, opts ...Option) (*Store, error) {
	if backend == nil {
		return nil, fmt.Errorf("store: backend is nil")
	}
	s := &Store{
		backend: backend,
		key:     DefaultKey,
		log:     zap.NewNop(),
		now:     time.Now,
		newID:   domain.NewID,
		subs:    map[int]chan domain.Project{},
	}
	for _, opt := range opts {
		opt(s)
	}

	p, _, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	s.project = p
	return s, nil
}

// Key returns the storage key the document lives under.
func (s *Store) Key() string {
	return s.key
}

func (s *Store) defaults() domain.Project {
	return domain.DefaultProject(s.newID(domain.PrefixProject), s.now())
}

// load reads the stored document. found is false when nothing is stored and
// the defaults were returned instead.
func (s *Store) load(ctx context.Context) (p domain.Project, found bool, err error) {
	data, err := s.backend.Load(ctx, s.key)
	if errors.Is(err, storage.ErrNotFound) {
		s.log.Info("no stored project, starting from defaults", zap.String("key", s.key))
		return s.defaults(), false, nil
	}
	if err != nil {
		return domain.Project{}, false, fmt.Errorf("load project %q: %w", s.key, err)
	}

	p, version, err := Decode(data, s.defaults())
	if err != nil {
		return domain.Project{}, false, fmt.Errorf("load project %q: %w", s.key, err)
	}
	if version < DocumentVersion {
		s.log.Info("migrated legacy project document",
			zap.String("key", s.key),
			zap.Int("from_version", version),
			zap.Int("to_version", DocumentVersion))
	}
	return p, true, nil
}

// Get returns a deep copy of the current project.
func (s *Store) Get() domain.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.project.Clone()
}

// Reload re-reads the document from the backend, replacing the in-memory
// copy. Subscribers are notified when the stored stamp differs. A document
// that has vanished from the backend keeps the in-memory copy; the next
// mutation writes it back.
func (s *Store) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, found, err := s.load(ctx)
	if err != nil {
		return err
	}
	if !found {
		s.log.Warn("stored project disappeared, keeping in-memory copy", zap.String("key", s.key))
		return nil
	}
	changed := p.LastUpdated != s.project.LastUpdated
	s.project = p
	if changed {
		s.notify(p)
	}
	return nil
}

// Save forces a write with a refreshed timestamp and returns the committed
// project.
func (s *Store) Save(ctx context.Context) (domain.Project, error) {
	p, _, err := s.mutate(ctx, "save", func(p *domain.Project) (bool, error) {
		return true, nil
	})
	return p, err
}

// Update shallow-merges the set fields of u into the project.
func (s *Store) Update(ctx context.Context, u domain.ProjectUpdate) (domain.Project, error) {
	if u.CompletedSections != nil {
		for _, id := range *u.CompletedSections {
			if !domain.IsSection(id) {
				return domain.Project{}, fmt.Errorf("%w: %q", domain.ErrUnknownSection, id)
			}
		}
	}
	p, _, err := s.mutate(ctx, "update_project", func(p *domain.Project) (bool, error) {
		u.Apply(p)
		return true, nil
	})
	return p, err
}

// ToggleSectionComplete adds id to the completed sections or removes it if
// already present.
func (s *Store) ToggleSectionComplete(ctx context.Context, id string) (domain.Project, error) {
	if !domain.IsSection(id) {
		return domain.Project{}, fmt.Errorf("%w: %q", domain.ErrUnknownSection, id)
	}
	p, _, err := s.mutate(ctx, "toggle_section", func(p *domain.Project) (bool, error) {
		out := make([]string, 0, len(p.CompletedSections)+1)
		found := false
		for _, sec := range p.CompletedSections {
			if sec == id {
				found = true
				continue
			}
			out = append(out, sec)
		}
		if !found {
			out = append(out, id)
		}
		p.CompletedSections = out
		return true, nil
	})
	return p, err
}

// ToggleSecurityMeasure flips measure id and returns its new value. Unknown
// ids are accepted and start from false.
func (s *Store) ToggleSecurityMeasure(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, fmt.Errorf("%w: empty security measure id", domain.ErrInvalidProject)
	}
	var enabled bool
	_, _, err := s.mutate(ctx, "toggle_security_measure", func(p *domain.Project) (bool, error) {
		enabled = !p.SecurityMeasures[id]
		p.SecurityMeasures[id] = enabled
		return true, nil
	})
	return enabled, err
}

// Replace swaps the whole document for p after validating it.
func (s *Store) Replace(ctx context.Context, p domain.Project) (domain.Project, error) {
	p = p.Clone()
	if err := p.Validate(); err != nil {
		return domain.Project{}, err
	}
	out, _, err := s.mutate(ctx, "replace", func(cur *domain.Project) (bool, error) {
		*cur = p
		return true, nil
	})
	return out, err
}

// Reset replaces the document with a fresh default project.
func (s *Store) Reset(ctx context.Context) (domain.Project, error) {
	fresh := s.defaults()
	p, _, err := s.mutate(ctx, "reset", func(cur *domain.Project) (bool, error) {
		*cur = fresh
		return true, nil
	})
	return p, err
}

// mutate applies fn to a copy of the project. When fn reports a change the
// copy is stamped, persisted and committed, and a copy of the committed
// project is returned. A failed write leaves the store as it was.
func (s *Store) mutate(ctx context.Context, op string, fn func(p *domain.Project) (bool, error)) (domain.Project, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.project.Clone()
	changed, err := fn(&next)
	if err != nil {
		return domain.Project{}, false, err
	}
	if !changed {
		return s.project.Clone(), false, nil
	}
	next.LastUpdated = s.stamp()

	if err := s.persist(ctx, next); err != nil {
		s.log.Error("persist project failed", zap.String("op", op), zap.String("key", s.key), zap.Error(err))
		return domain.Project{}, false, err
	}
	s.project = next
	s.log.Debug("project mutated", zap.String("op", op), zap.Int64("last_updated", next.LastUpdated))
	s.notify(next)
	return next.Clone(), true, nil
}

// stamp returns a timestamp strictly after the current one so that every
// mutation is observable even within the same millisecond.
func (s *Store) stamp() int64 {
	ms := s.now().UnixMilli()
	if ms <= s.project.LastUpdated {
		ms = s.project.LastUpdated + 1
	}
	return ms
}

func (s *Store) persist(ctx context.Context, p domain.Project) error {
	data, err := Encode(p)
	if err != nil {
		return err
	}
	if err := s.backend.Save(ctx, s.key, data); err != nil {
		return fmt.Errorf("save project %q: %w", s.key, err)
	}
	return nil
}

// Subscribe returns a channel receiving the latest project after every
// committed change. Slow readers only see the most recent value. The cancel
// func closes the channel.
func (s *Store) Subscribe() (<-chan domain.Project, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan domain.Project, 1)
	s.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
			close(ch)
		})
	}
}

// notify must be called with mu held.
func (s *Store) notify(p domain.Project) {
	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- p.Clone():
		default:
		}
	}
}
