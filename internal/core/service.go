package core

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/JonMunkholm/lists/internal/logging"
	"github.com/google/uuid"
)

// Store persists lists and supplies templates. Implementations live in
// the store package.
type Store interface {
	LoadTemplates(ctx context.Context) ([]*List, error)
	LoadLists(ctx context.Context) ([]*List, error)
	SaveLists(ctx context.Context, lists []*List) error
}

// ServiceOptions configures a Service.
type ServiceOptions struct {
	// DefaultPageSize is the page size of lists created by the service.
	DefaultPageSize int

	// SaveOnWrite persists all lists after every successful mutation.
	// When false, only Save and the snapshot scheduler write to the store.
	SaveOnWrite bool
}

// Service is the registry and factory of lists. It serializes access to
// each list, which List itself does not do.
type Service struct {
	store Store
	opts  ServiceOptions

	mu        sync.RWMutex
	lists     map[uuid.UUID]*List
	order     []uuid.UUID
	templates []*List
	dirty     bool
}

// ListOption customizes a list created by the service.
type ListOption func(*List)

// WithColor sets the list color.
func WithColor(color string) ListOption {
	return func(l *List) { l.Color = color }
}

// WithIcon sets the list icon.
func WithIcon(icon string) ListOption {
	return func(l *List) { l.Icon = icon }
}

// WithListDescription overrides the list description.
func WithListDescription(d string) ListOption {
	return func(l *List) { l.Description = d }
}

// NewService creates a Service and loads templates and saved lists from st.
// A nil store keeps everything in memory and serves DefaultTemplates.
func NewService(ctx context.Context, st Store, opts ServiceOptions) (*Service, error) {
	if opts.DefaultPageSize < 1 {
		opts.DefaultPageSize = DefaultPageSize
	}

	s := &Service{
		store: st,
		opts:  opts,
		lists: make(map[uuid.UUID]*List),
	}

	if st == nil {
		s.templates = DefaultTemplates()
		return s, nil
	}

	templates, err := st.LoadTemplates(ctx)
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	s.templates = templates

	saved, err := st.LoadLists(ctx)
	if err != nil {
		return nil, fmt.Errorf("load lists: %w", err)
	}
	for _, l := range saved {
		s.register(l)
	}

	slog.Info("list service ready", "templates", len(s.templates), "lists", len(s.order))
	return s, nil
}

// register adds l to the registry. Caller holds s.mu or owns s exclusively.
func (s *Service) register(l *List) {
	if _, exists := s.lists[l.ID]; !exists {
		s.order = append(s.order, l.ID)
	}
	s.lists[l.ID] = l
}

// ----------------------------------------------------------------------------
// Factory
// ----------------------------------------------------------------------------

// CreateBlank creates an empty list. The acting user from ctx, if any,
// becomes its owner and first member.
func (s *Service) CreateBlank(ctx context.Context, name, description string, opts ...ListOption) (*List, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: list name is required", ErrInvalidValue)
	}

	l := NewList(name, description)
	l.SetPageSize(s.opts.DefaultPageSize)
	for _, opt := range opts {
		opt(l)
	}
	return s.add(ctx, l, "blank")
}

// CreateFromExisting creates a list holding a deep copy of the source's
// columns and rows. Without options the copy is Transparent with the
// Smile icon.
func (s *Service) CreateFromExisting(ctx context.Context, sourceID uuid.UUID, newName string, opts ...ListOption) (*List, error) {
	if newName == "" {
		return nil, fmt.Errorf("%w: list name is required", ErrInvalidValue)
	}

	s.mu.RLock()
	src, ok := s.lists[sourceID]
	var l *List
	if ok {
		l = src.Clone()
	}
	s.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("source list %s: %w", sourceID, ErrNotFound)
	}

	l.Name = newName
	l.Description = ""
	l.Color = "Transparent"
	l.Icon = "Smile"
	l.IsFavorited = false
	l.access = nil
	l.Owner = User{}
	for _, opt := range opts {
		opt(l)
	}
	return s.add(ctx, l, "existing")
}

// CreateFromTemplate creates a list from a deep copy of a template.
func (s *Service) CreateFromTemplate(ctx context.Context, templateID uuid.UUID) (*List, error) {
	s.mu.RLock()
	var l *List
	for _, t := range s.templates {
		if t.ID == templateID {
			l = t.Clone()
			break
		}
	}
	s.mu.RUnlock()

	if l == nil {
		return nil, fmt.Errorf("template %s: %w", templateID, ErrNotFound)
	}
	return s.add(ctx, l, "template")
}

// Import registers a list built outside the service, such as one read from
// a CSV or JSON upload. A list whose id is already taken is re-keyed.
func (s *Service) Import(ctx context.Context, l *List) (*List, error) {
	if l == nil || l.Name == "" {
		return nil, fmt.Errorf("%w: list name is required", ErrInvalidValue)
	}

	s.mu.RLock()
	_, taken := s.lists[l.ID]
	s.mu.RUnlock()
	if taken {
		l = l.Clone()
	}
	return s.add(ctx, l, "import")
}

func (s *Service) add(ctx context.Context, l *List, source string) (*List, error) {
	if u, ok := UserFromContext(ctx); ok {
		u.IsOwner = true
		l.Owner = u
		l.AddAccess(u)
	}
	s.mu.Lock()
	s.register(l)
	s.mu.Unlock()

	logging.WithFields(ctx, actorFields(ctx, "list_id", l.ID, "source", source)...).Info("list created",
		"name", l.Name,
		"columns", l.ColumnCount(),
		"rows", l.RowCount(),
	)
	return l, s.written(ctx)
}

// actorFields appends the requesting user and client IP, when known, to
// log fields.
func actorFields(ctx context.Context, fields ...any) []any {
	if u, ok := UserFromContext(ctx); ok {
		fields = append(fields, "user", u.Name)
	}
	if ip := GetIPAddressFromContext(ctx); ip != "" {
		fields = append(fields, "ip", ip)
	}
	return fields
}

// ----------------------------------------------------------------------------
// Registry
// ----------------------------------------------------------------------------

// Get returns the list with the given id. The returned list is live; use
// View or Update when other goroutines may touch it.
func (s *Service) Get(id uuid.UUID) (*List, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.lists[id]
	if !ok {
		return nil, fmt.Errorf("list %s: %w", id, ErrNotFound)
	}
	return l, nil
}

// Lists returns all lists in creation order.
func (s *Service) Lists() []*List {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*List, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.lists[id])
	}
	return out
}

// Templates returns the available templates.
func (s *Service) Templates() []*List {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*List(nil), s.templates...)
}

// View runs fn with shared access to a list. fn must not modify it.
func (s *Service) View(id uuid.UUID, fn func(*List) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.lists[id]
	if !ok {
		return fmt.Errorf("list %s: %w", id, ErrNotFound)
	}
	return fn(l)
}

// Update runs fn with exclusive access to a list. When fn succeeds the
// change is recorded for saving.
func (s *Service) Update(ctx context.Context, id uuid.UUID, fn func(*List) error) error {
	s.mu.Lock()
	l, ok := s.lists[id]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("list %s: %w", id, ErrNotFound)
	}
	err := fn(l)
	s.mu.Unlock()

	if err != nil {
		return err
	}
	return s.written(ctx)
}

// Delete removes a list from the registry.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	if _, ok := s.lists[id]; !ok {
		s.mu.Unlock()
		return fmt.Errorf("list %s: %w", id, ErrNotFound)
	}
	delete(s.lists, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	logging.WithFields(ctx, actorFields(ctx, "list_id", id)...).Info("list deleted")
	return s.written(ctx)
}

// Favorite marks a list as favorited.
func (s *Service) Favorite(ctx context.Context, id uuid.UUID) error {
	return s.Update(ctx, id, func(l *List) error {
		l.IsFavorited = true
		return nil
	})
}

// ----------------------------------------------------------------------------
// Persistence
// ----------------------------------------------------------------------------

// written marks the registry dirty and saves at once under SaveOnWrite.
func (s *Service) written(ctx context.Context) error {
	s.mu.Lock()
	s.dirty = true
	s.mu.Unlock()

	if s.opts.SaveOnWrite {
		return s.Save(ctx)
	}
	return nil
}

// Save writes every list to the store. Without a store it does nothing.
func (s *Service) Save(ctx context.Context) error {
	if s.store == nil {
		return nil
	}

	// Hold the read lock while encoding so no list changes mid-save.
	s.mu.RLock()
	lists := make([]*List, 0, len(s.order))
	for _, id := range s.order {
		lists = append(lists, s.lists[id])
	}
	err := s.store.SaveLists(ctx, lists)
	s.mu.RUnlock()

	if err != nil {
		return fmt.Errorf("save lists: %w", err)
	}

	s.mu.Lock()
	s.dirty = false
	s.mu.Unlock()

	slog.Debug("lists saved", "count", len(lists))
	return nil
}

// Dirty reports whether there are changes not yet saved.
func (s *Service) Dirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dirty
}
