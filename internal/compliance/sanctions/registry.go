// Package sanctions holds the in-process sanctions registry and the checker
// that screens customers and transaction parties against it.
//
// The registry is read-mostly. Readers take an immutable Snapshot; writers
// build a new snapshot and swap it in, so an in-flight check always sees one
// consistent set of lists.
package sanctions

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"kycaml/internal/compliance/models"
	"kycaml/pkg/platform/sentinel"
	pstrings "kycaml/pkg/platform/strings"
)

// Snapshot is an immutable view of every registered list.
type Snapshot struct {
	lists    []models.SanctionsList
	revision uint64
}

// Lists returns a copy of the lists in registration order.
func (s *Snapshot) Lists() []models.SanctionsList {
	if s == nil {
		return nil
	}
	out := make([]models.SanctionsList, len(s.lists))
	for i, l := range s.lists {
		out[i] = cloneList(l)
	}
	return out
}

// Revision increases by one on every registry write.
func (s *Snapshot) Revision() uint64 {
	if s == nil {
		return 0
	}
	return s.revision
}

// EntityCount is the total number of designations across lists.
func (s *Snapshot) EntityCount() int {
	if s == nil {
		return 0
	}
	n := 0
	for _, l := range s.lists {
		n += len(l.Entities)
	}
	return n
}

// Snapshot lets a Snapshot act as its own source, pinning a checker to it.
func (s *Snapshot) Snapshot() *Snapshot { return s }

func (s *Snapshot) indexOf(id string) int {
	if s == nil {
		return -1
	}
	return slices.IndexFunc(s.lists, func(l models.SanctionsList) bool { return l.ID == id })
}

// Registry owns the process-wide set of sanctions lists.
type Registry struct {
	mu      sync.Mutex // serializes writers
	current atomic.Pointer[Snapshot]
}

// NewRegistry builds a registry seeded with the given lists.
func NewRegistry(lists ...models.SanctionsList) (*Registry, error) {
	r := &Registry{}
	r.current.Store(&Snapshot{})
	if err := r.Replace(lists); err != nil {
		return nil, err
	}
	return r, nil
}

// Snapshot returns the current immutable view.
func (r *Registry) Snapshot() *Snapshot {
	return r.current.Load()
}

// Add registers a list, replacing any list with the same ID. A replaced list's
// version increments; a new list starts at version 1 unless it carries a higher one.
func (r *Registry) Add(list models.SanctionsList) (models.SanctionsList, error) {
	if err := validateList(list); err != nil {
		return models.SanctionsList{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	cur := r.current.Load()
	next := &Snapshot{lists: slices.Clone(cur.lists), revision: cur.revision + 1}
	stored := cloneList(list)
	if i := cur.indexOf(list.ID); i >= 0 {
		stored.Version = cur.lists[i].Version + 1
		next.lists[i] = stored
	} else {
		stored.Version = max(stored.Version, 1)
		next.lists = append(next.lists, stored)
	}
	r.current.Store(next)
	return cloneList(stored), nil
}

// Update replaces an existing list. Unknown IDs fail with a sanctions check error.
func (r *Registry) Update(list models.SanctionsList) (models.SanctionsList, error) {
	if err := validateList(list); err != nil {
		return models.SanctionsList{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	cur := r.current.Load()
	i := cur.indexOf(list.ID)
	if i < 0 {
		return models.SanctionsList{}, models.NewSanctionsCheckError("update_sanctions_list",
			"Sanctions list not found: "+list.ID, sentinel.ErrNotFound)
	}
	next := &Snapshot{lists: slices.Clone(cur.lists), revision: cur.revision + 1}
	stored := cloneList(list)
	stored.Version = cur.lists[i].Version + 1
	next.lists[i] = stored
	r.current.Store(next)
	return cloneList(stored), nil
}

// Replace swaps the whole registry content, keeping the given versions.
// Used at startup when restoring from a persisted snapshot.
func (r *Registry) Replace(lists []models.SanctionsList) error {
	seen := make(map[string]struct{}, len(lists))
	next := make([]models.SanctionsList, 0, len(lists))
	for _, l := range lists {
		if err := validateList(l); err != nil {
			return err
		}
		if _, dup := seen[l.ID]; dup {
			return models.NewSanctionsCheckError("replace_sanctions_lists", "duplicate list id: "+l.ID, sentinel.ErrConflict)
		}
		seen[l.ID] = struct{}{}
		stored := cloneList(l)
		stored.Version = max(stored.Version, 1)
		next = append(next, stored)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	cur := r.current.Load()
	r.current.Store(&Snapshot{lists: next, revision: cur.Revision() + 1})
	return nil
}

// Get returns a copy of the list with the given ID.
func (r *Registry) Get(id string) (models.SanctionsList, error) {
	snap := r.current.Load()
	i := snap.indexOf(id)
	if i < 0 {
		return models.SanctionsList{}, sentinel.ErrNotFound
	}
	return cloneList(snap.lists[i]), nil
}

func validateList(l models.SanctionsList) error {
	if strings.TrimSpace(l.ID) == "" {
		return models.NewSanctionsCheckError("validate_sanctions_list", "list id is required", nil)
	}
	for i, e := range l.Entities {
		if strings.TrimSpace(e.Name) == "" {
			return models.NewSanctionsCheckError("validate_sanctions_list",
				"entity name is required", fmt.Errorf("list %s entity %d", l.ID, i))
		}
	}
	return nil
}

func cloneList(l models.SanctionsList) models.SanctionsList {
	out := l
	out.Entities = make([]models.SanctionedEntity, len(l.Entities))
	for i, e := range l.Entities {
		e.Aliases = pstrings.DedupeAndTrim(slices.Clone(e.Aliases))
		out.Entities[i] = e
	}
	return out
}
