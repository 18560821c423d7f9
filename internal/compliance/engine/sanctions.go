package engine

import (
	"context"
	"fmt"

	"kycaml/internal/compliance/models"
)

// AddSanctionsList adds a list, or replaces one with the same id, and persists the registry.
func (e *Engine) AddSanctionsList(ctx context.Context, list models.SanctionsList) (models.SanctionsList, error) {
	stored, err := e.registry.Add(list)
	if err != nil {
		return models.SanctionsList{}, err
	}
	e.afterListChange(ctx, "added", stored)
	if err := e.audit(ctx, models.AuditEvent{
		Action:   models.AuditSanctionsListAdded,
		Subject:  stored.ID,
		Decision: fmt.Sprintf("version %d", stored.Version),
	}); err != nil {
		return models.SanctionsList{}, err
	}
	return stored, nil
}

// UpdateSanctionsList replaces an existing list. Unknown ids are a sanctions check error.
func (e *Engine) UpdateSanctionsList(ctx context.Context, list models.SanctionsList) (models.SanctionsList, error) {
	stored, err := e.registry.Update(list)
	if err != nil {
		return models.SanctionsList{}, err
	}
	e.afterListChange(ctx, "updated", stored)
	if err := e.audit(ctx, models.AuditEvent{
		Action:   models.AuditSanctionsListUpdated,
		Subject:  stored.ID,
		Decision: fmt.Sprintf("version %d", stored.Version),
	}); err != nil {
		return models.SanctionsList{}, err
	}
	return stored, nil
}

// SanctionsLists returns copies of the active lists.
func (e *Engine) SanctionsLists() []models.SanctionsList {
	return e.registry.Snapshot().Lists()
}

// RestoreSanctions loads persisted lists into the registry. It reports whether
// anything was restored; an empty snapshot store leaves the registry untouched.
func (e *Engine) RestoreSanctions(ctx context.Context) (bool, error) {
	if e.snapshots == nil {
		return false, nil
	}
	lists, err := e.snapshots.LoadLists(ctx)
	if err != nil {
		return false, fmt.Errorf("load sanctions snapshot: %w", err)
	}
	if len(lists) == 0 {
		return false, nil
	}
	if err := e.registry.Replace(lists); err != nil {
		return false, fmt.Errorf("restore sanctions snapshot: %w", err)
	}
	snap := e.registry.Snapshot()
	e.metrics.SetSanctionsEntities(snap.EntityCount())
	if e.logger != nil {
		e.logger.InfoContext(ctx, "sanctions lists restored",
			"lists", len(lists),
			"entities", snap.EntityCount(),
		)
	}
	return true, nil
}

// afterListChange persists the registry. The in-memory registry stays
// authoritative when the snapshot store is unavailable.
func (e *Engine) afterListChange(ctx context.Context, action string, list models.SanctionsList) {
	snap := e.registry.Snapshot()
	e.metrics.SetSanctionsEntities(snap.EntityCount())
	if e.logger != nil {
		e.logger.InfoContext(ctx, "sanctions list "+action,
			"list_id", list.ID,
			"version", list.Version,
			"entities", len(list.Entities),
		)
	}
	if e.snapshots == nil {
		return
	}
	if err := e.snapshots.SaveLists(ctx, snap.Lists()); err != nil && e.logger != nil {
		e.logger.ErrorContext(ctx, "failed to persist sanctions snapshot",
			"list_id", list.ID,
			"error", err,
		)
	}
}
