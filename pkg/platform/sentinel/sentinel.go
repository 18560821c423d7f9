package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and registries return these
// (optionally wrapped) so the HTTP layer can pick a status without knowing the
// domain error type:
//   - ErrNotFound: the named sanctions list or record does not exist
//   - ErrConflict: the write collides with existing state
//   - ErrUnavailable: a backend (store, audit trail, feature) cannot serve now
//
// For validation errors (bad input, missing fields), use models.Error directly.
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrUnavailable = errors.New("unavailable")
)
