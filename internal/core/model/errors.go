package model

import "errors"

var (
	// ErrInvalidQuery rejects malformed queries (empty skill, job description
	// under the minimum length) before any retrieval runs.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrNotFound signals an unknown candidate id.
	ErrNotFound = errors.New("not found")

	// ErrBackendUnavailable is returned only when every retrieval path is
	// down; single-path failures degrade to partial results instead.
	ErrBackendUnavailable = errors.New("backend unavailable")
)
