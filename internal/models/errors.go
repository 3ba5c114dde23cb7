// ReelReads - Movie Taste to Book Recommendations
// Copyright 2026 ReelReads Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelreads/reelreads

package models

import "fmt"

// ServiceError wraps a failure from an external collaborator (LLM, book
// catalog, poster lookup). The orchestrator recovers from these locally:
// a degraded response for the LLM path, an unenriched book for the
// catalog path. A ServiceError never propagates to the HTTP client.
type ServiceError struct {
	// Service identifies the failing collaborator ("llm", "catalog", "posters").
	Service string
	Err     error
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s service: %v", e.Service, e.Err)
}

// Unwrap returns the underlying error.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError wraps err as a ServiceError for the named service.
func NewServiceError(service string, err error) *ServiceError {
	return &ServiceError{Service: service, Err: err}
}
