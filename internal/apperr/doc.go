// Package apperr defines the error taxonomy shared by the introspection
// components.
//
// Components return an *OpError whose Kind is one of the sentinel errors
// declared here, so callers can branch with errors.Is:
//
//	if _, err := hasher.Hash(path); errors.Is(err, apperr.ErrNotFound) {
//	    ...
//	}
package apperr
