package model

import "github.com/google/uuid"

// UID is an opaque, process-unique entity identifier. The empty UID means
// "no reference".
type UID string

// NewUID returns a fresh 8-character identifier.
func NewUID() UID {
	return UID(uuid.New().String()[:8])
}

// orNewUID returns u, or a fresh UID when u is empty.
func orNewUID(u UID) UID {
	if u == "" {
		return NewUID()
	}
	return u
}
