package storage

import "time"

// Entry is one stored key with its serialized value.
type Entry struct {
	Key       string
	Value     string
	UpdatedAt *time.Time
}
