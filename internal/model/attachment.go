package model

import "time"

// Attachment is file metadata for an object stored out-of-band in the
// object store. It is owned by an application and transitively by that
// application's user; StorageKey encodes that ownership as a path prefix.
//
// DeletedAt is reserved for a future soft-delete flow; nothing sets or
// filters on it today.
type Attachment struct {
	ID            string     `json:"id"`
	ApplicationID string     `json:"applicationId"`
	FileName      string     `json:"fileName"`
	ContentType   string     `json:"contentType"`
	SizeBytes     int64      `json:"sizeBytes"`
	StorageKey    string     `json:"-"`
	CreatedAt     time.Time  `json:"createdAt"`
	DeletedAt     *time.Time `json:"-"`
}
