// Package models defines the domain records the client keeps in memory:
// file metadata, the active session, and the keys used to ask the server
// for sorted/filtered listings.
package models

import "time"

// Ownership tells which base collection a record belongs to.
type Ownership string

const (
	// Owned marks a file uploaded by the current user.
	Owned Ownership = "owned"
	// SharedWithMe marks a file another user shared with the current user.
	SharedWithMe Ownership = "shared"
)

// FileRecord is the client-side view of one file's metadata as the server
// reports it. Identity is ID; Starred is meaningful only for owned records.
type FileRecord struct {
	ID          string     `json:"id"`
	Filename    string     `json:"filename"`
	OwnerID     string     `json:"owner_id"`
	LocationURI string     `json:"s3_url"`
	SharedWith  []string   `json:"shared_with"`
	Starred     bool       `json:"starred"`
	CreatedAt   time.Time  `json:"created_at"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	Ownership   Ownership  `json:"-"`
}

// PublicLink is a time-limited URL generated for a file. It is a transient
// result, never part of the file record itself.
type PublicLink struct {
	URL           string
	ExpiresAt     time.Time
	ExpiryMinutes int
}

// SortKey selects the ordering of an owned-file listing. The server accepts
// all four keys on the list endpoint; client-side re-sorting (see the view
// package) supports newest and alphabetical.
type SortKey string

const (
	SortNewest       SortKey = "newest"
	SortOldest       SortKey = "oldest"
	SortAlphabetical SortKey = "alphabetical"
	SortSize         SortKey = "size"
)

// FilterKey narrows a listing server-side.
type FilterKey string

const (
	FilterAll      FilterKey = ""
	FilterUploaded FilterKey = "uploaded"
	FilterShared   FilterKey = "shared"
)
