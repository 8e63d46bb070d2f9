// Package api is the typed wrapper around the remote file-sharing service.
// It translates each client operation into one authenticated HTTP request
// and maps transport outcomes onto domain errors (see errors.go).
package api

import (
	"context"
	"io"

	"github.com/nishant0207/online-filesharing/internal/client/models"
)

// Client is the remote-service surface the session manager and catalog
// store are written against. The concrete implementation is HTTPClient;
// tests substitute fakes.
type Client interface {
	// Login exchanges credentials for a bearer token. On success the token
	// is also retained for subsequent authenticated calls.
	Login(ctx context.Context, email, password string) (string, error)

	// Signup creates an account. It does not authenticate.
	Signup(ctx context.Context, username, email, password string) error

	// SetToken replaces the bearer credential attached to requests.
	// An empty token means subsequent calls go out unauthenticated.
	SetToken(token string)

	ListFiles(ctx context.Context, sort models.SortKey, filter models.FilterKey) ([]models.FileRecord, error)
	ListShared(ctx context.Context) ([]models.FileRecord, error)

	// Upload sends the file payload; on success it returns the new record's
	// id and storage location.
	Upload(ctx context.Context, filename string, payload io.Reader) (id, locationURI string, err error)

	Delete(ctx context.Context, fileID string) error
	Share(ctx context.Context, fileID, recipientEmail string) error
	PublicLink(ctx context.Context, fileID string, expiryMinutes int) (models.PublicLink, error)
	ToggleStar(ctx context.Context, fileID string) error
	RemoveSharedGrant(ctx context.Context, fileID string) error

	// DownloadURL asks for a short-lived retrieval URL for the file.
	DownloadURL(ctx context.Context, fileID string) (string, error)
}
