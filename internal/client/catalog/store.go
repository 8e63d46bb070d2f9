// Package catalog owns the client's authoritative in-memory view of the
// user's files: the owned and shared-with-me base collections plus the
// per-file pending-operation map. Base collections change only here, and
// only on server-confirmed results; a failed call leaves them untouched.
// Derived (searched/sorted) views are computed by the view package and are
// never written back.
package catalog

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/nishant0207/online-filesharing/internal/client/api"
	"github.com/nishant0207/online-filesharing/internal/client/models"
	"github.com/nishant0207/online-filesharing/internal/logging"
)

// DefaultLinkExpiryMinutes substitutes for an unset or non-positive public
// link expiry.
const DefaultLinkExpiryMinutes = 60

// SessionState is the slice of the session manager the store needs: whether
// catalog operations may run at all.
type SessionState interface {
	Active() bool
}

// Store is the catalog state owner.
type Store struct {
	api     api.Client
	session SessionState
	log     logging.Logger

	mu      sync.Mutex
	owned   []models.FileRecord
	shared  []models.FileRecord
	pending map[pendingKey]*pendingEntry
}

func NewStore(apiClient api.Client, session SessionState, log logging.Logger) *Store {
	return &Store{
		api:     apiClient,
		session: session,
		log:     log,
		pending: make(map[pendingKey]*pendingEntry),
	}
}

func (s *Store) requireSession() error {
	if !s.session.Active() {
		return api.ErrUnauthenticated
	}
	return nil
}

// RefreshOwned replaces the owned base collection with the server's listing.
// sort and filter are applied server-side; any client-side sort applied to a
// previous view does not survive the refresh.
func (s *Store) RefreshOwned(ctx context.Context, sort models.SortKey, filter models.FilterKey) error {
	if err := s.requireSession(); err != nil {
		return err
	}

	records, err := s.api.ListFiles(ctx, sort, filter)
	if err != nil {
		return fmt.Errorf("refreshing owned files: %w", err)
	}

	s.mu.Lock()
	s.owned = records
	s.mu.Unlock()
	return nil
}

// RefreshShared replaces the shared-with-me base collection.
func (s *Store) RefreshShared(ctx context.Context) error {
	if err := s.requireSession(); err != nil {
		return err
	}

	records, err := s.api.ListShared(ctx)
	if err != nil {
		return fmt.Errorf("refreshing shared files: %w", err)
	}

	s.mu.Lock()
	s.shared = records
	s.mu.Unlock()
	return nil
}

// Upload sends the payload and, once the server acknowledges, records the
// confirmed file in the owned base collection. Nothing is added
// speculatively.
func (s *Store) Upload(ctx context.Context, filename string, payload io.Reader) (models.FileRecord, error) {
	if err := s.requireSession(); err != nil {
		return models.FileRecord{}, err
	}

	id, locationURI, err := s.api.Upload(ctx, filename, payload)
	if err != nil {
		return models.FileRecord{}, fmt.Errorf("uploading %s: %w", filename, err)
	}

	record := models.FileRecord{
		ID:          id,
		Filename:    filename,
		LocationURI: locationURI,
		CreatedAt:   time.Now().UTC(),
		Ownership:   models.Owned,
	}
	s.recordUpload(record)
	s.log.Info(ctx, "file uploaded", "id", id, "filename", filename)
	return record, nil
}

func (s *Store) recordUpload(record models.FileRecord) {
	s.mu.Lock()
	s.owned = append(s.owned, record)
	s.mu.Unlock()
}

// DeleteOwned removes the file on the server and then from the owned base.
// There is no optimistic removal: the record stays visible until the server
// confirms, so a failed delete never hides a still-downloadable file.
func (s *Store) DeleteOwned(ctx context.Context, fileID string) error {
	if err := s.requireSession(); err != nil {
		return err
	}

	if err := s.api.Delete(ctx, fileID); err != nil {
		return fmt.Errorf("deleting file %s: %w", fileID, err)
	}

	s.mu.Lock()
	s.owned = slices.DeleteFunc(s.owned, func(r models.FileRecord) bool { return r.ID == fileID })
	s.mu.Unlock()
	return nil
}

// ToggleStar flips the starred flag of an owned file once the server
// confirms. At most one toggle per file is in flight; a second call while
// the first is outstanding gets ErrOperationInFlight instead of a
// duplicated request.
func (s *Store) ToggleStar(ctx context.Context, fileID string) error {
	if err := s.requireSession(); err != nil {
		return err
	}
	if err := s.beginOp(fileID, OpToggleStar); err != nil {
		return err
	}
	defer s.endOp(fileID, OpToggleStar)

	if err := s.api.ToggleStar(ctx, fileID); err != nil {
		return fmt.Errorf("toggling star on %s: %w", fileID, err)
	}

	s.mu.Lock()
	for i := range s.owned {
		if s.owned[i].ID == fileID {
			s.owned[i].Starred = !s.owned[i].Starred
			break
		}
	}
	s.mu.Unlock()
	return nil
}

// ShareWith grants the recipient access to the file. The owner's collection
// is not mutated; the grant shows up in the recipient's shared listing.
func (s *Store) ShareWith(ctx context.Context, fileID, recipientEmail string) error {
	if err := s.requireSession(); err != nil {
		return err
	}
	if strings.TrimSpace(recipientEmail) == "" {
		return fmt.Errorf("%w: recipient email required", api.ErrValidation)
	}
	if err := s.beginOp(fileID, OpShare); err != nil {
		return err
	}
	defer s.endOp(fileID, OpShare)

	if err := s.api.Share(ctx, fileID, recipientEmail); err != nil {
		return fmt.Errorf("sharing %s with %s: %w", fileID, recipientEmail, err)
	}
	s.log.Info(ctx, "file shared", "id", fileID, "recipient", recipientEmail)
	return nil
}

// GeneratePublicLink asks for a time-limited public URL. A non-positive
// expiry falls back to DefaultLinkExpiryMinutes. The result is kept as a
// transient pending-map entry, not as a file attribute.
func (s *Store) GeneratePublicLink(ctx context.Context, fileID string, expiryMinutes int) (models.PublicLink, error) {
	if err := s.requireSession(); err != nil {
		return models.PublicLink{}, err
	}
	if expiryMinutes <= 0 {
		expiryMinutes = DefaultLinkExpiryMinutes
	}
	if err := s.beginOp(fileID, OpLink); err != nil {
		return models.PublicLink{}, err
	}
	defer s.endOp(fileID, OpLink)

	link, err := s.api.PublicLink(ctx, fileID, expiryMinutes)
	if err != nil {
		return models.PublicLink{}, fmt.Errorf("generating link for %s: %w", fileID, err)
	}

	s.storeLink(fileID, link)
	return link, nil
}

// DownloadOwned returns a short-lived retrieval URL for an owned file.
func (s *Store) DownloadOwned(ctx context.Context, fileID string) (string, error) {
	return s.downloadFrom(ctx, fileID, models.Owned)
}

// DownloadShared returns a short-lived retrieval URL for a file shared with
// the user.
func (s *Store) DownloadShared(ctx context.Context, fileID string) (string, error) {
	return s.downloadFrom(ctx, fileID, models.SharedWithMe)
}

func (s *Store) downloadFrom(ctx context.Context, fileID string, ownership models.Ownership) (string, error) {
	if err := s.requireSession(); err != nil {
		return "", err
	}
	if !s.contains(fileID, ownership) {
		return "", fmt.Errorf("%w: unknown file %s", api.ErrValidation, fileID)
	}

	url, err := s.api.DownloadURL(ctx, fileID)
	if err != nil {
		return "", fmt.Errorf("requesting download URL for %s: %w", fileID, err)
	}
	return url, nil
}

func (s *Store) contains(fileID string, ownership models.Ownership) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	base := s.owned
	if ownership == models.SharedWithMe {
		base = s.shared
	}
	return slices.ContainsFunc(base, func(r models.FileRecord) bool { return r.ID == fileID })
}

// RemoveSharedGrant gives up the user's own access to a file shared with
// them, removing it from the shared base once confirmed.
func (s *Store) RemoveSharedGrant(ctx context.Context, fileID string) error {
	if err := s.requireSession(); err != nil {
		return err
	}

	if err := s.api.RemoveSharedGrant(ctx, fileID); err != nil {
		return fmt.Errorf("removing shared grant %s: %w", fileID, err)
	}

	s.mu.Lock()
	s.shared = slices.DeleteFunc(s.shared, func(r models.FileRecord) bool { return r.ID == fileID })
	s.mu.Unlock()
	return nil
}

// Owned returns a copy of the owned base collection.
func (s *Store) Owned() []models.FileRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.owned)
}

// Shared returns a copy of the shared base collection.
func (s *Store) Shared() []models.FileRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.shared)
}

// Reset drops both base collections and every pending entry. Wired to the
// session manager's OnEnd hook so no catalog data outlives the session.
func (s *Store) Reset() {
	s.mu.Lock()
	s.owned = nil
	s.shared = nil
	s.pending = make(map[pendingKey]*pendingEntry)
	s.mu.Unlock()
}
