package catalog

import (
	"errors"

	"github.com/nishant0207/online-filesharing/internal/client/models"
)

// ErrOperationInFlight is returned when an operation of the same kind is
// already running for the same file. The caller retries after it resolves.
var ErrOperationInFlight = errors.New("operation already in progress")

// OpKind names a tracked per-file asynchronous operation.
type OpKind string

const (
	OpShare      OpKind = "share"
	OpLink       OpKind = "generate-link"
	OpToggleStar OpKind = "toggle-star"
)

// pendingKey identifies one tracked operation: at most one entry per key is
// in flight at any time.
type pendingKey struct {
	FileID string
	Kind   OpKind
}

// pendingEntry is the ephemeral state of one operation: the in-flight flag
// and, for link generation, the transient result once resolved.
type pendingEntry struct {
	inFlight bool
	link     *models.PublicLink
}

// beginOp claims the (fileID, kind) slot. It is the duplicate-submission
// guard: a second caller gets ErrOperationInFlight while the first request
// is still outstanding.
func (s *Store) beginOp(fileID string, kind OpKind) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := pendingKey{FileID: fileID, Kind: kind}
	if e, ok := s.pending[key]; ok && e.inFlight {
		return ErrOperationInFlight
	}
	s.pending[key] = &pendingEntry{inFlight: true}
	return nil
}

// endOp releases the slot. Entries with no transient result are dropped;
// a resolved link stays readable until overwritten or the session ends.
func (s *Store) endOp(fileID string, kind OpKind) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := pendingKey{FileID: fileID, Kind: kind}
	e, ok := s.pending[key]
	if !ok {
		return
	}
	e.inFlight = false
	if e.link == nil {
		delete(s.pending, key)
	}
}

func (s *Store) storeLink(fileID string, link models.PublicLink) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := pendingKey{FileID: fileID, Kind: OpLink}
	if e, ok := s.pending[key]; ok {
		e.link = &link
		return
	}
	s.pending[key] = &pendingEntry{link: &link}
}

// InFlight reports whether an operation of the given kind is outstanding
// for the file.
func (s *Store) InFlight(fileID string, kind OpKind) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.pending[pendingKey{FileID: fileID, Kind: kind}]
	return ok && e.inFlight
}

// Link returns the last generated public link for the file, if any.
func (s *Store) Link(fileID string) (models.PublicLink, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.pending[pendingKey{FileID: fileID, Kind: OpLink}]
	if !ok || e.link == nil {
		return models.PublicLink{}, false
	}
	return *e.link, true
}
