package catalog

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/nishant0207/online-filesharing/internal/client/api"
	"github.com/nishant0207/online-filesharing/internal/client/models"
	"github.com/nishant0207/online-filesharing/internal/logging"
)

// ---- fakes ----

type fakeSession struct{ active bool }

func (f *fakeSession) Active() bool { return f.active }

type fakeClient struct {
	mu sync.Mutex

	ListFilesRet []models.FileRecord
	ListFilesErr error
	LastSort     models.SortKey
	LastFilter   models.FilterKey

	ListSharedRet []models.FileRecord
	ListSharedErr error

	UploadID  string
	UploadURL string
	UploadErr error

	DeleteErr error

	ShareErr   error
	ShareCalls int
	LastShared string

	LinkRet        models.PublicLink
	LinkErr        error
	LastLinkExpiry int

	ToggleErr   error
	ToggleCalls int
	ToggleGate  chan struct{} // when set, ToggleStar blocks until the gate closes

	RemoveGrantErr error

	DownloadRet string
	DownloadErr error
}

func (f *fakeClient) Login(ctx context.Context, email, password string) (string, error) {
	return "", nil
}
func (f *fakeClient) Signup(ctx context.Context, username, email, password string) error { return nil }
func (f *fakeClient) SetToken(token string)                                              {}

func (f *fakeClient) ListFiles(ctx context.Context, sort models.SortKey, filter models.FilterKey) ([]models.FileRecord, error) {
	f.mu.Lock()
	f.LastSort, f.LastFilter = sort, filter
	f.mu.Unlock()
	return f.ListFilesRet, f.ListFilesErr
}

func (f *fakeClient) ListShared(ctx context.Context) ([]models.FileRecord, error) {
	return f.ListSharedRet, f.ListSharedErr
}

func (f *fakeClient) Upload(ctx context.Context, filename string, payload io.Reader) (string, string, error) {
	return f.UploadID, f.UploadURL, f.UploadErr
}

func (f *fakeClient) Delete(ctx context.Context, fileID string) error { return f.DeleteErr }

func (f *fakeClient) Share(ctx context.Context, fileID, email string) error {
	f.mu.Lock()
	f.ShareCalls++
	f.LastShared = email
	f.mu.Unlock()
	return f.ShareErr
}

func (f *fakeClient) PublicLink(ctx context.Context, fileID string, expiryMinutes int) (models.PublicLink, error) {
	f.mu.Lock()
	f.LastLinkExpiry = expiryMinutes
	f.mu.Unlock()
	return f.LinkRet, f.LinkErr
}

func (f *fakeClient) ToggleStar(ctx context.Context, fileID string) error {
	f.mu.Lock()
	f.ToggleCalls++
	gate := f.ToggleGate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	return f.ToggleErr
}

func (f *fakeClient) RemoveSharedGrant(ctx context.Context, fileID string) error {
	return f.RemoveGrantErr
}

func (f *fakeClient) DownloadURL(ctx context.Context, fileID string) (string, error) {
	return f.DownloadRet, f.DownloadErr
}

func (f *fakeClient) shareCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ShareCalls
}

func (f *fakeClient) toggleCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ToggleCalls
}

func newStore(fc *fakeClient, active bool) *Store {
	return NewStore(fc, &fakeSession{active: active}, logging.NewText(io.Discard, slog.LevelError))
}

func ownedFixture() []models.FileRecord {
	return []models.FileRecord{
		{ID: "1", Filename: "a.txt", CreatedAt: time.Now().UTC(), Ownership: models.Owned},
		{ID: "2", Filename: "b.txt", CreatedAt: time.Now().UTC(), Ownership: models.Owned},
	}
}

// ---- tests ----

func TestOperations_RequireActiveSession(t *testing.T) {
	fc := &fakeClient{}
	s := newStore(fc, false)
	ctx := context.Background()

	require.ErrorIs(t, s.RefreshOwned(ctx, models.SortNewest, models.FilterAll), api.ErrUnauthenticated)
	require.ErrorIs(t, s.RefreshShared(ctx), api.ErrUnauthenticated)
	_, err := s.Upload(ctx, "a.txt", bytes.NewReader(nil))
	require.ErrorIs(t, err, api.ErrUnauthenticated)
	require.ErrorIs(t, s.DeleteOwned(ctx, "1"), api.ErrUnauthenticated)
	require.ErrorIs(t, s.ToggleStar(ctx, "1"), api.ErrUnauthenticated)
	require.ErrorIs(t, s.ShareWith(ctx, "1", "bob@example.com"), api.ErrUnauthenticated)
	_, err = s.GeneratePublicLink(ctx, "1", 30)
	require.ErrorIs(t, err, api.ErrUnauthenticated)
	_, err = s.DownloadOwned(ctx, "1")
	require.ErrorIs(t, err, api.ErrUnauthenticated)
	require.ErrorIs(t, s.RemoveSharedGrant(ctx, "1"), api.ErrUnauthenticated)

	require.Zero(t, fc.shareCalls(), "no request may be issued while logged out")
	require.Zero(t, fc.toggleCalls())
}

func TestRefreshOwned_ReplacesBaseAndForwardsKeys(t *testing.T) {
	fc := &fakeClient{ListFilesRet: ownedFixture()}
	s := newStore(fc, true)

	require.NoError(t, s.RefreshOwned(context.Background(), models.SortAlphabetical, models.FilterUploaded))

	require.Len(t, s.Owned(), 2)
	require.Equal(t, models.SortAlphabetical, fc.LastSort)
	require.Equal(t, models.FilterUploaded, fc.LastFilter)

	// A second refresh replaces, not appends.
	fc.ListFilesRet = ownedFixture()[:1]
	require.NoError(t, s.RefreshOwned(context.Background(), models.SortNewest, models.FilterAll))
	require.Len(t, s.Owned(), 1)
}

func TestRefreshOwned_FailureLeavesBaseUntouched(t *testing.T) {
	fc := &fakeClient{ListFilesRet: ownedFixture()}
	s := newStore(fc, true)
	require.NoError(t, s.RefreshOwned(context.Background(), models.SortNewest, models.FilterAll))

	fc.ListFilesErr = api.ErrUnavailable
	require.Error(t, s.RefreshOwned(context.Background(), models.SortNewest, models.FilterAll))
	require.Len(t, s.Owned(), 2)
}

func TestUpload_AppendsConfirmedRecord(t *testing.T) {
	id := uuid.NewString()
	fc := &fakeClient{UploadID: id, UploadURL: "https://bucket/c.txt"}
	s := newStore(fc, true)

	record, err := s.Upload(context.Background(), "c.txt", bytes.NewReader([]byte("payload")))
	require.NoError(t, err)
	require.Equal(t, id, record.ID)
	require.Equal(t, "https://bucket/c.txt", record.LocationURI)
	require.Equal(t, models.Owned, record.Ownership)

	owned := s.Owned()
	require.Len(t, owned, 1)
	require.Equal(t, id, owned[0].ID)
}

func TestUpload_FailureAddsNothing(t *testing.T) {
	fc := &fakeClient{UploadErr: api.ErrUnavailable}
	s := newStore(fc, true)

	_, err := s.Upload(context.Background(), "c.txt", bytes.NewReader(nil))
	require.ErrorIs(t, err, api.ErrUnavailable)
	require.Empty(t, s.Owned())
}

func TestDeleteOwned_RemovesOnSuccess(t *testing.T) {
	fc := &fakeClient{ListFilesRet: ownedFixture()}
	s := newStore(fc, true)
	require.NoError(t, s.RefreshOwned(context.Background(), models.SortNewest, models.FilterAll))

	require.NoError(t, s.DeleteOwned(context.Background(), "1"))

	owned := s.Owned()
	require.Len(t, owned, 1)
	require.Equal(t, "2", owned[0].ID)
}

func TestDeleteOwned_FailureLeavesRecordInPlace(t *testing.T) {
	fc := &fakeClient{ListFilesRet: ownedFixture()}
	s := newStore(fc, true)
	require.NoError(t, s.RefreshOwned(context.Background(), models.SortNewest, models.FilterAll))

	fc.DeleteErr = api.ErrUnavailable
	require.Error(t, s.DeleteOwned(context.Background(), "1"))

	owned := s.Owned()
	require.Len(t, owned, 2)
	require.Equal(t, "1", owned[0].ID, "failed delete must not remove the record")
}

func TestToggleStar_FlipsConfirmedRecord(t *testing.T) {
	fc := &fakeClient{ListFilesRet: ownedFixture()}
	s := newStore(fc, true)
	require.NoError(t, s.RefreshOwned(context.Background(), models.SortNewest, models.FilterAll))

	require.NoError(t, s.ToggleStar(context.Background(), "1"))

	owned := s.Owned()
	require.True(t, owned[0].Starred)
	require.False(t, owned[1].Starred, "other records must be untouched")

	require.NoError(t, s.ToggleStar(context.Background(), "1"))
	require.False(t, s.Owned()[0].Starred)
}

func TestToggleStar_FailureLeavesFlag(t *testing.T) {
	fc := &fakeClient{ListFilesRet: ownedFixture(), ToggleErr: api.ErrUnavailable}
	s := newStore(fc, true)
	require.NoError(t, s.RefreshOwned(context.Background(), models.SortNewest, models.FilterAll))

	require.Error(t, s.ToggleStar(context.Background(), "1"))
	require.False(t, s.Owned()[0].Starred)
}

func TestToggleStar_SecondCallWhileInFlightIsRejected(t *testing.T) {
	gate := make(chan struct{})
	fc := &fakeClient{ListFilesRet: ownedFixture(), ToggleGate: gate}
	s := newStore(fc, true)
	require.NoError(t, s.RefreshOwned(context.Background(), models.SortNewest, models.FilterAll))

	done := make(chan error, 1)
	go func() { done <- s.ToggleStar(context.Background(), "1") }()

	require.Eventually(t, func() bool { return s.InFlight("1", OpToggleStar) },
		time.Second, time.Millisecond)

	// Double-click while the first request is still outstanding.
	require.ErrorIs(t, s.ToggleStar(context.Background(), "1"), ErrOperationInFlight)

	close(gate)
	require.NoError(t, <-done)

	require.Equal(t, 1, fc.toggleCalls(), "the duplicate must never reach the network")
	require.False(t, s.InFlight("1", OpToggleStar))
}

func TestShareWith_EmptyRecipient_FailsBeforeNetwork(t *testing.T) {
	fc := &fakeClient{}
	s := newStore(fc, true)

	err := s.ShareWith(context.Background(), "1", "   ")
	require.ErrorIs(t, err, api.ErrValidation)
	require.Zero(t, fc.shareCalls())
}

func TestShareWith_SuccessDoesNotMutateOwned(t *testing.T) {
	fc := &fakeClient{ListFilesRet: ownedFixture()}
	s := newStore(fc, true)
	require.NoError(t, s.RefreshOwned(context.Background(), models.SortNewest, models.FilterAll))
	before := s.Owned()

	require.NoError(t, s.ShareWith(context.Background(), "1", "bob@example.com"))

	require.Equal(t, before, s.Owned())
	require.Equal(t, "bob@example.com", fc.LastShared)
	require.False(t, s.InFlight("1", OpShare))
}

func TestGeneratePublicLink_DefaultsNonPositiveExpiry(t *testing.T) {
	fc := &fakeClient{LinkRet: models.PublicLink{URL: "https://pub/x", ExpiryMinutes: 60}}
	s := newStore(fc, true)

	link, err := s.GeneratePublicLink(context.Background(), "5", 0)
	require.NoError(t, err)
	require.Equal(t, "https://pub/x", link.URL)
	require.Equal(t, DefaultLinkExpiryMinutes, fc.LastLinkExpiry)

	_, err = s.GeneratePublicLink(context.Background(), "5", -10)
	require.NoError(t, err)
	require.Equal(t, DefaultLinkExpiryMinutes, fc.LastLinkExpiry)
}

func TestGeneratePublicLink_KeepsTransientResult(t *testing.T) {
	fc := &fakeClient{LinkRet: models.PublicLink{URL: "https://pub/x", ExpiryMinutes: 30}}
	s := newStore(fc, true)

	_, err := s.GeneratePublicLink(context.Background(), "7", 30)
	require.NoError(t, err)

	link, ok := s.Link("7")
	require.True(t, ok)
	require.Equal(t, "https://pub/x", link.URL)
	require.False(t, s.InFlight("7", OpLink))
}

func TestGeneratePublicLink_FailureStoresNothing(t *testing.T) {
	fc := &fakeClient{LinkErr: api.ErrUnavailable}
	s := newStore(fc, true)

	_, err := s.GeneratePublicLink(context.Background(), "7", 30)
	require.Error(t, err)

	_, ok := s.Link("7")
	require.False(t, ok)
}

func TestDownloadOwned_UnknownFile(t *testing.T) {
	fc := &fakeClient{DownloadRet: "https://signed/x"}
	s := newStore(fc, true)

	_, err := s.DownloadOwned(context.Background(), "nope")
	require.ErrorIs(t, err, api.ErrValidation)
}

func TestDownloadOwned_ReturnsURL(t *testing.T) {
	fc := &fakeClient{ListFilesRet: ownedFixture(), DownloadRet: "https://signed/x"}
	s := newStore(fc, true)
	require.NoError(t, s.RefreshOwned(context.Background(), models.SortNewest, models.FilterAll))

	url, err := s.DownloadOwned(context.Background(), "1")
	require.NoError(t, err)
	require.Equal(t, "https://signed/x", url)
}

func TestRemoveSharedGrant_RemovesFromSharedBase(t *testing.T) {
	fc := &fakeClient{ListSharedRet: []models.FileRecord{
		{ID: "9", Filename: "from-bob.pdf", Ownership: models.SharedWithMe},
	}}
	s := newStore(fc, true)
	require.NoError(t, s.RefreshShared(context.Background()))

	require.NoError(t, s.RemoveSharedGrant(context.Background(), "9"))
	require.Empty(t, s.Shared())
}

func TestRemoveSharedGrant_FailureLeavesBase(t *testing.T) {
	fc := &fakeClient{
		ListSharedRet:  []models.FileRecord{{ID: "9", Ownership: models.SharedWithMe}},
		RemoveGrantErr: api.ErrUnavailable,
	}
	s := newStore(fc, true)
	require.NoError(t, s.RefreshShared(context.Background()))

	require.Error(t, s.RemoveSharedGrant(context.Background(), "9"))
	require.Len(t, s.Shared(), 1)
}

func TestReset_DropsBasesAndPending(t *testing.T) {
	fc := &fakeClient{
		ListFilesRet:  ownedFixture(),
		ListSharedRet: []models.FileRecord{{ID: "9"}},
		LinkRet:       models.PublicLink{URL: "https://pub/x"},
	}
	s := newStore(fc, true)
	require.NoError(t, s.RefreshOwned(context.Background(), models.SortNewest, models.FilterAll))
	require.NoError(t, s.RefreshShared(context.Background()))
	_, err := s.GeneratePublicLink(context.Background(), "1", 15)
	require.NoError(t, err)

	s.Reset()

	require.Empty(t, s.Owned())
	require.Empty(t, s.Shared())
	_, ok := s.Link("1")
	require.False(t, ok)
}

func TestErrorsFromServer_PropagateWrapped(t *testing.T) {
	fc := &fakeClient{ShareErr: errors.New("recipient not found")}
	s := newStore(fc, true)

	err := s.ShareWith(context.Background(), "1", "ghost@example.com")
	require.Error(t, err)
	require.Contains(t, err.Error(), "recipient not found")
}
