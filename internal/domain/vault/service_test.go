package vault

import (
	"context"
	"testing"
	"time"

	"filevault/internal/app/server/crypto"
	"filevault/internal/domain/access"
	"filevault/internal/domain/file"
	"filevault/internal/domain/share"
	"filevault/internal/domain/user"
	"filevault/internal/infrastructure/blob"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

// In-memory fakes: the vault scenarios need real state flowing between
// upload and download, which canned mock returns cannot express.

type memStore struct {
	objects map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{objects: make(map[string][]byte)}
}

func (s *memStore) Put(_ context.Context, key string, data []byte) error {
	s.objects[key] = data
	return nil
}

func (s *memStore) Get(_ context.Context, key string) ([]byte, error) {
	data, ok := s.objects[key]
	if !ok {
		return nil, blob.ErrNotExist
	}
	return data, nil
}

func (s *memStore) Delete(_ context.Context, key string) error {
	delete(s.objects, key)
	return nil
}

type memFiles struct {
	nextID int
	rows   map[int]file.File
}

func newMemFiles() *memFiles {
	return &memFiles{nextID: 1, rows: make(map[int]file.File)}
}

func (r *memFiles) Create(_ context.Context, f file.File) (int, error) {
	f.ID = r.nextID
	r.nextID++
	r.rows[f.ID] = f
	return f.ID, nil
}

func (r *memFiles) FindByID(_ context.Context, id int) (file.File, error) {
	f, ok := r.rows[id]
	if !ok {
		return file.File{}, file.ErrNotFound
	}
	return f, nil
}

func (r *memFiles) ListOwned(_ context.Context, ownerID int) ([]file.File, error) {
	var out []file.File
	for _, f := range r.rows {
		if f.OwnerID == ownerID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *memFiles) ListAll(_ context.Context) ([]file.File, error) {
	var out []file.File
	for _, f := range r.rows {
		out = append(out, f)
	}
	return out, nil
}

func (r *memFiles) ListSharedWith(_ context.Context, _ int, _ time.Time) ([]file.SharedFile, error) {
	return nil, nil
}

func (r *memFiles) Delete(_ context.Context, id int) error {
	if _, ok := r.rows[id]; !ok {
		return file.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

type memShares struct {
	grants []share.Share
}

func (r *memShares) Create(_ context.Context, s share.Share) (int, error) {
	r.grants = append(r.grants, s)
	return len(r.grants), nil
}

func (r *memShares) FindByID(_ context.Context, id int) (share.Share, error) {
	for _, g := range r.grants {
		if g.ID == id {
			return g, nil
		}
	}
	return share.Share{}, share.ErrNotFound
}

// FindForGrantee mirrors the SQL repository's contract: the strongest
// unexpired grant wins, download beats view, later expiry breaks ties.
func (r *memShares) FindForGrantee(_ context.Context, fileID, granteeID int) (share.Share, error) {
	now := time.Now()
	var best *share.Share
	for i := range r.grants {
		g := r.grants[i]
		if g.FileID != fileID || g.GranteeID == nil || *g.GranteeID != granteeID || g.Expired(now) {
			continue
		}
		if best == nil || stronger(g, *best) {
			best = &g
		}
	}
	if best == nil {
		return share.Share{}, share.ErrNotFound
	}
	return *best, nil
}

func stronger(a, b share.Share) bool {
	if a.Tier != b.Tier {
		return a.Tier.Allows(b.Tier)
	}
	return a.ExpiresAt.After(b.ExpiresAt)
}

func (r *memShares) FindByToken(_ context.Context, token string) (share.Share, error) {
	for _, g := range r.grants {
		if g.Token != nil && *g.Token == token {
			return g, nil
		}
	}
	return share.Share{}, share.ErrNotFound
}

func (r *memShares) ListForFile(_ context.Context, fileID int) ([]share.Share, error) {
	var out []share.Share
	for _, g := range r.grants {
		if g.FileID == fileID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *memShares) Delete(_ context.Context, id int) error {
	for i, g := range r.grants {
		if g.ID == id {
			r.grants = append(r.grants[:i], r.grants[i+1:]...)
			return nil
		}
	}
	return share.ErrNotFound
}

type fixture struct {
	service *Service
	files   *memFiles
	shares  *memShares
	store   *memStore
}

func newFixture(adminEscrow bool) *fixture {
	files := newMemFiles()
	shares := &memShares{}
	store := newMemStore()
	decider := access.NewDecider(shares, slog.Default())

	return &fixture{
		service: NewService(files, decider, store, adminEscrow, slog.Default()),
		files:   files,
		shares:  shares,
		store:   store,
	}
}

var (
	alice = user.User{ID: 1, Username: "alice", Role: user.RoleUser}
	bob   = user.User{ID: 2, Username: "bob", Role: user.RoleUser}
	root  = user.User{ID: 3, Username: "root", Role: user.RoleAdmin}
)

func TestService_Upload_Derived_RoundTrip(t *testing.T) {
	fx := newFixture(true)
	plaintext := []byte("hello world!")

	id, err := fx.service.Upload(context.Background(), UploadRequest{
		OwnerID: alice.ID, Name: "doc.txt", Data: plaintext, Password: "pw1",
	})
	require.NoError(t, err)

	f := fx.files.rows[id]
	assert.Equal(t, file.ModeDerived, f.Mode)
	assert.Len(t, f.Salt, 16)
	assert.Len(t, f.KeyData, 32)
	// The blob must not hold the plaintext.
	assert.NotEqual(t, plaintext, fx.store.objects[f.StorageKey])

	content, err := fx.service.Access(context.Background(), access.ForUser(alice), id, share.TierDownload, "pw1")
	require.NoError(t, err)
	assert.Equal(t, plaintext, content.Data)
	assert.Equal(t, "doc.txt", content.Name)
}

func TestService_Access_WrongPassword(t *testing.T) {
	fx := newFixture(true)

	id, err := fx.service.Upload(context.Background(), UploadRequest{
		OwnerID: alice.ID, Name: "doc.txt", Data: []byte("secret"), Password: "pw1",
	})
	require.NoError(t, err)

	// Wrong password and missing password are indistinguishable.
	_, err = fx.service.Access(context.Background(), access.ForUser(alice), id, share.TierDownload, "pw2")
	assert.ErrorIs(t, err, crypto.ErrIntegrity)

	_, err = fx.service.Access(context.Background(), access.ForUser(alice), id, share.TierDownload, "")
	assert.ErrorIs(t, err, crypto.ErrIntegrity)
}

func TestService_Access_NoGrant(t *testing.T) {
	fx := newFixture(true)

	id, err := fx.service.Upload(context.Background(), UploadRequest{
		OwnerID: alice.ID, Name: "doc.txt", Data: []byte("secret"), Password: "pw1",
	})
	require.NoError(t, err)

	_, err = fx.service.Access(context.Background(), access.ForUser(bob), id, share.TierView, "pw1")
	assert.ErrorIs(t, err, access.ErrDenied)
}

func TestService_Access_GranteeTier(t *testing.T) {
	fx := newFixture(true)

	id, err := fx.service.Upload(context.Background(), UploadRequest{
		OwnerID: alice.ID, Name: "doc.txt", Data: []byte("secret"), Password: "pw1",
	})
	require.NoError(t, err)

	granteeID := bob.ID
	fx.shares.grants = append(fx.shares.grants, share.Share{
		ID: 1, FileID: id, GrantedBy: alice.ID, GranteeID: &granteeID,
		Tier: share.TierView, ExpiresAt: time.Now().Add(time.Hour),
	})

	_, err = fx.service.Access(context.Background(), access.ForUser(bob), id, share.TierView, "pw1")
	assert.NoError(t, err)

	_, err = fx.service.Access(context.Background(), access.ForUser(bob), id, share.TierDownload, "pw1")
	assert.ErrorIs(t, err, access.ErrDenied)
}

func TestService_Access_StrongestGrantWins(t *testing.T) {
	fx := newFixture(true)

	id, err := fx.service.Upload(context.Background(), UploadRequest{
		OwnerID: alice.ID, Name: "doc.txt", Data: []byte("secret"), Password: "pw1",
	})
	require.NoError(t, err)
	granteeID := bob.ID

	t.Run("newer view grant does not shadow an older download grant", func(t *testing.T) {
		fx.shares.grants = []share.Share{
			{ID: 1, FileID: id, GrantedBy: alice.ID, GranteeID: &granteeID,
				Tier: share.TierDownload, ExpiresAt: time.Now().Add(time.Hour)},
			{ID: 2, FileID: id, GrantedBy: alice.ID, GranteeID: &granteeID,
				Tier: share.TierView, ExpiresAt: time.Now().Add(2 * time.Hour)},
		}

		_, err := fx.service.Access(context.Background(), access.ForUser(bob), id, share.TierDownload, "pw1")
		assert.NoError(t, err)
	})

	t.Run("newer expired download grant does not shadow a valid view grant", func(t *testing.T) {
		fx.shares.grants = []share.Share{
			{ID: 1, FileID: id, GrantedBy: alice.ID, GranteeID: &granteeID,
				Tier: share.TierView, ExpiresAt: time.Now().Add(time.Hour)},
			{ID: 2, FileID: id, GrantedBy: alice.ID, GranteeID: &granteeID,
				Tier: share.TierDownload, ExpiresAt: time.Now().Add(-time.Minute)},
		}

		_, err := fx.service.Access(context.Background(), access.ForUser(bob), id, share.TierView, "pw1")
		assert.NoError(t, err)

		_, err = fx.service.Access(context.Background(), access.ForUser(bob), id, share.TierDownload, "pw1")
		assert.ErrorIs(t, err, access.ErrDenied)
	})
}

func TestService_AccessShared_Token(t *testing.T) {
	fx := newFixture(true)

	id, err := fx.service.Upload(context.Background(), UploadRequest{
		OwnerID: alice.ID, Name: "doc.txt", Data: []byte("secret"), Password: "pw1",
	})
	require.NoError(t, err)

	token := "link-token"
	fx.shares.grants = append(fx.shares.grants, share.Share{
		ID: 1, FileID: id, GrantedBy: alice.ID, Token: &token,
		Tier: share.TierView, ExpiresAt: time.Now().Add(time.Hour),
	})

	content, err := fx.service.AccessShared(context.Background(), token, share.TierView, "pw1")
	require.NoError(t, err)
	assert.Equal(t, []byte("secret"), content.Data)

	_, err = fx.service.AccessShared(context.Background(), token, share.TierDownload, "pw1")
	assert.ErrorIs(t, err, access.ErrDenied)

	_, err = fx.service.AccessShared(context.Background(), "bogus", share.TierView, "pw1")
	assert.ErrorIs(t, err, access.ErrDenied)
}

func TestService_AccessShared_ExpiredToken(t *testing.T) {
	fx := newFixture(true)

	id, err := fx.service.Upload(context.Background(), UploadRequest{
		OwnerID: alice.ID, Name: "doc.txt", Data: []byte("secret"), Password: "pw1",
	})
	require.NoError(t, err)

	token := "stale"
	fx.shares.grants = append(fx.shares.grants, share.Share{
		ID: 1, FileID: id, Token: &token,
		Tier: share.TierDownload, ExpiresAt: time.Now().Add(-time.Minute),
	})

	_, err = fx.service.AccessShared(context.Background(), token, share.TierView, "pw1")
	assert.ErrorIs(t, err, access.ErrDenied)
}

func TestService_Upload_Opaque_Verbatim(t *testing.T) {
	fx := newFixture(true)
	ciphertext := []byte{0xde, 0xad, 0xbe, 0xef}
	nonce := make([]byte, 12)
	salt := []byte("client-salt-0000")

	id, err := fx.service.Upload(context.Background(), UploadRequest{
		OwnerID: alice.ID, Name: "blob.bin", Data: ciphertext, Nonce: nonce, Salt: salt,
	})
	require.NoError(t, err)

	f := fx.files.rows[id]
	assert.Equal(t, file.ModeOpaque, f.Mode)
	assert.Equal(t, ciphertext, fx.store.objects[f.StorageKey], "stored verbatim")

	// No password: the server cannot and must not decrypt.
	content, err := fx.service.Access(context.Background(), access.ForUser(alice), id, share.TierDownload, "")
	require.NoError(t, err)
	assert.Equal(t, ciphertext, content.Data)
	assert.Equal(t, nonce, content.Nonce)
	assert.Equal(t, salt, content.Salt)
}

func TestService_Upload_Validation(t *testing.T) {
	fx := newFixture(true)

	tests := []struct {
		name string
		req  UploadRequest
	}{
		{
			name: "password and client params together",
			req: UploadRequest{
				OwnerID: 1, Name: "x", Data: []byte("d"),
				Password: "pw", Nonce: make([]byte, 12), Salt: []byte("s"),
			},
		},
		{
			name: "neither password nor client params",
			req:  UploadRequest{OwnerID: 1, Name: "x", Data: []byte("d")},
		},
		{
			name: "nonce of the wrong length",
			req: UploadRequest{
				OwnerID: 1, Name: "x", Data: []byte("d"),
				Nonce: make([]byte, 8), Salt: []byte("s"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fx.service.Upload(context.Background(), tt.req)
			assert.Error(t, err)
		})
	}
	assert.Empty(t, fx.store.objects, "nothing stored for rejected uploads")
}

func TestService_AdminEscrow(t *testing.T) {
	t.Run("escrow on, admin reads without password", func(t *testing.T) {
		fx := newFixture(true)

		id, err := fx.service.Upload(context.Background(), UploadRequest{
			OwnerID: alice.ID, Name: "doc.txt", Data: []byte("secret"), Password: "pw1",
		})
		require.NoError(t, err)

		content, err := fx.service.Access(context.Background(), access.ForUser(root), id, share.TierDownload, "")
		require.NoError(t, err)
		assert.Equal(t, []byte("secret"), content.Data)
	})

	t.Run("escrow off, admin needs the password", func(t *testing.T) {
		fx := newFixture(false)

		id, err := fx.service.Upload(context.Background(), UploadRequest{
			OwnerID: alice.ID, Name: "doc.txt", Data: []byte("secret"), Password: "pw1",
		})
		require.NoError(t, err)

		_, err = fx.service.Access(context.Background(), access.ForUser(root), id, share.TierDownload, "")
		assert.ErrorIs(t, err, crypto.ErrIntegrity)

		content, err := fx.service.Access(context.Background(), access.ForUser(root), id, share.TierDownload, "pw1")
		require.NoError(t, err)
		assert.Equal(t, []byte("secret"), content.Data)
	})
}

func TestService_Delete(t *testing.T) {
	fx := newFixture(true)

	id, err := fx.service.Upload(context.Background(), UploadRequest{
		OwnerID: alice.ID, Name: "doc.txt", Data: []byte("secret"), Password: "pw1",
	})
	require.NoError(t, err)
	key := fx.files.rows[id].StorageKey

	err = fx.service.Delete(context.Background(), access.ForUser(bob), id)
	assert.ErrorIs(t, err, access.ErrDenied)

	require.NoError(t, fx.service.Delete(context.Background(), access.ForUser(alice), id))
	assert.NotContains(t, fx.store.objects, key)
	assert.NotContains(t, fx.files.rows, id)

	err = fx.service.Delete(context.Background(), access.ForUser(alice), id)
	assert.ErrorIs(t, err, file.ErrNotFound)
}

func TestService_Delete_Admin(t *testing.T) {
	fx := newFixture(true)

	id, err := fx.service.Upload(context.Background(), UploadRequest{
		OwnerID: alice.ID, Name: "doc.txt", Data: []byte("secret"), Password: "pw1",
	})
	require.NoError(t, err)

	assert.NoError(t, fx.service.Delete(context.Background(), access.ForUser(root), id))
}

func TestService_PurgeOwner(t *testing.T) {
	fx := newFixture(true)

	for i := 0; i < 3; i++ {
		_, err := fx.service.Upload(context.Background(), UploadRequest{
			OwnerID: alice.ID, Name: "doc.txt", Data: []byte("secret"), Password: "pw1",
		})
		require.NoError(t, err)
	}
	bobID, err := fx.service.Upload(context.Background(), UploadRequest{
		OwnerID: bob.ID, Name: "keep.txt", Data: []byte("keep"), Password: "pw2",
	})
	require.NoError(t, err)

	require.NoError(t, fx.service.PurgeOwner(context.Background(), alice.ID))

	assert.Len(t, fx.files.rows, 1)
	assert.Len(t, fx.store.objects, 1)
	assert.Contains(t, fx.files.rows, bobID)
}

func TestService_List(t *testing.T) {
	fx := newFixture(true)

	_, err := fx.service.Upload(context.Background(), UploadRequest{
		OwnerID: alice.ID, Name: "a.txt", Data: []byte("a"), Password: "pw",
	})
	require.NoError(t, err)
	_, err = fx.service.Upload(context.Background(), UploadRequest{
		OwnerID: bob.ID, Name: "b.txt", Data: []byte("b"), Password: "pw",
	})
	require.NoError(t, err)

	listing, err := fx.service.List(context.Background(), alice)
	require.NoError(t, err)
	assert.Len(t, listing.Owned, 1)

	// Admins see everything.
	listing, err = fx.service.List(context.Background(), root)
	require.NoError(t, err)
	assert.Len(t, listing.Owned, 2)
}
