package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"netbattle_api/internal/common"
	"netbattle_api/internal/domain/model"
	"netbattle_api/internal/domain/repository"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type fakeFolderRepo struct {
	repository.FolderRepository
	folders map[bson.ObjectID]*model.Folder
}

func newFakeFolderRepo() *fakeFolderRepo {
	return &fakeFolderRepo{folders: make(map[bson.ObjectID]*model.Folder)}
}

func (r *fakeFolderRepo) Create(ctx context.Context, folder *model.Folder) error {
	folder.ID = bson.NewObjectID()
	folder.Created = time.Now()
	r.folders[folder.ID] = folder
	return nil
}

func (r *fakeFolderRepo) FindForUser(ctx context.Context, id, userID bson.ObjectID) (*model.Folder, error) {
	folder, ok := r.folders[id]
	if !ok || folder.UserID != userID {
		return nil, common.ErrNotFound
	}
	return folder, nil
}

func (r *fakeFolderRepo) Update(ctx context.Context, folder *model.Folder) error {
	r.folders[folder.ID] = folder
	return nil
}

func (r *fakeFolderRepo) Delete(ctx context.Context, id, userID bson.ObjectID) error {
	folder, ok := r.folders[id]
	if !ok || folder.UserID != userID {
		return common.ErrNotFound
	}
	delete(r.folders, id)
	return nil
}

type fakePublicFolderRepo struct {
	repository.PublicFolderRepository
	folders map[bson.ObjectID]*model.PublicFolder
}

func newFakePublicFolderRepo() *fakePublicFolderRepo {
	return &fakePublicFolderRepo{folders: make(map[bson.ObjectID]*model.PublicFolder)}
}

func (r *fakePublicFolderRepo) Create(ctx context.Context, folder *model.PublicFolder) error {
	folder.ID = bson.NewObjectID()
	folder.Created = time.Now()
	r.folders[folder.ID] = folder
	return nil
}

func newFolderFixture() (*FolderService, *fakeFolderRepo, *fakePublicFolderRepo) {
	folders := newFakeFolderRepo()
	public := newFakePublicFolderRepo()
	svc := NewFolderService(folders, public, FolderLimits{MaxNameLength: 10, MaxCards: 3})
	return svc, folders, public
}

func cardHexes(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = bson.NewObjectID().Hex()
	}
	return out
}

func TestAddFolder_TruncatesName(t *testing.T) {
	svc, _, _ := newFolderFixture()
	ident, _ := testIdentity()

	folder, err := svc.Add(context.Background(), ident, FolderRequest{Name: strings.Repeat("a", 25)})
	require.NoError(t, err)
	require.Len(t, folder.Name, 10)
}

func TestAddFolder_CardCapEnforced(t *testing.T) {
	svc, _, _ := newFolderFixture()
	ident, _ := testIdentity()

	_, err := svc.Add(context.Background(), ident, FolderRequest{Name: "deck", Cards: cardHexes(4)})
	require.Error(t, err)
	require.True(t, errors.Is(err, common.ErrBadRequest))

	folder, err := svc.Add(context.Background(), ident, FolderRequest{Name: "deck", Cards: cardHexes(3)})
	require.NoError(t, err)
	require.Len(t, folder.Cards, 3)
}

func TestFolder_OwnerScoping(t *testing.T) {
	svc, _, _ := newFolderFixture()
	owner, _ := testIdentity()
	stranger, _ := testIdentity()

	folder, err := svc.Add(context.Background(), owner, FolderRequest{Name: "deck"})
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), stranger, folder.ID.Hex())
	require.ErrorIs(t, err, common.ErrNotFound)

	err = svc.Delete(context.Background(), stranger, folder.ID.Hex())
	require.ErrorIs(t, err, common.ErrNotFound)

	got, err := svc.Get(context.Background(), owner, folder.ID.Hex())
	require.NoError(t, err)
	require.Equal(t, folder.ID, got.ID)
}

func TestAddPublicFolder_SlugsName(t *testing.T) {
	svc, _, public := newFolderFixture()
	ident, _ := testIdentity()

	folder, err := svc.AddPublic(context.Background(), ident, FolderRequest{Name: "Hot Deck!"})
	require.NoError(t, err)
	require.Equal(t, "hot-deck", folder.Slug)
	require.Len(t, public.folders, 1)
}
