package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"netbattle_api/internal/common"
	"netbattle_api/internal/common/security"
	"netbattle_api/internal/domain/model"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

const testMaxItemName = 20

func newKeyItemFixture() (*KeyItemService, *fakeKeyItemRepo, *security.Mask) {
	repo := newFakeKeyItemRepo()
	mask := security.NewMask([]byte("test-signing-key"), time.Minute)
	return NewKeyItemService(repo, mask, testMaxItemName), repo, mask
}

func testIdentity() (model.Identity, bson.ObjectID) {
	id := bson.NewObjectID()
	return model.Identity{Username: "lan", UserID: id.Hex()}, id
}

func TestAddKeyItem_TruncatesNameToMax(t *testing.T) {
	svc, _, _ := newKeyItemFixture()
	ident, _ := testIdentity()

	long := strings.Repeat("x", testMaxItemName+15)
	item, err := svc.Add(context.Background(), ident, KeyItemRequest{Name: long})
	require.NoError(t, err)
	require.Len(t, item.Name, testMaxItemName)
	require.Equal(t, long[:testMaxItemName], item.Name)
}

func TestAddKeyItem_DuplicateNamePerCreatorRejected(t *testing.T) {
	svc, _, _ := newKeyItemFixture()
	ident, _ := testIdentity()

	_, err := svc.Add(context.Background(), ident, KeyItemRequest{Name: "HeatData"})
	require.NoError(t, err)

	_, err = svc.Add(context.Background(), ident, KeyItemRequest{Name: "HeatData"})
	require.Error(t, err)
	require.True(t, errors.Is(err, common.ErrConflict))

	// Another creator is a different namespace.
	other, _ := testIdentity()
	_, err = svc.Add(context.Background(), other, KeyItemRequest{Name: "HeatData"})
	require.NoError(t, err)
}

func TestInspect_ResolvesMaskToOwnedSummaries(t *testing.T) {
	svc, repo, mask := newKeyItemFixture()
	creator, _ := testIdentity()
	ownerID := bson.NewObjectID()

	item, err := svc.Add(context.Background(), creator, KeyItemRequest{
		Name:        "GigFreez",
		Description: "Freezes a target",
		Owners:      []string{ownerID.Hex()},
	})
	require.NoError(t, err)
	require.Len(t, repo.items, 1)

	token, err := mask.Issue(ownerID.Hex())
	require.NoError(t, err)

	summaries, err := svc.Inspect(context.Background(), token)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	require.Equal(t, item.ID, summaries[0].ItemID)
	require.Equal(t, "GigFreez", summaries[0].Name)
}

func TestInspect_BadTokenRejected(t *testing.T) {
	svc, _, _ := newKeyItemFixture()

	_, err := svc.Inspect(context.Background(), "not.a.token")
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestDeleteKeyItem_RefusedWhileOwned(t *testing.T) {
	svc, _, _ := newKeyItemFixture()
	ident, _ := testIdentity()
	ownerID := bson.NewObjectID()

	item, err := svc.Add(context.Background(), ident, KeyItemRequest{
		Name:   "NaviCust",
		Owners: []string{ownerID.Hex()},
	})
	require.NoError(t, err)

	_, err = svc.Delete(context.Background(), ident, item.ID.Hex())
	require.Error(t, err)
	require.True(t, errors.Is(err, common.ErrConflict))
}

func TestDeleteKeyItem_UnownedItemReturnsName(t *testing.T) {
	svc, repo, _ := newKeyItemFixture()
	ident, _ := testIdentity()

	item, err := svc.Add(context.Background(), ident, KeyItemRequest{Name: "SpinBlue"})
	require.NoError(t, err)

	name, err := svc.Delete(context.Background(), ident, item.ID.Hex())
	require.NoError(t, err)
	require.Equal(t, "SpinBlue", name)
	require.Empty(t, repo.items)
}

func TestDeleteKeyItem_OnlyCreatorMayDelete(t *testing.T) {
	svc, _, _ := newKeyItemFixture()
	creator, _ := testIdentity()
	stranger, _ := testIdentity()

	item, err := svc.Add(context.Background(), creator, KeyItemRequest{Name: "Hammer"})
	require.NoError(t, err)

	_, err = svc.Delete(context.Background(), stranger, item.ID.Hex())
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestUpdateKeyItem_RenameChecksUniqueness(t *testing.T) {
	svc, _, _ := newKeyItemFixture()
	ident, _ := testIdentity()

	_, err := svc.Add(context.Background(), ident, KeyItemRequest{Name: "RollArrow"})
	require.NoError(t, err)
	second, err := svc.Add(context.Background(), ident, KeyItemRequest{Name: "AirShoes"})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), ident, second.ID.Hex(), KeyItemRequest{Name: "RollArrow"})
	require.Error(t, err)
	require.True(t, errors.Is(err, common.ErrConflict))

	// Same name as before is not a rename.
	updated, err := svc.Update(context.Background(), ident, second.ID.Hex(), KeyItemRequest{Name: "AirShoes", Description: "Walk on air"})
	require.NoError(t, err)
	require.Equal(t, "Walk on air", updated.Description)
}
