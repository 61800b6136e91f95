package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"netbattle_api/internal/common"
	"netbattle_api/internal/domain/model"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func newShopFixture(t *testing.T) (*ProductService, *fakeUserRepo, *fakeKeyItemRepo, *fakeTxRepo) {
	t.Helper()
	users := newFakeUserRepo()
	items := newFakeKeyItemRepo()
	txs := &fakeTxRepo{}
	svc := NewProductService(newFakeProductRepo(), users, txs, items)
	return svc, users, items, txs
}

func shopUser(t *testing.T, users *fakeUserRepo, name string, monies int) (model.Identity, *model.User) {
	t.Helper()
	user := &model.User{Username: name, Email: name + "@example.com", Monies: monies}
	require.NoError(t, users.Create(context.Background(), user))
	return model.UserIdentity(user), user
}

func TestPurchase_TransfersMoniesAndRecordsTx(t *testing.T) {
	svc, users, _, txs := newShopFixture(t)
	seller, sellerUser := shopUser(t, users, "mayl", 0)
	buyer, buyerUser := shopUser(t, users, "lan", 500)

	product, err := svc.Add(context.Background(), seller, ProductRequest{Name: "HPMemory", Price: 300})
	require.NoError(t, err)

	tx, err := svc.Purchase(context.Background(), buyer, product.ID.Hex())
	require.NoError(t, err)
	require.Equal(t, buyerUser.ID, tx.From)
	require.Equal(t, sellerUser.ID, tx.To)
	require.Equal(t, product.ID, tx.Product)

	require.Equal(t, 200, buyerUser.Monies)
	require.Equal(t, 300, sellerUser.Monies)
	require.Len(t, txs.txs, 1)
}

func TestPurchase_InsufficientMoniesRejected(t *testing.T) {
	svc, users, _, txs := newShopFixture(t)
	seller, _ := shopUser(t, users, "mayl", 0)
	buyer, buyerUser := shopUser(t, users, "lan", 100)

	product, err := svc.Add(context.Background(), seller, ProductRequest{Name: "HPMemory", Price: 300})
	require.NoError(t, err)

	_, err = svc.Purchase(context.Background(), buyer, product.ID.Hex())
	require.Error(t, err)
	require.True(t, errors.Is(err, common.ErrBadRequest))
	require.Equal(t, 100, buyerUser.Monies)
	require.Empty(t, txs.txs)
}

func TestPurchase_OwnProductRejected(t *testing.T) {
	svc, users, _, _ := newShopFixture(t)
	seller, _ := shopUser(t, users, "mayl", 500)

	product, err := svc.Add(context.Background(), seller, ProductRequest{Name: "HPMemory", Price: 100})
	require.NoError(t, err)

	_, err = svc.Purchase(context.Background(), seller, product.ID.Hex())
	require.Error(t, err)
	require.True(t, errors.Is(err, common.ErrBadRequest))
}

func TestPurchase_GrantsAttachedKeyItem(t *testing.T) {
	svc, users, items, _ := newShopFixture(t)
	seller, sellerUser := shopUser(t, users, "mayl", 0)
	buyer, buyerUser := shopUser(t, users, "lan", 500)

	item := &model.KeyItem{UserID: sellerUser.ID, Name: "GigFreez"}
	require.NoError(t, items.Create(context.Background(), item))

	itemHex := item.ID.Hex()
	product, err := svc.Add(context.Background(), seller, ProductRequest{
		Name:      "FrozenBundle",
		Price:     250,
		KeyItemID: &itemHex,
	})
	require.NoError(t, err)

	_, err = svc.Purchase(context.Background(), buyer, product.ID.Hex())
	require.NoError(t, err)
	require.Contains(t, item.Owners, buyerUser.ID)
}

func TestAddProduct_ForeignKeyItemRejected(t *testing.T) {
	svc, users, items, _ := newShopFixture(t)
	seller, _ := shopUser(t, users, "mayl", 0)

	foreign := &model.KeyItem{UserID: bson.NewObjectID(), Name: "NotYours"}
	require.NoError(t, items.Create(context.Background(), foreign))

	itemHex := foreign.ID.Hex()
	_, err := svc.Add(context.Background(), seller, ProductRequest{
		Name:      "Stolen",
		Price:     10,
		KeyItemID: &itemHex,
	})
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestTxSince_OnlyOwnTransactions(t *testing.T) {
	svc, users, _, _ := newShopFixture(t)
	seller, _ := shopUser(t, users, "mayl", 0)
	buyer, _ := shopUser(t, users, "lan", 500)
	bystander, _ := shopUser(t, users, "dex", 500)

	product, err := svc.Add(context.Background(), seller, ProductRequest{Name: "HPMemory", Price: 100})
	require.NoError(t, err)
	_, err = svc.Purchase(context.Background(), buyer, product.ID.Hex())
	require.NoError(t, err)

	since := time.Now().Add(-time.Hour)

	got, err := svc.TxSince(context.Background(), buyer, since)
	require.NoError(t, err)
	require.Len(t, got, 1)

	got, err = svc.TxSince(context.Background(), seller, since)
	require.NoError(t, err)
	require.Len(t, got, 1)

	got, err = svc.TxSince(context.Background(), bystander, since)
	require.NoError(t, err)
	require.Empty(t, got)
}
