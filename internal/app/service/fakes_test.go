package service

import (
	"context"
	"time"

	"netbattle_api/internal/common"
	"netbattle_api/internal/domain/model"
	"netbattle_api/internal/platform/mail"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// In-memory repositories for exercising services without a database.

type fakeUserRepo struct {
	users map[bson.ObjectID]*model.User
	err   error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[bson.ObjectID]*model.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	if r.err != nil {
		return r.err
	}
	user.ID = bson.NewObjectID()
	user.Created = time.Now()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id bson.ObjectID) (*model.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	if user, ok := r.users[id]; ok {
		return user, nil
	}
	return nil, common.ErrNotFound
}

func (r *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, user := range r.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeUserRepo) List(ctx context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(r.users))
	for _, user := range r.users {
		out = append(out, *user)
	}
	return out, nil
}

func (r *fakeUserRepo) ListSince(ctx context.Context, since time.Time) ([]model.User, error) {
	var out []model.User
	for _, user := range r.users {
		if user.Updated.After(since) || user.Created.After(since) {
			out = append(out, *user)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *model.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return common.ErrNotFound
	}
	user.Updated = time.Now()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) IncrementMonies(ctx context.Context, id bson.ObjectID, delta int) error {
	user, ok := r.users[id]
	if !ok {
		return common.ErrNotFound
	}
	user.Monies += delta
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id bson.ObjectID) error {
	if _, ok := r.users[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

type fakeAdminRepo struct {
	admins map[bson.ObjectID]*model.AdminUser
	err    error
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{admins: make(map[bson.ObjectID]*model.AdminUser)}
}

func (r *fakeAdminRepo) Create(ctx context.Context, admin *model.AdminUser) error {
	admin.ID = bson.NewObjectID()
	admin.Created = time.Now()
	r.admins[admin.ID] = admin
	return nil
}

func (r *fakeAdminRepo) FindByID(ctx context.Context, id bson.ObjectID) (*model.AdminUser, error) {
	if admin, ok := r.admins[id]; ok {
		return admin, nil
	}
	return nil, common.ErrNotFound
}

func (r *fakeAdminRepo) FindByUsername(ctx context.Context, username string) (*model.AdminUser, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, admin := range r.admins {
		if admin.Username == username {
			return admin, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeAdminRepo) Update(ctx context.Context, admin *model.AdminUser) error {
	r.admins[admin.ID] = admin
	return nil
}

func (r *fakeAdminRepo) Delete(ctx context.Context, id bson.ObjectID) error {
	delete(r.admins, id)
	return nil
}

type fakeKeyItemRepo struct {
	items map[bson.ObjectID]*model.KeyItem
}

func newFakeKeyItemRepo() *fakeKeyItemRepo {
	return &fakeKeyItemRepo{items: make(map[bson.ObjectID]*model.KeyItem)}
}

func (r *fakeKeyItemRepo) Create(ctx context.Context, item *model.KeyItem) error {
	item.ID = bson.NewObjectID()
	item.Created = time.Now()
	r.items[item.ID] = item
	return nil
}

func (r *fakeKeyItemRepo) FindByID(ctx context.Context, id bson.ObjectID) (*model.KeyItem, error) {
	if item, ok := r.items[id]; ok {
		return item, nil
	}
	return nil, common.ErrNotFound
}

func (r *fakeKeyItemRepo) FindForCreator(ctx context.Context, id, userID bson.ObjectID) (*model.KeyItem, error) {
	item, ok := r.items[id]
	if !ok || item.UserID != userID {
		return nil, common.ErrNotFound
	}
	// Return a copy like the real repository, which decodes each
	// result into a fresh struct.
	copied := *item
	return &copied, nil
}

func (r *fakeKeyItemRepo) FindByCreatorAndName(ctx context.Context, userID bson.ObjectID, name string) (*model.KeyItem, error) {
	for _, item := range r.items {
		if item.UserID == userID && item.Name == name {
			return item, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeKeyItemRepo) ListByCreator(ctx context.Context, userID bson.ObjectID) ([]model.KeyItem, error) {
	var out []model.KeyItem
	for _, item := range r.items {
		if item.UserID == userID {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (r *fakeKeyItemRepo) ListByOwner(ctx context.Context, ownerID bson.ObjectID) ([]model.KeyItem, error) {
	var out []model.KeyItem
	for _, item := range r.items {
		for _, owner := range item.Owners {
			if owner == ownerID {
				out = append(out, *item)
				break
			}
		}
	}
	return out, nil
}

func (r *fakeKeyItemRepo) ListSince(ctx context.Context, since time.Time) ([]model.KeyItem, error) {
	var out []model.KeyItem
	for _, item := range r.items {
		if item.Updated.After(since) || item.Created.After(since) {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (r *fakeKeyItemRepo) Update(ctx context.Context, item *model.KeyItem) error {
	if _, ok := r.items[item.ID]; !ok {
		return common.ErrNotFound
	}
	item.Updated = time.Now()
	r.items[item.ID] = item
	return nil
}

func (r *fakeKeyItemRepo) AddOwner(ctx context.Context, id, ownerID bson.ObjectID) error {
	item, ok := r.items[id]
	if !ok {
		return common.ErrNotFound
	}
	for _, owner := range item.Owners {
		if owner == ownerID {
			return nil
		}
	}
	item.Owners = append(item.Owners, ownerID)
	return nil
}

func (r *fakeKeyItemRepo) Delete(ctx context.Context, id bson.ObjectID) error {
	if _, ok := r.items[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

type fakeResetTokenRepo struct {
	tokens map[bson.ObjectID]*model.ResetToken
}

func newFakeResetTokenRepo() *fakeResetTokenRepo {
	return &fakeResetTokenRepo{tokens: make(map[bson.ObjectID]*model.ResetToken)}
}

func (r *fakeResetTokenRepo) Upsert(ctx context.Context, userID bson.ObjectID, tokenHash string) error {
	r.tokens[userID] = &model.ResetToken{
		ID:      bson.NewObjectID(),
		UserID:  userID,
		Token:   tokenHash,
		Created: time.Now(),
	}
	return nil
}

func (r *fakeResetTokenRepo) FindByUserID(ctx context.Context, userID bson.ObjectID) (*model.ResetToken, error) {
	if token, ok := r.tokens[userID]; ok {
		return token, nil
	}
	return nil, common.ErrNotFound
}

func (r *fakeResetTokenRepo) DeleteByUserID(ctx context.Context, userID bson.ObjectID) error {
	delete(r.tokens, userID)
	return nil
}

type fakeProductRepo struct {
	products map[bson.ObjectID]*model.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[bson.ObjectID]*model.Product)}
}

func (r *fakeProductRepo) Create(ctx context.Context, product *model.Product) error {
	product.ID = bson.NewObjectID()
	product.Created = time.Now()
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) FindByID(ctx context.Context, id bson.ObjectID) (*model.Product, error) {
	if product, ok := r.products[id]; ok {
		return product, nil
	}
	return nil, common.ErrNotFound
}

func (r *fakeProductRepo) List(ctx context.Context) ([]model.Product, error) {
	out := make([]model.Product, 0, len(r.products))
	for _, product := range r.products {
		out = append(out, *product)
	}
	return out, nil
}

func (r *fakeProductRepo) ListSince(ctx context.Context, since time.Time) ([]model.Product, error) {
	var out []model.Product
	for _, product := range r.products {
		if product.Created.After(since) {
			out = append(out, *product)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Update(ctx context.Context, product *model.Product) error {
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) Delete(ctx context.Context, id, userID bson.ObjectID) error {
	product, ok := r.products[id]
	if !ok || product.UserID != userID {
		return common.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

type fakeTxRepo struct {
	txs []model.Tx
}

func (r *fakeTxRepo) Create(ctx context.Context, tx *model.Tx) error {
	tx.ID = bson.NewObjectID()
	tx.Created = time.Now()
	r.txs = append(r.txs, *tx)
	return nil
}

func (r *fakeTxRepo) ListSinceForUser(ctx context.Context, userID bson.ObjectID, since time.Time) ([]model.Tx, error) {
	var out []model.Tx
	for _, tx := range r.txs {
		if (tx.From == userID || tx.To == userID) && tx.Created.After(since) {
			out = append(out, tx)
		}
	}
	return out, nil
}

type fakeMailQueue struct {
	messages []mail.Message
}

func (q *fakeMailQueue) Enqueue(ctx context.Context, msg mail.Message) error {
	q.messages = append(q.messages, msg)
	return nil
}
