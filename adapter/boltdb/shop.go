package boltdb

import (
	"context"

	"github.com/mvvmkit/blueprint/domain/shop"
	uuid "github.com/satori/go.uuid"
)

const (
	bucketUsers     = "shop.User"
	bucketCartItems = "shop.CartItem"
	bucketOrders    = "shop.Order"
)

func (s *Store) Users() Users {
	return Users{Repository: Repository[shop.User, shop.UserID]{
		Store:  s,
		Bucket: bucketUsers,
		MakeID: makeID[shop.UserID],
	}}
}

type Users struct {
	Repository[shop.User, shop.UserID]
}

func (s *Store) CartItems() CartItems {
	return CartItems{Repository: Repository[shop.CartItem, shop.CartItemID]{
		Store:  s,
		Bucket: bucketCartItems,
		MakeID: makeID[shop.CartItemID],
	}}
}

type CartItems struct {
	Repository[shop.CartItem, shop.CartItemID]
}

func (r CartItems) FindByUserID(ctx context.Context, id shop.UserID) ([]shop.CartItem, error) {
	return r.FindBy(ctx, func(ci shop.CartItem) bool { return ci.UserID == id })
}

func (s *Store) Orders() Orders {
	return Orders{Repository: Repository[shop.Order, shop.OrderID]{
		Store:  s,
		Bucket: bucketOrders,
		MakeID: makeID[shop.OrderID],
	}}
}

type Orders struct {
	Repository[shop.Order, shop.OrderID]
}

func (r Orders) FindByUserID(ctx context.Context, id shop.UserID) ([]shop.Order, error) {
	return r.FindBy(ctx, func(o shop.Order) bool { return o.UserID == id })
}

func makeID[ID ~string](context.Context) (ID, error) {
	return ID(uuid.NewV4().String()), nil
}
