// Package memory implements the shop repository ports on top of process memory.
//
// It is the quickest way to try a feature before a real database is wired in.
// Every repository stores its entities in a frameless memory.Memory,
// so repositories made from the same Memory share one backing store.
package memory

import (
	"context"

	"github.com/mvvmkit/blueprint/domain/shop"
	uuid "github.com/satori/go.uuid"
	"go.llib.dev/frameless/adapter/memory"
)

// Memory is the backing store shared by the shop repositories.
type Memory = memory.Memory

func NewMemory() *Memory {
	return memory.NewMemory()
}

func NewUsers(m *memory.Memory) *Users {
	return &Users{Repository: &memory.Repository[shop.User, shop.UserID]{
		Memory: m,
		MakeID: makeID[shop.UserID],
	}}
}

type Users struct {
	*memory.Repository[shop.User, shop.UserID]
}

func NewCartItems(m *memory.Memory) *CartItems {
	return &CartItems{Repository: &memory.Repository[shop.CartItem, shop.CartItemID]{
		Memory: m,
		MakeID: makeID[shop.CartItemID],
	}}
}

type CartItems struct {
	*memory.Repository[shop.CartItem, shop.CartItemID]
}

func (r *CartItems) FindByUserID(ctx context.Context, id shop.UserID) ([]shop.CartItem, error) {
	return findBy(ctx, r.Repository, func(ci shop.CartItem) bool { return ci.UserID == id })
}

func NewOrders(m *memory.Memory) *Orders {
	return &Orders{Repository: &memory.Repository[shop.Order, shop.OrderID]{
		Memory: m,
		MakeID: makeID[shop.OrderID],
	}}
}

type Orders struct {
	*memory.Repository[shop.Order, shop.OrderID]
}

func (r *Orders) FindByUserID(ctx context.Context, id shop.UserID) ([]shop.Order, error) {
	return findBy(ctx, r.Repository, func(o shop.Order) bool { return o.UserID == id })
}

func findBy[ENT, ID any](ctx context.Context, r *memory.Repository[ENT, ID], filter func(ENT) bool) ([]ENT, error) {
	all, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	var out []ENT
	for ent, err := range all {
		if err != nil {
			return nil, err
		}
		if filter(ent) {
			out = append(out, ent)
		}
	}
	return out, nil
}

func makeID[ID ~string](context.Context) (ID, error) {
	return ID(uuid.NewV4().String()), nil
}
