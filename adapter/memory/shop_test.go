package memory_test

import (
	"context"
	"testing"

	"github.com/mvvmkit/blueprint/adapter/memory"
	"github.com/mvvmkit/blueprint/domain/shop"
	"github.com/mvvmkit/blueprint/domain/shop/shopcontract"
	uuid "github.com/satori/go.uuid"
	"go.llib.dev/testcase"
	"go.llib.dev/testcase/assert"
	"go.llib.dev/testcase/let"
)

var (
	_ shop.UserRepository     = &memory.Users{}
	_ shop.CartItemRepository = &memory.CartItems{}
	_ shop.OrderRepository    = &memory.Orders{}
)

func TestUsers(t *testing.T) {
	shopcontract.UserRepository(func(tb testing.TB) shop.UserRepository {
		return memory.NewUsers(memory.NewMemory())
	}).Test(t)
}

func TestCartItems(t *testing.T) {
	shopcontract.CartItemRepository(func(tb testing.TB) shop.CartItemRepository {
		return memory.NewCartItems(memory.NewMemory())
	}).Test(t)
}

func TestOrders(t *testing.T) {
	shopcontract.OrderRepository(func(tb testing.TB) shop.OrderRepository {
		return memory.NewOrders(memory.NewMemory())
	}).Test(t)
}

func TestRepositories(t *testing.T) {
	s := testcase.NewSpec(t)

	var (
		mem = testcase.Let(s, func(t *testcase.T) *memory.Memory {
			return memory.NewMemory()
		})
		ctx = let.Context(s)
	)

	s.Test("created entities receive a uuid through their ext id field", func(t *testcase.T) {
		u := shopcontract.MakeUser()
		assert.NoError(t, memory.NewUsers(mem.Get(t)).Create(ctx.Get(t), &u))

		_, err := uuid.FromString(string(u.ID))
		assert.NoError(t, err)
	})

	s.Test("repositories made from the same memory share the stored entities", func(t *testcase.T) {
		u := shopcontract.MakeUser()
		assert.NoError(t, memory.NewUsers(mem.Get(t)).Create(ctx.Get(t), &u))

		got, found, err := memory.NewUsers(mem.Get(t)).FindByID(ctx.Get(t), u.ID)
		assert.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, u, got)
	})

	s.Test("cancelled context is reported by find by user id", func(t *testcase.T) {
		cctx, cancel := context.WithCancel(ctx.Get(t))
		cancel()
		_, err := memory.NewCartItems(mem.Get(t)).FindByUserID(cctx, shop.UserID(t.Random.UUID()))
		assert.ErrorIs(t, context.Canceled, err)
	})
}
