// Package shopcontract holds the behavioural contracts of the shop repository ports.
//
// Every adapter that implements a shop repository runs these suites in its own tests,
// which keeps the use cases free from assumptions about a specific storage technology.
package shopcontract

import (
	"context"
	"testing"
	"time"

	randomdata "github.com/Pallinder/go-randomdata"
	"github.com/mvvmkit/blueprint/domain/shop"
	"go.llib.dev/frameless/port/contract"
	"go.llib.dev/frameless/port/crud"
	"go.llib.dev/testcase"
	"go.llib.dev/testcase/assert"
)

func UserRepository(mk func(testing.TB) shop.UserRepository) contract.Contract {
	s := testcase.NewSpec(nil)

	subject := testcase.Let(s, func(t *testcase.T) shop.UserRepository {
		return mk(t)
	})

	s.Test("created user gets an ID and can be found by it", func(t *testcase.T) {
		ctx := context.Background()
		u := MakeUser()
		assert.NoError(t, subject.Get(t).Create(ctx, &u))
		assert.NotEmpty(t, u.ID)

		got, found, err := subject.Get(t).FindByID(ctx, u.ID)
		assert.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, u, got)
	})

	s.Test("creating a user with an already used ID fails", func(t *testcase.T) {
		ctx := context.Background()
		u := MakeUser()
		assert.NoError(t, subject.Get(t).Create(ctx, &u))

		dup := MakeUser()
		dup.ID = u.ID
		assert.ErrorIs(t, crud.ErrAlreadyExists, subject.Get(t).Create(ctx, &dup))
	})

	s.Test("unknown user is not found", func(t *testcase.T) {
		_, found, err := subject.Get(t).FindByID(context.Background(), shop.UserID(t.Random.UUID()))
		assert.NoError(t, err)
		assert.False(t, found)
	})

	return s.AsSuite("UserRepository")
}

func CartItemRepository(mk func(testing.TB) shop.CartItemRepository) contract.Contract {
	s := testcase.NewSpec(nil)

	var (
		subject = testcase.Let(s, func(t *testcase.T) shop.CartItemRepository {
			return mk(t)
		})
		userID = testcase.Let(s, func(t *testcase.T) shop.UserID {
			return shop.UserID(t.Random.UUID())
		})
	)

	create := func(t *testcase.T, uid shop.UserID) shop.CartItem {
		item := MakeCartItem(uid)
		assert.NoError(t, subject.Get(t).Create(context.Background(), &item))
		return item
	}

	s.Test("created item gets an ID and can be found by it", func(t *testcase.T) {
		item := create(t, userID.Get(t))
		assert.NotEmpty(t, item.ID)

		got, found, err := subject.Get(t).FindByID(context.Background(), item.ID)
		assert.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, item, got)
	})

	s.Test("creating an item with an already used ID fails", func(t *testcase.T) {
		item := create(t, userID.Get(t))
		dup := MakeCartItem(userID.Get(t))
		dup.ID = item.ID
		assert.ErrorIs(t, crud.ErrAlreadyExists, subject.Get(t).Create(context.Background(), &dup))
	})

	s.Test("update overwrites the stored item", func(t *testcase.T) {
		item := create(t, userID.Get(t))
		item.Quantity += t.Random.IntBetween(1, 10)
		assert.NoError(t, subject.Get(t).Update(context.Background(), &item))

		got, found, err := subject.Get(t).FindByID(context.Background(), item.ID)
		assert.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, item.Quantity, got.Quantity)
	})

	s.Test("updating an unknown item fails with not found", func(t *testcase.T) {
		item := MakeCartItem(userID.Get(t))
		item.ID = shop.CartItemID(t.Random.UUID())
		assert.ErrorIs(t, crud.ErrNotFound, subject.Get(t).Update(context.Background(), &item))
	})

	s.Test("delete by id removes the item", func(t *testcase.T) {
		item := create(t, userID.Get(t))
		assert.NoError(t, subject.Get(t).DeleteByID(context.Background(), item.ID))

		_, found, err := subject.Get(t).FindByID(context.Background(), item.ID)
		assert.NoError(t, err)
		assert.False(t, found)
	})

	s.Test("deleting an unknown item fails with not found", func(t *testcase.T) {
		err := subject.Get(t).DeleteByID(context.Background(), shop.CartItemID(t.Random.UUID()))
		assert.ErrorIs(t, crud.ErrNotFound, err)
	})

	s.Test("find by user id returns only the items of that user", func(t *testcase.T) {
		a := create(t, userID.Get(t))
		b := create(t, userID.Get(t))
		create(t, shop.UserID(t.Random.UUID()))

		items, err := subject.Get(t).FindByUserID(context.Background(), userID.Get(t))
		assert.NoError(t, err)
		assert.ContainsExactly(t, []shop.CartItem{a, b}, items)
	})

	s.Test("find by user id for a user without items is empty", func(t *testcase.T) {
		items, err := subject.Get(t).FindByUserID(context.Background(), shop.UserID(t.Random.UUID()))
		assert.NoError(t, err)
		assert.Empty(t, items)
	})

	return s.AsSuite("CartItemRepository")
}

func OrderRepository(mk func(testing.TB) shop.OrderRepository) contract.Contract {
	s := testcase.NewSpec(nil)

	var (
		subject = testcase.Let(s, func(t *testcase.T) shop.OrderRepository {
			return mk(t)
		})
		userID = testcase.Let(s, func(t *testcase.T) shop.UserID {
			return shop.UserID(t.Random.UUID())
		})
	)

	create := func(t *testcase.T, uid shop.UserID) shop.Order {
		o := MakeOrder(uid)
		assert.NoError(t, subject.Get(t).Create(context.Background(), &o))
		return o
	}

	s.Test("created order gets an ID and can be found by it", func(t *testcase.T) {
		o := create(t, userID.Get(t))
		assert.NotEmpty(t, o.ID)

		got, found, err := subject.Get(t).FindByID(context.Background(), o.ID)
		assert.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, o.ID, got.ID)
		assert.Equal(t, o.Lines, got.Lines)
		assert.Equal(t, o.Total, got.Total)
		assert.True(t, o.PlacedAt.Equal(got.PlacedAt))
	})

	s.Test("creating an order with an already used ID fails", func(t *testcase.T) {
		o := create(t, userID.Get(t))
		dup := MakeOrder(userID.Get(t))
		dup.ID = o.ID
		assert.ErrorIs(t, crud.ErrAlreadyExists, subject.Get(t).Create(context.Background(), &dup))
	})

	s.Test("find by user id returns only the orders of that user", func(t *testcase.T) {
		a := create(t, userID.Get(t))
		create(t, shop.UserID(t.Random.UUID()))

		orders, err := subject.Get(t).FindByUserID(context.Background(), userID.Get(t))
		assert.NoError(t, err)
		assert.Equal(t, 1, len(orders))
		assert.Equal(t, a.ID, orders[0].ID)
	})

	return s.AsSuite("OrderRepository")
}

func MakeUser() shop.User {
	return shop.User{
		Name:  randomdata.FullName(randomdata.RandomGender),
		Email: randomdata.Email(),
	}
}

func MakeCartItem(uid shop.UserID) shop.CartItem {
	return shop.CartItem{
		UserID:    uid,
		SKU:       randomdata.StringNumber(2, "-"),
		Quantity:  randomdata.Number(1, 10),
		UnitPrice: shop.Money(randomdata.Number(100, 10000)),
	}
}

func MakeOrder(uid shop.UserID) shop.Order {
	line := shop.OrderLine{
		SKU:       randomdata.SillyName(),
		Quantity:  randomdata.Number(1, 5),
		UnitPrice: shop.Money(randomdata.Number(100, 10000)),
	}
	return shop.Order{
		UserID:   uid,
		Lines:    []shop.OrderLine{line},
		Total:    line.UnitPrice * shop.Money(line.Quantity),
		PlacedAt: time.Now().UTC().Truncate(time.Second),
	}
}
