// Package shop is the domain layer of the worked example feature.
//
// It holds the business entities, the repository ports that adapters implement,
// and the use cases that the view models call.
// Nothing in here knows about storage technology or presentation.
package shop

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"go.llib.dev/frameless/pkg/errorkit"
	"go.llib.dev/frameless/port/crud"
)

type UserID string

type User struct {
	ID    UserID `ext:"id"`
	Name  string
	Email string
}

type CartItemID string

type CartItem struct {
	ID        CartItemID `ext:"id"`
	UserID    UserID
	SKU       string
	Quantity  int
	UnitPrice Money
}

func (ci CartItem) Subtotal() Money {
	return ci.UnitPrice * Money(ci.Quantity)
}

type OrderID string

type Order struct {
	ID       OrderID `ext:"id"`
	UserID   UserID
	Lines    []OrderLine
	Total    Money
	PlacedAt time.Time
}

type OrderLine struct {
	SKU       string
	Quantity  int
	UnitPrice Money
}

// Money is an amount in minor units, e.g. cents.
type Money int64

func (m Money) String() string {
	sign := ""
	if m < 0 {
		sign = "-"
		m = -m
	}
	return fmt.Sprintf("%s%d.%02d", sign, m/100, m%100)
}

const ErrInvalidMoney errorkit.Error = "invalid money amount"

// ParseMoney reads a decimal amount with at most two fractional digits, e.g. "12.5" or "-0.99".
func ParseMoney(raw string) (Money, error) {
	s := strings.TrimSpace(raw)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" || len(frac) > 2 || strings.ContainsAny(whole+frac, "+-") {
		return 0, ErrInvalidMoney.F("%q", raw)
	}
	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, ErrInvalidMoney.F("%q", raw)
	}
	var cents int64
	if frac != "" {
		frac += strings.Repeat("0", 2-len(frac))
		cents, err = strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, ErrInvalidMoney.F("%q", raw)
		}
	}
	if units > (math.MaxInt64-cents)/100 {
		return 0, ErrInvalidMoney.F("%q is out of range", raw)
	}
	m := Money(units*100 + cents)
	if neg {
		m = -m
	}
	return m, nil
}

//go:generate mockgen -destination=shopmock/shopmock.go -package=shopmock github.com/mvvmkit/blueprint/domain/shop UserRepository,CartItemRepository,OrderRepository

type UserRepository interface {
	crud.Creator[User]
	crud.ByIDFinder[User, UserID]
}

type CartItemRepository interface {
	crud.Creator[CartItem]
	crud.Updater[CartItem]
	crud.ByIDFinder[CartItem, CartItemID]
	crud.ByIDDeleter[CartItemID]
	FindByUserID(ctx context.Context, id UserID) ([]CartItem, error)
}

type OrderRepository interface {
	crud.Creator[Order]
	crud.ByIDFinder[Order, OrderID]
	FindByUserID(ctx context.Context, id UserID) ([]Order, error)
}
