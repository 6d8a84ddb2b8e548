package shop

import (
	"context"
	"sort"
	"strings"

	"go.llib.dev/frameless/pkg/errorkit"
	"go.llib.dev/testcase/clock"
)

const (
	ErrInvalidUser      errorkit.Error = "invalid user"
	ErrUserNotFound     errorkit.Error = "user not found"
	ErrInvalidCartItem  errorkit.Error = "invalid cart item"
	ErrCartItemNotFound errorkit.Error = "cart item not found"
	ErrEmptyCart        errorkit.Error = "cart is empty"
)

// UseCases bundles the interactions of the shop feature.
// Each method is a thin orchestration over the repository ports.
type UseCases struct {
	Users     UserRepository
	CartItems CartItemRepository
	Orders    OrderRepository
}

func (uc UseCases) RegisterUser(ctx context.Context, name, email string) (User, error) {
	name, email = strings.TrimSpace(name), strings.TrimSpace(email)
	if name == "" {
		return User{}, ErrInvalidUser.F("name is required")
	}
	if !strings.Contains(email, "@") {
		return User{}, ErrInvalidUser.F("email is not valid: %q", email)
	}
	u := User{Name: name, Email: email}
	if err := uc.Users.Create(ctx, &u); err != nil {
		return User{}, err
	}
	return u, nil
}

type AddToCartRequest struct {
	UserID    UserID
	SKU       string
	Quantity  int
	UnitPrice Money
}

// AddToCart puts an item in the user's cart.
// When the cart already has a line with the same SKU, that line's quantity is increased instead.
func (uc UseCases) AddToCart(ctx context.Context, req AddToCartRequest) (CartItem, error) {
	req.SKU = strings.TrimSpace(req.SKU)
	if req.SKU == "" {
		return CartItem{}, ErrInvalidCartItem.F("sku is required")
	}
	if req.Quantity <= 0 {
		return CartItem{}, ErrInvalidCartItem.F("quantity must be positive, got %d", req.Quantity)
	}
	if req.UnitPrice < 0 {
		return CartItem{}, ErrInvalidCartItem.F("unit price must not be negative, got %s", req.UnitPrice)
	}
	if err := uc.requireUser(ctx, req.UserID); err != nil {
		return CartItem{}, err
	}

	items, err := uc.CartItems.FindByUserID(ctx, req.UserID)
	if err != nil {
		return CartItem{}, err
	}
	for _, item := range items {
		if item.SKU != req.SKU {
			continue
		}
		item.Quantity += req.Quantity
		item.UnitPrice = req.UnitPrice
		if err := uc.CartItems.Update(ctx, &item); err != nil {
			return CartItem{}, err
		}
		return item, nil
	}

	item := CartItem{
		UserID:    req.UserID,
		SKU:       req.SKU,
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
	}
	if err := uc.CartItems.Create(ctx, &item); err != nil {
		return CartItem{}, err
	}
	return item, nil
}

func (uc UseCases) RemoveFromCart(ctx context.Context, userID UserID, id CartItemID) error {
	item, found, err := uc.CartItems.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !found || item.UserID != userID {
		return ErrCartItemNotFound.F("%s", id)
	}
	return uc.CartItems.DeleteByID(ctx, id)
}

// ListCart returns the user's cart ordered by SKU.
func (uc UseCases) ListCart(ctx context.Context, userID UserID) ([]CartItem, error) {
	items, err := uc.CartItems.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	sort.Slice(items, func(i, j int) bool { return items[i].SKU < items[j].SKU })
	return items, nil
}

// PlaceOrder turns the user's cart into an Order and empties the cart.
func (uc UseCases) PlaceOrder(ctx context.Context, userID UserID) (Order, error) {
	if err := uc.requireUser(ctx, userID); err != nil {
		return Order{}, err
	}
	items, err := uc.ListCart(ctx, userID)
	if err != nil {
		return Order{}, err
	}
	if len(items) == 0 {
		return Order{}, ErrEmptyCart
	}

	order := Order{
		UserID:   userID,
		Lines:    make([]OrderLine, 0, len(items)),
		PlacedAt: clock.Now().UTC(),
	}
	for _, item := range items {
		order.Lines = append(order.Lines, OrderLine{
			SKU:       item.SKU,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
		order.Total += item.Subtotal()
	}
	if err := uc.Orders.Create(ctx, &order); err != nil {
		return Order{}, err
	}

	var errs []error
	for _, item := range items {
		errs = append(errs, uc.CartItems.DeleteByID(ctx, item.ID))
	}
	if err := errorkit.Merge(errs...); err != nil {
		return order, err
	}
	return order, nil
}

// ListOrders returns the user's orders, newest first.
func (uc UseCases) ListOrders(ctx context.Context, userID UserID) ([]Order, error) {
	orders, err := uc.Orders.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].PlacedAt.After(orders[j].PlacedAt)
	})
	return orders, nil
}

func (uc UseCases) requireUser(ctx context.Context, id UserID) error {
	_, found, err := uc.Users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return ErrUserNotFound.F("%s", id)
	}
	return nil
}
