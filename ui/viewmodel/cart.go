// Package viewmodel holds the presentation state of the shop feature.
//
// A view model exposes its user interactions as commands,
// caches what the view needs to render, and notifies its listeners
// whenever that cache or one of its commands changes.
// Views never call the use cases directly.
package viewmodel

import (
	"context"
	"sync"

	"github.com/mvvmkit/blueprint/domain/shop"
	"github.com/mvvmkit/blueprint/pkg/command"
	"github.com/mvvmkit/blueprint/pkg/listenable"
	"go.llib.dev/frameless/pkg/logging"
)

type CartUseCases interface {
	AddToCart(ctx context.Context, req shop.AddToCartRequest) (shop.CartItem, error)
	RemoveFromCart(ctx context.Context, userID shop.UserID, id shop.CartItemID) error
	ListCart(ctx context.Context, userID shop.UserID) ([]shop.CartItem, error)
	PlaceOrder(ctx context.Context, userID shop.UserID) (shop.Order, error)
}

type AddItem struct {
	SKU       string
	Quantity  int
	UnitPrice shop.Money
}

// CartViewModel presents the cart of a single user.
type CartViewModel struct {
	UserID shop.UserID

	Load     *command.Command[struct{}, []shop.CartItem]
	Add      *command.Command[AddItem, shop.CartItem]
	Remove   *command.Command[shop.CartItemID, struct{}]
	Checkout *command.Command[struct{}, shop.Order]

	notifier listenable.Notifier

	uc        CartUseCases
	m         sync.RWMutex
	items     []shop.CartItem
	lastOrder *shop.Order
	subs      []*listenable.Subscription
}

func NewCartViewModel(uc CartUseCases, userID shop.UserID, logger *logging.Logger) *CartViewModel {
	vm := &CartViewModel{UserID: userID, uc: uc}

	vm.Load = command.New0(vm.load)
	vm.Load.Name = "cart.load"
	vm.Add = command.New(vm.add)
	vm.Add.Name = "cart.add"
	vm.Remove = command.New(vm.remove)
	vm.Remove.Name = "cart.remove"
	vm.Checkout = command.New0(vm.checkout)
	vm.Checkout.Name = "cart.checkout"

	vm.Load.Logger = logger
	vm.Add.Logger = logger
	vm.Remove.Logger = logger
	vm.Checkout.Logger = logger

	vm.subs = []*listenable.Subscription{
		vm.Load.Subscribe(vm.notifier.Notify),
		vm.Add.Subscribe(vm.notifier.Notify),
		vm.Remove.Subscribe(vm.notifier.Notify),
		vm.Checkout.Subscribe(vm.notifier.Notify),
	}
	return vm
}

// Subscribe registers a listener that is called whenever a command of the view model changes state.
func (vm *CartViewModel) Subscribe(listener func()) *listenable.Subscription {
	return vm.notifier.Subscribe(listener)
}

// Items returns the last known content of the cart.
func (vm *CartViewModel) Items() []shop.CartItem {
	vm.m.RLock()
	defer vm.m.RUnlock()
	return append([]shop.CartItem(nil), vm.items...)
}

func (vm *CartViewModel) Total() shop.Money {
	vm.m.RLock()
	defer vm.m.RUnlock()
	var total shop.Money
	for _, item := range vm.items {
		total += item.Subtotal()
	}
	return total
}

// LastOrder returns the order placed by the latest successful Checkout.
func (vm *CartViewModel) LastOrder() (shop.Order, bool) {
	vm.m.RLock()
	defer vm.m.RUnlock()
	if vm.lastOrder == nil {
		return shop.Order{}, false
	}
	return *vm.lastOrder, true
}

// Close detaches the view model from its commands and drops its own listeners.
func (vm *CartViewModel) Close() {
	for _, sub := range vm.subs {
		sub.Unsubscribe()
	}
	vm.notifier.Close()
}

func (vm *CartViewModel) load(ctx context.Context) ([]shop.CartItem, error) {
	items, err := vm.uc.ListCart(ctx, vm.UserID)
	if err != nil {
		return nil, err
	}
	vm.setItems(items)
	return items, nil
}

func (vm *CartViewModel) add(ctx context.Context, req AddItem) (shop.CartItem, error) {
	item, err := vm.uc.AddToCart(ctx, shop.AddToCartRequest{
		UserID:    vm.UserID,
		SKU:       req.SKU,
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
	})
	if err != nil {
		return shop.CartItem{}, err
	}
	if _, err := vm.load(ctx); err != nil {
		return item, err
	}
	return item, nil
}

func (vm *CartViewModel) remove(ctx context.Context, id shop.CartItemID) (struct{}, error) {
	if err := vm.uc.RemoveFromCart(ctx, vm.UserID, id); err != nil {
		return struct{}{}, err
	}
	_, err := vm.load(ctx)
	return struct{}{}, err
}

func (vm *CartViewModel) checkout(ctx context.Context) (shop.Order, error) {
	order, err := vm.uc.PlaceOrder(ctx, vm.UserID)
	if err != nil {
		return shop.Order{}, err
	}
	vm.m.Lock()
	vm.items = nil
	vm.lastOrder = &order
	vm.m.Unlock()
	return order, nil
}

func (vm *CartViewModel) setItems(items []shop.CartItem) {
	vm.m.Lock()
	defer vm.m.Unlock()
	vm.items = append([]shop.CartItem(nil), items...)
}
