package viewmodel

import (
	"context"
	"sync"

	"github.com/mvvmkit/blueprint/domain/shop"
	"github.com/mvvmkit/blueprint/pkg/command"
	"github.com/mvvmkit/blueprint/pkg/listenable"
	"go.llib.dev/frameless/pkg/logging"
)

type OrderUseCases interface {
	ListOrders(ctx context.Context, userID shop.UserID) ([]shop.Order, error)
}

// OrdersViewModel presents the order history of a single user.
type OrdersViewModel struct {
	UserID shop.UserID
	Load   *command.Command[struct{}, []shop.Order]

	notifier listenable.Notifier

	uc     OrderUseCases
	m      sync.RWMutex
	orders []shop.Order
	sub    *listenable.Subscription
}

func NewOrdersViewModel(uc OrderUseCases, userID shop.UserID, logger *logging.Logger) *OrdersViewModel {
	vm := &OrdersViewModel{UserID: userID, uc: uc}
	vm.Load = command.New0(vm.load)
	vm.Load.Name = "orders.load"
	vm.Load.Logger = logger
	vm.sub = vm.Load.Subscribe(vm.notifier.Notify)
	return vm
}

func (vm *OrdersViewModel) Subscribe(listener func()) *listenable.Subscription {
	return vm.notifier.Subscribe(listener)
}

// Orders returns the last loaded orders, newest first.
func (vm *OrdersViewModel) Orders() []shop.Order {
	vm.m.RLock()
	defer vm.m.RUnlock()
	return append([]shop.Order(nil), vm.orders...)
}

func (vm *OrdersViewModel) Close() {
	vm.sub.Unsubscribe()
	vm.notifier.Close()
}

func (vm *OrdersViewModel) load(ctx context.Context) ([]shop.Order, error) {
	orders, err := vm.uc.ListOrders(ctx, vm.UserID)
	if err != nil {
		return nil, err
	}
	vm.m.Lock()
	vm.orders = orders
	vm.m.Unlock()
	return orders, nil
}
