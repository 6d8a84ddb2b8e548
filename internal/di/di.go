// Package di wires the adapters, use cases and view models of the application together.
//
// The registration is static: every dependency is constructed here explicitly,
// and the presentation layer only ever asks the Container for view models.
package di

import (
	"go.llib.dev/frameless/pkg/env"
	"go.llib.dev/frameless/pkg/errorkit"
	"go.llib.dev/frameless/pkg/logging"
	"go.llib.dev/frameless/pkg/teardown"

	"github.com/mvvmkit/blueprint/adapter/boltdb"
	"github.com/mvvmkit/blueprint/adapter/memory"
	"github.com/mvvmkit/blueprint/domain/shop"
	"github.com/mvvmkit/blueprint/ui/viewmodel"
)

const (
	StorageMemory = "memory"
	StorageBolt   = "bolt"
)

const ErrUnknownStorage errorkit.Error = "unknown storage"

// Config is read from the environment.
// Storage defaults to bolt, since the terminal front end runs every command in a new process.
type Config struct {
	Storage  string `env:"SHOP_STORAGE" enum:"memory;bolt;" default:"bolt"`
	BoltPath string `env:"SHOP_BOLT_PATH" default:"shop.db"`
	LogLevel string `env:"LOG_LEVEL" enum:"debug;info;warn;error;fatal;" default:"info"`
}

func LoadConfig() (Config, error) {
	var c Config
	return c, env.Load(&c)
}

type Container struct {
	Config   Config
	Logger   *logging.Logger
	UseCases shop.UseCases

	td teardown.Teardown
}

func New(c Config, logger *logging.Logger) (_ *Container, returnErr error) {
	if logger == nil {
		logger = &logging.Logger{}
	}
	if c.LogLevel != "" {
		logger.Level = logging.Level(c.LogLevel)
	}
	ctr := &Container{Config: c, Logger: logger}
	defer func() {
		if returnErr != nil {
			returnErr = errorkit.Merge(returnErr, ctr.Close())
		}
	}()

	switch c.Storage {
	case StorageMemory, "":
		mem := memory.NewMemory()
		ctr.UseCases = shop.UseCases{
			Users:     memory.NewUsers(mem),
			CartItems: memory.NewCartItems(mem),
			Orders:    memory.NewOrders(mem),
		}
	case StorageBolt:
		store, err := boltdb.Open(c.BoltPath)
		if err != nil {
			return nil, err
		}
		ctr.td.Defer(store.Close)
		ctr.UseCases = shop.UseCases{
			Users:     store.Users(),
			CartItems: store.CartItems(),
			Orders:    store.Orders(),
		}
	default:
		return nil, ErrUnknownStorage.F("%q", c.Storage)
	}
	return ctr, nil
}

func (c *Container) CartViewModel(userID shop.UserID) *viewmodel.CartViewModel {
	vm := viewmodel.NewCartViewModel(c.UseCases, userID, c.Logger)
	c.td.Defer(func() error { vm.Close(); return nil })
	return vm
}

func (c *Container) OrdersViewModel(userID shop.UserID) *viewmodel.OrdersViewModel {
	vm := viewmodel.NewOrdersViewModel(c.UseCases, userID, c.Logger)
	c.td.Defer(func() error { vm.Close(); return nil })
	return vm
}

// Close releases every resource the Container handed out, in reverse order.
func (c *Container) Close() error {
	return c.td.Finish()
}
