/*
Package blueprint is a scaffolding template for layered applications with a view model based presentation.

The idea

A feature should be readable top to bottom without knowing which database, terminal or window toolkit runs it.
Every layer only knows about the one below it through a small port, and the outermost layer,
the view, only ever talks to view models.
The view model is where presentation state lives, and the command is how the view asks for work.

Layers

	.
	├── domain/shop            entities, repository ports and use cases
	│   ├── shopcontract       behaviour every repository adapter must satisfy
	│   └── shopmock           generated doubles of the repository ports
	├── adapter
	│   ├── memory             process memory storage, shared within one process
	│   └── boltdb             embedded file storage, the default
	├── ui/viewmodel           presentation state, exposed as commands and cached values
	├── pkg
	│   ├── command            asynchronous, observable unit of work
	│   ├── result             success or failure of a finished command
	│   └── listenable         subscribe and notify primitives
	├── internal/di            static wiring of the layers above
	└── cmd/shop               terminal front end

Dependencies point inwards.
The domain imports nothing from the rest of the repository,
adapters import the domain, view models import the domain and pkg,
and only internal/di knows every concrete type.

Commands

A command wraps an action with the state a view needs to render it:
whether it is running, and how the last run ended.
Listeners are told when a run starts and when it ends, exactly once each.
A command runs one action at a time, and calling it again while it runs is a no-op,
so a double click on a button does not place two orders.

	checkout := command.New0(func(ctx context.Context) (shop.Order, error) {
		return useCases.PlaceOrder(ctx, userID)
	})
	checkout.Subscribe(func() { render(checkout.State()) })
	checkout.Start(ctx, struct{}{})

Contracts

Repository ports come with a contract suite.
An adapter is done when its test runs the contract,
and a use case test can rely on the contract instead of on a concrete database.

Adding a feature

Start with the entities and the ports in a new domain package,
write the use cases against the ports with mock doubles,
then write the contract and make the memory adapter pass it.
Only after that add a view model that turns the use cases into commands,
and register the new pieces in internal/di.
Other storage adapters and front ends can follow at any time without touching the domain.
*/
package blueprint
