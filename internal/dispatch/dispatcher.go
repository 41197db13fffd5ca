// Package dispatch maps inbound command requests to catalog, user store, and
// order engine operations, and shapes their results into structured responses.
package dispatch

import (
	"context"
	"sync"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"

	"github.com/xenking/eadrium-canteen/internal/domain/menu"
	"github.com/xenking/eadrium-canteen/internal/domain/order"
	"github.com/xenking/eadrium-canteen/internal/domain/user"
)

// DefaultGreeting is the ping response used when no greeting is configured.
const DefaultGreeting = "Hello, internet"

// Every item enters the menu with a single unit of stock; restocking is an
// operator concern handled through seed files.
const defaultAmountAvailable = 1

// Options holds non-dependency configuration for the Dispatcher.
type Options struct {
	// Greeting is the ping response. Defaults to DefaultGreeting.
	Greeting string
	// MeterProvider and TracerProvider instrument per-command telemetry.
	// Either may be nil to disable.
	MeterProvider  metric.MeterProvider
	TracerProvider trace.TracerProvider
}

// Dispatcher routes commands to the domain components and serializes them:
// every command runs under one mutex, so each validate-then-mutate sequence
// is a single critical section. The dispatcher itself never mutates state.
type Dispatcher struct {
	mu sync.Mutex

	catalog *menu.Catalog
	users   *user.Store
	engine  *order.Engine

	greeting string
	commands metric.Int64Counter
	tracer   trace.Tracer
}

// New creates a Dispatcher over the given domain components.
func New(catalog *menu.Catalog, users *user.Store, engine *order.Engine, opts Options) (*Dispatcher, error) {
	if opts.Greeting == "" {
		opts.Greeting = DefaultGreeting
	}
	if opts.MeterProvider == nil {
		opts.MeterProvider = noop.NewMeterProvider()
	}
	if opts.TracerProvider == nil {
		opts.TracerProvider = tracenoop.NewTracerProvider()
	}

	commands, err := opts.MeterProvider.
		Meter("github.com/xenking/eadrium-canteen/internal/dispatch").
		Int64Counter("canteen.commands",
			metric.WithDescription("Dispatched commands by command token and result status"),
		)
	if err != nil {
		return nil, errors.Wrap(err, "create command counter")
	}

	return &Dispatcher{
		catalog:  catalog,
		users:    users,
		engine:   engine,
		greeting: opts.Greeting,
		commands: commands,
		tracer:   opts.TracerProvider.Tracer("github.com/xenking/eadrium-canteen/internal/dispatch"),
	}, nil
}

// Dispatch executes one command and returns its structured response.
// Safe for concurrent use; commands are processed one at a time.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) Response {
	cmd := req.Command()
	ctx, span := d.tracer.Start(ctx, "dispatch "+cmd)
	defer span.End()

	d.mu.Lock()
	resp := d.dispatch(req)
	d.mu.Unlock()

	status := "ok"
	if !resp.OK() {
		status = string(resp.Code)
	}
	d.commands.Add(ctx, 1, metric.WithAttributes(
		attribute.String("command", cmd),
		attribute.String("status", status),
	))
	zctx.From(ctx).Debug("Command dispatched",
		zap.String("command", cmd),
		zap.String("status", status),
	)

	return resp
}

func (d *Dispatcher) dispatch(req Request) Response {
	switch req.Command() {
	case CmdPing:
		return Success(d.greeting)
	case CmdCreateUser:
		return d.createUser(req)
	case CmdAddMenuItem:
		return d.addMenuItem(req)
	case CmdPlaceOrder:
		return d.placeOrder(req)
	case CmdDeleteOrder:
		return d.deleteOrder(req)
	case CmdGetOrder:
		return d.getOrder(req)
	case CmdGetItem:
		return d.getItem(req)
	case CmdGetUser:
		return d.getUser(req)
	case CmdGetCart:
		return d.getCart(req)
	default:
		return Failf(CodeUnknownCommand, "unknown command %q", req.Command())
	}
}

func (d *Dispatcher) createUser(req Request) Response {
	userID, _ := req.Param(ParamUserID)
	userName, _ := req.Param(ParamUserName)
	yearLevel, _ := req.Param(ParamYearLevel)
	if userID == "" || userName == "" || yearLevel == "" {
		return Fail(CodeMissingParameter)
	}

	if _, err := d.users.Create(userID, userName, yearLevel); err != nil {
		return failFromError(err)
	}
	return Success(RespSuccess)
}

func (d *Dispatcher) addMenuItem(req Request) Response {
	raw, ok := req.Param(ParamPrice)
	if !ok {
		return Fail(CodeInvalidPriceFormat)
	}
	price, err := decimal.NewFromString(raw)
	if err != nil || price.IsNegative() {
		return Fail(CodeInvalidPriceFormat)
	}

	itemID, _ := req.Param(ParamItemID)
	itemName, _ := req.Param(ParamItemName)
	desc, _ := req.Param(ParamDesc)
	itemType, _ := req.Param(ParamItemType)

	// No uniqueness check on itemID: duplicate ids are permitted and resolve
	// to the first added item.
	d.catalog.Add(&menu.Item{
		ID:              itemID,
		Name:            itemName,
		Description:     desc,
		Price:           price,
		Type:            itemType,
		AmountAvailable: defaultAmountAvailable,
	})
	return Success(RespSuccess)
}

func (d *Dispatcher) placeOrder(req Request) Response {
	orderID, _ := req.Param(ParamOrderID)
	itemID, _ := req.Param(ParamItemID)
	userID, _ := req.Param(ParamUserID)
	orderType, _ := req.Param(ParamOrderType)

	err := d.engine.Place(order.PlaceRequest{
		OrderID: orderID,
		ItemID:  itemID,
		UserID:  userID,
		Type:    orderType,
	})
	if err != nil {
		return failFromError(err)
	}
	return Success(RespSuccess)
}

func (d *Dispatcher) deleteOrder(req Request) Response {
	orderID, _ := req.Param(ParamOrderID)
	userID, _ := req.Param(ParamUserID)

	if err := d.engine.Delete(userID, orderID); err != nil {
		return failFromError(err)
	}
	return Success(RespSuccess)
}

func (d *Dispatcher) getOrder(req Request) Response {
	userID, _ := req.Param(ParamUserID)
	u, err := d.users.Find(userID)
	if err != nil {
		return failFromError(err)
	}

	orderID, _ := req.Param(ParamOrderID)
	o, ok := u.FindOrder(orderID)
	if !ok {
		return Fail(CodeInvalidOrder)
	}
	return Success(o.String())
}

func (d *Dispatcher) getItem(req Request) Response {
	itemID, _ := req.Param(ParamItemID)
	item, err := d.catalog.Find(itemID)
	if err != nil {
		return failFromError(err)
	}
	return Success(item.String())
}

func (d *Dispatcher) getUser(req Request) Response {
	userID, _ := req.Param(ParamUserID)
	u, err := d.users.Find(userID)
	if err != nil {
		return failFromError(err)
	}
	return Success(u.String())
}

func (d *Dispatcher) getCart(req Request) Response {
	userID, _ := req.Param(ParamUserID)
	u, err := d.users.Find(userID)
	if err != nil {
		return failFromError(err)
	}
	return Success(u.Cart())
}

// failFromError maps domain errors onto the failure taxonomy.
func failFromError(err error) Response {
	switch {
	case errors.Is(err, order.ErrInvalid):
		return Fail(CodeInvalidOrder)
	case errors.Is(err, order.ErrDuplicate):
		return Fail(CodeDuplicateOrder)
	case errors.Is(err, menu.ErrEmpty):
		return Fail(CodeEmptyMenu)
	case errors.Is(err, menu.ErrNotFound):
		return Fail(CodeInvalidMenuItem)
	case errors.Is(err, menu.ErrSoldOut):
		return Fail(CodeSoldOut)
	case errors.Is(err, user.ErrNotFound):
		return Fail(CodeInvalidUser)
	case errors.Is(err, user.ErrDuplicate):
		return Fail(CodeDuplicateUser)
	case errors.Is(err, user.ErrInsufficientFunds):
		return Fail(CodeUserBroke)
	default:
		return Failf(CodeInvalidOrder, "%s", err)
	}
}
