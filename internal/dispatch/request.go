package dispatch

// Command tokens recognized on the wire.
const (
	CmdPing        = "ping"
	CmdCreateUser  = "createUser"
	CmdAddMenuItem = "addMenuItem"
	CmdPlaceOrder  = "placeOrder"
	CmdDeleteOrder = "deleteOrder"
	CmdGetOrder    = "getOrder"
	CmdGetItem     = "getItem"
	CmdGetUser     = "getUser"
	CmdGetCart     = "getCart"
)

// Parameter names recognized on the wire.
const (
	ParamUserID    = "userId"
	ParamUserName  = "userName"
	ParamYearLevel = "yearLevel"
	ParamItemID    = "itemId"
	ParamItemName  = "itemName"
	ParamDesc      = "desc"
	ParamPrice     = "price"
	ParamItemType  = "itemType"
	ParamOrderID   = "orderId"
	ParamOrderType = "orderType"
)

// Request is a single inbound command, decoupled from transport framing.
type Request interface {
	// Command returns the command token.
	Command() string
	// Param returns the named parameter and whether it was present.
	Param(name string) (string, bool)
}

// mapRequest is a Request backed by a plain parameter map.
type mapRequest struct {
	command string
	params  map[string]string
}

// NewRequest builds a Request from a command token and a parameter map.
// Transports and tests use it to feed the dispatcher directly.
func NewRequest(command string, params map[string]string) Request {
	return mapRequest{command: command, params: params}
}

func (r mapRequest) Command() string {
	return r.command
}

func (r mapRequest) Param(name string) (string, bool) {
	v, ok := r.params[name]
	return v, ok
}
