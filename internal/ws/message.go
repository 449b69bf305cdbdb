package ws

const (
	TypeRegister     = "register"
	TypeRegistered   = "registered"
	TypeOrderShipped = "order_shipped"
)

// inboundFrame is what clients send. UserID is `any` because browser clients
// send the id as a bare number while others quote it.
type inboundFrame struct {
	Type   string `json:"type"`
	UserID any    `json:"userId"`
}

type RegisteredAck struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type ShippedNotice struct {
	Type    string `json:"type"`
	OrderID uint64 `json:"orderId"`
	Message string `json:"message"`
}
