package models

import "time"

// OrderStatus enumerates the order lifecycle.
type OrderStatus string

const (
	OrderPending         OrderStatus = "PENDING"
	OrderPaid            OrderStatus = "PAID"
	OrderShipped         OrderStatus = "SHIPPED"
	OrderDelivered       OrderStatus = "DELIVERED"
	OrderCanceled        OrderStatus = "CANCELED"
	OrderReturnRequested OrderStatus = "RETURN_REQUESTED"
	OrderReturnCompleted OrderStatus = "RETURN_COMPLETED"
)

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderPaid, OrderShipped, OrderDelivered,
		OrderCanceled, OrderReturnRequested, OrderReturnCompleted:
		return true
	}
	return false
}

// Shipping rule applied at checkout.
const (
	FreeShippingThreshold = 50000
	ShippingFee           = 3000
)

// ShippingCost returns the delivery fee for a products subtotal.
func ShippingCost(productsPrice int) int {
	if productsPrice >= FreeShippingThreshold {
		return 0
	}
	return ShippingFee
}

// OrderItemInput is one requested line at order creation.
type OrderItemInput struct {
	ProductSizeID int `json:"productSizeId" validate:"required,gt=0"`
	Quantity      int `json:"quantity" validate:"required,gte=1"`
}

// CreateOrderRequest is the order-creation payload. Recipient fields come
// from the checkout form; validation runs before any network call.
type CreateOrderRequest struct {
	Items           []OrderItemInput `json:"items" validate:"required,min=1,dive"`
	RecipientName   string           `json:"recipientName" validate:"required,min=1,max=50"`
	RecipientPhone  string           `json:"recipientPhone" validate:"required,min=9,max=20"`
	ZipCode         string           `json:"zipCode" validate:"required"`
	Address1        string           `json:"address1" validate:"required"`
	Address2        string           `json:"address2" validate:"required"`
	GatePassword    string           `json:"gatePassword,omitempty"`
	DeliveryRequest string           `json:"deliveryRequest,omitempty"`
	PaymentMethod   string           `json:"paymentMethod" validate:"required"`
}

// OrderItem is a frozen order line: price is captured at creation time and
// does not follow later catalog changes.
type OrderItem struct {
	ID          int          `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderID     int          `json:"-"`
	Quantity    int          `json:"quantity"`
	Price       int          `json:"price"`
	ProductSize CartItemSize `json:"productSize" gorm:"serializer:json"`
}

// OrderPayment summarizes the settled payment on an order.
type OrderPayment struct {
	Status string `json:"status"`
	Method string `json:"method"`
	Amount int    `json:"amount"`
}

// Order is the server-created purchase record.
type Order struct {
	ID          int         `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderNumber string      `json:"orderNumber" gorm:"uniqueIndex;type:varchar(36)"`
	UserID      int         `json:"-"`
	Status      OrderStatus `json:"status" gorm:"type:varchar(20)"`
	TotalAmount int         `json:"totalAmount"`

	RecipientName   string `json:"recipientName"`
	RecipientPhone  string `json:"recipientPhone"`
	ZipCode         string `json:"zipCode"`
	Address1        string `json:"address1"`
	Address2        string `json:"address2"`
	GatePassword    string `json:"gatePassword,omitempty"`
	DeliveryRequest string `json:"deliveryRequest,omitempty"`

	Payment *OrderPayment `json:"payment,omitempty" gorm:"serializer:json"`

	Items     []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"-"`
}

// ConfirmOrderRequest carries the payment-provider callback parameters to the
// confirmation endpoint. OrderID is the provider-facing order number, not the
// numeric row id.
type ConfirmOrderRequest struct {
	PaymentKey string `json:"paymentKey" validate:"required"`
	OrderID    string `json:"orderId" validate:"required"`
	Amount     int    `json:"amount" validate:"required,gt=0"`
}

// CancelOrderRequest asks the server to cancel a PENDING order.
type CancelOrderRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// CancelOrderResponse acknowledges a cancellation.
type CancelOrderResponse struct {
	Message string `json:"message"`
	OrderID int    `json:"orderId"`
	Status  string `json:"status"`
}
