package models

// TransientCartItemID marks a cart item that exists only in client memory,
// never in the server cart. Buy-now purchases synthesize such an item so the
// checkout path is the same for both entry points.
const TransientCartItemID = -1

// CartItemProduct is the slice of product data a cart line carries: enough to
// render and price the line without re-fetching the catalog.
type CartItemProduct struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Price int    `json:"price"`
	Style string `json:"style"`
}

// CartItemColor nests the product inside the chosen colorway.
type CartItemColor struct {
	ColorName string          `json:"colorName"`
	HexCode   string          `json:"hexCode,omitempty"`
	Product   CartItemProduct `json:"product"`
	Images    []CartItemImage `json:"images"`
}

// CartItemImage is a thumbnail reference on a cart line.
type CartItemImage struct {
	URL string `json:"url"`
}

// CartItemSize identifies the purchased variant: the size row carries the id
// used for add-to-cart and order creation, plus live stock for UI caps.
type CartItemSize struct {
	ID           int           `json:"id"`
	Size         string        `json:"size"`
	Stock        int           `json:"stock"`
	ProductColor CartItemColor `json:"productColor"`
}

// CartItem is one line of the cart. ID is server-assigned, or
// TransientCartItemID for buy-now lines. Quantity is always >= 1; a line at
// zero is removed, never retained.
type CartItem struct {
	ID          int          `json:"id"`
	Quantity    int          `json:"quantity"`
	ProductSize CartItemSize `json:"productSize"`
}

// UnitPrice returns the catalog price cached on the line.
func (it CartItem) UnitPrice() int {
	return it.ProductSize.ProductColor.Product.Price
}

// Subtotal returns quantity times the cached unit price.
func (it CartItem) Subtotal() int {
	return it.UnitPrice() * it.Quantity
}

// Cart is the server's durable cart for one user. Clients hold a cached copy;
// the server stays authoritative.
type Cart struct {
	Items []CartItem `json:"items"`
}
