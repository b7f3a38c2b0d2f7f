package model

// LineKey identifies a single cart line. Two entries for the same product
// that differ in colour or size are distinct lines.
type LineKey struct {
	ProductID int    `json:"productId"`
	Color     string `json:"color,omitempty"`
	Size      string `json:"size,omitempty"`
}

// CartItem is a single line in the shopping cart.
type CartItem struct {
	Product       Product `json:"product"`
	Quantity      int     `json:"quantity"`
	SelectedColor string  `json:"selectedColor,omitempty"`
	SelectedSize  string  `json:"selectedSize,omitempty"`
}

// Key returns the line identity for this item.
func (i CartItem) Key() LineKey {
	return LineKey{ProductID: i.Product.ID, Color: i.SelectedColor, Size: i.SelectedSize}
}

// LineTotal returns price times quantity for this line.
func (i CartItem) LineTotal() float64 {
	return i.Product.Price * float64(i.Quantity)
}

// ShippingAddress holds the checkout shipping details. All fields except
// PostalCode are required.
type ShippingAddress struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	Wilaya     string `json:"wilaya"`
	PostalCode string `json:"postalCode,omitempty"`
}
