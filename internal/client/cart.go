package client

// Cart assembles a supply before submission. Lines keep insertion order;
// adding a product already present merges into the existing line.
type Cart struct {
	lines []CartLine
}

type CartLine struct {
	ProductID   int
	ProductName string
	Quantity    int
}

type CartSummary struct {
	Lines      int
	TotalUnits int
}

func (c *Cart) find(productID int) int {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// AddProduct appends a line with quantity 1, or bumps the quantity when the
// product is already in the cart.
func (c *Cart) AddProduct(productID int, name string) {
	if i := c.find(productID); i >= 0 {
		c.lines[i].Quantity++
		return
	}
	c.lines = append(c.lines, CartLine{ProductID: productID, ProductName: name, Quantity: 1})
}

func (c *Cart) Increment(productID int) {
	if i := c.find(productID); i >= 0 {
		c.lines[i].Quantity++
	}
}

// Decrement floors at 1. Dropping a line takes an explicit Remove.
func (c *Cart) Decrement(productID int) {
	if i := c.find(productID); i >= 0 && c.lines[i].Quantity > 1 {
		c.lines[i].Quantity--
	}
}

func (c *Cart) Remove(productID int) {
	if i := c.find(productID); i >= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
	}
}

func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Empty() bool {
	return len(c.lines) == 0
}

// Summary feeds the confirm dialog shown before submission.
func (c *Cart) Summary() CartSummary {
	s := CartSummary{Lines: len(c.lines)}
	for _, l := range c.lines {
		s.TotalUnits += l.Quantity
	}
	return s
}

// SupplyRequest is the one-shot body posted to create the supply.
type SupplyRequest struct {
	WarehouseID int                 `json:"warehouse_id"`
	Notes       string              `json:"notes,omitempty"`
	Items       []SupplyRequestItem `json:"items"`
}

type SupplyRequestItem struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

func (c *Cart) ToSupplyRequest(warehouseID int, notes string) SupplyRequest {
	req := SupplyRequest{WarehouseID: warehouseID, Notes: notes}
	for _, l := range c.lines {
		req.Items = append(req.Items, SupplyRequestItem{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	return req
}
