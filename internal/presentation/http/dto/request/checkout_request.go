package request

// SelectTableRequest picks the table the cart is built for
type SelectTableRequest struct {
	TableID int `json:"table_id" binding:"required,min=1"`
}

// AddItemRequest adds one unit of a menu item to the cart
type AddItemRequest struct {
	MenuItemID int `json:"menu_item_id" binding:"required,min=1"`
}

// ChangeQuantityRequest adjusts a cart line by delta. A line that reaches
// zero is removed.
type ChangeQuantityRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// DiscountRequest sets the discount percent. Values outside 0..100 are
// clamped.
type DiscountRequest struct {
	Percent *float64 `json:"percent" binding:"required"`
}

// PaymentMethodRequest chooses how the bill will be settled
type PaymentMethodRequest struct {
	Method string `json:"method" binding:"required"`
}
