package entity

type Product struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url"`
	CategoryID  int     `json:"category_id"`
	ShopID      int     `json:"shop_id"`
}

// ProductUpdate carries a partial product update; nil fields are left
// untouched. ShopID is deliberately absent: products never move shops.
type ProductUpdate struct {
	Name        *string  `json:"name"`
	Price       *float64 `json:"price"`
	Description *string  `json:"description"`
	ImageURL    *string  `json:"image_url"`
	CategoryID  *int     `json:"category_id"`
}
