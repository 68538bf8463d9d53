package entity

type User struct {
	ID        int    `json:"id"`
	Email     string `json:"email"`
	Password  string `json:"-"`
	Role      string `json:"role"` // "student" or "owner"
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	ShopID    *int   `json:"shop_id"` // set for owners only
}

type UserSignup struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// UserUpdate carries a partial profile update; nil fields are left
// untouched.
type UserUpdate struct {
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}
