package migrations

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
)

func hashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// Seed loads the demo shops, accounts and menu into an empty database.
// A database that already has shops is left alone.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow(`SELECT COUNT(id) FROM shops`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	shops := []string{"South Dhaba", "Frankie Rolls", "Gossip and Sip"}
	for _, name := range shops {
		if _, err := db.Exec(`INSERT INTO shops (name) VALUES (?)`, name); err != nil {
			return err
		}
	}

	categories := []string{"South Indian", "Rolls & Wraps", "Beverages", "Chinese", "Desserts", "Sandwiches"}
	for _, name := range categories {
		if _, err := db.Exec(`INSERT INTO categories (name) VALUES (?)`, name); err != nil {
			return err
		}
	}

	users := []struct {
		email, password, role, first, last string
		shopID                             any
	}{
		{"student@example.com", "student123", "student", "Janny", "Doe", nil},
		{"dhaba@example.com", "owner123", "owner", "Rajesh", "Kumar", 1},
		{"frankie@example.com", "owner123", "owner", "Priya", "Singh", 2},
		{"sip@example.com", "owner123", "owner", "Amit", "Sharma", 3},
	}
	for _, u := range users {
		_, err := db.Exec(
			`INSERT INTO users (email, password, role, first_name, last_name, shop_id) VALUES (?, ?, ?, ?, ?, ?)`,
			u.email, hashPassword(u.password), u.role, u.first, u.last, u.shopID,
		)
		if err != nil {
			return err
		}
	}

	products := []struct {
		name               string
		price              float64
		description, image string
		categoryID, shopID int
	}{
		{"Masala Dosa", 5.50, "Classic South Indian crepe with potato filling.", "/images/veggie-burger.jpg", 1, 1},
		{"Idli Sambar", 8.00, "Steamed rice cakes with lentil stew.", "/images/pasta.jpg", 1, 1},
		{"Veg Hakka Noodles", 6.75, "Indo-Chinese stir-fried noodles.", "/images/stir-fry.jpg", 4, 1},
		{"Paneer Tikka Roll", 7.25, "Grilled paneer wrapped in a soft flatbread.", "/images/salad.jpg", 2, 2},
		{"Chicken Shawarma Roll", 9.50, "Classic Middle-Eastern style chicken wrap.", "/images/salmon.jpg", 2, 2},
		{"Veg Club Sandwich", 6.00, "Triple-layered sandwich with fresh vegetables.", "/images/sandwich.jpg", 6, 2},
		{"Espresso", 2.50, "A strong shot of coffee.", "/images/espresso.jpg", 3, 3},
		{"Iced Coffee", 3.50, "Chilled coffee served over ice.", "/images/iced-coffee.jpg", 3, 3},
		{"Chocolate Brownie", 4.00, "A rich and fudgy chocolate brownie.", "/images/cake.jpg", 5, 3},
	}
	for _, p := range products {
		_, err := db.Exec(
			`INSERT INTO products (name, price, description, image_url, category_id, shop_id) VALUES (?, ?, ?, ?, ?, ?)`,
			p.name, p.price, p.description, p.image, p.categoryID, p.shopID,
		)
		if err != nil {
			return err
		}
	}

	return nil
}
