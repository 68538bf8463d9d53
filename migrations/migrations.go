package migrations

import (
	"database/sql"
	"fmt"
	"time"
)

// statements returns the CREATE TABLE statements for the given SQL
// dialect ("sqlite" or "mysql"). Order matters: referenced tables come
// first.
func statements(dialect string) []string {
	if dialect == "mysql" {
		return []string{
			`CREATE TABLE IF NOT EXISTS shops (
				id INT AUTO_INCREMENT PRIMARY KEY,
				name VARCHAR(255) NOT NULL UNIQUE
			);`,
			`CREATE TABLE IF NOT EXISTS categories (
				id INT AUTO_INCREMENT PRIMARY KEY,
				name VARCHAR(255) NOT NULL UNIQUE
			);`,
			`CREATE TABLE IF NOT EXISTS users (
				id INT AUTO_INCREMENT PRIMARY KEY,
				email VARCHAR(255) NOT NULL UNIQUE,
				password VARCHAR(255) NOT NULL,
				role VARCHAR(20) NOT NULL,
				first_name VARCHAR(255),
				last_name VARCHAR(255),
				shop_id INT,
				FOREIGN KEY (shop_id) REFERENCES shops(id)
			);`,
			`CREATE TABLE IF NOT EXISTS products (
				id INT AUTO_INCREMENT PRIMARY KEY,
				name VARCHAR(255) NOT NULL,
				price DOUBLE NOT NULL,
				description TEXT,
				image_url VARCHAR(255),
				category_id INT,
				shop_id INT,
				FOREIGN KEY (category_id) REFERENCES categories(id),
				FOREIGN KEY (shop_id) REFERENCES shops(id)
			);`,
			`CREATE TABLE IF NOT EXISTS orders (
				id INT AUTO_INCREMENT PRIMARY KEY,
				user_id INT NOT NULL,
				shop_id INT NOT NULL,
				total_price DOUBLE NOT NULL,
				status VARCHAR(20) NOT NULL DEFAULT 'Pending',
				order_date TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (user_id) REFERENCES users(id),
				FOREIGN KEY (shop_id) REFERENCES shops(id)
			);`,
			`CREATE TABLE IF NOT EXISTS order_items (
				id INT AUTO_INCREMENT PRIMARY KEY,
				order_id INT NOT NULL,
				product_id INT NOT NULL,
				quantity INT NOT NULL,
				price_per_item DOUBLE NOT NULL,
				FOREIGN KEY (order_id) REFERENCES orders(id),
				FOREIGN KEY (product_id) REFERENCES products(id)
			);`,
		}
	}
	return []string{
		`CREATE TABLE IF NOT EXISTS shops (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE
		);`,
		`CREATE TABLE IF NOT EXISTS categories (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE
		);`,
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			role TEXT NOT NULL,
			first_name TEXT,
			last_name TEXT,
			shop_id INTEGER,
			FOREIGN KEY (shop_id) REFERENCES shops(id)
		);`,
		`CREATE TABLE IF NOT EXISTS products (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			price REAL NOT NULL,
			description TEXT,
			image_url TEXT,
			category_id INTEGER,
			shop_id INTEGER,
			FOREIGN KEY (category_id) REFERENCES categories(id),
			FOREIGN KEY (shop_id) REFERENCES shops(id)
		);`,
		`CREATE TABLE IF NOT EXISTS orders (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			shop_id INTEGER NOT NULL,
			total_price REAL NOT NULL,
			status TEXT NOT NULL DEFAULT 'Pending',
			order_date TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id),
			FOREIGN KEY (shop_id) REFERENCES shops(id)
		);`,
		`CREATE TABLE IF NOT EXISTS order_items (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			order_id INTEGER NOT NULL,
			product_id INTEGER NOT NULL,
			quantity INTEGER NOT NULL,
			price_per_item REAL NOT NULL,
			FOREIGN KEY (order_id) REFERENCES orders(id),
			FOREIGN KEY (product_id) REFERENCES products(id)
		);`,
	}
}

// AutoMigrate creates all tables if they do not exist, retrying each
// statement in case the database is still starting up.
func AutoMigrate(dialect string, retries int, dbs ...*sql.DB) error {
	for _, db := range dbs {
		for _, query := range statements(dialect) {
			_, err := db.Exec(query)
			if err != nil {
				// Retry creating the table
				for i := 0; i < retries; i++ {
					time.Sleep(1 * time.Second)
					_, err = db.Exec(query)
					if err == nil {
						break
					}
				}
			}
			if err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
		}
	}
	return nil
}
