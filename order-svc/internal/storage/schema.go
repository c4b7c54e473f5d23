package storage

import (
	"context"
	"fmt"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS customers (
		id VARCHAR(5) PRIMARY KEY,
		name VARCHAR(50) NOT NULL,
		contact_info VARCHAR(15) NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS staff (
		id VARCHAR(5) PRIMARY KEY,
		name VARCHAR(50) NOT NULL,
		position VARCHAR(25) NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS menu_items (
		id VARCHAR(5) PRIMARY KEY,
		name VARCHAR(50) NOT NULL,
		price DECIMAL(15,2) NOT NULL CHECK (price >= 0)
	)`,
	`CREATE TABLE IF NOT EXISTS ingredients (
		id VARCHAR(5) PRIMARY KEY,
		name VARCHAR(50) NOT NULL,
		stock INTEGER NOT NULL CHECK (stock >= 0),
		unit VARCHAR(20) NOT NULL,
		unit_price DECIMAL(15,2) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS bill_of_materials (
		menu_id VARCHAR(5) NOT NULL REFERENCES menu_items(id),
		ingredient_id VARCHAR(5) NOT NULL REFERENCES ingredients(id),
		quantity_per_unit INTEGER NOT NULL CHECK (quantity_per_unit >= 1),
		PRIMARY KEY (menu_id, ingredient_id)
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id VARCHAR(5) PRIMARY KEY,
		order_date DATE NOT NULL,
		customer_id VARCHAR(5) NOT NULL REFERENCES customers(id),
		staff_id VARCHAR(5) NOT NULL REFERENCES staff(id),
		total DECIMAL(15,2) NOT NULL DEFAULT 0 CHECK (total >= 0),
		status VARCHAR(10) NOT NULL DEFAULT 'open',
		qr_code BYTEA
	)`,
	`CREATE TABLE IF NOT EXISTS order_lines (
		id SERIAL PRIMARY KEY,
		order_id VARCHAR(5) NOT NULL REFERENCES orders(id),
		menu_id VARCHAR(5) NOT NULL REFERENCES menu_items(id),
		quantity INTEGER NOT NULL CHECK (quantity >= 1),
		line_price DECIMAL(15,2) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS feedback (
		id SERIAL PRIMARY KEY,
		customer_id VARCHAR(5) NOT NULL REFERENCES customers(id),
		staff_id VARCHAR(5) NOT NULL REFERENCES staff(id),
		feedback_date DATE NOT NULL,
		rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
		comment TEXT
	)`,
}

// EnsureSchema creates any missing table. Existing tables are left untouched.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	for _, statement := range schemaStatements {
		if _, err := r.DB.ExecContext(ctx, statement); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
