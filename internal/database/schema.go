package database

import "context"

// ensureTables creates the three tables if absent. Statements are idempotent
// so running them on every start is safe.
func (d *DB) ensureTables(ctx context.Context) error {
	tables := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INT NOT NULL PRIMARY KEY AUTO_INCREMENT,
			name VARCHAR(30) NOT NULL,
			email VARCHAR(50) NOT NULL UNIQUE,
			phone VARCHAR(20) NOT NULL UNIQUE,
			country VARCHAR(20) NOT NULL,
			address VARCHAR(50) NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS property_claims (
			policy_num VARCHAR(20) NOT NULL PRIMARY KEY,
			ph_num VARCHAR(20) NOT NULL,
			staff_id VARCHAR(20),
			inc_date DATE NOT NULL,
			inc_time TIME NOT NULL,
			address VARCHAR(50) NOT NULL,
			property_type VARCHAR(20) NOT NULL,
			damage_type VARCHAR(20) NOT NULL,
			country VARCHAR(20) NOT NULL,
			emg_cont VARCHAR(20),
			descr VARCHAR(100) NOT NULL,
			submission_date TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS motor_claims (
			policy_num VARCHAR(20) NOT NULL PRIMARY KEY,
			ph_num VARCHAR(20) NOT NULL,
			staff_id VARCHAR(20),
			inc_date DATE NOT NULL,
			inc_time TIME NOT NULL,
			plate_no VARCHAR(10) NOT NULL,
			colour VARCHAR(10) NOT NULL,
			engine_no VARCHAR(20),
			chasis_no VARCHAR(17),
			km_reading VARCHAR(20),
			variant_year VARCHAR(30) NOT NULL,
			address VARCHAR(50) NOT NULL,
			country VARCHAR(20) NOT NULL,
			descr VARCHAR(100) NOT NULL,
			submission_date TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);`,
	}

	for _, tableSQL := range tables {
		if _, err := d.pool.ExecContext(ctx, tableSQL); err != nil {
			return err
		}
	}

	return nil
}
