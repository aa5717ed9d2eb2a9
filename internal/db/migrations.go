package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'user_role') THEN
			CREATE TYPE user_role AS ENUM ('admin', 'foreman');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'object_status') THEN
			CREATE TYPE object_status AS ENUM ('active', 'completed');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'expense_type') THEN
			CREATE TYPE expense_type AS ENUM ('supplies', 'transport', 'overhead');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'payment_source') THEN
			CREATE TYPE payment_source AS ENUM ('company', 'personal');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'compensation_status') THEN
			CREATE TYPE compensation_status AS ENUM ('pending', 'compensated');
		END IF;
	END
	$$;`,
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		telegram_id BIGINT NOT NULL UNIQUE,
		username VARCHAR(255),
		full_name VARCHAR(255),
		role user_role NOT NULL DEFAULT 'foreman',
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS objects (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(500) NOT NULL,
		address TEXT,
		foreman_name VARCHAR(255),
		start_date DATE,
		end_date DATE,
		status object_status NOT NULL DEFAULT 'active',
		prepayment NUMERIC(12,2) NOT NULL DEFAULT 0,
		final_payment NUMERIC(12,2) NOT NULL DEFAULT 0,
		estimate_s3 NUMERIC(12,2) NOT NULL DEFAULT 0,
		estimate_works NUMERIC(12,2) NOT NULL DEFAULT 0,
		estimate_supplies NUMERIC(12,2) NOT NULL DEFAULT 0,
		estimate_overhead NUMERIC(12,2) NOT NULL DEFAULT 0,
		estimate_transport NUMERIC(12,2) NOT NULL DEFAULT 0,
		actual_s3_discount NUMERIC(12,2) NOT NULL DEFAULT 0,
		created_by UUID NOT NULL REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		completed_at TIMESTAMPTZ
	);`,
	`CREATE INDEX IF NOT EXISTS idx_objects_status ON objects (status);`,
	`CREATE INDEX IF NOT EXISTS idx_objects_start_date ON objects (start_date);`,
	`CREATE INDEX IF NOT EXISTS idx_objects_completed_at ON objects (completed_at);`,
	`CREATE TABLE IF NOT EXISTS expenses (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		object_id UUID NOT NULL REFERENCES objects(id) ON DELETE CASCADE,
		type expense_type NOT NULL,
		amount NUMERIC(12,2) NOT NULL,
		description TEXT NOT NULL,
		date DATE NOT NULL,
		payment_source payment_source NOT NULL DEFAULT 'company',
		compensation_status compensation_status,
		receipt_url VARCHAR(500),
		added_by UUID NOT NULL REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_expenses_object_id ON expenses (object_id);`,
	`CREATE INDEX IF NOT EXISTS idx_expenses_type ON expenses (type);`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM information_schema.columns WHERE table_name = 'expenses' AND column_name = 'payment_source') THEN
			ALTER TABLE expenses ADD COLUMN payment_source payment_source NOT NULL DEFAULT 'company';
		END IF;
		IF NOT EXISTS (SELECT 1 FROM information_schema.columns WHERE table_name = 'expenses' AND column_name = 'compensation_status') THEN
			ALTER TABLE expenses ADD COLUMN compensation_status compensation_status;
		END IF;
	END
	$$;`,
	`CREATE TABLE IF NOT EXISTS advances (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		object_id UUID NOT NULL REFERENCES objects(id) ON DELETE CASCADE,
		worker_name VARCHAR(255) NOT NULL,
		work_type VARCHAR(500) NOT NULL DEFAULT '',
		amount NUMERIC(12,2) NOT NULL,
		date DATE NOT NULL,
		added_by UUID NOT NULL REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_advances_object_id ON advances (object_id);`,
	`CREATE TABLE IF NOT EXISTS company_expenses (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		category VARCHAR(255) NOT NULL,
		amount NUMERIC(12,2) NOT NULL,
		description TEXT,
		date DATE NOT NULL,
		added_by UUID REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_company_expenses_category ON company_expenses (category);`,
	`CREATE INDEX IF NOT EXISTS idx_company_expenses_date ON company_expenses (date);`,
	`CREATE TABLE IF NOT EXISTS company_recurring_expenses (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		category VARCHAR(255) NOT NULL,
		amount NUMERIC(12,2) NOT NULL,
		day_of_month INTEGER NOT NULL DEFAULT 1,
		start_month INTEGER NOT NULL,
		start_year INTEGER NOT NULL,
		end_month INTEGER,
		end_year INTEGER,
		description TEXT,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_company_recurring_active ON company_recurring_expenses (is_active);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
