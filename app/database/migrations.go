package database

import (
	"database/sql"

	"oakridge-academy/app/config"
)

// RunMigrations applies the schema. Statements are idempotent so the
// application can run them on every start.
func RunMigrations(db *sql.DB) error {
	log := config.GetLogger()
	log.Info().Msg("running database migrations")

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	if err := seedRoles(db); err != nil {
		return err
	}

	log.Info().Msg("database migrations completed")
	return nil
}

var schema = []string{
	`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`,

	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		email VARCHAR(255) NOT NULL,
		password VARCHAR(255) NOT NULL,
		first_name VARCHAR(100) NOT NULL,
		last_name VARCHAR(100) NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT true,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		deleted_at TIMESTAMPTZ,
		CONSTRAINT users_email_key UNIQUE (email)
	)`,

	`CREATE TABLE IF NOT EXISTS roles (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name VARCHAR(50) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT roles_name_key UNIQUE (name)
	)`,

	`CREATE TABLE IF NOT EXISTS user_roles (
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		role_id UUID NOT NULL REFERENCES roles(id),
		PRIMARY KEY (user_id, role_id)
	)`,

	`CREATE TABLE IF NOT EXISTS classes (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name VARCHAR(100) NOT NULL,
		section VARCHAR(50),
		year_level INT,
		description TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT classes_name_section_key UNIQUE (name, section)
	)`,

	`CREATE TABLE IF NOT EXISTS subjects (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name VARCHAR(100) NOT NULL,
		code VARCHAR(50) NOT NULL,
		description TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT subjects_code_key UNIQUE (code)
	)`,

	`CREATE TABLE IF NOT EXISTS students (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		first_name VARCHAR(100) NOT NULL,
		last_name VARCHAR(100) NOT NULL,
		email VARCHAR(255) NOT NULL,
		phone VARCHAR(20),
		address TEXT,
		gender VARCHAR(10),
		date_of_birth DATE,
		admission_date DATE NOT NULL DEFAULT CURRENT_DATE,
		class_id UUID REFERENCES classes(id),
		user_id UUID REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT students_email_key UNIQUE (email)
	)`,

	`CREATE TABLE IF NOT EXISTS teachers (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		first_name VARCHAR(100) NOT NULL,
		last_name VARCHAR(100) NOT NULL,
		email VARCHAR(255) NOT NULL,
		phone VARCHAR(20),
		address TEXT,
		date_of_joining DATE NOT NULL DEFAULT CURRENT_DATE,
		user_id UUID REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT teachers_email_key UNIQUE (email)
	)`,

	`CREATE TABLE IF NOT EXISTS parents (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		first_name VARCHAR(100) NOT NULL,
		last_name VARCHAR(100) NOT NULL,
		email VARCHAR(255) NOT NULL,
		phone VARCHAR(20),
		user_id UUID REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT parents_email_key UNIQUE (email)
	)`,

	`CREATE TABLE IF NOT EXISTS student_parents (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		student_id UUID NOT NULL REFERENCES students(id) ON DELETE CASCADE,
		parent_id UUID NOT NULL REFERENCES parents(id) ON DELETE CASCADE,
		relationship VARCHAR(20) NOT NULL DEFAULT 'guardian',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT student_parents_pair_key UNIQUE (student_id, parent_id)
	)`,

	`CREATE TABLE IF NOT EXISTS teacher_class_subjects (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		teacher_id UUID NOT NULL REFERENCES teachers(id) ON DELETE CASCADE,
		class_id UUID NOT NULL REFERENCES classes(id),
		subject_id UUID NOT NULL REFERENCES subjects(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT teacher_class_subjects_triple_key UNIQUE (teacher_id, class_id, subject_id)
	)`,

	`CREATE TABLE IF NOT EXISTS enrollments (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		student_id UUID NOT NULL REFERENCES students(id) ON DELETE CASCADE,
		class_id UUID NOT NULL REFERENCES classes(id),
		subject_id UUID NOT NULL REFERENCES subjects(id),
		enrollment_date DATE NOT NULL DEFAULT CURRENT_DATE,
		status VARCHAR(20) NOT NULL DEFAULT 'active',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT enrollments_triple_key UNIQUE (student_id, class_id, subject_id)
	)`,

	`CREATE TABLE IF NOT EXISTS attendance (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		student_id UUID NOT NULL REFERENCES students(id) ON DELETE CASCADE,
		class_id UUID NOT NULL REFERENCES classes(id),
		subject_id UUID NOT NULL REFERENCES subjects(id),
		attendance_date DATE NOT NULL DEFAULT CURRENT_DATE,
		status VARCHAR(10) NOT NULL DEFAULT 'present',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT attendance_daily_key UNIQUE (student_id, subject_id, attendance_date)
	)`,

	`CREATE TABLE IF NOT EXISTS exams (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name VARCHAR(150) NOT NULL,
		description TEXT,
		exam_date DATE NOT NULL,
		class_id UUID NOT NULL REFERENCES classes(id),
		subject_id UUID NOT NULL REFERENCES subjects(id),
		teacher_id UUID NOT NULL REFERENCES teachers(id),
		max_marks INT NOT NULL DEFAULT 100,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS marks (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		exam_id UUID NOT NULL REFERENCES exams(id) ON DELETE CASCADE,
		student_id UUID NOT NULL REFERENCES students(id) ON DELETE CASCADE,
		subject_id UUID REFERENCES subjects(id),
		class_id UUID REFERENCES classes(id),
		marks_obtained INT NOT NULL DEFAULT 0,
		date_recorded DATE NOT NULL DEFAULT CURRENT_DATE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT marks_exam_student_key UNIQUE (exam_id, student_id)
	)`,

	`CREATE TABLE IF NOT EXISTS fee_types (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name VARCHAR(100) NOT NULL,
		description TEXT,
		is_active BOOLEAN NOT NULL DEFAULT true,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT fee_types_name_key UNIQUE (name)
	)`,

	`CREATE TABLE IF NOT EXISTS class_fees (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		class_id UUID NOT NULL REFERENCES classes(id) ON DELETE CASCADE,
		fee_type_id UUID NOT NULL REFERENCES fee_types(id),
		amount NUMERIC(18,2) NOT NULL CHECK (amount > 0),
		effective_date DATE NOT NULL DEFAULT CURRENT_DATE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT class_fees_pair_key UNIQUE (class_id, fee_type_id)
	)`,

	`CREATE TABLE IF NOT EXISTS student_fees (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		student_id UUID NOT NULL REFERENCES students(id) ON DELETE CASCADE,
		fee_type_id UUID NOT NULL REFERENCES fee_types(id),
		amount NUMERIC(18,2) NOT NULL CHECK (amount > 0),
		due_date DATE NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'outstanding',
		notes TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS invoices (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		invoice_number VARCHAR(50) NOT NULL,
		issue_date DATE NOT NULL DEFAULT CURRENT_DATE,
		due_date DATE NOT NULL,
		student_id UUID NOT NULL REFERENCES students(id),
		parent_id UUID NOT NULL REFERENCES parents(id),
		total_amount NUMERIC(18,2) NOT NULL DEFAULT 0,
		amount_paid NUMERIC(18,2) NOT NULL DEFAULT 0,
		status VARCHAR(20) NOT NULL DEFAULT 'outstanding',
		notes TEXT,
		version BIGINT NOT NULL DEFAULT 1,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT invoices_number_key UNIQUE (invoice_number)
	)`,

	`CREATE TABLE IF NOT EXISTS invoice_items (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		invoice_id UUID NOT NULL REFERENCES invoices(id) ON DELETE CASCADE,
		fee_type_id UUID NOT NULL REFERENCES fee_types(id),
		description VARCHAR(200) NOT NULL,
		amount NUMERIC(18,2) NOT NULL CHECK (amount > 0),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS payments (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		invoice_id UUID REFERENCES invoices(id) ON DELETE SET NULL,
		student_id UUID NOT NULL REFERENCES students(id),
		parent_id UUID NOT NULL REFERENCES parents(id),
		amount NUMERIC(18,2) NOT NULL CHECK (amount > 0),
		payment_date DATE NOT NULL DEFAULT CURRENT_DATE,
		method VARCHAR(50) NOT NULL DEFAULT 'cash',
		status VARCHAR(20) NOT NULL DEFAULT 'completed',
		transaction_id VARCHAR(255),
		notes TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS payments_invoice_idx ON payments(invoice_id)`,
	`CREATE INDEX IF NOT EXISTS invoices_parent_idx ON invoices(parent_id)`,
	`CREATE INDEX IF NOT EXISTS invoices_student_idx ON invoices(student_id)`,
	`CREATE INDEX IF NOT EXISTS invoices_status_idx ON invoices(status)`,

	`CREATE TABLE IF NOT EXISTS notices (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		title VARCHAR(200) NOT NULL,
		content TEXT NOT NULL,
		publish_date DATE NOT NULL DEFAULT CURRENT_DATE,
		expiry_date DATE,
		audience VARCHAR(20) NOT NULL DEFAULT 'all',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS holidays (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		title VARCHAR(200) NOT NULL,
		holiday_date DATE NOT NULL,
		description TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

func seedRoles(db *sql.DB) error {
	for _, name := range []string{"admin", "teacher", "student", "parent"} {
		_, err := db.Exec(`INSERT INTO roles (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, name)
		if err != nil {
			return err
		}
	}
	return nil
}
