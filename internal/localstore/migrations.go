package localstore

import "fmt"

// migrate runs database migrations.
func (s *Store) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS appointments (
			id           TEXT PRIMARY KEY,
			date         DATE NOT NULL,
			start_time   TIME NOT NULL,
			end_time     TIME NOT NULL,
			status       TEXT NOT NULL DEFAULT 'Booked',
			patient_name TEXT NOT NULL,
			title        TEXT,
			type         TEXT CHECK(type IN ('consultation', 'follow-up', 'checkup', 'procedure')),
			clinician_id TEXT,
			created_at   DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_appointments_date ON appointments(date);
		CREATE INDEX IF NOT EXISTS idx_appointments_status ON appointments(status);

		CREATE TABLE IF NOT EXISTS patients (
			id         TEXT PRIMARY KEY,
			first_name TEXT NOT NULL,
			last_name  TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_patients_last_name ON patients(last_name);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}

	return nil
}
