// Package localstore provides SQLite-backed appointment storage for
// offline and demo use.
package localstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/lucasnevarez/turnos/internal/appointment"
)

// Store implements appointment.Source using SQLite.
type Store struct {
	db *sql.DB
}

// New creates a new Store and runs migrations.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

const appointmentColumns = `id, date, start_time, end_time, status, patient_name, title, type, clinician_id, created_at`

// ListAppointments returns all appointments with a date inside [from, to],
// ordered by date then start time.
func (s *Store) ListAppointments(ctx context.Context, from, to time.Time) ([]*appointment.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE date >= ? AND date <= ?
		ORDER BY date, start_time
	`

	rows, err := s.db.QueryContext(ctx, query,
		from.Format("2006-01-02"),
		to.Format("2006-01-02"),
	)
	if err != nil {
		return nil, fmt.Errorf("querying appointments: %w", err)
	}
	defer rows.Close()

	var appts []*appointment.Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		appts = append(appts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating appointments: %w", err)
	}

	return appts, nil
}

// CreateAppointment stores a new appointment under a fresh ID.
func (s *Store) CreateAppointment(ctx context.Context, a *appointment.Appointment) (*appointment.Appointment, error) {
	stored := *a
	stored.ID = uuid.NewString()
	if stored.Status == "" {
		stored.Status = appointment.StatusBooked
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO appointments (` + appointmentColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		stored.ID,
		stored.Date.Format("2006-01-02"),
		stored.StartTime,
		stored.EndTime,
		string(stored.Status),
		stored.PatientName,
		stored.Title,
		string(stored.Type),
		stored.ClinicianID,
		stored.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting appointment: %w", err)
	}

	if err := s.rememberPatient(ctx, stored.PatientName); err != nil {
		return nil, err
	}

	return &stored, nil
}

// rememberPatient records a booked patient's name when the directory
// does not know it yet, so future searches can complete it.
func (s *Store) rememberPatient(ctx context.Context, name string) error {
	first, last, _ := strings.Cut(strings.TrimSpace(name), " ")
	if first == "" {
		return nil
	}

	var exists int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM patients WHERE first_name = ? AND last_name = ?`,
		first, last,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("checking patient: %w", err)
	}
	if exists > 0 {
		return nil
	}

	_, err = s.AddPatient(ctx, appointment.Patient{FirstName: first, LastName: last})
	return err
}

// UpdateAppointment replaces the stored record with the same ID.
func (s *Store) UpdateAppointment(ctx context.Context, a *appointment.Appointment) (*appointment.Appointment, error) {
	query := `
		UPDATE appointments
		SET date = ?, start_time = ?, end_time = ?, status = ?,
		    patient_name = ?, title = ?, type = ?, clinician_id = ?
		WHERE id = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		a.Date.Format("2006-01-02"),
		a.StartTime,
		a.EndTime,
		string(a.Status),
		a.PatientName,
		a.Title,
		string(a.Type),
		a.ClinicianID,
		a.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating appointment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("getting rows affected: %w", err)
	}
	if rows == 0 {
		return nil, appointment.ErrAppointmentNotFound
	}

	stored := *a
	return &stored, nil
}

// CancelAppointment marks an appointment cancelled.
func (s *Store) CancelAppointment(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE appointments SET status = ? WHERE id = ?`,
		string(appointment.StatusCancelled), id,
	)
	if err != nil {
		return fmt.Errorf("cancelling appointment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rows == 0 {
		return appointment.ErrAppointmentNotFound
	}

	return nil
}

// RescheduleAppointment atomically moves an appointment to a new date and
// start time, preserving its duration.
func (s *Store) RescheduleAppointment(ctx context.Context, id string, newDate time.Time, newStart string) (*appointment.Appointment, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE id = ?
	`
	row := tx.QueryRowContext(ctx, query, id)
	original, err := scanAppointment(row)
	if err == sql.ErrNoRows {
		return nil, appointment.ErrAppointmentNotFound
	}
	if err != nil {
		return nil, err
	}

	newEnd := appointment.AddMinutes(newStart, original.Duration())

	_, err = tx.ExecContext(ctx,
		`UPDATE appointments SET date = ?, start_time = ?, end_time = ? WHERE id = ?`,
		newDate.Format("2006-01-02"), newStart, newEnd, id,
	)
	if err != nil {
		return nil, fmt.Errorf("rescheduling appointment: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}

	moved := *original
	moved.Date = newDate
	moved.StartTime = newStart
	moved.EndTime = newEnd
	return &moved, nil
}

// SearchPatients returns patients whose first or last name contains the
// query, case-insensitively.
func (s *Store) SearchPatients(ctx context.Context, query string) ([]appointment.Patient, error) {
	pattern := "%" + query + "%"
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, first_name, last_name
		FROM patients
		WHERE first_name LIKE ? OR last_name LIKE ?
		ORDER BY last_name, first_name
		LIMIT 20
	`, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("querying patients: %w", err)
	}
	defer rows.Close()

	var patients []appointment.Patient
	for rows.Next() {
		var p appointment.Patient
		if err := rows.Scan(&p.ID, &p.FirstName, &p.LastName); err != nil {
			return nil, fmt.Errorf("scanning patient: %w", err)
		}
		patients = append(patients, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating patients: %w", err)
	}

	return patients, nil
}

// AddPatient inserts a patient record, assigning an ID when missing.
// Booking an appointment adds the patient here when the name is new.
func (s *Store) AddPatient(ctx context.Context, p appointment.Patient) (appointment.Patient, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO patients (id, first_name, last_name) VALUES (?, ?, ?)`,
		p.ID, p.FirstName, p.LastName,
	)
	if err != nil {
		return appointment.Patient{}, fmt.Errorf("inserting patient: %w", err)
	}
	return p, nil
}

// Close releases database resources.
func (s *Store) Close() error {
	return s.db.Close()
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanAppointment(row scanner) (*appointment.Appointment, error) {
	var (
		a           appointment.Appointment
		date        string
		title       sql.NullString
		clinicianID sql.NullString
		createdAt   string
	)

	err := row.Scan(
		&a.ID,
		&date,
		&a.StartTime,
		&a.EndTime,
		&a.Status,
		&a.PatientName,
		&title,
		&a.Type,
		&clinicianID,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning appointment: %w", err)
	}

	a.Date, err = time.Parse("2006-01-02", date)
	if err != nil {
		return nil, fmt.Errorf("parsing appointment date: %w", err)
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		a.CreatedAt = t
	}
	a.Title = title.String
	a.ClinicianID = clinicianID.String

	return &a, nil
}
