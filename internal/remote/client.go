// Package remote implements the HTTP client for the clinic appointment API.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/lucasnevarez/turnos/internal/appointment"
)

const defaultTimeout = 30 * time.Second

// ErrNotFound is returned when the API reports an unknown appointment.
var ErrNotFound = errors.New("appointment not found on server")

// Client talks to the remote appointment/patient API. It satisfies
// appointment.Source so the TUI and CLI cannot tell it apart from the
// local store.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New creates a Client for the given base URL. token may be empty; when
// set it is passed as a bearer token. timeout 0 means the default 30s.
func New(baseURL, token string, timeout time.Duration) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("api base URL is required")
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// appointmentDTO mirrors the wire representation the API uses. Times may
// carry seconds or microseconds ("09:30:00.000000"); only the HH:MM
// prefix is meaningful to the client.
type appointmentDTO struct {
	ID               string `json:"id"`
	Date             string `json:"date"`
	StartTime        string `json:"start_time"`
	EndTime          string `json:"end_time"`
	Status           string `json:"status"`
	PatientFirstName string `json:"patient_first_name"`
	PatientLastName  string `json:"patient_last_name"`
	Title            string `json:"title"`
	Type             string `json:"type"`
	ClinicianID      string `json:"clinician_id"`
	CreatedAt        string `json:"created_at"`
}

type patientDTO struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type rescheduleRequest struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func (c *Client) toDomain(d appointmentDTO) (*appointment.Appointment, error) {
	date, err := time.Parse("2006-01-02", d.Date)
	if err != nil {
		return nil, fmt.Errorf("appointment %s: parsing date %q: %w", d.ID, d.Date, err)
	}

	name := d.PatientFirstName
	if d.PatientLastName != "" {
		if name != "" {
			name += " "
		}
		name += d.PatientLastName
	}

	a := &appointment.Appointment{
		ID:          d.ID,
		Date:        date,
		StartTime:   appointment.NormalizeClock(d.StartTime),
		EndTime:     appointment.NormalizeClock(d.EndTime),
		Status:      appointment.Status(d.Status),
		PatientName: name,
		Title:       d.Title,
		Type:        appointment.Type(d.Type),
		ClinicianID: d.ClinicianID,
	}
	if d.CreatedAt != "" {
		if created, err := time.Parse(time.RFC3339, d.CreatedAt); err == nil {
			a.CreatedAt = created
		}
	}
	return a, nil
}

func toDTO(a *appointment.Appointment) appointmentDTO {
	first, last := splitName(a.PatientName)
	return appointmentDTO{
		ID:               a.ID,
		Date:             a.Date.Format("2006-01-02"),
		StartTime:        a.StartTime,
		EndTime:          a.EndTime,
		Status:           string(a.Status),
		PatientFirstName: first,
		PatientLastName:  last,
		Title:            a.Title,
		Type:             string(a.Type),
		ClinicianID:      a.ClinicianID,
	}
}

// splitName divides a display name into first and last on the final space.
func splitName(name string) (first, last string) {
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == ' ' {
			return name[:i], name[i+1:]
		}
	}
	return name, ""
}

// ListAppointments returns appointments with dates inside [from, to].
func (c *Client) ListAppointments(ctx context.Context, from, to time.Time) ([]*appointment.Appointment, error) {
	q := url.Values{}
	q.Set("from", from.Format("2006-01-02"))
	q.Set("to", to.Format("2006-01-02"))

	var dtos []appointmentDTO
	if err := c.do(ctx, http.MethodGet, "/appointments?"+q.Encode(), nil, &dtos); err != nil {
		return nil, fmt.Errorf("listing appointments: %w", err)
	}

	appts := make([]*appointment.Appointment, 0, len(dtos))
	for _, d := range dtos {
		a, err := c.toDomain(d)
		if err != nil {
			// One malformed record must not blank the whole calendar.
			continue
		}
		appts = append(appts, a)
	}
	return appts, nil
}

// CreateAppointment books a new appointment and returns the server's
// canonical record.
func (c *Client) CreateAppointment(ctx context.Context, a *appointment.Appointment) (*appointment.Appointment, error) {
	var created appointmentDTO
	if err := c.do(ctx, http.MethodPost, "/appointments", toDTO(a), &created); err != nil {
		return nil, fmt.Errorf("creating appointment: %w", err)
	}
	return c.toDomain(created)
}

// UpdateAppointment replaces the stored record with the same ID.
func (c *Client) UpdateAppointment(ctx context.Context, a *appointment.Appointment) (*appointment.Appointment, error) {
	var updated appointmentDTO
	if err := c.do(ctx, http.MethodPut, "/appointments/"+url.PathEscape(a.ID), toDTO(a), &updated); err != nil {
		return nil, fmt.Errorf("updating appointment %s: %w", a.ID, err)
	}
	return c.toDomain(updated)
}

// CancelAppointment marks an appointment cancelled.
func (c *Client) CancelAppointment(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodPost, "/appointments/"+url.PathEscape(id)+"/cancel", nil, nil); err != nil {
		return fmt.Errorf("cancelling appointment %s: %w", id, err)
	}
	return nil
}

// RescheduleAppointment moves an appointment, preserving its duration:
// the new end time is newStart plus the original duration.
func (c *Client) RescheduleAppointment(ctx context.Context, id string, newDate time.Time, newStart string) (*appointment.Appointment, error) {
	var current appointmentDTO
	if err := c.do(ctx, http.MethodGet, "/appointments/"+url.PathEscape(id), nil, &current); err != nil {
		return nil, fmt.Errorf("fetching appointment %s: %w", id, err)
	}
	existing, err := c.toDomain(current)
	if err != nil {
		return nil, err
	}

	req := rescheduleRequest{
		Date:      newDate.Format("2006-01-02"),
		StartTime: newStart,
		EndTime:   appointment.AddMinutes(newStart, existing.Duration()),
	}

	var moved appointmentDTO
	if err := c.do(ctx, http.MethodPost, "/appointments/"+url.PathEscape(id)+"/reschedule", req, &moved); err != nil {
		return nil, fmt.Errorf("rescheduling appointment %s: %w", id, err)
	}
	return c.toDomain(moved)
}

// SearchPatients returns patients whose name matches the query.
func (c *Client) SearchPatients(ctx context.Context, query string) ([]appointment.Patient, error) {
	q := url.Values{}
	q.Set("search", query)

	var dtos []patientDTO
	if err := c.do(ctx, http.MethodGet, "/patients?"+q.Encode(), nil, &dtos); err != nil {
		return nil, fmt.Errorf("searching patients: %w", err)
	}

	patients := make([]appointment.Patient, 0, len(dtos))
	for _, d := range dtos {
		patients = append(patients, appointment.Patient{
			ID:        d.ID,
			FirstName: d.FirstName,
			LastName:  d.LastName,
		})
	}
	return patients, nil
}

// AvailableSlots asks the server for free start times on a date for a
// visit of the given duration. clinicianID may be empty. Times come back
// normalized to HH:MM.
func (c *Client) AvailableSlots(ctx context.Context, clinicianID string, date time.Time, durationMinutes int) ([]string, error) {
	q := url.Values{}
	q.Set("date", date.Format("2006-01-02"))
	q.Set("duration", fmt.Sprintf("%d", durationMinutes))
	if clinicianID != "" {
		q.Set("clinician_id", clinicianID)
	}

	var starts []string
	if err := c.do(ctx, http.MethodGet, "/slots?"+q.Encode(), nil, &starts); err != nil {
		return nil, fmt.Errorf("fetching available slots: %w", err)
	}
	for i, s := range starts {
		starts[i] = appointment.NormalizeClock(s)
	}
	return starts, nil
}

// Close satisfies appointment.Source; the HTTP client holds no resources.
func (c *Client) Close() error {
	return nil
}

// do executes one request. body is JSON-encoded when non-nil; the
// response is decoded into result when non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, msg)
	}

	if result == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
