package main

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// apptRecord is the wire shape the real API uses. Times carry seconds
// to mirror production payloads; clients truncate to HH:MM.
type apptRecord struct {
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

type patientRecord struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type store struct {
	mu       sync.RWMutex
	appts    map[string]apptRecord
	patients []patientRecord
}

func newStore() *store {
	return &store{appts: make(map[string]apptRecord)}
}

var visitTypes = []string{"consultation", "follow-up", "checkup", "procedure"}

// seed fills the store with fake patients and appointments spread over
// the two weeks around today, on a 15-minute grid between 08:00 and 18:00.
func (s *store) seed(count int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := 0; i < 30; i++ {
		s.patients = append(s.patients, patientRecord{
			ID:        uuid.NewString(),
			FirstName: gofakeit.FirstName(),
			LastName:  gofakeit.LastName(),
		})
	}

	clinicianID := uuid.NewString()
	today := time.Now()

	for i := 0; i < count; i++ {
		p := s.patients[gofakeit.Number(0, len(s.patients)-1)]
		day := today.AddDate(0, 0, gofakeit.Number(-7, 7))

		startMins := 8*60 + 15*gofakeit.Number(0, 36)
		durations := []int{15, 30, 45, 60}
		endMins := startMins + durations[gofakeit.Number(0, len(durations)-1)]
		if endMins > 18*60 {
			endMins = 18 * 60
		}

		rec := apptRecord{
			ID:               uuid.NewString(),
			Date:             day.Format("2006-01-02"),
			StartTime:        minutesToWire(startMins),
			EndTime:          minutesToWire(endMins),
			Status:           "Booked",
			PatientFirstName: p.FirstName,
			PatientLastName:  p.LastName,
			Type:             visitTypes[gofakeit.Number(0, len(visitTypes)-1)],
			ClinicianID:      clinicianID,
			CreatedAt:        time.Now().Format(time.RFC3339),
		}
		s.appts[rec.ID] = rec
	}
}

func minutesToWire(mins int) string {
	return time.Date(0, 1, 1, mins/60, mins%60, 0, 0, time.UTC).Format("15:04:05")
}

func (s *store) listAppointments(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]apptRecord, 0, len(s.appts))
	for _, rec := range s.appts {
		if from != "" && rec.Date < from {
			continue
		}
		if to != "" && rec.Date > to {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].StartTime < out[j].StartTime
	})

	writeJSON(w, http.StatusOK, out)
}

func (s *store) getAppointment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.RLock()
	rec, ok := s.appts[id]
	s.mu.RUnlock()

	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "unknown appointment")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *store) createAppointment(w http.ResponseWriter, r *http.Request) {
	var rec apptRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
		return
	}
	if rec.Date == "" || rec.StartTime == "" || rec.EndTime == "" {
		writeError(w, http.StatusBadRequest, "missing_fields", "date, start_time and end_time are required")
		return
	}

	rec.ID = uuid.NewString()
	if rec.Status == "" {
		rec.Status = "Booked"
	}
	rec.CreatedAt = time.Now().Format(time.RFC3339)

	s.mu.Lock()
	s.appts[rec.ID] = rec
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, rec)
}

func (s *store) updateAppointment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var rec apptRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.appts[id]
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "unknown appointment")
		return
	}

	rec.ID = id
	rec.CreatedAt = existing.CreatedAt
	s.appts[id] = rec

	writeJSON(w, http.StatusOK, rec)
}

func (s *store) cancelAppointment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.appts[id]
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "unknown appointment")
		return
	}

	rec.Status = "Cancelled"
	s.appts[id] = rec

	writeJSON(w, http.StatusOK, rec)
}

func (s *store) rescheduleAppointment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req struct {
		Date      string `json:"date"`
		StartTime string `json:"start_time"`
		EndTime   string `json:"end_time"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.appts[id]
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "unknown appointment")
		return
	}

	rec.Date = req.Date
	rec.StartTime = req.StartTime
	rec.EndTime = req.EndTime
	s.appts[id] = rec

	writeJSON(w, http.StatusOK, rec)
}

// wireToMinutes reads the HH:MM prefix of a wire time string.
func wireToMinutes(t string) int {
	if len(t) < 5 {
		return 0
	}
	h := int(t[0]-'0')*10 + int(t[1]-'0')
	m := int(t[3]-'0')*10 + int(t[4]-'0')
	return h*60 + m
}

// availableSlots returns the start times on the seeded 15-minute
// 08:00-18:00 grid where a visit of the requested duration would not
// overlap an active appointment.
func (s *store) availableSlots(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "date is required")
		return
	}
	duration := 30
	if d := r.URL.Query().Get("duration"); d != "" {
		n, err := strconv.Atoi(d)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "bad_request", "invalid duration")
			return
		}
		duration = n
	}
	clinician := r.URL.Query().Get("clinician_id")

	s.mu.RLock()
	defer s.mu.RUnlock()

	var busy [][2]int
	for _, rec := range s.appts {
		if rec.Date != date {
			continue
		}
		if rec.Status == "Cancelled" || rec.Status == "No Show" {
			continue
		}
		if clinician != "" && rec.ClinicianID != clinician {
			continue
		}
		busy = append(busy, [2]int{wireToMinutes(rec.StartTime), wireToMinutes(rec.EndTime)})
	}

	out := make([]string, 0)
	for start := 8 * 60; start+duration <= 18*60; start += 15 {
		end := start + duration
		free := true
		for _, b := range busy {
			if start < b[1] && b[0] < end {
				free = false
				break
			}
		}
		if free {
			out = append(out, minutesToWire(start))
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *store) searchPatients(w http.ResponseWriter, r *http.Request) {
	query := strings.ToLower(r.URL.Query().Get("search"))

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]patientRecord, 0)
	for _, p := range s.patients {
		if query == "" ||
			strings.Contains(strings.ToLower(p.FirstName), query) ||
			strings.Contains(strings.ToLower(p.LastName), query) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastName != out[j].LastName {
			return out[i].LastName < out[j].LastName
		}
		return out[i].FirstName < out[j].FirstName
	})

	writeJSON(w, http.StatusOK, out)
}
