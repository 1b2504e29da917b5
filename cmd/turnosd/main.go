// Command turnosd is a development stub of the clinic appointment API.
// It keeps everything in memory and seeds fake patients and bookings so
// the TUI can be exercised without a real backend:
//
//	turnosd -addr :8080 -seed 40
package main

import (
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	seed := flag.Int("seed", 40, "number of fake appointments to seed")
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lshortfile)

	gofakeit.Seed(time.Now().UnixNano())

	store := newStore()
	store.seed(*seed)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/appointments", store.listAppointments)
	r.Post("/appointments", store.createAppointment)
	r.Get("/appointments/{id}", store.getAppointment)
	r.Put("/appointments/{id}", store.updateAppointment)
	r.Post("/appointments/{id}/cancel", store.cancelAppointment)
	r.Post("/appointments/{id}/reschedule", store.rescheduleAppointment)
	r.Get("/patients", store.searchPatients)
	r.Get("/slots", store.availableSlots)

	log.Printf("turnosd listening on %s (%d appointments seeded)", *addr, *seed)
	if err := http.ListenAndServe(*addr, r); err != nil {
		log.Fatalf("server: %v", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{"error": code, "message": message})
}
