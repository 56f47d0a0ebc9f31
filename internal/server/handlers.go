package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"skycast/internal/logging"
)

// Handler returns the API route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.withRequestID(s.handleHealth))
	mux.HandleFunc("/api/predict", s.withRequestID(s.handlePredict))
	mux.HandleFunc("/api/airports", s.withRequestID(s.handleAirports))
	return mux
}

type requestHandler func(w http.ResponseWriter, r *http.Request, requestID string)

func (s *Server) withRequestID(handler requestHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		handler(w, r, requestID)
	}
}

type healthResponse struct {
	Status        string `json:"status"`
	Scorer        string `json:"scorer"`
	FlightRecords int    `json:"flightRecords"`
	Airports      int    `json:"airports"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request, requestID string) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	records, err := s.store.RecordCount(r.Context())
	if err != nil {
		s.logQueryFailure(requestID, err)
		s.writeError(w, http.StatusInternalServerError, "service unavailable")
		return
	}
	airports, err := s.store.AirportCount(r.Context())
	if err != nil {
		s.logQueryFailure(requestID, err)
		s.writeError(w, http.StatusInternalServerError, "service unavailable")
		return
	}

	s.writeJSON(w, http.StatusOK, healthResponse{
		Status:        "ok",
		Scorer:        s.orchestrator.State().String(),
		FlightRecords: records,
		Airports:      airports,
	})
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request, requestID string) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	query := r.URL.Query()
	origin := strings.TrimSpace(query.Get("origin"))
	destination := strings.TrimSpace(query.Get("destination"))
	if origin == "" || destination == "" {
		s.writeError(w, http.StatusBadRequest, "origin and destination are required")
		return
	}
	dayOfWeek, err := strconv.Atoi(strings.TrimSpace(query.Get("dayOfWeek")))
	if err != nil || dayOfWeek < 1 || dayOfWeek > 7 {
		s.writeError(w, http.StatusBadRequest, "dayOfWeek must be an integer between 1 and 7")
		return
	}

	outcome, err := s.orchestrator.Predict(r.Context(), origin, destination, dayOfWeek)
	if err != nil {
		s.logQueryFailure(requestID, err)
		s.writeError(w, http.StatusInternalServerError, "prediction service unavailable")
		return
	}

	s.logger.Debug("prediction served",
		logging.String(logging.FieldRequestID, requestID),
		logging.String(logging.FieldOrigin, origin),
		logging.String(logging.FieldDestination, destination),
		logging.Int(logging.FieldDayOfWeek, dayOfWeek),
		logging.String(logging.FieldSource, string(outcome.Source)))
	s.writeJSON(w, http.StatusOK, outcome)
}

type airportsResponse struct {
	Airports []airportView `json:"airports"`
	Count    int           `json:"count"`
}

type airportView struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	City  string `json:"city"`
	State string `json:"state"`
}

func (s *Server) handleAirports(w http.ResponseWriter, r *http.Request, requestID string) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	airports, err := s.store.SearchAirports(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.logQueryFailure(requestID, err)
		s.writeError(w, http.StatusInternalServerError, "service unavailable")
		return
	}

	views := make([]airportView, 0, len(airports))
	for _, airport := range airports {
		views = append(views, airportView{ID: airport.ID, Name: airport.Name, City: airport.City, State: airport.State})
	}
	s.writeJSON(w, http.StatusOK, airportsResponse{Airports: views, Count: len(views)})
}

func (s *Server) logQueryFailure(requestID string, err error) {
	s.logger.Error("store query failed",
		logging.String(logging.FieldRequestID, requestID),
		logging.Error(err))
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("encode response", logging.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
