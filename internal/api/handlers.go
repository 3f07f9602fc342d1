package api

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/UnknownOlympus/servo/internal/geo"
	"github.com/UnknownOlympus/servo/internal/selector"
	"github.com/UnknownOlympus/servo/internal/service"
	"github.com/julienschmidt/httprouter"
)

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func (s *Server) nearestHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := s.userPoint(w, r)
	if !ok {
		return
	}

	result, err := s.finder.Nearest(r.Context(), user)
	if err != nil {
		s.handleFinderError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) cheapestHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := s.userPoint(w, r)
	if !ok {
		return
	}

	radius, err := radiusFromQuery(r.URL.Query().Get("radius"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_radius", "radius must be a number of kilometers")
		return
	}

	result, err := s.finder.Cheapest(r.Context(), user, radius)
	if err != nil {
		s.handleFinderError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) healthHandler(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "available"})
}

// userPoint parses the :coords path parameter and answers 400 on failure.
func (s *Server) userPoint(w http.ResponseWriter, r *http.Request) (geo.GeoPoint, bool) {
	raw := httprouter.ParamsFromContext(r.Context()).ByName("coords")

	user, err := geo.ParseCoordinates(raw)
	if err != nil {
		kind := geo.Malformed
		var parseErr *geo.ParseError
		if errors.As(err, &parseErr) {
			kind = parseErr.Kind
		}
		s.writeError(w, http.StatusBadRequest, kind.String(), err.Error())
		return geo.GeoPoint{}, false
	}

	return user, true
}

// radiusFromQuery parses the radius query value and clamps it into [MinRadiusKm, MaxRadiusKm].
// An empty value means DefaultRadiusKm.
func radiusFromQuery(raw string) (float64, error) {
	if raw == "" {
		return DefaultRadiusKm, nil
	}

	radius, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(radius) {
		return 0, strconv.ErrSyntax
	}

	return min(max(radius, MinRadiusKm), MaxRadiusKm), nil
}

func (s *Server) handleFinderError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrNoFacilities):
		s.writeError(w, http.StatusNotFound, "no_facilities", err.Error())
	case errors.Is(err, selector.ErrInvalidRadius):
		s.writeError(w, http.StatusBadRequest, "invalid_radius", err.Error())
	case errors.Is(err, service.ErrFeedUnavailable):
		s.log.ErrorContext(r.Context(), "Fuel feed unavailable", "path", r.URL.Path, "error", err)
		s.writeError(w, http.StatusBadGateway, "feed_unavailable", "fuel price feed is unavailable")
	default:
		s.log.ErrorContext(r.Context(), "Request failed", "path", r.URL.Path, "error", err)
		s.writeError(w, http.StatusInternalServerError, "internal", "internal server error")
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Error("Failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, kind, message string) {
	s.writeJSON(w, status, ErrorResponse{Error: message, Kind: kind})
}
