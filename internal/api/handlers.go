package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/rxtech-lab/argo-quant/internal/service"
	"github.com/rxtech-lab/argo-quant/internal/version"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
	"github.com/rxtech-lab/argo-quant/pkg/marketdata"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string    `json:"status"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Service:   "argo-quant",
		Version:   version.GetVersion(),
		Timestamp: time.Now().UTC(),
	})
}

func (s *Server) handleOHLCV(w http.ResponseWriter, r *http.Request) {
	query, err := s.parseSeriesQuery(r)
	if err != nil {
		s.writeError(w, r, err)

		return
	}

	ctx, cancel := s.requestContext(r)
	defer cancel()

	candles, err := s.service.OHLCV(ctx, query.Symbol, query.Interval, query.Limit)
	if err != nil {
		s.writeError(w, r, err)

		return
	}

	s.writeJSON(w, http.StatusOK, candles)
}

func (s *Server) handleBacktest(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseStrategyRequest(w, r)
	if err != nil {
		s.writeError(w, r, err)

		return
	}

	ctx, cancel := s.requestContext(r)
	defer cancel()

	report, err := s.service.Backtest(ctx, req)
	if err != nil {
		s.writeError(w, r, err)

		return
	}

	s.writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleEquityCurve(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseStrategyRequest(w, r)
	if err != nil {
		s.writeError(w, r, err)

		return
	}

	ctx, cancel := s.requestContext(r)
	defer cancel()

	result, err := s.service.EquityCurve(ctx, req)
	if err != nil {
		s.writeError(w, r, err)

		return
	}

	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleStrategySchema(w http.ResponseWriter, r *http.Request) {
	schema, err := s.service.StrategySchema()
	if err != nil {
		s.writeError(w, r, err)

		return
	}

	w.Header().Set("Content-Type", "application/schema+json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(schema))
}

func (s *Server) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	if s.config.RequestTimeout <= 0 {
		return context.WithCancel(r.Context())
	}

	return context.WithTimeout(r.Context(), s.config.RequestTimeout)
}

func (s *Server) parseSeriesQuery(r *http.Request) (service.Request, error) {
	values := r.URL.Query()

	symbol := values.Get("symbol")
	if symbol == "" {
		return service.Request{}, errors.New(errors.ErrCodeMissingParameter, "query parameter symbol is required")
	}

	interval := s.config.DefaultInterval
	if raw := values.Get("interval"); raw != "" {
		parsed, err := marketdata.ParseInterval(raw)
		if err != nil {
			return service.Request{}, err
		}

		interval = parsed
	}

	limit := 0
	if raw := values.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return service.Request{}, errors.Newf(errors.ErrCodeInvalidParameter, "limit must be a positive integer, got %q", raw)
		}

		limit = parsed
	}

	return service.Request{Symbol: symbol, Interval: interval, Limit: limit}, nil
}

func (s *Server) parseStrategyRequest(w http.ResponseWriter, r *http.Request) (service.Request, error) {
	req, err := s.parseSeriesQuery(r)
	if err != nil {
		return service.Request{}, err
	}

	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := decoder.Decode(&req.Strategy); err != nil {
		return service.Request{}, errors.Wrap(errors.ErrCodeInvalidStrategy, "invalid strategy body", err)
	}

	return req, nil
}

// ErrorResponse is the body of a failed request.
type ErrorResponse struct {
	Error    string `json:"error"`
	Code     int    `json:"code"`
	Field    string `json:"field,omitempty"`
	Operator string `json:"operator,omitempty"`
	List     string `json:"list,omitempty"`
	Index    *int   `json:"index,omitempty"`
}

// StatusForError maps a coded error to an HTTP status.
func StatusForError(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidParameter,
		errors.ErrCodeMissingParameter,
		errors.ErrCodeInvalidInterval,
		errors.ErrCodeInvalidStrategy,
		errors.ErrCodeStrategyLoadFailed,
		errors.ErrCodeInvalidVersion,
		errors.ErrCodeVersionMismatch,
		errors.ErrCodeInvalidPeriod,
		errors.ErrCodeUnsupportedSignal,
		errors.ErrCodeInvalidBalance:
		return http.StatusBadRequest
	case errors.ErrCodeMissingField,
		errors.ErrCodeUnsupportedOperator,
		errors.ErrCodeUnorderedSeries:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeMarketDataFetchFailed,
		errors.ErrCodeMarketDataParseFailed,
		errors.ErrCodeNoDataFound:
		return http.StatusBadGateway
	case errors.ErrCodeBacktestCancelled:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusForError(err)

	body := ErrorResponse{
		Error: err.Error(),
		Code:  int(errors.GetCode(err)),
	}

	var condErr *errors.ConditionError
	if errors.As(err, &condErr) {
		body.Field = condErr.Field
		body.Operator = condErr.Operator
		body.List = condErr.List

		if condErr.Index >= 0 {
			index := condErr.Index
			body.Index = &index
		}
	}

	if status >= http.StatusInternalServerError {
		s.log.Error("Request failed",
			zap.String("request_id", RequestIDFromContext(r.Context())),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}

	s.writeJSON(w, status, body)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Error("Failed to encode response", zap.Error(err))
	}
}
