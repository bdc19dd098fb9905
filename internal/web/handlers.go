package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/krystal-group/stripe-statements/internal/dateutils"
	"github.com/krystal-group/stripe-statements/internal/export"
	"github.com/krystal-group/stripe-statements/internal/logging"
	"github.com/krystal-group/stripe-statements/internal/parsererror"
	"github.com/krystal-group/stripe-statements/internal/statement"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log.WithError(err).Error("Failed to encode response")
	}
}

// writeError maps the engine's typed errors onto HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var (
		unknownCompany *parsererror.UnknownCompanyError
		notFound       *parsererror.PeriodNotFoundError
		inconsistent   *parsererror.ReconciliationError
	)

	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &unknownCompany), errors.As(err, &notFound):
		status = http.StatusNotFound
	case errors.As(err, &inconsistent):
		// The statement failed its own audit; nothing is published.
		status = http.StatusUnprocessableEntity
	}

	if status == http.StatusInternalServerError {
		s.log.WithError(err).Error("Request failed")
	} else {
		s.log.WithError(err).Warn("Request rejected")
	}
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func monthVars(r *http.Request) (string, int, time.Month, error) {
	vars := mux.Vars(r)

	year, err := strconv.Atoi(vars["year"])
	if err != nil {
		return "", 0, 0, fmt.Errorf("invalid year: %s", vars["year"])
	}
	monthNum, err := strconv.Atoi(vars["month"])
	if err != nil || monthNum < 1 || monthNum > 12 {
		return "", 0, 0, fmt.Errorf("invalid month: %s", vars["month"])
	}
	return vars["company"], year, time.Month(monthNum), nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := s.loader.Health()

	code := http.StatusOK
	if !status.Healthy {
		code = http.StatusServiceUnavailable
	}
	s.writeJSON(w, code, status)
}

func (s *Server) handleCompanies(w http.ResponseWriter, r *http.Request) {
	type companyInfo struct {
		Code     string `json:"code"`
		Name     string `json:"name"`
		Currency string `json:"currency"`
	}

	list := s.registry.List()
	out := make([]companyInfo, 0, len(list))
	for _, c := range list {
		out = append(out, companyInfo{Code: c.Code, Name: c.Name, Currency: c.Currency})
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleStatement(w http.ResponseWriter, r *http.Request) {
	company, year, month, err := monthVars(r)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	var opening *decimal.Decimal
	if raw := r.URL.Query().Get("opening"); raw != "" {
		value, err := decimal.NewFromString(raw)
		if err != nil {
			s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid opening balance: " + raw})
			return
		}
		opening = &value
	}

	result, err := s.engine.MonthlyStatement(company, year, month, opening)
	if err != nil {
		s.writeError(w, err)
		return
	}

	st, err := statement.Build(result)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.log.Info("Served statement",
		logging.Field{Key: logging.FieldCompany, Value: company},
		logging.Field{Key: logging.FieldPeriod, Value: st.Period()},
	)

	switch r.URL.Query().Get("format") {
	case "", "json":
		s.writeJSON(w, http.StatusOK, st)
	case "html":
		data, err := export.RenderHTML(st)
		if err != nil {
			s.writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(data)
	case "pdf":
		data, err := export.RenderPrintHTML(st)
		if err != nil {
			s.writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("inline; filename=%s-statement-%s.html", st.Company, st.Period()))
		_, _ = w.Write(data)
	case "csv":
		data, err := export.RenderCSV(st)
		if err != nil {
			s.writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=%s-statement-%s.csv", st.Company, st.Period()))
		_, _ = w.Write(data)
	default:
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unsupported format: " + r.URL.Query().Get("format")})
	}
}

func (s *Server) handlePayout(w http.ResponseWriter, r *http.Request) {
	company, year, month, err := monthVars(r)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	report, err := s.engine.PayoutReport(company, year, month)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, report)
}

func (s *Server) handlePreviousBalance(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	year, month, err := dateutils.ParsePeriod(vars["period"])
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	balance, found, err := s.engine.PreviousBalance(vars["company"], year, month)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"company": vars["company"],
		"period":  vars["period"],
		"balance": balance.StringFixed(2),
		"found":   found,
	})
}
