package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/auditpro/auditpro/internal/metrics"
	"github.com/auditpro/auditpro/internal/models"
	"github.com/auditpro/auditpro/pkg/analyzer"
	"github.com/auditpro/auditpro/pkg/chat"
	"github.com/auditpro/auditpro/pkg/reporter"
)

type analyzeRequest struct {
	URL            string `json:"url"`
	AuditType      string `json:"auditType"`
	Content        string `json:"content,omitempty"`
	TargetAudience string `json:"targetAudience,omitempty"`
	Geo            string `json:"geo,omitempty"`
}

type chatRequest struct {
	ResultID string               `json:"resultId"`
	History  []models.ChatMessage `json:"history,omitempty"`
	Message  string               `json:"message"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, errorResponse{Error: msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "auditpro"})
}

// decodeAnalyzeRequest accepts both the JSON API body and the landing
// page's form-encoded submission. It reports whether the request came from
// the form, so the caller can redirect the browser instead of writing JSON.
func decodeAnalyzeRequest(r *http.Request) (analyzeRequest, bool, error) {
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/x-www-form-urlencoded") || strings.HasPrefix(ct, "multipart/form-data") {
		if err := r.ParseForm(); err != nil {
			return analyzeRequest{}, true, err
		}
		return analyzeRequest{
			URL:            r.PostFormValue("url"),
			AuditType:      r.PostFormValue("auditType"),
			Content:        r.PostFormValue("content"),
			TargetAudience: r.PostFormValue("targetAudience"),
			Geo:            r.PostFormValue("geo"),
		}, true, nil
	}
	var req analyzeRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	return req, false, err
}

// parseAuditKind maps the wire value to an audit kind; the long-form names
// are accepted as aliases. An empty value defaults to a web audit.
func parseAuditKind(v string) (models.AuditType, bool) {
	switch strings.ToUpper(strings.TrimSpace(v)) {
	case "", "WEB", "WEBSITE":
		return models.AuditWeb, true
	case "APP", "APPLICATION":
		return models.AuditApp, true
	}
	return "", false
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if !s.limiter.Allow() {
		writeError(w, http.StatusTooManyRequests, "analysis rate limit exceeded, try again shortly")
		return
	}

	req, fromForm, err := decodeAnalyzeRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	kind, ok := parseAuditKind(req.AuditType)
	if !ok {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid audit type %q", req.AuditType))
		return
	}

	start := time.Now()
	result, err := s.analyzer.Analyze(r.Context(), analyzer.Request{
		URL:            strings.TrimSpace(req.URL),
		Content:        req.Content,
		Kind:           kind,
		TargetAudience: req.TargetAudience,
		Geo:            req.Geo,
	})
	if err != nil {
		metrics.AnalysesTotal.WithLabelValues(string(kind), "error").Inc()
		s.log.Warn("analysis failed", zap.String("url", req.URL), zap.Error(err))
		if fromForm {
			http.Redirect(w, r, "/?error=analysis", http.StatusSeeOther)
			return
		}
		writeError(w, http.StatusBadGateway, fmt.Sprintf("analysis failed: %v", err))
		return
	}
	metrics.AnalysesTotal.WithLabelValues(string(kind), "ok").Inc()
	metrics.AnalysisDuration.WithLabelValues(string(kind)).Observe(time.Since(start).Seconds())

	s.storeResult(result)
	if s.history != nil {
		if err := s.history.Record(result.ToHistoryItem()); err != nil {
			// history is best effort; the result itself is already safe
			s.log.Warn("history record failed", zap.Error(err))
		}
	}

	if fromForm {
		http.Redirect(w, r, "/dashboard/"+result.ID, http.StatusSeeOther)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, ok := s.getResult(req.ResultID)
	if !ok {
		writeError(w, http.StatusNotFound, "result not found")
		return
	}

	if s.chat == nil {
		metrics.ChatRequestsTotal.WithLabelValues("unavailable").Inc()
		writeJSON(w, http.StatusOK, chatResponse{Reply: chat.Fallback})
		return
	}

	reply, err := s.chat.Ask(r.Context(), req.History, req.Message, result)
	if err != nil {
		// chat turns degrade to the fixed apology instead of surfacing errors
		metrics.ChatRequestsTotal.WithLabelValues("error").Inc()
		s.log.Warn("chat failed", zap.String("resultId", req.ResultID), zap.Error(err))
		writeJSON(w, http.StatusOK, chatResponse{Reply: chat.Fallback})
		return
	}
	metrics.ChatRequestsTotal.WithLabelValues("ok").Inc()
	writeJSON(w, http.StatusOK, chatResponse{Reply: reply})
}

func (s *Server) handleHistoryList(w http.ResponseWriter, r *http.Request) {
	items := []models.HistoryItem{}
	if s.history != nil {
		items = append(items, s.history.Load()...)
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleHistoryClear(w http.ResponseWriter, r *http.Request) {
	if s.history != nil {
		if err := s.history.Clear(); err != nil {
			writeError(w, http.StatusInternalServerError, "failed to clear history")
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleResultGet(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	result, ok := s.getResult(id)
	if !ok {
		writeError(w, http.StatusNotFound, "result not found")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	result, ok := s.getResult(id)
	if !ok {
		writeError(w, http.StatusNotFound, "result not found")
		return
	}

	opts := reporter.Options{Category: models.Category(strings.ToUpper(r.URL.Query().Get("category")))}
	if raw := r.URL.Query().Get("sections"); raw != "" {
		opts.Sections = strings.Split(raw, ",")
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "pdf"
	}

	switch format {
	case "pdf":
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=%q", reporter.ExportFilename(result.URL, "pdf")))
		if err := s.reporter.WritePDF(result, opts, w); err != nil {
			s.log.Error("pdf export failed", zap.String("resultId", id), zap.Error(err))
		}
	case "json", "markdown", "html":
		out, err := s.reporter.Generate(result, format, opts)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		contentType := map[string]string{
			"json":     "application/json",
			"markdown": "text/markdown; charset=utf-8",
			"html":     "text/html; charset=utf-8",
		}[format]
		w.Header().Set("Content-Type", contentType)
		_, _ = w.Write([]byte(out))
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unsupported format: %s", format))
	}
}
