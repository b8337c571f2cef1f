package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"investor_outreach/agent"
	"investor_outreach/export"
	"investor_outreach/outreach"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, pageData{Title: s.title(), Sections: formSections(defaultRequest())})
}

func (s *Server) handleDraftForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	req := requestFromForm(r.PostForm)
	data := pageData{Title: s.title(), Sections: formSections(req)}

	d, err := s.drafter.DraftEmail(r.Context(), req)
	var (
		missing *outreach.MissingFieldsError
		rerr    *agent.RuntimeError
	)
	switch {
	case errors.As(err, &missing):
		data.Error = missing.Error()
	case errors.As(err, &rerr):
		data.Error = "Error: " + rerr.Error()
		data.Trace = rerr.Trace
	case err != nil:
		data.Error = "Error: " + err.Error()
	default:
		data.Draft = renderDraft(d)
	}
	s.render(w, data)
}

func (s *Server) render(w http.ResponseWriter, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.page.Execute(w, data); err != nil {
		s.logger.Error("render page", zap.Error(err))
	}
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	format, err := export.ParseFormat(r.PostForm.Get("format"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	out, err := export.Render(format, r.PostForm.Get("email"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", out.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+out.Filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(out.Data)))
	_, _ = w.Write(out.Data)
}

type errorResp struct {
	Error         string   `json:"error"`
	MissingFields []string `json:"missing_fields,omitempty"`
	Trace         string   `json:"trace,omitempty"`
}

type draftResp struct {
	Email    string   `json:"email"`
	Issues   []string `json:"issues"`
	Provider string   `json:"provider"`
	Debug    string   `json:"debug,omitempty"`
}

type composeResp struct {
	Subject string   `json:"subject"`
	Email   string   `json:"email"`
	Issues  []string `json:"issues"`
}

func decodeRequest(w http.ResponseWriter, r *http.Request) (outreach.Request, bool) {
	var req outreach.Request
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp{Error: "invalid request body: " + err.Error()})
		return outreach.Request{}, false
	}
	return req, true
}

func (s *Server) handleDraftAPI(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}
	d, err := s.drafter.DraftEmail(r.Context(), req)
	if err != nil {
		s.writeDraftError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, draftResp{
		Email:    d.Text,
		Issues:   nonNil(d.Issues()),
		Provider: d.Runtime,
		Debug:    d.Debug,
	})
}

func (s *Server) handleComposeAPI(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}
	email, review, err := outreach.ComposeRequest(r.Context(), req, s.drafter.Product())
	if err != nil {
		s.writeDraftError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, composeResp{
		Subject: email.Subject,
		Email:   email.Body,
		Issues:  nonNil(review.All()),
	})
}

func (s *Server) writeDraftError(w http.ResponseWriter, err error) {
	var (
		missing *outreach.MissingFieldsError
		rerr    *agent.RuntimeError
	)
	switch {
	case errors.As(err, &missing):
		writeJSON(w, http.StatusBadRequest, errorResp{Error: missing.Error(), MissingFields: missing.Labels})
	case errors.As(err, &rerr):
		writeJSON(w, http.StatusBadGateway, errorResp{Error: rerr.Error(), Trace: rerr.Trace})
	default:
		s.logger.Error("draft failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResp{Error: err.Error()})
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
