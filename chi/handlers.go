package chi

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/fwojciec/pagekeep"
	"github.com/fwojciec/pagekeep/browse"
)

// flash is a one-off message shown above the list.
type flash struct {
	Message string
	Error   bool
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, nil)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	// Refresh failures are recorded in the model and rendered from the view.
	_ = s.model.Refresh(r.Context())
	s.render(w, http.StatusOK, nil)
}

func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.render(w, http.StatusBadRequest, &flash{Message: "Invalid form.", Error: true})
		return
	}
	from, to, err := browse.ParseRange(r.PostForm.Get("date-from"), r.PostForm.Get("date-to"))
	if err != nil {
		s.render(w, http.StatusBadRequest, &flash{Message: message(err), Error: true})
		return
	}
	s.model.ApplyDateFilter(from, to)
	s.render(w, http.StatusOK, nil)
}

func (s *Server) handleClearFilter(w http.ResponseWriter, r *http.Request) {
	s.model.ClearFilter()
	s.render(w, http.StatusOK, nil)
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.render(w, http.StatusBadRequest, &flash{Message: "Invalid form.", Error: true})
		return
	}
	id := r.PostForm.Get("id")
	if id == "" {
		s.render(w, http.StatusBadRequest, &flash{Message: "Missing item id.", Error: true})
		return
	}
	s.model.Toggle(id, isChecked(r.PostForm.Get("checked")))
	s.render(w, http.StatusOK, nil)
}

func (s *Server) handleSelectAll(w http.ResponseWriter, r *http.Request) {
	s.model.SelectAll()
	s.render(w, http.StatusOK, nil)
}

func (s *Server) handleDeselectAll(w http.ResponseWriter, r *http.Request) {
	s.model.DeselectAll()
	s.render(w, http.StatusOK, nil)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	report, err := s.model.DeleteSelected(r.Context())
	if report == nil {
		s.render(w, http.StatusBadRequest, &flash{Message: capitalize(message(err)) + ".", Error: true})
		return
	}
	if err != nil {
		s.logger.Error("delete failed", "id", report.Failed, "deleted", len(report.Deleted), "remaining", len(report.Remaining), "err", err)
		s.render(w, http.StatusOK, &flash{Message: deleteFailureMessage(report), Error: true})
		return
	}
	s.render(w, http.StatusOK, &flash{Message: fmt.Sprintf("Deleted %d selected items.", len(report.Deleted))})
}

func deleteFailureMessage(report *browse.DeleteReport) string {
	return fmt.Sprintf("Error deleting items: deleted %d, failed on %s (%s), %d not attempted.",
		len(report.Deleted), report.Failed, message(report.Err), len(report.Remaining))
}

func (s *Server) render(w http.ResponseWriter, status int, f *flash) {
	view := s.model.View()
	data := pageData{
		View:      view,
		From:      browse.FormatDay(view.From),
		To:        browse.FormatDay(view.To),
		Flash:     f,
		ServerURL: s.ServerURL,
	}
	if view.Err != nil {
		data.LoadError = message(view.Err)
	}

	// Render to a buffer so template errors do not produce half a page.
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		s.logger.Error("render failed", "err", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func isChecked(v string) bool {
	switch strings.ToLower(v) {
	case "on", "true", "1", "yes":
		return true
	default:
		return false
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// message returns the user-facing text of err without a trailing period.
func message(err error) string {
	return strings.TrimSuffix(pagekeep.ErrorMessage(err), ".")
}
