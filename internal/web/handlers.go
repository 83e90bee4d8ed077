package web

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/payops/validator/internal/dedupe"
	"github.com/payops/validator/internal/logging"
	"github.com/payops/validator/internal/rules"
	"github.com/payops/validator/internal/table"
	"github.com/payops/validator/internal/validator"
)

// validateResponse is the full structured result of one validation run.
type validateResponse struct {
	ValidationID string               `json:"validation_id"`
	FileName     string               `json:"file_name"`
	Passed       bool                 `json:"passed"`
	Outcomes     []rules.Outcome      `json:"outcomes"`
	Issues       []validator.RowIssue `json:"issues"`
	Duplicates   []dedupe.Pair        `json:"duplicates"`
	Report       string               `json:"report"`
}

// runUpload stores the uploaded file in a temporary location, resolves
// the rule profile, and runs the full pipeline. The temporary file is
// removed before returning; the core never retains on-disk artifacts.
// Returns ok=false after writing an error response.
func (s *Server) runUpload(w http.ResponseWriter, r *http.Request) (res *validator.Result, fileName string, ok bool) {
	maxSize := s.cfg.Upload.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		writeError(w, r, http.StatusBadRequest, "file too large or invalid form")
		return nil, "", false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "no file provided")
		return nil, "", false
	}
	defer file.Close()

	// The extension selects the parser, so it must survive the copy
	// into temporary storage.
	ext := strings.ToLower(filepath.Ext(header.Filename))
	tmp, err := os.CreateTemp("", "upload-*"+ext)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "failed to store upload")
		return nil, "", false
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		writeError(w, r, http.StatusInternalServerError, "failed to store upload")
		return nil, "", false
	}
	if err := tmp.Close(); err != nil {
		writeError(w, r, http.StatusInternalServerError, "failed to store upload")
		return nil, "", false
	}

	cfg := s.defaultProfile
	if profileYAML := r.FormValue("profile"); profileYAML != "" {
		cfg = validator.Config{}
		if err := yaml.Unmarshal([]byte(profileYAML), &cfg); err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid profile format")
			return nil, "", false
		}
	}

	logger := logging.WithFields(r.Context(), "file", header.Filename)
	res = validator.Run(tmp.Name(), cfg)
	logger.Info("validation complete",
		"passed", res.Passed,
		"outcomes", len(res.Outcomes),
		"issues", len(res.Issues),
		"duplicates", len(res.Duplicates),
	)
	return res, header.Filename, true
}

// handleValidate returns the full structured validation result.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	res, fileName, ok := s.runUpload(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, validateResponse{
		ValidationID: uuid.New().String(),
		FileName:     fileName,
		Passed:       res.Passed,
		Outcomes:     res.Outcomes,
		Issues:       res.Issues,
		Duplicates:   res.Duplicates,
		Report:       res.Report,
	})
}

// handleValidateReport returns the plain-text report.
func (s *Server) handleValidateReport(w http.ResponseWriter, r *http.Request) {
	res, _, ok := s.runUpload(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, res.Report)
}

// handleValidateIssues returns the per-row issue list as a CSV download.
func (s *Server) handleValidateIssues(w http.ResponseWriter, r *http.Request) {
	res, _, ok := s.runUpload(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="validation_issues.csv"`)
	if err := validator.WriteIssuesCSV(w, res.Issues); err != nil {
		logging.FromContext(r.Context()).Error("write issues csv", "error", err)
	}
}

// handleValidateCleaned returns the dataset with every row the issue
// list references removed, as a CSV download.
func (s *Server) handleValidateCleaned(w http.ResponseWriter, r *http.Request) {
	res, fileName, ok := s.runUpload(w, r)
	if !ok {
		return
	}
	if res.Cleaned == nil {
		writeError(w, r, http.StatusUnprocessableEntity, "file could not be loaded")
		return
	}

	base := strings.TrimSuffix(filepath.Base(fileName), filepath.Ext(fileName))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s - cleaned.csv"`, base))
	if err := table.WriteCSV(w, res.Cleaned); err != nil {
		logging.FromContext(r.Context()).Error("write cleaned csv", "error", err)
	}
}
