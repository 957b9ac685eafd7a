// Package handler — transfer.go implements POST /import and GET /export.
// Both endpoints speak the two interchange formats, selected with ?format=
// (adif is the default). Import bodies are raw file contents, not JSON.
package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/shadowmov/easyqso/backend/internal/domain"
)

const (
	formatADIF = "adif"
	formatCSV  = "csv"
)

// Import handles POST /import?format=adif|csv.
// The request body is the uploaded file verbatim. The response reports how
// many records were inserted and how many were dropped as duplicates.
func (s *Server) Import(w http.ResponseWriter, r *http.Request) {
	format, ok := formatParam(w, r)
	if !ok {
		return
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		badRequest(w, "cannot read request body")
		return
	}
	if len(data) == 0 {
		badRequest(w, "request body is required")
		return
	}

	var res domain.ImportResult
	switch format {
	case formatADIF:
		res, err = s.importer.ImportADIF(r.Context(), data)
	case formatCSV:
		res, err = s.importer.ImportCSV(r.Context(), data)
	}
	if err != nil {
		if errors.Is(err, domain.ErrUnreadableFile) || errors.Is(err, domain.ErrMalformedFile) {
			badRequest(w, unwrapFileError(err))
			return
		}
		internalError(w, err)
		return
	}

	s.observeImport(format, res)
	writeJSON(w, http.StatusOK, res)
}

// Export handles GET /export?format=adif|csv.
// ADIF is served as text/plain, CSV as text/csv, both as attachments.
func (s *Server) Export(w http.ResponseWriter, r *http.Request) {
	format, ok := formatParam(w, r)
	if !ok {
		return
	}

	var (
		data        []byte
		records     int
		err         error
		contentType string
		filename    string
	)
	switch format {
	case formatADIF:
		data, records, err = s.exporter.ExportADIF(r.Context())
		contentType = "text/plain; charset=utf-8"
		filename = "easyqso_export.adi"
	case formatCSV:
		data, records, err = s.exporter.ExportCSV(r.Context())
		contentType = "text/csv; charset=utf-8"
		filename = "easyqso_export.csv"
	}
	if err != nil {
		internalError(w, err)
		return
	}

	s.observeExport(format, records)

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data) //nolint:errcheck // headers are already sent
}

// formatParam reads ?format= and writes a 400 for unknown values.
// An absent parameter selects ADIF.
func formatParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	switch f := r.URL.Query().Get("format"); f {
	case "", formatADIF:
		return formatADIF, true
	case formatCSV:
		return formatCSV, true
	default:
		badRequest(w, "format must be adif or csv")
		return "", false
	}
}

// unwrapFileError strips the service call prefix from a wrapped file error
// so the client sees "file format incorrect" rather than the call chain.
func unwrapFileError(err error) string {
	switch {
	case errors.Is(err, domain.ErrMalformedFile):
		return domain.ErrMalformedFile.Error()
	case errors.Is(err, domain.ErrUnreadableFile):
		return domain.ErrUnreadableFile.Error()
	default:
		return err.Error()
	}
}
