// Utilitrack - Daily Utility Consumption Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/utilitrack

package api

import (
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/tomtom215/utilitrack/internal/ingest"
	"github.com/tomtom215/utilitrack/internal/metrics"
	"github.com/tomtom215/utilitrack/internal/models"
)

const (
	// defaultUploadLimit applies when no import size limit is configured.
	defaultUploadLimit = 10 << 20

	// multipartOverhead allows for form boundaries and part headers.
	multipartOverhead = 64 << 10

	// pastedSource names text imports in the history.
	pastedSource = "pasted text"

	defaultHistoryPageSize = 20
)

// ImportReadings imports a consumption export.
//
// Two request shapes are accepted:
//   - multipart/form-data with the export in the "file" field (.csv or .txt)
//   - a text body (text/plain) holding pasted export rows
//
// The response carries the inserted, overwritten and error counts, the
// per-line errors and the date range of the parsed rows.
func (h *Handler) ImportReadings(w http.ResponseWriter, r *http.Request) {
	if h.importer == nil {
		respondError(w, http.StatusServiceUnavailable, CodeService, "Importer not available", nil)
		return
	}
	if !h.importLimiter.Allow() {
		metrics.APIRateLimitHits.WithLabelValues("import").Inc()
		w.Header().Set("Retry-After", "60")
		respondError(w, http.StatusTooManyRequests, CodeRateLimit, "Too many imports, try again later", nil)
		return
	}

	start := time.Now()
	limit := h.uploadLimit()
	r.Body = http.MaxBytesReader(w, r.Body, limit+multipartOverhead)

	var (
		summary *models.ImportSummary
		err     error
	)
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		summary, err = h.importUpload(r, limit)
	} else {
		var body []byte
		body, err = io.ReadAll(r.Body)
		if err == nil {
			summary, err = h.importer.ImportText(r.Context(), pastedSource, string(body))
		}
	}
	if err != nil {
		respondImportError(w, err)
		return
	}

	h.audit.LogChange("import", adminFromContext(r.Context()), r.RemoteAddr, map[string]string{
		"import_id":   summary.ID,
		"source":      summary.Source,
		"resource":    string(summary.ResourceType),
		"inserted":    strconv.Itoa(summary.Inserted),
		"overwritten": strconv.Itoa(summary.Overwritten),
		"errors":      strconv.Itoa(summary.ErrorCount),
	})
	respondSuccess(w, http.StatusOK, summary, start)
}

func (h *Handler) importUpload(r *http.Request, limit int64) (*models.ImportSummary, error) {
	if err := r.ParseMultipartForm(limit); err != nil {
		return nil, err
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, ingest.ErrEmptyUpload
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	if err := ingest.ValidateUpload(header.Filename, header.Size); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	return h.importer.ImportFile(r.Context(), header.Filename, data)
}

func (h *Handler) uploadLimit() int64 {
	if h.config != nil && h.config.Import.MaxUploadBytes > 0 {
		return h.config.Import.MaxUploadBytes
	}
	return defaultUploadLimit
}

// respondImportError maps a rejected batch to a single user-facing error.
func respondImportError(w http.ResponseWriter, err error) {
	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.Is(err, ingest.ErrEmptyUpload), errors.Is(err, ingest.ErrUnsupportedFileKind):
		respondError(w, http.StatusBadRequest, CodeValidation, err.Error(), nil)
	case errors.Is(err, ingest.ErrUploadTooLarge), errors.As(err, &maxBytesErr), errors.Is(err, multipart.ErrMessageTooLarge):
		respondError(w, http.StatusRequestEntityTooLarge, CodeTooLarge, "Upload exceeds size limit", nil)
	case errors.Is(err, http.ErrNotMultipart), errors.Is(err, http.ErrMissingBoundary):
		respondError(w, http.StatusBadRequest, CodeBadRequest, "Malformed multipart upload", nil)
	default:
		respondError(w, http.StatusInternalServerError, CodeService, "Import failed", err)
	}
}

// ImportHistory returns the most recent import batches, newest first.
func (h *Handler) ImportHistory(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := ImportHistoryRequest{Limit: getIntParam(r, "limit", defaultHistoryPageSize)}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	if h.importer == nil || h.importer.History() == nil {
		respondSuccess(w, http.StatusOK, []models.ImportSummary{}, start)
		return
	}
	entries, err := h.importer.History().List(r.Context(), req.Limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, CodeService, "Failed to read import history", err)
		return
	}
	respondSuccess(w, http.StatusOK, entries, start)
}
