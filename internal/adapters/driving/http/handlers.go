package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/swaggo/swag"

	"github.com/custodia-labs/docfill/docs"
	"github.com/custodia-labs/docfill/internal/core/domain"
	"github.com/custodia-labs/docfill/internal/extractors"
	"github.com/custodia-labs/docfill/internal/intake"
)

// maxJSONBytes caps JSON request bodies.
const maxJSONBytes = 10 << 20

// multipartMemory is how much of an upload is buffered in memory before
// spilling to temp files.
const multipartMemory = 8 << 20

// ErrorResponse represents an API error response
// @Description API error response
type ErrorResponse struct {
	Error  string `json:"error" example:"fill failed"`
	Detail string `json:"detail,omitempty" example:"build document: zip: write error"`
}

// HealthResponse represents the health check response
// @Description Health check response
type HealthResponse struct {
	OK bool `json:"ok" example:"true"`
}

// VersionResponse represents the API version response
// @Description API version response
type VersionResponse struct {
	Version string `json:"version" example:"1.0.0"`
}

// IntakeNextRequest asks for the next unanswered field
// @Description Values collected so far for a stored template
type IntakeNextRequest struct {
	DocID  string        `json:"docId" example:"3f2a9c1e-5b7d-4e8f-9a0b-1c2d3e4f5a6b"`
	Values domain.Values `json:"values" swaggertype:"object,string"`
}

// IntakeValidateRequest checks a single answer
// @Description A single answer to validate
type IntakeValidateRequest struct {
	Field string `json:"field" example:"Purchase Amount"`
	Value string `json:"value" example:"$250,000"`
}

// IntakeValidateResponse reports whether an answer fits its field
// @Description Validation outcome with a hint when rejected
type IntakeValidateResponse struct {
	OK   bool   `json:"ok" example:"false"`
	Hint string `json:"hint,omitempty" example:"Use a number (e.g., 250000 or $250,000)."`
}

// Health endpoints

// handleHealth godoc
// @Summary      Health check
// @Description  Returns ok when the API is serving
// @Tags         Health
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Router       /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{OK: true})
}

// handleVersion godoc
// @Summary      Get API version
// @Tags         Health
// @Produce      json
// @Success      200  {object}  VersionResponse
// @Router       /version [get]
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, VersionResponse{Version: s.version})
}

func (s *Server) handleSwagger(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	if err != nil {
		writeErrorDetail(w, http.StatusInternalServerError, "swagger unavailable", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, doc)
}

// Template endpoints

// handleUpload godoc
// @Summary      Upload a template
// @Description  Extracts the text of a .docx (or plain text) template and detects its placeholders
// @Tags         Templates
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Template document"
// @Success      200  {object}  domain.UploadResult
// @Failure      400  {object}  ErrorResponse
// @Failure      413  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /upload [post]
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > s.maxUploadBytes {
		writeError(w, http.StatusRequestEntityTooLarge, domain.ErrTooLarge.Error())
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, domain.ErrTooLarge.Error())
			return
		}
		writeError(w, http.StatusBadRequest, "No file")
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file")
		return
	}
	defer file.Close()

	result, err := s.templates.Upload(r.Context(), domain.UploadRequest{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Content:     file,
	})
	if err != nil {
		s.logger.Error("upload failed", "filename", header.Filename, "error", err)
		writeErrorDetail(w, http.StatusInternalServerError, "analyze failed", err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleFill godoc
// @Summary      Fill a template
// @Description  Applies values to a stored template, or to textFallback, and generates a .docx
// @Tags         Templates
// @Accept       json
// @Produce      json
// @Param        request  body  domain.FillRequest  true  "Values to fill"
// @Success      200  {object}  domain.FillResult
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /fill [post]
func (s *Server) handleFill(w http.ResponseWriter, r *http.Request) {
	var req domain.FillRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := s.templates.Fill(r.Context(), req)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, result)
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "docId not found")
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error("fill failed", "doc_id", req.DocID, "error", err)
		writeErrorDetail(w, http.StatusInternalServerError, "fill failed", err)
	}
}

// handleDownload godoc
// @Summary      Download a generated document
// @Tags         Templates
// @Produce      application/vnd.openxmlformats-officedocument.wordprocessingml.document
// @Param        id     path   string  true   "Document ID or direct"
// @Param        token  query  string  false  "Signed link token"
// @Success      200  {file}    file
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /download/{id} [get]
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	rc, err := s.templates.Download(r.Context(), id, r.URL.Query().Get("token"))
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
		return
	case errors.Is(err, domain.ErrTokenExpired):
		writeError(w, http.StatusUnauthorized, "link expired")
		return
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "invalid link")
		return
	default:
		writeErrorDetail(w, http.StatusInternalServerError, "download failed", err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", extractors.DocxMIMEType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="lexsy-filled-%s.docx"`, id))
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, rc); err != nil {
		s.logger.Warn("download interrupted", "id", id, "error", err)
	}
}

// Document endpoints

// handleGetDocument godoc
// @Summary      Get a stored template
// @Tags         Documents
// @Produce      json
// @Param        id   path      string  true  "Document ID"
// @Success      200  {object}  domain.Document
// @Failure      404  {object}  ErrorResponse
// @Router       /documents/{id} [get]
func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := s.templates.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeLookupError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// handlePreview godoc
// @Summary      Preview a stored template
// @Description  Returns the template text as HTML with placeholders wrapped in mark elements
// @Tags         Documents
// @Produce      html
// @Param        id   path      string  true  "Document ID"
// @Success      200  {string}  string
// @Failure      404  {object}  ErrorResponse
// @Router       /documents/{id}/preview [get]
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	html, err := s.templates.Preview(r.Context(), r.PathValue("id"))
	if err != nil {
		writeLookupError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, html)
}

// Intake endpoints

// handleIntakeNext godoc
// @Summary      Next question
// @Description  Reports the next unanswered field, its question and the completion percentage
// @Tags         Intake
// @Accept       json
// @Produce      json
// @Param        request  body  IntakeNextRequest  true  "Answers so far"
// @Success      200  {object}  intake.Progress
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /intake/next [post]
func (s *Server) handleIntakeNext(w http.ResponseWriter, r *http.Request) {
	var req IntakeNextRequest
	if err := decodeJSON(w, r, &req); err != nil || req.DocID == "" {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	progress, err := s.templates.Next(r.Context(), req.DocID, req.Values)
	if err != nil {
		writeLookupError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

// handleIntakeValidate godoc
// @Summary      Validate an answer
// @Tags         Intake
// @Accept       json
// @Produce      json
// @Param        request  body  IntakeValidateRequest  true  "Answer"
// @Success      200  {object}  IntakeValidateResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /intake/validate [post]
func (s *Server) handleIntakeValidate(w http.ResponseWriter, r *http.Request) {
	var req IntakeValidateRequest
	if err := decodeJSON(w, r, &req); err != nil || req.Field == "" {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := s.templates.Validate(req.Field, req.Value)
	if err == nil {
		writeJSON(w, http.StatusOK, IntakeValidateResponse{OK: true})
		return
	}

	var verr *intake.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusOK, IntakeValidateResponse{OK: false, Hint: verr.Hint})
		return
	}
	writeErrorDetail(w, http.StatusInternalServerError, "validation failed", err)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBytes)).Decode(v)
}

func writeLookupError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	writeErrorDetail(w, http.StatusInternalServerError, "lookup failed", err)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

func writeErrorDetail(w http.ResponseWriter, status int, message string, err error) {
	writeJSON(w, status, ErrorResponse{Error: message, Detail: err.Error()})
}
