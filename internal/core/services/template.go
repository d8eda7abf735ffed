package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/docfill/internal/core/domain"
	"github.com/custodia-labs/docfill/internal/core/ports/driven"
	"github.com/custodia-labs/docfill/internal/core/ports/driving"
	"github.com/custodia-labs/docfill/internal/extractors"
	"github.com/custodia-labs/docfill/internal/fill"
	"github.com/custodia-labs/docfill/internal/highlight"
	"github.com/custodia-labs/docfill/internal/intake"
	"github.com/custodia-labs/docfill/internal/placeholder"
)

// Ensure templateService implements TemplateService
var _ driving.TemplateService = (*templateService)(nil)

// DownloadPathPrefix is the route generated documents are served from.
const DownloadPathPrefix = "/api/download/"

// TemplateServiceConfig holds the collaborator timeouts.
type TemplateServiceConfig struct {
	ExtractTimeout time.Duration
	BuildTimeout   time.Duration
}

// DefaultTemplateServiceConfig returns sensible defaults
func DefaultTemplateServiceConfig() TemplateServiceConfig {
	return TemplateServiceConfig{
		ExtractTimeout: 30 * time.Second,
		BuildTimeout:   30 * time.Second,
	}
}

// TemplateDeps are the collaborators of the template service.
// Signer may be nil, in which case download links are unsigned.
type TemplateDeps struct {
	Store      driven.DocumentStore
	Extractors driven.ExtractorRegistry
	Builder    driven.DocumentBuilder
	Outputs    driven.OutputStore
	Signer     driven.LinkSigner
	Pipeline   *fill.Pipeline
	Logger     *slog.Logger
}

// templateService implements the TemplateService interface
type templateService struct {
	store      driven.DocumentStore
	extractors driven.ExtractorRegistry
	builder    driven.DocumentBuilder
	outputs    driven.OutputStore
	signer     driven.LinkSigner
	pipeline   *fill.Pipeline
	logger     *slog.Logger
	cfg        TemplateServiceConfig
	now        func() time.Time
}

// NewTemplateService creates a new TemplateService
func NewTemplateService(deps TemplateDeps, cfg TemplateServiceConfig) driving.TemplateService {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	pipeline := deps.Pipeline
	if pipeline == nil {
		pipeline = fill.DefaultPipeline().WithLogger(logger)
	}
	return &templateService{
		store:      deps.Store,
		extractors: deps.Extractors,
		builder:    deps.Builder,
		outputs:    deps.Outputs,
		signer:     deps.Signer,
		pipeline:   pipeline,
		logger:     logger,
		cfg:        cfg,
		now:        time.Now,
	}
}

// Upload stores a template and its detected placeholders
func (s *templateService) Upload(ctx context.Context, req domain.UploadRequest) (*domain.UploadResult, error) {
	if req.Content == nil {
		return nil, fmt.Errorf("upload: %w", domain.ErrInvalidInput)
	}

	id := uuid.New().String()
	text := s.extract(ctx, id, req)

	doc := &domain.Document{
		ID:           id,
		Filename:     req.Filename,
		RawText:      text,
		Placeholders: placeholder.Scan(text),
		CreatedAt:    s.now().UTC(),
	}
	if err := s.store.Save(ctx, doc); err != nil {
		return nil, fmt.Errorf("save document: %w", err)
	}

	s.logger.Info("template uploaded",
		"doc_id", id,
		"filename", req.Filename,
		"placeholders", len(doc.Placeholders),
	)

	return &domain.UploadResult{
		DocID:        id,
		Placeholders: doc.Placeholders,
		TextPreview:  text,
	}, nil
}

// extract never fails: an unreadable upload is an empty template.
func (s *templateService) extract(ctx context.Context, id string, req domain.UploadRequest) string {
	mimeType := extractors.DetectType(req.Filename, req.ContentType)
	extractor := s.extractors.Get(mimeType)
	if extractor == nil {
		extractor = s.extractors.Get(extractors.DocxMIMEType)
	}
	if extractor == nil {
		s.logger.Warn("no extractor for upload", "doc_id", id, "mime_type", mimeType)
		return ""
	}

	ctx, cancel := s.withTimeout(ctx, s.cfg.ExtractTimeout)
	defer cancel()

	text, err := extractor.Extract(ctx, req.Content)
	if err != nil {
		s.logger.Warn("text extraction failed",
			"doc_id", id,
			"filename", req.Filename,
			"mime_type", mimeType,
			"error", err,
		)
		return ""
	}
	return text
}

// Fill generates a document from a stored template or fallback text
func (s *templateService) Fill(ctx context.Context, req domain.FillRequest) (*domain.FillResult, error) {
	text, err := s.templateText(ctx, req)
	if err != nil {
		return nil, err
	}

	outputID := domain.OutputID(req.DocID)
	if !domain.ValidOutputID(outputID) {
		return nil, fmt.Errorf("doc id %q: %w", req.DocID, domain.ErrInvalidInput)
	}

	filled := s.pipeline.Fill(text, req.Values)

	buildCtx, cancel := s.withTimeout(ctx, s.cfg.BuildTimeout)
	data, err := s.builder.Build(buildCtx, filled)
	cancel()
	if err != nil {
		return nil, fmt.Errorf("build document: %w", err)
	}

	if err := s.outputs.Put(ctx, s.outputKey(outputID), data, s.builder.ContentType()); err != nil {
		return nil, fmt.Errorf("store document: %w", err)
	}

	path, err := s.downloadPath(outputID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("document generated",
		"output_id", outputID,
		"values", len(req.Values.Present()),
		"bytes", len(data),
	)

	return &domain.FillResult{
		OutputID:      outputID,
		DownloadPath:  path,
		FilledPreview: filled,
	}, nil
}

// templateText prefers the stored text and falls back to the request's.
func (s *templateService) templateText(ctx context.Context, req domain.FillRequest) (string, error) {
	if req.DocID != "" {
		doc, err := s.store.Get(ctx, req.DocID)
		switch {
		case err == nil && doc.HasText():
			return doc.RawText, nil
		case err != nil && !errors.Is(err, domain.ErrNotFound):
			return "", fmt.Errorf("get document: %w", err)
		}
	}
	if req.TextFallback != "" {
		return req.TextFallback, nil
	}
	return "", fmt.Errorf("doc id %q: %w", req.DocID, domain.ErrNotFound)
}

func (s *templateService) downloadPath(outputID string) (string, error) {
	path := DownloadPathPrefix + outputID
	if s.signer == nil {
		return path, nil
	}
	token, err := s.signer.Sign(outputID)
	if err != nil {
		return "", fmt.Errorf("sign download: %w", err)
	}
	return path + "?token=" + url.QueryEscape(token), nil
}

// Download opens a generated document
func (s *templateService) Download(ctx context.Context, id, token string) (io.ReadCloser, error) {
	if !domain.ValidOutputID(id) {
		return nil, domain.ErrNotFound
	}
	if s.signer != nil {
		if err := s.signer.Verify(token, id); err != nil {
			return nil, err
		}
	}
	return s.outputs.Open(ctx, s.outputKey(id))
}

// Get retrieves a stored template by ID
func (s *templateService) Get(ctx context.Context, id string) (*domain.Document, error) {
	return s.store.Get(ctx, id)
}

// Preview renders the stored template with placeholders highlighted
func (s *templateService) Preview(ctx context.Context, id string) (string, error) {
	doc, err := s.store.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return highlight.HTML(doc.RawText), nil
}

// Next reports what to ask for next
func (s *templateService) Next(ctx context.Context, docID string, values domain.Values) (*intake.Progress, error) {
	doc, err := s.store.Get(ctx, docID)
	if err != nil {
		return nil, err
	}
	progress := intake.Evaluate(doc.Placeholders, values)
	return &progress, nil
}

// Validate checks a single answer
func (s *templateService) Validate(field, value string) error {
	return intake.Validate(field, value)
}

func (s *templateService) outputKey(id string) string {
	return id + s.builder.Extension()
}

func (s *templateService) withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
