package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docfill/internal/adapters/driven/memory"
	"github.com/custodia-labs/docfill/internal/core/domain"
	"github.com/custodia-labs/docfill/internal/core/ports/driven/mocks"
	"github.com/custodia-labs/docfill/internal/extractors"
	"github.com/custodia-labs/docfill/internal/intake"
)

// MockDocumentStore is a mock implementation of driven.DocumentStore
type MockDocumentStore struct {
	mock.Mock
}

func (m *MockDocumentStore) Save(ctx context.Context, doc *domain.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentStore) Get(ctx context.Context, id string) (*domain.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type templateFixture struct {
	store     *memory.DocumentStore
	extractor *mocks.MockExtractor
	builder   *mocks.MockBuilder
	outputs   *mocks.MockOutputStore
}

func newTemplateFixture() *templateFixture {
	return &templateFixture{
		store:     memory.NewDocumentStore(),
		extractor: mocks.NewMockExtractor(),
		builder:   mocks.NewMockBuilder(),
		outputs:   mocks.NewMockOutputStore(),
	}
}

func (f *templateFixture) service(signer *mocks.MockLinkSigner) *templateService {
	deps := TemplateDeps{
		Store:      f.store,
		Extractors: extractors.DefaultRegistry(f.extractor),
		Builder:    f.builder,
		Outputs:    f.outputs,
	}
	if signer != nil {
		deps.Signer = signer
	}
	return NewTemplateService(deps, DefaultTemplateServiceConfig()).(*templateService)
}

func upload(t *testing.T, svc *templateService, text string) *domain.UploadResult {
	t.Helper()
	res, err := svc.Upload(context.Background(), domain.UploadRequest{
		Filename:    "safe.docx",
		ContentType: extractors.DocxMIMEType,
		Content:     strings.NewReader(text),
	})
	require.NoError(t, err)
	return res
}

func TestTemplateService_Upload(t *testing.T) {
	f := newTemplateFixture()
	svc := f.service(nil)

	res := upload(t, svc, "Name: _____\nAmount: $[___]\n")

	assert.NotEmpty(t, res.DocID)
	assert.Equal(t, "Name: _____\nAmount: $[___]\n", res.TextPreview)
	assert.Contains(t, res.Placeholders, "Name")
	assert.Contains(t, res.Placeholders, "Amount")

	doc, err := f.store.Get(context.Background(), res.DocID)
	require.NoError(t, err)
	assert.Equal(t, "safe.docx", doc.Filename)
	assert.Equal(t, res.Placeholders, doc.Placeholders)
	assert.False(t, doc.CreatedAt.IsZero())
}

func TestTemplateService_Upload_UniqueIDs(t *testing.T) {
	svc := newTemplateFixture().service(nil)

	a := upload(t, svc, "{X}")
	b := upload(t, svc, "{X}")
	assert.NotEqual(t, a.DocID, b.DocID)
}

func TestTemplateService_Upload_ExtractionFailureDegrades(t *testing.T) {
	f := newTemplateFixture()
	f.extractor.ExtractFn = func(ctx context.Context, r io.Reader) (string, error) {
		return "", errors.New("corrupt package")
	}
	svc := f.service(nil)

	res := upload(t, svc, "garbage")

	assert.Equal(t, "", res.TextPreview)
	assert.NotNil(t, res.Placeholders)
	assert.Empty(t, res.Placeholders)
	assert.Equal(t, 1, f.store.Len())
}

func TestTemplateService_Upload_ExtractTimeout(t *testing.T) {
	f := newTemplateFixture()
	f.extractor.ExtractFn = func(ctx context.Context, r io.Reader) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	}
	svc := f.service(nil)
	svc.cfg.ExtractTimeout = 10 * time.Millisecond

	res := upload(t, svc, "{X}")
	assert.Equal(t, "", res.TextPreview)
}

func TestTemplateService_Upload_PlainTextUsesPlaintextExtractor(t *testing.T) {
	f := newTemplateFixture()
	f.extractor.SupportedTypesFn = func() []string { return []string{extractors.DocxMIMEType} }
	svc := f.service(nil)

	res, err := svc.Upload(context.Background(), domain.UploadRequest{
		Filename: "notes.txt",
		Content:  strings.NewReader("Name: _____\r\n"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Name: _____\n", res.TextPreview)
}

func TestTemplateService_Upload_StoreError(t *testing.T) {
	f := newTemplateFixture()
	store := new(MockDocumentStore)
	store.On("Save", mock.Anything, mock.Anything).Return(errors.New("disk full"))

	svc := NewTemplateService(TemplateDeps{
		Store:      store,
		Extractors: extractors.DefaultRegistry(f.extractor),
		Builder:    f.builder,
		Outputs:    f.outputs,
	}, DefaultTemplateServiceConfig())

	_, err := svc.Upload(context.Background(), domain.UploadRequest{Content: strings.NewReader("x")})
	assert.Error(t, err)
	store.AssertExpectations(t)
}

func TestTemplateService_Upload_NoContent(t *testing.T) {
	svc := newTemplateFixture().service(nil)

	_, err := svc.Upload(context.Background(), domain.UploadRequest{Filename: "a.docx"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTemplateService_Fill_EndToEnd(t *testing.T) {
	f := newTemplateFixture()
	svc := f.service(nil)
	up := upload(t, svc, "Name: _____\nAmount: $[___]\n")

	res, err := svc.Fill(context.Background(), domain.FillRequest{
		DocID:  up.DocID,
		Values: domain.NewValues("Name", "Acme", "Amount", "500"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Name: Acme\nAmount: $500\n", res.FilledPreview)
	assert.Equal(t, "/api/download/"+up.DocID, res.DownloadPath)
	assert.Equal(t, up.DocID, res.OutputID)

	data, contentType, ok := f.outputs.Object(up.DocID + ".docx")
	require.True(t, ok)
	assert.Equal(t, res.FilledPreview, string(data))
	assert.Equal(t, f.builder.ContentType(), contentType)
}

func TestTemplateService_Fill_TextFallback(t *testing.T) {
	f := newTemplateFixture()
	svc := f.service(nil)

	res, err := svc.Fill(context.Background(), domain.FillRequest{
		Values:       domain.NewValues("Company", "Acme"),
		TextFallback: "Company: {Company}",
	})
	require.NoError(t, err)

	assert.Equal(t, "Company: Acme", res.FilledPreview)
	assert.Equal(t, "/api/download/direct", res.DownloadPath)
	_, _, ok := f.outputs.Object("direct.docx")
	assert.True(t, ok)
}

func TestTemplateService_Fill_UnknownDocUsesFallbackUnderDocID(t *testing.T) {
	f := newTemplateFixture()
	svc := f.service(nil)

	res, err := svc.Fill(context.Background(), domain.FillRequest{
		DocID:        "expired-doc",
		TextFallback: "{X}",
		Values:       domain.NewValues("X", "y"),
	})
	require.NoError(t, err)
	assert.Equal(t, "y", res.FilledPreview)
	_, _, ok := f.outputs.Object("expired-doc.docx")
	assert.True(t, ok)
}

func TestTemplateService_Fill_EmptyStoredTextUsesFallback(t *testing.T) {
	f := newTemplateFixture()
	svc := f.service(nil)
	require.NoError(t, f.store.Save(context.Background(), &domain.Document{ID: "d1"}))

	res, err := svc.Fill(context.Background(), domain.FillRequest{DocID: "d1", TextFallback: "[X]", Values: domain.NewValues("X", "1")})
	require.NoError(t, err)
	assert.Equal(t, "1", res.FilledPreview)
}

func TestTemplateService_Fill_NotFound(t *testing.T) {
	svc := newTemplateFixture().service(nil)

	_, err := svc.Fill(context.Background(), domain.FillRequest{DocID: "missing"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Fill(context.Background(), domain.FillRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTemplateService_Fill_InvalidDocID(t *testing.T) {
	svc := newTemplateFixture().service(nil)

	_, err := svc.Fill(context.Background(), domain.FillRequest{DocID: "../../etc/passwd", TextFallback: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTemplateService_Fill_StoreFailure(t *testing.T) {
	f := newTemplateFixture()
	store := new(MockDocumentStore)
	store.On("Get", mock.Anything, "d1").Return(nil, errors.New("connection refused"))

	svc := NewTemplateService(TemplateDeps{
		Store:      store,
		Extractors: extractors.DefaultRegistry(f.extractor),
		Builder:    f.builder,
		Outputs:    f.outputs,
	}, DefaultTemplateServiceConfig())

	_, err := svc.Fill(context.Background(), domain.FillRequest{DocID: "d1", TextFallback: "x"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

func TestTemplateService_Fill_BuildFailure(t *testing.T) {
	f := newTemplateFixture()
	f.builder.BuildFn = func(ctx context.Context, text string) ([]byte, error) {
		return nil, errors.New("zip failed")
	}
	svc := f.service(nil)

	_, err := svc.Fill(context.Background(), domain.FillRequest{TextFallback: "x"})
	assert.Error(t, err)
}

func TestTemplateService_Fill_OutputFailure(t *testing.T) {
	f := newTemplateFixture()
	f.outputs.PutErr = errors.New("bucket missing")
	svc := f.service(nil)

	_, err := svc.Fill(context.Background(), domain.FillRequest{TextFallback: "x"})
	assert.Error(t, err)
}

func TestTemplateService_Fill_EmptyValuesKeepText(t *testing.T) {
	f := newTemplateFixture()
	svc := f.service(nil)
	up := upload(t, svc, "Name: _____\n{Company}")

	res, err := svc.Fill(context.Background(), domain.FillRequest{
		DocID:  up.DocID,
		Values: domain.NewValues("Name", "   ", "Company", ""),
	})
	require.NoError(t, err)
	assert.Equal(t, "Name: _____\n{Company}", res.FilledPreview)
}

func TestTemplateService_SignedDownload(t *testing.T) {
	f := newTemplateFixture()
	svc := f.service(&mocks.MockLinkSigner{})
	ctx := context.Background()

	res, err := svc.Fill(ctx, domain.FillRequest{TextFallback: "{X}", Values: domain.NewValues("X", "y")})
	require.NoError(t, err)
	assert.Equal(t, "/api/download/direct?token=signed-direct", res.DownloadPath)

	_, err = svc.Download(ctx, "direct", "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	rc, err := svc.Download(ctx, "direct", "signed-direct")
	require.NoError(t, err)
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	assert.Equal(t, "y", string(data))
}

func TestTemplateService_Download(t *testing.T) {
	f := newTemplateFixture()
	svc := f.service(nil)
	ctx := context.Background()

	_, err := svc.Download(ctx, "missing", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Download(ctx, "../secret", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Fill(ctx, domain.FillRequest{TextFallback: "hello"})
	require.NoError(t, err)

	rc, err := svc.Download(ctx, "direct", "")
	require.NoError(t, err)
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	assert.Equal(t, "hello", string(data))
}

func TestTemplateService_GetAndPreview(t *testing.T) {
	f := newTemplateFixture()
	svc := f.service(nil)
	ctx := context.Background()
	up := upload(t, svc, "Dear {Name} & co")

	doc, err := svc.Get(ctx, up.DocID)
	require.NoError(t, err)
	assert.Equal(t, "Dear {Name} & co", doc.RawText)

	html, err := svc.Preview(ctx, up.DocID)
	require.NoError(t, err)
	assert.Contains(t, html, `<mark class="placeholder">{Name}</mark>`)
	assert.Contains(t, html, "&amp;")

	_, err = svc.Preview(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTemplateService_Next(t *testing.T) {
	f := newTemplateFixture()
	svc := f.service(nil)
	ctx := context.Background()
	up := upload(t, svc, "{Company Name}\n{Investor Name}\n")

	p, err := svc.Next(ctx, up.DocID, domain.NewValues("Company Name", "Acme"))
	require.NoError(t, err)
	assert.Equal(t, "Investor Name", p.Next)
	assert.Equal(t, 50, p.Percent)
	assert.Equal(t, 2, p.Total)

	p, err = svc.Next(ctx, up.DocID, domain.NewValues("Company Name", "Acme", "Investor Name", "Bo"))
	require.NoError(t, err)
	assert.True(t, p.Done())
	assert.Equal(t, 100, p.Percent)

	_, err = svc.Next(ctx, "missing", nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTemplateService_Validate(t *testing.T) {
	svc := newTemplateFixture().service(nil)

	assert.NoError(t, svc.Validate("Effective Date", "10-31-2025"))

	err := svc.Validate("Purchase Amount", "lots")
	var verr *intake.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, intake.AmountHint, verr.Hint)
}
