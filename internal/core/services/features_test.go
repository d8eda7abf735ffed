package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/cucumber/godog"

	"github.com/custodia-labs/docfill/internal/adapters/driven/docx"
	"github.com/custodia-labs/docfill/internal/adapters/driven/memory"
	"github.com/custodia-labs/docfill/internal/core/domain"
	"github.com/custodia-labs/docfill/internal/core/ports/driven/mocks"
	"github.com/custodia-labs/docfill/internal/extractors"
)

// fillFeature holds the state of one scenario.
type fillFeature struct {
	svc     *templateService
	builder *docx.Builder
	reader  *docx.Extractor

	template []byte
	uploads  []*domain.UploadResult
	result   *domain.FillResult
}

func newFillFeature() *fillFeature {
	reader := docx.NewExtractor()
	builder := docx.NewBuilder()
	svc := NewTemplateService(TemplateDeps{
		Store:      memory.NewDocumentStore(),
		Extractors: extractors.DefaultRegistry(reader),
		Builder:    builder,
		Outputs:    mocks.NewMockOutputStore(),
	}, DefaultTemplateServiceConfig()).(*templateService)

	return &fillFeature{svc: svc, builder: builder, reader: reader}
}

func (f *fillFeature) aDocxTemplate(text *godog.DocString) error {
	data, err := f.builder.Build(context.Background(), text.Content)
	if err != nil {
		return err
	}
	f.template = data
	return nil
}

func (f *fillFeature) iUploadIt() error {
	res, err := f.svc.Upload(context.Background(), domain.UploadRequest{
		Filename:    "template.docx",
		ContentType: extractors.DocxMIMEType,
		Content:     bytes.NewReader(f.template),
	})
	if err != nil {
		return err
	}
	f.uploads = append(f.uploads, res)
	return nil
}

func (f *fillFeature) iUploadItTwice() error {
	if err := f.iUploadIt(); err != nil {
		return err
	}
	return f.iUploadIt()
}

func (f *fillFeature) lastUpload() (*domain.UploadResult, error) {
	if len(f.uploads) == 0 {
		return nil, fmt.Errorf("nothing uploaded")
	}
	return f.uploads[len(f.uploads)-1], nil
}

func (f *fillFeature) thePlaceholdersInclude(name string) error {
	up, err := f.lastUpload()
	if err != nil {
		return err
	}
	for _, p := range up.Placeholders {
		if p == name {
			return nil
		}
	}
	return fmt.Errorf("placeholder %q not in %q", name, up.Placeholders)
}

func (f *fillFeature) iFillItWith(table *godog.Table) error {
	up, err := f.lastUpload()
	if err != nil {
		return err
	}

	var values domain.Values
	for i, row := range table.Rows {
		if i == 0 {
			continue
		}
		values.Set(row.Cells[0].Value, row.Cells[1].Value)
	}

	res, err := f.svc.Fill(context.Background(), domain.FillRequest{DocID: up.DocID, Values: values})
	if err != nil {
		return err
	}
	f.result = res
	return nil
}

func (f *fillFeature) theGeneratedDocumentReads(expected *godog.DocString) error {
	if f.result == nil {
		return fmt.Errorf("nothing generated")
	}

	rc, err := f.svc.Download(context.Background(), f.result.OutputID, "")
	if err != nil {
		return err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return err
	}
	text, err := f.reader.Extract(context.Background(), bytes.NewReader(data))
	if err != nil {
		return err
	}

	if text != expected.Content {
		return fmt.Errorf("generated document:\n%s\nwant:\n%s", text, expected.Content)
	}
	if text != f.result.FilledPreview {
		return fmt.Errorf("preview %q differs from document %q", f.result.FilledPreview, text)
	}
	return nil
}

func (f *fillFeature) bothUploadsReportTheSamePlaceholders() error {
	if len(f.uploads) != 2 {
		return fmt.Errorf("expected 2 uploads, got %d", len(f.uploads))
	}
	a, b := f.uploads[0].Placeholders, f.uploads[1].Placeholders
	if fmt.Sprint(a) != fmt.Sprint(b) {
		return fmt.Errorf("placeholders differ: %q vs %q", a, b)
	}
	if len(a) == 0 {
		return fmt.Errorf("expected placeholders")
	}
	return nil
}

func initializeFillScenario(sc *godog.ScenarioContext) {
	var f *fillFeature
	sc.Before(func(ctx context.Context, s *godog.Scenario) (context.Context, error) {
		f = newFillFeature()
		return ctx, nil
	})

	sc.Step(`^a docx template:$`, func(doc *godog.DocString) error { return f.aDocxTemplate(doc) })
	sc.Step(`^I upload it$`, func() error { return f.iUploadIt() })
	sc.Step(`^I upload it twice$`, func() error { return f.iUploadItTwice() })
	sc.Step(`^the placeholders include "([^"]*)"$`, func(name string) error { return f.thePlaceholdersInclude(name) })
	sc.Step(`^I fill it with:$`, func(table *godog.Table) error { return f.iFillItWith(table) })
	sc.Step(`^the generated document reads:$`, func(doc *godog.DocString) error { return f.theGeneratedDocumentReads(doc) })
	sc.Step(`^both uploads report the same placeholders$`, func() error { return f.bothUploadsReportTheSamePlaceholders() })
}

func TestFillFeatures(t *testing.T) {
	suite := godog.TestSuite{
		Name:                "fill",
		ScenarioInitializer: initializeFillScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"testdata/features"},
			TestingT: t,
			Strict:   true,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("feature tests failed")
	}
}
