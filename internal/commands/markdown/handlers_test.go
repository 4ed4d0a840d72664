package markdowncmd

import (
	"context"
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

type stubMarkdownService struct {
	interfaces.MarkdownService

	calls  int
	result *interfaces.ImportResult
	err    error
}

func (s *stubMarkdownService) ImportDirectory(_ context.Context, _ string, _ interfaces.ImportOptions) (*interfaces.ImportResult, error) {
	s.calls++
	return s.result, s.err
}

func TestImportDirectoryHandler(t *testing.T) {
	stub := &stubMarkdownService{result: &interfaces.ImportResult{}}
	handler := NewImportDirectoryHandler(stub, nil, FeatureGates{})

	err := handler.Execute(context.Background(), ImportDirectoryCommand{
		Directory: "content/posts",
		AuthorID:  uuid.New(),
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if stub.calls != 1 {
		t.Fatalf("expected one import call, got %d", stub.calls)
	}
}

func TestImportDirectoryHandlerValidation(t *testing.T) {
	stub := &stubMarkdownService{}
	handler := NewImportDirectoryHandler(stub, nil, FeatureGates{})

	err := handler.Execute(context.Background(), ImportDirectoryCommand{})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if stub.calls != 0 {
		t.Fatal("import should not run when validation fails")
	}
}

func TestImportDirectoryHandlerFeatureGate(t *testing.T) {
	stub := &stubMarkdownService{}
	handler := NewImportDirectoryHandler(stub, nil, FeatureGates{
		MarkdownEnabled: func() bool { return false },
	})

	err := handler.Execute(context.Background(), ImportDirectoryCommand{
		Directory: "content/posts",
		AuthorID:  uuid.New(),
	})
	if err == nil || !errors.Is(err, ErrMarkdownFeatureDisabled) {
		t.Fatalf("expected feature disabled error, got %v", err)
	}
	if stub.calls != 0 {
		t.Fatal("import should not run when the feature is disabled")
	}
}
