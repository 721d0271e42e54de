package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestClassifiedError(t *testing.T) {
	t.Run("Basic error creation", func(t *testing.T) {
		err := NewError(CategoryConfig, "invalid configuration").
			WithSeverity(SeverityFatal).
			WithContext("file", "hakkan.cfg").
			Build()

		if err.Category() != CategoryConfig {
			t.Errorf("expected category %s, got %s", CategoryConfig, err.Category())
		}
		if err.Severity() != SeverityFatal {
			t.Errorf("expected severity %s, got %s", SeverityFatal, err.Severity())
		}
		if err.Message() != "invalid configuration" {
			t.Errorf("expected message 'invalid configuration', got %s", err.Message())
		}

		file, exists := err.Context().GetString("file")
		if !exists || file != "hakkan.cfg" {
			t.Errorf("expected context file=hakkan.cfg, got %v", file)
		}
		if !strings.Contains(err.Error(), "hakkan.cfg") {
			t.Errorf("expected message to name the file, got %q", err.Error())
		}
	})

	t.Run("Error detection", func(t *testing.T) {
		err := ConfigError("test error").Build()

		if !IsClassified(err) {
			t.Error("expected error to be classified")
		}
		if !HasCategory(err, CategoryConfig) {
			t.Error("expected error to have config category")
		}
		if c, _ := AsClassified(err); c.Severity() != SeverityFatal {
			t.Error("expected error to have fatal severity")
		}
		if !err.IsFatal() {
			t.Error("expected config error to be fatal")
		}
	})

	t.Run("Content errors are not fatal", func(t *testing.T) {
		err := MalformedContentError("missing slug").WithContext("file", "a/post.md").Build()
		if err.IsFatal() {
			t.Error("expected content error to be non-fatal")
		}
		if GetCategory(err) != CategoryContent {
			t.Errorf("expected content category, got %s", GetCategory(err))
		}
	})
}

func TestErrorBuilder(t *testing.T) {
	t.Run("Fluent API", func(t *testing.T) {
		originalErr := errors.New("permission denied")
		err := WrapError(originalErr, CategoryFileSystem, "write page").
			Warning().
			WithContext("file", "out/index.html").
			Build()

		if err.Category() != CategoryFileSystem {
			t.Errorf("expected filesystem category, got %s", err.Category())
		}
		if err.Severity() != SeverityWarning {
			t.Errorf("expected warning severity, got %s", err.Severity())
		}
		if !errors.Is(err, originalErr) {
			t.Error("expected wrapped error to match original")
		}
		if err.Cause() != originalErr {
			t.Error("expected cause to be preserved")
		}
	})

	t.Run("WithContext returns a copy", func(t *testing.T) {
		base := TemplateError("parse failed").Build()
		extended := base.WithContext("template", "article.html")
		if _, ok := base.Context().Get("template"); ok {
			t.Error("expected original context to be unchanged")
		}
		if v, ok := extended.Context().GetString("template"); !ok || v != "article.html" {
			t.Errorf("expected template context, got %q", v)
		}
	})
}

func TestJoinedErrors(t *testing.T) {
	first := MalformedContentError("missing date header").WithContext("file", "a.md").Build()
	second := DuplicateKeyError("duplicate post key").WithContext("key", "20140101140100.x").Build()
	joined := fmt.Errorf("build: %w", errors.Join(first, second))

	all := AllClassified(joined)
	if len(all) != 2 {
		t.Fatalf("expected 2 classified errors, got %d", len(all))
	}
	if !HasCategory(joined, CategoryDuplicate) {
		t.Error("expected duplicate category to be found in joined chain")
	}
	if c, ok := AsClassified(joined); !ok || c != first {
		t.Error("expected AsClassified to return the first error")
	}
}

func TestCLIExitCodes(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, nil)
	cases := []struct {
		err  error
		code int
	}{
		{nil, 0},
		{errors.New("plain"), 1},
		{ConfigError("x").Build(), 7},
		{MalformedContentError("x").Build(), 3},
		{DuplicateKeyError("x").Build(), 3},
		{TemplateError("x").Build(), 11},
		{FileSystemError("x").Build(), 11},
		{BuildError("x").Build(), 11},
		{InternalError("x").Build(), 10},
	}
	for _, tc := range cases {
		if got := adapter.ExitCodeFor(tc.err); got != tc.code {
			t.Errorf("ExitCodeFor(%v) = %d, want %d", tc.err, got, tc.code)
		}
	}

	msg := adapter.FormatError(errors.Join(
		MalformedContentError("bad date").WithContext("file", "a.md").Build(),
		MalformedContentError("missing slug").WithContext("file", "b.md").Build(),
	))
	if !strings.Contains(msg, "a.md") || !strings.Contains(msg, "b.md") {
		t.Errorf("expected both files in message, got %q", msg)
	}
}
