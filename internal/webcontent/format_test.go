package webcontent

import (
	"strings"
	"testing"
)

func TestFormatPageContentOnly(t *testing.T) {
	result := &Result{
		Content:  "Just the body.",
		Metadata: Metadata{Title: "Hidden Title"},
		Strategy: MethodBasic,
	}

	got := FormatPage(result, "https://example.com", false)
	if got != "Just the body." {
		t.Errorf("FormatPage() = %q", got)
	}
}

func TestFormatPageWithMetadata(t *testing.T) {
	result := &Result{
		Content: "Body text.",
		Metadata: Metadata{
			Title:  "An Article",
			Author: "Jane Roe",
			Date:   "2026-03-14",
		},
		Strategy: MethodTrafilatura,
	}

	got := FormatPage(result, "https://example.com/post", true)

	for _, want := range []string{
		"# An Article",
		"**Source:** https://example.com/post",
		"**Author:** Jane Roe",
		"**Date:** 2026-03-14",
		"---",
		"Body text.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("FormatPage() missing %q:\n%s", want, got)
		}
	}
}

func TestFormatPageOmitsEmptyMetadata(t *testing.T) {
	result := &Result{
		Content:  "Body text.",
		Strategy: MethodReadability,
	}

	got := FormatPage(result, "https://example.com", true)

	if strings.Contains(got, "**Author:**") {
		t.Errorf("unexpected author line:\n%s", got)
	}
	if strings.Contains(got, "**Date:**") {
		t.Errorf("unexpected date line:\n%s", got)
	}
	if strings.Contains(got, "# ") {
		t.Errorf("unexpected title heading:\n%s", got)
	}
	if !strings.Contains(got, "**Source:** https://example.com") {
		t.Errorf("missing source line:\n%s", got)
	}
}
