package assemble

import (
	"errors"
	"io"
	"log/slog"
	"reflect"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/tumult/hype-documentation/internal/assets"
	"github.com/tumult/hype-documentation/internal/fragment"
	"github.com/tumult/hype-documentation/internal/rewrite"
)

const (
	testTitle     = "# Tumult Hype Documentation"
	testDocBase   = "https://tumult.com/hype/documentation/v4/documents/"
	testAssetBase = "https://raw.githubusercontent.com/tumult/hype-documentation/refs/heads/main/images/"
)

func discardLog() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newAssembler(src Source, overrides map[string]string) *Assembler {
	return New(src, rewrite.New(testDocBase, testAssetBase), testTitle, overrides, discardLog())
}

func TestBuild_TitleAndSeparators(t *testing.T) {
	fsys := fstest.MapFS{
		"01one.md":   {Data: []byte("# One")},
		"02two.md":   {Data: []byte("# Two")},
		"03three.md": {Data: []byte("# Three")},
	}

	res, err := newAssembler(fragment.FromFS(fsys, "README.md"), nil).Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := testTitle + "\n\n# One\n\n---\n\n# Two\n\n---\n\n# Three"
	if res.Markdown != want {
		t.Errorf("expected %q, got %q", want, res.Markdown)
	}
	if !reflect.DeepEqual(res.Fragments, []string{"01one.md", "02two.md", "03three.md"}) {
		t.Errorf("unexpected fragment order: %v", res.Fragments)
	}
}

func TestBuild_EndToEnd(t *testing.T) {
	fsys := fstest.MapFS{
		"a.md": {Data: []byte("# A\n![x](images/a.png)")},
		"b.md": {Data: []byte("# B\n<div class=\"js-lazyYT\" data-youtube-id=\"abc123\">Loading...</div>")},
	}

	res, err := newAssembler(fragment.FromFS(fsys, "README.md"), nil).Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := testTitle + "\n\n" +
		"# A\n![x](" + testAssetBase + "a.png)" +
		"\n\n---\n\n" +
		"# B\n[![YouTube Video Thumbnail](https://img.youtube.com/vi/abc123/0.jpg)](https://www.youtube.com/watch?v=abc123)"
	if res.Markdown != want {
		t.Errorf("expected %q, got %q", want, res.Markdown)
	}

	// The cleanup step recovers exactly the files the rewrite referenced.
	refs := assets.ExtractReferences(res.Markdown, testAssetBase)
	if len(refs) != 1 || !refs["a.png"] {
		t.Errorf("expected references {a.png}, got %v", refs)
	}
}

type flakySource struct {
	names []string
	files map[string]string
	fail  map[string]error
}

func (s *flakySource) List() ([]string, error) { return s.names, nil }

func (s *flakySource) Read(name string) (string, error) {
	if err, ok := s.fail[name]; ok {
		return "", err
	}
	return s.files[name], nil
}

func TestBuild_ReadErrorBecomesMarker(t *testing.T) {
	src := &flakySource{
		names: []string{"bad.md", "good.md"},
		files: map[string]string{"good.md": "# Good"},
		fail:  map[string]error{"bad.md": errors.New("boom")},
	}

	res, err := newAssembler(src, nil).Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := testTitle + "\n\n*Error reading file bad.md: boom*\n\n---\n\n# Good"
	if res.Markdown != want {
		t.Errorf("expected %q, got %q", want, res.Markdown)
	}
	if res.Failed != 1 {
		t.Errorf("expected 1 failed fragment, got %d", res.Failed)
	}
}

func TestBuild_OverrideReplacesContentAndIsRewritten(t *testing.T) {
	fsys := fstest.MapFS{
		"15versionhistory.md": {Data: []byte("enormous changelog")},
	}
	overrides := map[string]string{
		"15versionhistory.md": "# Version History\n\nSee [the archive](documents/history.html).",
	}

	res, err := newAssembler(fragment.FromFS(fsys, "README.md"), overrides).Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if strings.Contains(res.Markdown, "enormous changelog") {
		t.Error("expected stored content to be replaced")
	}
	if !strings.Contains(res.Markdown, "[the archive]("+testDocBase+"history.html)") {
		t.Errorf("expected override rewritten, got %q", res.Markdown)
	}
}

func TestBuild_EmptySource(t *testing.T) {
	res, err := newAssembler(fragment.FromFS(fstest.MapFS{}, "README.md"), nil).Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Markdown != "" || len(res.Fragments) != 0 {
		t.Errorf("expected an empty result, got %+v", res)
	}
}

func TestBuild_SingleFragmentHasNoSeparator(t *testing.T) {
	fsys := fstest.MapFS{"only.md": {Data: []byte("# Only")}}

	res, err := newAssembler(fragment.FromFS(fsys, "README.md"), nil).Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(res.Markdown, "---") {
		t.Errorf("expected no separator, got %q", res.Markdown)
	}
}
