package rewrite

import (
	"strings"
	"testing"
)

func TestRewriteVideos_ReplacesLazyEmbed(t *testing.T) {
	input := `<div class="js-lazyYT" data-youtube-id="abc123" data-width="640" data-height="480">Loading...</div>`
	want := `[![YouTube Video Thumbnail](https://img.youtube.com/vi/abc123/0.jpg)](https://www.youtube.com/watch?v=abc123)`

	got := rewriteVideos(input)
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestRewriteVideos_MultipleEmbeds(t *testing.T) {
	input := `<div class="js-lazyYT" data-youtube-id="first">Loading...</div>` +
		"\n\nSome text.\n\n" +
		`<div class="js-lazyYT" data-youtube-id="second">Loading...</div>`

	got := rewriteVideos(input)
	if !strings.Contains(got, "https://www.youtube.com/watch?v=first") ||
		!strings.Contains(got, "https://img.youtube.com/vi/second/0.jpg") {
		t.Errorf("expected both embeds rewritten, got %q", got)
	}
	if strings.Contains(got, "js-lazyYT") {
		t.Errorf("expected no embed divs to remain, got %q", got)
	}
}

func TestRewriteVideos_LeavesOtherDivs(t *testing.T) {
	input := `<div class="spinner">Loading...</div>`
	if got := rewriteVideos(input); got != input {
		t.Errorf("expected unrelated div untouched, got %q", got)
	}
}
