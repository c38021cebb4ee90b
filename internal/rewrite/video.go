package rewrite

import "regexp"

// Lazy-loaded YouTube embeds render nothing useful outside the original
// site; the video id in the data attribute is all we need.
var lazyYouTubeRe = regexp.MustCompile(`<div class="js-lazyYT" data-youtube-id="([^"]+)"[^>]*>Loading\.\.\.</div>`)

// rewriteVideos replaces each embed with the video's thumbnail image
// linking to its watch page.
func rewriteVideos(content string) string {
	return lazyYouTubeRe.ReplaceAllString(content,
		"[![YouTube Video Thumbnail](https://img.youtube.com/vi/${1}/0.jpg)](https://www.youtube.com/watch?v=${1})")
}
