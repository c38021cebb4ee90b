package rewrite

import (
	"regexp"
	"strings"
)

var (
	retinaImgRe  = regexp.MustCompile(`<img\s+([^>]*?)data-src-retina="([^"]+)"([^>]*?)>`)
	dataSrcImgRe = regexp.MustCompile(`<img\s+([^>]*?)data-src="([^"]+)"([^>]*?)>`)

	classAttrRe  = regexp.MustCompile(`class="([^"]*)"`)
	widthAttrRe  = regexp.MustCompile(`width="(\d+)"`)
	heightAttrRe = regexp.MustCompile(`height="(\d+)"`)
	altAttrRe    = regexp.MustCompile(`alt="([^"]*)"`)

	imgHeightRe = regexp.MustCompile(`(<img[^>]*)\s+height="[^"]*"([^>]*>)`)
)

// rewriteRetinaImages rebuilds every image tag carrying a retina source so
// that source becomes the plain src.
func rewriteRetinaImages(content string) string {
	return retinaImgRe.ReplaceAllStringFunc(content, func(tag string) string {
		m := retinaImgRe.FindStringSubmatch(tag)
		return rebuildImgTag(m[1]+m[3], m[2])
	})
}

// rewriteDataSrcImages does the same for tags carrying a generic data-src.
// A tag that also has a retina source belongs to rewriteRetinaImages and is
// left alone; the two passes never both fire on one tag.
func rewriteDataSrcImages(content string) string {
	return dataSrcImgRe.ReplaceAllStringFunc(content, func(tag string) string {
		if strings.Contains(tag, "data-src-retina") {
			return tag
		}
		m := dataSrcImgRe.FindStringSubmatch(tag)
		return rebuildImgTag(m[1]+m[3], m[2])
	})
}

// rebuildImgTag assembles a minimal tag: class (if present), the promoted
// source, width and height (if present), and alt (empty when the original
// had none). Every other attribute is dropped.
func rebuildImgTag(attrs, src string) string {
	parts := make([]string, 0, 5)
	if m := classAttrRe.FindStringSubmatch(attrs); m != nil {
		parts = append(parts, `class="`+m[1]+`"`)
	}
	parts = append(parts, `src="`+src+`"`)
	if m := widthAttrRe.FindStringSubmatch(attrs); m != nil {
		parts = append(parts, `width="`+m[1]+`"`)
	}
	if m := heightAttrRe.FindStringSubmatch(attrs); m != nil {
		parts = append(parts, `height="`+m[1]+`"`)
	}
	if m := altAttrRe.FindStringSubmatch(attrs); m != nil {
		parts = append(parts, `alt="`+m[1]+`"`)
	} else {
		parts = append(parts, `alt=""`)
	}
	return "<img " + strings.Join(parts, " ") + "/>"
}

// stripImageHeights removes the height attribute from every image tag,
// leaving width as the only size hint.
func stripImageHeights(content string) string {
	return imgHeightRe.ReplaceAllString(content, "${1}${2}")
}
