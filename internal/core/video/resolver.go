// Copyright (c) 2026 Shortwave. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package video resolves a canonical video identifier from the many shapes a
// shared YouTube link can take, and derives thumbnail and embed URLs from it.
//
// Resolution never fails loudly: anything unparseable or unrecognised yields
// the empty identifier, and callers fall back to a neutral display.
package video

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	// shortLinkMarker identifies share links of the form https://youtu.be/<id>.
	shortLinkMarker = "youtu.be"

	// embedSegment is the path segment preceding the id in embed links.
	embedSegment = "embed"

	thumbnailFormat = "https://i.ytimg.com/vi/%s/hqdefault.jpg"
	embedFormat     = "https://www.youtube.com/embed/%s?autoplay=1&rel=0&modestbranding=1"
)

// ExtractID returns the video identifier carried by raw, or "".
//
// # Resolution Order
//
//  1. Short-link host: the first path segment.
//  2. A non-empty "v" query parameter.
//  3. The segment immediately after a literal "embed" segment.
//  4. Otherwise "".
func ExtractID(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return ""
	}

	if strings.Contains(strings.ToLower(u.Hostname()), shortLinkMarker) {
		return firstSegment(u.Path)
	}

	if id := u.Query().Get("v"); id != "" {
		return id
	}

	segments := strings.Split(u.Path, "/")
	for i, segment := range segments {
		if segment == embedSegment && i+1 < len(segments) && segments[i+1] != "" {
			return segments[i+1]
		}
	}

	return ""
}

// ThumbnailURL returns the high-quality still for raw, or "" when no id resolves.
func ThumbnailURL(raw string) string {
	id := ExtractID(raw)
	if id == "" {
		return ""
	}
	return fmt.Sprintf(thumbnailFormat, url.PathEscape(id))
}

// EmbedURL returns an autoplaying player URL for raw, or "" when no id resolves.
func EmbedURL(raw string) string {
	id := ExtractID(raw)
	if id == "" {
		return ""
	}
	return fmt.Sprintf(embedFormat, url.PathEscape(id))
}

func firstSegment(path string) string {
	path = strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(path, '/'); i >= 0 {
		return path[:i]
	}
	return path
}
