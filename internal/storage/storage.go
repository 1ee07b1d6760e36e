// Package storage uploads applicant documents and resolves their public URLs.
package storage

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultBucket is the bucket applicant documents are written to.
const DefaultBucket = "applicant-documents"

// MockBaseURL is used when no storage provider is configured.
const MockBaseURL = "https://mock-storage.com"

// PublicURL joins a base URL and an object path, escaping each path segment.
func PublicURL(baseURL, objectPath string) string {
	base := strings.TrimRight(baseURL, "/")
	segments := strings.Split(strings.TrimLeft(objectPath, "/"), "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return fmt.Sprintf("%s/%s", base, strings.Join(segments, "/"))
}
