package registry

import (
	"crypto/md5"
	"fmt"
	"strings"
)

const manifestFileName = "registry.json"

// RawContentURL rewrites a GitHub blob URL to its raw-content form.
// Anything else passes through unchanged.
func RawContentURL(url string) string {
	if strings.Contains(url, "github.com") && strings.Contains(url, "/blob/") {
		url = strings.Replace(url, "github.com", "raw.githubusercontent.com", 1)
		url = strings.Replace(url, "/blob/", "/", 1)
	}
	return url
}

// ManifestURL normalizes a registry source URL to a fetchable manifest
// URL: GitHub tree/blob URLs are rewritten to raw-content form, and
// the conventional manifest filename is appended when the URL looks
// like a bare repository path instead of a manifest file.
func ManifestURL(url string) string {
	if !strings.Contains(url, "github.com") {
		return url
	}

	clean := strings.Replace(url, "/tree/", "/", 1)
	clean = strings.Replace(clean, "/blob/", "/", 1)
	raw := strings.Replace(clean, "github.com", "raw.githubusercontent.com", 1)

	if strings.HasSuffix(raw, ".json") || strings.HasSuffix(raw, ".yaml") || strings.HasSuffix(raw, ".yml") {
		return raw
	}

	if strings.Count(raw, "/") == 4 {
		// Bare owner/repo path: assume the main branch.
		return raw + "/main/" + manifestFileName
	}
	return strings.TrimRight(raw, "/") + "/" + manifestFileName
}

// ResolveFileURL resolves a skill file reference against the registry
// URL. Absolute references pass through; relative references are
// joined against the registry base with the manifest filename
// stripped.
func ResolveFileURL(registryURL, ref string) string {
	if strings.HasPrefix(ref, "http") {
		return ref
	}
	base := strings.TrimSuffix(registryURL, manifestFileName)
	base = strings.TrimRight(base, "/")
	return base + "/" + strings.TrimLeft(ref, "/")
}

// CacheFileName derives a stable cache filename from a content hash of
// the registry URL.
func CacheFileName(url string) string {
	sum := md5.Sum([]byte(url))
	return fmt.Sprintf("%x", sum)[:16] + ".json"
}
