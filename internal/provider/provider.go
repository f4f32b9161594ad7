// Package provider holds plumbing shared by the storefront adapters: the
// upstream error sentinel and the API rate limiter.
package provider

import "errors"

// ErrUpstreamUnavailable marks storefront network or parse failures. During
// scheduled scans the affected entry is skipped; synchronous requests surface
// it to the caller with a generic message.
var ErrUpstreamUnavailable = errors.New("storefront unavailable")
