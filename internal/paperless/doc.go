// Package paperless provides a Paperless-ngx REST client and markdown
// renderers for documents, tags and correspondents.
//
// Requests authenticate with the Token scheme and pin the API version
// through the Accept header (application/json; version=N). Document content
// rendering is capped at a configured byte limit with an explicit
// truncation marker.
package paperless
