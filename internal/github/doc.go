// Package github provides a GitHub REST v3 client covering the contents,
// repos, gists and actions surfaces, plus markdown renderers for the
// fetched data.
//
// Requests carry the Accept: application/vnd.github+json and
// X-GitHub-Api-Version headers; a configured token is injected as a Bearer
// credential through the oauth2 transport. Failures are classified by HTTP
// status into a single APIError type with a human-readable message.
package github
