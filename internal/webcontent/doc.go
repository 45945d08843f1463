// Package webcontent fetches web pages and extracts their main content as
// markdown.
//
// Extraction runs an ordered fallback chain: trafilatura, then readability,
// then a goquery DOM heuristic. Each strategy produces both content and its
// own metadata (title, author, date); the first strategy yielding non-empty
// content wins and metadata is never mixed across strategies. A preferred
// method can pin a single strategy.
package webcontent
