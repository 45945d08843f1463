package paperless

import (
	"encoding/json"
	"strconv"
)

// NameOrID absorbs the two shapes Paperless uses for related objects:
// a bare numeric ID, or an expanded object with id and name.
type NameOrID struct {
	ID   int64
	Name string
}

// UnmarshalJSON accepts a number, an object, or null.
func (n *NameOrID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = NameOrID{}
		return nil
	}

	var id int64
	if err := json.Unmarshal(data, &id); err == nil {
		n.ID = id
		n.Name = ""
		return nil
	}

	var obj struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	n.ID = obj.ID
	n.Name = obj.Name
	return nil
}

// String renders the name when known, otherwise the numeric ID.
func (n NameOrID) String() string {
	if n.Name != "" {
		return n.Name
	}
	if n.ID != 0 {
		return "#" + strconv.FormatInt(n.ID, 10)
	}
	return ""
}

// IsZero reports whether neither ID nor name is set.
func (n NameOrID) IsZero() bool {
	return n.ID == 0 && n.Name == ""
}

// SearchHit carries full-text search relevance data for a document.
type SearchHit struct {
	Score      float64 `json:"score"`
	Rank       int64   `json:"rank"`
	Highlights string  `json:"highlights"`
}

// Note is one note attached to a document.
type Note struct {
	ID   int64  `json:"id"`
	Note string `json:"note"`
}

// Document is one Paperless document.
type Document struct {
	ID                  int64      `json:"id"`
	Title               string     `json:"title"`
	Content             string     `json:"content"`
	Created             string     `json:"created_date"`
	Added               string     `json:"added"`
	Correspondent       NameOrID   `json:"correspondent"`
	DocumentType        NameOrID   `json:"document_type"`
	Tags                []NameOrID `json:"tags"`
	ArchiveSerialNumber *int64     `json:"archive_serial_number"`
	OriginalFileName    string     `json:"original_file_name"`
	Notes               []Note     `json:"notes"`
	SearchHit           *SearchHit `json:"__search_hit__"`
}

// DocumentList is a paginated documents response.
type DocumentList struct {
	Count   int64      `json:"count"`
	Next    string     `json:"next"`
	Results []Document `json:"results"`
}

// Tag is one Paperless tag.
type Tag struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Color         string `json:"color"`
	DocumentCount int64  `json:"document_count"`
}

// tagList is a paginated tags response.
type tagList struct {
	Count   int64 `json:"count"`
	Results []Tag `json:"results"`
}

// Correspondent is one Paperless correspondent.
type Correspondent struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	DocumentCount int64  `json:"document_count"`
}

// correspondentList is a paginated correspondents response.
type correspondentList struct {
	Count   int64           `json:"count"`
	Results []Correspondent `json:"results"`
}
