package batch

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Result represents the result of a single operation in a batch
type Result struct {
	ID     string `json:"id"`
	Status string `json:"status"` // "success" or "error"
	Result string `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// ParseStringOrArray parses a parameter that can be either a single string or
// an array of strings. A string that looks like a JSON array is decoded; if
// decoding fails it is treated as a single literal value.
func ParseStringOrArray(param interface{}, paramName string) ([]string, error) {
	if param == nil {
		return nil, fmt.Errorf("%s is required", paramName)
	}

	var result []string

	switch v := param.(type) {
	case string:
		if v == "" {
			return nil, fmt.Errorf("%s cannot be empty", paramName)
		}
		if strings.HasPrefix(strings.TrimSpace(v), "[") {
			var decoded []string
			if err := json.Unmarshal([]byte(v), &decoded); err == nil {
				if len(decoded) == 0 {
					return nil, fmt.Errorf("%s cannot be empty", paramName)
				}
				for i, item := range decoded {
					if item == "" {
						return nil, fmt.Errorf("%s[%d] cannot be empty", paramName, i)
					}
				}
				return decoded, nil
			}
		}
		result = []string{v}
	case []interface{}:
		if len(v) == 0 {
			return nil, fmt.Errorf("%s cannot be empty", paramName)
		}
		for i, item := range v {
			str, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%s[%d] must be a string", paramName, i)
			}
			if str == "" {
				return nil, fmt.Errorf("%s[%d] cannot be empty", paramName, i)
			}
			result = append(result, str)
		}
	default:
		return nil, fmt.Errorf("%s must be a string or array of strings", paramName)
	}

	return result, nil
}

// FormatResults renders batch results as a markdown report with one section
// per item, separated by horizontal rules.
func FormatResults(results []Result) string {
	var successful, failed int
	for _, r := range results {
		if r.Status == "success" {
			successful++
		} else {
			failed++
		}
	}

	var sb strings.Builder
	sb.WriteString("# Batch Results\n\n")
	sb.WriteString(fmt.Sprintf("**Total:** %d | **Successful:** %d | **Failed:** %d\n",
		len(results), successful, failed))

	for _, r := range results {
		sb.WriteString("\n---\n\n")
		sb.WriteString(fmt.Sprintf("## %s\n\n", r.ID))
		if r.Status == "success" {
			sb.WriteString(r.Result)
			sb.WriteString("\n")
		} else {
			sb.WriteString(fmt.Sprintf("**Error:** %s\n", r.Error))
		}
	}

	return sb.String()
}

// ProcessBatch executes a function on each item sequentially and collects
// results, continuing past individual failures.
func ProcessBatch(ids []string, fn func(id string) (string, error)) []Result {
	results := make([]Result, 0, len(ids))

	for _, id := range ids {
		result := Result{ID: id}
		res, err := fn(id)
		if err != nil {
			result.Status = "error"
			result.Error = err.Error()
		} else {
			result.Status = "success"
			result.Result = res
		}
		results = append(results, result)
	}

	return results
}

// NewSuccessResult creates a success result
func NewSuccessResult(id, message string) Result {
	return Result{
		ID:     id,
		Status: "success",
		Result: message,
	}
}

// NewErrorResult creates an error result
func NewErrorResult(id string, err error) Result {
	return Result{
		ID:     id,
		Status: "error",
		Error:  err.Error(),
	}
}
