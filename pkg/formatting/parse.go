package formatting

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrParseFailed is returned when content holds no usable JSON, neither
// directly nor inside a markdown code fence.
var ErrParseFailed = errors.New("failed to parse response")

var fencedBlock = regexp.MustCompile(`(?s)` + "```" + `(?:json)?\s*\n?(.*?)\n?` + "```")

const errExcerptLen = 240

// Parse unmarshals content as JSON into T. Models often wrap their output
// in a markdown fence or surround it with prose, so when direct
// unmarshaling fails the first fenced block is extracted and retried.
func Parse[T any](content string) (T, error) {
	var result T
	content = strings.TrimSpace(content)

	if err := json.Unmarshal([]byte(content), &result); err == nil {
		return result, nil
	}

	if m := fencedBlock.FindStringSubmatch(content); len(m) >= 2 {
		if err := json.Unmarshal([]byte(strings.TrimSpace(m[1])), &result); err == nil {
			return result, nil
		}
	}

	return result, fmt.Errorf("%w: %s", ErrParseFailed, excerpt(content))
}

func excerpt(content string) string {
	if len(content) <= errExcerptLen {
		return content
	}
	return content[:errExcerptLen] + "..."
}
