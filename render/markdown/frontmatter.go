package markdown

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrInvalidFrontmatter indicates malformed YAML frontmatter.
var ErrInvalidFrontmatter = errors.New("invalid frontmatter")

// parsedTemplate is a template split into frontmatter metadata and body.
type parsedTemplate struct {
	Metadata map[string]any
	Body     string
}

// parseFrontmatter splits template content into YAML frontmatter
// metadata and the markdown body.
func parseFrontmatter(content []byte) (*parsedTemplate, error) {
	delimiter := []byte("---")

	if !bytes.HasPrefix(content, delimiter) {
		// No frontmatter, full content is the body.
		return &parsedTemplate{
			Metadata: make(map[string]any),
			Body:     string(content),
		}, nil
	}

	afterFirst := bytes.TrimPrefix(content, delimiter)
	afterFirst = bytes.TrimLeft(afterFirst, "\n\r")

	if len(afterFirst) == 0 {
		return nil, fmt.Errorf("%w: no content after opening delimiter", ErrInvalidFrontmatter)
	}

	endIdx := bytes.Index(afterFirst, delimiter)
	if endIdx == -1 {
		return nil, fmt.Errorf("%w: closing delimiter not found", ErrInvalidFrontmatter)
	}

	frontmatterBytes := afterFirst[:endIdx]
	bodyStart := endIdx + len(delimiter)
	// Skip one newline after the closing delimiter (handles \r\n and \n)
	if bodyStart < len(afterFirst) {
		if afterFirst[bodyStart] == '\r' && bodyStart+1 < len(afterFirst) && afterFirst[bodyStart+1] == '\n' {
			bodyStart += 2
		} else if afterFirst[bodyStart] == '\n' {
			bodyStart++
		}
	}
	body := afterFirst[bodyStart:]

	var metadata map[string]any
	if len(bytes.TrimSpace(frontmatterBytes)) > 0 {
		if err := yaml.Unmarshal(frontmatterBytes, &metadata); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFrontmatter, err)
		}
	} else {
		metadata = make(map[string]any)
	}

	return &parsedTemplate{
		Metadata: metadata,
		Body:     string(body),
	}, nil
}
