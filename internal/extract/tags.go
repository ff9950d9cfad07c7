// internal/extract/tags.go
package extract

import (
	"context"
	"strings"

	"github.com/valpere/ProductHarvester/internal/browser"
	"github.com/valpere/ProductHarvester/internal/utils"
)

// ExtractTags collects the text of each tag badge. A page with no badges
// yields the ["N/A"] sentinel, never an empty sequence.
func ExtractTags(ctx context.Context, session browser.Session, loc Locators, log utils.Logger) ([]string, Outcome) {
	texts, err := session.TextAll(ctx, loc.Tags)
	if err != nil {
		log.Errorf("failed to read tags: %v", err)
		return []string{SentinelTagsError}, Errored("tags not readable")
	}

	var tags []string
	for _, text := range texts {
		if tag := strings.TrimSpace(text); tag != "" {
			tags = append(tags, tag)
		}
	}

	if len(tags) == 0 {
		return []string{SentinelNA}, Absent("no tags on page")
	}
	return tags, Found()
}
