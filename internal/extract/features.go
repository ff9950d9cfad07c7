// internal/extract/features.go
package extract

import (
	"context"
	"strings"
	"time"

	"github.com/valpere/ProductHarvester/internal/browser"
	"github.com/valpere/ProductHarvester/internal/utils"
)

// featuresWaitTimeout bounds the wait for the key-features container, which
// renders late on pages with many reviews.
const featuresWaitTimeout = 30 * time.Second

// ExtractKeyFeatures waits for the key-features container and collects the
// trimmed text of each list item. An empty list yields ["N/A"].
func ExtractKeyFeatures(ctx context.Context, session browser.Session, loc Locators, log utils.Logger) ([]string, Outcome) {
	if err := session.WaitVisible(ctx, loc.FeaturesContainer, featuresWaitTimeout); err != nil {
		log.Debugf("key features container not visible: %v", err)
		return []string{SentinelNA}, Absent("key features container not visible")
	}

	items, err := session.TextAll(ctx, loc.FeatureItems)
	if err != nil {
		log.Errorf("failed to read key features: %v", err)
		return []string{SentinelFeaturesError}, Errored("key features not readable")
	}

	var features []string
	for _, item := range items {
		if text := strings.TrimSpace(item); text != "" {
			features = append(features, text)
		}
	}

	if len(features) == 0 {
		return []string{SentinelNA}, Absent("no key features listed")
	}
	return features, Found()
}
