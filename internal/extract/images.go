// internal/extract/images.go
package extract

import (
	"context"
	"fmt"

	"github.com/valpere/ProductHarvester/internal/browser"
	"github.com/valpere/ProductHarvester/internal/utils"
)

// ImageFetcher downloads one product image and returns the local filename.
// Implemented by the images package; the indirection keeps the extractors
// testable without network access.
type ImageFetcher interface {
	Fetch(ctx context.Context, imageURL, mpn string, slot int) (string, error)
}

// ExtractImages resolves and downloads the four fixed image slots. A slot
// whose element or source attribute is missing, or whose download fails,
// yields "" for that slot and never aborts the remaining slots.
func ExtractImages(ctx context.Context, session browser.Session, loc Locators, fetcher ImageFetcher, mpn string, log utils.Logger) ([ImageSlots]string, Outcome) {
	var names [ImageSlots]string
	resolved := 0

	for slot := 0; slot < ImageSlots; slot++ {
		name, err := extractImageSlot(ctx, session, loc, fetcher, mpn, slot)
		if err != nil {
			log.Warnf("failed to get image at slot %d: %v", slot+1, err)
			continue
		}
		names[slot] = name
		resolved++
	}

	if resolved == 0 {
		return names, Absent("no image slots resolved")
	}
	return names, Found()
}

func extractImageSlot(ctx context.Context, session browser.Session, loc Locators, fetcher ImageFetcher, mpn string, slot int) (string, error) {
	selector := loc.ImageSlotSelector(slot)

	src, ok, err := session.Attribute(ctx, selector, "src")
	if err != nil {
		return "", err
	}
	if !ok || src == "" {
		return "", fmt.Errorf("image slot %d has no source attribute", slot+1)
	}

	name, err := fetcher.Fetch(ctx, src, mpn, slot)
	if err != nil {
		return "", fmt.Errorf("download failed: %w", err)
	}
	return name, nil
}
