// internal/extract/category.go
package extract

import (
	"context"
	"strings"

	"github.com/valpere/ProductHarvester/internal/browser"
	"github.com/valpere/ProductHarvester/internal/utils"
)

// ExtractCategory reads the breadcrumb trail and maps it into the category
// hierarchy: link index 1 is the top category, index 2 the sub category,
// indices 3+ the leaf labels. Index 0 is the site home link.
func ExtractCategory(ctx context.Context, session browser.Session, loc Locators, log utils.Logger) (Category, Outcome) {
	crumbs, err := session.TextAll(ctx, loc.BreadcrumbLinks)
	if err != nil {
		log.Errorf("failed to read breadcrumbs: %v", err)
		return Category{}, Errored("breadcrumbs not readable")
	}
	if len(crumbs) <= 1 {
		return Category{}, Absent("no breadcrumb trail")
	}
	return ReduceBreadcrumbs(crumbs), Found()
}

// ReduceBreadcrumbs maps raw breadcrumb cells to the category hierarchy.
// A cell still containing a ">" separator is a compound label: top and sub
// levels are reduced to the text after the final ">", while compound leaf
// cells are dropped entirely as ambiguous.
func ReduceBreadcrumbs(crumbs []string) Category {
	var cat Category

	if len(crumbs) > 1 {
		cat.Top = reduceCompound(crumbs[1])
	}
	if len(crumbs) > 2 {
		cat.Sub = reduceCompound(crumbs[2])
	}
	for _, crumb := range crumbs[min(3, len(crumbs)):] {
		leaf := strings.TrimSpace(crumb)
		if leaf == "" || strings.Contains(leaf, ">") {
			continue
		}
		cat.Leaves = append(cat.Leaves, leaf)
	}

	return cat
}

// reduceCompound keeps only the text after the final ">" separator.
func reduceCompound(cell string) string {
	cell = strings.TrimSpace(cell)
	if idx := strings.LastIndex(cell, ">"); idx >= 0 {
		cell = cell[idx+1:]
	}
	return strings.TrimSpace(cell)
}
