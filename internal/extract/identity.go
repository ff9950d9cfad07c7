// internal/extract/identity.go
package extract

import (
	"context"
	"strings"

	"github.com/valpere/ProductHarvester/internal/browser"
	"github.com/valpere/ProductHarvester/internal/utils"
)

// Label affixes stripped from the raw identity/pricing text. The stored
// prices keep their rendered currency formatting untouched.
const (
	mpnLabelPrefix     = "MPN:"
	priceSuffixIncVAT  = " INC VAT"
	listPriceSaveInfix = " SAVE"
	listPriceWasPrefix = "was"
)

// ExtractIdentity reads name, manufacturer part number, and the two price
// fields. Name, MPN, and current price are core fields: failure to read any
// of them errors the whole group and the attempt fails upstream. List price
// is optional; many products have no discount.
func ExtractIdentity(ctx context.Context, session browser.Session, loc Locators, log utils.Logger) (Identity, Outcome) {
	var id Identity

	name, err := session.Text(ctx, loc.Name)
	if err != nil {
		log.Errorf("failed to read product name: %v", err)
		return id, Errored("product name not readable")
	}
	id.Name = strings.TrimSpace(name)

	mpn, err := session.Text(ctx, loc.MPN)
	if err != nil {
		log.Errorf("failed to read product MPN: %v", err)
		return id, Errored("product MPN not readable")
	}
	id.MPN = NormalizeMPN(mpn)

	price, err := session.Text(ctx, loc.CurrentPrice)
	if err != nil {
		log.Errorf("failed to read current price: %v", err)
		return id, Errored("current price not readable")
	}
	id.CurrentPrice = NormalizePrice(price)

	listPrice, err := session.Text(ctx, loc.ListPrice)
	if err != nil {
		log.Debugf("no list price: %v", err)
		return id, Found()
	}
	id.ListPrice = NormalizeListPrice(listPrice)

	return id, Found()
}

// NormalizeMPN strips the "MPN:" label prefix.
func NormalizeMPN(raw string) string {
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), mpnLabelPrefix))
}

// NormalizePrice strips the " INC VAT" suffix, keeping the rendered
// currency text intact.
func NormalizePrice(raw string) string {
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(raw), priceSuffixIncVAT))
}

// NormalizeListPrice strips the optional " SAVE ..." suffix and the
// optional "was" prefix: "was £999.00 SAVE £100" becomes "£999.00".
func NormalizeListPrice(raw string) string {
	price := strings.TrimSpace(raw)
	if idx := strings.Index(price, listPriceSaveInfix); idx >= 0 {
		price = price[:idx]
	}
	price = strings.TrimPrefix(price, listPriceWasPrefix)
	return strings.TrimSpace(price)
}
