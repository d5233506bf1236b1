package web

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/npodsekin/gocatalog/internal/catalog"
	"github.com/shopspring/decimal"
)

// productForm is the ephemeral form draft of the add and edit views: the raw
// submitted field values, uncommitted until validation passes. Price stays
// text here; it is coerced to a decimal exactly once, at submission time.
type productForm struct {
	Name     string `validate:"required"`
	Price    string `validate:"required"`
	Category string `validate:"required,oneof=Shoes Clothes Electronics"`
}

// formFromRequest captures the form draft from the submitted request.
// The name is trimmed on capture so the required check means "non-blank".
func formFromRequest(r *http.Request) productForm {
	return productForm{
		Name:     strings.TrimSpace(r.PostFormValue("name")),
		Price:    strings.TrimSpace(r.PostFormValue("price")),
		Category: r.PostFormValue("category"),
	}
}

// formFromProduct populates a form draft from a stored product, verbatim:
// stored data is trusted and not re-validated on load.
func formFromProduct(p *catalog.Product) productForm {
	return productForm{
		Name:     p.Name,
		Price:    p.Price.String(),
		Category: string(p.Category),
	}
}

// checkRequired reports whether every field of the draft is present and the
// category belongs to the closed set. First validation stage; never touches
// the network.
func checkRequired(validate *validator.Validate, f productForm) bool {
	return validate.Struct(f) == nil
}

// parsePrice coerces the submitted price text to a decimal and reports
// whether it is a number strictly greater than zero. Second validation stage.
func parsePrice(f productForm) (decimal.Decimal, bool) {
	price, err := decimal.NewFromString(f.Price)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return price, price.IsPositive()
}

// draft converts a fully validated form into the service-level draft.
func (f productForm) draft(price decimal.Decimal) catalog.ProductDraft {
	return catalog.ProductDraft{
		Name:     f.Name,
		Price:    price,
		Category: catalog.Category(f.Category),
	}
}
