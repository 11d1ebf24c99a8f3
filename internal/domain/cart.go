package domain

import (
	"sort"
	"strconv"

	"github.com/shopspring/decimal"
)

// Cart maps string-encoded product ids to quantities. It lives in the
// visitor's session and carries no pricing data; prices are resolved
// against the live catalog on every read.
type Cart map[string]int

// Add increments the quantity for a product. Non-positive quantities
// count as one.
func (c Cart) Add(productID int64, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	c[strconv.FormatInt(productID, 10)] += quantity
}

// Remove deletes a product line and reports whether it was present.
func (c Cart) Remove(productID int64) bool {
	key := strconv.FormatInt(productID, 10)
	if _, ok := c[key]; !ok {
		return false
	}
	delete(c, key)
	return true
}

// Quantity returns the stored quantity for a product, zero if absent.
func (c Cart) Quantity(productID int64) int {
	return c[strconv.FormatInt(productID, 10)]
}

// Count sums all quantities, including lines whose products may no
// longer be active.
func (c Cart) Count() int {
	var n int
	for _, q := range c {
		n += q
	}
	return n
}

// IDs returns the product ids present in the cart in ascending order.
// Entries that do not parse as integers are skipped.
func (c Cart) IDs() []int64 {
	ids := make([]int64, 0, len(c))
	for key := range c {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// CartItem is one priced cart line.
type CartItem struct {
	Product   Product         `json:"product"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}
