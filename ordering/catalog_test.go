package ordering

import (
	"testing"

	"restaurant_ordering/model"

	"github.com/shopspring/decimal"
)

func TestDefaultMenu(t *testing.T) {
	menu := DefaultMenu()
	if n := len(menu.Items()); n != 10 {
		t.Fatalf("items = %d", n)
	}
	tests := map[string]string{
		"Fried Chicken": "25",
		"Halo-Halo":     "15",
		"Beef Tapa":     "35",
	}
	for name, want := range tests {
		price, ok := menu.Price(name)
		if !ok || !price.Equal(decimal.RequireFromString(want)) {
			t.Errorf("Price(%q) = %s, %v", name, price, ok)
		}
	}
	if _, ok := menu.Price("fried chicken"); ok {
		t.Error("lookup should be exact")
	}
	item, ok := menu.BySlug("pancit-canton")
	if !ok || item.Name != "Pancit Canton" {
		t.Errorf("BySlug = %+v, %v", item, ok)
	}
}

func TestNewStaticCatalog_LaterDuplicateWins(t *testing.T) {
	c := NewStaticCatalog(
		model.MenuItem{Name: "Tea", UnitPrice: decimal.NewFromInt(3)},
		model.MenuItem{Name: "Cake", UnitPrice: decimal.RequireFromString("4.555")},
		model.MenuItem{Name: "Tea", UnitPrice: decimal.NewFromInt(5)},
	)
	items := c.Items()
	if len(items) != 2 || items[0].Name != "Tea" || !items[0].UnitPrice.Equal(decimal.NewFromInt(5)) {
		t.Errorf("items = %+v", items)
	}
	if price, _ := c.Price("Cake"); price.StringFixed(2) != "4.56" {
		t.Errorf("cake = %s", price)
	}
	items[0].Name = "changed"
	if c.Items()[0].Name != "Tea" {
		t.Error("Items must return a copy")
	}
}
