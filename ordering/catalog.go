package ordering

import (
	"restaurant_ordering/model"

	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
)

// Catalog is a read-only name to unit price lookup.
type Catalog interface {
	Price(name string) (decimal.Decimal, bool)
	Items() []model.MenuItem
	BySlug(s string) (model.MenuItem, bool)
}

type staticCatalog struct {
	items  []model.MenuItem
	byName map[string]model.MenuItem
	bySlug map[string]model.MenuItem
}

// NewStaticCatalog copies items; later duplicates of a name replace earlier ones.
func NewStaticCatalog(items ...model.MenuItem) Catalog {
	c := &staticCatalog{
		byName: make(map[string]model.MenuItem, len(items)),
		bySlug: make(map[string]model.MenuItem, len(items)),
	}
	for _, item := range items {
		if item.Slug == "" {
			item.Slug = slug.Make(item.Name)
		}
		item.UnitPrice = item.UnitPrice.Round(2)
		if _, dup := c.byName[item.Name]; !dup {
			c.items = append(c.items, item)
		} else {
			for i := range c.items {
				if c.items[i].Name == item.Name {
					c.items[i] = item
				}
			}
		}
		c.byName[item.Name] = item
		c.bySlug[item.Slug] = item
	}
	return c
}

func (c *staticCatalog) Price(name string) (decimal.Decimal, bool) {
	item, ok := c.byName[name]
	if !ok {
		return decimal.Zero, false
	}
	return item.UnitPrice, true
}

func (c *staticCatalog) Items() []model.MenuItem {
	out := make([]model.MenuItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *staticCatalog) BySlug(s string) (model.MenuItem, bool) {
	item, ok := c.bySlug[s]
	return item, ok
}

func DefaultMenu() Catalog {
	price := func(name string, p int64) model.MenuItem {
		return model.MenuItem{Name: name, UnitPrice: decimal.NewFromInt(p)}
	}
	return NewStaticCatalog(
		price("Fried Chicken", 25),
		price("Burger Steak", 30),
		price("Spaghetti", 20),
		price("Pancit Canton", 18),
		price("Sisig", 28),
		price("Lechon Kawali", 32),
		price("Adobo", 27),
		price("Beef Tapa", 35),
		price("Sinigang", 33),
		price("Halo-Halo", 15),
	)
}
