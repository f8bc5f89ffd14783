// Package catalog models a product catalog whose converters refer to the
// converters of package geo.
package catalog

import (
	"time"

	"github.com/signadot/jsonbake/internal/sample/geo"
)

//go:generate go run github.com/signadot/jsonbake/cmd/jsonbake-gen -dir .. gen

type SKU string

type Level int8

// Item is one product.
//
//jsonbake:generate
type Item struct {
	SKU      SKU               `jsonbake:"name=sku"`
	Title    string            `jsonbake:"name=title"`
	Price    float64           `jsonbake:"name=price,default=ignore"`
	Qty      int32             `jsonbake:"name=qty,default=populate,value=1"`
	Tags     []string          `jsonbake:"name=tags,null=ignore"`
	Attrs    map[string]string `jsonbake:"name=attrs,null=ignore"`
	Stock    map[int]uint16    `jsonbake:"name=stock,null=ignore"`
	Location geo.Point         `jsonbake:"name=location"`
	Area     *geo.Polygon      `jsonbake:"name=area,null=ignore"`
	Flags    []geo.Flag        `jsonbake:"name=flags,null=ignore"`
	Added    time.Time         `jsonbake:"name=added,default=ignore"`
	Checksum []byte            `jsonbake:"name=checksum,null=ignore"`
	Note     *string           `jsonbake:"name=note,null=ignore"`
	Level    Level             `jsonbake:"name=level,default=ignore,value=2"`
	Meta     any               `jsonbake:"name=meta,null=ignore"`
	Internal string            `jsonbake:"-"`

	revision int
}

// Catalog is a named collection of items. Catalogs may nest.
//
//jsonbake:generate
type Catalog struct {
	Name    string           `jsonbake:"name=name"`
	Items   []Item           `jsonbake:"name=items"`
	ByTitle map[string]*Item `jsonbake:"name=byTitle,null=ignore"`
	Parent  *Catalog         `jsonbake:"name=parent,null=ignore"`
	Updated time.Time        `jsonbake:"name=updated"`
}

// Index fills ByTitle from Items.
func (c *Catalog) Index() {
	c.ByTitle = make(map[string]*Item, len(c.Items))
	for i := range c.Items {
		c.ByTitle[c.Items[i].Title] = &c.Items[i]
	}
}

// Revision returns the number of times the item was touched.
func (it *Item) Revision() int { return it.revision }

// Touch records a modification of the item.
func (it *Item) Touch(now time.Time) {
	it.revision++
	it.Added = now
}
