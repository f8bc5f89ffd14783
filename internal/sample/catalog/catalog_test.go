package catalog

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/jsonbake/bake"
	"github.com/signadot/jsonbake/internal/sample/geo"
)

var cmpItems = cmp.AllowUnexported(Item{})

func newDispatcher() *bake.Dispatcher {
	return bake.NewDispatcher(bake.NewRegistry())
}

func ptr[T any](v T) *T { return &v }

func fullItem() Item {
	return Item{
		SKU:   "lamp-1",
		Title: "Desk lamp",
		Price: 19.5,
		Qty:   3,
		Tags:  []string{"light", "desk"},
		Attrs: map[string]string{"color": "red", "bulb": "E27"},
		Stock: map[int]uint16{2: 7, 10: 1},
		Location: geo.Point{
			X: 4,
			Y: -2,
		},
		Area: &geo.Polygon{
			Name:     "shelf",
			Vertices: []geo.Point{{X: 0, Y: 0}, {X: 1, Y: 0}},
			Scale:    1,
		},
		Flags:    []geo.Flag{{Enabled: true}, {}},
		Added:    time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC),
		Checksum: []byte{0xde, 0xad, 0xbe, 0xef},
		Note:     ptr("fragile"),
		Level:    5,
		Meta:     map[string]any{"origin": "DK", "weight": 1.25},
	}
}

func TestItemRoundTrip(t *testing.T) {
	d := newDispatcher()
	tests := []struct {
		name string
		item Item
	}{
		{"zero", Item{}},
		{"minimal", Item{SKU: "a", Title: "A", Qty: 1}},
		{"full", fullItem()},
		{"empty collections", Item{SKU: "b", Tags: []string{}, Attrs: map[string]string{}, Flags: []geo.Flag{}}},
		{"single flag", Item{SKU: "c", Flags: []geo.Flag{{Enabled: true}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := d.Marshal(tt.item)
			if err != nil {
				t.Fatal(err)
			}
			var got Item
			if err := d.Unmarshal(data, &got); err != nil {
				t.Fatalf("unmarshal %s: %v", data, err)
			}
			if diff := cmp.Diff(tt.item, got, cmpItems); diff != "" {
				t.Errorf("round trip of %s (-want +got):\n%s", data, diff)
			}
		})
	}
}

func TestItemEncoding(t *testing.T) {
	d := newDispatcher()
	tests := []struct {
		name string
		item Item
		want string
	}{
		{
			name: "defaults",
			item: Item{SKU: "a", Title: "A", Qty: 1, Level: 2},
			want: `{"sku":"a","title":"A","qty":1,"location":{"x":0,"y":0}}`,
		},
		{
			name: "non-default level",
			item: Item{SKU: "a", Level: 0, Price: 2.5},
			want: `{"sku":"a","title":"","price":2.5,"qty":0,"location":{"x":0,"y":0},"level":0}`,
		},
		{
			name: "sorted map keys",
			item: Item{SKU: "a", Level: 2, Attrs: map[string]string{"b": "2", "a": "1"}, Stock: map[int]uint16{10: 1, 2: 3}},
			want: `{"sku":"a","title":"","qty":0,"attrs":{"a":"1","b":"2"},"stock":{"2":3,"10":1},"location":{"x":0,"y":0}}`,
		},
		{
			name: "bytes and time",
			item: Item{SKU: "a", Level: 2, Checksum: []byte("hi"), Added: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)},
			want: `{"sku":"a","title":"","qty":0,"location":{"x":0,"y":0},"added":"2024-01-02T03:04:05Z","checksum":"aGk="}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := d.Marshal(tt.item)
			if err != nil {
				t.Fatal(err)
			}
			if string(data) != tt.want {
				t.Errorf("got  %s\nwant %s", data, tt.want)
			}
		})
	}
}

func TestItemDecoding(t *testing.T) {
	d := newDispatcher()
	tests := []struct {
		name string
		in   string
		want Item
	}{
		{
			name: "populated default",
			in:   `{"sku":"a"}`,
			want: Item{SKU: "a", Qty: 1},
		},
		{
			name: "explicit value wins",
			in:   `{"sku":"a","qty":0}`,
			want: Item{SKU: "a", Qty: 0},
		},
		{
			name: "unknown members",
			in:   `{"unknown":{"deep":[1,{"x":null}]},"sku":"a","other":true}`,
			want: Item{SKU: "a", Qty: 1},
		},
		{
			name: "case insensitive",
			in:   `{"SKU":"a","Title":"T","LOCATION":{"X":3,"Y":4}}`,
			want: Item{SKU: "a", Title: "T", Qty: 1, Location: geo.Point{X: 3, Y: 4}},
		},
		{
			name: "coercion",
			in:   `{"qty":"7","price":"2.5","level":"3","title":12,"stock":{"5":"6"}}`,
			want: Item{Title: "12", Qty: 7, Price: 2.5, Level: 3, Stock: map[int]uint16{5: 6}},
		},
		{
			name: "nulls",
			in:   `{"tags":null,"attrs":null,"area":null,"note":null,"checksum":null,"meta":null,"location":null}`,
			want: Item{Qty: 1},
		},
		{
			name: "default level ignored",
			in:   `{"level":2}`,
			want: Item{Qty: 1},
		},
		{
			name: "unix time",
			in:   `{"added":1700000000}`,
			want: Item{Qty: 1, Added: time.Unix(1700000000, 0)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Item
			if err := d.Unmarshal([]byte(tt.in), &got); err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, got, cmpItems); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestItemDecodeErrors(t *testing.T) {
	d := newDispatcher()
	tests := []struct {
		in   string
		path string
	}{
		{`{"qty":"many"}`, "qty"},
		{`{"level":300}`, "level"},
		{`{"tags":{}}`, "tags"},
		{`{"location":{"x":[1]}}`, "location.x"},
		{`{"checksum":"%%%"}`, "checksum"},
	}
	for _, tt := range tests {
		var got Item
		err := d.Unmarshal([]byte(tt.in), &got)
		if err == nil {
			t.Errorf("%s: expected an error", tt.in)
			continue
		}
		var ue *bake.UnmarshalError
		if !errors.As(err, &ue) {
			t.Errorf("%s: got %T %v, want an *UnmarshalError", tt.in, err, err)
			continue
		}
		if ue.FieldPath != tt.path {
			t.Errorf("%s: error at %q, want %q", tt.in, ue.FieldPath, tt.path)
		}
	}
}

func TestCatalogRoundTrip(t *testing.T) {
	d := newDispatcher()
	root := &Catalog{
		Name:    "root",
		Updated: time.Date(2023, 12, 24, 0, 0, 0, 0, time.UTC),
	}
	c := Catalog{
		Name:    "lighting",
		Items:   []Item{fullItem(), {SKU: "b", Title: "Bulb", Qty: 10}},
		Parent:  root,
		Updated: time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC),
	}
	c.Index()

	data, err := d.Marshal(c)
	if err != nil {
		t.Fatal(err)
	}
	var got Catalog
	if err := d.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(c, got, cmpItems); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
	if got.ByTitle["Bulb"] == &got.Items[1] {
		t.Error("decoded index aliases the item slice")
	}
}

func TestCatalogInHostValue(t *testing.T) {
	d := newDispatcher()
	type envelope struct {
		Version int        `json:"version"`
		Catalog *Catalog   `json:"catalog"`
		Extras  []geo.Flag `json:"extras"`
	}
	in := envelope{
		Version: 2,
		Catalog: &Catalog{Name: "c", Items: []Item{{SKU: "x", Qty: 1}}},
		Extras:  []geo.Flag{{}, {Enabled: true}},
	}
	data, err := d.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	var out envelope
	if err := d.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(in, out, cmpItems); diff != "" {
		t.Errorf("round trip of %s (-want +got):\n%s", data, diff)
	}
}

func TestItemTouch(t *testing.T) {
	var it Item
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	it.Touch(now)
	it.Touch(now)
	if it.Revision() != 2 || !it.Added.Equal(now) {
		t.Errorf("got revision %d added %v", it.Revision(), it.Added)
	}
}
