package generator

import (
	"fmt"
	"math"
	"math/rand"
	"reflect"
	"strings"
	"testing"

	"github.com/raushankrgupta/storefront-seeder/models"
)

var men = models.Category{Name: "عطور رجالية", Slug: "men"}

func contains(options []string, v string) bool {
	for _, o := range options {
		if o == v {
			return true
		}
	}
	return false
}

func TestGenerateFieldRanges(t *testing.T) {
	g := NewSeeded(1)

	for i := 1; i <= 5000; i++ {
		p := g.Generate(men, i)

		if p.Price < MinPrice || p.Price > MaxPrice {
			t.Fatalf("product %d: price %d out of range", i, p.Price)
		}
		if p.OldPrice != nil && *p.OldPrice != int(math.Floor(float64(p.Price)*1.3+1e-9)) {
			t.Fatalf("product %d: old_price %d, price %d", i, *p.OldPrice, p.Price)
		}
		if p.Rating < MinRating || p.Rating > MaxRating {
			t.Fatalf("product %d: rating %v out of range", i, p.Rating)
		}
		if r := p.Rating * 10; math.Abs(r-math.Round(r)) > 1e-9 {
			t.Fatalf("product %d: rating %v has more than one decimal", i, p.Rating)
		}
		if p.Stock < MinStock || p.Stock > MaxStock {
			t.Fatalf("product %d: stock %d out of range", i, p.Stock)
		}
		if p.ReviewCount < 0 || p.ReviewCount > MaxReviewCount {
			t.Fatalf("product %d: reviewCount %d out of range", i, p.ReviewCount)
		}
		if p.Category != men.Slug {
			t.Fatalf("product %d: category %q, want %q", i, p.Category, men.Slug)
		}
		if !contains(Brands, p.Brand) || !contains(Types, p.Type) || !contains(Sizes, p.Size) {
			t.Fatalf("product %d: unexpected brand/type/size %q/%q/%q", i, p.Brand, p.Type, p.Size)
		}
	}
}

func TestGenerateNameAndDescription(t *testing.T) {
	g := NewSeeded(7)
	p := g.Generate(men, 12)

	prefix := men.Name + " "
	suffix := " 12"
	if !strings.HasPrefix(p.Name, prefix) || !strings.HasSuffix(p.Name, suffix) {
		t.Fatalf("name %q does not look like %q<brand>%q", p.Name, prefix, suffix)
	}
	brand := strings.TrimSuffix(strings.TrimPrefix(p.Name, prefix), suffix)
	if !contains(Brands, brand) {
		t.Errorf("name brand %q is not a known brand", brand)
	}
	if !strings.Contains(p.Description, men.Name) {
		t.Errorf("description %q does not mention the category", p.Description)
	}
	if p.Description != Description(men) {
		t.Errorf("description = %q, want template", p.Description)
	}
}

func TestGenerateConstantFields(t *testing.T) {
	g := NewSeeded(3)
	p := g.Generate(men, 1)

	if !reflect.DeepEqual(p.Notes, DefaultNotes()) {
		t.Errorf("notes = %+v", p.Notes)
	}
	if !reflect.DeepEqual(p.ImageURLs, DefaultImageURLs) {
		t.Errorf("image_urls = %v", p.ImageURLs)
	}

	// mutating one product must not leak into the next
	p.ImageURLs[0] = "mutated"
	p.Notes.Top[0] = "mutated"
	q := g.Generate(men, 2)
	if q.ImageURLs[0] != DefaultImageURLs[0] || q.Notes.Top[0] == "mutated" {
		t.Error("products share slices")
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a := NewSeeded(99).Batch(men, 20)
	b := NewSeeded(99).Batch(men, 20)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("same seed produced different products")
	}

	c := NewSeeded(100).Batch(men, 20)
	if reflect.DeepEqual(a, c) {
		t.Fatal("different seeds produced identical batches")
	}
}

func TestBatchCountAndIndexes(t *testing.T) {
	products := NewSeeded(5).Batch(men, 20)
	if len(products) != 20 {
		t.Fatalf("len = %d, want 20", len(products))
	}
	for i, p := range products {
		if !strings.HasSuffix(p.Name, fmt.Sprintf(" %d", i+1)) {
			t.Errorf("product %d name %q has wrong index", i, p.Name)
		}
	}
}

// fixedSource replays a script of Float64 values; Int63 backs Intn.
type fixedSource struct {
	floats []float64
	i      int
}

func (s *fixedSource) Int63() int64 {
	v := s.floats[s.i%len(s.floats)]
	s.i++
	return int64(v * (1 << 63))
}

func (s *fixedSource) Seed(int64) {}

func TestDiscountBranch(t *testing.T) {
	// Float64 draws > 0.6 for the discount and > 0.85 for best selling
	g := New(rand.New(&fixedSource{floats: []float64{0.99}}))
	p := g.Generate(men, 1)
	if !p.HasDiscount() {
		t.Fatal("expected discount branch")
	}
	if *p.OldPrice != DiscountedFrom(p.Price) {
		t.Errorf("old_price = %d, want %d", *p.OldPrice, DiscountedFrom(p.Price))
	}
	if !p.BestSelling {
		t.Error("expected best selling branch")
	}

	g = New(rand.New(&fixedSource{floats: []float64{0.1}}))
	p = g.Generate(men, 1)
	if p.HasDiscount() {
		t.Errorf("old_price = %d, want nil", *p.OldPrice)
	}
	if p.BestSelling {
		t.Error("unexpected best selling")
	}
}

func TestDiscountedFrom(t *testing.T) {
	cases := map[int]int{100: 130, 101: 131, 333: 432, 599: 778, 600: 780}
	for price, want := range cases {
		if got := DiscountedFrom(price); got != want {
			t.Errorf("DiscountedFrom(%d) = %d, want %d", price, got, want)
		}
	}
}

func TestSetImageURLs(t *testing.T) {
	g := NewSeeded(1)
	urls := []string{"https://bucket.s3.amazonaws.com/a.jpg", "https://bucket.s3.amazonaws.com/b.jpg"}
	g.SetImageURLs(urls)
	urls[0] = "changed"

	p := g.Generate(men, 1)
	if p.ImageURLs[0] != "https://bucket.s3.amazonaws.com/a.jpg" {
		t.Errorf("image_urls = %v", p.ImageURLs)
	}
}
