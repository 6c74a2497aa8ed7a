package generator

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/raushankrgupta/storefront-seeder/models"
)

var (
	Brands = []string{"لوكسوري", "بريميوم", "إيليت", "رويال", "كلاسيك", "مودرن", "فينتاج", "أرتيزان"}
	Types  = []string{"Eau de Parfum", "Eau de Toilette", "Parfum", "Cologne"}
	Sizes  = []string{"50ml", "75ml", "100ml", "125ml", "150ml"}

	DefaultImageURLs = []string{
		"https://images.unsplash.com/photo-1541643600914-78b084683601?w=500",
		"https://images.unsplash.com/photo-1585386959984-a4155224a1ad?w=500",
	}
)

const (
	MinPrice       = 100
	MaxPrice       = 600
	MinStock       = 10
	MaxStock       = 100
	MaxReviewCount = 200
	MinRating      = 3.0
	MaxRating      = 5.0

	discountThreshold    = 0.6
	bestSellingThreshold = 0.85

	descriptionTemplate = "منتج فاخر من فئة %s - جودة عالية ورائحة مميزة تدوم طويلاً."
)

// Generator builds synthetic perfume products. All randomness comes from the
// supplied source, so a fixed seed reproduces the same sequence of products.
// A Generator is not safe for concurrent use.
type Generator struct {
	rnd       *rand.Rand
	imageURLs []string
}

// New creates a Generator drawing from rnd
func New(rnd *rand.Rand) *Generator {
	return &Generator{
		rnd:       rnd,
		imageURLs: DefaultImageURLs,
	}
}

// NewSeeded creates a Generator with its own source seeded by seed
func NewSeeded(seed int64) *Generator {
	return New(rand.New(rand.NewSource(seed)))
}

// SetImageURLs replaces the image list attached to every product
func (g *Generator) SetImageURLs(urls []string) {
	g.imageURLs = append([]string(nil), urls...)
}

// ImageURLs returns the image list attached to every product
func (g *Generator) ImageURLs() []string {
	return append([]string(nil), g.imageURLs...)
}

// Generate builds the index-th (1-based) product of category
func (g *Generator) Generate(category models.Category, index int) models.Product {
	price := g.intBetween(MinPrice, MaxPrice)

	var oldPrice *int
	if g.rnd.Float64() > discountThreshold {
		op := DiscountedFrom(price)
		oldPrice = &op
	}
	bestSelling := g.rnd.Float64() > bestSellingThreshold

	// Draw order matters for reproducibility: the name brand is drawn before
	// the brand field.
	p := models.Product{
		Name:        fmt.Sprintf("%s %s %d", category.Name, g.pick(Brands), index),
		Brand:       g.pick(Brands),
		Price:       price,
		OldPrice:    oldPrice,
		Category:    category.Slug,
		Type:        g.pick(Types),
		Size:        g.pick(Sizes),
		Description: Description(category),
		Notes:       DefaultNotes(),
		ImageURLs:   g.ImageURLs(),
		BestSelling: bestSelling,
	}
	p.Stock = g.intBetween(MinStock, MaxStock)
	p.Rating = roundTenth(MinRating + (MaxRating-MinRating)*g.rnd.Float64())
	p.ReviewCount = g.intBetween(0, MaxReviewCount)
	return p
}

// Batch generates products 1..n for category
func (g *Generator) Batch(category models.Category, n int) []models.Product {
	products := make([]models.Product, 0, n)
	for i := 1; i <= n; i++ {
		products = append(products, g.Generate(category, i))
	}
	return products
}

// DiscountedFrom returns floor(price * 1.3)
func DiscountedFrom(price int) int {
	return price * 13 / 10
}

// Description returns the template description for category
func Description(category models.Category) string {
	return fmt.Sprintf(descriptionTemplate, category.Name)
}

// DefaultNotes returns a fresh copy of the fixed scent notes
func DefaultNotes() models.Notes {
	return models.Notes{
		Top:   []string{"برغموت", "ليمون", "نعناع"},
		Heart: []string{"ورد", "ياسمين", "لافندر"},
		Base:  []string{"عنبر", "مسك", "خشب الصندل"},
	}
}

// intBetween returns a uniform int in [lo, hi]
func (g *Generator) intBetween(lo, hi int) int {
	return lo + g.rnd.Intn(hi-lo+1)
}

func (g *Generator) pick(options []string) string {
	return options[g.rnd.Intn(len(options))]
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
