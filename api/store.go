package api

import (
	"sort"
	"sync"
	"time"

	"github.com/raushankrgupta/storefront-seeder/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultCategories are the categories a fresh storefront starts with
var DefaultCategories = []models.Category{
	{ID: "cat-men", Name: "عطور رجالية", Slug: "men", Description: "عطور فاخرة للرجال"},
	{ID: "cat-women", Name: "عطور نسائية", Slug: "women", Description: "عطور راقية للنساء"},
	{ID: "cat-unisex", Name: "عطور للجنسين", Slug: "unisex", Description: "عطور مشتركة"},
}

// Store is an in-memory catalogue
type Store struct {
	mu         sync.RWMutex
	categories map[string]models.Category
	products   []models.Product
}

// NewStore creates a Store holding categories
func NewStore(categories []models.Category) *Store {
	s := &Store{categories: make(map[string]models.Category)}
	for _, c := range categories {
		s.categories[c.Slug] = c
	}
	return s
}

// Categories returns all categories ordered by name
func (s *Store) Categories() []models.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Category looks a category up by slug
func (s *Store) Category(slug string) (models.Category, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.categories[slug]
	return c, ok
}

// AddProduct stores p under a new id and returns the stored copy
func (s *Store) AddProduct(p models.Product) models.Product {
	now := time.Now().UTC()
	p.ID = "product-" + p.Category + "-" + primitive.NewObjectID().Hex()
	p.CreatedAt = &now

	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = append(s.products, p)
	return p
}

// Products returns the stored products, optionally only those of one category
func (s *Store) Products(category string) []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		if category == "" || p.Category == category {
			out = append(out, p)
		}
	}
	return out
}
