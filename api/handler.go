package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/raushankrgupta/storefront-seeder/models"
	"github.com/raushankrgupta/storefront-seeder/utils"
	"go.uber.org/zap"
)

// CategoriesHandler lists all categories
func (s *Server) CategoriesHandler(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, s.Store.Categories())
}

// CategoryHandler returns one category by slug
func (s *Server) CategoryHandler(w http.ResponseWriter, r *http.Request) {
	category, ok := s.Store.Category(r.PathValue("slug"))
	if !ok {
		utils.RespondError(w, nil, "Category not found", http.StatusNotFound)
		return
	}
	utils.RespondJSON(w, http.StatusOK, category)
}

// ListProductsHandler lists products, filtered by ?category= when given
func (s *Server) ListProductsHandler(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, s.Store.Products(r.URL.Query().Get("category")))
}

// CreateProductHandler validates and stores a product
func (s *Server) CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		zap.S().Debug(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Create Product API]")

	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if msg := validateProduct(product); msg != "" {
		utils.RespondError(w, &logMessageBuilder, msg, http.StatusBadRequest)
		return
	}
	if _, ok := s.Store.Category(product.Category); !ok {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Unknown category: %s", product.Category), http.StatusBadRequest)
		return
	}

	stored := s.Store.AddProduct(product)
	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Created %s", stored.ID))
	utils.RespondJSON(w, http.StatusCreated, stored)
}

func validateProduct(p models.Product) string {
	var missing []string
	if strings.TrimSpace(p.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(p.Brand) == "" {
		missing = append(missing, "brand")
	}
	if p.Price <= 0 {
		missing = append(missing, "price")
	}
	if p.Category == "" {
		missing = append(missing, "category")
	}
	if p.Type == "" {
		missing = append(missing, "type")
	}
	if len(missing) > 0 {
		return "Missing or invalid fields: " + strings.Join(missing, ", ")
	}
	return ""
}
