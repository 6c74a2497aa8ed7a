// Package api serves an in-memory stand-in for the storefront API the seeder
// targets: admin login, categories and product creation.
package api

import (
	"net/http"
	"time"

	"github.com/raushankrgupta/storefront-seeder/models"
	"github.com/raushankrgupta/storefront-seeder/utils"
	"golang.org/x/crypto/bcrypt"
)

// TokenTTL is how long issued admin tokens stay valid
const TokenTTL = 24 * time.Hour

// Server is the mock storefront
type Server struct {
	Store        *Store
	secret       []byte
	admin        models.Admin
	passwordHash []byte
}

// NewServer creates a Server with a single admin account
func NewServer(store *Store, username, password string, secret []byte) (*Server, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &Server{
		Store:        store,
		secret:       secret,
		admin:        models.Admin{ID: "admin-1", Username: username, Role: "super-admin"},
		passwordHash: hash,
	}, nil
}

// Routes returns the handler for all storefront routes under prefix (e.g. "/api")
func (s *Server) Routes(prefix string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST "+prefix+"/auth/login", s.LoginHandler)
	mux.HandleFunc("GET "+prefix+"/categories", s.CategoriesHandler)
	mux.HandleFunc("GET "+prefix+"/categories/{slug}", s.CategoryHandler)
	mux.HandleFunc("GET "+prefix+"/products", s.ListProductsHandler)
	mux.Handle("POST "+prefix+"/products", s.RequireAdmin(http.HandlerFunc(s.CreateProductHandler)))

	return utils.CORSMiddleware(utils.LatencyMiddleware(mux))
}
