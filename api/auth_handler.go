package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/raushankrgupta/storefront-seeder/models"
	"github.com/raushankrgupta/storefront-seeder/utils"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// LoginHandler handles admin login
func (s *Server) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		zap.S().Debug(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Login API]")

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, &logMessageBuilder, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Username != s.admin.Username {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Unknown admin: %s", req.Username))
		utils.RespondError(w, &logMessageBuilder, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(req.Password)); err != nil {
		utils.AddToLogMessage(&logMessageBuilder, "Invalid password")
		utils.RespondError(w, &logMessageBuilder, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := utils.GenerateToken(s.secret, s.admin, TokenTTL)
	if err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Failed to generate token: %v", err))
		utils.RespondError(w, &logMessageBuilder, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	admin := s.admin
	utils.AddToLogMessage(&logMessageBuilder, "Login successful")
	utils.RespondJSON(w, http.StatusOK, models.LoginResponse{Token: token, Admin: &admin})
}

// RequireAdmin rejects requests without a valid bearer token
func (s *Server) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			utils.RespondError(w, nil, "No token, authorization denied", http.StatusUnauthorized)
			return
		}

		token, err := utils.ValidateToken(s.secret, tokenString)
		if err != nil || !token.Valid {
			utils.RespondError(w, nil, "Token is not valid", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
