// Package seeder fills a storefront with generated products through its REST API.
//
// A run logs in once, fetches the categories, then creates a fixed number of
// products per category one request at a time, pausing after every attempt.
// Failed products are counted and skipped; only login and category fetch
// failures stop the run.
package seeder

import (
	"context"
	"errors"
	"fmt"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/raushankrgupta/storefront-seeder/client"
	"github.com/raushankrgupta/storefront-seeder/config"
	"github.com/raushankrgupta/storefront-seeder/generator"
	"github.com/raushankrgupta/storefront-seeder/models"
	"github.com/raushankrgupta/storefront-seeder/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var (
	// ErrLogin means no token could be obtained; nothing else was attempted.
	ErrLogin = errors.New("login failed")
	// ErrCategories means the category list could not be fetched.
	ErrCategories = errors.New("fetching categories failed")
)

// StorefrontAPI is the part of the storefront the seeder talks to
type StorefrontAPI interface {
	Login(ctx context.Context, username, password string) (string, error)
	Categories(ctx context.Context) ([]models.Category, error)
	CreateProduct(ctx context.Context, token string, product models.Product) error
}

// Describer rewrites a generated product's description
type Describer interface {
	Describe(ctx context.Context, category models.Category, product models.Product) (string, error)
}

// Sink receives the finished run report
type Sink interface {
	Name() string
	Record(ctx context.Context, report *models.RunReport) error
}

// Runner performs one seeding run
type Runner struct {
	API       StorefrontAPI
	Generator *generator.Generator
	Username  string
	Password  string

	// APIURL and RandomSeed are copied into the report
	APIURL     string
	RandomSeed int64

	// PerCategory is the number of products created in each category
	PerCategory int
	// Pace is slept after every creation attempt, successful or not
	Pace  time.Duration
	Sleep func(time.Duration)

	Describer Describer // optional
	Sinks     []Sink

	Logger *zap.SugaredLogger
	Now    func() time.Time
}

// NewRunner wires a Runner from cfg with the run's fixed per-category count and pace
func NewRunner(cfg *config.Config, api StorefrontAPI, gen *generator.Generator) *Runner {
	return &Runner{
		API:         api,
		Generator:   gen,
		Username:    cfg.Username,
		Password:    cfg.Password,
		APIURL:      cfg.APIURL,
		RandomSeed:  cfg.RandomSeed,
		PerCategory: config.ProductsPerCategory,
		Pace:        config.Pace,
		Sleep:       time.Sleep,
		Logger:      zap.S(),
		Now:         time.Now,
	}
}

// Run seeds the storefront and returns the tally. The error is non-nil only
// when the run could not start (ErrLogin, ErrCategories); per-product
// failures are reported in the returned RunReport.
func (r *Runner) Run(ctx context.Context) (*models.RunReport, error) {
	log := r.logger()
	report := &models.RunReport{
		ID:         primitive.NewObjectID(),
		APIURL:     r.APIURL,
		RandomSeed: r.RandomSeed,
		StartedAt:  r.now(),
	}

	log.Info("Logging in...")
	token, err := r.API.Login(ctx, r.Username, r.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrLogin, diagnostic(err))
	}
	log.Info("Logged in successfully")
	r.inspectToken(token)

	log.Info("Fetching categories...")
	categories, err := r.API.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCategories, diagnostic(err))
	}
	log.Infof("Found %d categories", len(categories))
	for _, c := range categories {
		log.Infof("  - %s (%s)", c.Name, c.Slug)
		report.Categories = append(report.Categories, c.Slug)
	}
	report.Expected = len(categories) * r.PerCategory

	for _, category := range categories {
		r.seedCategory(ctx, token, category, report)
	}

	report.FinishedAt = r.now()
	r.record(ctx, report)
	return report, nil
}

func (r *Runner) seedCategory(ctx context.Context, token string, category models.Category, report *models.RunReport) {
	log := r.logger()
	log.Infof("Adding %d products to %s...", r.PerCategory, category.Name)

	for i := 1; i <= r.PerCategory; i++ {
		product := r.Generator.Generate(category, i)
		r.describe(ctx, category, &product)

		if err := r.API.CreateProduct(ctx, token, product); err != nil {
			report.Failed++
			report.Failures = append(report.Failures, models.Failure{
				Category:   category.Slug,
				Index:      i,
				Name:       product.Name,
				StatusCode: client.StatusCode(err),
				Message:    diagnostic(err),
			})
			log.Warnf("Failed to create product %d/%d: %s", i, r.PerCategory, diagnostic(err))
		} else {
			report.Created++
			log.Infof("Created product %d/%d - %s", i, r.PerCategory, product.Name)
		}

		r.pace()
	}
}

func (r *Runner) describe(ctx context.Context, category models.Category, product *models.Product) {
	if r.Describer == nil {
		return
	}
	description, err := r.Describer.Describe(ctx, category, *product)
	if err != nil {
		r.logger().Warnf("Keeping template description for %s: %v", product.Name, err)
		return
	}
	product.Description = description
}

func (r *Runner) inspectToken(token string) {
	info, err := utils.InspectToken(token)
	if err != nil {
		r.logger().Debug("Bearer token is opaque")
		return
	}
	if info.Expired(r.now()) {
		r.logger().Warnf("Token for %s expired at %s", info.Subject, info.ExpiresAt.Format(time.RFC3339))
		return
	}
	if !info.ExpiresAt.IsZero() {
		r.logger().Debugf("Token for %s (%s) valid until %s", info.Subject, info.Role, info.ExpiresAt.Format(time.RFC3339))
	}
}

func (r *Runner) record(ctx context.Context, report *models.RunReport) {
	for _, sink := range r.Sinks {
		if err := sink.Record(ctx, report); err != nil {
			r.logger().Warnf("Failed to record run in %s: %v", sink.Name(), err)
		}
	}
}

func (r *Runner) pace() {
	if r.Pace <= 0 {
		return
	}
	if r.Sleep != nil {
		r.Sleep(r.Pace)
		return
	}
	time.Sleep(r.Pace)
}

func (r *Runner) logger() *zap.SugaredLogger {
	if r.Logger != nil {
		return r.Logger
	}
	return zap.S()
}

func (r *Runner) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// diagnostic is the text shown for a failed call: the response body when
// there was one, otherwise the transport error.
func diagnostic(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Body != "" {
			return apiErr.Body
		}
		return fmt.Sprintf("status %d", apiErr.StatusCode)
	}
	return pkgerrors.Cause(err).Error()
}
