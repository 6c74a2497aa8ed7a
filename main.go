package main

import (
	"context"
	"errors"
	"math/rand"
	"os"
	"time"

	"github.com/raushankrgupta/storefront-seeder/client"
	"github.com/raushankrgupta/storefront-seeder/config"
	"github.com/raushankrgupta/storefront-seeder/generator"
	"github.com/raushankrgupta/storefront-seeder/report"
	"github.com/raushankrgupta/storefront-seeder/seeder"
	"github.com/raushankrgupta/storefront-seeder/utils"
	"go.uber.org/zap"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.LoadConfig()

	logger, err := utils.InitLogger(cfg.LogMode, cfg.LogFile)
	if err != nil {
		os.Stderr.WriteString("failed to initialize logger: " + err.Error() + "\n")
		return 1
	}
	defer logger.Sync()

	ctx := context.Background()

	if cfg.RandomSeed == 0 {
		cfg.RandomSeed = time.Now().UnixNano()
	}
	gen := generator.New(rand.New(rand.NewSource(cfg.RandomSeed)))
	zap.S().Infof("Random seed %d", cfg.RandomSeed)

	if cfg.ImageBucket != "" {
		bucket, err := utils.InitS3(ctx, cfg.ImageBucket, cfg.AWSRegion)
		if err != nil {
			zap.S().Warnf("Image mirroring disabled: %v", err)
		} else {
			gen.SetImageURLs(utils.MirrorImages(ctx, bucket, generator.DefaultImageURLs, "product_images"))
		}
	}

	runner := seeder.NewRunner(cfg, client.New(cfg.APIURL, cfg.HTTPTimeout), gen)

	if cfg.DescriptionsEnabled() {
		writer, err := utils.NewGeminiWriter(ctx, cfg.GeminiAPIKey)
		if err != nil {
			zap.S().Warnf("AI descriptions disabled: %v", err)
		} else {
			defer writer.Close()
			runner.Describer = writer
		}
	}

	if cfg.MongoURI != "" {
		if err := utils.ConnectMongo(cfg.MongoURI); err != nil {
			zap.S().Warnf("Run reports will not be stored: %v", err)
		} else {
			defer utils.DisconnectMongo()
			runner.Sinks = append(runner.Sinks, &report.MongoSink{Database: cfg.MongoDatabase})
		}
	}
	if cfg.EmailEnabled() {
		runner.Sinks = append(runner.Sinks, &report.EmailSink{APIKey: cfg.SendGridAPIKey, To: cfg.ReportEmail})
	}

	result, err := runner.Run(ctx)
	if err != nil {
		switch {
		case errors.Is(err, seeder.ErrLogin):
			zap.S().Errorf("Login failed: %v", err)
		case errors.Is(err, seeder.ErrCategories):
			zap.S().Errorf("Could not fetch categories: %v", err)
		default:
			zap.S().Error(err)
		}
		return 1
	}

	if err := report.PrintSummary(os.Stdout, result); err != nil {
		zap.S().Warnf("Failed to print summary: %v", err)
	}
	return 0
}
