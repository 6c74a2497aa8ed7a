// Package report renders and stores the outcome of a seeding run.
package report

import (
	"context"
	"fmt"
	"html"
	"io"
	"strings"
	"time"

	"github.com/raushankrgupta/storefront-seeder/models"
	"github.com/raushankrgupta/storefront-seeder/utils"
)

// RunsCollection is where run reports are stored in MongoDB
const RunsCollection = "seed_runs"

// PrintSummary writes the final tally of a run to w
func PrintSummary(w io.Writer, r *models.RunReport) error {
	_, err := fmt.Fprintf(w, "\nDone! Created %d products, %d failed\nTotal products: %d/%d\n",
		r.Created, r.Failed, r.Created, r.Expected)
	return err
}

// Text is the plain-text body of the summary email
func Text(r *models.RunReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Seeding run %s against %s\n", r.ID.Hex(), r.APIURL)
	fmt.Fprintf(&b, "Started %s, took %s\n", r.StartedAt.Format(time.RFC3339), r.FinishedAt.Sub(r.StartedAt).Round(time.Second))
	fmt.Fprintf(&b, "Categories: %s\n", strings.Join(r.Categories, ", "))
	fmt.Fprintf(&b, "Created %d products, %d failed (%d attempted)\n", r.Created, r.Failed, r.Attempted())
	fmt.Fprintf(&b, "Total products: %d/%d\n", r.Created, r.Expected)
	if len(r.Failures) > 0 {
		b.WriteString("\nFailures:\n")
		for _, f := range r.Failures {
			fmt.Fprintf(&b, "  %s #%d %s: %s\n", f.Category, f.Index, f.Name, f.Message)
		}
	}
	return b.String()
}

// HTML is the HTML body of the summary email
func HTML(r *models.RunReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<h2>Seeding run %s</h2>", html.EscapeString(r.ID.Hex()))
	fmt.Fprintf(&b, "<p>Target: %s<br>Created <strong>%d</strong>, failed <strong>%d</strong>, total %d/%d</p>",
		html.EscapeString(r.APIURL), r.Created, r.Failed, r.Created, r.Expected)
	if len(r.Failures) > 0 {
		b.WriteString("<ul>")
		for _, f := range r.Failures {
			fmt.Fprintf(&b, "<li>%s #%d %s: %s</li>",
				html.EscapeString(f.Category), f.Index, html.EscapeString(f.Name), html.EscapeString(f.Message))
		}
		b.WriteString("</ul>")
	}
	return b.String()
}

// MongoSink stores run reports in MongoDB
type MongoSink struct {
	Database string
}

func (s *MongoSink) Name() string { return "mongodb" }

func (s *MongoSink) Record(ctx context.Context, r *models.RunReport) error {
	collection, err := utils.GetCollection(s.Database, RunsCollection)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if _, err := collection.InsertOne(ctx, r); err != nil {
		return fmt.Errorf("failed to save run report: %w", err)
	}
	return nil
}

// EmailSink mails the run summary through SendGrid
type EmailSink struct {
	APIKey string
	To     string
	// Send defaults to utils.SendEmail
	Send func(apiKey, toName, toEmail, subject, textContent, htmlContent string) error
}

func (s *EmailSink) Name() string { return "email" }

func (s *EmailSink) Record(ctx context.Context, r *models.RunReport) error {
	send := s.Send
	if send == nil {
		send = utils.SendEmail
	}
	subject := fmt.Sprintf("Seeding run: %d/%d products created", r.Created, r.Expected)
	return send(s.APIKey, "", s.To, subject, Text(r), HTML(r))
}
