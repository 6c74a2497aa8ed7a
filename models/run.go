package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Failure records one product that could not be created
type Failure struct {
	Category   string `bson:"category" json:"category"`
	Index      int    `bson:"index" json:"index"`
	Name       string `bson:"name" json:"name"`
	StatusCode int    `bson:"status_code,omitempty" json:"status_code,omitempty"` // 0 for transport errors
	Message    string `bson:"message" json:"message"`
}

// RunReport is the tally of one seeding run
type RunReport struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	APIURL     string             `bson:"api_url" json:"api_url"`
	RandomSeed int64              `bson:"random_seed" json:"random_seed"`
	Categories []string           `bson:"categories" json:"categories"` // Slugs in fetch order
	Expected   int                `bson:"expected" json:"expected"`
	Created    int                `bson:"created" json:"created"`
	Failed     int                `bson:"failed" json:"failed"`
	Failures   []Failure          `bson:"failures" json:"failures"`
	StartedAt  time.Time          `bson:"started_at" json:"started_at"`
	FinishedAt time.Time          `bson:"finished_at" json:"finished_at"`
}

// Attempted is the number of creation calls made during the run
func (r *RunReport) Attempted() int {
	return r.Created + r.Failed
}
