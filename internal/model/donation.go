package model

import (
	"crypto/sha256"
	"fmt"
	"time"
)

// Donation represents a single received gift.
type Donation struct {
	ReceivedAt time.Time
	ID         string
	DonorID    string
	Hash       string
	Amount     float64
	Source     string // e.g. "csv", "ofx", "manual"
}

// GenerateHash creates a unique hash for duplicate detection.
func (d *Donation) GenerateHash() string {
	data := fmt.Sprintf("%s:%s:%.2f",
		d.DonorID,
		d.ReceivedAt.Format("2006-01-02"),
		d.Amount)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}
