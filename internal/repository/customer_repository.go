package repository

import (
	"github.com/unclebandit/fitkitchen-backend/internal/model"
)

// CustomerStore persists the whole customer collection as one document.
// Every call reads or writes the complete collection; nothing is cached.
type CustomerStore interface {
	// EnsureInitialized creates an empty collection if none exists yet.
	// Safe to call before every read or write.
	EnsureInitialized() error
	// Load returns the stored collection, or a *appErrors.StorageReadError.
	Load() (*model.CustomerDocument, error)
	// Save overwrites the stored collection, or returns a *appErrors.StorageWriteError.
	Save(doc *model.CustomerDocument) error
}

// NextID returns one more than the highest ID in use, or 1 for an empty collection.
// Deleted IDs are never reused unless they were the highest.
func NextID(customers []model.Customer) int {
	highest := 0
	for _, c := range customers {
		if c.ID > highest {
			highest = c.ID
		}
	}
	return highest + 1
}
