// Package repositories
package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/portbound/go-filedb/internal/models"
)

// FileRepository is the persistence boundary for file records. Save
// assigns the record's ID. Get and Update report a missing row as
// sql.ErrNoRows.
type FileRepository interface {
	Save(ctx context.Context, file *models.File) (*models.File, error)
	Get(ctx context.Context, id uuid.UUID) (*models.File, error)
	GetAll(ctx context.Context) ([]*models.File, error)
	Update(ctx context.Context, file *models.File) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// RecordCache maps identifiers to records. Entries leave the cache only
// through Evict or capacity pressure; there is no expiry.
type RecordCache interface {
	Get(id uuid.UUID) (*models.File, bool)
	Put(id uuid.UUID, file *models.File)
	Evict(id uuid.UUID)
}
