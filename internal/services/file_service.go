// Package services
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"iter"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/portbound/go-filedb/internal/models"
	"github.com/portbound/go-filedb/internal/repositories"
)

// FileService exposes create/read/update/delete over stored files,
// backed by a FileRepository with a read-through cache in front of the
// per-id lookups. The full-collection read is deliberately uncached so
// listings never go stale after writes.
type FileService struct {
	db    repositories.FileRepository
	cache repositories.RecordCache
}

func NewFileService(fileRepo repositories.FileRepository, cache repositories.RecordCache) *FileService {
	return &FileService{db: fileRepo, cache: cache}
}

// CleanFileName reduces a client-supplied filename to its final path
// segment so directory components never influence the stored name.
// Backslashes count as separators. Cleaning an already-clean name
// returns it unchanged.
func CleanFileName(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: filename is required", ErrInvalidInput)
	}

	cleaned := path.Base(strings.ReplaceAll(name, `\`, "/"))
	if cleaned == "/" || cleaned == "." || cleaned == ".." {
		return "", fmt.Errorf("%w: filename %q has no usable name segment", ErrInvalidInput, name)
	}
	return cleaned, nil
}

// Store persists a new file and returns the record with its assigned
// id. The write is not retried.
func (fs *FileService) Store(ctx context.Context, name string, contentType string, data []byte) (*models.File, error) {
	cleaned, err := CleanFileName(name)
	if err != nil {
		return nil, fmt.Errorf("services.Store: %w", err)
	}

	saved, err := fs.db.Save(ctx, &models.File{Name: cleaned, Type: contentType, Data: data})
	if err != nil {
		return nil, fmt.Errorf("services.Store: %w: could not store file %s: %v", ErrStorageFailure, cleaned, err)
	}
	return saved, nil
}

// GetFile returns the record for id, consulting the cache before the
// repository and populating it on a miss.
func (fs *FileService) GetFile(ctx context.Context, id uuid.UUID) (*models.File, error) {
	if file, ok := fs.cache.Get(id); ok {
		return file, nil
	}

	file, err := fs.db.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("services.GetFile: %w: file not found with id %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("services.GetFile: failed to get file for id '%s': %w", id, err)
	}

	fs.cache.Put(id, file)
	return file, nil
}

// GetAllFiles reads a snapshot of the store and returns it as a lazy
// one-shot sequence.
func (fs *FileService) GetAllFiles(ctx context.Context) (iter.Seq[*models.File], error) {
	files, err := fs.db.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("services.GetAllFiles: failed to get files from DB: %w", err)
	}

	return func(yield func(*models.File) bool) {
		for _, file := range files {
			if !yield(file) {
				return
			}
		}
	}, nil
}

// UpdateFile replaces name, type, and data for an existing record,
// keeping its id. The cache entry is evicted after the successful
// write so the next read reflects the update; on a failed write the
// prior record stays cached and remains authoritative.
func (fs *FileService) UpdateFile(ctx context.Context, id uuid.UUID, name string, contentType string, data []byte) (*models.File, error) {
	existing, err := fs.GetFile(ctx, id)
	if err != nil {
		return nil, err
	}

	cleaned, err := CleanFileName(name)
	if err != nil {
		return nil, fmt.Errorf("services.UpdateFile: %w", err)
	}

	updated := *existing
	updated.Name = cleaned
	updated.Type = contentType
	updated.Data = data

	if err := fs.db.Update(ctx, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			fs.cache.Evict(id)
			return nil, fmt.Errorf("services.UpdateFile: %w: file not found with id %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("services.UpdateFile: %w: could not update file with id %s: %v", ErrStorageFailure, id, err)
	}

	fs.cache.Evict(id)
	return &updated, nil
}

// DeleteFile removes the record for id. The cache entry is evicted
// before the delete hits the store.
func (fs *FileService) DeleteFile(ctx context.Context, id uuid.UUID) error {
	if _, err := fs.GetFile(ctx, id); err != nil {
		return err
	}

	fs.cache.Evict(id)
	if err := fs.db.Delete(ctx, id); err != nil {
		return fmt.Errorf("services.DeleteFile: %w: could not delete file with id %s: %v", ErrDeletionFailure, id, err)
	}
	return nil
}
