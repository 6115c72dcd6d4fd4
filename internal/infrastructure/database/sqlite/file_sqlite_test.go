package sqlite_test

import (
	"context"
	"database/sql"
	"reflect"
	"testing"

	"github.com/google/uuid"

	"github.com/portbound/go-filedb/internal/infrastructure/database/sqlite"
	"github.com/portbound/go-filedb/internal/models"
)

func TestFileRepository(t *testing.T) {
	db, err := sqlite.Open(":memory:")
	if err != nil {
		t.Fatalf("could not construct receiver type: %v", err)
	}
	defer db.Close()

	file := &models.File{
		Name: "test.txt",
		Type: "text/plain",
		Data: []byte("hello"),
	}

	t.Run("Save assigns an id", func(t *testing.T) {
		saved, err := db.Save(context.Background(), file)
		if err != nil {
			t.Fatalf("Save() failed: %v", err)
		}
		if saved.ID == uuid.Nil {
			t.Fatal("Save() did not assign an id")
		}
		file = saved
	})

	t.Run("Get", func(t *testing.T) {
		got, err := db.Get(context.Background(), file.ID)
		if err != nil {
			t.Fatalf("Get() failed: %v", err)
		}
		if !reflect.DeepEqual(got, file) {
			t.Errorf("Get() = %v, want %v", got, file)
		}
	})

	t.Run("Get missing row", func(t *testing.T) {
		_, err := db.Get(context.Background(), uuid.New())
		if err != sql.ErrNoRows {
			t.Fatalf("expected sql.ErrNoRows but got: %v", err)
		}
	})

	t.Run("GetAll", func(t *testing.T) {
		second, err := db.Save(context.Background(), &models.File{Name: "other.bin", Type: "application/octet-stream", Data: []byte{0x00}})
		if err != nil {
			t.Fatalf("Save() failed: %v", err)
		}

		got, err := db.GetAll(context.Background())
		if err != nil {
			t.Fatalf("GetAll() failed: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("GetAll() returned %d records, want 2", len(got))
		}

		if err := db.Delete(context.Background(), second.ID); err != nil {
			t.Fatalf("Delete() failed: %v", err)
		}
	})

	t.Run("Update", func(t *testing.T) {
		file.Name = "renamed.txt"
		file.Type = "text/markdown"
		file.Data = []byte("changed")

		if err := db.Update(context.Background(), file); err != nil {
			t.Fatalf("Update() failed: %v", err)
		}

		got, err := db.Get(context.Background(), file.ID)
		if err != nil {
			t.Fatalf("Get() after Update() failed: %v", err)
		}
		if !reflect.DeepEqual(got, file) {
			t.Errorf("Get() after Update() = %v, want %v", got, file)
		}
	})

	t.Run("Update missing row", func(t *testing.T) {
		missing := &models.File{ID: uuid.New(), Name: "ghost.txt"}
		if err := db.Update(context.Background(), missing); err != sql.ErrNoRows {
			t.Fatalf("expected sql.ErrNoRows but got: %v", err)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := db.Delete(context.Background(), file.ID); err != nil {
			t.Fatalf("Delete() failed: %v", err)
		}

		_, err := db.Get(context.Background(), file.ID)
		if err != sql.ErrNoRows {
			t.Fatalf("expected sql.ErrNoRows but got: %v", err)
		}
	})
}

func TestFileRepositoryEmptyPayload(t *testing.T) {
	db, err := sqlite.Open(":memory:")
	if err != nil {
		t.Fatalf("could not construct receiver type: %v", err)
	}
	defer db.Close()

	saved, err := db.Save(context.Background(), &models.File{Name: "empty.bin", Type: "", Data: []byte{}})
	if err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	got, err := db.Get(context.Background(), saved.ID)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if len(got.Data) != 0 {
		t.Errorf("Get() returned %d bytes, want 0", len(got.Data))
	}
	if got.Type != "" {
		t.Errorf("Get() returned type %q, want empty", got.Type)
	}
}
