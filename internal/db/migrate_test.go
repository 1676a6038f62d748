package db

import (
	"testing"
	"testing/fstest"
)

func TestLoadMigrations_SortsByVersion(t *testing.T) {
	fsys := fstest.MapFS{
		"migrations/002_settings.sql": {Data: []byte("SELECT 2;")},
		"migrations/001_init.sql":     {Data: []byte("SELECT 1;")},
		"migrations/README.md":        {Data: []byte("ignored")},
	}

	got, err := loadMigrations(fsys)
	if err != nil {
		t.Fatalf("loadMigrations: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].version != 1 || got[1].version != 2 {
		t.Errorf("versions = %d,%d, want 1,2", got[0].version, got[1].version)
	}
}

func TestLoadMigrations_Rejects(t *testing.T) {
	tests := []struct {
		name string
		fsys fstest.MapFS
	}{
		{"no prefix", fstest.MapFS{"migrations/init.sql": {Data: []byte("x")}}},
		{"bad prefix", fstest.MapFS{"migrations/abc_init.sql": {Data: []byte("x")}}},
		{"duplicate", fstest.MapFS{
			"migrations/001_a.sql": {Data: []byte("x")},
			"migrations/001_b.sql": {Data: []byte("y")},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := loadMigrations(tt.fsys); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestEmbeddedMigrations_Load(t *testing.T) {
	got, err := loadMigrations(migrationFiles)
	if err != nil {
		t.Fatalf("loadMigrations: %v", err)
	}
	if len(got) == 0 || got[0].version != 1 {
		t.Fatalf("expected embedded migrations starting at version 1, got %+v", got)
	}
}
