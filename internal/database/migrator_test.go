package database

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/jackc/pgx/v5/pgconn"
)

type recordingExecer struct {
	statements []string
	failOn     string
}

func (r *recordingExecer) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	if r.failOn != "" && strings.Contains(sql, r.failOn) {
		return pgconn.CommandTag{}, errors.New("boom")
	}
	r.statements = append(r.statements, sql)
	return pgconn.CommandTag{}, nil
}

func files() fstest.MapFS {
	return fstest.MapFS{
		"002_labels.sql":  {Data: []byte("CREATE TABLE type();")},
		"001_clients.sql": {Data: []byte("CREATE TABLE clients();")},
		"999_reset.sql":   {Data: []byte("DROP TABLE clients;")},
		"README.md":       {Data: []byte("docs")},
	}
}

func TestPendingOrderAndSkips(t *testing.T) {
	m := NewMigrator(&recordingExecer{}, files(), func(context.Context) (map[string]bool, error) {
		return map[string]bool{"001_clients.sql": true}, nil
	})
	got, err := m.Pending(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, []string{"002_labels.sql"}) {
		t.Fatalf("pending = %v", got)
	}
}

func TestRunMigrations(t *testing.T) {
	exec := &recordingExecer{}
	m := NewMigrator(exec, files(), func(context.Context) (map[string]bool, error) {
		return map[string]bool{}, nil
	})
	if err := m.RunMigrations(context.Background()); err != nil {
		t.Fatal(err)
	}
	// tracking table, then two files each followed by its record insert
	if len(exec.statements) != 5 {
		t.Fatalf("got %d statements: %v", len(exec.statements), exec.statements)
	}
	if exec.statements[1] != "CREATE TABLE clients();" || exec.statements[3] != "CREATE TABLE type();" {
		t.Fatalf("unexpected order: %v", exec.statements)
	}
}

func TestRunMigrationsStopsOnFailure(t *testing.T) {
	exec := &recordingExecer{failOn: "clients"}
	m := NewMigrator(exec, files(), func(context.Context) (map[string]bool, error) {
		return map[string]bool{}, nil
	})
	err := m.RunMigrations(context.Background())
	if err == nil || !strings.Contains(err.Error(), "001_clients.sql") {
		t.Fatalf("expected failure naming the file, got %v", err)
	}
}
