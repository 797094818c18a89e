package migrate_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/angelmondragon/reviewhub-backend/pkg/migrate"
)

func readMigration(t *testing.T, suffix string) string {
	t.Helper()
	matches, err := fs.Glob(migrate.Embedded, "migrations/*_"+suffix+".sql")
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no %s migration file found", suffix)
	}
	data, err := fs.ReadFile(migrate.Embedded, matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}

func assertContains(t *testing.T, content string, checks []string) {
	t.Helper()
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestSubmissionsMigrationCascadesEntities(t *testing.T) {
	content := readMigration(t, "create_submissions")
	assertContains(t, content, []string{
		"CREATE TABLE IF NOT EXISTS submissions",
		"status text NOT NULL DEFAULT 'pending'",
		"CONSTRAINT users_email_key UNIQUE (email)",
		"CREATE TABLE IF NOT EXISTS images",
		"CREATE TABLE IF NOT EXISTS videos",
		"CREATE TABLE IF NOT EXISTS audio_files",
		"CREATE TABLE IF NOT EXISTS web_data",
		"FOREIGN KEY (submission_id) REFERENCES submissions(id) ON DELETE CASCADE",
		"DROP TABLE IF EXISTS submissions",
	})
	if n := strings.Count(content, "REFERENCES submissions(id) ON DELETE CASCADE"); n != 4 {
		t.Fatalf("expected 4 cascading entity FKs, got %d", n)
	}
}

func TestValidationQueueMigrationUsesCompositeKey(t *testing.T) {
	assertContains(t, readMigration(t, "create_validation_queue"), []string{
		"CREATE TABLE IF NOT EXISTS validation_queue",
		"PRIMARY KEY (submission_id, admin_email)",
		"'pending', 'in_progress', 'completed', 'cancelled'",
	})
}

func TestNotificationsMigrationCreatesIndexesAndTrigger(t *testing.T) {
	assertContains(t, readMigration(t, "create_notifications"), []string{
		"CREATE TABLE IF NOT EXISTS notifications",
		"CREATE INDEX IF NOT EXISTS idx_notifications_recipient_created",
		"CREATE INDEX IF NOT EXISTS idx_notifications_recipient_unread",
		"CREATE TRIGGER trg_notifications_updated_at",
		"EXECUTE FUNCTION set_updated_at()",
		"DROP TABLE IF EXISTS notifications",
	})
}

func TestCommentsAndHistoryMigrations(t *testing.T) {
	assertContains(t, readMigration(t, "create_submission_comments"), []string{
		"CREATE TABLE IF NOT EXISTS submission_comments",
		"REFERENCES submission_comments(id) ON DELETE CASCADE",
	})
	assertContains(t, readMigration(t, "create_submission_status_history"), []string{
		"CREATE TABLE IF NOT EXISTS submission_status_history",
		"REFERENCES submissions(id) ON DELETE CASCADE",
	})
}

func TestValidateEmbedded(t *testing.T) {
	if err := migrate.ValidateDir(""); err != nil {
		t.Fatalf("embedded migrations invalid: %v", err)
	}
}

func TestValidateDirRejectsBadNames(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "init.sql"), []byte("-- +goose Up\n-- +goose Down\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := migrate.ValidateDir(dir); err == nil {
		t.Fatal("expected invalid filename error")
	}
}

func TestCreateSQLMigrationWritesTemplate(t *testing.T) {
	dir := t.TempDir()
	path, err := migrate.CreateSQLMigration(dir, "Add Review Tags!")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !strings.HasSuffix(path, "_add_review_tags.sql") {
		t.Fatalf("unexpected filename %s", path)
	}
	if err := migrate.ValidateDir(dir); err != nil {
		t.Fatalf("created migration should validate: %v", err)
	}
}

func TestValidateDirRejectsDownBeforeUp(t *testing.T) {
	dir := t.TempDir()
	body := []byte("-- +goose Down\nDROP TABLE x;\n-- +goose Up\nCREATE TABLE x();\n")
	if err := os.WriteFile(filepath.Join(dir, "20260101000000_swap.sql"), body, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := migrate.ValidateDir(dir); err == nil || !strings.Contains(err.Error(), "must come before") {
		t.Fatalf("expected ordering error, got %v", err)
	}
}
