package profiles

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/salaysay-tracker/backend/internal/common"
	"github.com/salaysay-tracker/backend/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestGetByID_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	created := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

	q := regexp.MustCompile(`SELECT id, email, COALESCE\(full_name, ''\), COALESCE\(avatar_url, ''\), created_at\s+FROM profiles\s+WHERE id = \$1`)
	rows := sqlmock.NewRows([]string{"id", "email", "full_name", "avatar_url", "created_at"}).
		AddRow("u1", "juan@neu.edu.ph", "Juan", "https://p/x.png", created)

	mock.ExpectQuery(q.String()).WithArgs("u1").WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Email != "juan@neu.edu.ph" || got.FullName != "Juan" {
		t.Fatalf("unexpected profile: %+v", got)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := regexp.MustCompile(`SELECT id, email, .* FROM profiles\s+WHERE id = \$1`)
	mock.ExpectQuery(q.String()).WithArgs("ghost").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "ghost")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestUpsert_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := regexp.MustCompile(`INSERT INTO profiles .* ON CONFLICT \(id\)\s+DO UPDATE SET full_name = EXCLUDED\.full_name, avatar_url = EXCLUDED\.avatar_url`)
	mock.ExpectExec(q.String()).
		WithArgs("u1", "juan@neu.edu.ph", "Juan", "").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Upsert(context.Background(), &models.Profile{
		ID: "u1", Email: "juan@neu.edu.ph", FullName: "Juan",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpsert_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := regexp.MustCompile(`INSERT INTO profiles`)
	mock.ExpectExec(q.String()).
		WithArgs("u1", "juan@neu.edu.ph", "", "").
		WillReturnError(errors.New("db is down"))

	err := repo.Upsert(context.Background(), &models.Profile{ID: "u1", Email: "juan@neu.edu.ph"})
	if err == nil || !regexp.MustCompile(`db error: .*db is down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}
