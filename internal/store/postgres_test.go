package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/wilsonhazen/bidroom/internal/model"
	"github.com/wilsonhazen/bidroom/internal/testutil"
)

func newPostgresWithMock(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresStore(db), mock
}

func TestPostgresGetContractorMissingReturnsNil(t *testing.T) {
	st, mock := newPostgresWithMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT doc FROM contractors WHERE id = $1")).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	got, err := st.GetContractor(context.Background(), "missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil contractor, got %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPostgresGetContractorDecodesDocument(t *testing.T) {
	st, mock := newPostgresWithMock(t)
	want := testutil.NewContractorFixture().WithID("c1").Build()
	doc, _ := json.Marshal(want)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT doc FROM contractors WHERE id = $1")).
		WithArgs("c1").
		WillReturnRows(sqlmock.NewRows([]string{"doc"}).AddRow(doc))

	got, err := st.GetContractor(context.Background(), "c1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || got.ID != "c1" || got.Rating != want.Rating || len(got.Verifications) != 2 {
		t.Fatalf("unexpected contractor: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPostgresUpsertContractor(t *testing.T) {
	st, mock := newPostgresWithMock(t)
	c := testutil.NewContractorFixture().WithID("c1").Build()
	c.UpdatedAt = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	mock.ExpectExec("INSERT INTO contractors").
		WithArgs("c1", "Plumbing", sqlmock.AnyArg(), c.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := st.UpsertContractor(context.Background(), c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPostgresUpsertContractorWrapsError(t *testing.T) {
	st, mock := newPostgresWithMock(t)
	boom := errors.New("connection reset")

	mock.ExpectExec("INSERT INTO contractors").WillReturnError(boom)

	err := st.UpsertContractor(context.Background(), testutil.NewContractorFixture().Build())
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestPostgresListContractorsWithLimit(t *testing.T) {
	st, mock := newPostgresWithMock(t)
	a, _ := json.Marshal(model.Contractor{ID: "a", Name: "A"})
	b, _ := json.Marshal(model.Contractor{ID: "b", Name: "B"})

	mock.ExpectQuery(regexp.QuoteMeta("SELECT doc FROM contractors ORDER BY id LIMIT $1")).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"doc"}).AddRow(a).AddRow(b))

	got, err := st.ListContractors(context.Background(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "b" {
		t.Fatalf("unexpected contractors: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPostgresSnapshotRoundTrip(t *testing.T) {
	st, mock := newPostgresWithMock(t)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	snap := testutil.NewSnapshotFixture("usr_1", now)
	doc, _ := json.Marshal(snap)

	mock.ExpectExec("INSERT INTO snapshots").
		WithArgs("usr_1", sqlmock.AnyArg(), now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT doc FROM snapshots WHERE owner_id = $1")).
		WithArgs("usr_1").
		WillReturnRows(sqlmock.NewRows([]string{"doc"}).AddRow(doc))

	if err := st.SaveSnapshot(context.Background(), snap); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := st.GetSnapshot(context.Background(), "usr_1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || len(got.Projects) != 1 || got.Projects[0].ID != "prj_1" {
		t.Fatalf("unexpected snapshot: %+v", got)
	}
	if !got.UpdatedAt.Equal(now) {
		t.Fatalf("updated_at = %v, want %v", got.UpdatedAt, now)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPostgresEnsureSchema(t *testing.T) {
	st, mock := newPostgresWithMock(t)
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS contractors").WillReturnResult(sqlmock.NewResult(0, 0))

	if err := st.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
