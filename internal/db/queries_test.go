package db

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"

	"github.com/themobileprof/rantrack-be/internal/symptoms"
)

const testUserID = "11111111-1111-1111-1111-111111111111"

func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })
	return &DB{sqlDB}, mock
}

func TestCreateUser(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(sqlmock.Sqlmock)
		wantErr   error
	}{
		{
			name: "created",
			setupMock: func(m sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
					AddRow(testUserID, time.Now(), time.Now())
				m.ExpectQuery(`INSERT INTO users`).
					WithArgs("jane@example.com", "hash", nil).
					WillReturnRows(rows)
			},
		},
		{
			name: "duplicate email",
			setupMock: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(`INSERT INTO users`).
					WithArgs("jane@example.com", "hash", nil).
					WillReturnError(&pq.Error{Code: "23505"})
			},
			wantErr: ErrAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			tt.setupMock(mock)

			user := &User{Email: "  Jane@Example.com", PasswordHash: "hash"}
			err := db.CreateUser(context.Background(), user)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("CreateUser() error = %v, want %v", err, tt.wantErr)
			}
			if err == nil && user.ID != testUserID {
				t.Errorf("user.ID = %q", user.ID)
			}
			if user.Email != "jane@example.com" {
				t.Errorf("email not normalized: %q", user.Email)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("unmet expectations: %v", err)
			}
		})
	}
}

func TestGetUserByEmail(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(sqlmock.Sqlmock)
		wantErr   error
	}{
		{
			name: "found",
			setupMock: func(m sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "email", "password_hash", "display_name", "created_at", "updated_at"}).
					AddRow(testUserID, "jane@example.com", "hash", "Jane", time.Now(), time.Now())
				m.ExpectQuery(`SELECT id, email`).WithArgs("jane@example.com").WillReturnRows(rows)
			},
		},
		{
			name: "not found",
			setupMock: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(`SELECT id, email`).WithArgs("jane@example.com").WillReturnError(sql.ErrNoRows)
			},
			wantErr: ErrNotFound,
		},
		{
			name: "connection error",
			setupMock: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(`SELECT id, email`).WithArgs("jane@example.com").WillReturnError(sql.ErrConnDone)
			},
			wantErr: sql.ErrConnDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			tt.setupMock(mock)

			user, err := db.GetUserByEmail(context.Background(), "JANE@example.com")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("GetUserByEmail() error = %v, want %v", err, tt.wantErr)
			}
			if err == nil && (user.Name == nil || *user.Name != "Jane") {
				t.Errorf("user = %+v", user)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("unmet expectations: %v", err)
			}
		})
	}
}

func TestFindOrCreateUserByEmail(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT id, email`).WithArgs("new@example.com").WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("new@example.com", "", nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(testUserID, time.Now(), time.Now()))

	user, created, err := db.FindOrCreateUserByEmail(context.Background(), "new@example.com", nil)
	if err != nil {
		t.Fatalf("FindOrCreateUserByEmail() error = %v", err)
	}
	if !created || user.ID != testUserID {
		t.Errorf("user = %+v, created = %v", user, created)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetCustomLemmas(t *testing.T) {
	db, mock := newMockDB(t)

	rows := sqlmock.NewRows([]string{"word", "category"}).
		AddRow("zonked", "fatigue").
		AddRow("brain static", "brain_fog")
	mock.ExpectQuery(`SELECT word, category FROM custom_lemmas`).WithArgs(testUserID).WillReturnRows(rows)

	got, err := db.GetCustomLemmas(context.Background(), testUserID)
	if err != nil {
		t.Fatalf("GetCustomLemmas() error = %v", err)
	}
	if len(got) != 2 || got["zonked"] != "fatigue" || got["brain static"] != "brain_fog" {
		t.Errorf("GetCustomLemmas() = %v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpsertAndDeleteCustomLemma(t *testing.T) {
	db, mock := newMockDB(t)
	ctx := context.Background()

	mock.ExpectExec(`INSERT INTO custom_lemmas`).
		WithArgs(testUserID, "zonked", "fatigue").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM custom_lemmas`).
		WithArgs(testUserID, "zonked").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM custom_lemmas`).
		WithArgs(testUserID, "zonked").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := db.UpsertCustomLemma(ctx, testUserID, "zonked", "fatigue"); err != nil {
		t.Fatalf("UpsertCustomLemma() error = %v", err)
	}
	if err := db.DeleteCustomLemma(ctx, testUserID, "zonked"); err != nil {
		t.Fatalf("DeleteCustomLemma() error = %v", err)
	}
	if err := db.DeleteCustomLemma(ctx, testUserID, "zonked"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteCustomLemma() error = %v, want ErrNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

var entryRowColumns = []string{"id", "user_id", "text", "source", "result", "categories", "repeat_previous", "created_at"}

func TestSaveEntry(t *testing.T) {
	db, mock := newMockDB(t)

	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`INSERT INTO entries`).
		WithArgs(sqlmock.AnyArg(), testUserID, "so tired", SourceRant, sqlmock.AnyArg(), sqlmock.AnyArg(), false).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))

	entry := &Entry{
		UserID: testUserID,
		Text:   "so tired",
		Result: symptoms.ExtractionResult{
			Text:     "so tired",
			Symptoms: []symptoms.ExtractedSymptom{{Category: "fatigue", MatchedText: "tired", Method: symptoms.MethodLemma}},
		},
	}
	if err := db.SaveEntry(context.Background(), entry); err != nil {
		t.Fatalf("SaveEntry() error = %v", err)
	}
	if len(entry.ID) != 36 {
		t.Errorf("entry.ID = %q, want a uuid", entry.ID)
	}
	if !entry.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v", entry.CreatedAt)
	}
	if len(entry.Categories) != 1 || entry.Categories[0] != "fatigue" {
		t.Errorf("Categories = %v, want derived from result", entry.Categories)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetEntry(t *testing.T) {
	result := `{"text":"so tired","symptoms":[{"category":"fatigue","matchedText":"tired","method":"lemma","confidence":0.8}]}`

	tests := []struct {
		name      string
		setupMock func(sqlmock.Sqlmock)
		wantErr   error
	}{
		{
			name: "found",
			setupMock: func(m sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(entryRowColumns).
					AddRow("e1", testUserID, "so tired", SourceRant, []byte(result), "{fatigue}", false, time.Now())
				m.ExpectQuery(`SELECT id, user_id, text`).WithArgs("e1", testUserID).WillReturnRows(rows)
			},
		},
		{
			name: "other user's entry",
			setupMock: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(`SELECT id, user_id, text`).WithArgs("e1", testUserID).WillReturnError(sql.ErrNoRows)
			},
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			tt.setupMock(mock)

			entry, err := db.GetEntry(context.Background(), testUserID, "e1")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("GetEntry() error = %v, want %v", err, tt.wantErr)
			}
			if err == nil {
				if len(entry.Categories) != 1 || entry.Categories[0] != "fatigue" {
					t.Errorf("Categories = %v", entry.Categories)
				}
				s, ok := entry.Result.Find("fatigue")
				if !ok || s.Confidence != 0.8 {
					t.Errorf("Result = %+v", entry.Result)
				}
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("unmet expectations: %v", err)
			}
		})
	}
}

func TestListEntries(t *testing.T) {
	db, mock := newMockDB(t)

	rows := sqlmock.NewRows(entryRowColumns).
		AddRow("e2", testUserID, "same as yesterday", SourceRepeat, []byte(`{"text":"same as yesterday","symptoms":[]}`), "{}", true, time.Now()).
		AddRow("e1", testUserID, "so tired", SourceRant, []byte(`{"text":"so tired","symptoms":[]}`), "{fatigue}", false, time.Now())
	mock.ExpectQuery(`SELECT id, user_id, text`).WithArgs(testUserID, maxListLimit).WillReturnRows(rows)

	entries, err := db.ListEntries(context.Background(), testUserID, 0)
	if err != nil {
		t.Fatalf("ListEntries() error = %v", err)
	}
	if len(entries) != 2 || entries[0].ID != "e2" || !entries[0].RepeatPrevious {
		t.Errorf("entries = %+v", entries)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDeleteEntry(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(`DELETE FROM entries`).WithArgs("e1", testUserID).WillReturnResult(sqlmock.NewResult(0, 0))

	if err := db.DeleteEntry(context.Background(), testUserID, "e1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteEntry() error = %v, want ErrNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetSymptomCounts(t *testing.T) {
	db, mock := newMockDB(t)

	since := time.Now().Add(-7 * 24 * time.Hour)
	rows := sqlmock.NewRows([]string{"category", "severity", "count"}).
		AddRow("fatigue", "moderate", 4).
		AddRow("headache", "", 1)
	mock.ExpectQuery(`jsonb_array_elements`).WithArgs(testUserID, since).WillReturnRows(rows)

	counts, err := db.GetSymptomCounts(context.Background(), testUserID, since)
	if err != nil {
		t.Fatalf("GetSymptomCounts() error = %v", err)
	}
	if len(counts) != 2 || counts[0] != (SymptomCount{Category: "fatigue", Severity: "moderate", Count: 4}) {
		t.Errorf("counts = %+v", counts)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestConfigDSN(t *testing.T) {
	cfg := Config{Host: "localhost", Port: 5432, User: "rant", Password: "pw", Database: "rantrack"}
	want := "host=localhost port=5432 user=rant password=pw dbname=rantrack sslmode=disable"
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}
