package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"content-api/internal/domain/entity"
)

func TestClassify(t *testing.T) {
	already := entity.NotFound("get article", "article", "a1")

	tests := []struct {
		name string
		err  error
		want entity.ErrorKind
	}{
		{name: "unique violation", err: &pgconn.PgError{Code: "23505"}, want: entity.KindConflict},
		{name: "wrapped unique violation", err: fmt.Errorf("exec: %w", &pgconn.PgError{Code: "23505"}), want: entity.KindConflict},
		{name: "foreign key violation", err: &pgconn.PgError{Code: "23503"}, want: entity.KindInvalidReference},
		{name: "malformed uuid", err: &pgconn.PgError{Code: "22P02"}, want: entity.KindValidationFailed},
		{name: "other sqlstate", err: &pgconn.PgError{Code: "57014"}, want: entity.KindInternal},
		{name: "plain error", err: errors.New("broken pipe"), want: entity.KindInternal},
		{name: "context canceled", err: context.Canceled, want: entity.KindInternal},
		{name: "already classified", err: already, want: entity.KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify("op", "category", tt.err)
			if k := entity.KindOf(got); k != tt.want {
				t.Errorf("KindOf(classify()) = %v, want %v", k, tt.want)
			}
			if !errors.Is(got, tt.err) && got != tt.err {
				t.Errorf("classify() lost the cause %v", tt.err)
			}
		})
	}
}

func TestClassify_Nil(t *testing.T) {
	if err := classify("op", "article", nil); err != nil {
		t.Errorf("classify(nil) = %v, want nil", err)
	}
}

func TestClassify_ConflictMessage(t *testing.T) {
	err := classify("create category", "category", &pgconn.PgError{Code: "23505"})
	want := "create category: category with this name already exists"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestClassify_KeepsSerializationFailureReachable(t *testing.T) {
	err := classify("insert article", "article", &pgconn.PgError{Code: "40001"})

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "40001" {
		t.Errorf("serialization failure not reachable through %v", err)
	}
}
