package respond

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "plain", err: errors.New("article not found"), want: "article not found"},
		{
			name: "url dsn",
			err:  errors.New("dial tcp: postgres://app:s3cr3t@db:5432/content"),
			want: "dial tcp: postgres://app:****@db:5432/content",
		},
		{
			name: "wrapped url dsn",
			err:  fmt.Errorf("open database: %w", errors.New("postgres://app:p4ss@db/content")),
			want: "open database: postgres://app:****@db/content",
		},
		{
			name: "key value dsn",
			err:  errors.New("connect: host=db user=app password=hunter2 dbname=content"),
			want: "connect: host=db user=app password=**** dbname=content",
		},
		{
			name: "quoted key value",
			err:  errors.New("connect: PASSWORD = 'a b c' sslmode=disable"),
			want: "connect: PASSWORD = **** sslmode=disable",
		},
		{
			name: "json body",
			err:  errors.New(`bad payload {"user":"app","password":"x\"y"}`),
			want: `bad payload {"user":"app","password":"****"}`,
		},
		{
			name: "url without password untouched",
			err:  errors.New("GET http://example.com/articles failed"),
			want: "GET http://example.com/articles failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeError(tt.err))
		})
	}
}
