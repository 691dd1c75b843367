package pagination

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestListTrace_Done(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	before := testutil.ToFloat64(listRequests.WithLabelValues("trace-ok", "200", "11-50"))

	tr := StartList(context.Background(), logger, "trace-ok", Params{Page: 12, Limit: 5})
	tr.Done(NewMetadata(100, 12, 5), 5)

	if got := testutil.ToFloat64(listRequests.WithLabelValues("trace-ok", "200", "11-50")); got != before+1 {
		t.Errorf("requests counter = %v, want %v", got, before+1)
	}
	if n := testutil.CollectAndCount(listDuration, "content_list_duration_seconds"); n == 0 {
		t.Error("expected a duration observation")
	}
	out := buf.String()
	for _, want := range []string{`"msg":"list requested"`, `"msg":"list served"`, `"total":100`, `"returned":5`} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %s:\n%s", want, out)
		}
	}
}

func TestListTrace_Fail(t *testing.T) {
	tests := []struct {
		status int
		level  string
	}{
		{400, `"level":"WARN"`},
		{500, `"level":"ERROR"`},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		logger := slog.New(slog.NewJSONHandler(&buf, nil))
		before := testutil.ToFloat64(listRequests.WithLabelValues("trace-fail", strconv.Itoa(tt.status), "1-10"))

		StartList(context.Background(), logger, "trace-fail", Params{Page: 1, Limit: 10}).
			Fail(tt.status, errors.New("boom"))

		if got := testutil.ToFloat64(listRequests.WithLabelValues("trace-fail", strconv.Itoa(tt.status), "1-10")); got != before+1 {
			t.Errorf("status %d: counter = %v, want %v", tt.status, got, before+1)
		}
		if !strings.Contains(buf.String(), tt.level) || !strings.Contains(buf.String(), `"error":"boom"`) {
			t.Errorf("status %d: unexpected log %s", tt.status, buf.String())
		}
	}
}

func TestPageRange(t *testing.T) {
	tests := map[int]string{1: "1-10", 10: "1-10", 11: "11-50", 50: "11-50", 51: "51-100", 100: "51-100", 101: "100+"}
	for page, want := range tests {
		if got := pageRange(page); got != want {
			t.Errorf("pageRange(%d) = %q, want %q", page, got, want)
		}
	}
}
