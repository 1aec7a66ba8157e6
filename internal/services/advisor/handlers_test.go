package advisor

import (
	"bytes"
	"log"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
)

func TestWriteJSONLogsEncodeFailure(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	rec := httptest.NewRecorder()
	writeJSON(rec, http.StatusOK, map[string]float64{"value": math.NaN()})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (header precedes the body)", rec.Code, http.StatusOK)
	}
	if !strings.Contains(buf.String(), "encode response") {
		t.Errorf("encode failure not logged, log output: %q", buf.String())
	}
}

func TestWriteJSONPlainValue(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	rec := httptest.NewRecorder()
	writeJSON(rec, http.StatusOK, map[string]string{"status": "ok"})

	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	if strings.Contains(buf.String(), "encode response") {
		t.Errorf("unexpected encode error logged: %q", buf.String())
	}
}
