package identifier_test

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/taykof/vaultlog/internal/domain/identifier"
)

func TestNewShape(t *testing.T) {
	before := time.Now().UnixMilli()
	id := identifier.New()
	after := time.Now().UnixMilli()

	ts, suffix, ok := strings.Cut(id, "-")
	if !ok {
		t.Fatalf("identifier %q has no separator", id)
	}
	ms, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		t.Fatalf("identifier prefix %q is not a timestamp: %v", ts, err)
	}
	if ms < before || ms > after {
		t.Errorf("timestamp %d outside [%d, %d]", ms, before, after)
	}
	if len(suffix) != 6 {
		t.Errorf("suffix %q: want 6 characters, got %d", suffix, len(suffix))
	}
}

func TestNewUniqueness(t *testing.T) {
	const n = 1000
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		id := identifier.New()
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate identifier after %d draws: %q", i, id)
		}
		seen[id] = struct{}{}
	}
}
