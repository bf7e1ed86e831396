// Package identifier produces collision-resistant identifiers for new
// records. Uniqueness within a single device's collections is the
// requirement, not secrecy.
package identifier

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

const suffixLen = 6

// New returns an identifier composed of the current Unix-millisecond
// timestamp and a short random suffix. The shape matches the ids in
// historically persisted records, so new and old rows interleave.
func New() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 10) + "-" + uuid.NewString()[:suffixLen]
}
