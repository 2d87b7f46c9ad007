package leads

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const leadIDSuffixLen = 9

// NewLeadID builds a human-legible id: LEAD-<unix millis>-<9 upper-case alphanumerics>.
// Uniqueness is best effort; the suffix carries 36 random bits.
func NewLeadID(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return fmt.Sprintf("LEAD-%d-%s", now.UnixMilli(), suffix[:leadIDSuffixLen])
}
