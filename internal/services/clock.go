package services

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

func NewSystemClock() Clock {
	return SystemClock{}
}

const idSuffixLen = 9

// newID returns "<unix millis>-<random hex>". Uniqueness is probabilistic,
// which is enough for a single local store.
func newID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:idSuffixLen]
	return strconv.FormatInt(now.UnixMilli(), 10) + "-" + suffix
}

const dateLayout = "2006-01-02"
