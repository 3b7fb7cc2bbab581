// Package translator defines the translation service contract and its
// implementations. A service translates one opaque text unit at a time;
// metered services also expose their character quota and accept per-call
// glossaries.
package translator

import (
	"context"
	"errors"

	"github.com/valpere/peremd/internal/lang"
)

// MaxRequestChars caps unit text plus context per request; the service
// rejects larger request bodies. The unit's own length takes priority,
// context gets whatever headroom is left.
const MaxRequestChars = 12000

var (
	ErrQuotaExceeded  = errors.New("not enough translation quota remaining")
	ErrLimitReached   = errors.New("translation limit reached")
	ErrAuthentication = errors.New("authentication failed")
	ErrUnsupported    = errors.New("not supported by this service")
)

// Usage is a point-in-time snapshot of the account's character quota.
// Valid is false for services without metering (or when the account could
// not be queried); all other fields are then meaningless.
type Usage struct {
	Valid           bool
	Count           int64
	Limit           int64
	AnyLimitReached bool
}

// Remaining returns the characters left before the limit, never negative.
func (u Usage) Remaining() int64 {
	if !u.Valid {
		return 0
	}
	if r := u.Limit - u.Count; r > 0 {
		return r
	}
	return 0
}

// Request is one unit of translation work.
type Request struct {
	Text     string
	Pair     lang.Pair
	Glossary map[string]string
	Context  string
}

// Service is the translation oracle. Translate blocks until the service
// replies; both methods honor ctx cancellation through the underlying
// transport.
type Service interface {
	Name() string
	Translate(ctx context.Context, req Request) (string, error)
	Usage(ctx context.Context) (Usage, error)
}
