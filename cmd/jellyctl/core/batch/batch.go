package batch

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/jellyctl/jellyctl/pkg/apiclient"
)

// Batch runs an operation over several items and keeps going when one of
// them fails. The failures are reported at the end.
//
// An unreachable server or a rejected key would fail every following item
// as well, so they stop the batch instead.
type Batch struct {
	what   string
	total  int
	failed int
}

// New starts a batch over items of kind what ("users", "devices"...).
func New(what string) *Batch {
	return &Batch{what: what}
}

// fatal tells if err must stop the batch.
func fatal(err error) bool {
	var (
		transportErr *apiclient.TransportError
		authzErr     *apiclient.AuthorizationError
	)

	return errors.As(err, &transportErr) || errors.As(err, &authzErr)
}

// Do runs fn for item and logs its error, if any. A fatal error is returned
// unchanged and the caller must stop iterating.
func (b *Batch) Do(item string, fn func() error) error {
	b.total++

	err := fn()
	if err == nil {
		return nil
	}

	if fatal(err) {
		return err
	}

	b.failed++

	log.Errorf("%s: %s", item, err)

	return nil
}

func (b *Batch) Total() int {
	return b.total
}

func (b *Batch) Failed() int {
	return b.failed
}

// Err is non-nil when at least one item failed.
func (b *Batch) Err() error {
	if b.failed == 0 {
		return nil
	}

	return fmt.Errorf("%d of %d %s failed", b.failed, b.total, b.what)
}
