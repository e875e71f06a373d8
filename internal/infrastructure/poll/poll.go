// Package poll provides bounded polling loops built on go-retry.
package poll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"

	remedyerrors "github.com/alexisbeaulieu97/failover-remedy/pkg/errors"
)

// Condition reports whether the awaited state has been reached. A non-nil
// error aborts the loop and is returned unchanged.
type Condition func(ctx context.Context) (bool, error)

var errNotYet = errors.New("condition not yet met")

// Until evaluates cond immediately and then every interval until it returns
// true, returns an error, ctx is done, or timeout elapses. A timeout <= 0
// means the loop is bounded only by ctx. Exhausting the timeout yields an
// error wrapping ErrTimeout; cancellation yields ctx.Err().
func Until(ctx context.Context, interval, timeout time.Duration, cond Condition) error {
	if interval <= 0 {
		interval = 250 * time.Millisecond
	}

	b := retry.NewConstant(interval)
	if timeout > 0 {
		b = retry.WithMaxDuration(timeout, b)
	}

	err := retry.Do(ctx, b, func(ctx context.Context) error {
		done, err := cond(ctx)
		if err != nil {
			return err
		}
		if !done {
			return retry.RetryableError(errNotYet)
		}
		return nil
	})

	if errors.Is(err, errNotYet) {
		return fmt.Errorf("%w after %s", remedyerrors.ErrTimeout, timeout)
	}
	return err
}
