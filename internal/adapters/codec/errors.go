package codec

import (
	"errors"
	"fmt"
)

// Sentinel kinds for codec errors.
var (
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrDecode            = errors.New("decode cohort failed")
	ErrInvalidCohort     = errors.New("invalid cohort")
	ErrEncode            = errors.New("encode report failed")
)

// wrap tags err with the operation that failed and a sentinel kind, so callers
// can match the kind with errors.Is and still see the cause.
func wrap(op string, kind, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", op, kind, err)
}
