package ani

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrMalformed matches every *FormatError through errors.Is.
var ErrMalformed = errors.New("malformed ani")

type ErrorKind int

const (
	ERROR_TRUNCATED ErrorKind = iota
	ERROR_BAD_SIGNATURE
	ERROR_DATA_SIZE
	ERROR_NON_ZERO_PADDING
	ERROR_BAD_RESERVED
	ERROR_NODE_INDEX_MISMATCH
	ERROR_MISSING_NAME
	ERROR_BAD_NODE_TYPE
	ERROR_UNSUPPORTED_FRAME_FORMAT
)

var errorKindNames = map[ErrorKind]string{
	ERROR_TRUNCATED:                "truncated",
	ERROR_BAD_SIGNATURE:            "bad signature",
	ERROR_DATA_SIZE:                "data size exceeds stream",
	ERROR_NON_ZERO_PADDING:         "non-zero padding",
	ERROR_BAD_RESERVED:             "bad reserved field",
	ERROR_NODE_INDEX_MISMATCH:      "node index mismatch",
	ERROR_MISSING_NAME:             "missing node name",
	ERROR_BAD_NODE_TYPE:            "unknown node type",
	ERROR_UNSUPPORTED_FRAME_FORMAT: "unsupported frame format",
}

func (k ErrorKind) String() string {
	if s, ok := errorKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// FormatError reports which structural rule of the container was violated and where.
type FormatError struct {
	Kind   ErrorKind
	Offset int
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ani: %v at 0x%x: %v", e.Kind, e.Offset, e.Err)
	}
	return fmt.Sprintf("ani: %v at 0x%x", e.Kind, e.Offset)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

func (e *FormatError) Is(target error) bool {
	return target == ErrMalformed
}

func malformed(kind ErrorKind, offset int, err error) error {
	return &FormatError{Kind: kind, Offset: offset, Err: err}
}

func malformedf(kind ErrorKind, offset int, format string, args ...interface{}) error {
	return &FormatError{Kind: kind, Offset: offset, Err: errors.Errorf(format, args...)}
}

// KindOf returns the kind of the first FormatError in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var fe *FormatError
	if errors.As(err, &fe) {
		return fe.Kind, true
	}
	return 0, false
}
