package job

import (
	"math/rand/v2"
	"strconv"

	"podowl/internal/pkg/errs"
)

const (
	// CodeMin is the smallest confirmation code.
	CodeMin Code = 1000
	// CodeMax is the largest confirmation code.
	CodeMax Code = 9999
)

// Code is the 4-digit confirmation code of a job.
type Code int

// NewCode validates a stored or user supplied code.
func NewCode(value int) (Code, error) {
	if value < int(CodeMin) || value > int(CodeMax) {
		return 0, errs.NewValueIsOutOfRangeError("code", value, int(CodeMin), int(CodeMax))
	}
	return Code(value), nil
}

// NewRandomCode draws a code uniformly from [CodeMin, CodeMax].
func NewRandomCode() Code {
	return CodeMin + Code(rand.IntN(int(CodeMax-CodeMin+1))) //nolint:gosec // not a secret
}

func (c Code) Validate() error {
	_, err := NewCode(int(c))
	return err
}

func (c Code) Int() int {
	return int(c)
}

func (c Code) String() string {
	return strconv.Itoa(int(c))
}
