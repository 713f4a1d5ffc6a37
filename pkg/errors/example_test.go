package errors_test

import (
	"fmt"

	"github.com/matzehuels/stopover/pkg/errors"
)

func ExampleWrap() {
	cause := errors.ValidateAirportCode("bos")
	err := errors.Wrap(errors.ErrCodeInvalidRecord, cause, "line %d", 4)

	fmt.Println(errors.GetCode(err))
	fmt.Println(errors.UserMessage(err))
	// Output:
	// INVALID_RECORD
	// line 4: invalid airport code "bos" (want three upper-case letters)
}
