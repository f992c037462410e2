package throw

import "github.com/pkg/errors"

// Threading errors through every local mesh operation would add a lot of noise
// to code whose failures are programming errors (a broken next cycle, a handle
// that points at a removed edge). Those sites panic with a FatalError instead,
// and the public API recovers to convert the panic to an error.

type FatalError struct {
	error
}

func (f FatalError) Cause() error { return f.error }

// Panic with a FatalError.
func Fatalf(format string, args ...interface{}) {
	panic(FatalError{errors.Errorf(format, args...)})
}

// HandlePanicRecover turns a recovered FatalError back into an error. Anything
// else is a real panic and is re-raised.
func HandlePanicRecover(r interface{}) error {
	if r != nil {
		if fatal, ok := r.(FatalError); ok {
			return fatal
		}
		panic(r)
	}
	return nil
}
