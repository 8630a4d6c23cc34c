package migrate

import "fmt"

// Kind tags how a step finished.
type Kind int

const (
	Continue            Kind = iota // step succeeded, run the next one
	ContinueWithWarning             // step failed softly; record Message and go on
	Stop                            // clean early end: nothing to do, dry run, or the user declined
	Abort                           // unrecoverable failure; Err is returned from Run
)

func (k Kind) String() string {
	switch k {
	case Continue:
		return "continue"
	case ContinueWithWarning:
		return "warning"
	case Stop:
		return "stop"
	case Abort:
		return "abort"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Outcome is the result of one step.
type Outcome struct {
	Kind    Kind
	Message string
	Err     error
}

func proceed() Outcome {
	return Outcome{Kind: Continue}
}

func warn(format string, args ...any) Outcome {
	return Outcome{Kind: ContinueWithWarning, Message: fmt.Sprintf(format, args...)}
}

func stop(reason string) Outcome {
	return Outcome{Kind: Stop, Message: reason}
}

func abort(err error) Outcome {
	return Outcome{Kind: Abort, Message: err.Error(), Err: err}
}
