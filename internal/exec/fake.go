package exec

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// Call records one invocation made through a FakeRunner.
type Call struct {
	Dir  string
	Name string
	Args []string
}

// String returns the command line of the call ("name arg1 arg2").
func (c Call) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// FakeRunner is a Runner for tests. Responses are keyed by the full command
// line; unknown commands succeed with empty output.
type FakeRunner struct {
	mu        sync.Mutex
	Calls     []Call
	responses map[string]Result
	failures  map[string]error
	effects   map[string]func(dir string)
}

// NewFakeRunner creates an empty FakeRunner.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		responses: make(map[string]Result),
		failures:  make(map[string]error),
		effects:   make(map[string]func(dir string)),
	}
}

// On scripts the result for cmdline. A non-zero ExitCode makes Run return a
// *ProcessError.
func (f *FakeRunner) On(cmdline string, result Result) *FakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[cmdline] = result
	return f
}

// Fail makes cmdline fail to start with err (e.g. binary not found).
func (f *FakeRunner) Fail(cmdline string, err error) *FakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[cmdline] = err
	return f
}

// Effect registers fn to run in place of the real side effects of cmdline,
// such as a tool writing its config file. fn receives the call's directory.
func (f *FakeRunner) Effect(cmdline string, fn func(dir string)) *FakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.effects[cmdline] = fn
	return f
}

// Run records the call and returns the scripted response.
func (f *FakeRunner) Run(_ context.Context, dir, name string, args ...string) (Result, error) {
	call := Call{Dir: dir, Name: name, Args: append([]string(nil), args...)}

	f.mu.Lock()
	f.Calls = append(f.Calls, call)
	res, ok := f.responses[call.String()]
	failErr := f.failures[call.String()]
	effect := f.effects[call.String()]
	f.mu.Unlock()

	if failErr != nil {
		return Result{ExitCode: -1}, &ProcessError{Name: name, Args: args, ExitCode: -1, Err: failErr}
	}
	if effect != nil && res.ExitCode == 0 {
		effect(dir)
	}
	if !ok {
		return Result{}, nil
	}
	if res.ExitCode != 0 {
		return res, &ProcessError{
			Name:     name,
			Args:     args,
			ExitCode: res.ExitCode,
			Stdout:   res.Stdout,
			Stderr:   res.Stderr,
			Err:      errors.New("exit status"),
		}
	}
	return res, nil
}

// Ran reports whether cmdline was invoked.
func (f *FakeRunner) Ran(cmdline string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.Calls {
		if c.String() == cmdline {
			return true
		}
	}
	return false
}

// Commands returns the recorded command lines in call order.
func (f *FakeRunner) Commands() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.Calls))
	for _, c := range f.Calls {
		out = append(out, c.String())
	}
	return out
}
