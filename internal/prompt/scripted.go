package prompt

import "fmt"

// Defaults answers every question with its default. It backs --yes.
type Defaults struct{}

// Confirm implements Prompter.
func (Defaults) Confirm(_ string, def bool) (Answer[bool], error) {
	return Answered(def), nil
}

// Select implements Prompter.
func (Defaults) Select(message string, options []Option, def string) (Answer[string], error) {
	if IndexOf(options, def) >= 0 {
		return Answered(def), nil
	}
	if len(options) > 0 {
		return Answered(options[0].Value), nil
	}
	return Answer[string]{}, fmt.Errorf("%q: %w", message, ErrNoDefault)
}

// Text implements Prompter.
func (Defaults) Text(message, def string, validate Validator) (Answer[string], error) {
	if def == "" {
		return Answer[string]{}, fmt.Errorf("%q: %w", message, ErrNoDefault)
	}
	if validate != nil {
		if err := validate(def); err != nil {
			return Answer[string]{}, fmt.Errorf("%q: default %q: %w", message, def, err)
		}
	}
	return Answered(def), nil
}

// Scripted replays queued answers, for tests. Each prompt kind has its own
// queue; an exhausted queue falls back to the question's default. Every
// question asked is recorded in Asked.
type Scripted struct {
	Confirms []Answer[bool]
	Selects  []Answer[string]
	Texts    []Answer[string]
	Asked    []string
}

// Confirm implements Prompter.
func (s *Scripted) Confirm(message string, def bool) (Answer[bool], error) {
	s.Asked = append(s.Asked, message)
	if len(s.Confirms) == 0 {
		return Answered(def), nil
	}
	a := s.Confirms[0]
	s.Confirms = s.Confirms[1:]
	return a, nil
}

// Select implements Prompter.
func (s *Scripted) Select(message string, options []Option, def string) (Answer[string], error) {
	s.Asked = append(s.Asked, message)
	if len(s.Selects) == 0 {
		return Defaults{}.Select(message, options, def)
	}
	a := s.Selects[0]
	s.Selects = s.Selects[1:]
	if v, ok := a.Get(); ok && IndexOf(options, v) < 0 {
		return Answer[string]{}, fmt.Errorf("scripted answer %q is not an option of %q", v, message)
	}
	return a, nil
}

// Text implements Prompter. Scripted answers still go through validate.
func (s *Scripted) Text(message, def string, validate Validator) (Answer[string], error) {
	s.Asked = append(s.Asked, message)
	if len(s.Texts) == 0 {
		return Defaults{}.Text(message, def, validate)
	}
	a := s.Texts[0]
	s.Texts = s.Texts[1:]
	if v, ok := a.Get(); ok && validate != nil {
		if err := validate(v); err != nil {
			return Answer[string]{}, fmt.Errorf("scripted answer %q for %q: %w", v, message, err)
		}
	}
	return a, nil
}
