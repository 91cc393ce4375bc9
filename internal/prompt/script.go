package prompt

import "context"

// Script is a canned Prompter for tests: answers are consumed in order
// per capability. A nil error func means the zero value is returned when
// answers run out.
type Script struct {
	Confirms     []bool
	Choices      []int
	Texts        []string
	AppIDs       [][]string
	Asked        []string // every question, in order
	ExhaustedErr error    // returned when a queue is empty (default ErrUnattended)
}

func (s *Script) exhausted() error {
	if s.ExhaustedErr != nil {
		return s.ExhaustedErr
	}
	return ErrUnattended
}

func (s *Script) Confirm(_ context.Context, q string) (bool, error) {
	s.Asked = append(s.Asked, q)
	if len(s.Confirms) == 0 {
		return false, s.exhausted()
	}
	v := s.Confirms[0]
	s.Confirms = s.Confirms[1:]
	return v, nil
}

func (s *Script) ChooseOne(_ context.Context, q string, _ []string) (int, error) {
	s.Asked = append(s.Asked, q)
	if len(s.Choices) == 0 {
		return 0, s.exhausted()
	}
	v := s.Choices[0]
	s.Choices = s.Choices[1:]
	return v, nil
}

func (s *Script) InputText(_ context.Context, q string) (string, error) {
	s.Asked = append(s.Asked, q)
	if len(s.Texts) == 0 {
		return "", s.exhausted()
	}
	v := s.Texts[0]
	s.Texts = s.Texts[1:]
	return v, nil
}

func (s *Script) InputAppIDs(_ context.Context, q string) ([]string, error) {
	s.Asked = append(s.Asked, q)
	if len(s.AppIDs) == 0 {
		return nil, s.exhausted()
	}
	v := s.AppIDs[0]
	s.AppIDs = s.AppIDs[1:]
	return v, nil
}
