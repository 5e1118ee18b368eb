package screen

import (
	"sync"

	"currency-converter/internal/domain/model"
	"currency-converter/pkg/logger"
)

type ErrorPopup struct {
	Message    string `json:"message"`
	Cancelable bool   `json:"cancelable"`
}

type SharedText struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// State is what a client needs to draw the screen.
type State struct {
	Date          string      `json:"date"`
	Options       []string    `json:"options"`
	InputIndex    int         `json:"input_index"`
	OutputIndex   int         `json:"output_index"`
	Input         string      `json:"input"`
	Output        string      `json:"output"`
	Result        string      `json:"result,omitempty"`
	ResultVisible bool        `json:"result_visible"`
	Loading       bool        `json:"loading"`
	Error         *ErrorPopup `json:"error,omitempty"`
	Shared        *SharedText `json:"shared,omitempty"`
	Version       uint64      `json:"version"`
}

// Screen keeps the last rendered state so other goroutines can read it.
// It implements ports.Display and ports.Sharer.
type Screen struct {
	mutex sync.RWMutex
	state State
	log   *logger.Logger
}

func NewScreen(log *logger.Logger) *Screen {
	return &Screen{log: log}
}

func (s *Screen) update(fn func(st *State)) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	fn(&s.state)
	s.state.Version++
}

func (s *Screen) ShowDate(text string) {
	s.update(func(st *State) {
		st.Date = text
	})
}

func (s *Screen) ShowCurrencyOptions(options []string, inputIndex, outputIndex int) {
	s.update(func(st *State) {
		st.Options = append([]string(nil), options...)
		st.InputIndex = inputIndex
		st.OutputIndex = outputIndex
		st.Input = optionSymbol(options, inputIndex)
		st.Output = optionSymbol(options, outputIndex)
	})
}

func (s *Screen) ShowResult(text string, visible bool) {
	s.update(func(st *State) {
		st.Result = text
		st.ResultVisible = visible
		if !visible {
			st.Result = ""
		}
	})
}

func (s *Screen) ShowLoading(loading bool) {
	s.update(func(st *State) {
		st.Loading = loading
	})
}

func (s *Screen) ShowError(message string, cancelable bool) {
	s.log.Warn("Error popup shown", "cancelable", cancelable)
	s.update(func(st *State) {
		st.Error = &ErrorPopup{Message: message, Cancelable: cancelable}
	})
}

func (s *Screen) HideError() {
	s.update(func(st *State) {
		st.Error = nil
	})
}

func (s *Screen) Share(title, text string) error {
	s.update(func(st *State) {
		st.Shared = &SharedText{Title: title, Text: text}
	})
	return nil
}

// DismissError closes the popup. A non-cancelable popup only closes when
// force is set, which is what a retry does.
func (s *Screen) DismissError(force bool) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.state.Error == nil {
		return true
	}
	if !s.state.Error.Cancelable && !force {
		return false
	}
	s.state.Error = nil
	s.state.Version++
	return true
}

// Snapshot returns a copy of the current state.
func (s *Screen) Snapshot() State {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	st := s.state
	st.Options = append([]string(nil), s.state.Options...)
	if s.state.Error != nil {
		popup := *s.state.Error
		st.Error = &popup
	}
	if s.state.Shared != nil {
		shared := *s.state.Shared
		st.Shared = &shared
	}
	return st
}

func optionSymbol(options []string, index int) string {
	if index < 0 || index >= len(options) {
		return ""
	}
	return model.SymbolFromFullName(options[index]).String()
}
