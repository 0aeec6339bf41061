package flow

import (
	"strconv"
	"strings"
)

// ToggleResult classifies what a multi-select callback did.
type ToggleResult int

const (
	// ToggleUpdated means the selection set changed and the keyboard should
	// be re-rendered.
	ToggleUpdated ToggleResult = iota
	// ToggleSubmitted means the submit sentinel arrived with at least one
	// option selected.
	ToggleSubmitted
	// ToggleNoSelection means submit arrived with an empty set. The step
	// stays where it is.
	ToggleNoSelection
	// ToggleUnknownOption means the payload matched no option. Stale
	// keyboards from older messages produce these.
	ToggleUnknownOption
)

// Toggle applies one callback payload to a multi-select working set.
// Payloads are option indexes rendered into the keyboard, with a truncated
// label accepted as fallback for buttons that fell back to label payloads.
// Selection order is preserved. If exclusive is non-empty it names a
// mutually exclusive option: picking it collapses the set to just it,
// picking anything else removes it first.
func Toggle(selected []string, payload string, options []string, exclusive string) ([]string, ToggleResult) {
	if payload == SubmitSentinel {
		if len(selected) == 0 {
			return selected, ToggleNoSelection
		}
		return selected, ToggleSubmitted
	}

	option, ok := resolveOption(payload, options)
	if !ok {
		return selected, ToggleUnknownOption
	}

	if idx := indexOf(selected, option); idx >= 0 {
		return append(selected[:idx:idx], selected[idx+1:]...), ToggleUpdated
	}

	if exclusive != "" {
		if option == exclusive {
			return []string{exclusive}, ToggleUpdated
		}
		if idx := indexOf(selected, exclusive); idx >= 0 {
			selected = append(selected[:idx:idx], selected[idx+1:]...)
		}
	}
	return append(selected, option), ToggleUpdated
}

// resolveOption maps a callback payload back to its option. Index payloads
// are authoritative; label payloads match exactly or as a prefix, since the
// renderer truncates labels that would not fit the callback-data limit.
func resolveOption(payload string, options []string) (string, bool) {
	if i, err := strconv.Atoi(payload); err == nil {
		if i >= 0 && i < len(options) {
			return options[i], true
		}
		return "", false
	}
	for _, opt := range options {
		if opt == payload {
			return opt, true
		}
	}
	for _, opt := range options {
		if strings.HasPrefix(opt, payload) {
			return opt, true
		}
	}
	return "", false
}

func indexOf(list []string, v string) int {
	for i, item := range list {
		if item == v {
			return i
		}
	}
	return -1
}
