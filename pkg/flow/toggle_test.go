package flow

import (
	"testing"

	"driverprofilebot/pkg/survey"

	"github.com/stretchr/testify/assert"
)

func TestToggleAddAndRemovePreservesOrder(t *testing.T) {
	var sel []string

	sel, res := Toggle(sel, "1", survey.DrivingCategories, "")
	assert.Equal(t, ToggleUpdated, res)
	sel, res = Toggle(sel, "4", survey.DrivingCategories, "")
	assert.Equal(t, ToggleUpdated, res)
	assert.Equal(t, []string{"C", "CE"}, sel)

	// Toggling an already selected option removes just it.
	sel, res = Toggle(sel, "1", survey.DrivingCategories, "")
	assert.Equal(t, ToggleUpdated, res)
	assert.Equal(t, []string{"CE"}, sel)
}

func TestToggleExclusiveCollapsesSelection(t *testing.T) {
	var sel []string

	sel, _ = Toggle(sel, "0", survey.DocsAbroadOptions, survey.NoDocsSentinel)
	sel, _ = Toggle(sel, "2", survey.DocsAbroadOptions, survey.NoDocsSentinel)
	assert.Len(t, sel, 2)

	// The sentinel wipes everything else.
	sel, res := Toggle(sel, "4", survey.DocsAbroadOptions, survey.NoDocsSentinel)
	assert.Equal(t, ToggleUpdated, res)
	assert.Equal(t, []string{survey.NoDocsSentinel}, sel)

	// Any regular option kicks the sentinel back out.
	sel, res = Toggle(sel, "1", survey.DocsAbroadOptions, survey.NoDocsSentinel)
	assert.Equal(t, ToggleUpdated, res)
	assert.Equal(t, []string{survey.DocsAbroadOptions[1]}, sel)

	// Toggling the selected sentinel just deselects it.
	sel = []string{survey.NoDocsSentinel}
	sel, res = Toggle(sel, "4", survey.DocsAbroadOptions, survey.NoDocsSentinel)
	assert.Equal(t, ToggleUpdated, res)
	assert.Empty(t, sel)
}

func TestToggleSubmit(t *testing.T) {
	sel, res := Toggle(nil, SubmitSentinel, survey.TypesOfWork, "")
	assert.Equal(t, ToggleNoSelection, res)
	assert.Empty(t, sel)

	sel, res = Toggle([]string{"Вахтовий метод"}, SubmitSentinel, survey.TypesOfWork, "")
	assert.Equal(t, ToggleSubmitted, res)
	assert.Equal(t, []string{"Вахтовий метод"}, sel)
}

func TestToggleUnknownPayload(t *testing.T) {
	sel := []string{"B"}

	got, res := Toggle(sel, "99", survey.DrivingCategories, "")
	assert.Equal(t, ToggleUnknownOption, res)
	assert.Equal(t, sel, got)

	_, res = Toggle(sel, "щось інше", survey.DrivingCategories, "")
	assert.Equal(t, ToggleUnknownOption, res)
}

func TestToggleTruncatedLabelFallback(t *testing.T) {
	options := []string{"Закордонний паспорт", "Віза"}

	sel, res := Toggle(nil, "Закордонний", options, "")
	assert.Equal(t, ToggleUpdated, res)
	assert.Equal(t, []string{"Закордонний паспорт"}, sel)
}
