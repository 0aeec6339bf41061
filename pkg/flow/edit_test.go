package flow

import (
	"context"
	"testing"

	"driverprofilebot/pkg/survey"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedProfile(t *testing.T, env *testEnv) *survey.Profile {
	t.Helper()
	p := &survey.Profile{
		UserID:   testUserID,
		Username: "driver77",
		Name:     "Петренко Іван",
		Phone:    "+380501234567",
		Age:      35,
		PlaceOfLiving: survey.Place{
			RegionKey:  "kyiv_city",
			RegionName: "м. Київ",
			City:       "Київ",
		},
		Categories:    []string{"B", "C1E"},
		Experience:    map[string]float64{"B": 3, "C1E": 5},
		SemiTrailers:  []string{"Тентований"},
		WorkTypes:     []string{"Міжнародні перевезення"},
		Vehicles:      []string{"DAF XF 106"},
		ADRLicense:    true,
		RaceDurations: []string{"До 1 тижня"},
		DesiredSalary: 45000,
		DocsAbroad:    []string{"Закордонний паспорт"},
		Description:   "Відповідальний водій",
	}
	require.NoError(t, env.store.CreateOrReplace(context.Background(), p))
	return p
}

func TestEditSalary(t *testing.T) {
	env := newTestEnv(t)
	seedProfile(t, env)

	env.callback(t, CallbackMenuPrefix+ActionEdit)
	assert.Equal(t, survey.MsgEditPrompt, env.lastText("edit_message"))

	env.callback(t, CallbackEditPrefix+survey.FieldSalary)
	assert.Equal(t, survey.MsgAskSalary, env.lastText("edit_message"))
	assert.Equal(t, StateSalary, env.session().Machine.Current())

	env.text(t, "60000")

	p, err := env.store.Get(context.Background(), testUserID)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 60000, p.DesiredSalary)
	// Everything else stays as stored.
	assert.Equal(t, "Петренко Іван", p.Name)
	assert.Equal(t, []string{"B", "C1E"}, p.Categories)
	assert.Equal(t, "driver77", p.Username)

	assert.Equal(t, StateIdle, env.session().Machine.Current())
	assert.Nil(t, env.session().Editing)
	assert.Contains(t, callTexts(env.bot), survey.MsgEditSaved)
}

func TestEditCategoriesDropsRemovedExperienceAndSemiTrailers(t *testing.T) {
	env := newTestEnv(t)
	seedProfile(t, env)

	env.callback(t, CallbackMenuPrefix+ActionEdit)
	env.callback(t, CallbackEditPrefix+survey.FieldCategories)
	assert.Equal(t, StateCategories, env.session().Machine.Current())

	// Only B this time: C1E goes away, and with it the trailer question.
	env.callback(t, CallbackCategoriesPrefix+"0")
	env.callback(t, CallbackCategoriesPrefix+SubmitSentinel)
	assert.Equal(t, survey.MsgAskExperiencePrefix+"B:", env.lastText("edit_message"))

	env.text(t, "4")

	p, err := env.store.Get(context.Background(), testUserID)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, []string{"B"}, p.Categories)
	assert.Equal(t, map[string]float64{"B": 4}, p.Experience)
	assert.Empty(t, p.SemiTrailers)
	assert.Equal(t, StateIdle, env.session().Machine.Current())
}

func TestEditCategoriesReusesStoredSemiTrailers(t *testing.T) {
	env := newTestEnv(t)
	seedProfile(t, env)

	env.callback(t, CallbackMenuPrefix+ActionEdit)
	env.callback(t, CallbackEditPrefix+survey.FieldCategories)

	// CE still needs semi-trailers, the stored list is reused without
	// re-asking.
	env.callback(t, CallbackCategoriesPrefix+"4") // CE
	env.callback(t, CallbackCategoriesPrefix+SubmitSentinel)
	env.text(t, "8")

	p, err := env.store.Get(context.Background(), testUserID)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, []string{"CE"}, p.Categories)
	assert.Equal(t, map[string]float64{"CE": 8}, p.Experience)
	assert.Equal(t, []string{"Тентований"}, p.SemiTrailers)
	assert.Equal(t, StateIdle, env.session().Machine.Current())
}

func TestEditCategoriesReentersSemiTrailersWhenNoneStored(t *testing.T) {
	env := newTestEnv(t)
	p := seedProfile(t, env)
	p.Categories = []string{"B"}
	p.Experience = map[string]float64{"B": 3}
	p.SemiTrailers = nil
	require.NoError(t, env.store.CreateOrReplace(context.Background(), p))

	env.callback(t, CallbackMenuPrefix+ActionEdit)
	env.callback(t, CallbackEditPrefix+survey.FieldCategories)
	env.callback(t, CallbackCategoriesPrefix+"4") // CE
	env.callback(t, CallbackCategoriesPrefix+SubmitSentinel)
	env.text(t, "8")

	// Nothing stored to reuse, so the trailer question runs again.
	assert.Equal(t, StateSemiTrailers, env.session().Machine.Current())

	env.callback(t, CallbackSemiTrailersPrefix+"1") // Рефрижератор
	env.callback(t, CallbackSemiTrailersPrefix+SubmitSentinel)

	stored, err := env.store.Get(context.Background(), testUserID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, []string{"CE"}, stored.Categories)
	assert.Equal(t, map[string]float64{"CE": 8}, stored.Experience)
	assert.Equal(t, []string{"Рефрижератор"}, stored.SemiTrailers)
	assert.Equal(t, StateIdle, env.session().Machine.Current())
	assert.Nil(t, env.session().Editing)
}

func TestEditLocationRunsRegionThenCity(t *testing.T) {
	env := newTestEnv(t)
	seedProfile(t, env)

	env.callback(t, CallbackMenuPrefix+ActionEdit)
	env.callback(t, CallbackEditPrefix+survey.FieldLocation)
	assert.Equal(t, survey.MsgAskRegion, env.lastText("edit_message"))

	env.callback(t, CallbackRegionPrefix+"12") // lviv
	assert.Equal(t, survey.MsgAskCity, env.lastText("edit_message"))

	env.text(t, "Львів")

	p, err := env.store.Get(context.Background(), testUserID)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "lviv", p.PlaceOfLiving.RegionKey)
	assert.Equal(t, "Львівська обл.", p.PlaceOfLiving.RegionName)
	assert.Equal(t, "Львів", p.PlaceOfLiving.City)
}

func TestEditADR(t *testing.T) {
	env := newTestEnv(t)
	seedProfile(t, env)

	env.callback(t, CallbackMenuPrefix+ActionEdit)
	env.callback(t, CallbackEditPrefix+survey.FieldADR)
	env.callback(t, CallbackADRPrefix+ActionNo)

	p, err := env.store.Get(context.Background(), testUserID)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.False(t, p.ADRLicense)
	assert.Equal(t, StateIdle, env.session().Machine.Current())
}

func TestEditWithoutProfile(t *testing.T) {
	env := newTestEnv(t)

	env.callback(t, CallbackMenuPrefix+ActionEdit)
	assert.Equal(t, survey.MsgProfileNotFound, env.lastText("answer_callback"))
	assert.Equal(t, StateIdle, env.session().Machine.Current())
}

func TestDeleteProfileConfirmFlow(t *testing.T) {
	env := newTestEnv(t)
	seedProfile(t, env)

	env.callback(t, CallbackMenuPrefix+ActionDelete)
	assert.Equal(t, survey.MsgConfirmDelete, env.lastText("edit_message"))

	env.callback(t, CallbackMenuPrefix+ActionDeleteConfirm)
	assert.Equal(t, 0, env.store.Len())
	assert.Contains(t, callTexts(env.bot), survey.MsgProfileDeleted)
}

func TestDeleteProfileCancelKeepsProfile(t *testing.T) {
	env := newTestEnv(t)
	seedProfile(t, env)

	env.callback(t, CallbackMenuPrefix+ActionDelete)
	env.callback(t, CallbackMenuPrefix+ActionDeleteCancel)

	assert.Equal(t, 1, env.store.Len())
}

func TestEditUpdateFailureLeavesEditMode(t *testing.T) {
	env := newTestEnv(t)
	seedProfile(t, env)

	env.callback(t, CallbackMenuPrefix+ActionEdit)
	env.callback(t, CallbackEditPrefix+survey.FieldSalary)
	env.store.Fail("update", assert.AnError)

	env.text(t, "60000")

	assert.Contains(t, callTexts(env.bot), survey.MsgSaveFailed)
	assert.Equal(t, StateIdle, env.session().Machine.Current())
	assert.Nil(t, env.session().Editing)

	p, err := env.store.Get(context.Background(), testUserID)
	require.NoError(t, err)
	assert.Equal(t, 45000, p.DesiredSalary)
}
