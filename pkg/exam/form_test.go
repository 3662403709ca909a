package exam

import (
	"context"
	"errors"
	"testing"

	"examwatch/pkg/browser"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrepareSearchSelectsEveryControl(t *testing.T) {
	cfg := testConfig()
	sess := newFakeSession(
		CountrySelectLocators[1],
		LocationSelectLocators[0],
		TestTypeSelectLocators[2],
	)

	err := NewFormNavigator(Timing{}).PrepareSearch(context.Background(), sess, cfg)

	require.NoError(t, err)
	assert.Equal(t, []string{cfg.BaseURL}, sess.navigated)
	assert.Equal(t, cfg.CountryID, sess.selected[CountrySelectLocators[1]])
	assert.Equal(t, cfg.Location, sess.selected[LocationSelectLocators[0]])
	assert.Equal(t, cfg.TestType, sess.selected[TestTypeSelectLocators[2]])
}

func TestPrepareSearchReportsFailingStep(t *testing.T) {
	cfg := testConfig()
	tests := []struct {
		name     string
		sess     *fakeSession
		wantStep string
	}{
		{
			name: "navigation error",
			sess: func() *fakeSession {
				s := newFakeSession()
				s.navErr = errors.New("net::ERR_NAME_NOT_RESOLVED")
				return s
			}(),
			wantStep: StepNavigate,
		},
		{
			name:     "country select missing",
			sess:     newFakeSession(),
			wantStep: StepCountry,
		},
		{
			name:     "location select missing",
			sess:     newFakeSession(CountrySelectLocators[0]),
			wantStep: StepLocation,
		},
		{
			name:     "test type select missing",
			sess:     newFakeSession(CountrySelectLocators[0], LocationSelectLocators[0]),
			wantStep: StepTestType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewFormNavigator(Timing{}).PrepareSearch(context.Background(), tt.sess, cfg)

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrFormStepFailed)
			var stepErr *FormStepError
			require.ErrorAs(t, err, &stepErr)
			assert.Equal(t, tt.wantStep, stepErr.Step)
		})
	}
}

func TestPrepareSearchStopsAfterFailedStep(t *testing.T) {
	cfg := testConfig()
	sess := newFakeSession(TestTypeSelectLocators[0])

	err := NewFormNavigator(Timing{}).PrepareSearch(context.Background(), sess, cfg)

	require.ErrorIs(t, err, ErrControlNotFound)
	for _, loc := range sess.finds {
		assert.NotContains(t, LocationSelectLocators, loc, "no lookups after the country step failed")
		assert.NotContains(t, TestTypeSelectLocators, loc)
	}
}

func TestLogin(t *testing.T) {
	cfg := testConfig()
	creds := Credentials{Username: "candidate@example.test", Password: "s3cret"}

	t.Run("success", func(t *testing.T) {
		sess := newFakeSession(
			LoginLinkLocators[1],
			UsernameLocators[0],
			PasswordLocators[2],
			LoginButtonLocators[0],
			LoginSuccessLocators[3],
		)

		err := NewFormNavigator(Timing{}).Login(context.Background(), sess, cfg, creds)

		require.NoError(t, err)
		assert.Equal(t, creds.Username, sess.typed[UsernameLocators[0]])
		assert.Equal(t, creds.Password, sess.typed[PasswordLocators[2]])
		assert.Equal(t, []browser.Locator{LoginLinkLocators[1], LoginButtonLocators[0]}, sess.clicked)
	})

	t.Run("account marker never appears", func(t *testing.T) {
		sess := newFakeSession(
			LoginLinkLocators[0],
			UsernameLocators[0],
			PasswordLocators[0],
			LoginButtonLocators[0],
		)

		err := NewFormNavigator(Timing{}).Login(context.Background(), sess, cfg, creds)

		var stepErr *FormStepError
		require.ErrorAs(t, err, &stepErr)
		assert.Equal(t, StepLogin, stepErr.Step)
		assert.ErrorIs(t, err, ErrControlNotFound)
	})
}
