package flags

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

const (
	testToggleFlagNameConstant      = "verbose"
	testToggleFlagShorthandConstant = "v"
	testToggleFlagUsageConstant     = "Report clean working copies too."
)

func TestAddToggleFlagParsesValues(testInstance *testing.T) {
	testCases := []struct {
		name            string
		arguments       []string
		expectedValue   bool
		expectedChanged bool
	}{
		{name: "default_false", arguments: []string{}, expectedValue: false, expectedChanged: false},
		{name: "bare_long_flag", arguments: []string{"--verbose"}, expectedValue: true, expectedChanged: true},
		{name: "bare_shorthand", arguments: []string{"-v"}, expectedValue: true, expectedChanged: true},
		{name: "explicit_yes", arguments: []string{"--verbose=yes"}, expectedValue: true, expectedChanged: true},
		{name: "explicit_true_uppercase", arguments: []string{"--verbose=TRUE"}, expectedValue: true, expectedChanged: true},
		{name: "explicit_no", arguments: []string{"--verbose=no"}, expectedValue: false, expectedChanged: true},
		{name: "shorthand_off", arguments: []string{"-v=off"}, expectedValue: false, expectedChanged: true},
		{name: "positional_not_consumed", arguments: []string{"--verbose", "no"}, expectedValue: true, expectedChanged: true},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			command := &cobra.Command{}

			var toggleTarget bool
			AddToggleFlag(command.Flags(), &toggleTarget, testToggleFlagNameConstant, testToggleFlagShorthandConstant, false, testToggleFlagUsageConstant)

			require.NoError(testInstance, command.ParseFlags(testCase.arguments))
			require.Equal(testInstance, testCase.expectedValue, toggleTarget)

			toggleValue, registered := ToggleValue(command.Flags(), testToggleFlagNameConstant)
			require.True(testInstance, registered)
			require.Equal(testInstance, testCase.expectedValue, toggleValue)

			registeredFlag := command.Flags().Lookup(testToggleFlagNameConstant)
			require.NotNil(testInstance, registeredFlag)
			require.Equal(testInstance, testCase.expectedChanged, registeredFlag.Changed)
		})
	}
}

func TestAddToggleFlagRejectsInvalidValues(testInstance *testing.T) {
	command := &cobra.Command{}
	AddToggleFlag(command.Flags(), nil, testToggleFlagNameConstant, "", false, testToggleFlagUsageConstant)

	require.Error(testInstance, command.ParseFlags([]string{"--verbose=maybe"}))

	toggleValue, registered := ToggleValue(command.Flags(), testToggleFlagNameConstant)
	require.True(testInstance, registered)
	require.False(testInstance, toggleValue)
	require.False(testInstance, command.Flags().Lookup(testToggleFlagNameConstant).Changed)
}

func TestAddToggleFlagUsagePlaceholder(testInstance *testing.T) {
	testCases := []struct {
		name          string
		defaultValue  bool
		description   string
		expectedUsage string
	}{
		{name: "default_false", defaultValue: false, description: testToggleFlagUsageConstant, expectedUsage: "`<yes|NO>` " + testToggleFlagUsageConstant},
		{name: "default_true", defaultValue: true, description: testToggleFlagUsageConstant, expectedUsage: "`<YES|no>` " + testToggleFlagUsageConstant},
		{name: "empty_description", defaultValue: false, description: "  ", expectedUsage: "`<yes|NO>`"},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			command := &cobra.Command{}
			AddToggleFlag(command.Flags(), nil, testToggleFlagNameConstant, "", testCase.defaultValue, testCase.description)

			registeredFlag := command.Flags().Lookup(testToggleFlagNameConstant)
			require.NotNil(testInstance, registeredFlag)
			require.Equal(testInstance, testCase.expectedUsage, registeredFlag.Usage)
		})
	}
}

func TestToggleValueIgnoresOtherFlags(testInstance *testing.T) {
	command := &cobra.Command{}
	command.Flags().Bool("plain", true, "")

	_, registered := ToggleValue(command.Flags(), "plain")
	require.False(testInstance, registered)

	_, registered = ToggleValue(command.Flags(), "missing")
	require.False(testInstance, registered)

	_, registered = ToggleValue(nil, testToggleFlagNameConstant)
	require.False(testInstance, registered)
}

func TestParseToggleValue(testInstance *testing.T) {
	testCases := []struct {
		rawValue      string
		expectedValue bool
		expectError   bool
	}{
		{rawValue: "", expectedValue: true},
		{rawValue: " Y ", expectedValue: true},
		{rawValue: "1", expectedValue: true},
		{rawValue: "OFF", expectedValue: false},
		{rawValue: "f", expectedValue: false},
		{rawValue: "sometimes", expectError: true},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.rawValue, func(testInstance *testing.T) {
			parsedValue, parseError := ParseToggleValue(testCase.rawValue)
			if testCase.expectError {
				require.ErrorContains(testInstance, parseError, "invalid toggle value")
				return
			}
			require.NoError(testInstance, parseError)
			require.Equal(testInstance, testCase.expectedValue, parsedValue)
		})
	}
}
