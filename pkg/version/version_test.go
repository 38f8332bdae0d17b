package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	v, err := Parse("0.8.20")
	require.NoError(t, err)
	assert.EqualValues(t, 0, v.Major())
	assert.EqualValues(t, 8, v.Minor())
	assert.EqualValues(t, 20, v.Patch())

	_, err = Parse("not-a-version")
	assert.Error(t, err)
}

func TestMustParsePanicsOnInvalid(t *testing.T) {
	assert.Panics(t, func() { MustParse("not-a-version") })
	assert.NotPanics(t, func() { MustParse("1.0.0") })
}

func TestFromPragmaValueRejectsEmpty(t *testing.T) {
	_, err := FromPragmaValue("   ")
	assert.Error(t, err)
}

func TestFromPragmaValueResolvesConcreteVersion(t *testing.T) {
	c, err := FromPragmaValue("^0.8.0")
	require.NoError(t, err)
	require.NotNil(t, c.Version)
	assert.EqualValues(t, 0, c.Version.Major())
	assert.EqualValues(t, 8, c.Version.Minor())
	assert.EqualValues(t, 0, c.Version.Patch())

	c, err = FromPragmaValue(">=0.8.0 <0.9.0")
	require.NoError(t, err)
	require.NotNil(t, c.Version)
	assert.Equal(t, "0.8.0", c.Version.String())
}

func TestPragmaConstraintSatisfies(t *testing.T) {
	tests := []struct {
		name       string
		constraint string
		version    string
		want       bool
	}{
		{"caret matches patch bump", "^0.8.0", "0.8.20", true},
		{"caret rejects minor bump pre-1.0", "^0.8.0", "0.9.0", false},
		{"gte matches exact", ">=0.6.0", "0.6.0", true},
		{"gte matches newer", ">=0.6.0", "0.8.0", true},
		{"gte rejects older", ">=0.6.0", "0.5.9", false},
		{"range matches inside band", ">=0.8.0 <0.9.0", "0.8.17", true},
		{"range rejects outside band", ">=0.8.0 <0.9.0", "0.9.0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := FromPragmaValue(tt.constraint)
			require.NoError(t, err)
			v, err := Parse(tt.version)
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.Satisfies(v))
		})
	}
}

func TestDetect(t *testing.T) {
	c, err := Detect(`pragma solidity ^0.8.0; contract C {}`)
	require.NoError(t, err)
	assert.Equal(t, "^0.8.0", c.Raw)
	require.NotNil(t, c.Version)
	assert.Equal(t, "0.8.0", c.Version.String())

	v, err := Parse("0.8.20")
	require.NoError(t, err)
	assert.True(t, c.Satisfies(v))
}

func TestDetectNoPragma(t *testing.T) {
	_, err := Detect(`contract C {}`)
	assert.Error(t, err)
}

func TestDetectAll(t *testing.T) {
	source := `
		pragma solidity ^0.8.0;
		import "./Other.sol";
		contract C {}
	`
	results, err := DetectAll(source)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "^0.8.0", results[0].Raw)
}
