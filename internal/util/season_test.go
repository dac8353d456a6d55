package util_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"statchat-backend/internal/util"
)

func TestNormalizeSeason(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		expected string
	}{
		{name: "Slash Form", token: "2021/22", expected: "2021/22"},
		{name: "Hyphen Form", token: "2021-22", expected: "2021/22"},
		{name: "Whitespace", token: " 2016/17 ", expected: "2016/17"},
		{name: "Full Year Range Is Not A Season", token: "2021-2022", expected: ""},
		{name: "Bare Year", token: "2021", expected: ""},
		{name: "Garbage", token: "abc", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, util.NormalizeSeason(tt.token))
		})
	}
}

func TestSeasonStartYear(t *testing.T) {
	assert.Equal(t, 2021, util.SeasonStartYear("2021/22"))
	assert.Equal(t, 0, util.SeasonStartYear("2021"))
}

func TestCanonicalSquad(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		expected string
	}{
		{name: "Ordinal Form", token: "4th XI", expected: "4th XI"},
		{name: "Ordinal Lowercase", token: "4th xi", expected: "4th XI"},
		{name: "Short Form", token: "4s", expected: "4th XI"},
		{name: "First Team", token: "1s", expected: "1st XI"},
		{name: "Second Team", token: "2nd XI", expected: "2nd XI"},
		{name: "Third Team", token: "3s", expected: "3rd XI"},
		{name: "Not A Squad", token: "eleven", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, util.CanonicalSquad(tt.token))
		})
	}
}

func TestDisplaySquad(t *testing.T) {
	assert.Equal(t, "4s", util.DisplaySquad("4th XI"))
	assert.Equal(t, "1s", util.DisplaySquad("1st XI"))
	assert.Equal(t, "somewhere else", util.DisplaySquad("somewhere else"))
}
