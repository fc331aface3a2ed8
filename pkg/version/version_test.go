package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "v1.2.3", want: "1.2.3"},
		{in: "1.2", want: "1.2.0"},
		{in: " v2 ", want: "2.0.0"},
		{in: "v1.0.0-rc.1+build.5", want: "1.0.0-rc.1+build.5"},
		{in: "not-a-version", want: "not-a-version"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestIsPrerelease(t *testing.T) {
	assert.True(t, IsPrerelease("0.0.0-dev"))
	assert.True(t, IsPrerelease("v1.0.0-rc.1"))
	assert.False(t, IsPrerelease("v1.0.0"))
	assert.False(t, IsPrerelease("garbage"))
}

func TestDefaults(t *testing.T) {
	assert.Equal(t, "0.0.0-dev", GetVersion())
	assert.Equal(t, "unknown", GetGitCommit())
	assert.Equal(t, "unknown", GetBuildDate())
	assert.Equal(t, "tablekit 0.0.0-dev (commit unknown, built unknown)", String())
}
