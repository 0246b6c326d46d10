// file: utils/flag_test.go
package utils

import (
	"testing"

	"github.com/bytehatacademy/alien-recon-portal/config"
	"github.com/stretchr/testify/assert"
)

func TestValidFlagFormat(t *testing.T) {
	config.App.FlagPrefix = "ARLab"

	assert.True(t, ValidFlagFormat("ARLab{welcome_agent}"))
	assert.True(t, ValidFlagFormat("ARLab{}"))

	assert.False(t, ValidFlagFormat(""))
	assert.False(t, ValidFlagFormat("ARLab"))
	assert.False(t, ValidFlagFormat("ARLab{"))
	assert.False(t, ValidFlagFormat("arlab{welcome_agent}"))
	assert.False(t, ValidFlagFormat("CTF{welcome_agent}"))
	assert.False(t, ValidFlagFormat("welcome_agent"))
}

func TestValidFlagFormatCustomPrefix(t *testing.T) {
	config.App.FlagPrefix = "TAG"
	defer func() { config.App.FlagPrefix = "ARLab" }()

	assert.True(t, ValidFlagFormat("TAG{a}"))
	assert.False(t, ValidFlagFormat("ARLab{a}"))
}

func TestGenerateFlagMatchesTemplate(t *testing.T) {
	config.App.FlagPrefix = "ARLab"

	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		flag := GenerateFlag()
		assert.True(t, ValidFlagFormat(flag), "generated flag %q should match template", flag)
		assert.False(t, seen[flag], "generated flags should not repeat")
		seen[flag] = true
	}
}
