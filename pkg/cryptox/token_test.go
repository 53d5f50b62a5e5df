package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateInviteCode(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		code, err := GenerateInviteCode()
		require.NoError(t, err)
		require.Len(t, code, InviteCodeLength)

		// Only unambiguous symbols make it into codes.
		for _, r := range code {
			require.True(t, strings.ContainsRune(inviteAlphabet, r),
				"unexpected symbol %q in code %q", r, code)
		}

		_, dup := seen[code]
		require.False(t, dup, "duplicate code %q", code)
		seen[code] = struct{}{}
	}
}

func TestFingerprintToken(t *testing.T) {
	t.Parallel()

	a := FingerprintToken("CODE1")
	b := FingerprintToken("CODE1")
	c := FingerprintToken("CODE2")

	require.Equal(t, a, b)
	require.NotEqual(t, a, c)
	require.NotContains(t, a, "CODE1")
}
