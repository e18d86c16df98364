package tracking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTargetURL_RoundTrip(t *testing.T) {
	urls := []string{
		"https://example.com",                         // two padding chars in std base64
		"https://example.com/a",                       // no padding
		"https://example.com/abc",                     // one padding char
		"https://example.com/path?q=a+b&r=c/d",        // '+' and '/' in the URL itself
		"https://example.com/~?>?>",                   // bytes that map to '+' and '/' in std base64
		"http://example.com/search?q=%E2%9C%93&x=1==", // '=' in the URL
		"https://例え.jp/パス",
	}

	for _, raw := range urls {
		t.Run(raw, func(t *testing.T) {
			encoded := EncodeTargetURL(raw)
			assert.NotContains(t, encoded, "+")
			assert.NotContains(t, encoded, "/")
			assert.NotContains(t, encoded, "=")

			decoded, err := DecodeTargetURL(encoded)
			require.NoError(t, err)
			assert.Equal(t, raw, decoded)
		})
	}
}

func TestDecodeTargetURL_AcceptsPadding(t *testing.T) {
	decoded, err := DecodeTargetURL("aHR0cHM6Ly9leGFtcGxlLmNvbS9hYmM=")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/abc", decoded)

	decoded, err = DecodeTargetURL("aHR0cHM6Ly9leGFtcGxlLmNvbQ==")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", decoded)
}

func TestDecodeTargetURL_Errors(t *testing.T) {
	_, err := DecodeTargetURL("")
	assert.ErrorIs(t, err, ErrMissingTargetURL)

	_, err = DecodeTargetURL("***")
	assert.ErrorIs(t, err, ErrInvalidTargetURL)

	_, err = DecodeTargetURL(EncodeTargetURL("javascript:alert(1)"))
	assert.ErrorIs(t, err, ErrInvalidTargetURL)

	_, err = DecodeTargetURL(EncodeTargetURL("/relative/path"))
	assert.ErrorIs(t, err, ErrInvalidTargetURL)
}
