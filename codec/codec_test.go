package codec

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skytheme/model"
	"skytheme/palette"
)

func TestRoundTrip(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			data, err := Marshal(format, palette.All())
			require.NoError(t, err)

			got, err := Unmarshal(format, data)
			require.NoError(t, err)
			if diff := cmp.Diff(palette.All(), got); diff != "" {
				t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
			}

			again, err := Marshal(format, got)
			require.NoError(t, err)
			assert.Equal(t, string(data), string(again))
		})
	}
}

func TestMarshalKeepsTableOrder(t *testing.T) {
	data, err := Marshal(FormatYAML, palette.All())
	require.NoError(t, err)

	last := -1
	for _, id := range palette.IDs() {
		idx := strings.Index(string(data), "\n"+string(id)+":")
		if id == model.Sunny {
			idx = strings.Index(string(data), string(id)+":")
		}
		require.GreaterOrEqual(t, idx, 0, id)
		assert.Greater(t, idx, last, id)
		last = idx
	}
}

func TestMarshalWritesAliases(t *testing.T) {
	data, err := Marshal(FormatJSON, []model.Theme{palette.MustLookup(model.Rainy)})
	require.NoError(t, err)
	s := string(data)
	assert.Contains(t, s, `"btnBg": "#0284c7"`)
	assert.Contains(t, s, `"accentColor": "#38bdf8"`)
	assert.Contains(t, s, `"textColor": "#f0f9ff"`)
}

func TestUnmarshalRejectsAliasMismatch(t *testing.T) {
	data, err := Marshal(FormatJSON, palette.All())
	require.NoError(t, err)

	broken := strings.Replace(string(data), `"btnBg": "#0284c7"`, `"btnBg": "#000000"`, 1)
	require.NotEqual(t, string(data), broken)

	_, err = Unmarshal(FormatJSON, []byte(broken))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAliasMismatch))
}

func TestUnmarshalRejectsUnknownTheme(t *testing.T) {
	data, err := Marshal(FormatJSON, palette.All())
	require.NoError(t, err)

	broken := strings.Replace(string(data), `"mist":`, `"fog":`, 1)
	_, err = Unmarshal(FormatJSON, []byte(broken))
	require.Error(t, err)
	assert.True(t, errors.Is(err, palette.ErrUnknownTheme))
}

func TestUnmarshalRejectsCaseVariantDuplicate(t *testing.T) {
	data, err := Marshal(FormatJSON, palette.All())
	require.NoError(t, err)

	broken := strings.Replace(string(data), `"mist":`, `"Rainy":`, 1)
	_, err = Unmarshal(FormatJSON, []byte(broken))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateTheme))
}

func TestUnmarshalRejectsMissingTheme(t *testing.T) {
	themes := palette.All()
	data, err := Marshal(FormatJSON, themes[:len(themes)-1])
	require.NoError(t, err)

	_, err = Unmarshal(FormatJSON, data)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingTheme))
}

func TestUnmarshalRejectsUnknownField(t *testing.T) {
	data, err := Marshal(FormatJSON, palette.All())
	require.NoError(t, err)

	broken := strings.Replace(string(data), `"highlight":`, `"glow": "#ffffff", "highlight":`, 1)
	_, err = Unmarshal(FormatJSON, []byte(broken))
	assert.Error(t, err)
}

func TestUnmarshalValidates(t *testing.T) {
	data, err := Marshal(FormatJSON, palette.All())
	require.NoError(t, err)

	broken := strings.Replace(string(data), `"mainTextClass": "text-gray-900"`, `"mainTextClass": "text-white"`, 1)
	require.NotEqual(t, string(data), broken)
	_, err = Unmarshal(FormatJSON, []byte(broken))
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("yaml")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = ParseFormat("toml")
	assert.Error(t, err)
	_, err = Marshal("toml", nil)
	assert.Error(t, err)
}
