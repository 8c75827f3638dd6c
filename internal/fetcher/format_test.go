package fetcher

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	plerrors "github.com/princespaghetti/plfetch/internal/errors"
)

func TestFormatJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "single key",
			in:   `{"a": 1}`,
			want: "{\n    \"a\": 1\n}",
		},
		{
			name: "key order preserved",
			in:   `{"z":1,"a":2,"m":3}`,
			want: "{\n    \"z\": 1,\n    \"a\": 2,\n    \"m\": 3\n}",
		},
		{
			name: "nested array",
			in:   `{"content":[{"id":10,"name":"Liverpool"}]}`,
			want: "{\n    \"content\": [\n        {\n            \"id\": 10,\n            \"name\": \"Liverpool\"\n        }\n    ]\n}",
		},
		{
			name: "empty containers",
			in:   `{"a":{},"b":[]}`,
			want: "{\n    \"a\": {},\n    \"b\": []\n}",
		},
		{
			name: "surrounding whitespace trimmed",
			in:   "\r\n  [1, 2]\n\n",
			want: "[\n    1,\n    2\n]",
		},
		{
			name: "number literals kept",
			in:   `[1.0, 1e5, -0]`,
			want: "[\n    1.0,\n    1e5,\n    -0\n]",
		},
		{
			name: "non-ascii text kept",
			in:   `{"ground":"Estádio"}`,
			want: "{\n    \"ground\": \"Estádio\"\n}",
		},
		{
			name: "scalar",
			in:   `"ok"`,
			want: `"ok"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatJSON([]byte(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestFormatJSON_RoundTrip(t *testing.T) {
	payload := `{"compSeason":{"id":777,"label":"2025/26"},"tables":[{"entries":[{"position":1,"points":25}]}]}`

	got, err := FormatJSON([]byte(payload))
	require.NoError(t, err)

	var want, saved any
	require.NoError(t, json.Unmarshal([]byte(payload), &want))
	require.NoError(t, json.Unmarshal(got, &saved))
	assert.Equal(t, want, saved)

	again, err := FormatJSON(got)
	require.NoError(t, err)
	assert.Equal(t, got, again, "formatting formatted output is a no-op")
}

func TestFormatJSON_Errors(t *testing.T) {
	tests := []struct {
		name    string
		in      []byte
		wantErr error
	}{
		{name: "html", in: []byte("<html></html>"), wantErr: plerrors.ErrInvalidJSON},
		{name: "truncated", in: []byte(`{"a": [1, 2`), wantErr: plerrors.ErrInvalidJSON},
		{name: "whitespace only", in: []byte("  \n"), wantErr: plerrors.ErrInvalidJSON},
		{name: "two documents", in: []byte(`{} {}`), wantErr: plerrors.ErrInvalidJSON},
		{name: "invalid utf-8", in: []byte{'"', 0xff, 0xfe, '"'}, wantErr: plerrors.ErrInvalidUTF8},
		{name: "byte order mark", in: []byte("\xef\xbb\xbf{}"), wantErr: plerrors.ErrInvalidJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatJSON(tt.in)
			require.Error(t, err)
			assert.Nil(t, got)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestComputeSHA256(t *testing.T) {
	assert.Equal(t,
		"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		ComputeSHA256([]byte{}))
	assert.Len(t, ComputeSHA256([]byte(`{"a": 1}`)), 64)
}
