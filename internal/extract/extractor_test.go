package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractorExtract(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "single address",
			text: "Deliver to 123 Main St, Madison before noon",
			want: []string{"123 Main St, Madison"},
		},
		{
			name: "multiple addresses preserve first appearance order",
			text: "921 Whitney Way, Verona\nthen 123 Main St, Madison\nthen 44 Oak Ave, Fitchburg",
			want: []string{"921 Whitney Way, Verona", "123 Main St, Madison", "44 Oak Ave, Fitchburg"},
		},
		{
			name: "duplicates removed",
			text: "123 Main St, Madison\n123 Main St, Madison",
			want: []string{"123 Main St, Madison"},
		},
		{
			name: "unit numbers",
			text: "500 State St Apt 12, Madison",
			want: []string{"500 State St Apt 12, Madison"},
		},
		{
			name: "ocr question marks stripped",
			text: "123 Mai?n St, Madison?",
			want: []string{"123 Main St, Madison"},
		},
		{
			name: "unrecognized locality ignored",
			text: "77 Sunset Blvd, Hollywood",
			want: nil,
		},
		{
			name: "no match is not an error",
			text: "order #4412 ready for pickup",
			want: nil,
		},
	}

	ex, err := NewExtractor([]string{"Madison", "Verona", "Fitchburg"})
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ex.Extract(tt.text))
		})
	}
}

func TestExtractorIsIdempotent(t *testing.T) {
	ex, err := NewExtractor([]string{"Madison"})
	require.NoError(t, err)

	text := "drop at 10 First St, Madison\nthen 20 Second St, Madison"
	first := ex.Extract(text)
	second := ex.Extract(text)

	assert.Equal(t, first, second)
}

func TestExtractorConfiguredLocalities(t *testing.T) {
	ex, err := NewExtractor([]string{"Springfield"})
	require.NoError(t, err)

	got := ex.Extract("742 Evergreen Terrace, Springfield")
	assert.Equal(t, []string{"742 Evergreen Terrace, Springfield"}, got)

	// The default set does not leak in.
	assert.Nil(t, ex.Extract("123 Main St, Madison"))
}

func TestExtractorRejectsEmptyLocalitySet(t *testing.T) {
	_, err := NewExtractor(nil)
	assert.Error(t, err)

	_, err = NewExtractor([]string{"  ", ""})
	assert.Error(t, err)
}
