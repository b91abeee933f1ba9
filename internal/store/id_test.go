package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalID(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		want   string
		wantOK bool
	}{
		{name: "canonical", id: "11111111-1111-1111-1111-111111111111", want: "11111111-1111-1111-1111-111111111111", wantOK: true},
		{name: "upper case", id: "AAAAAAAA-AAAA-4AAA-8AAA-AAAAAAAAAAAA", want: "aaaaaaaa-aaaa-4aaa-8aaa-aaaaaaaaaaaa", wantOK: true},
		{name: "without hyphens", id: "11111111111111111111111111111111"},
		{name: "urn form", id: "urn:uuid:11111111-1111-1111-1111-111111111111"},
		{name: "mock id", id: "1"},
		{name: "empty", id: ""},
		{name: "not hex", id: "zzzzzzzz-1111-1111-1111-111111111111"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CanonicalID(tt.id)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewID(t *testing.T) {
	id := NewID()
	got, ok := CanonicalID(id)
	assert.True(t, ok)
	assert.Equal(t, id, got)
	assert.NotEqual(t, id, NewID())
}
