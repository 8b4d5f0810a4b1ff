package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageRequestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   PageRequest
		want PageRequest
	}{
		{
			name: "zero value gets defaults",
			in:   PageRequest{},
			want: PageRequest{Page: 1, Size: 20},
		},
		{
			name: "negative page clamps to first page",
			in:   PageRequest{Page: -3, Size: 50},
			want: PageRequest{Page: 1, Size: 50},
		},
		{
			name: "oversized page size clamps to max",
			in:   PageRequest{Page: 2, Size: 10000},
			want: PageRequest{Page: 2, Size: 200},
		},
		{
			name: "valid request is unchanged",
			in:   PageRequest{Page: 4, Size: 25},
			want: PageRequest{Page: 4, Size: 25},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}
}

func TestPageRequestOffsetAndLimit(t *testing.T) {
	req := PageRequest{Page: 3, Size: 25}
	assert.Equal(t, 50, req.Offset())
	assert.Equal(t, 25, req.Limit())

	// Un-normalized input still produces usable SQL bounds
	zero := PageRequest{}
	assert.Equal(t, 0, zero.Offset())
	assert.Equal(t, 20, zero.Limit())
}

func TestNewPage(t *testing.T) {
	items := []string{"a", "b"}
	page := NewPage(items, 42, PageRequest{Page: 2, Size: 2})

	assert.Equal(t, items, page.Items)
	assert.Equal(t, int64(42), page.TotalCount)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 2, page.Size)
}

func TestNewPageNilItems(t *testing.T) {
	page := NewPage[string](nil, 0, PageRequest{})

	assert.NotNil(t, page.Items, "items should serialize as [] not null")
	assert.Empty(t, page.Items)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 20, page.Size)
}
