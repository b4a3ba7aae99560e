package validate

import (
	"errors"
	"net/url"
	"testing"

	"github.com/5w1tchy/bookshelf-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStruct_BookInput(t *testing.T) {
	v := New()

	tests := []struct {
		name  string
		in    models.BookInput
		field string
		tag   string
	}{
		{"valid", models.BookInput{Name: "Buku A", PageCount: 100, ReadPage: 25}, "", ""},
		{"valid finished", models.BookInput{Name: "Buku A", PageCount: 100, ReadPage: 100}, "", ""},
		{"missing name", models.BookInput{PageCount: 1}, "name", "required"},
		{"blank name", models.BookInput{Name: "   ", PageCount: 1}, "name", "notblank"},
		{"read page over", models.BookInput{Name: "A", PageCount: 10, ReadPage: 11}, "readPage", "ltefield"},
		{"negative page count", models.BookInput{Name: "A", PageCount: -1, ReadPage: -1}, "pageCount", "gte"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.in)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var verrs Errors
			require.True(t, errors.As(err, &verrs), "want validate.Errors, got %v", err)
			assert.True(t, verrs.Has(tt.field, tt.tag), "errors: %v", verrs)
			assert.True(t, verrs.Has(tt.field))
		})
	}
}

func TestErrors_Has(t *testing.T) {
	errs := Errors{{Field: "readPage", Tag: "ltefield", Param: "PageCount"}}

	assert.True(t, errs.Has("readPage"))
	assert.True(t, errs.Has("readPage", "gte", "ltefield"))
	assert.False(t, errs.Has("readPage", "gte"))
	assert.False(t, errs.Has("name"))
	assert.Contains(t, errs.Error(), "readPage failed ltefield=PageCount")
}

func TestParseFlag(t *testing.T) {
	q := url.Values{}
	q.Set("reading", "1")
	q.Set("finished", "0")
	q.Set("odd", "yes")

	require.NotNil(t, ParseFlag(q, "reading"))
	assert.True(t, *ParseFlag(q, "reading"))
	assert.False(t, *ParseFlag(q, "finished"))
	assert.False(t, *ParseFlag(q, "odd"))
	assert.Nil(t, ParseFlag(q, "missing"))
}
