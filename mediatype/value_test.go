package mediatype_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jodevsa/undici/mediatype"
)

func TestParse(t *testing.T) {
	t.Parallel()

	v, err := mediatype.Parse("Multipart/Form-Data; boundary=abc123; charset=utf-8")
	require.NoError(t, err)

	assert.Equal(t, "multipart/form-data", v.Essence())
	assert.Equal(t, "multipart", v.Type())
	assert.Equal(t, "form-data", v.Subtype())
	assert.Equal(t, "abc123", v.Parameter(mediatype.Boundary))
	assert.Equal(t, "", v.Parameter(mediatype.Filename))
	assert.Equal(t, map[string]string{
		"boundary": "abc123",
		"charset":  "utf-8",
	}, v.Parameters())
}

func TestParse_ContentDisposition(t *testing.T) {
	t.Parallel()

	v, err := mediatype.Parse(`form-data; name="file1"; filename="a.txt"`)
	require.NoError(t, err)

	assert.Equal(t, "form-data", v.Essence())
	assert.Equal(t, "", v.Type())
	assert.Equal(t, "", v.Subtype())
	assert.Equal(t, "file1", v.Parameter(mediatype.Name))
	assert.Equal(t, "a.txt", v.Parameter(mediatype.Filename))
}

func TestParse_Invalid(t *testing.T) {
	t.Parallel()

	_, err := mediatype.Parse("")
	assert.Error(t, err)
}

func TestValue_String(t *testing.T) {
	t.Parallel()

	v, err := mediatype.Parse("multipart/form-data; charset=utf-8; boundary=x")
	require.NoError(t, err)
	assert.Equal(t, "multipart/form-data; boundary=x; charset=utf-8", v.String())

	assert.Equal(t, "text/plain", mediatype.New("text/plain").String())
}
