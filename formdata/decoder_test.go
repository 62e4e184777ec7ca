package formdata_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jodevsa/undici/formdata"
	"github.com/jodevsa/undici/multipart"
)

func TestNewDecoder(t *testing.T) {
	t.Parallel()

	_, err := formdata.NewDecoder("text/plain")
	assert.ErrorIs(t, err, multipart.ErrNotFormData)

	_, err = formdata.NewDecoder("multipart/form-data")
	assert.ErrorIs(t, err, multipart.ErrNoBoundary)

	d, err := formdata.NewDecoder("multipart/form-data; boundary=X")
	require.NoError(t, err)
	assert.Empty(t, d.Entries())
}

func TestDecoder(t *testing.T) {
	t.Parallel()

	input := "--X\r\n" +
		"Content-Disposition: form-data; name=\"a\"\r\n" +
		"\r\n" +
		"hello\r\n" +
		"--X\r\n" +
		"Content-Disposition: form-data; name=\"file1\"; filename=\"a.txt\"\r\n" +
		"Content-Type: text/plain\r\n" +
		"\r\n" +
		"file contents\r\nwith a line break\r\n" +
		"--X--\r\n"

	d, err := formdata.NewDecoder("multipart/form-data; boundary=X")
	require.NoError(t, err)

	n, err := d.Write([]byte(input))
	require.NoError(t, err)
	assert.Equal(t, len(input), n)
	require.NoError(t, d.Close())

	assert.True(t, d.Done())
	assert.Equal(t, []formdata.Entry{
		{
			Name: "a",
			Body: []byte("hello"),
		},
		{
			Name:     "file1",
			Filename: "a.txt",
			Type:     "text/plain",
			Body:     []byte("file contents\r\nwith a line break"),
		},
	}, d.Entries())
}

func TestDecoder_ByteAtATime(t *testing.T) {
	t.Parallel()

	input := "--X\r\n" +
		"Content-Disposition: form-data; name=\"a\"\r\n" +
		"\r\n" +
		"hello\r\n" +
		"--X--\r\n"

	d, err := formdata.NewDecoder("multipart/form-data; boundary=X")
	require.NoError(t, err)

	for i := 0; i < len(input); i++ {
		_, err := d.Write([]byte{input[i]})
		require.NoError(t, err)
	}
	require.NoError(t, d.Close())

	assert.Equal(t, []formdata.Entry{
		{Name: "a", Body: []byte("hello")},
	}, d.Entries())
}

func TestDecoder_LargeBody(t *testing.T) {
	t.Parallel()

	body := strings.Repeat("z", 10_000)
	input := "--X\r\n" +
		"Content-Disposition: form-data; name=\"big\"\r\n" +
		"\r\n" +
		body + "\r\n" +
		"--X--\r\n"

	d, err := formdata.NewDecoder("multipart/form-data; boundary=X")
	require.NoError(t, err)

	// small writes force the body to stream across several body events;
	// the decoder reassembles it
	in := []byte(input)
	for len(in) > 0 {
		n := 256
		if n > len(in) {
			n = len(in)
		}
		_, err := d.Write(in[:n])
		require.NoError(t, err)
		in = in[n:]
	}
	require.NoError(t, d.Close())

	entries := d.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "big", entries[0].Name)
	assert.Equal(t, []byte(body), entries[0].Body)
}

func TestDecoder_UnterminatedFinalBoundary(t *testing.T) {
	t.Parallel()

	// the stream ends at the final boundary line without a trailing CRLF,
	// so no closing boundary event ever fires; Close recovers the entry
	input := "--X\r\n" +
		"Content-Disposition: form-data; name=\"a\"\r\n" +
		"\r\n" +
		"hello\r\n" +
		"--X--"

	d, err := formdata.NewDecoder("multipart/form-data; boundary=X")
	require.NoError(t, err)

	_, err = d.Write([]byte(input))
	require.NoError(t, err)
	assert.Empty(t, d.Entries())

	require.NoError(t, d.Close())
	assert.False(t, d.Done())
	assert.Equal(t, []formdata.Entry{
		{Name: "a", Body: []byte("hello")},
	}, d.Entries())
}

func TestDecoder_MalformedPartHeader(t *testing.T) {
	t.Parallel()

	input := "--X\r\n" +
		"no colon here\r\n" +
		"\r\n" +
		"hello\r\n" +
		"--X--\r\n"

	d, err := formdata.NewDecoder("multipart/form-data; boundary=X")
	require.NoError(t, err)

	_, err = d.Write([]byte(input))
	assert.ErrorIs(t, err, formdata.ErrMalformedPartHeader)
}

func TestDecoder_DuplicatePartHeadersCombine(t *testing.T) {
	t.Parallel()

	input := "--X\r\n" +
		"Content-Disposition: form-data; name=\"a\"\r\n" +
		"Content-Type: text/plain\r\n" +
		"content-type: charset=utf-8\r\n" +
		"\r\n" +
		"hi\r\n" +
		"--X--\r\n"

	d, err := formdata.NewDecoder("multipart/form-data; boundary=X")
	require.NoError(t, err)

	_, err = d.Write([]byte(input))
	require.NoError(t, err)
	require.NoError(t, d.Close())

	entries := d.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "text/plain, charset=utf-8", entries[0].Type)
}
