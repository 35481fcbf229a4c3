package sdui

import (
	"bytes"
	"io"
	"math"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type part struct {
	name        string
	filename    string
	contentType string
	body        []byte
}

// parseParts re-reads an encoded body with the stdlib multipart reader
// as an independent check of the wire format.
func parseParts(t *testing.T, body []byte, contentType string) []part {
	t.Helper()

	require.True(t, strings.HasPrefix(contentType, "multipart/form-data; boundary="),
		"unexpected content type %q", contentType)
	boundary := strings.TrimPrefix(contentType, "multipart/form-data; boundary=")

	r := multipart.NewReader(bytes.NewReader(body), boundary)
	var parts []part
	for {
		p, err := r.NextPart()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)

		data, err := io.ReadAll(p)
		require.NoError(t, err)

		parts = append(parts, part{
			name:        p.FormName(),
			filename:    p.FileName(),
			contentType: p.Header.Get("Content-Type"),
			body:        data,
		})
	}
	return parts
}

// TestMultipartShape covers the documented part layout: one part per
// text value, three (or two) parts per location, no stray parts.
func TestMultipartShape(t *testing.T) {
	values := map[string]Value{
		"name": TextValue("hello"),
		"loc":  LocationValue{Lat: 37.0, Lon: -122.0},
	}

	body, contentType, err := EncodeMultipart(values)
	require.NoError(t, err)

	parts := parseParts(t, body, contentType)
	require.Len(t, parts, 3)

	assert.Equal(t, "loc.lat", parts[0].name)
	assert.Equal(t, "37", string(parts[0].body))
	assert.Equal(t, "loc.lng", parts[1].name)
	assert.Equal(t, "-122", string(parts[1].body))
	assert.Equal(t, "name", parts[2].name)
	assert.Equal(t, "hello", string(parts[2].body))

	for _, p := range parts {
		assert.Empty(t, p.filename)
		assert.Empty(t, p.contentType, "text parts carry no Content-Type header")
	}

	boundary := strings.TrimPrefix(contentType, "multipart/form-data; boundary=")
	assert.True(t, bytes.HasSuffix(body, []byte("--"+boundary+"--\r\n")),
		"body must end with the closing boundary line")
}

func TestMultipartLocationName(t *testing.T) {
	name := "Office"
	values := map[string]Value{
		"loc": LocationValue{Lat: 48.1, Lon: 11.5, Name: &name},
	}

	body, contentType, err := EncodeMultipart(values)
	require.NoError(t, err)

	parts := parseParts(t, body, contentType)
	require.Len(t, parts, 3)
	assert.Equal(t, "loc.name", parts[2].name)
	assert.Equal(t, "Office", string(parts[2].body))
}

func TestMultipartFiles(t *testing.T) {
	voice := []byte{0x01, 0x02, 0x03, 0xff}
	photo := []byte{0xde, 0xad, 0xbe, 0xef}
	values := map[string]Value{
		"note": VoiceValue(voice),
		"pic":  PhotoValue(photo),
	}

	body, contentType, err := EncodeMultipart(values)
	require.NoError(t, err)

	parts := parseParts(t, body, contentType)
	require.Len(t, parts, 2)

	assert.Equal(t, "note", parts[0].name)
	assert.Equal(t, "voice.m4a", parts[0].filename)
	assert.Equal(t, "audio/m4a", parts[0].contentType)
	assert.Equal(t, voice, parts[0].body)

	assert.Equal(t, "pic", parts[1].name)
	assert.Equal(t, "photo.jpg", parts[1].filename)
	assert.Equal(t, "image/jpeg", parts[1].contentType)
	assert.Equal(t, photo, parts[1].body)
}

func TestMultipartChoiceValue(t *testing.T) {
	body, contentType, err := EncodeMultipart(map[string]Value{
		"pick": ChoiceValue("Weekly"),
	})
	require.NoError(t, err)

	parts := parseParts(t, body, contentType)
	require.Len(t, parts, 1)
	assert.Equal(t, "pick", parts[0].name)
	assert.Equal(t, "Weekly", string(parts[0].body))
}

func TestMultipartEmpty(t *testing.T) {
	body, contentType, err := EncodeMultipart(map[string]Value{})
	require.NoError(t, err)

	parts := parseParts(t, body, contentType)
	assert.Empty(t, parts)
}

// TestMultipartBoundaryFresh asserts a new boundary for every call.
func TestMultipartBoundaryFresh(t *testing.T) {
	_, ct1, err := EncodeMultipart(map[string]Value{"k": TextValue("v")})
	require.NoError(t, err)
	_, ct2, err := EncodeMultipart(map[string]Value{"k": TextValue("v")})
	require.NoError(t, err)

	assert.NotEqual(t, ct1, ct2)
}

func TestMultipartNonFiniteLocation(t *testing.T) {
	_, _, err := EncodeMultipart(map[string]Value{
		"loc": LocationValue{Lat: math.NaN(), Lon: 0},
	})
	assert.True(t, IsUnrepresentable(err), "got %v", err)
}

// TestMultipartStableWithinCall asserts that one snapshot always
// encodes to the same body apart from the boundary token.
func TestMultipartStableWithinCall(t *testing.T) {
	values := map[string]Value{
		"b": TextValue("2"),
		"a": TextValue("1"),
		"c": TextValue("3"),
	}

	names := func() []string {
		body, ct, err := EncodeMultipart(values)
		require.NoError(t, err)
		parts := parseParts(t, body, ct)
		out := make([]string, len(parts))
		for i, p := range parts {
			out[i] = p.name
		}
		return out
	}

	first := names()
	assert.Equal(t, []string{"a", "b", "c"}, first)
	assert.Equal(t, first, names())
}
