package sdui

import (
	"bytes"
	"math"
	"sort"
	"strconv"

	"github.com/google/uuid"
)

// EncodeMultipart converts a form value snapshot into a single
// multipart/form-data body.
//
// It returns the body and the Content-Type header value carrying the
// boundary, e.g. "multipart/form-data; boundary=Boundary-<uuid>". The
// boundary is fresh for every call; the uuid makes a collision with
// field content practically impossible.
//
// Text and choice values become one text part each. Voice and photo
// blobs become one binary part each (voice.m4a / photo.jpg). A location
// expands to the parts <key>.lat and <key>.lng, plus <key>.name when a
// name is present. Keys are emitted in sorted order so that one
// snapshot always encodes to the same body.
func EncodeMultipart(values map[string]Value) ([]byte, string, error) {
	b := newMultipartBuilder()

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		switch v := values[key].(type) {
		case TextValue:
			b.addText(key, string(v))
		case ChoiceValue:
			b.addText(key, string(v))
		case VoiceValue:
			b.addFile(key, "voice.m4a", "audio/m4a", v)
		case PhotoValue:
			b.addFile(key, "photo.jpg", "image/jpeg", v)
		case LocationValue:
			if math.IsNaN(v.Lat) || math.IsInf(v.Lat, 0) ||
				math.IsNaN(v.Lon) || math.IsInf(v.Lon, 0) {
				return nil, "", newUnrepresentable("location %q holds a non-finite coordinate", key)
			}
			b.addText(key+".lat", formatCoord(v.Lat))
			b.addText(key+".lng", formatCoord(v.Lon))
			if v.Name != nil {
				b.addText(key+".name", *v.Name)
			}
		}
	}

	body, contentType := b.finalize()
	return body, contentType, nil
}

// formatCoord renders a coordinate as locale-independent decimal text
// with '.' as the separator.
func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

type multipartBuilder struct {
	boundary string
	body     bytes.Buffer
}

func newMultipartBuilder() *multipartBuilder {
	return &multipartBuilder{
		boundary: "Boundary-" + uuid.New().String(),
	}
}

func (b *multipartBuilder) addText(name, value string) {
	b.body.WriteString("--" + b.boundary + "\r\n")
	b.body.WriteString("Content-Disposition: form-data; name=\"" + name + "\"\r\n\r\n")
	b.body.WriteString(value)
	b.body.WriteString("\r\n")
}

func (b *multipartBuilder) addFile(name, filename, mimeType string, data []byte) {
	b.body.WriteString("--" + b.boundary + "\r\n")
	b.body.WriteString("Content-Disposition: form-data; name=\"" + name + "\"; filename=\"" + filename + "\"\r\n")
	b.body.WriteString("Content-Type: " + mimeType + "\r\n\r\n")
	b.body.Write(data)
	b.body.WriteString("\r\n")
}

func (b *multipartBuilder) finalize() ([]byte, string) {
	var full bytes.Buffer
	full.Write(b.body.Bytes())
	full.WriteString("--" + b.boundary + "--\r\n")

	return full.Bytes(), "multipart/form-data; boundary=" + b.boundary
}
