package sdui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/sduikit/sdui/internal/logging"
)

// DefaultMaxDepth bounds the nesting of embedded pages, stacks and
// navigation link labels. The wire format itself has no bound; the
// limit guards against stack exhaustion on adversarial input.
const DefaultMaxDepth = 64

// Decoder decodes page documents.
// The zero value is ready to use and applies DefaultMaxDepth.
type Decoder struct {
	// MaxDepth overrides the nesting limit when positive.
	MaxDepth int
}

// DecodePage parses a page document with the default settings.
func DecodePage(data []byte) (*Page, error) {
	var d Decoder
	return d.DecodePage(data)
}

// ReadPage reads all of r and decodes it as a page document.
func ReadPage(r io.Reader) (*Page, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return DecodePage(data)
}

// DecodePage parses a page document.
//
// Decoding is all-or-nothing: on error, no partial page is returned.
// Every item in the resulting page carries a freshly assigned identity.
func (d *Decoder) DecodePage(data []byte) (*Page, error) {
	var m map[string]json.RawMessage
	err := json.Unmarshal(data, &m)
	if err != nil {
		return nil, newMalformedInput(err)
	}

	p, err := d.page(m, "", 0)
	if err != nil {
		logging.Debug("page decode failed: %v", err)
		return nil, err
	}
	return p, nil
}

func (d *Decoder) maxDepth() int {
	if d.MaxDepth > 0 {
		return d.MaxDepth
	}
	return DefaultMaxDepth
}

// obj gives keyed access to one decoded JSON object, carrying the
// document path for error reporting.
type obj struct {
	m    map[string]json.RawMessage
	path string
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func (o obj) str(key string) (string, error) {
	raw, ok := o.m[key]
	if !ok {
		return "", newMissingField(o.path, key)
	}

	var s string
	err := json.Unmarshal(raw, &s)
	if err != nil {
		return "", newSchemaViolation(o.path, "field %q must be a string", key)
	}
	return s, nil
}

func (o obj) optStr(key string) (*string, error) {
	raw, ok := o.m[key]
	if !ok || isNull(raw) {
		return nil, nil
	}

	var s string
	err := json.Unmarshal(raw, &s)
	if err != nil {
		return nil, newSchemaViolation(o.path, "field %q must be a string", key)
	}
	return &s, nil
}

func (o obj) num(key string) (float64, error) {
	raw, ok := o.m[key]
	if !ok {
		return 0, newMissingField(o.path, key)
	}

	var f float64
	err := json.Unmarshal(raw, &f)
	if err != nil {
		return 0, newSchemaViolation(o.path, "field %q must be a number", key)
	}
	return f, nil
}

func (o obj) optNum(key string) (*float64, error) {
	raw, ok := o.m[key]
	if !ok || isNull(raw) {
		return nil, nil
	}

	var f float64
	err := json.Unmarshal(raw, &f)
	if err != nil {
		return nil, newSchemaViolation(o.path, "field %q must be a number", key)
	}
	return &f, nil
}

func (o obj) optInt(key string) (*int, error) {
	raw, ok := o.m[key]
	if !ok || isNull(raw) {
		return nil, nil
	}

	var i int
	err := json.Unmarshal(raw, &i)
	if err != nil {
		return nil, newSchemaViolation(o.path, "field %q must be an integer", key)
	}
	return &i, nil
}

func (o obj) strs(key string) ([]string, error) {
	raw, ok := o.m[key]
	if !ok {
		return nil, newMissingField(o.path, key)
	}

	var s []string
	err := json.Unmarshal(raw, &s)
	if err != nil || s == nil {
		return nil, newSchemaViolation(o.path, "field %q must be a list of strings", key)
	}
	return s, nil
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

// page decodes the {title, content} structure shared by the top-level
// document and embedded navigation destinations.
func (d *Decoder) page(m map[string]json.RawMessage, path string, depth int) (*Page, error) {
	if depth > d.maxDepth() {
		return nil, newSchemaViolation(path, "maximum nesting depth exceeded")
	}

	rawTitle, ok := m["title"]
	if !ok {
		return nil, newSchemaViolation(path, "page requires a title")
	}
	var title string
	err := json.Unmarshal(rawTitle, &title)
	if err != nil {
		return nil, newSchemaViolation(path, "page title must be a string")
	}

	rawContent, ok := m["content"]
	if !ok {
		return nil, newSchemaViolation(path, "page requires content")
	}
	items, err := d.items(rawContent, join(path, "content"), depth)
	if err != nil {
		return nil, err
	}

	return &Page{Title: title, Content: items}, nil
}

func (d *Decoder) items(raw json.RawMessage, path string, depth int) ([]Item, error) {
	var elems []json.RawMessage
	err := json.Unmarshal(raw, &elems)
	if err != nil || elems == nil {
		return nil, newSchemaViolation(path, "expected a list of content entries")
	}

	items := make([]Item, len(elems))
	for i, e := range elems {
		it, err := d.item(e, fmt.Sprintf("%s[%d]", path, i), depth)
		if err != nil {
			return nil, err
		}
		items[i] = it
	}
	return items, nil
}

func (d *Decoder) item(raw json.RawMessage, path string, depth int) (Item, error) {
	if depth > d.maxDepth() {
		return Item{}, newSchemaViolation(path, "maximum nesting depth exceeded")
	}

	var m map[string]json.RawMessage
	err := json.Unmarshal(raw, &m)
	if err != nil {
		return Item{}, newSchemaViolation(path, "content entry must be an object")
	}
	o := obj{m, path}

	tag, err := o.str("type")
	if err != nil {
		return Item{}, err
	}

	kind, ok := kindFromString(tag)
	if !ok {
		return Item{}, newUnknownVariant(path, tag)
	}

	var n Node
	switch kind {
	case KindText:
		n, err = decodeText(o)
	case KindLink:
		n, err = decodeLink(o)
	case KindCodeBlock:
		n, err = decodeCodeBlock(o)
	case KindImage:
		n, err = decodeImage(o)
	case KindQuote:
		n, err = decodeQuote(o)
	case KindDivider:
		n, err = decodeDivider(o)
	case KindStack:
		n, err = d.decodeStack(o, depth)
	case KindNavigationLink:
		n, err = d.decodeNavigationLink(o, depth)
	case KindVideoPlayer:
		n, err = decodeVideoPlayer(o)
	case KindTextInput:
		n, err = decodeTextInput(o)
	case KindMultipleChoice:
		n, err = decodeMultipleChoice(o)
	case KindVoiceNote:
		n, err = decodeVoiceNote(o)
	case KindPhotoUpload:
		n, err = decodePhotoUpload(o)
	case KindMapLocation:
		n, err = decodeMapLocation(o)
	case KindSubmitButton:
		n, err = decodeSubmitButton(o)
	}
	if err != nil {
		return Item{}, err
	}

	return NewItem(n), nil
}

func decodeText(o obj) (Node, error) {
	s, err := o.str("style")
	if err != nil {
		return nil, err
	}
	style, ok := styleFromString(s)
	if !ok {
		return nil, newSchemaViolation(o.path, "invalid text style %q", s)
	}

	text, err := o.str("text")
	if err != nil {
		return nil, err
	}

	limit, err := o.optInt("lineLimit")
	if err != nil {
		return nil, err
	}

	return &Text{Style: style, Text: text, LineLimit: limit}, nil
}

func decodeLink(o obj) (Node, error) {
	text, err := o.str("text")
	if err != nil {
		return nil, err
	}
	url, err := o.str("url")
	if err != nil {
		return nil, err
	}
	return &Link{Text: text, URL: url}, nil
}

func decodeCodeBlock(o obj) (Node, error) {
	code, err := o.str("code")
	if err != nil {
		return nil, err
	}
	lang, err := o.str("language")
	if err != nil {
		return nil, err
	}
	return &CodeBlock{Code: code, Language: lang}, nil
}

func decodeImage(o obj) (Node, error) {
	url, err := o.str("url")
	if err != nil {
		return nil, err
	}
	caption, err := o.optStr("caption")
	if err != nil {
		return nil, err
	}
	width, err := o.optNum("width")
	if err != nil {
		return nil, err
	}
	height, err := o.optNum("height")
	if err != nil {
		return nil, err
	}
	radius, err := o.optNum("cornerRadius")
	if err != nil {
		return nil, err
	}

	return &Image{
		URL:          url,
		Caption:      caption,
		Width:        width,
		Height:       height,
		CornerRadius: radius,
	}, nil
}

func decodeQuote(o obj) (Node, error) {
	text, err := o.str("text")
	if err != nil {
		return nil, err
	}
	return &Quote{Text: text}, nil
}

func decodeDivider(o obj) (Node, error) {
	text, err := o.str("text")
	if err != nil {
		return nil, err
	}
	return &Divider{Text: text}, nil
}

func (d *Decoder) decodeStack(o obj, depth int) (Node, error) {
	s, err := o.str("axis")
	if err != nil {
		return nil, err
	}
	axis, ok := axisFromString(s)
	if !ok {
		return nil, newSchemaViolation(o.path, "invalid axis %q", s)
	}

	// The decoder keeps an absent spacing absent; the rendering layer
	// substitutes its own default.
	spacing, err := o.optNum("spacing")
	if err != nil {
		return nil, err
	}

	raw, ok := o.m["children"]
	if !ok {
		return nil, newMissingField(o.path, "children")
	}
	children, err := d.items(raw, join(o.path, "children"), depth+1)
	if err != nil {
		return nil, err
	}

	return &Stack{Axis: axis, Spacing: spacing, Children: children}, nil
}

func (d *Decoder) decodeNavigationLink(o obj, depth int) (Node, error) {
	raw, ok := o.m["label"]
	if !ok {
		return nil, newMissingField(o.path, "label")
	}
	label, err := d.items(raw, join(o.path, "label"), depth+1)
	if err != nil {
		return nil, err
	}

	raw, ok = o.m["destination"]
	if !ok {
		return nil, newMissingField(o.path, "destination")
	}
	path := join(o.path, "destination")
	var m map[string]json.RawMessage
	err = json.Unmarshal(raw, &m)
	if err != nil {
		return nil, newSchemaViolation(path, "destination must be a page object")
	}
	dest, err := d.page(m, path, depth+1)
	if err != nil {
		return nil, err
	}

	return &NavigationLink{Label: label, Destination: dest}, nil
}

func decodeVideoPlayer(o obj) (Node, error) {
	url, err := o.str("url")
	if err != nil {
		return nil, err
	}
	height, err := o.optNum("height")
	if err != nil {
		return nil, err
	}
	return &VideoPlayer{URL: url, Height: height}, nil
}

func decodeTextInput(o obj) (Node, error) {
	label, err := o.str("label")
	if err != nil {
		return nil, err
	}
	placeholder, err := o.optStr("placeholder")
	if err != nil {
		return nil, err
	}
	key, err := o.str("key")
	if err != nil {
		return nil, err
	}
	return &TextInput{Label: label, Placeholder: placeholder, Key: key}, nil
}

func decodeMultipleChoice(o obj) (Node, error) {
	question, err := o.str("question")
	if err != nil {
		return nil, err
	}
	options, err := o.strs("options")
	if err != nil {
		return nil, err
	}
	key, err := o.str("key")
	if err != nil {
		return nil, err
	}
	return &MultipleChoice{Question: question, Options: options, Key: key}, nil
}

func decodeVoiceNote(o obj) (Node, error) {
	label, err := o.str("label")
	if err != nil {
		return nil, err
	}
	key, err := o.str("key")
	if err != nil {
		return nil, err
	}
	return &VoiceNote{Label: label, Key: key}, nil
}

func decodePhotoUpload(o obj) (Node, error) {
	label, err := o.str("label")
	if err != nil {
		return nil, err
	}
	key, err := o.str("key")
	if err != nil {
		return nil, err
	}
	return &PhotoUpload{Label: label, Key: key}, nil
}

func decodeMapLocation(o obj) (Node, error) {
	label, err := o.str("label")
	if err != nil {
		return nil, err
	}

	var region *Region
	if raw, ok := o.m["initialRegion"]; ok && !isNull(raw) {
		region = &Region{}
		path := join(o.path, "initialRegion")
		var m map[string]json.RawMessage
		err = json.Unmarshal(raw, &m)
		if err != nil {
			return nil, newSchemaViolation(path, "initialRegion must be an object")
		}
		ro := obj{m, path}
		if region.Lat, err = ro.num("latitude"); err != nil {
			return nil, err
		}
		if region.Lon, err = ro.num("longitude"); err != nil {
			return nil, err
		}
		if region.LatDelta, err = ro.num("latitudeDelta"); err != nil {
			return nil, err
		}
		if region.LonDelta, err = ro.num("longitudeDelta"); err != nil {
			return nil, err
		}
	}

	// nil means the field was absent; an empty wire list decodes to an
	// empty, non-nil slice.
	var placemarks []Placemark
	if raw, ok := o.m["placemarks"]; ok && !isNull(raw) {
		path := join(o.path, "placemarks")
		var elems []json.RawMessage
		err = json.Unmarshal(raw, &elems)
		if err != nil {
			return nil, newSchemaViolation(path, "placemarks must be a list")
		}
		placemarks = make([]Placemark, len(elems))
		for i, e := range elems {
			p, err := decodePlacemark(e, fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return nil, err
			}
			placemarks[i] = p
		}
	}

	key, err := o.str("key")
	if err != nil {
		return nil, err
	}

	return &MapLocation{
		Label:         label,
		InitialRegion: region,
		Placemarks:    placemarks,
		Key:           key,
	}, nil
}

func decodePlacemark(raw json.RawMessage, path string) (Placemark, error) {
	var p Placemark
	var m map[string]json.RawMessage
	err := json.Unmarshal(raw, &m)
	if err != nil {
		return p, newSchemaViolation(path, "placemark must be an object")
	}
	o := obj{m, path}

	if p.ID, err = o.str("id"); err != nil {
		return p, err
	}
	if p.Name, err = o.str("name"); err != nil {
		return p, err
	}
	if p.Lat, err = o.num("latitude"); err != nil {
		return p, err
	}
	if p.Lon, err = o.num("longitude"); err != nil {
		return p, err
	}
	return p, nil
}

func decodeSubmitButton(o obj) (Node, error) {
	label, err := o.str("label")
	if err != nil {
		return nil, err
	}
	endpoint, err := o.str("endpoint")
	if err != nil {
		return nil, err
	}
	return &SubmitButton{Label: label, Endpoint: endpoint}, nil
}
