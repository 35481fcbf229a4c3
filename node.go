package sdui

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Kind identifies one of the closed set of content node kinds.
// The set is fixed; the decoder rejects any other type tag.
type Kind int

const (
	KindText Kind = iota
	KindLink
	KindCodeBlock
	KindImage
	KindQuote
	KindDivider
	KindStack
	KindNavigationLink
	KindVideoPlayer
	KindTextInput
	KindMultipleChoice
	KindVoiceNote
	KindPhotoUpload
	KindMapLocation
	KindSubmitButton
)

var kindNames = map[Kind]string{
	KindText:           "text",
	KindLink:           "link",
	KindCodeBlock:      "codeBlock",
	KindImage:          "image",
	KindQuote:          "quote",
	KindDivider:        "divider",
	KindStack:          "stack",
	KindNavigationLink: "navigationLink",
	KindVideoPlayer:    "videoPlayer",
	KindTextInput:      "textInput",
	KindMultipleChoice: "multipleChoice",
	KindVoiceNote:      "voiceNote",
	KindPhotoUpload:    "photoUpload",
	KindMapLocation:    "mapLocation",
	KindSubmitButton:   "submitButton",
}

func (k Kind) String() string {
	s, ok := kindNames[k]
	if !ok {
		return "UNKNOWN"
	}
	return s
}

func kindFromString(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return k, true
		}
	}
	return 0, false
}

// Node is one entry in a page's content.
// The concrete types form a closed set; see Kind.
type Node interface {
	Kind() Kind
}

// Style is the text style for a Text node.
type Style int

const (
	Title Style = iota
	Subtitle
	Body
	Caption
)

func (s Style) String() string {
	switch s {
	case Title:
		return "title"
	case Subtitle:
		return "subtitle"
	case Body:
		return "body"
	case Caption:
		return "caption"
	default:
		return "UNKNOWN"
	}
}

func styleFromString(v string) (Style, bool) {
	switch v {
	case "title":
		return Title, true
	case "subtitle":
		return Subtitle, true
	case "body":
		return Body, true
	case "caption":
		return Caption, true
	}
	return 0, false
}

func (s *Style) UnmarshalJSON(b []byte) error {
	var v string
	err := json.Unmarshal(b, &v)
	if err != nil {
		return err
	}

	x, ok := styleFromString(v)
	if !ok {
		return fmt.Errorf("invalid text style %q", v)
	}

	*s = x
	return nil
}

func (s Style) MarshalJSON() ([]byte, error) {
	v := s.String()
	if v == "UNKNOWN" {
		return nil, fmt.Errorf("invalid text style %v", int(s))
	}

	buf := bytes.NewBufferString(`"`)
	buf.WriteString(v)
	buf.WriteString(`"`)

	return buf.Bytes(), nil
}

// Axis is the layout direction of a Stack.
type Axis int

const (
	Horizontal Axis = iota
	Vertical
)

func (a Axis) String() string {
	switch a {
	case Horizontal:
		return "h"
	case Vertical:
		return "v"
	default:
		return "UNKNOWN"
	}
}

func axisFromString(v string) (Axis, bool) {
	switch v {
	case "h":
		return Horizontal, true
	case "v":
		return Vertical, true
	}
	return 0, false
}

func (a *Axis) UnmarshalJSON(b []byte) error {
	var v string
	err := json.Unmarshal(b, &v)
	if err != nil {
		return err
	}

	x, ok := axisFromString(v)
	if !ok {
		return fmt.Errorf("invalid axis %q", v)
	}

	*a = x
	return nil
}

func (a Axis) MarshalJSON() ([]byte, error) {
	v := a.String()
	if v == "UNKNOWN" {
		return nil, fmt.Errorf("invalid axis %v", int(a))
	}

	buf := bytes.NewBufferString(`"`)
	buf.WriteString(v)
	buf.WriteString(`"`)

	return buf.Bytes(), nil
}

// Text is a styled run of text.
type Text struct {
	Style Style
	Text  string
	// LineLimit truncates display to n lines, nil for no limit.
	LineLimit *int
}

// Link is a tappable text link. The URL is not validated at decode time.
type Link struct {
	Text string
	URL  string
}

// CodeBlock holds preformatted source code with a language hint.
type CodeBlock struct {
	Code     string
	Language string
}

// Image references a remote image with optional display hints.
type Image struct {
	URL          string
	Caption      *string
	Width        *float64
	Height       *float64
	CornerRadius *float64
}

// Quote is a block quote.
type Quote struct {
	Text string
}

// Divider is a separator line. An empty text renders as a plain rule,
// a non-empty text as a labeled separator.
type Divider struct {
	Text string
}

// Stack lays out child items along an axis.
// Spacing is nil when the document does not specify one; the rendering
// layer chooses its own default in that case.
type Stack struct {
	Axis     Axis
	Spacing  *float64
	Children []Item
}

// NavigationLink displays the label items and navigates to an embedded
// destination page. The destination is a fully owned sub-tree.
type NavigationLink struct {
	Label       []Item
	Destination *Page
}

// VideoPlayer embeds a video by URL.
type VideoPlayer struct {
	URL    string
	Height *float64
}

// TextInput is a free-text form field bound to Key.
type TextInput struct {
	Label       string
	Placeholder *string
	Key         string
}

// MultipleChoice is a single-select question bound to Key.
type MultipleChoice struct {
	Question string
	Options  []string
	Key      string
}

// VoiceNote records audio into the form value bound to Key.
type VoiceNote struct {
	Label string
	Key   string
}

// PhotoUpload attaches an image to the form value bound to Key.
type PhotoUpload struct {
	Label string
	Key   string
}

// MapLocation picks a geo coordinate bound to Key.
//
// Placemarks distinguishes "no data" from "empty": a nil slice is absent
// from the wire format, a non-nil empty slice is encoded as an empty list.
type MapLocation struct {
	Label         string
	InitialRegion *Region
	Placemarks    []Placemark
	Key           string
}

// SubmitButton triggers form submission to Endpoint.
type SubmitButton struct {
	Label    string
	Endpoint string
}

// Region is a map viewport.
type Region struct {
	Lat      float64 `json:"latitude"`
	Lon      float64 `json:"longitude"`
	LatDelta float64 `json:"latitudeDelta"`
	LonDelta float64 `json:"longitudeDelta"`
}

// Placemark is a named pin on a map.
type Placemark struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Lat  float64 `json:"latitude"`
	Lon  float64 `json:"longitude"`
}

func (n *Text) Kind() Kind           { return KindText }
func (n *Link) Kind() Kind           { return KindLink }
func (n *CodeBlock) Kind() Kind      { return KindCodeBlock }
func (n *Image) Kind() Kind          { return KindImage }
func (n *Quote) Kind() Kind          { return KindQuote }
func (n *Divider) Kind() Kind        { return KindDivider }
func (n *Stack) Kind() Kind          { return KindStack }
func (n *NavigationLink) Kind() Kind { return KindNavigationLink }
func (n *VideoPlayer) Kind() Kind    { return KindVideoPlayer }
func (n *TextInput) Kind() Kind      { return KindTextInput }
func (n *MultipleChoice) Kind() Kind { return KindMultipleChoice }
func (n *VoiceNote) Kind() Kind      { return KindVoiceNote }
func (n *PhotoUpload) Kind() Kind    { return KindPhotoUpload }
func (n *MapLocation) Kind() Kind    { return KindMapLocation }
func (n *SubmitButton) Kind() Kind   { return KindSubmitButton }

// Validate checks a decoded page beyond the shape guarantees of the
// decoder: enum values in range, positive line limits, non-empty form
// keys. Decoding deliberately accepts these; validation is opt-in.
func (p *Page) Validate() error {
	return p.Walk(func(it Item) error {
		return validateNode(it.Node)
	})
}

func validateNode(n Node) error {
	switch x := n.(type) {
	case *Text:
		if x.Style.String() == "UNKNOWN" {
			return NewValidationError("invalid text style %v", int(x.Style))
		}
		if x.LineLimit != nil && *x.LineLimit < 1 {
			return NewValidationError("lineLimit must be positive, got %v", *x.LineLimit)
		}
	case *Stack:
		if x.Axis.String() == "UNKNOWN" {
			return NewValidationError("invalid axis %v", int(x.Axis))
		}
		if x.Spacing != nil && *x.Spacing < 0 {
			return NewValidationError("spacing must not be negative, got %v", *x.Spacing)
		}
	case *TextInput:
		if x.Key == "" {
			return NewValidationError("textInput requires a key")
		}
	case *MultipleChoice:
		if x.Key == "" {
			return NewValidationError("multipleChoice requires a key")
		}
		if len(x.Options) == 0 {
			return NewValidationError("multipleChoice requires options")
		}
	case *VoiceNote:
		if x.Key == "" {
			return NewValidationError("voiceNote requires a key")
		}
	case *PhotoUpload:
		if x.Key == "" {
			return NewValidationError("photoUpload requires a key")
		}
	case *MapLocation:
		if x.Key == "" {
			return NewValidationError("mapLocation requires a key")
		}
	case *SubmitButton:
		if x.Endpoint == "" {
			return NewValidationError("submitButton requires an endpoint")
		}
	}
	return nil
}
