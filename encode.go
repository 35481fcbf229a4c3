package sdui

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
)

// EncodePage serializes the page to the wire format.
//
// Encoding is total except for non-finite numbers, which fail with an
// unrepresentable error (see IsUnrepresentable). Item identities are
// never written; decode(encode(p)) reproduces p up to fresh identities.
func EncodePage(p *Page) ([]byte, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, asEncodeErr(err)
	}
	return data, nil
}

// WritePage encodes the page and writes it to w.
func WritePage(p *Page, w io.Writer) error {
	data, err := EncodePage(p)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// MarshalJSON emits the wrapped node with its type tag first.
// The item identity is deliberately not part of the output.
func (it Item) MarshalJSON() ([]byte, error) {
	data, err := marshalNode(it.Node)
	if err != nil {
		return nil, asEncodeErr(err)
	}
	return data, nil
}

// asEncodeErr strips the json package's marshaler wrapping so that the
// error predicates in errors.go see the original error.
func asEncodeErr(err error) error {
	for {
		me, ok := err.(*json.MarshalerError)
		if !ok {
			break
		}
		err = me.Err
	}
	if ue, ok := err.(*json.UnsupportedValueError); ok {
		return newUnrepresentable("unrepresentable value %v", ue.Str)
	}
	return err
}

func finite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return newUnrepresentable("field %q holds a non-finite number", field)
	}
	return nil
}

func finiteOpt(field string, v *float64) error {
	if v == nil {
		return nil
	}
	return finite(field, *v)
}

func marshalNode(n Node) ([]byte, error) {
	switch x := n.(type) {

	case *Text:
		return json.Marshal(struct {
			Type      string `json:"type"`
			Style     Style  `json:"style"`
			Text      string `json:"text"`
			LineLimit *int   `json:"lineLimit,omitempty"`
		}{"text", x.Style, x.Text, x.LineLimit})

	case *Link:
		return json.Marshal(struct {
			Type string `json:"type"`
			Text string `json:"text"`
			URL  string `json:"url"`
		}{"link", x.Text, x.URL})

	case *CodeBlock:
		return json.Marshal(struct {
			Type     string `json:"type"`
			Code     string `json:"code"`
			Language string `json:"language"`
		}{"codeBlock", x.Code, x.Language})

	case *Image:
		for _, f := range []struct {
			name string
			val  *float64
		}{{"width", x.Width}, {"height", x.Height}, {"cornerRadius", x.CornerRadius}} {
			if err := finiteOpt(f.name, f.val); err != nil {
				return nil, err
			}
		}
		return json.Marshal(struct {
			Type         string   `json:"type"`
			URL          string   `json:"url"`
			Caption      *string  `json:"caption,omitempty"`
			Width        *float64 `json:"width,omitempty"`
			Height       *float64 `json:"height,omitempty"`
			CornerRadius *float64 `json:"cornerRadius,omitempty"`
		}{"image", x.URL, x.Caption, x.Width, x.Height, x.CornerRadius})

	case *Quote:
		return json.Marshal(struct {
			Type string `json:"type"`
			Text string `json:"text"`
		}{"quote", x.Text})

	case *Divider:
		return json.Marshal(struct {
			Type string `json:"type"`
			Text string `json:"text"`
		}{"divider", x.Text})

	case *Stack:
		if err := finiteOpt("spacing", x.Spacing); err != nil {
			return nil, err
		}
		children := x.Children
		if children == nil {
			children = []Item{}
		}
		return json.Marshal(struct {
			Type     string   `json:"type"`
			Axis     Axis     `json:"axis"`
			Spacing  *float64 `json:"spacing,omitempty"`
			Children []Item   `json:"children"`
		}{"stack", x.Axis, x.Spacing, children})

	case *NavigationLink:
		label := x.Label
		if label == nil {
			label = []Item{}
		}
		return json.Marshal(struct {
			Type        string `json:"type"`
			Label       []Item `json:"label"`
			Destination *Page  `json:"destination"`
		}{"navigationLink", label, x.Destination})

	case *VideoPlayer:
		if err := finiteOpt("height", x.Height); err != nil {
			return nil, err
		}
		return json.Marshal(struct {
			Type   string   `json:"type"`
			URL    string   `json:"url"`
			Height *float64 `json:"height,omitempty"`
		}{"videoPlayer", x.URL, x.Height})

	case *TextInput:
		return json.Marshal(struct {
			Type        string  `json:"type"`
			Label       string  `json:"label"`
			Placeholder *string `json:"placeholder,omitempty"`
			Key         string  `json:"key"`
		}{"textInput", x.Label, x.Placeholder, x.Key})

	case *MultipleChoice:
		options := x.Options
		if options == nil {
			options = []string{}
		}
		return json.Marshal(struct {
			Type     string   `json:"type"`
			Question string   `json:"question"`
			Options  []string `json:"options"`
			Key      string   `json:"key"`
		}{"multipleChoice", x.Question, options, x.Key})

	case *VoiceNote:
		return json.Marshal(struct {
			Type  string `json:"type"`
			Label string `json:"label"`
			Key   string `json:"key"`
		}{"voiceNote", x.Label, x.Key})

	case *PhotoUpload:
		return json.Marshal(struct {
			Type  string `json:"type"`
			Label string `json:"label"`
			Key   string `json:"key"`
		}{"photoUpload", x.Label, x.Key})

	case *MapLocation:
		if x.InitialRegion != nil {
			r := x.InitialRegion
			for _, f := range []struct {
				name string
				val  float64
			}{
				{"latitude", r.Lat},
				{"longitude", r.Lon},
				{"latitudeDelta", r.LatDelta},
				{"longitudeDelta", r.LonDelta},
			} {
				if err := finite(f.name, f.val); err != nil {
					return nil, err
				}
			}
		}
		for _, pm := range x.Placemarks {
			if err := finite("latitude", pm.Lat); err != nil {
				return nil, err
			}
			if err := finite("longitude", pm.Lon); err != nil {
				return nil, err
			}
		}

		// A nil slice is absent from the wire, a non-nil empty slice is
		// an explicit empty list. omitempty cannot tell those apart, the
		// pointer indirection can.
		var placemarks *[]Placemark
		if x.Placemarks != nil {
			placemarks = &x.Placemarks
		}
		return json.Marshal(struct {
			Type          string       `json:"type"`
			Label         string       `json:"label"`
			InitialRegion *Region      `json:"initialRegion,omitempty"`
			Placemarks    *[]Placemark `json:"placemarks,omitempty"`
			Key           string       `json:"key"`
		}{"mapLocation", x.Label, x.InitialRegion, placemarks, x.Key})

	case *SubmitButton:
		return json.Marshal(struct {
			Type     string `json:"type"`
			Label    string `json:"label"`
			Endpoint string `json:"endpoint"`
		}{"submitButton", x.Label, x.Endpoint})
	}

	return nil, fmt.Errorf("cannot encode node of type %T", n)
}
