package sdui

import (
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestDecodeTestdata(t *testing.T) {
	data, err := os.ReadFile("./testdata/feedback_form.json")
	if err != nil {
		t.Fatal(err)
	}

	p, err := DecodePage(data)
	if err != nil {
		t.Fatal(err)
	}

	if p.Title != "Feedback" {
		t.Errorf("unexpected title %q", p.Title)
	}

	expectedItems := 12
	if len(p.Content) != expectedItems {
		t.Fatalf("unexpected number of items: %v != %v", len(p.Content), expectedItems)
	}

	txt, ok := p.Content[0].Node.(*Text)
	if !ok {
		t.Fatalf("unexpected node type %T", p.Content[0].Node)
	}
	if txt.Style != Title {
		t.Errorf("unexpected style %v", txt.Style)
	}
	if txt.LineLimit != nil {
		t.Errorf("lineLimit should be absent")
	}

	body, ok := p.Content[1].Node.(*Text)
	if !ok {
		t.Fatalf("unexpected node type %T", p.Content[1].Node)
	}
	if body.LineLimit == nil || *body.LineLimit != 4 {
		t.Errorf("unexpected lineLimit %v", body.LineLimit)
	}

	loc, ok := p.Content[8].Node.(*MapLocation)
	if !ok {
		t.Fatalf("unexpected node type %T", p.Content[8].Node)
	}
	if loc.InitialRegion == nil || loc.InitialRegion.Lat != 37.3349 {
		t.Errorf("unexpected initial region %+v", loc.InitialRegion)
	}
	if len(loc.Placemarks) != 1 || loc.Placemarks[0].ID != "hq" {
		t.Errorf("unexpected placemarks %+v", loc.Placemarks)
	}

	nav, ok := p.Content[10].Node.(*NavigationLink)
	if !ok {
		t.Fatalf("unexpected node type %T", p.Content[10].Node)
	}
	if nav.Destination.Title != "Data Handling" {
		t.Errorf("unexpected destination title %q", nav.Destination.Title)
	}
	if len(nav.Destination.Content) != 2 {
		t.Errorf("unexpected destination content")
	}
}

// TestFreshIdentities asserts that decoding assigns a distinct identity
// to every item and never reads one from the document.
func TestFreshIdentities(t *testing.T) {
	data := []byte(`{
		"title": "T",
		"content": [
			{"type": "quote", "text": "a", "id": "11111111-1111-1111-1111-111111111111"},
			{"type": "quote", "text": "b"}
		]
	}`)

	p, err := DecodePage(data)
	if err != nil {
		t.Fatal(err)
	}

	seen := make(map[uuid.UUID]bool)
	for _, it := range p.Content {
		if it.ID == (uuid.UUID{}) {
			t.Errorf("item has zero identity")
		}
		if seen[it.ID] {
			t.Errorf("duplicate item identity %v", it.ID)
		}
		seen[it.ID] = true
	}

	if seen[uuid.MustParse("11111111-1111-1111-1111-111111111111")] {
		t.Errorf("identity was read from the wire")
	}

	// decoding the same bytes again yields different identities
	q, err := DecodePage(data)
	if err != nil {
		t.Fatal(err)
	}
	if q.Content[0].ID == p.Content[0].ID {
		t.Errorf("identities are not fresh per decode")
	}
}

func TestMalformedInput(t *testing.T) {
	cases := []string{
		"not json at all",
		"",
		"[1, 2, 3]",
		`"just a string"`,
	}
	for _, c := range cases {
		_, err := DecodePage([]byte(c))
		if !IsMalformedInput(err) {
			t.Errorf("input %q: expected malformed input, got %v", c, err)
		}
	}
}

func TestPageSchema(t *testing.T) {
	cases := []string{
		`{"content": []}`,
		`{"title": "T"}`,
		`{"title": 7, "content": []}`,
		`{"title": "T", "content": {}}`,
		`{"title": "T", "content": null}`,
	}
	for _, c := range cases {
		_, err := DecodePage([]byte(c))
		if !IsSchemaViolation(err) {
			t.Errorf("input %q: expected schema violation, got %v", c, err)
		}
	}
}

func TestUnknownVariant(t *testing.T) {
	data := []byte(`{"title": "T", "content": [{"type": "bogus"}]}`)

	_, err := DecodePage(data)
	if !IsUnknownVariant(err) {
		t.Fatalf("expected unknown variant, got %v", err)
	}

	e := err.(*DecodeError)
	if e.Tag != "bogus" {
		t.Errorf("unexpected tag %q", e.Tag)
	}
	if e.Path != "content[0]" {
		t.Errorf("unexpected path %q", e.Path)
	}
}

func TestMissingField(t *testing.T) {
	data := []byte(`{"title": "T", "content": [{"type": "link", "text": "click"}]}`)

	_, err := DecodePage(data)
	if !IsMissingField(err) {
		t.Fatalf("expected missing field, got %v", err)
	}

	e := err.(*DecodeError)
	if e.Field != "url" {
		t.Errorf("unexpected field %q", e.Field)
	}
}

// TestNestedErrorPath asserts that errors from embedded documents carry
// the full path to the offending entry.
func TestNestedErrorPath(t *testing.T) {
	data := []byte(`{
		"title": "T",
		"content": [
			{"type": "divider", "text": ""},
			{
				"type": "navigationLink",
				"label": [{"type": "quote", "text": "go"}],
				"destination": {
					"title": "Nested",
					"content": [
						{"type": "quote", "text": "fine"},
						{"type": "link", "text": "broken"}
					]
				}
			}
		]
	}`)

	_, err := DecodePage(data)
	if !IsMissingField(err) {
		t.Fatalf("expected missing field, got %v", err)
	}

	e := err.(*DecodeError)
	if e.Path != "content[1].destination.content[1]" {
		t.Errorf("unexpected path %q", e.Path)
	}
	if !strings.Contains(err.Error(), `missing field "url"`) {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestStackChildPath(t *testing.T) {
	data := []byte(`{
		"title": "T",
		"content": [{
			"type": "stack",
			"axis": "v",
			"children": [{"type": "image"}]
		}]
	}`)

	_, err := DecodePage(data)
	if !IsMissingField(err) {
		t.Fatalf("expected missing field, got %v", err)
	}

	e := err.(*DecodeError)
	if e.Path != "content[0].children[0]" {
		t.Errorf("unexpected path %q", e.Path)
	}
}

func TestMaxDepth(t *testing.T) {
	// nest stacks deeper than the limit allows
	depth := 10
	var b strings.Builder
	b.WriteString(`{"title": "T", "content": [`)
	for i := 0; i < depth; i++ {
		b.WriteString(`{"type": "stack", "axis": "v", "children": [`)
	}
	b.WriteString(`{"type": "divider", "text": ""}`)
	for i := 0; i < depth; i++ {
		b.WriteString(`]}`)
	}
	b.WriteString(`]}`)

	d := Decoder{MaxDepth: 5}
	_, err := d.DecodePage([]byte(b.String()))
	if !IsSchemaViolation(err) {
		t.Fatalf("expected schema violation, got %v", err)
	}
	if !strings.Contains(err.Error(), "depth") {
		t.Errorf("unexpected message %q", err.Error())
	}

	// the same document passes with a generous limit
	_, err = DecodePage([]byte(b.String()))
	if err != nil {
		t.Errorf("default limit should accept depth %v: %v", depth, err)
	}
}

func TestOptionalNull(t *testing.T) {
	data := []byte(`{
		"title": "T",
		"content": [{
			"type": "textInput",
			"label": "Name",
			"placeholder": null,
			"key": "name"
		}]
	}`)

	p, err := DecodePage(data)
	if err != nil {
		t.Fatal(err)
	}

	in := p.Content[0].Node.(*TextInput)
	if in.Placeholder != nil {
		t.Errorf("null placeholder should decode as absent")
	}
}

func TestInvalidEnumValues(t *testing.T) {
	cases := []string{
		`{"title": "T", "content": [{"type": "text", "style": "huge", "text": "x"}]}`,
		`{"title": "T", "content": [{"type": "stack", "axis": "diagonal", "children": []}]}`,
	}
	for _, c := range cases {
		_, err := DecodePage([]byte(c))
		if !IsSchemaViolation(err) {
			t.Errorf("input %q: expected schema violation, got %v", c, err)
		}
	}
}

func TestPlacemarksAbsentVsEmpty(t *testing.T) {
	absent := []byte(`{"title": "T", "content": [
		{"type": "mapLocation", "label": "L", "key": "k"}
	]}`)
	empty := []byte(`{"title": "T", "content": [
		{"type": "mapLocation", "label": "L", "placemarks": [], "key": "k"}
	]}`)

	p, err := DecodePage(absent)
	if err != nil {
		t.Fatal(err)
	}
	if p.Content[0].Node.(*MapLocation).Placemarks != nil {
		t.Errorf("absent placemarks should decode to nil")
	}

	p, err = DecodePage(empty)
	if err != nil {
		t.Fatal(err)
	}
	pm := p.Content[0].Node.(*MapLocation).Placemarks
	if pm == nil || len(pm) != 0 {
		t.Errorf("empty placemarks should decode to an empty, non-nil slice")
	}
}
