package main

import (
	"fmt"
	"strings"

	"github.com/sduikit/sdui"
)

// defaultSpacing is the spacing applied to stacks that do not specify
// one. The codec preserves the absence; the presentation layer decides.
const defaultSpacing = 8.0

func doShow(src sdui.Source, name string) error {
	page, err := sdui.FetchPage(src, name)
	if err != nil {
		return err
	}

	showPage(page, 0)
	return nil
}

func showPage(p *sdui.Page, level int) {
	indent(level)
	fmt.Printf("# %v\n", p.Title)
	showItems(p.Content, level)
}

func showItems(items []sdui.Item, level int) {
	for _, it := range items {
		indent(level)
		fmt.Printf("- %v\n", describe(it.Node))

		switch n := it.Node.(type) {
		case *sdui.Stack:
			showItems(n.Children, level+1)
		case *sdui.NavigationLink:
			showItems(n.Label, level+1)
			if n.Destination != nil {
				indent(level + 1)
				fmt.Println("->")
				showPage(n.Destination, level+2)
			}
		}
	}
}

func describe(n sdui.Node) string {
	switch x := n.(type) {
	case *sdui.Text:
		return fmt.Sprintf("text (%v) %q", x.Style, excerpt(x.Text))
	case *sdui.Link:
		return fmt.Sprintf("link %q -> %v", excerpt(x.Text), x.URL)
	case *sdui.CodeBlock:
		return fmt.Sprintf("code (%v), %d chars", x.Language, len(x.Code))
	case *sdui.Image:
		return fmt.Sprintf("image %v", x.URL)
	case *sdui.Quote:
		return fmt.Sprintf("quote %q", excerpt(x.Text))
	case *sdui.Divider:
		if x.Text == "" {
			return "divider"
		}
		return fmt.Sprintf("divider %q", x.Text)
	case *sdui.Stack:
		spacing := defaultSpacing
		if x.Spacing != nil {
			spacing = *x.Spacing
		}
		return fmt.Sprintf("stack (%v, spacing %v), %d children", x.Axis, spacing, len(x.Children))
	case *sdui.NavigationLink:
		return "navigation link"
	case *sdui.VideoPlayer:
		return fmt.Sprintf("video %v", x.URL)
	case *sdui.TextInput:
		return fmt.Sprintf("text input %q (key %v)", x.Label, x.Key)
	case *sdui.MultipleChoice:
		return fmt.Sprintf("choice %q, %d options (key %v)", excerpt(x.Question), len(x.Options), x.Key)
	case *sdui.VoiceNote:
		return fmt.Sprintf("voice note %q (key %v)", x.Label, x.Key)
	case *sdui.PhotoUpload:
		return fmt.Sprintf("photo upload %q (key %v)", x.Label, x.Key)
	case *sdui.MapLocation:
		return fmt.Sprintf("map %q, %d placemarks (key %v)", x.Label, len(x.Placemarks), x.Key)
	case *sdui.SubmitButton:
		return fmt.Sprintf("submit %q -> %v", x.Label, x.Endpoint)
	default:
		return fmt.Sprintf("%v", n.Kind())
	}
}

func excerpt(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) > 40 {
		return s[:40] + ellipsis
	}
	return s
}

func indent(level int) {
	for i := 0; i < level; i++ {
		fmt.Print("  ")
	}
}

func doKeys(src sdui.Source, name string) error {
	page, err := sdui.FetchPage(src, name)
	if err != nil {
		return err
	}

	for _, k := range page.FormKeys() {
		fmt.Println(k)
	}

	if ep := page.Endpoint(); ep != "" {
		fmt.Printf("submits to: %v\n", ep)
	}
	return nil
}
