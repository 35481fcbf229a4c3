package api

import (
	"encoding/json"
	"fmt"
)

// Update events pushed by the content service.
const (
	PageChanged = "pageChanged"
	PageDeleted = "pageDeleted"
)

// Update notifies that a page document changed on the server.
// Clients typically drop the page from their cache and re-fetch it the
// next time it is shown.
type Update struct {
	Event string `json:"event"`
	Name  string `json:"name"`
}

func parseUpdate(data []byte) (Update, error) {
	var u Update
	err := json.Unmarshal(data, &u)
	if err != nil {
		return u, err
	}

	switch u.Event {
	case PageChanged, PageDeleted:
		// ok
	default:
		return u, fmt.Errorf("unexpected update event %q", u.Event)
	}

	if u.Name == "" {
		return u, fmt.Errorf("update without a page name")
	}

	return u, nil
}
