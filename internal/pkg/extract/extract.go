// Package extract pulls the embedded JSON state blob out of the analytics
// host's HTML page.
package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrNoEmbeddedData reports that the page carries no recognizable state blob.
var ErrNoEmbeddedData = errors.New("no embedded data block in page")

// stateElementIDs are the script element ids probed for the state blob, in order.
var stateElementIDs = []string{
	"posthog-app-context",
	"__NEXT_DATA__",
}

// FromHTML locates the embedded state <script> element of an analytics page
// and decodes its JSON payload.
//
// Depending on the producing system's version the blob is either plain JSON
// or a JSON-encoded string of JSON. The encoding is not self-describing, so
// decoding attempts a structured decode and unwraps one string layer when the
// first pass yields one.
func FromHTML(r io.Reader) (map[string]any, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing page: %w", err)
	}

	blob, found := findStateBlob(doc)
	if !found {
		return nil, ErrNoEmbeddedData
	}

	payload, err := DecodePayload([]byte(blob))
	if err != nil {
		return nil, fmt.Errorf("decoding embedded data: %w", err)
	}

	return payload, nil
}

func findStateBlob(doc *goquery.Document) (string, bool) {
	for _, id := range stateElementIDs {
		if sel := doc.Find("script#" + id); sel.Length() > 0 {
			if text := strings.TrimSpace(sel.First().Text()); text != "" {
				return text, true
			}
		}
	}

	// last resort: any JSON script body that mentions an insight marker
	var blob string
	doc.Find(`script[type="application/json"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := strings.TrimSpace(sel.Text())
		if strings.Contains(text, `"insight"`) || strings.Contains(text, `"tiles"`) {
			blob = text

			return false
		}

		return true
	})

	return blob, blob != ""
}

// DecodePayload decodes a JSON blob that may be single- or double-encoded:
// attempt a structured decode twice and accept the first success.
func DecodePayload(blob []byte) (map[string]any, error) {
	var once any
	if err := json.Unmarshal(blob, &once); err != nil {
		return nil, err
	}

	if inner, doubleEncoded := once.(string); doubleEncoded {
		if err := json.Unmarshal([]byte(inner), &once); err != nil {
			return nil, err
		}
	}

	payload, ok := once.(map[string]any)
	if !ok {
		return nil, errors.New("embedded data is not an object")
	}

	return payload, nil
}
