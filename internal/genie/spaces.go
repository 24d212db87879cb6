package genie

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// SpacesPath is the collection endpoint for Genie spaces.
const SpacesPath = "/api/2.0/genie/spaces"

const serializedSpaceField = "serialized_space"

// Space is the envelope returned by GET /spaces/{id}. The raw body is kept so
// fields this tool does not know about are sent back unchanged on PATCH.
type Space struct {
	raw []byte
}

// SpaceSummary is one entry of the list endpoint.
type SpaceSummary struct {
	ID    string `json:"space_id"`
	Title string `json:"title,omitempty"`
}

// NewSpace wraps a raw envelope. The body must be a JSON object.
func NewSpace(raw []byte) (*Space, error) {
	if !gjson.ValidBytes(raw) || !gjson.ParseBytes(raw).IsObject() {
		return nil, fmt.Errorf("space envelope is not a JSON object")
	}
	return &Space{raw: append([]byte(nil), raw...)}, nil
}

// ID returns space_id, or "" when absent.
func (s *Space) ID() string { return gjson.GetBytes(s.raw, "space_id").String() }

// Title returns title, or "" when absent.
func (s *Space) Title() string { return gjson.GetBytes(s.raw, "title").String() }

// SerializedSpace returns the embedded document text. ok is false when the
// field is missing or not a JSON string.
func (s *Space) SerializedSpace() (text string, ok bool) {
	r := gjson.GetBytes(s.raw, serializedSpaceField)
	if r.Type != gjson.String {
		return "", false
	}
	return r.String(), true
}

// WithSerializedSpace returns a copy of the envelope whose serialized_space is
// text. All other bytes of the envelope are left as they were.
func (s *Space) WithSerializedSpace(text string) (*Space, error) {
	src := append([]byte(nil), s.raw...)
	out, err := sjson.SetBytes(src, serializedSpaceField, text)
	if err != nil {
		return nil, fmt.Errorf("set %s: %w", serializedSpaceField, err)
	}
	return &Space{raw: out}, nil
}

// Raw returns a copy of the envelope bytes.
func (s *Space) Raw() []byte { return append([]byte(nil), s.raw...) }

// GetSpace fetches a space including its serialized document.
func (c *Client) GetSpace(ctx context.Context, id string) (*Space, error) {
	q := url.Values{}
	q.Set("include_serialized_space", "true")

	body, err := c.do(ctx, http.MethodGet, spacePath(id), q, nil)
	if err != nil {
		return nil, err
	}
	sp, err := NewSpace(body)
	if err != nil {
		return nil, fmt.Errorf("get space %s: %w", id, err)
	}
	return sp, nil
}

// UpdateSpace sends the full envelope as a PATCH to the space.
func (c *Client) UpdateSpace(ctx context.Context, id string, sp *Space) error {
	_, err := c.do(ctx, http.MethodPatch, spacePath(id), nil, sp.raw)
	return err
}

// ListSpaces returns the first page of spaces in server order.
func (c *Client) ListSpaces(ctx context.Context) ([]SpaceSummary, error) {
	body, err := c.do(ctx, http.MethodGet, SpacesPath, nil, nil)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("list spaces: invalid JSON response")
	}

	var out []SpaceSummary
	gjson.GetBytes(body, "spaces").ForEach(func(_, v gjson.Result) bool {
		out = append(out, SpaceSummary{
			ID:    v.Get("space_id").String(),
			Title: v.Get("title").String(),
		})
		return true
	})
	return out, nil
}

// FirstSpaceID returns the id of the first listed space.
func (c *Client) FirstSpaceID(ctx context.Context) (string, error) {
	spaces, err := c.ListSpaces(ctx)
	if err != nil {
		return "", err
	}
	if len(spaces) == 0 || spaces[0].ID == "" {
		return "", ErrNoSpaces
	}
	return spaces[0].ID, nil
}

func spacePath(id string) string {
	return SpacesPath + "/" + url.PathEscape(id)
}
