package models

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Status is the signed-in user's progress on a problem
type Status int

const (
	NotAttempted Status = iota
	Attempted
	Accepted
)

// ParseStatus maps the GraphQL status field. Anything but "ac" or "notac"
// means the problem was never attempted.
func ParseStatus(s string) Status {
	switch s {
	case "ac":
		return Accepted
	case "notac":
		return Attempted
	default:
		return NotAttempted
	}
}

func (s Status) String() string {
	switch s {
	case Accepted:
		return "Accepted"
	case Attempted:
		return "Attempted"
	default:
		return "Not attempted"
	}
}

// Symbol returns the single glyph shown in problem lists
func (s Status) Symbol() string {
	switch s {
	case Accepted:
		return "\U0001FBB1"
	case Attempted:
		return "\U0001FBC0"
	default:
		return "\U0001FBC4"
	}
}

// MarshalJSON writes the status the way the API reports it
func (s Status) MarshalJSON() ([]byte, error) {
	switch s {
	case Accepted:
		return []byte(`"ac"`), nil
	case Attempted:
		return []byte(`"notac"`), nil
	default:
		return []byte("null"), nil
	}
}

func (s *Status) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("invalid status %s: %w", data, err)
	}
	if raw == nil {
		*s = NotAttempted
		return nil
	}
	*s = ParseStatus(*raw)
	return nil
}

// Difficulty is the difficulty label LeetCode assigns
type Difficulty string

const (
	Easy   Difficulty = "Easy"
	Medium Difficulty = "Medium"
	Hard   Difficulty = "Hard"
)

// Problem is the metadata for one LeetCode problem
type Problem struct {
	// ID is the frontend question id shown on the website, e.g. "1"
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	TitleSlug      string     `json:"titleSlug"`
	Difficulty     Difficulty `json:"difficulty"`
	Status         Status     `json:"status"`
	AcceptanceRate float64    `json:"acRate"`
	PaidOnly       bool       `json:"paidOnly,omitempty"`
	Tags           []string   `json:"tags,omitempty"`

	// Description is the raw HTML, Snippet the starter code for the configured language
	Description string `json:"description,omitempty"`
	Snippet     string `json:"snippet,omitempty"`

	// Rendered description (persisted for search)
	RenderedDescription string `json:"renderedDescription,omitempty"`
}

// Number returns the numeric id, or 0 if the id is not a number
func (p *Problem) Number() int {
	n, err := strconv.Atoi(p.ID)
	if err != nil {
		return 0
	}
	return n
}

// URL returns the problem's page on leetcode.com
func (p *Problem) URL() string {
	return "https://leetcode.com/problems/" + p.TitleSlug + "/"
}

// HasDetails reports whether content has been fetched for the problem
func (p *Problem) HasDetails() bool {
	return p.Description != ""
}
