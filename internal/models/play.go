package models

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// DefaultSharedBy attributes plays that arrive without a sharer.
const DefaultSharedBy = "Anonymous"

// Play is a short clip of one football play, tagged with formation and play type.
type Play struct {
	ID          string   `json:"id"`
	VideoURL    string   `json:"video_url"`
	Caption     string   `json:"caption"`
	PlayType    string   `json:"play_type"`
	Formation   string   `json:"formation"`
	Tags        []string `json:"tags"`
	SharedBy    string   `json:"shared_by"`
	CreatedAt   string   `json:"created_at"`
	Likes       int      `json:"likes"`
	Liked       bool     `json:"liked"`
	Saved       bool     `json:"saved"`
	Source      string   `json:"source"`
	Description string   `json:"description"`
}

// Title returns the caption, falling back to the labelled formation and play type.
func (p Play) Title() string {
	if p.Caption != "" {
		return p.Caption
	}
	parts := make([]string, 0, 2)
	if p.Formation != "" {
		parts = append(parts, FormationLabel(p.Formation))
	}
	if p.PlayType != "" {
		parts = append(parts, PlayTypeLabel(p.PlayType))
	}
	if len(parts) == 0 {
		return "Untitled play"
	}
	return strings.Join(parts, " · ")
}

// User is the signed-in account.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Playbook is the caller's saved-plays collection.
type Playbook struct {
	Plays      []Play `json:"plays"`
	DiagramURL string `json:"diagram_url"`
}

// NewPlay is the upload payload for a clip.
type NewPlay struct {
	URL       string `json:"url"`
	Formation string `json:"formation"`
	Type      string `json:"type"`
	Caption   string `json:"caption"`
	SharedBy  string `json:"shared_by,omitempty"` // set for clips shared in from another platform
}

// Validate checks the upload has a web URL and known vocabulary values.
func (n NewPlay) Validate() error {
	if strings.TrimSpace(n.URL) == "" {
		return fmt.Errorf("video url is required")
	}
	if !strings.HasPrefix(n.URL, "http://") && !strings.HasPrefix(n.URL, "https://") {
		return fmt.Errorf("video url must start with http:// or https://")
	}
	if !IsPlayType(n.Type) {
		return fmt.Errorf("unknown play type %q", n.Type)
	}
	if n.Formation != "" && !IsFormation(n.Formation) {
		return fmt.Errorf("unknown formation %q", n.Formation)
	}
	return nil
}

// NormalizePlay maps a raw backend record onto a [Play]. It never fails; absent or mistyped fields take their defaults.
func NormalizePlay(raw map[string]any) Play {
	p := Play{
		ID:          stringField(raw, "id"),
		VideoURL:    stringField(raw, "video_url"),
		Caption:     stringField(raw, "caption"),
		PlayType:    stringField(raw, "play_type"),
		Formation:   stringField(raw, "formation"),
		Tags:        tagsField(raw, "tags"),
		SharedBy:    stringField(raw, "shared_by"),
		CreatedAt:   stringField(raw, "created_at"),
		Likes:       intField(raw, "likes"),
		Liked:       boolField(raw, "liked"),
		Saved:       boolField(raw, "saved"),
		Source:      stringField(raw, "source"),
		Description: stringField(raw, "description"),
	}
	if p.SharedBy == "" {
		p.SharedBy = DefaultSharedBy
	}
	return p
}

// NormalizePlays normalizes a batch and orders it by created_at, newest first.
//
// The sort is stable; records whose timestamp does not parse keep their relative order after the dated ones.
func NormalizePlays(raws []map[string]any) []Play {
	plays := make([]Play, len(raws))
	stamps := make([]time.Time, len(raws))
	for i, raw := range raws {
		plays[i] = NormalizePlay(raw)
		stamps[i] = parseTimestamp(plays[i].CreatedAt)
	}

	idx := make([]int, len(plays))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ta, tb := stamps[idx[a]], stamps[idx[b]]
		if ta.IsZero() || tb.IsZero() {
			return !ta.IsZero() && tb.IsZero()
		}
		return ta.After(tb)
	})

	sorted := make([]Play, len(plays))
	for i, j := range idx {
		sorted[i] = plays[j]
	}
	return sorted
}

var timestampLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999", "2006-01-02 15:04:05", "2006-01-02"}

func parseTimestamp(s string) time.Time {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func stringField(raw map[string]any, key string) string {
	switch v := raw[key].(type) {
	case string:
		return v
	case float64:
		if v == math.Trunc(v) && !math.IsInf(v, 0) {
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
		return strconv.FormatFloat(v, 'g', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case fmt.Stringer:
		return v.String()
	default:
		return ""
	}
}

func intField(raw map[string]any, key string) int {
	switch v := raw[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	case string:
		n, _ := strconv.Atoi(v)
		return n
	default:
		return 0
	}
}

func boolField(raw map[string]any, key string) bool {
	v, _ := raw[key].(bool)
	return v
}

func tagsField(raw map[string]any, key string) []string {
	tags := []string{}
	switch v := raw[key].(type) {
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				tags = append(tags, s)
			}
		}
	case []string:
		tags = append(tags, v...)
	}
	return tags
}

// NormalizeUser maps a raw user record onto a [User], tolerating numeric ids.
func NormalizeUser(raw map[string]any) User {
	return User{
		ID:       stringField(raw, "id"),
		Username: stringField(raw, "username"),
		Email:    stringField(raw, "email"),
	}
}
