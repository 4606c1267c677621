package models

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestNormalizePlay(t *testing.T) {
	t.Run("missing tags become empty slice", func(t *testing.T) {
		p := NormalizePlay(map[string]any{"id": "abc"})
		if p.Tags == nil || len(p.Tags) != 0 {
			t.Errorf("expected empty non-nil tags, got %#v", p.Tags)
		}
	})

	t.Run("missing shared_by defaults to Anonymous", func(t *testing.T) {
		p := NormalizePlay(map[string]any{"id": "abc"})
		if p.SharedBy != "Anonymous" {
			t.Errorf("expected Anonymous, got %q", p.SharedBy)
		}
	})

	t.Run("numeric id, null url and non-array tags", func(t *testing.T) {
		var raw map[string]any
		if err := json.Unmarshal([]byte(`{"id": 5, "video_url": null, "tags": "not-an-array"}`), &raw); err != nil {
			t.Fatalf("failed to unmarshal fixture: %v", err)
		}

		p := NormalizePlay(raw)
		if p.ID != "5" {
			t.Errorf("expected id \"5\", got %q", p.ID)
		}
		if p.VideoURL != "" {
			t.Errorf("expected empty video url, got %q", p.VideoURL)
		}
		if len(p.Tags) != 0 {
			t.Errorf("expected no tags, got %v", p.Tags)
		}
	})

	t.Run("nil record", func(t *testing.T) {
		p := NormalizePlay(nil)
		if p.ID != "" || p.SharedBy != DefaultSharedBy || p.Tags == nil {
			t.Errorf("unexpected play from nil record: %#v", p)
		}
	})

	t.Run("full record", func(t *testing.T) {
		raw := map[string]any{
			"id":          "p1",
			"video_url":   "https://clips.example.com/p1.mp4",
			"caption":     "Mesh vs cover 3",
			"play_type":   "quick-pass",
			"formation":   "trips",
			"tags":        []any{"mesh", 7, "red zone"},
			"shared_by":   "coach_k",
			"created_at":  "2024-09-01T12:00:00Z",
			"likes":       float64(12),
			"liked":       true,
			"saved":       "yes",
			"source":      "link",
			"description": "Drag routes",
		}

		want := Play{
			ID:          "p1",
			VideoURL:    "https://clips.example.com/p1.mp4",
			Caption:     "Mesh vs cover 3",
			PlayType:    "quick-pass",
			Formation:   "trips",
			Tags:        []string{"mesh", "red zone"},
			SharedBy:    "coach_k",
			CreatedAt:   "2024-09-01T12:00:00Z",
			Likes:       12,
			Liked:       true,
			Saved:       false,
			Source:      "link",
			Description: "Drag routes",
		}

		if got := NormalizePlay(raw); !reflect.DeepEqual(got, want) {
			t.Errorf("NormalizePlay() = %#v, want %#v", got, want)
		}
	})

	t.Run("fractional id keeps its digits", func(t *testing.T) {
		if p := NormalizePlay(map[string]any{"id": 5.5}); p.ID != "5.5" {
			t.Errorf("expected 5.5, got %q", p.ID)
		}
	})

	t.Run("json.Number id", func(t *testing.T) {
		if p := NormalizePlay(map[string]any{"id": json.Number("42")}); p.ID != "42" {
			t.Errorf("expected 42, got %q", p.ID)
		}
	})
}

func TestNormalizePlays(t *testing.T) {
	raws := []map[string]any{
		{"id": "old", "created_at": "2024-01-01T00:00:00Z"},
		{"id": "undated-a"},
		{"id": "new", "created_at": "2024-06-01T00:00:00Z"},
		{"id": "undated-b", "created_at": "yesterday"},
		{"id": "mid", "created_at": "2024-03-01 10:00:00"},
	}

	got := NormalizePlays(raws)
	ids := make([]string, len(got))
	for i, p := range got {
		ids[i] = p.ID
	}

	want := []string{"new", "mid", "old", "undated-a", "undated-b"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("expected order %v, got %v", want, ids)
	}

	t.Run("same input gives same order", func(t *testing.T) {
		again := NormalizePlays(raws)
		if !reflect.DeepEqual(got, again) {
			t.Error("expected identical output for identical input")
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if got := NormalizePlays(nil); len(got) != 0 {
			t.Errorf("expected no plays, got %d", len(got))
		}
	})
}

func TestPlayTitle(t *testing.T) {
	tc := []struct {
		name string
		play Play
		want string
	}{
		{name: "caption wins", play: Play{Caption: "Power O", Formation: "ace"}, want: "Power O"},
		{name: "labels", play: Play{Formation: "full-house", PlayType: "inside-run"}, want: "Full House · Inside Run"},
		{name: "unknown values pass through", play: Play{PlayType: "wildcat"}, want: "wildcat"},
		{name: "nothing", play: Play{}, want: "Untitled play"},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.play.Title(); got != tt.want {
				t.Errorf("Title() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewPlayValidate(t *testing.T) {
	tc := []struct {
		name    string
		play    NewPlay
		wantErr bool
	}{
		{name: "valid", play: NewPlay{URL: "https://x.com/v/1", Type: "trick", Formation: "wing"}},
		{name: "formation optional", play: NewPlay{URL: "https://x.com/v/1", Type: "trick"}},
		{name: "missing url", play: NewPlay{Type: "trick"}, wantErr: true},
		{name: "non web url", play: NewPlay{URL: "ftp://x/1", Type: "trick"}, wantErr: true},
		{name: "unknown type", play: NewPlay{URL: "https://x.com/v/1", Type: "rpo"}, wantErr: true},
		{name: "unknown formation", play: NewPlay{URL: "https://x.com/v/1", Type: "trick", Formation: "pistol"}, wantErr: true},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.play.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
