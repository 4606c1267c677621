package models

import "testing"

func TestNormalizeFilterValue(t *testing.T) {
	tc := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"  ", ""},
		{"all", ""},
		{"ALL", ""},
		{" Any ", ""},
		{"null", ""},
		{"trips", "trips"},
		{" inside-run ", "inside-run"},
	}

	for _, tt := range tc {
		if got := NormalizeFilterValue(tt.in); got != tt.want {
			t.Errorf("NormalizeFilterValue(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFilterSelection(t *testing.T) {
	t.Run("Values always carries both keys", func(t *testing.T) {
		q := NewFilterSelection("trips", "").Values("play_type")
		if q.Encode() != "formation=trips&play_type=" {
			t.Errorf("unexpected query %q", q.Encode())
		}
	})

	t.Run("Values with playbook key", func(t *testing.T) {
		q := NewFilterSelection("all", "deep-pass").Values("playType")
		if q.Encode() != "formation=&playType=deep-pass" {
			t.Errorf("unexpected query %q", q.Encode())
		}
	})

	t.Run("With replaces one axis", func(t *testing.T) {
		f := NewFilterSelection("trips", "inside-run").With(AxisPlayType, "all")
		if f.Formation != "trips" || f.PlayType != "" {
			t.Errorf("unexpected selection %+v", f)
		}
		if f.Get(AxisFormation) != "trips" {
			t.Errorf("Get(formation) = %q", f.Get(AxisFormation))
		}
	})

	t.Run("String", func(t *testing.T) {
		tc := map[FilterSelection]string{
			{}:                                       "All plays",
			{Formation: "trips"}:                     "Trips",
			{PlayType: "screen-pass"}:                "Screen Pass",
			{Formation: "wing", PlayType: "option"}: "Wing · Option",
		}
		for f, want := range tc {
			if got := f.String(); got != want {
				t.Errorf("%+v.String() = %q, want %q", f, got, want)
			}
		}
	})

	t.Run("IsZero", func(t *testing.T) {
		if !NewFilterSelection("any", "").IsZero() {
			t.Error("expected normalized any to be zero")
		}
		if NewFilterSelection("ace", "").IsZero() {
			t.Error("expected formation selection to be non-zero")
		}
	})
}

func TestVocabulary(t *testing.T) {
	if !IsFormation("doubles-close") || IsFormation("pistol") {
		t.Error("unexpected formation membership")
	}
	if !IsPlayType("play-action-pass") || IsPlayType("rpo") {
		t.Error("unexpected play type membership")
	}
	if FormationLabel("split-twins-offset") != "Split Twins Offset" {
		t.Errorf("unexpected label %q", FormationLabel("split-twins-offset"))
	}
	if len(Formations) != 10 || len(PlayTypes) != 9 {
		t.Errorf("expected 10 formations and 9 play types, got %d and %d", len(Formations), len(PlayTypes))
	}
}

func TestSharedPlatform(t *testing.T) {
	tc := []struct {
		link string
		want string
	}{
		{"https://twitter.com/coach/status/1", "Twitter"},
		{"https://x.com/coach/status/1", "Twitter"},
		{"https://mobile.twitter.com/coach/status/1", "Twitter"},
		{"https://www.instagram.com/reel/abc", "Instagram"},
		{"https://www.facebook.com/watch?v=1", "Facebook"},
		{"https://fb.watch/abc", "Facebook"},
		{"https://hudl.com/video/1", "social"},
		{"https://notx.com/video/1", "social"},
		{"not a url", "social"},
		{"", "social"},
	}

	for _, tt := range tc {
		if got := SharedPlatform(tt.link); got != tt.want {
			t.Errorf("SharedPlatform(%q) = %q, want %q", tt.link, got, tt.want)
		}
	}
}
