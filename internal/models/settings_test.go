package models

import (
	"reflect"
	"testing"
)

func TestFlattenUnflattenRoundTrip(t *testing.T) {
	cases := []*UserSettings{
		DefaultSettings(),
		{}, // zero values survive too
		{
			Theme:   ThemeSettings{Mode: "dark", AccentColor: "#000000"},
			Font:    FontSettings{Family: "monospace", Size: 11},
			Layout:  LayoutSettings{Density: "compact", ShowSidebar: false},
			Reading: ReadingSettings{AutoBookmark: true, ShowProgress: true, WordsPerMinute: 999},
			Notifications: NotificationSettings{
				EmailDigest:     true,
				CommentReplies:  false,
				BillingReceipts: true,
				Newsletter:      true,
			},
		},
	}

	for i, want := range cases {
		got, err := UnflattenSettings(FlattenSettings(want))
		if err != nil {
			t.Fatalf("case %d: %v", i, err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("case %d: round trip mismatch:\n got  %+v\n want %+v", i, got, want)
		}
	}
}

func TestFlattenCoversEveryColumn(t *testing.T) {
	flat := FlattenSettings(DefaultSettings())
	cols := SettingsColumns()
	if len(flat) != len(cols) {
		t.Fatalf("expected %d flat values, got %d", len(cols), len(flat))
	}
	for _, col := range cols {
		if _, ok := flat[col]; !ok {
			t.Errorf("column %q missing from flattened output", col)
		}
	}
}

// The store hands values back in driver representations, not Go natives
func TestUnflattenCoercesDriverTypes(t *testing.T) {
	flat := FlattenSettings(DefaultSettings())
	flat["font_size"] = int64(20)
	flat["reading_words_per_minute"] = []byte("250")
	flat["layout_show_sidebar"] = "true"
	flat["notify_newsletter"] = int64(1)
	flat["theme_mode"] = []byte("dark")

	got, err := UnflattenSettings(flat)
	if err != nil {
		t.Fatalf("unflatten: %v", err)
	}
	if got.Font.Size != 20 {
		t.Errorf("expected font size 20, got %d", got.Font.Size)
	}
	if got.Reading.WordsPerMinute != 250 {
		t.Errorf("expected 250 wpm, got %d", got.Reading.WordsPerMinute)
	}
	if !got.Layout.ShowSidebar {
		t.Error("expected sidebar shown")
	}
	if !got.Notifications.Newsletter {
		t.Error("expected newsletter opt-in")
	}
	if got.Theme.Mode != "dark" {
		t.Errorf("expected theme mode dark, got %q", got.Theme.Mode)
	}
}

func TestUnflattenRejectsBadInput(t *testing.T) {
	missing := FlattenSettings(DefaultSettings())
	delete(missing, "theme_mode")
	if _, err := UnflattenSettings(missing); err == nil {
		t.Error("expected error for missing column")
	}

	wrongType := FlattenSettings(DefaultSettings())
	wrongType["font_size"] = "not-a-number"
	if _, err := UnflattenSettings(wrongType); err == nil {
		t.Error("expected error for non-numeric font size")
	}

	badBool := FlattenSettings(DefaultSettings())
	badBool["layout_show_sidebar"] = 3.14
	if _, err := UnflattenSettings(badBool); err == nil {
		t.Error("expected error for non-boolean sidebar flag")
	}
}
