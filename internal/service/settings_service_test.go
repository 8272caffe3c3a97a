package service_test

import (
	"context"
	"reflect"
	"testing"

	"github.com/newswire-api/internal/models"
)

func TestSettingsGetReturnsDefaultsBeforeFirstSave(t *testing.T) {
	env := newTestEnv()
	user := env.addUser("reader@example.com")

	got, err := env.services.Settings.Get(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !reflect.DeepEqual(got, models.DefaultSettings()) {
		t.Errorf("expected defaults, got %+v", got)
	}
}

func TestSettingsPutThenGetRoundTrips(t *testing.T) {
	env := newTestEnv()
	user := env.addUser("reader@example.com")
	ctx := context.Background()

	want := &models.UserSettings{
		Theme:   models.ThemeSettings{Mode: "dark", AccentColor: "#ff5722"},
		Font:    models.FontSettings{Family: "sans-serif", Size: 18},
		Layout:  models.LayoutSettings{Density: "compact", ShowSidebar: false},
		Reading: models.ReadingSettings{AutoBookmark: true, ShowProgress: false, WordsPerMinute: 310},
		Notifications: models.NotificationSettings{
			EmailDigest:     false,
			CommentReplies:  true,
			BillingReceipts: false,
			Newsletter:      true,
		},
	}

	if err := env.services.Settings.Put(ctx, user.ID, want); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := env.services.Settings.Get(ctx, user.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\n got  %+v\n want %+v", got, want)
	}

	// Settings are per-user
	other := env.addUser("other@example.com")
	otherGot, err := env.services.Settings.Get(ctx, other.ID)
	if err != nil {
		t.Fatalf("get other: %v", err)
	}
	if reflect.DeepEqual(otherGot, want) {
		t.Error("expected other user to still see defaults")
	}
}
