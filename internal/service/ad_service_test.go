package service_test

import (
	"context"
	"testing"

	"github.com/newswire-api/internal/models"
	"github.com/newswire-api/internal/service"
)

func TestAdCreateAndListActive(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	banner, err := env.services.Ad.Create(ctx, &models.CreateAdRequest{
		Title:     "Spring Sale",
		ImageURL:  "https://cdn.example/sale.png",
		TargetURL: "https://shop.example",
		Placement: "banner",
		Active:    true,
	})
	if err != nil {
		t.Fatalf("create banner: %v", err)
	}

	_, err = env.services.Ad.Create(ctx, &models.CreateAdRequest{
		Title:     "Paused",
		ImageURL:  "https://cdn.example/paused.png",
		TargetURL: "https://shop.example",
		Placement: "sidebar",
		Active:    false,
	})
	if err != nil {
		t.Fatalf("create sidebar: %v", err)
	}

	var vErr *service.ValidationError
	_, err = env.services.Ad.Create(ctx, &models.CreateAdRequest{
		Title:     "Bad",
		ImageURL:  "https://cdn.example/x.png",
		TargetURL: "https://shop.example",
		Placement: "popup",
	})
	if !asValidation(err, &vErr) || vErr.Field != "placement" {
		t.Errorf("expected placement validation error, got %v", err)
	}

	active, err := env.services.Ad.ListActive(ctx, "banner")
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 1 || active[0].ID != banner.ID {
		t.Errorf("expected only the active banner, got %d", len(active))
	}

	all, err := env.services.Ad.ListAll(ctx)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected both ads in admin listing, got %d", len(all))
	}

	if _, err := env.services.Ad.ListActive(ctx, "popup"); err == nil {
		t.Error("expected validation error for unknown placement filter")
	}
}

func TestAdUpdateAndDelete(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	ad, err := env.services.Ad.Create(ctx, &models.CreateAdRequest{
		Title:     "Original",
		ImageURL:  "https://cdn.example/a.png",
		TargetURL: "https://shop.example",
		Placement: "inline",
		Active:    true,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := env.services.Ad.Update(ctx, ad.ID, &models.CreateAdRequest{
		Title:     "Renamed",
		ImageURL:  "https://cdn.example/b.png",
		TargetURL: "https://shop.example",
		Placement: "sidebar",
		Active:    false,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "Renamed" || updated.Placement != "sidebar" || updated.Active {
		t.Errorf("unexpected ad after update: %+v", updated)
	}

	if _, err := env.services.Ad.Update(ctx, "missing", &models.CreateAdRequest{
		Title: "X", ImageURL: "x", TargetURL: "x", Placement: "banner",
	}); err != service.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	if err := env.services.Ad.Delete(ctx, ad.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := env.services.Ad.Delete(ctx, ad.ID); err != service.ErrNotFound {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestStatsOverview(t *testing.T) {
	env := newTestEnv()
	env.addUser("a@example.com")
	env.addUser("b@example.com")
	env.addArticle("one")
	ctx := context.Background()

	stats, err := env.services.Stats.Overview(ctx)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	want := map[string]int{"users": 2, "articles": 1, "comments": 0, "payments": 0}
	for key, n := range want {
		if stats[key] != n {
			t.Errorf("stats[%s] = %d, want %d", key, stats[key], n)
		}
	}
}
