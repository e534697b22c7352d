package services_test

import (
	"testing"

	"pricesmart/internal/repos"
	"pricesmart/internal/services"
)

func TestAddDefaultsTargetToNinetyPercent(t *testing.T) {
	svc := services.NewWatchlistService(repos.NewWatchlistRepo(memdb(t)))

	if _, err := svc.Add("u1", "MacBook Air", 120000, 0); err != nil {
		t.Fatal(err)
	}
	items, err := svc.List("u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].TargetPrice != 108000 {
		t.Fatalf("want default target 108000, got %+v", items)
	}
}

func TestAddKeepsExplicitTarget(t *testing.T) {
	svc := services.NewWatchlistService(repos.NewWatchlistRepo(memdb(t)))

	if _, err := svc.Add("u1", "MacBook Air", 120000, 99000); err != nil {
		t.Fatal(err)
	}
	items, _ := svc.List("u1")
	if items[0].TargetPrice != 99000 {
		t.Fatalf("explicit target overridden: %+v", items[0])
	}
}

func TestRemoveIsLogicalDelete(t *testing.T) {
	svc := services.NewWatchlistService(repos.NewWatchlistRepo(memdb(t)))

	id, err := svc.Add("u1", "Nike Shoes", 12000, 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.Remove("u1", id); err != nil {
		t.Fatal(err)
	}
	items, _ := svc.List("u1")
	if len(items) != 0 {
		t.Fatalf("removed entry still listed: %+v", items)
	}
}
