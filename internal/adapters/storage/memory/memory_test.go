package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"cat-collector/internal/domain/accounts"
	"cat-collector/internal/domain/cats"
	"cat-collector/internal/domain/toys"
)

func day(s string) time.Time {
	t, _ := time.Parse(time.DateOnly, s)
	return t
}

func TestCatDeleteCascades(t *testing.T) {
	ctx := context.Background()
	db := NewDB()
	repos := db.CatRepos()

	c, _ := repos.Cats.Create(ctx, cats.Cat{OwnerUserID: "u1", Name: "Tom"})
	toy, _ := db.Toys().Create(ctx, toys.Toy{Name: "ball", Color: "red"})
	_, _ = repos.Feedings.Create(ctx, cats.Feeding{CatID: c.ID, Date: day("2026-10-17"), Meal: cats.Breakfast})
	_, _ = repos.Photos.Create(ctx, cats.Photo{CatID: c.ID, URL: "https://x/y.jpg"})
	if err := repos.ToyLinks.Add(ctx, c.ID, toy.ID); err != nil {
		t.Fatalf("Add: %v", err)
	}

	if err := repos.Cats.Delete(ctx, c.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if fs, _ := repos.Feedings.ListByCat(ctx, c.ID); len(fs) != 0 {
		t.Fatalf("feedings left: %v", fs)
	}
	if ps, _ := repos.Photos.ListByCat(ctx, c.ID); len(ps) != 0 {
		t.Fatalf("photos left: %v", ps)
	}
	if len(db.catToys) != 0 {
		t.Fatalf("associations left")
	}
	if _, err := db.Toys().GetByID(ctx, toy.ID); err != nil {
		t.Fatalf("toy should survive: %v", err)
	}
}

func TestToyDeleteKeepsCats(t *testing.T) {
	ctx := context.Background()
	db := NewDB()
	repos := db.CatRepos()

	c, _ := repos.Cats.Create(ctx, cats.Cat{OwnerUserID: "u1", Name: "Tom"})
	toy, _ := db.Toys().Create(ctx, toys.Toy{Name: "ball", Color: "red"})
	_ = repos.ToyLinks.Add(ctx, c.ID, toy.ID)

	if err := db.Toys().Delete(ctx, toy.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repos.Cats.GetByID(ctx, c.ID); err != nil {
		t.Fatalf("cat should survive: %v", err)
	}
	if got, _ := repos.ToyLinks.ToysOf(ctx, c.ID); len(got) != 0 {
		t.Fatalf("ToysOf=%v", got)
	}
}

func TestToyLinks(t *testing.T) {
	ctx := context.Background()
	db := NewDB()
	repos := db.CatRepos()

	c, _ := repos.Cats.Create(ctx, cats.Cat{OwnerUserID: "u1", Name: "Tom"})
	a, _ := db.Toys().Create(ctx, toys.Toy{Name: "ball", Color: "red"})
	b, _ := db.Toys().Create(ctx, toys.Toy{Name: "mouse", Color: "grey"})

	// duplicado no crea un segundo par
	_ = repos.ToyLinks.Add(ctx, c.ID, a.ID)
	_ = repos.ToyLinks.Add(ctx, c.ID, a.ID)

	on, _ := repos.ToyLinks.ToysOf(ctx, c.ID)
	off, _ := repos.ToyLinks.ToysNotOn(ctx, c.ID)
	if len(on) != 1 || on[0].ID != a.ID {
		t.Fatalf("ToysOf=%v", on)
	}
	if len(off) != 1 || off[0].ID != b.ID {
		t.Fatalf("ToysNotOn=%v", off)
	}

	if err := repos.ToyLinks.Add(ctx, c.ID, 999); !errors.Is(err, toys.ErrNotFound) {
		t.Fatalf("expected toys.ErrNotFound, got %v", err)
	}
	if err := repos.ToyLinks.Remove(ctx, c.ID, b.ID); err != nil {
		t.Fatalf("removing a missing pair should be a no-op: %v", err)
	}
}

func TestFeedingsOrderAndCount(t *testing.T) {
	ctx := context.Background()
	db := NewDB()
	repos := db.CatRepos()

	c, _ := repos.Cats.Create(ctx, cats.Cat{OwnerUserID: "u1", Name: "Tom"})
	f1, _ := repos.Feedings.Create(ctx, cats.Feeding{CatID: c.ID, Date: day("2026-10-16"), Meal: cats.Dinner})
	f2, _ := repos.Feedings.Create(ctx, cats.Feeding{CatID: c.ID, Date: day("2026-10-17"), Meal: cats.Breakfast})
	f3, _ := repos.Feedings.Create(ctx, cats.Feeding{CatID: c.ID, Date: day("2026-10-17"), Meal: cats.Lunch})

	got, _ := repos.Feedings.ListByCat(ctx, c.ID)
	if len(got) != 3 || got[0].ID != f3.ID || got[1].ID != f2.ID || got[2].ID != f1.ID {
		t.Fatalf("order=%v", got)
	}

	n, _ := repos.Feedings.CountOnDay(ctx, c.ID, day("2026-10-17"))
	if n != 2 {
		t.Fatalf("CountOnDay=%d", n)
	}

	if _, err := repos.Feedings.Create(ctx, cats.Feeding{CatID: 404, Date: day("2026-10-17"), Meal: cats.Lunch}); !errors.Is(err, cats.ErrNotFound) {
		t.Fatalf("expected cats.ErrNotFound, got %v", err)
	}
}

func TestUsersUnique(t *testing.T) {
	ctx := context.Background()
	users := NewDB().Users()

	u, err := users.Create(ctx, accounts.User{Username: "alice"})
	if err != nil || u.ID == 0 {
		t.Fatalf("Create: %v %+v", err, u)
	}
	if _, err := users.Create(ctx, accounts.User{Username: "alice"}); !errors.Is(err, accounts.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
	if _, err := users.GetByUsername(ctx, "bob"); !errors.Is(err, accounts.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
