package cats_test

import (
	"context"
	"errors"
	"io"
	"regexp"
	"strings"
	"testing"
	"time"

	photomem "cat-collector/internal/adapters/photostore/memory"
	"cat-collector/internal/adapters/storage/memory"
	"cat-collector/internal/domain/cats"
	"cat-collector/internal/domain/toys"
)

var fixedNow = time.Date(2026, 10, 17, 10, 0, 0, 0, time.UTC)

func newService(t *testing.T, opts cats.Options) (*cats.Service, *memory.DB) {
	t.Helper()
	db := memory.NewDB()
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	svc := cats.NewService(db.CatRepos(), opts)
	cats.SetClock(svc, func() time.Time { return fixedNow })
	return svc, db
}

func mustCat(t *testing.T, svc *cats.Service, owner string) cats.Cat {
	t.Helper()
	c, err := svc.Create(context.Background(), owner, cats.CreateInput{
		Name: "Tom", Breed: "Tabby", Description: "Likes boxes", Age: 2,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return c
}

func TestCreateValidates(t *testing.T) {
	svc, _ := newService(t, cats.Options{})
	ctx := context.Background()

	cases := []cats.CreateInput{
		{Name: "", Breed: "b", Description: "d"},
		{Name: "n", Breed: "b", Description: "d", Age: -1},
		{Name: strings.Repeat("n", 101), Breed: "b", Description: "d"},
		{Name: "n", Breed: "b", Description: strings.Repeat("d", 251)},
	}
	for i, in := range cases {
		if _, err := svc.Create(ctx, "u1", in); !errors.Is(err, cats.ErrInvalidInput) {
			t.Fatalf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}
	if _, err := svc.Create(ctx, " ", cats.CreateInput{Name: "n", Breed: "b", Description: "d"}); !errors.Is(err, cats.ErrInvalidInput) {
		t.Fatalf("expected owner required, got %v", err)
	}
}

func TestOwnerScoping(t *testing.T) {
	svc, _ := newService(t, cats.Options{})
	ctx := context.Background()
	c := mustCat(t, svc, "u1")

	if _, err := svc.GetOwned(ctx, "u2", c.ID); !errors.Is(err, cats.ErrNotFound) {
		t.Fatalf("GetOwned by other: %v", err)
	}
	if _, err := svc.Update(ctx, "u2", c.ID, cats.UpdateInput{Description: "x", Age: 1}); !errors.Is(err, cats.ErrNotFound) {
		t.Fatalf("Update by other: %v", err)
	}
	if err := svc.Delete(ctx, "u2", c.ID); !errors.Is(err, cats.ErrNotFound) {
		t.Fatalf("Delete by other: %v", err)
	}
	if _, err := svc.AddFeeding(ctx, "u2", c.ID, cats.FeedingInput{Date: fixedNow, Meal: cats.Breakfast}); !errors.Is(err, cats.ErrNotFound) {
		t.Fatalf("AddFeeding by other: %v", err)
	}

	list, _ := svc.ListByOwner(ctx, "u2")
	if len(list) != 0 {
		t.Fatalf("u2 should see no cats: %v", list)
	}
	list, _ = svc.ListByOwner(ctx, "u1")
	if len(list) != 1 || list[0].ID != c.ID {
		t.Fatalf("u1 list=%v", list)
	}
}

func TestUpdateKeepsNameAndBreed(t *testing.T) {
	svc, _ := newService(t, cats.Options{})
	ctx := context.Background()
	c := mustCat(t, svc, "u1")

	got, err := svc.Update(ctx, "u1", c.ID, cats.UpdateInput{Description: "Sleepy", Age: 5})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Name != "Tom" || got.Breed != "Tabby" || got.Description != "Sleepy" || got.Age != 5 {
		t.Fatalf("got=%+v", got)
	}
}

func TestIsFedToday(t *testing.T) {
	svc, _ := newService(t, cats.Options{})
	ctx := context.Background()
	c := mustCat(t, svc, "u1")

	add := func(day time.Time, m cats.Meal) {
		t.Helper()
		if _, err := svc.AddFeeding(ctx, "u1", c.ID, cats.FeedingInput{Date: day, Meal: m}); err != nil {
			t.Fatalf("AddFeeding: %v", err)
		}
	}

	yesterday := fixedNow.AddDate(0, 0, -1)
	add(yesterday, cats.Breakfast)
	add(yesterday, cats.Lunch)
	add(yesterday, cats.Dinner)
	add(fixedNow, cats.Breakfast)
	add(fixedNow, cats.Lunch)

	if fed, _ := svc.IsFedToday(ctx, c.ID); fed {
		t.Fatalf("two meals today should not count as fed")
	}
	if n, _ := svc.FeedingsToday(ctx, c.ID); n != 2 {
		t.Fatalf("FeedingsToday=%d", n)
	}

	add(fixedNow, cats.Dinner)
	if fed, _ := svc.IsFedToday(ctx, c.ID); !fed {
		t.Fatalf("three meals today should count as fed")
	}

	list, _ := svc.Feedings(ctx, c.ID)
	if len(list) != 6 || list[0].Meal != cats.Dinner || !list[0].Date.Equal(cats.Day(fixedNow, time.UTC)) {
		t.Fatalf("feedings order=%v", list)
	}
}

func TestIsFedTodayCountsDuplicates(t *testing.T) {
	svc, _ := newService(t, cats.Options{})
	ctx := context.Background()
	c := mustCat(t, svc, "u1")

	for i := 0; i < 3; i++ {
		_, _ = svc.AddFeeding(ctx, "u1", c.ID, cats.FeedingInput{Date: fixedNow, Meal: cats.Breakfast})
	}
	if fed, _ := svc.IsFedToday(ctx, c.ID); !fed {
		t.Fatalf("three breakfasts still count as fed")
	}
}

func TestTodayUsesLocation(t *testing.T) {
	west := time.FixedZone("UTC-7", -7*3600)
	svc, _ := newService(t, cats.Options{Location: west})
	cats.SetClock(svc, func() time.Time { return time.Date(2026, 10, 17, 2, 0, 0, 0, time.UTC) })

	if got := svc.Today().Format(time.DateOnly); got != "2026-10-16" {
		t.Fatalf("Today=%s", got)
	}
}

func TestAddFeedingRejectsUnknownMeal(t *testing.T) {
	svc, _ := newService(t, cats.Options{})
	c := mustCat(t, svc, "u1")

	if _, err := svc.AddFeeding(context.Background(), "u1", c.ID, cats.FeedingInput{Date: fixedNow, Meal: "X"}); !errors.Is(err, cats.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestPhotoKey(t *testing.T) {
	cases := map[string]string{
		"pic.JPG":           "bd504f.JPG",
		"archive.tar.gz":    "bd504f.gz",
		"noext":             "bd504f",
		`C:\Users\me\a.png`: "bd504f.png",
	}
	for in, want := range cases {
		if got := cats.PhotoKey("bd504f", in); got != want {
			t.Fatalf("PhotoKey(%q)=%q want %q", in, got, want)
		}
	}

	if p := cats.RandomKeyPrefix(); !regexp.MustCompile(`^[0-9a-f]{6}$`).MatchString(p) {
		t.Fatalf("prefix=%q", p)
	}
}

func TestAddPhotoStoresAndRecordsURL(t *testing.T) {
	store := photomem.New("https://s3-us-west-1.amazonaws.com/catcollector/")
	svc, _ := newService(t, cats.Options{Photos: store})
	cats.SetKeyPrefix(svc, func() string { return "bd504f" })
	ctx := context.Background()
	c := mustCat(t, svc, "u1")

	p, stored, err := svc.AddPhoto(ctx, "u1", c.ID, cats.PhotoUpload{
		Filename: "pic.JPG", ContentType: "image/jpeg", Body: strings.NewReader("jpeg"),
	})
	if err != nil || !stored {
		t.Fatalf("AddPhoto: stored=%v err=%v", stored, err)
	}
	if p.URL != "https://s3-us-west-1.amazonaws.com/catcollector/bd504f.JPG" {
		t.Fatalf("url=%q", p.URL)
	}
	if o, ok := store.Get("bd504f.JPG"); !ok || string(o.Body) != "jpeg" {
		t.Fatalf("object not stored")
	}

	list, _ := svc.Photos(ctx, c.ID)
	if len(list) != 1 || list[0].ID != p.ID {
		t.Fatalf("photos=%v", list)
	}
}

func TestAddPhotoSwallowsStorageFailure(t *testing.T) {
	store := photomem.New("")
	store.Fail = true
	svc, _ := newService(t, cats.Options{Photos: store})
	ctx := context.Background()
	c := mustCat(t, svc, "u1")

	_, stored, err := svc.AddPhoto(ctx, "u1", c.ID, cats.PhotoUpload{Filename: "a.png", Body: strings.NewReader("x")})
	if err != nil || stored {
		t.Fatalf("expected silent failure, stored=%v err=%v", stored, err)
	}
	if list, _ := svc.Photos(ctx, c.ID); len(list) != 0 {
		t.Fatalf("no photo row expected: %v", list)
	}
}

// stallingStore no responde hasta que se cancela el contexto.
type stallingStore struct {
	calls int
}

func (s *stallingStore) Store(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	s.calls++
	<-ctx.Done()
	return "", ctx.Err()
}

func TestAddPhotoTimeoutLeavesNoPhoto(t *testing.T) {
	store := &stallingStore{}
	svc, _ := newService(t, cats.Options{Photos: store, UploadTimeout: 20 * time.Millisecond})
	ctx := context.Background()
	c := mustCat(t, svc, "u1")

	start := time.Now()
	_, stored, err := svc.AddPhoto(ctx, "u1", c.ID, cats.PhotoUpload{Filename: "slow.jpg", Body: strings.NewReader("x")})
	if err != nil || stored {
		t.Fatalf("expected silent timeout, stored=%v err=%v", stored, err)
	}
	if store.calls != 1 {
		t.Fatalf("store calls=%d", store.calls)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Fatalf("upload timeout not applied, took %v", elapsed)
	}
	if list, _ := svc.Photos(ctx, c.ID); len(list) != 0 {
		t.Fatalf("no photo row expected: %v", list)
	}
}

func TestAddPhotoWithoutFileIsNoop(t *testing.T) {
	store := photomem.New("")
	svc, _ := newService(t, cats.Options{Photos: store})
	c := mustCat(t, svc, "u1")

	_, stored, err := svc.AddPhoto(context.Background(), "u1", c.ID, cats.PhotoUpload{})
	if err != nil || stored || store.Len() != 0 {
		t.Fatalf("stored=%v err=%v len=%d", stored, err, store.Len())
	}
	if _, _, err := svc.AddPhoto(context.Background(), "u2", c.ID, cats.PhotoUpload{}); !errors.Is(err, cats.ErrNotFound) {
		t.Fatalf("foreign cat: %v", err)
	}
}

func TestToyAssociation(t *testing.T) {
	svc, db := newService(t, cats.Options{})
	ctx := context.Background()
	c := mustCat(t, svc, "u1")
	ball, _ := db.Toys().Create(ctx, toys.Toy{Name: "ball", Color: "red"})
	mouse, _ := db.Toys().Create(ctx, toys.Toy{Name: "mouse", Color: "grey"})

	if err := svc.AssocToy(ctx, "u1", c.ID, ball.ID); err != nil {
		t.Fatalf("AssocToy: %v", err)
	}
	if err := svc.AssocToy(ctx, "u2", c.ID, mouse.ID); !errors.Is(err, cats.ErrNotFound) {
		t.Fatalf("AssocToy by other: %v", err)
	}
	if err := svc.AssocToy(ctx, "u1", c.ID, 999); !errors.Is(err, toys.ErrNotFound) {
		t.Fatalf("AssocToy unknown toy: %v", err)
	}

	on, _ := svc.Toys(ctx, c.ID)
	off, _ := svc.ToysNotOnCat(ctx, c.ID)
	if len(on) != 1 || on[0].ID != ball.ID || len(off) != 1 || off[0].ID != mouse.ID {
		t.Fatalf("on=%v off=%v", on, off)
	}

	if err := svc.RemoveToy(ctx, "u1", c.ID, ball.ID); err != nil {
		t.Fatalf("RemoveToy: %v", err)
	}
	if off, _ := svc.ToysNotOnCat(ctx, c.ID); len(off) != 2 {
		t.Fatalf("after remove off=%v", off)
	}
}
