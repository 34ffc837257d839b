package cats

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"cat-collector/internal/domain/toys"
	"cat-collector/internal/platform/logger"
	"cat-collector/internal/platform/metrics"
	"cat-collector/internal/ports/storage"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("cat not found")
)

const (
	maxNameLen        = 100
	maxBreedLen       = 100
	maxDescriptionLen = 250
)

type Service struct {
	repos Repos

	photos        storage.PhotoStore
	uploadTimeout time.Duration
	newKey        func() string

	loc *time.Location
	now func() time.Time

	log     logger.Logger
	metrics *metrics.Metrics
}

type Options struct {
	Photos        storage.PhotoStore
	UploadTimeout time.Duration
	Location      *time.Location
	Log           logger.Logger
	Metrics       *metrics.Metrics
}

func NewService(repos Repos, opts Options) *Service {
	s := &Service{
		repos:         repos,
		photos:        opts.Photos,
		uploadTimeout: opts.UploadTimeout,
		newKey:        randomKeyPrefix,
		loc:           opts.Location,
		now:           time.Now,
		log:           opts.Log,
		metrics:       opts.Metrics,
	}
	if s.uploadTimeout <= 0 {
		s.uploadTimeout = 30 * time.Second
	}
	if s.loc == nil {
		s.loc = time.Local
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	return s
}

type CreateInput struct {
	Name        string
	Breed       string
	Description string
	Age         int
}

// UpdateInput solo trae los campos mutables: name y breed no se tocan.
type UpdateInput struct {
	Description string
	Age         int
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Cat, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return Cat{}, fmt.Errorf("%w: owner required", ErrInvalidInput)
	}

	c := Cat{
		OwnerUserID: ownerUserID,
		Name:        strings.TrimSpace(in.Name),
		Breed:       strings.TrimSpace(in.Breed),
		Description: strings.TrimSpace(in.Description),
		Age:         in.Age,
		CreatedAt:   s.now(),
	}
	if c.Name == "" || c.Breed == "" || c.Description == "" {
		return Cat{}, fmt.Errorf("%w: name, breed and description are required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(c.Name) > maxNameLen || utf8.RuneCountInString(c.Breed) > maxBreedLen {
		return Cat{}, fmt.Errorf("%w: name or breed too long", ErrInvalidInput)
	}
	if err := validateMutable(c.Description, c.Age); err != nil {
		return Cat{}, err
	}

	return s.repos.Cats.Create(ctx, c)
}

func (s *Service) Update(ctx context.Context, ownerUserID string, id int64, in UpdateInput) (Cat, error) {
	c, err := s.GetOwned(ctx, ownerUserID, id)
	if err != nil {
		return Cat{}, err
	}

	desc := strings.TrimSpace(in.Description)
	if desc == "" {
		return Cat{}, fmt.Errorf("%w: description is required", ErrInvalidInput)
	}
	if err := validateMutable(desc, in.Age); err != nil {
		return Cat{}, err
	}

	c.Description = desc
	c.Age = in.Age
	if err := s.repos.Cats.Update(ctx, c); err != nil {
		return Cat{}, err
	}
	return c, nil
}

func validateMutable(description string, age int) error {
	if utf8.RuneCountInString(description) > maxDescriptionLen {
		return fmt.Errorf("%w: description too long", ErrInvalidInput)
	}
	if age < 0 {
		return fmt.Errorf("%w: age must be >= 0", ErrInvalidInput)
	}
	return nil
}

// GetOwned devuelve el gato solo si pertenece al usuario. Un gato ajeno se
// reporta como inexistente para no filtrar ids.
func (s *Service) GetOwned(ctx context.Context, ownerUserID string, id int64) (Cat, error) {
	c, err := s.repos.Cats.GetByID(ctx, id)
	if err != nil {
		return Cat{}, err
	}
	if c.OwnerUserID != ownerUserID {
		return Cat{}, ErrNotFound
	}
	return c, nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Cat, error) {
	return s.repos.Cats.ListByOwner(ctx, ownerUserID)
}

func (s *Service) Delete(ctx context.Context, ownerUserID string, id int64) error {
	if _, err := s.GetOwned(ctx, ownerUserID, id); err != nil {
		return err
	}
	return s.repos.Cats.Delete(ctx, id)
}

// ---- feedings ----

type FeedingInput struct {
	Date time.Time
	Meal Meal
}

// AddFeeding valida y persiste el feeding ya ligado a catID.
func (s *Service) AddFeeding(ctx context.Context, ownerUserID string, catID int64, in FeedingInput) (Feeding, error) {
	if _, err := s.GetOwned(ctx, ownerUserID, catID); err != nil {
		return Feeding{}, err
	}
	if !in.Meal.Valid() {
		return Feeding{}, fmt.Errorf("%w: unknown meal %q", ErrInvalidInput, in.Meal)
	}
	if in.Date.IsZero() {
		return Feeding{}, fmt.Errorf("%w: date required", ErrInvalidInput)
	}

	return s.repos.Feedings.Create(ctx, Feeding{
		CatID: catID,
		Date:  Day(in.Date, time.UTC),
		Meal:  in.Meal,
	})
}

func (s *Service) Feedings(ctx context.Context, catID int64) ([]Feeding, error) {
	return s.repos.Feedings.ListByCat(ctx, catID)
}

// Today es el día calendario actual en la zona configurada.
func (s *Service) Today() time.Time {
	return Day(s.now(), s.loc)
}

func (s *Service) FeedingsToday(ctx context.Context, catID int64) (int, error) {
	return s.repos.Feedings.CountOnDay(ctx, catID, s.Today())
}

// IsFedToday: al menos tantas comidas hoy como tipos de comida existen.
// Los duplicados cuentan.
func (s *Service) IsFedToday(ctx context.Context, catID int64) (bool, error) {
	n, err := s.FeedingsToday(ctx, catID)
	if err != nil {
		return false, err
	}
	return n >= len(Meals), nil
}

// ---- toys ----

func (s *Service) AssocToy(ctx context.Context, ownerUserID string, catID, toyID int64) error {
	if _, err := s.GetOwned(ctx, ownerUserID, catID); err != nil {
		return err
	}
	return s.repos.ToyLinks.Add(ctx, catID, toyID)
}

func (s *Service) RemoveToy(ctx context.Context, ownerUserID string, catID, toyID int64) error {
	if _, err := s.GetOwned(ctx, ownerUserID, catID); err != nil {
		return err
	}
	return s.repos.ToyLinks.Remove(ctx, catID, toyID)
}

func (s *Service) Toys(ctx context.Context, catID int64) ([]toys.Toy, error) {
	return s.repos.ToyLinks.ToysOf(ctx, catID)
}

func (s *Service) ToysNotOnCat(ctx context.Context, catID int64) ([]toys.Toy, error) {
	return s.repos.ToyLinks.ToysNotOn(ctx, catID)
}
