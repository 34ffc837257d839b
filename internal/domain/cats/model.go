package cats

import (
	"fmt"
	"time"
)

// Cat es el registro principal. Pertenece a un usuario (OwnerUserID) y es
// dueño de sus feedings y photos (se borran en cascada con el gato).
type Cat struct {
	ID          int64
	OwnerUserID string

	Name        string // max 100, inmutable tras crear
	Breed       string // max 100, inmutable tras crear
	Description string // max 250
	Age         int

	CreatedAt time.Time
}

func (c Cat) ItemID() int64   { return c.ID }
func (c Cat) String() string { return c.Name }

// Meal es el código de una comida.
type Meal string

const (
	Breakfast Meal = "B"
	Lunch     Meal = "L"
	Dinner    Meal = "D"
)

// Meals en orden de display. len(Meals) es la cantidad de comidas para
// considerar a un gato alimentado en el día.
var Meals = []Meal{Breakfast, Lunch, Dinner}

func (m Meal) Valid() bool {
	for _, v := range Meals {
		if v == m {
			return true
		}
	}
	return false
}

func (m Meal) Name() string {
	switch m {
	case Breakfast:
		return "Breakfast"
	case Lunch:
		return "Lunch"
	case Dinner:
		return "Dinner"
	default:
		return string(m)
	}
}

// Feeding es una comida registrada para un gato en una fecha (sin hora).
type Feeding struct {
	ID    int64
	CatID int64
	Date  time.Time // medianoche UTC del día calendario
	Meal  Meal
}

func (f Feeding) String() string {
	return fmt.Sprintf("%s on %s", f.Meal.Name(), f.Date.Format(time.DateOnly))
}

// Photo referencia una imagen subida al object storage.
type Photo struct {
	ID    int64
	CatID int64
	URL   string // max 200
}

func (p Photo) String() string {
	return fmt.Sprintf("Photo for cat_id: %d @%s", p.CatID, p.URL)
}

// Day normaliza t al día calendario en loc, representado como medianoche UTC.
func Day(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
