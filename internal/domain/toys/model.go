package toys

import "fmt"

// Toy es un registro compartido; no tiene owner y se asocia a muchos gatos.
type Toy struct {
	ID    int64
	Name  string // max 50
	Color string // max 20
}

func (t Toy) ItemID() int64 { return t.ID }

func (t Toy) String() string { return fmt.Sprintf("%s %s", t.Color, t.Name) }
