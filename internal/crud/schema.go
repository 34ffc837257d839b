package crud

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"cat-collector/internal/platform/validation"
)

type Kind int

const (
	KindText Kind = iota
	KindTextArea
	KindInt
	KindChoice
	KindDate
)

type Choice struct {
	Value string
	Label string
}

// Field describe un campo editable de una entidad.
type Field struct {
	Name     string
	Label    string
	Kind     Kind
	Required bool
	MaxLen   int
	Min      *int
	Choices  []Choice
}

// Widget es el tipo de input que usa el template de formulario.
func (f Field) Widget() string {
	switch f.Kind {
	case KindTextArea:
		return "textarea"
	case KindInt:
		return "number"
	case KindChoice:
		return "select"
	case KindDate:
		return "date"
	default:
		return "text"
	}
}

// Schema es la configuración explícita de una entidad: qué campos existen y
// cuáles se aceptan al crear y al actualizar.
type Schema struct {
	Entity string // "cat"
	Plural string // "cats"

	Fields       []Field
	CreateFields []string
	UpdateFields []string
}

// Validate se corre al arrancar; un schema roto es un bug de wiring.
func (s Schema) Validate() error {
	if strings.TrimSpace(s.Entity) == "" || strings.TrimSpace(s.Plural) == "" {
		return errors.New("crud: schema needs entity and plural names")
	}
	known := map[string]Field{}
	for _, f := range s.Fields {
		if strings.TrimSpace(f.Name) == "" {
			return fmt.Errorf("crud: %s: field without name", s.Entity)
		}
		if _, dup := known[f.Name]; dup {
			return fmt.Errorf("crud: %s: duplicate field %q", s.Entity, f.Name)
		}
		if f.Kind == KindChoice && len(f.Choices) == 0 {
			return fmt.Errorf("crud: %s: choice field %q without choices", s.Entity, f.Name)
		}
		for _, c := range f.Choices {
			if c.Value == "" || strings.ContainsAny(c.Value, " ,|'") {
				return fmt.Errorf("crud: %s: field %q has an unusable choice value %q", s.Entity, f.Name, c.Value)
			}
		}
		raw, typed := f.rules()
		for _, rule := range []string{raw, typed} {
			if rule == "" {
				continue
			}
			if err := validation.CheckRule(rule); err != nil {
				return fmt.Errorf("crud: %s: field %q: %w", s.Entity, f.Name, err)
			}
		}
		known[f.Name] = f
	}
	if len(s.CreateFields) == 0 {
		return fmt.Errorf("crud: %s: empty create field set", s.Entity)
	}
	for set, names := range map[string][]string{"create": s.CreateFields, "update": s.UpdateFields} {
		seen := map[string]bool{}
		for _, n := range names {
			if _, ok := known[n]; !ok {
				return fmt.Errorf("crud: %s: %s set references unknown field %q", s.Entity, set, n)
			}
			if seen[n] {
				return fmt.Errorf("crud: %s: %s set repeats field %q", s.Entity, set, n)
			}
			seen[n] = true
		}
	}
	return nil
}

// MustSchema valida y devuelve el schema; pensado para vars de paquete.
func MustSchema(s Schema) Schema {
	if err := s.Validate(); err != nil {
		panic(err)
	}
	return s
}

func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

func (s Schema) fields(names []string) []Field {
	out := make([]Field, 0, len(names))
	for _, n := range names {
		if f, ok := s.Field(n); ok {
			out = append(out, f)
		}
	}
	return out
}

// Values son los valores ya validados de un formulario.
type Values map[string]string

func (v Values) String(name string) string { return v[name] }

// Int asume que Bind ya validó el campo; un valor vacío devuelve 0.
func (v Values) Int(name string) int {
	n, _ := strconv.Atoi(v[name])
	return n
}

// Errors mapea campo => mensaje. La key "__all__" es para errores generales.
type Errors map[string]string

const NonFieldErrors = "__all__"

// rules arma las reglas de validator del campo: raw se aplica al texto del
// form y typed al valor ya convertido (solo KindInt).
func (f Field) rules() (raw, typed string) {
	var tags []string
	if f.MaxLen > 0 {
		tags = append(tags, "max="+strconv.Itoa(f.MaxLen))
	}
	switch f.Kind {
	case KindInt:
		tags = append(tags, "integer")
		if f.Min != nil {
			typed = "gte=" + strconv.Itoa(*f.Min)
		}
	case KindChoice:
		values := make([]string, 0, len(f.Choices))
		for _, c := range f.Choices {
			values = append(values, c.Value)
		}
		tags = append(tags, "oneof="+strings.Join(values, " "))
	case KindDate:
		tags = append(tags, "datetime="+time.DateOnly)
	}
	return strings.Join(tags, ","), typed
}

// Bind toma del form solo los campos pedidos y los valida.
// Campos fuera de names se ignoran aunque vengan en el body.
func (s Schema) Bind(form url.Values, names []string) (Values, Errors) {
	values := Values{}
	errs := Errors{}

	for _, f := range s.fields(names) {
		raw := strings.TrimSpace(form.Get(f.Name))
		values[f.Name] = raw

		if raw == "" {
			if f.Required {
				errs[f.Name] = validation.Var(raw, "required")
			}
			continue
		}

		rawRule, typedRule := f.rules()
		if rawRule != "" {
			if msg := validation.Var(raw, rawRule); msg != "" {
				errs[f.Name] = msg
				continue
			}
		}
		if typedRule != "" {
			n, _ := strconv.Atoi(raw)
			if msg := validation.Var(n, typedRule); msg != "" {
				errs[f.Name] = msg
			}
		}
	}

	if len(errs) == 0 {
		return values, nil
	}
	return values, errs
}

// Min es un helper para declarar Field.Min inline.
func Min(n int) *int { return &n }
