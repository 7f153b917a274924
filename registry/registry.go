// Package registry holds the model metadata the generator needs: which
// table backs each model, which attributes are hidden, and how attributes
// are cast.
//
// Models are usually declared in YAML files:
//
//	name: App\Models\User
//	table: users
//	hidden: [password, remember_token]
//	dates: [email_verified_at]
//	casts:
//	  is_admin: boolean
//	  settings: array
package registry

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-openapi/inflect"

	"github.com/lucasefe/typescriptify/relation"
	"github.com/lucasefe/typescriptify/schema"
)

var (
	// ErrMissingName is returned for a model declared without a name.
	ErrMissingName = errors.New("registry: model has no name")
	// ErrDuplicateModel is returned when a model name is declared twice.
	ErrDuplicateModel = errors.New("registry: duplicate model")
)

// Model is the metadata of one model.
type Model struct {
	// Name is the model identifier, e.g. "App\Models\User" or "User".
	Name string `yaml:"name"`
	// Table is the backing table. Defaults to the plural snake_case form of
	// the name's last segment ("UserRole" -> "user_roles").
	Table string `yaml:"table,omitempty"`
	// Hidden lists attributes omitted from serialized output.
	Hidden []string `yaml:"hidden,omitempty"`
	// Dates lists attributes that serialize as date strings.
	Dates []string `yaml:"dates,omitempty"`
	// Casts maps attributes to cast tokens such as "integer" or "decimal:2".
	Casts map[string]string `yaml:"casts,omitempty"`
}

// ID returns the model identifier.
func (m Model) ID() schema.ModelID {
	return schema.ModelID(m.Name)
}

// TableName returns the explicit table or the conventional default.
func (m Model) TableName() string {
	if m.Table != "" {
		return m.Table
	}
	return inflect.Pluralize(inflect.Underscore(m.ID().BaseName()))
}

type entry struct {
	model  Model
	table  string
	hidden map[string]bool
	dates  map[string]bool
}

// Registry is an immutable set of models. It is safe for concurrent use.
type Registry struct {
	models map[schema.ModelID]*entry
	tables map[string]schema.ModelID
}

// New builds a registry. When two models share a table, the one declared
// first is used to resolve relations into that table.
func New(models ...Model) (*Registry, error) {
	r := &Registry{
		models: make(map[schema.ModelID]*entry, len(models)),
		tables: make(map[string]schema.ModelID, len(models)),
	}

	for i, m := range models {
		if m.Name == "" {
			return nil, fmt.Errorf("model %d: %w", i, ErrMissingName)
		}
		id := m.ID()
		if _, ok := r.models[id]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateModel, id)
		}

		e := &entry{
			model:  m,
			table:  m.TableName(),
			hidden: toSet(m.Hidden),
			dates:  toSet(m.Dates),
		}
		r.models[id] = e
		if _, ok := r.tables[e.table]; !ok {
			r.tables[e.table] = id
		}
	}

	return r, nil
}

// MustNew is like New but panics on error.
func MustNew(models ...Model) *Registry {
	r, err := New(models...)
	if err != nil {
		panic(err)
	}
	return r
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

// Len returns the number of models.
func (r *Registry) Len() int {
	return len(r.models)
}

// Models returns every model identifier sorted alphabetically.
func (r *Registry) Models() []schema.ModelID {
	ids := make([]schema.ModelID, 0, len(r.models))
	for id := range r.models {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Lookup returns the declaration of id.
func (r *Registry) Lookup(id schema.ModelID) (Model, bool) {
	e, ok := r.models[id]
	if !ok {
		return Model{}, false
	}
	return e.model, true
}

// TableForModel returns the table backing id.
func (r *Registry) TableForModel(id schema.ModelID) (string, error) {
	e, ok := r.models[id]
	if !ok {
		return "", &schema.InvalidModelError{Model: id}
	}
	return e.table, nil
}

// ModelForTable returns the model stored in table.
func (r *Registry) ModelForTable(table string) (schema.ModelID, bool) {
	id, ok := r.tables[table]
	return id, ok
}

// TableMap returns the table to model mapping.
func (r *Registry) TableMap() relation.TableMap {
	m := make(relation.TableMap, len(r.tables))
	for table, id := range r.tables {
		m[table] = id
	}
	return m
}

// Tables returns the backing tables of every model, sorted and without
// duplicates.
func (r *Registry) Tables() []string {
	tables := make([]string, 0, len(r.tables))
	for table := range r.tables {
		tables = append(tables, table)
	}
	sort.Strings(tables)
	return tables
}

// HiddenAttributes returns the hidden attributes of id. The returned map
// must not be modified.
func (r *Registry) HiddenAttributes(id schema.ModelID) map[string]bool {
	e, ok := r.models[id]
	if !ok {
		return nil
	}
	return e.hidden
}

// CastSpec returns how id casts attribute. Date attributes take precedence
// over the cast table.
func (r *Registry) CastSpec(id schema.ModelID, attribute string) (schema.CastSpec, bool) {
	e, ok := r.models[id]
	if !ok {
		return schema.CastSpec{}, false
	}

	if e.dates[attribute] {
		return schema.CastSpec{Attribute: attribute, Kind: schema.DateCast}, true
	}
	if token, ok := e.model.Casts[attribute]; ok {
		return schema.CastSpec{Attribute: attribute, Kind: schema.ExplicitCast, Token: token}, true
	}
	return schema.CastSpec{}, false
}
