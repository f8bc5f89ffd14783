package bake

import (
	"log/slog"
	"reflect"
	"strings"
	"sync"

	"github.com/signadot/jsonbake/internal/debug"
)

// Status tells why a registry lookup did or did not find a converter.
type Status int

const (
	StatusFound Status = iota
	// StatusUnnamed is reported for types without a package path, such as
	// builtin, pointer, slice and map types.
	StatusUnnamed
	// StatusStandard is reported for standard library packages, which never
	// carry generated converters.
	StatusStandard
	StatusTypeExcluded
	StatusModuleExcluded
	// StatusModuleMissing is reported when the package of the type has no
	// registered module.
	StatusModuleMissing
	// StatusNotInModule is reported when the package has a module but the
	// type was not marked for generation.
	StatusNotInModule
)

func (s Status) String() string {
	switch s {
	case StatusFound:
		return "found"
	case StatusUnnamed:
		return "unnamed"
	case StatusStandard:
		return "standard"
	case StatusTypeExcluded:
		return "type-excluded"
	case StatusModuleExcluded:
		return "module-excluded"
	case StatusModuleMissing:
		return "module-missing"
	case StatusNotInModule:
		return "not-in-module"
	default:
		return "unknown"
	}
}

type entry struct {
	conv   Converter
	status Status
}

// Registry lazily builds module tables and caches the converter (or its
// absence) for every type it is asked about.
//
// Lookups of cached types do not lock. A miss takes the registry lock, and
// building a module happens entirely under it, so each module is built at
// most once and tables become visible only after every converter they hold
// has been initialized. A first lookup in one module therefore waits for any
// other module being built at the time. Once a type is cached its lookups
// never wait.
type Registry struct {
	types sync.Map // reflect.Type -> entry

	mu       sync.Mutex
	tables   map[string]*ModuleTable // nil value: looked up, absent
	excluded map[string]bool
	modules  map[string]Module // nil: use the registration catalog

	log     *slog.Logger
	metrics *Metrics
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithModules restricts the registry to the given modules instead of the
// process-wide catalog filled by Register.
func WithModules(ms ...Module) RegistryOption {
	return func(r *Registry) {
		if r.modules == nil {
			r.modules = make(map[string]Module, len(ms))
		}
		for _, m := range ms {
			r.modules[m.Path] = m
		}
	}
}

// WithLogger sets the logger used to report module loads.
func WithLogger(l *slog.Logger) RegistryOption {
	return func(r *Registry) {
		if l != nil {
			r.log = l
		}
	}
}

// WithMetrics records lookups and module loads in m.
func WithMetrics(m *Metrics) RegistryOption {
	return func(r *Registry) { r.metrics = m }
}

func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		tables:   make(map[string]*ModuleTable),
		excluded: make(map[string]bool),
		log:      slog.New(slog.DiscardHandler),
	}
	if debug.Registry() {
		r.log = debug.Logger()
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Resolve returns the converter for t, or nil.
func (r *Registry) Resolve(t reflect.Type) Converter {
	c, _ := r.Lookup(t)
	return c
}

// Lookup returns the converter for t, or nil and the reason it is absent.
func (r *Registry) Lookup(t reflect.Type) (Converter, Status) {
	if t == nil {
		return nil, StatusUnnamed
	}
	if v, ok := r.types.Load(t); ok {
		r.metrics.lookup(true)
		e := v.(entry)
		return e.conv, e.status
	}
	r.metrics.lookup(false)

	r.mu.Lock()
	defer r.mu.Unlock()

	// Check again in case it was resolved while we were waiting for the lock
	if v, ok := r.types.Load(t); ok {
		e := v.(entry)
		return e.conv, e.status
	}
	e := r.resolveLocked(t)
	r.store(t, e)
	return e.conv, e.status
}

// ExcludeModule makes every type of the package at path resolve as absent
// without attempting to load its module.
func (r *Registry) ExcludeModule(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.excluded[path] = true
	r.types.Range(func(k, _ any) bool {
		if t := k.(reflect.Type); t.PkgPath() == path {
			r.types.Store(t, entry{status: StatusModuleExcluded})
		}
		return true
	})
}

// ExcludeType makes t resolve as absent.
func (r *Registry) ExcludeType(t reflect.Type) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.store(t, entry{status: StatusTypeExcluded})
}

// Table returns the table of the package at path if it has been loaded.
func (r *Registry) Table(path string) (*ModuleTable, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t := r.tables[path]
	return t, t != nil
}

func (r *Registry) store(t reflect.Type, e entry) {
	if _, loaded := r.types.Swap(t, e); !loaded {
		r.metrics.cached()
	}
}

func (r *Registry) resolveLocked(t reflect.Type) entry {
	path := t.PkgPath()
	if path == "" {
		return entry{status: StatusUnnamed}
	}
	if r.excluded[path] {
		return entry{status: StatusModuleExcluded}
	}
	table, ok := r.tables[path]
	if !ok {
		s := &session{reg: r, pending: make(map[string]*ModuleTable)}
		table = s.load(path)
		s.publish()
	}
	if table == nil {
		return entry{status: r.missingStatus(path)}
	}
	c, ok := table.Lookup(t)
	if !ok {
		return entry{status: StatusNotInModule}
	}
	return entry{conv: c, status: StatusFound}
}

func (r *Registry) module(path string) (Module, bool) {
	if r.modules != nil {
		m, ok := r.modules[path]
		return m, ok
	}
	return registeredModule(path)
}

func (r *Registry) missingStatus(path string) Status {
	if isStandardPath(path) {
		return StatusStandard
	}
	return StatusModuleMissing
}

// isStandardPath reports whether path looks like a standard library import
// path: its first element has no dot.
func isStandardPath(path string) bool {
	if path == "main" {
		return false
	}
	elem, _, _ := strings.Cut(path, "/")
	return !strings.Contains(elem, ".")
}

// session builds one or more module tables under the registry lock.
// Converters are instantiated for a module before any of them is
// initialized, and nothing is published until every table of the session is
// complete, which lets modules refer to each other cyclically.
type session struct {
	reg     *Registry
	pending map[string]*ModuleTable
	order   []string
}

func (s *session) load(path string) *ModuleTable {
	m, ok := s.reg.module(path)
	if !ok {
		s.pending[path] = nil
		s.order = append(s.order, path)
		return nil
	}
	convs := m.Converters()
	t := newModuleTable(path, convs)
	s.pending[path] = t
	s.order = append(s.order, path)
	for _, c := range convs {
		if c != nil {
			c.Init(s)
		}
	}
	return t
}

func (s *session) table(path string) *ModuleTable {
	if t, ok := s.reg.tables[path]; ok {
		return t
	}
	if t, ok := s.pending[path]; ok {
		return t
	}
	return s.load(path)
}

// Resolve implements Resolver for converters being initialized.
func (s *session) Resolve(t reflect.Type) Converter {
	if t == nil {
		return nil
	}
	if v, ok := s.reg.types.Load(t); ok {
		return v.(entry).conv
	}
	path := t.PkgPath()
	if path == "" || s.reg.excluded[path] {
		return nil
	}
	table := s.table(path)
	if table == nil {
		return nil
	}
	c, _ := table.Lookup(t)
	return c
}

func (s *session) publish() {
	for _, path := range s.order {
		t := s.pending[path]
		s.reg.tables[path] = t
		if t == nil {
			s.reg.metrics.moduleLoad(false)
			s.reg.log.Debug("no converters for module", "module", path)
			continue
		}
		for typ, c := range t.convs {
			if _, ok := s.reg.types.Load(typ); ok {
				continue
			}
			s.reg.store(typ, entry{conv: c, status: StatusFound})
		}
		s.reg.metrics.moduleLoad(true)
		s.reg.log.Debug("loaded module converters", "module", path, "types", t.Len())
	}
}
