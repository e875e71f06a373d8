// Package portstest provides in-memory implementations of the ports
// interfaces for tests. None of them touch the host.
package portstest

import (
	"context"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/alexisbeaulieu97/failover-remedy/internal/model"
	"github.com/alexisbeaulieu97/failover-remedy/internal/ports"
	remedyerrors "github.com/alexisbeaulieu97/failover-remedy/pkg/errors"
)

// Registry is an in-memory registry. Key paths are matched
// case-insensitively, as on Windows.
type Registry struct {
	mu      sync.Mutex
	keys    map[string]map[string]string
	names   map[string]string
	Deleted []string
	// Errs forces an error for any operation on the given key path.
	Errs map[string]error
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		keys:  make(map[string]map[string]string),
		names: make(map[string]string),
		Errs:  make(map[string]error),
	}
}

// SetValue creates keyPath (and its parents) and stores value under name.
func (r *Registry) SetValue(keyPath, name, value string) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensure(keyPath)
	r.keys[strings.ToLower(keyPath)][name] = value
	return r
}

// AddKey creates an empty key.
func (r *Registry) AddKey(keyPath string) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensure(keyPath)
	return r
}

// HasKey reports whether keyPath exists.
func (r *Registry) HasKey(keyPath string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.keys[strings.ToLower(keyPath)]
	return ok
}

func (r *Registry) ensure(keyPath string) {
	parts := strings.Split(keyPath, `\`)
	for i := 1; i <= len(parts); i++ {
		p := strings.Join(parts[:i], `\`)
		lk := strings.ToLower(p)
		if _, ok := r.keys[lk]; !ok {
			r.keys[lk] = make(map[string]string)
			r.names[lk] = p
		}
	}
}

func (r *Registry) forced(keyPath string) error {
	for k, err := range r.Errs {
		if strings.EqualFold(k, keyPath) {
			return err
		}
	}
	return nil
}

func missing(op, keyPath string) error {
	return remedyerrors.NewProviderError(op, keyPath, remedyerrors.ErrNotFound, nil)
}

// ReadValue implements ports.RegistryReader.
func (r *Registry) ReadValue(_ ports.Hive, keyPath, valueName string) (string, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.forced(keyPath); err != nil {
		return "", false, err
	}
	values, ok := r.keys[strings.ToLower(keyPath)]
	if !ok {
		return "", false, missing("open key", keyPath)
	}
	v, ok := values[valueName]
	return v, ok, nil
}

// ListSubkeys implements ports.RegistryReader.
func (r *Registry) ListSubkeys(_ ports.Hive, keyPath string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.forced(keyPath); err != nil {
		return nil, err
	}
	prefix := strings.ToLower(keyPath) + `\`
	if _, ok := r.keys[strings.ToLower(keyPath)]; !ok {
		return nil, missing("open key", keyPath)
	}
	var out []string
	for lk := range r.keys {
		if rest, ok := strings.CutPrefix(lk, prefix); ok && !strings.Contains(rest, `\`) {
			full := r.names[lk]
			out = append(out, full[strings.LastIndex(full, `\`)+1:])
		}
	}
	sort.Strings(out)
	return out, nil
}

// DeleteKey implements ports.RegistryReader.
func (r *Registry) DeleteKey(_ ports.Hive, keyPath string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.forced(keyPath); err != nil {
		return err
	}
	lk := strings.ToLower(keyPath)
	if _, ok := r.keys[lk]; !ok {
		return missing("delete key", keyPath)
	}
	for k := range r.keys {
		if k == lk || strings.HasPrefix(k, lk+`\`) {
			delete(r.keys, k)
			delete(r.names, k)
		}
	}
	r.Deleted = append(r.Deleted, keyPath)
	return nil
}

// Services is an in-memory service manager. Start moves a Stopped service
// to Running unless it is listed in StayStopped. WaitForState consults
// Settle to move Other services to a final state.
type Services struct {
	mu          sync.Mutex
	services    []model.ServiceDescriptor
	StartCalls  []string
	WaitCalls   []string
	ListCalls   int
	ListErr     error
	StartErrs   map[string]error
	StayStopped map[string]bool
	Settle      map[string]model.RunState
}

// NewServices seeds the fake with descriptors.
func NewServices(services ...model.ServiceDescriptor) *Services {
	return &Services{
		services:    append([]model.ServiceDescriptor(nil), services...),
		StartErrs:   make(map[string]error),
		StayStopped: make(map[string]bool),
		Settle:      make(map[string]model.RunState),
	}
}

// Get returns the current descriptor for name.
func (s *Services) Get(name string) (model.ServiceDescriptor, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.FindService(s.services, name)
}

func (s *Services) update(name string, fn func(*model.ServiceDescriptor)) bool {
	for i := range s.services {
		if strings.EqualFold(s.services[i].Name, name) {
			fn(&s.services[i])
			return true
		}
	}
	return false
}

// ListServices implements ports.ServiceController.
func (s *Services) ListServices(ctx context.Context) ([]model.ServiceDescriptor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ListCalls++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	return append([]model.ServiceDescriptor(nil), s.services...), nil
}

// Start implements ports.ServiceController.
func (s *Services) Start(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.StartCalls = append(s.StartCalls, name)
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.StartErrs[name]; err != nil {
		return err
	}
	found := s.update(name, func(d *model.ServiceDescriptor) {
		if !s.StayStopped[d.Name] {
			d.RunState = model.StateRunning
		}
	})
	if !found {
		return remedyerrors.NewProviderError("open service", name, remedyerrors.ErrNotFound, nil)
	}
	return nil
}

// WaitForState implements ports.ServiceController. It never sleeps.
func (s *Services) WaitForState(ctx context.Context, name string, state model.RunState, _ time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.WaitCalls = append(s.WaitCalls, name)
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var current model.RunState
	found := s.update(name, func(d *model.ServiceDescriptor) {
		if settled, ok := s.Settle[d.Name]; ok {
			d.RunState = settled
		}
		current = d.RunState
	})
	if !found {
		return false, remedyerrors.NewProviderError("open service", name, remedyerrors.ErrNotFound, nil)
	}
	return current == state, nil
}

// SetMode changes the stored start mode; used by StartModes when Apply is set.
func (s *Services) SetMode(name string, mode model.StartMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.update(name, func(d *model.ServiceDescriptor) { d.StartMode = mode })
}

// ModeCall records one SetStartMode invocation.
type ModeCall struct {
	Name string
	Mode model.StartMode
}

// StartModes is a fake elevated channel. When Apply is non-nil accepted
// changes are written through to it.
type StartModes struct {
	mu    sync.Mutex
	Calls []ModeCall
	Errs  map[string]error
	Apply *Services
}

// NewStartModes returns a StartModes that writes through to services.
func NewStartModes(services *Services) *StartModes {
	return &StartModes{Errs: make(map[string]error), Apply: services}
}

// SetStartMode implements ports.StartModeChanger.
func (m *StartModes) SetStartMode(ctx context.Context, name string, mode model.StartMode) error {
	m.mu.Lock()
	m.Calls = append(m.Calls, ModeCall{Name: name, Mode: mode})
	err := m.Errs[name]
	m.mu.Unlock()
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.Apply != nil {
		m.Apply.SetMode(name, mode)
	}
	return nil
}

// ProcessCall records one Run invocation.
type ProcessCall struct {
	Command string
	Args    []string
	Options ports.RunOptions
}

// Processes is a fake process runner returning a canned result.
type Processes struct {
	mu       sync.Mutex
	Calls    []ProcessCall
	ExitCode int
	Err      error
	// Handler, when set, decides the result per call.
	Handler func(ctx context.Context, call ProcessCall) (int, error)
}

// Run implements ports.ProcessRunner.
func (p *Processes) Run(ctx context.Context, command string, args []string, opts ports.RunOptions) (int, error) {
	call := ProcessCall{Command: command, Args: append([]string(nil), args...), Options: opts}
	p.mu.Lock()
	p.Calls = append(p.Calls, call)
	handler, code, err := p.Handler, p.ExitCode, p.Err
	p.mu.Unlock()
	if handler != nil {
		return handler(ctx, call)
	}
	if err != nil {
		return -1, err
	}
	return code, nil
}

// Filesystem is an in-memory path set. Directories own every path beneath
// them.
type Filesystem struct {
	mu      sync.Mutex
	entries map[string]bool
	Deleted []string
	// Errs forces an error for any operation on the given path.
	Errs map[string]error
}

// NewFilesystem returns an empty Filesystem.
func NewFilesystem() *Filesystem {
	return &Filesystem{entries: make(map[string]bool), Errs: make(map[string]error)}
}

// AddFile registers a file.
func (f *Filesystem) AddFile(path string) *Filesystem {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[path] = false
	return f
}

// AddDir registers a directory.
func (f *Filesystem) AddDir(path string) *Filesystem {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[path] = true
	return f
}

// Exists implements ports.Filesystem.
func (f *Filesystem) Exists(path string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.Errs[path]; err != nil {
		return false, err
	}
	_, ok := f.entries[path]
	return ok, nil
}

// DeleteFile implements ports.Filesystem.
func (f *Filesystem) DeleteFile(path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.Errs[path]; err != nil {
		return err
	}
	isDir, ok := f.entries[path]
	if !ok {
		return &fs.PathError{Op: "delete", Path: path, Err: fs.ErrNotExist}
	}
	if isDir {
		return &fs.PathError{Op: "delete", Path: path, Err: fmt.Errorf("is a directory")}
	}
	delete(f.entries, path)
	f.Deleted = append(f.Deleted, path)
	return nil
}

// DeleteDirectoryRecursive implements ports.Filesystem.
func (f *Filesystem) DeleteDirectoryRecursive(path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.Errs[path]; err != nil {
		return err
	}
	if _, ok := f.entries[path]; !ok {
		return &fs.PathError{Op: "delete", Path: path, Err: fs.ErrNotExist}
	}
	for p := range f.entries {
		if p == path || strings.HasPrefix(p, path+`\`) || strings.HasPrefix(p, path+"/") {
			delete(f.entries, p)
		}
	}
	f.Deleted = append(f.Deleted, path)
	return nil
}

// Sink records emitted results.
type Sink struct {
	mu      sync.Mutex
	results []model.StepResult
}

// Emit implements ports.ResultSink.
func (s *Sink) Emit(result model.StepResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, result)
}

// Results returns a copy of everything emitted so far.
func (s *Sink) Results() []model.StepResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.StepResult(nil), s.results...)
}

var (
	_ ports.RegistryReader    = (*Registry)(nil)
	_ ports.ServiceController = (*Services)(nil)
	_ ports.StartModeChanger  = (*StartModes)(nil)
	_ ports.ProcessRunner     = (*Processes)(nil)
	_ ports.Filesystem        = (*Filesystem)(nil)
	_ ports.ResultSink        = (*Sink)(nil)
)
