package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/GriffinCanCode/AgentOS/bridge/internal/shared/types"
)

// ErrCommandNotFound is returned when no provider owns a command
var ErrCommandNotFound = errors.New("command not found")

// Provider interface for command implementations
type Provider interface {
	Definition() types.Service
	Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error)
}

// Registry routes commands to providers
type Registry struct {
	mu       sync.RWMutex
	services map[string]Provider
	commands map[string]Provider
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		services: make(map[string]Provider),
		commands: make(map[string]Provider),
	}
}

// Register adds a provider and indexes its commands
func (r *Registry) Register(provider Provider) error {
	def := provider.Definition()
	if def.ID == "" {
		return fmt.Errorf("service ID cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, tool := range def.Tools {
		if owner, exists := r.commands[tool.ID]; exists && owner.Definition().ID != def.ID {
			return fmt.Errorf("command %s already registered by %s", tool.ID, owner.Definition().ID)
		}
	}

	if old, ok := r.services[def.ID]; ok {
		for _, tool := range old.Definition().Tools {
			delete(r.commands, tool.ID)
		}
	}

	r.services[def.ID] = provider
	for _, tool := range def.Tools {
		r.commands[tool.ID] = provider
	}
	return nil
}

// Unregister removes a provider and its commands
func (r *Registry) Unregister(serviceID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	provider, ok := r.services[serviceID]
	if !ok {
		return
	}
	for _, tool := range provider.Definition().Tools {
		delete(r.commands, tool.ID)
	}
	delete(r.services, serviceID)
}

// Get retrieves the provider owning a command
func (r *Registry) Get(command string) (Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.commands[command]
	return p, ok
}

// List returns all registered services sorted by ID
func (r *Registry) List() []types.Service {
	r.mu.RLock()
	defer r.mu.RUnlock()

	services := make([]types.Service, 0, len(r.services))
	for _, p := range r.services {
		services = append(services, p.Definition())
	}
	sort.Slice(services, func(i, j int) bool {
		return services[i].ID < services[j].ID
	})
	return services
}

// Execute runs a command
func (r *Registry) Execute(ctx context.Context, command string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	provider, ok := r.Get(command)
	if !ok {
		return types.Failure(fmt.Sprintf("command not found: %s", command)),
			fmt.Errorf("%w: %s", ErrCommandNotFound, command)
	}
	return provider.Execute(ctx, command, params, appCtx)
}

// Stats returns registry statistics
func (r *Registry) Stats() map[string]interface{} {
	r.mu.RLock()
	defer r.mu.RUnlock()

	categories := make(map[string]int)
	for _, p := range r.services {
		categories[string(p.Definition().Category)]++
	}

	return map[string]interface{}{
		"total_services": len(r.services),
		"total_commands": len(r.commands),
		"categories":     categories,
	}
}
