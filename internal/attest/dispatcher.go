package attest

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	dErrors "zkattest/pkg/domain-errors"
)

// Dispatcher routes generate and verify calls to the engine registered for
// the statement type carried in the request or proof. The table is declared
// statically at startup so the supported set is auditable; there is no
// runtime discovery.
type Dispatcher struct {
	engines map[StatementType]Engine
	logger  *slog.Logger
}

// NewDispatcher builds the routing table. Panics on a duplicate statement
// type - fail fast at startup.
func NewDispatcher(logger *slog.Logger, engines ...Engine) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	table := make(map[StatementType]Engine, len(engines))
	for _, e := range engines {
		st := e.StatementType()
		if _, exists := table[st]; exists {
			panic(fmt.Sprintf("attest.NewDispatcher: duplicate engine for %q", st))
		}
		table[st] = e
	}
	return &Dispatcher{engines: table, logger: logger}
}

// Generate routes to the engine matching the request's statement type.
func (d *Dispatcher) Generate(ctx context.Context, req Request) (*Proof, error) {
	engine, err := d.engineFor(req.StatementType())
	if err != nil {
		return nil, err
	}
	return engine.Generate(ctx, req)
}

// Verify routes to the engine matching the proof's statement type.
func (d *Dispatcher) Verify(ctx context.Context, proof *Proof, opts VerifyOptions) (bool, error) {
	if proof == nil {
		return false, dErrors.New(dErrors.CodeInvalidInput, "proof is required")
	}
	engine, err := d.engineFor(proof.StatementType)
	if err != nil {
		return false, err
	}
	return engine.Verify(ctx, proof, opts)
}

// Supports reports whether an engine is registered for the statement type.
func (d *Dispatcher) Supports(st StatementType) bool {
	_, ok := d.engines[st]
	return ok
}

// StatementTypes lists the registered statement types in stable order, for
// the service descriptor.
func (d *Dispatcher) StatementTypes() []string {
	types := make([]string, 0, len(d.engines))
	for st := range d.engines {
		types = append(types, string(st))
	}
	sort.Strings(types)
	return types
}

func (d *Dispatcher) engineFor(st StatementType) (Engine, error) {
	engine, ok := d.engines[st]
	if !ok {
		d.logger.Warn("no engine registered for statement type", "statement_type", string(st))
		return nil, dErrors.New(dErrors.CodeUnknownStatement,
			fmt.Sprintf("no engine registered for statement type %q", st))
	}
	return engine, nil
}
