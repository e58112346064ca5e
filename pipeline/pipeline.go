// Copyright 2026 Helix Data Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package pipeline describes a sync run as an ordered list of named steps
// with declared dataset inputs and outputs. The declaration is validated
// before anything runs: step names must be unique and every input must be
// produced by an earlier step or named as an external given. Execution is
// strictly sequential and stops at the first failure.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Step is one unit of pipeline work. Inputs and Outputs name the datasets
// (stage keys) the step reads and writes; they drive validation, not
// dataflow, so Run is still responsible for its own I/O.
type Step struct {
	Name    string
	Inputs  []string
	Outputs []string
	Run     func(ctx context.Context) error
}

// Pipeline is a validated sequence of steps.
type Pipeline struct {
	steps  []Step
	logger *slog.Logger
}

// New validates the step sequence against the externally provided datasets
// and returns a runnable pipeline.
func New(steps []Step, external ...string) (*Pipeline, error) {
	if len(steps) == 0 {
		return nil, ErrNoSteps
	}

	available := make(map[string]bool, len(external))
	for _, ds := range external {
		available[ds] = true
	}

	seen := make(map[string]bool, len(steps))
	for _, step := range steps {
		if step.Name == "" {
			return nil, fmt.Errorf("%w: step with empty name", ErrInvalidStep)
		}
		if step.Run == nil {
			return nil, fmt.Errorf("%w: step %q has no run function", ErrInvalidStep, step.Name)
		}
		if seen[step.Name] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateStep, step.Name)
		}
		seen[step.Name] = true

		for _, in := range step.Inputs {
			if !available[in] {
				return nil, fmt.Errorf("%w: step %q reads %q", ErrUnboundInput, step.Name, in)
			}
		}
		for _, out := range step.Outputs {
			available[out] = true
		}
	}

	return &Pipeline{
		steps:  steps,
		logger: slog.Default().With("component", "pipeline"),
	}, nil
}

// Names lists the step names in execution order.
func (p *Pipeline) Names() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name
	}
	return names
}

// Run executes the steps in order. The first failing step aborts the run;
// its error is returned wrapped with the step name and no later step runs.
func (p *Pipeline) Run(ctx context.Context) error {
	for _, step := range p.steps {
		if err := ctx.Err(); err != nil {
			return err
		}

		start := time.Now()
		p.logger.Info("running step", "step", step.Name)
		if err := step.Run(ctx); err != nil {
			p.logger.Error("step failed", "step", step.Name, "err", err)
			return fmt.Errorf("step %s: %w", step.Name, err)
		}
		p.logger.Info("step complete", "step", step.Name, "elapsed", time.Since(start))
	}
	return nil
}
