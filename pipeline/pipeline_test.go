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


package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noop(context.Context) error { return nil }

func TestRunExecutesInOrder(t *testing.T) {
	var order []string
	step := func(name string, inputs, outputs []string) Step {
		return Step{
			Name:    name,
			Inputs:  inputs,
			Outputs: outputs,
			Run: func(context.Context) error {
				order = append(order, name)
				return nil
			},
		}
	}

	p, err := New([]Step{
		step("fetch", nil, []string{"articles"}),
		step("convert", []string{"articles"}, []string{"records"}),
		step("upload", []string{"records"}, nil),
	})
	require.NoError(t, err)

	require.NoError(t, p.Run(context.Background()))
	assert.Equal(t, []string{"fetch", "convert", "upload"}, order)
	assert.Equal(t, []string{"fetch", "convert", "upload"}, p.Names())
}

func TestRunHaltsOnFirstError(t *testing.T) {
	boom := errors.New("boom")
	ran := map[string]bool{}
	mark := func(name string, err error) func(context.Context) error {
		return func(context.Context) error {
			ran[name] = true
			return err
		}
	}

	p, err := New([]Step{
		{Name: "first", Run: mark("first", nil)},
		{Name: "second", Run: mark("second", boom)},
		{Name: "third", Run: mark("third", nil)},
	})
	require.NoError(t, err)

	err = p.Run(context.Background())
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "step second")

	assert.True(t, ran["first"])
	assert.True(t, ran["second"])
	assert.False(t, ran["third"])
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var secondRan bool
	p, err := New([]Step{
		{Name: "first", Run: func(context.Context) error {
			cancel()
			return nil
		}},
		{Name: "second", Run: func(context.Context) error {
			secondRan = true
			return nil
		}},
	})
	require.NoError(t, err)

	require.ErrorIs(t, p.Run(ctx), context.Canceled)
	assert.False(t, secondRan)
}

func TestValidation(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrNoSteps)

	_, err = New([]Step{{Name: "", Run: noop}})
	assert.ErrorIs(t, err, ErrInvalidStep)

	_, err = New([]Step{{Name: "fetch"}})
	assert.ErrorIs(t, err, ErrInvalidStep)

	_, err = New([]Step{
		{Name: "fetch", Run: noop},
		{Name: "fetch", Run: noop},
	})
	assert.ErrorIs(t, err, ErrDuplicateStep)
}

func TestValidationUnboundInput(t *testing.T) {
	_, err := New([]Step{
		{Name: "convert", Inputs: []string{"articles"}, Run: noop},
	})
	require.ErrorIs(t, err, ErrUnboundInput)
	assert.Contains(t, err.Error(), `"articles"`)

	// The same input is fine when declared external.
	_, err = New([]Step{
		{Name: "convert", Inputs: []string{"articles"}, Run: noop},
	}, "articles")
	assert.NoError(t, err)

	// An output only satisfies inputs of later steps.
	_, err = New([]Step{
		{Name: "convert", Inputs: []string{"articles"}, Run: noop},
		{Name: "fetch", Outputs: []string{"articles"}, Run: noop},
	})
	assert.ErrorIs(t, err, ErrUnboundInput)
}
