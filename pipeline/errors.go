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

import "errors"

var (
	// ErrNoSteps indicates an empty step list.
	ErrNoSteps = errors.New("pipeline has no steps")

	// ErrInvalidStep indicates a step missing a name or run function.
	ErrInvalidStep = errors.New("invalid step")

	// ErrDuplicateStep indicates two steps share a name.
	ErrDuplicateStep = errors.New("duplicate step name")

	// ErrUnboundInput indicates a step reads a dataset no earlier step
	// produces and no external given provides.
	ErrUnboundInput = errors.New("unbound step input")
)
