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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidArticle indicates an Article failed validation.
	ErrInvalidArticle = errors.New("invalid article")

	// ErrInvalidRecord indicates a VectorRecord failed validation.
	ErrInvalidRecord = errors.New("invalid vector record")

	// ErrMissingID indicates a record without a stable identifier.
	ErrMissingID = errors.New("identifier is required")

	// ErrEmptyTitle indicates a record without a title.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrEmptyBody indicates a record without body content.
	ErrEmptyBody = errors.New("body cannot be empty")
)
