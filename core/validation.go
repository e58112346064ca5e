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

import "fmt"

// ValidateArticle validates an Article according to domain rules.
//
// Validation rules:
//   - ID must not be empty (source-assigned stable identifier)
//   - Title must not be empty
//
// NOT validated:
//   - Body (the source occasionally serves title-only stubs; the converter
//     drops empty bodies rather than failing the fetch)
//   - timestamps (missing values are treated as the zero time)
func ValidateArticle(a *Article) error {
	if a == nil {
		return fmt.Errorf("%w: article is nil", ErrInvalidArticle)
	}
	if a.ID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidArticle, ErrMissingID)
	}
	if a.Title == "" {
		return fmt.Errorf("%w: %w", ErrInvalidArticle, ErrEmptyTitle)
	}
	return nil
}

// ValidateRecord validates a VectorRecord before upload.
//
// Validation rules:
//   - ID must not be empty
//   - Title must not be empty
//   - Body must not be empty
//
// NOT validated (populated by the embedding updater):
//   - Embedding, Fingerprint, LastSynced
func ValidateRecord(r *VectorRecord) error {
	if r == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidRecord)
	}
	if r.ID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrMissingID)
	}
	if r.Title == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrEmptyTitle)
	}
	if r.Body == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrEmptyBody)
	}
	return nil
}
