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

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// RecordFingerprint computes the content hash of a vector record's source
// content. Two records with the same fingerprint carry the same title, body,
// tags and category, so a matching fingerprint means the stored embedding is
// still valid. Derived fields such as keywords or combined text are excluded:
// they are regenerated from the same source content at embedding time.
func RecordFingerprint(r *VectorRecord) string {
	h := sha256.New()
	h.Write([]byte(r.Title))
	h.Write([]byte{0})
	h.Write([]byte(r.Body))
	h.Write([]byte{0})
	h.Write([]byte(strings.Join(r.Tags, ",")))
	h.Write([]byte{0})
	h.Write([]byte(r.Category))
	return hex.EncodeToString(h.Sum(nil))
}

// Stale reports whether the record's stored fingerprint no longer matches
// its current content, or the record has never been embedded.
func (r *VectorRecord) Stale() bool {
	if len(r.Embedding) == 0 || r.Fingerprint == "" {
		return true
	}
	return r.Fingerprint != RecordFingerprint(r)
}
