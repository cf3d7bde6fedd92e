// Copyright 2025 Poiesic Systems
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

// ValidateDocument validates a Document according to domain rules.
//
// Validation rules:
//   - Location must not be empty
//   - Title must not be empty
//   - Body must be at least minBodyLength characters
//   - Id must equal IDFromLocation(Location)
//
// Documents that fail validation are discarded by the ingestor, never stored.
func ValidateDocument(doc *Document, minBodyLength int) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidDocument)
	}

	if doc.Location == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyLocation)
	}

	if doc.Title == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyTitle)
	}

	if len(doc.Body) < minBodyLength {
		return fmt.Errorf("%w: %w (%d < %d)", ErrInvalidDocument, ErrBodyTooShort, len(doc.Body), minBodyLength)
	}

	if doc.Id != IDFromLocation(doc.Location) {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrIDMismatch)
	}

	return nil
}
