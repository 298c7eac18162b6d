package repositories

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// PostKeyPrefix is the key prefix of post documents.
const PostKeyPrefix = "post:"

// postKey returns the document key for a post id. Ids that are not UUIDs
// can never be stored, so ok is false for them.
func postKey(id string) (key []byte, ok bool) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, false
	}
	return []byte(PostKeyPrefix + parsed.String()), true
}

// newPostID generates a time ordered id, so key order follows creation order.
func newPostID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate post id: %w", err)
	}
	return id.String(), nil
}

// marshalEntity marshals an entity to JSON
func marshalEntity(v interface{}) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %w", err)
	}
	return data, nil
}

// unmarshalEntity unmarshals JSON data into an entity
func unmarshalEntity(data []byte, v interface{}) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to unmarshal entity: %w", err)
	}
	return nil
}
