package utils

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// GenerateJobID creates a readable, globally unique job id.
// Format: {kind}-{villageID}-{8charHexUUID}, e.g. "build-12345-a3f8e2b1".
func GenerateJobID(kind string, villageID int) string {
	return fmt.Sprintf("%s-%d-%s", kind, villageID, shortUUID())
}

func shortUUID() string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "")[:8]
}
