package bootstrap

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
)

// InitFirestore connects to the project's default database. An empty project
// ID falls back to detection from credentials or FIRESTORE_EMULATOR_HOST.
func InitFirestore(ctx context.Context, projectID string) (*firestore.Client, error) {
	if projectID == "" {
		projectID = firestore.DetectProjectID
	}
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("init firestore: %w", err)
	}
	return client, nil
}
