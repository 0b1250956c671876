package firestore

import (
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/firestore"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/projects"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi/config"
)

// SetupFirestore enables the API, creates the default native database and
// the index behind listing a user's timelines by creation time.
func SetupFirestore(ctx *pulumi.Context, prov *gcp.Provider) (*firestore.Database, error) {
	svc, err := projects.NewService(ctx, "firestore", &projects.ServiceArgs{
		Service: pulumi.String("firestore.googleapis.com"),
	},
		pulumi.Provider(prov),
	)
	if err != nil {
		return nil, err
	}

	db, err := createDatabase(ctx, prov, svc)
	if err != nil {
		return nil, err
	}

	if err := createTimelineIndex(ctx, prov, db); err != nil {
		return nil, err
	}
	return db, nil
}

func createDatabase(ctx *pulumi.Context, prov *gcp.Provider, res ...pulumi.Resource) (*firestore.Database, error) {
	gcpCfg := config.New(ctx, "gcp")
	projectID := gcpCfg.Require("project")
	region := gcpCfg.Require("region")

	return firestore.NewDatabase(ctx, "firestoreDatabase", &firestore.DatabaseArgs{
		Name:       pulumi.String("(default)"),
		Project:    pulumi.String(projectID),
		LocationId: pulumi.String(region),
		Type:       pulumi.String("FIRESTORE_NATIVE"),
	},
		pulumi.Provider(prov),
		pulumi.DependsOn(res),
	)
}

// timelines are listed oldest first
func createTimelineIndex(ctx *pulumi.Context, prov *gcp.Provider, db *firestore.Database) error {
	_, err := firestore.NewField(ctx, "timelinesCreatedAt", &firestore.FieldArgs{
		Database:   db.Name,
		Collection: pulumi.String("timelines"),
		Field:      pulumi.String("createdAt"),
		IndexConfig: &firestore.FieldIndexConfigArgs{
			Indexes: firestore.FieldIndexConfigIndexArray{
				&firestore.FieldIndexConfigIndexArgs{
					Order:      pulumi.String("ASCENDING"),
					QueryScope: pulumi.String("COLLECTION"),
				},
			},
		},
	},
		pulumi.Provider(prov),
	)
	return err
}
