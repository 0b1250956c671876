package main

import (
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"

	"github.com/GregMSThompson/timeline-chart/infra/cloudrun"
	"github.com/GregMSThompson/timeline-chart/infra/docker"
	"github.com/GregMSThompson/timeline-chart/infra/firestore"
	"github.com/GregMSThompson/timeline-chart/infra/identity"
	"github.com/GregMSThompson/timeline-chart/infra/provider"
)

func main() {
	pulumi.Run(func(ctx *pulumi.Context) error {
		prov, err := provider.SetupDefaultProvider(ctx)
		if err != nil {
			return err
		}

		// firebase auth guards the saved-timeline routes
		ident, err := identity.SetupIdentity(ctx, prov)
		if err != nil {
			return err
		}

		// saved timelines live under users/{uid}/timelines
		db, err := firestore.SetupFirestore(ctx, prov)
		if err != nil {
			return err
		}

		repo, err := docker.CreateCloudrunRepo(ctx, prov)
		if err != nil {
			return err
		}

		url, err := cloudrun.SetupCloudRun(ctx, prov, ident, db, repo)
		if err != nil {
			return err
		}

		ctx.Export("serviceUrl", url)
		ctx.Export("demoChartUrl", pulumi.Sprintf("%s/demo.svg", url))
		return nil
	})
}
