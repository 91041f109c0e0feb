// Package scorix provides an embedded Go client for the scorix credit
// scoring engine. It loads a trained model artifact from disk and scores
// applications in-process, without going through the HTTP API.
//
//	client, _ := scorix.New(ctx,
//	    scorix.WithModelPaths("/var/lib/scorix/model.gob", "/var/lib/scorix/model"),
//	    scorix.WithPreload(),
//	)
//	pred, _ := client.Predict(ctx, app)
//	fmt.Println(pred.RiskLevel, pred.ProbabilityGood)
//
// The client watches nothing: a newly published artifact is picked up on
// the next Reload call, matching the behavior of the HTTP reload endpoint.
package scorix
