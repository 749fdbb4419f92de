// Package roosterteeth provides a client for the Rooster Teeth VOD API.
//
// The client wraps the catalog endpoints (channels, series, seasons,
// episodes) and the watch endpoint that returns playback data. Responses are
// decoded strictly through package schema.
//
// # Usage
//
// Anonymous access covers the whole catalog and public videos:
//
//	logger := zerolog.New(os.Stderr)
//	client, err := roosterteeth.NewClient(ctx, roosterteeth.Anonymous, logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	seasons, err := client.GetSeasons(ctx, "red-vs-blue", roosterteeth.OrderAsc)
//
// A Login credential exchanges a username and password for a bearer token
// before NewClient returns:
//
//	client, err := roosterteeth.NewClient(ctx,
//		roosterteeth.Login{Username: "user", Password: "secret"},
//		logger,
//		roosterteeth.WithTimeout(10*time.Second),
//	)
//
// # Error Handling
//
// GetVideo is the only operation with a domain error. A refused video is
// reported as *VideoUnavailableError:
//
//	video, err := client.GetVideo(ctx, slug)
//	if errors.Is(err, roosterteeth.ErrVideoUnavailable) {
//		// not entitled; prompt for a login or skip
//	}
//
// Every other non-success status is an *APIError, which matches ErrNotFound
// or ErrUnauthorized through errors.Is. A payload that does not match the
// schema is a *schema.DecodeError. Nothing is retried.
package roosterteeth
