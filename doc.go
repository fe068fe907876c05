// Package hookbase is the Go client for the Hookbase webhook platform.
//
// The package has an outbound half and an inbound half that share nothing
// but configuration:
//
//   - Client sends authenticated requests to the Hookbase API through
//     pkg/apiclient, retrying rate limits, 5xx responses and transport
//     failures with exponential backoff.
//   - Webhooks returns a pkg/webhook Verifier that authenticates deliveries
//     Hookbase sends to your endpoints.
//
// # Usage
//
//	client, err := hookbase.New(os.Getenv("HOOKBASE_API_KEY"))
//	if err != nil {
//	    return err
//	}
//
//	var source Source
//	err = client.Request(ctx, http.MethodPost, "/api/sources", &source,
//	    apiclient.WithBody(createSource),
//	    apiclient.WithIdempotencyKey(hookbase.NewIdempotencyKey()),
//	)
//
// Iterating every page of a list endpoint:
//
//	for src, err := range hookbase.PaginateOffset(ctx, 100, func(ctx context.Context, page, size int) (hookbase.OffsetPage[Source], error) {
//	    return hookbase.ListOffset[Source](ctx, client, "/api/sources", "sources", page, size)
//	}) {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(src.Name)
//	}
//
// # Configuration
//
// NewFromEnv reads HOOKBASE_API_KEY, HOOKBASE_BASE_URL, HOOKBASE_TIMEOUT,
// HOOKBASE_MAX_RETRIES, HOOKBASE_WEBHOOK_SECRET and
// HOOKBASE_WEBHOOK_TOLERANCE. Every Client is configured independently; the
// package keeps no global state.
package hookbase
