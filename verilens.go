// Package verilens is a client for the Verilens media-authenticity API.
//
// The API analyzes uploaded media (or social media links) for manipulation
// and exposes results asynchronously: an upload yields a request id, and the
// analysis attached to that id is fetched, polled, and normalized through
// the detection package into scores on a uniform 0-1 scale.
//
// Typical use:
//
//	client, err := verilens.New(verilens.Config{APIKey: os.Getenv("VERILENS_API_KEY")})
//	if err != nil {
//		return err
//	}
//	handle, err := client.Upload(ctx, "clip.mp4")
//	if err != nil {
//		return err
//	}
//	result, err := client.GetResult(ctx, handle.RequestID, &verilens.ResultOptions{
//		MaxAttempts:     30,
//		PollingInterval: 2 * time.Second,
//	})
//
// ProcessBatch fans the same flow out over many files under a concurrency
// cap, and GetResults pages through historical results with optional
// filters.
package verilens
