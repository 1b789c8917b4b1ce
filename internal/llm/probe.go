package llm

import (
	"context"
	"fmt"
	"time"
)

// ProbeEmbeddings verifies at startup that the embedding server is reachable
// and serves vectors of the configured size. Local model servers load weights
// lazily, so the probe retries until the server answers or the deadline hits.
func ProbeEmbeddings(ctx context.Context, client *EmbeddingsClient, maxWait time.Duration) error {
	deadline := time.Now().Add(maxWait)

	var lastErr error
	for {
		probeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		_, err := client.EmbedTexts(probeCtx, []string{"ping"})
		cancel()

		if err == nil {
			return nil
		}
		lastErr = err

		if time.Now().After(deadline) {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Second):
		}
	}

	return fmt.Errorf("embedding server not ready after %s: %w", maxWait, lastErr)
}
