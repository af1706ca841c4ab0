package services

import (
	"context"
	"log"
	"net/http"
	"time"
)

// SelfPing hits the given URL on an interval so free-tier hosts do not put
// the process to sleep. Runs until ctx is cancelled.
func SelfPing(ctx context.Context, url string, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			resp, err := http.Get(url)
			if err != nil {
				log.Printf("Failed to self-ping: %v", err)
				continue
			}
			resp.Body.Close()
			log.Printf("Self pinged server at %s", time.Now().Format("15:04:05"))
		}
	}
}
