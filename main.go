package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// snapshotTTL reads CACHE_TTL_SECONDS, defaulting to 60s — long enough to
// bound store reads during a burst of HUD refreshes, short enough that the
// timeline never looks stale for more than a minute.
func snapshotTTL() time.Duration {
	if v := os.Getenv("CACHE_TTL_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
		log.Printf("ignoring invalid CACHE_TTL_SECONDS=%q, using default", v)
	}
	return 60 * time.Second
}

func main() {
	log.SetPrefix("fe/evolution-engine-api: ")
	log.SetFlags(0)

	fmt.Println("Starting gin app...")

	h := &Handler{
		store:    newPGStore(),
		cache:    newSnapshotCache(snapshotTTL(), nil),
		notifier: notifierFromEnv(),
		now:      time.Now,
	}

	router := gin.Default()
	router.SetTrustedProxies(nil)
	h.registerRoutes(router)

	addr := "localhost:3000"
	if p := os.Getenv("PORT"); p != "" {
		addr = ":" + p
	}
	router.Run(addr)
}
