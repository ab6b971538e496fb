package deps

import (
	"time"

	"github.com/MrSnakeDoc/namax/internal/collection"
	"github.com/MrSnakeDoc/namax/internal/filterbar"
	"github.com/MrSnakeDoc/namax/internal/generator"
	"github.com/MrSnakeDoc/namax/internal/index"
	"github.com/MrSnakeDoc/namax/internal/logger"
	"github.com/MrSnakeDoc/namax/internal/store"
)

type Deps struct {
	Logger          logger.Logger
	StartTime       time.Time
	Version         string
	Commit          string
	BuildDate       string
	GoVersion       string
	TimeNow         func() time.Time      // for testing, defaults to time.Now
	AllowedHosts    []string              // Host headers allowed to access the server
	AllowedCIDRS    []string              // IPs allowed to access readyz/infra/reload
	TrustProxy      bool                  // true if running behind a trusted reverse proxy
	StoreBackend    string                // memory, sqlite or redis
	Store           store.Pinger          // health of the collection backend (nil for memory)
	Collections     *collection.Provider  // per-client favorites/history/preferences
	Filters         *filterbar.Registry   // per-client filter bar sessions
	Generator       *generator.Generator  // name panels
	MemoryIndex     *index.MemoryIndex    // current catalog
	ReloadTrigger   chan struct{}         // Channel to trigger a manual catalog reload
	ClientCookie    string                // cookie carrying the client scope id
	CookieSecure    bool                  // mark the client cookie Secure
	DefaultLanguage string                // language reported when preferences have none
	RateLimit       float64               // requests per second per IP on /api (0 disables)
	RateBurst       int                   // burst per IP on /api
}
