package bootstrap

import (
	"context"
	"time"

	"github.com/firebase/genkit/go/genkit"
	"gorm.io/gorm"

	"github.com/sdr4n/toolshed/config"
	"github.com/sdr4n/toolshed/log"
	"github.com/sdr4n/toolshed/orm"
	"github.com/sdr4n/toolshed/plugins/core"
	"github.com/sdr4n/toolshed/plugins/jira"
	"github.com/sdr4n/toolshed/plugins/places"
	"github.com/sdr4n/toolshed/plugins/tavily"
	"github.com/sdr4n/toolshed/tools"
)

// App holds the initialized components of the collection
type App struct {
	Genkit   *genkit.Genkit
	Registry *tools.Registry
	Cache    *gorm.DB

	Core   *core.Client
	Jira   *jira.Client
	Tavily *tavily.Client
	Places *places.Client
}

// Setup initializes the tool collection from the configuration. Plugins with
// missing credentials are skipped with a warning so the collection loads
// with whatever keys exist. Providing an LLM and invoking tools is the
// host's business; no model plugins are configured here.
func Setup(ctx context.Context, cfg *config.Config) (*App, error) {
	log.SetLevelName(cfg.Log.Level)

	gk := genkit.Init(ctx)
	registry := tools.NewRegistry()

	app := &App{
		Genkit:   gk,
		Registry: registry,
	}

	// Response cache, shared by plugins that want one
	if cfg.Cache.Driver != "" && cfg.Cache.DSN != "" {
		db, err := orm.Open(cfg.Cache.Driver, cfg.Cache.DSN)
		if err != nil {
			log.Warnf(ctx, "Response cache disabled: %v", err)
		} else {
			app.Cache = db
		}
	}

	// Core tools need no credentials
	app.Core = core.NewClient(gk, registry)

	// Jira
	if cfg.Jira.BaseURL != "" && cfg.Jira.Username != "" && cfg.Jira.APIToken != "" {
		cacheTTL := time.Duration(cfg.Cache.TTLSeconds) * time.Second
		app.Jira = jira.NewClient(cfg.Jira.BaseURL, cfg.Jira.Username, cfg.Jira.APIToken,
			cfg.Events.Enabled, gk, registry, app.Cache, cacheTTL)
	} else {
		log.Warn(ctx, "Jira tools skipped: JIRA_BASE_URL, JIRA_USERNAME and JIRA_API_TOKEN must all be set")
	}

	// Tavily
	if cfg.Tavily.APIKey != "" {
		app.Tavily = tavily.NewClient(cfg.Tavily.APIKey, cfg.Tavily.Timeout, gk, registry)
	} else {
		log.Warn(ctx, "Tavily tools skipped: TAVILY_API_KEY not set")
	}

	// Places
	if cfg.Places.APIKey != "" {
		placesClient, err := places.NewClient(cfg.Places.APIKey, gk, registry)
		if err != nil {
			log.Warnf(ctx, "Places tools skipped: %v", err)
		} else {
			app.Places = placesClient
		}
	} else {
		log.Warn(ctx, "Places tools skipped: PLACES_API_KEY not set")
	}

	log.Infof(ctx, "Registered %d tools: %v", len(registry.GetTools()), registry.Names())

	return app, nil
}
