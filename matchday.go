// Package matchday provides a high-level façade over the conversational
// dispatcher: session store, intent classifier, domain handlers, fusion
// aggregator and router. Most applications interact with this package by:
//  1. Loading a config.Config
//  2. Creating a Matchday via New() (optionally overriding the store, model
//     or individual providers)
//  3. Running turns through Dispatch, or serving the HTTP turn protocol
//
// All defaults are safe for local development; production deployments
// typically supply the SQLite store and a structured logger.
package matchday

import (
	"context"
	"fmt"

	"github.com/hupe1980/matchday/config"
	"github.com/hupe1980/matchday/core"
	"github.com/hupe1980/matchday/fusion"
	"github.com/hupe1980/matchday/handler"
	"github.com/hupe1980/matchday/intent"
	"github.com/hupe1980/matchday/logging"
	"github.com/hupe1980/matchday/model"
	"github.com/hupe1980/matchday/model/anthropic"
	"github.com/hupe1980/matchday/model/openai"
	"github.com/hupe1980/matchday/provider"
	"github.com/hupe1980/matchday/provider/azuremaps"
	"github.com/hupe1980/matchday/provider/openweather"
	"github.com/hupe1980/matchday/provider/sportmonks"
	"github.com/hupe1980/matchday/provider/wikipedia"
	"github.com/hupe1980/matchday/router"
	"github.com/hupe1980/matchday/session"
	"github.com/hupe1980/matchday/session/sqlite"
)

// Options override individual components built from config. Any nil field is
// constructed from the config defaults.
type Options struct {
	Logger logging.Logger
	Store  core.Store
	Model  model.Model

	Matches provider.MatchProvider
	Weather provider.WeatherProvider
	Cities  provider.CityProvider
	Travel  provider.TravelProvider
}

// Matchday aggregates the wired dispatcher and its shared services.
type Matchday struct {
	router *router.Router
	store  core.Store
	logger logging.Logger
}

// New wires a complete dispatcher from config with optional overrides.
func New(cfg *config.Config, optFns ...func(o *Options)) (*Matchday, error) {
	opts := Options{}
	for _, fn := range optFns {
		fn(&opts)
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.New(&logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	}

	store := opts.Store
	if store == nil {
		var err error
		store, err = newStore(cfg, logger)
		if err != nil {
			return nil, err
		}
	}

	m := opts.Model
	if m == nil {
		var err error
		m, err = newModel(cfg)
		if err != nil {
			return nil, err
		}
	}

	matches := opts.Matches
	if matches == nil {
		matches = sportmonks.New(cfg.Providers.SportsAPIKey, func(o *sportmonks.Options) { o.Logger = logger })
	}
	weather := opts.Weather
	if weather == nil {
		weather = openweather.New(cfg.Providers.WeatherAPIKey)
	}
	cities := opts.Cities
	if cities == nil {
		cities = wikipedia.New(func(o *wikipedia.Options) { o.Logger = logger })
	}
	travel := opts.Travel
	if travel == nil {
		travel = azuremaps.New(cfg.Providers.AzureMapsKey, func(o *azuremaps.Options) { o.Logger = logger })
	}

	matchHandler := handler.NewMatchHandler(matches, m, store, func(o *handler.MatchOptions) { o.Logger = logger })
	cityHandler := handler.NewCityHandler(cities, m, store, func(o *handler.CityOptions) { o.Logger = logger })
	weatherHandler := handler.NewWeatherHandler(weather, m, store, func(o *handler.WeatherOptions) {
		o.Logger = logger
		o.CorrectSpelling = true
	})
	travelHandler := handler.NewTravelHandler(travel, m, store, func(o *handler.TravelOptions) { o.Logger = logger })

	aggregator := fusion.New(
		matches,
		[]handler.Handler{matchHandler, weatherHandler, cityHandler, travelHandler},
		m,
		store,
		func(o *fusion.Options) { o.Logger = logger },
	)

	classifier := intent.NewTiered(intent.NewModelClassifier(m), func(o *intent.TieredOptions) { o.Logger = logger })

	return &Matchday{
		router: router.New(classifier, matchHandler, cityHandler, weatherHandler, travelHandler, aggregator,
			func(o *router.Options) { o.Logger = logger }),
		store:  store,
		logger: logger,
	}, nil
}

// Dispatch runs one conversational turn.
func (m *Matchday) Dispatch(ctx context.Context, sessionID, utterance string) router.Turn {
	return m.router.Dispatch(ctx, sessionID, utterance)
}

// Store exposes the session store (e.g. for the HTTP /clear endpoint).
func (m *Matchday) Store() core.Store { return m.store }

// Logger exposes the shared logger.
func (m *Matchday) Logger() logging.Logger { return m.logger }

func newStore(cfg *config.Config, logger logging.Logger) (core.Store, error) {
	switch cfg.Session.Backend {
	case "memory":
		return session.NewInMemoryStore(), nil
	case "file", "":
		return session.NewFileStore(cfg.Session.Path, func(o *session.FileStoreOptions) { o.Logger = logger }), nil
	case "sqlite":
		return sqlite.NewStore(cfg.Session.Path)
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.Session.Backend)
	}
}

func newModel(cfg *config.Config) (model.Model, error) {
	switch cfg.Model.Provider {
	case "openai", "":
		return openai.NewModel(func(o *openai.Options) {
			if cfg.Model.Name != "" {
				o.Model = cfg.Model.Name
			}
		}), nil
	case "anthropic":
		var fns []func(o *anthropic.Options)
		if cfg.Model.Name != "" {
			fns = append(fns, anthropic.WithModelName(cfg.Model.Name))
		}
		return anthropic.NewModel(fns...), nil
	default:
		return nil, fmt.Errorf("unknown model provider %q", cfg.Model.Provider)
	}
}
