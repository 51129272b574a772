package cmd

import (
	"fmt"

	"github.com/abhisek/quizgen/internal/llm"
	"github.com/abhisek/quizgen/internal/quiz"
	"github.com/abhisek/quizgen/internal/store"
)

// runtime holds the dependencies shared by the quiz commands.
type runtime struct {
	store     *store.Store
	eventRepo store.EventRepo
	generator *quiz.Generator
}

// openStore opens the request-event database selected by the configuration.
func openStore() (*store.Store, error) {
	path := cfg.Store.Path
	if path != "" {
		if err := store.EnsureDir(path); err != nil {
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
	} else {
		p, err := store.DefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
		path = p
	}

	st, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

// newRuntime wires the store, provider factory and generator. With
// store.disabled no events are recorded.
func newRuntime() (*runtime, error) {
	rt := &runtime{eventRepo: store.NopEventRepo{}}
	if !cfg.Store.Disabled {
		st, err := openStore()
		if err != nil {
			return nil, err
		}
		rt.store = st
		rt.eventRepo = st.EventRepo()
	}

	providerCfg := cfg.ProviderConfig()
	if err := providerCfg.Validate(); err != nil {
		rt.Close()
		return nil, err
	}

	factory := llm.NewFactory(providerCfg, rt.eventRepo)
	rt.generator = quiz.New(factory, cfg.QuizConfig())
	return rt, nil
}

// status describes the provider and model for headers.
func (rt *runtime) status() string {
	pc := cfg.ProviderConfig()
	return pc.Provider + " · " + pc.Model()
}

func (rt *runtime) Close() {
	if rt.store != nil {
		rt.store.Close()
	}
}
