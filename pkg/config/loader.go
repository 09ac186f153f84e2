package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// configCache stores one parsed copy per configuration type.
type configCache struct {
	mu     sync.RWMutex
	values map[string]any
	onces  map[string]*sync.Once
}

var (
	globalCache = newConfigCache()

	defaultEnvLoaded sync.Once
)

func newConfigCache() *configCache {
	return &configCache{
		values: make(map[string]any),
		onces:  make(map[string]*sync.Once),
	}
}

// LoadEnv loads .env files into the process environment. Without arguments
// the default .env in the working directory is used. Later files override
// earlier ones; variables already set in the process are kept only when no
// file defines them.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		return godotenv.Overload()
	}
	return godotenv.Overload(paths...)
}

// MustLoadEnv works like LoadEnv but panics on failure.
func MustLoadEnv(paths ...string) {
	if err := LoadEnv(paths...); err != nil {
		panic(fmt.Sprintf("Failed to load env files: %v", err))
	}
}

// Load parses environment variables into v. Each configuration type is
// parsed once per process; later calls are served from the cache.
// The default .env file is read on first use if present.
//
// Example:
//
//	var cfg multipass.Config
//	if err := config.Load(&cfg); err != nil {
//		// MULTIPASS_SECRET or MULTIPASS_STORE_URL missing
//	}
func Load[T any](v *T) error {
	defaultEnvLoaded.Do(func() {
		// The .env file is optional
		_ = godotenv.Load()
	})
	if v == nil {
		return ErrNilPointer
	}

	typeName := getTypeName[T]()

	if cached, ok := globalCache.get(typeName); ok {
		*v = cached.(T)
		return nil
	}

	globalCache.mu.Lock()
	once, exists := globalCache.onces[typeName]
	if !exists {
		once = new(sync.Once)
		globalCache.onces[typeName] = once
	}
	globalCache.mu.Unlock()

	var err error
	once.Do(func() {
		var parsed T
		if parseErr := env.Parse(&parsed); parseErr != nil {
			err = errors.Join(ErrParsingConfig, parseErr)
			// Allow a retry once the environment is fixed
			globalCache.mu.Lock()
			delete(globalCache.onces, typeName)
			globalCache.mu.Unlock()
			return
		}
		globalCache.set(typeName, parsed)
	})
	if err != nil {
		return err
	}

	if cached, ok := globalCache.get(typeName); ok {
		*v = cached.(T)
		return nil
	}
	return ErrConfigNotLoaded
}

// MustLoad works like Load but panics if configuration loading fails.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("Failed to load required configuration: %v", err))
	}
}

// ForceReloadConfig drops the cached value for T and parses it again.
func ForceReloadConfig[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}

	typeName := getTypeName[T]()
	globalCache.mu.Lock()
	delete(globalCache.values, typeName)
	delete(globalCache.onces, typeName)
	globalCache.mu.Unlock()

	return Load(v)
}

// ResetCache forgets every cached configuration. Intended for tests.
func ResetCache() {
	globalCache.mu.Lock()
	globalCache.values = make(map[string]any)
	globalCache.onces = make(map[string]*sync.Once)
	globalCache.mu.Unlock()
}

func (c *configCache) get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.values[key]
	return v, ok
}

func (c *configCache) set(key string, v any) {
	c.mu.Lock()
	c.values[key] = v
	c.mu.Unlock()
}

// getTypeName returns a string identifier for the generic type T
func getTypeName[T any]() string {
	var zero T
	t := reflect.TypeOf(zero)
	if t == nil {
		return fmt.Sprintf("%T", new(T))
	}
	return t.PkgPath() + "." + t.String()
}
