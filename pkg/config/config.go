package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	dotenvOnce sync.Once

	mu    sync.Mutex
	cache = map[reflect.Type]any{}
)

// Load parses the environment into a new T. The first call for a given type
// parses; later calls return the cached copy. A .env file in the working
// directory is loaded once, before the first parse, when present.
func Load[T any]() (T, error) {
	dotenvOnce.Do(func() { _ = godotenv.Load() })

	key := reflect.TypeFor[T]()

	mu.Lock()
	defer mu.Unlock()

	if v, ok := cache[key]; ok {
		return v.(T), nil
	}

	var v T
	if err := env.Parse(&v); err != nil {
		return v, errors.Join(ErrParse, err)
	}
	cache[key] = v
	return v, nil
}

// MustLoad is Load that panics on failure. Use it in main where a broken
// environment should stop startup.
func MustLoad[T any]() T {
	v, err := Load[T]()
	if err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
	return v
}

// LoadFiles loads the given dotenv files into the process environment
// without overriding variables that are already set. It must run before the
// first Load of any type that depends on them.
func LoadFiles(files ...string) error {
	if len(files) == 0 {
		return nil
	}
	if err := godotenv.Load(files...); err != nil {
		return errors.Join(ErrDotenv, err)
	}
	return nil
}

// Reset drops cached values. Tests use it to re-read a changed environment.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	clear(cache)
}
