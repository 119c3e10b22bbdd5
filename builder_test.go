package goSession

import (
	"errors"
	"testing"
	"time"
)

func TestBuildRequiresProvider(t *testing.T) {
	_, err := New().
		WithCredentialStore(&memStore{}).
		Build()
	if !errors.Is(err, ErrProviderRequired) {
		t.Fatalf("expected ErrProviderRequired, got %v", err)
	}
}

func TestBuildRequiresStore(t *testing.T) {
	_, err := New().
		WithIdentityProvider(&fakeProvider{}).
		Build()
	if !errors.Is(err, ErrStoreRequired) {
		t.Fatalf("expected ErrStoreRequired, got %v", err)
	}
}

func TestBuildRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Effects.Timeout = 0

	_, err := New().
		WithConfig(cfg).
		WithIdentityProvider(&fakeProvider{}).
		WithCredentialStore(&memStore{}).
		Build()
	if err == nil {
		t.Fatal("expected config validation error")
	}
}

func TestBuilderCannotBuildTwice(t *testing.T) {
	b := New().
		WithIdentityProvider(&fakeProvider{}).
		WithCredentialStore(&memStore{})

	d, err := b.Build()
	if err != nil {
		t.Fatalf("first Build failed: %v", err)
	}
	defer d.Close()

	if _, err := b.Build(); !errors.Is(err, ErrBuilderReused) {
		t.Fatalf("expected ErrBuilderReused, got %v", err)
	}
}

func TestBuildStartsInInitialState(t *testing.T) {
	d, err := New().
		WithIdentityProvider(&fakeProvider{}).
		WithCredentialStore(&memStore{}).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer d.Close()

	if cur := d.CurrentState(); cur.Phase != PhaseInitial {
		t.Fatalf("expected initial state, got %s", cur.Phase)
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	if err := validateConfig(DefaultConfig()); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
}

func TestValidateConfigRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero effect timeout", func(c *Config) { c.Effects.Timeout = 0 }},
		{"negative effect timeout", func(c *Config) { c.Effects.Timeout = -time.Second }},
		{"zero queue buffer", func(c *Config) { c.Queue.BufferSize = 0 }},
		{"zero login password floor", func(c *Config) { c.Validation.LoginPasswordMinLength = 0 }},
		{"register floor below login floor", func(c *Config) {
			c.Validation.LoginPasswordMinLength = 10
			c.Validation.RegisterPasswordMinLength = 8
		}},
		{"audit enabled with zero buffer", func(c *Config) { c.Audit.BufferSize = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			if err := validateConfig(cfg); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
