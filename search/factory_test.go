package search

import (
	"errors"
	"testing"
)

func TestRegisterAndGetAdapterFactory(t *testing.T) {
	fake := Engine("fake")
	RegisterAdapterFactory(fake, func(conn any) (Adapter, error) {
		adapter, ok := conn.(Adapter)
		if !ok {
			return nil, errors.New("bad connection")
		}
		return adapter, nil
	})

	factory, ok := GetAdapterFactory(fake)
	if !ok {
		t.Fatal("expected factory to be registered")
	}

	stub := newStubAdapter(fake, true)
	adapter, err := factory(stub)
	if err != nil {
		t.Fatalf("factory failed: %v", err)
	}
	if adapter.Type() != fake {
		t.Errorf("expected fake engine, got %s", adapter.Type())
	}

	found := false
	for _, engine := range GetRegisteredEngines() {
		if engine == fake {
			found = true
		}
	}
	if !found {
		t.Error("expected fake engine in registered list")
	}
}

func TestNewAdapterUnknownEngine(t *testing.T) {
	_, err := NewAdapter(Engine("missing"), nil)
	if !errors.Is(err, ErrEngineNotFound) {
		t.Fatalf("expected ErrEngineNotFound, got %v", err)
	}
}
