package services

import (
	"context"
	"errors"
)

var ErrProviderNotInScope = errors.New("transactions provider is not in scope")

type providerContextKey struct{}

// ContextWithProvider returns a copy of ctx carrying provider
func ContextWithProvider(ctx context.Context, provider TransactionsProviderInterface) context.Context {
	return context.WithValue(ctx, providerContextKey{}, provider)
}

// ProviderFromContext returns the provider stored in ctx, or
// ErrProviderNotInScope when ctx was not created inside the provider's scope
func ProviderFromContext(ctx context.Context) (TransactionsProviderInterface, error) {
	provider, ok := ctx.Value(providerContextKey{}).(TransactionsProviderInterface)
	if !ok || provider == nil {
		return nil, ErrProviderNotInScope
	}
	return provider, nil
}

// MustProviderFromContext is like ProviderFromContext but panics outside the provider's scope
func MustProviderFromContext(ctx context.Context) TransactionsProviderInterface {
	provider, err := ProviderFromContext(ctx)
	if err != nil {
		panic(err)
	}
	return provider
}
