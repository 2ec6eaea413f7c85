package settings_test

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/agenciadw/dw-parcelas-customizadas-woo/internal/settings"
)

func newRedisStore(t *testing.T) settings.RedisStore {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return settings.RedisStore{Client: client, Prefix: "settings"}
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store := newRedisStore(t)
	ctx := context.Background()

	loaded, err := store.Get(ctx, settings.DomainPricingGlobal)
	require.NoError(t, err)
	require.Nil(t, loaded)

	require.NoError(t, store.Set(ctx, settings.DomainPricingGlobal, map[string]any{
		"global_discount": "10",
	}))

	loaded, err = store.Get(ctx, settings.DomainPricingGlobal)
	require.NoError(t, err)
	require.Equal(t, "10", loaded["global_discount"])
}

func TestRedisStoreCorruptDocumentFallsBack(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	store := settings.RedisStore{Client: client, Prefix: "settings"}

	require.NoError(t, mr.Set("settings:pricing/global", "{not json"))
	loaded, err := store.Get(context.Background(), settings.DomainPricingGlobal)
	require.NoError(t, err)
	require.Nil(t, loaded)
}

func TestStoreRejectsUnknownDomain(t *testing.T) {
	store := newRedisStore(t)
	_, err := store.Get(context.Background(), settings.Domain("bogus"))
	require.ErrorIs(t, err, settings.ErrUnknownDomain)
	err = store.Set(context.Background(), settings.Domain("bogus"), nil)
	require.ErrorIs(t, err, settings.ErrUnknownDomain)
}

func TestServiceSnapshotResolvesAllDomains(t *testing.T) {
	store := settings.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, settings.DomainPricingGlobal, map[string]any{
		"global_discount": "5",
	}))
	require.NoError(t, store.Set(ctx, settings.DomainInstallmentRules, map[string]any{
		"enabled": "1",
	}))

	svc, err := settings.NewService(store)
	require.NoError(t, err)

	snap, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	require.NotNil(t, snap.Global.GlobalDiscountPercent)
	require.True(t, snap.Global.GlobalDiscountPercent.Equal(decimal.NewFromInt(5)))
	require.True(t, snap.Rules.Enabled)
	require.Equal(t, 12, snap.Rules.MaxInstallments)
	require.Equal(t, "#e8f5e9", snap.PixDesign.BackgroundColor)
	require.Equal(t, settings.DefaultCardIcon, snap.InstallmentDesign.Icon)
}

func TestServiceUpdateSanitizesAndValidates(t *testing.T) {
	store := settings.NewMemoryStore()
	svc, err := settings.NewService(store)
	require.NoError(t, err)
	ctx := context.Background()

	err = svc.Update(ctx, settings.DomainInstallmentRules, map[string]any{
		"max_installments": 6,
		"unknown":          "dropped",
	})
	require.NoError(t, err)

	stored, err := store.Get(ctx, settings.DomainInstallmentRules)
	require.NoError(t, err)
	require.Equal(t, map[string]any{"max_installments": 6}, stored)

	err = svc.Update(ctx, settings.DomainInstallmentRules, map[string]any{
		"max_installments": 99,
	})
	require.ErrorIs(t, err, settings.ErrInvalid)
}
