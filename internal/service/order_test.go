package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kasadel/mallcore/internal/email"
	"github.com/kasadel/mallcore/internal/store/core"
	"github.com/kasadel/mallcore/internal/store/memory"
)

// fixture arma repo en memoria + producto publicado + buyer.
func orderFixture(t *testing.T, price, stock int64) (core.Repository, *core.Actor, *core.Product) {
	t.Helper()
	ctx := context.Background()
	repo := memory.New()

	seller := &core.Actor{ID: uuid.NewString(), Role: core.RoleSeller, Email: "s@x.dev", Name: "S", PasswordHash: "x", Status: "active"}
	buyer := &core.Actor{ID: uuid.NewString(), Role: core.RoleBuyer, Email: "b@x.dev", Name: "B", PasswordHash: "x", Status: "active"}
	require.NoError(t, repo.Actors().Create(ctx, seller))
	require.NoError(t, repo.Actors().Create(ctx, buyer))

	ch := &core.Channel{ID: uuid.NewString(), Code: "web", Name: "Web", CreatedAt: time.Now()}
	require.NoError(t, repo.Channels().Create(ctx, ch))
	sec := &core.Section{ID: uuid.NewString(), ChannelID: ch.ID, Code: "a", Name: "A", CreatedAt: time.Now()}
	require.NoError(t, repo.Sections().Create(ctx, sec))

	pr := &core.Product{
		ID: uuid.NewString(), SellerID: seller.ID, ChannelID: ch.ID, SectionID: sec.ID,
		Name: "Prod", Price: price, Stock: stock, Status: "on_sale", CreatedAt: time.Now(),
	}
	require.NoError(t, repo.Products().Create(ctx, pr))
	return repo, buyer, pr
}

func TestPublishOrderMath(t *testing.T) {
	ctx := context.Background()
	repo, buyer, pr := orderFixture(t, 10000, 10)
	svc := NewOrderService(repo, email.New(email.Config{}), 1)

	item, err := svc.AddCartItem(ctx, buyer.ID, pr.ID, 3)
	require.NoError(t, err)

	order, err := svc.PublishOrder(ctx, buyer, []string{item.ID})
	require.NoError(t, err)

	assert.EqualValues(t, 30000, order.Total)
	assert.EqualValues(t, 300, order.Mileage, "1%% del total")
	require.Len(t, order.Items, 1)
	assert.EqualValues(t, 10000, order.Items[0].UnitPrice, "snapshot del precio al publicar")

	got, err := repo.Products().GetByID(ctx, pr.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 7, got.Stock)

	bal, err := svc.MileageBalance(ctx, buyer.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 300, bal)

	_, err = svc.GetCartItem(ctx, buyer.ID, item.ID)
	assert.ErrorIs(t, err, ErrCartItemNotFound, "el ítem se consume al publicar")
}

func TestPublishOrderRollsBackStock(t *testing.T) {
	ctx := context.Background()
	repo, buyer, pr := orderFixture(t, 2000, 2)
	svc := NewOrderService(repo, email.New(email.Config{}), 1)

	ok, err := svc.AddCartItem(ctx, buyer.ID, pr.ID, 1)
	require.NoError(t, err)
	tooMany, err := svc.AddCartItem(ctx, buyer.ID, pr.ID, 5)
	require.NoError(t, err)

	// El primer ítem descuenta, el segundo falla: todo debe revertirse.
	_, err = svc.PublishOrder(ctx, buyer, []string{ok.ID, tooMany.ID})
	assert.ErrorIs(t, err, ErrOutOfStock)

	got, err := repo.Products().GetByID(ctx, pr.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, got.Stock, "el descuento parcial se revierte")

	bal, err := svc.MileageBalance(ctx, buyer.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, bal)
}

func TestPublishOrderOwnership(t *testing.T) {
	ctx := context.Background()
	repo, buyer, pr := orderFixture(t, 1000, 5)
	svc := NewOrderService(repo, email.New(email.Config{}), 1)

	other := &core.Actor{ID: uuid.NewString(), Role: core.RoleBuyer, Email: "o@x.dev", Name: "O", PasswordHash: "x", Status: "active"}
	require.NoError(t, repo.Actors().Create(ctx, other))

	item, err := svc.AddCartItem(ctx, buyer.ID, pr.ID, 1)
	require.NoError(t, err)

	_, err = svc.PublishOrder(ctx, other, []string{item.ID})
	assert.ErrorIs(t, err, ErrNotCartOwner)
}

func TestPublishOrderEmpty(t *testing.T) {
	repo, buyer, _ := orderFixture(t, 1000, 5)
	svc := NewOrderService(repo, email.New(email.Config{}), 1)

	_, err := svc.PublishOrder(context.Background(), buyer, nil)
	assert.ErrorIs(t, err, ErrEmptyOrder)
}

func TestPausedProductNotAddable(t *testing.T) {
	ctx := context.Background()
	repo, buyer, _ := orderFixture(t, 1000, 5)
	svc := NewOrderService(repo, email.New(email.Config{}), 1)

	paused := &core.Product{
		ID: uuid.NewString(), SellerID: uuid.NewString(),
		ChannelID: uuid.NewString(), SectionID: uuid.NewString(),
		Name: "Pausado", Price: 100, Stock: 1, Status: "paused",
	}
	// alta directa en repo para simular un producto pausado
	ch := &core.Channel{ID: paused.ChannelID, Code: "tmp", Name: "tmp"}
	require.NoError(t, repo.Channels().Create(ctx, ch))
	sec := &core.Section{ID: paused.SectionID, ChannelID: ch.ID, Code: "tmp", Name: "tmp"}
	require.NoError(t, repo.Sections().Create(ctx, sec))
	require.NoError(t, repo.Products().Create(ctx, paused))

	_, err := svc.AddCartItem(ctx, buyer.ID, paused.ID, 1)
	assert.ErrorIs(t, err, ErrProductPaused)
}

func TestAdjustMileage(t *testing.T) {
	ctx := context.Background()
	repo, buyer, _ := orderFixture(t, 1000, 5)
	svc := NewOrderService(repo, email.New(email.Config{}), 1)

	bal, err := svc.AdjustMileage(ctx, buyer.ID, 2000, "bono de bienvenida")
	require.NoError(t, err)
	assert.EqualValues(t, 2000, bal)

	bal, err = svc.AdjustMileage(ctx, buyer.ID, -500, "corrección")
	require.NoError(t, err)
	assert.EqualValues(t, 1500, bal)

	_, err = svc.AdjustMileage(ctx, buyer.ID, -9999, "débito imposible")
	assert.ErrorIs(t, err, ErrMileageNegative)

	bal, err = svc.MileageBalance(ctx, buyer.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1500, bal, "un ajuste rechazado no toca el balance")

	t.Run("valida entrada y destinatario", func(t *testing.T) {
		_, err := svc.AdjustMileage(ctx, buyer.ID, 0, "sin efecto")
		assert.ErrorIs(t, err, ErrValidation)

		_, err = svc.AdjustMileage(ctx, buyer.ID, 100, "")
		assert.ErrorIs(t, err, ErrValidation)

		_, err = svc.AdjustMileage(ctx, uuid.NewString(), 100, "fantasma")
		assert.ErrorIs(t, err, ErrActorNotFound)
	})
}
