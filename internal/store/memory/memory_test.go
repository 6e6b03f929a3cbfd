package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kasadel/mallcore/internal/store/core"
)

func newActor(role, email string) *core.Actor {
	return &core.Actor{
		ID:           uuid.NewString(),
		Role:         role,
		Email:        email,
		Name:         "Test",
		PasswordHash: "x",
		Status:       "active",
		CreatedAt:    time.Now(),
	}
}

func TestActorEmailUniquePerRole(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.Actors().Create(ctx, newActor(core.RoleBuyer, "a@x.dev")))

	err := s.Actors().Create(ctx, newActor(core.RoleBuyer, "A@X.DEV"))
	assert.ErrorIs(t, err, core.ErrConflict, "el email es case-insensitive dentro del rol")

	assert.NoError(t, s.Actors().Create(ctx, newActor(core.RoleSeller, "a@x.dev")),
		"el mismo email en otro rol es una identidad distinta")
}

func TestProductAdjustStock(t *testing.T) {
	ctx := context.Background()
	s := New()

	ch := &core.Channel{ID: uuid.NewString(), Code: "web", Name: "Web"}
	require.NoError(t, s.Channels().Create(ctx, ch))
	sec := &core.Section{ID: uuid.NewString(), ChannelID: ch.ID, Code: "a", Name: "A"}
	require.NoError(t, s.Sections().Create(ctx, sec))

	pr := &core.Product{
		ID: uuid.NewString(), SellerID: uuid.NewString(),
		ChannelID: ch.ID, SectionID: sec.ID,
		Name: "p", Price: 100, Stock: 2, Status: "on_sale",
	}
	require.NoError(t, s.Products().Create(ctx, pr))

	require.NoError(t, s.Products().AdjustStock(ctx, pr.ID, -2))

	err := s.Products().AdjustStock(ctx, pr.ID, -1)
	assert.ErrorIs(t, err, core.ErrConflict)

	got, err := s.Products().GetByID(ctx, pr.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, got.Stock, "el ajuste rechazado no debe aplicarse parcialmente")

	assert.ErrorIs(t, s.Products().AdjustStock(ctx, "nope", -1), core.ErrNotFound)
}

func TestTicketMarkUsedOnce(t *testing.T) {
	ctx := context.Background()
	s := New()

	tk := &core.Ticket{ID: uuid.NewString(), CouponID: uuid.NewString(), BuyerID: uuid.NewString(), IssuedAt: time.Now()}
	require.NoError(t, s.Tickets().Create(ctx, tk))

	require.NoError(t, s.Tickets().MarkUsed(ctx, tk.ID, time.Now()))
	assert.ErrorIs(t, s.Tickets().MarkUsed(ctx, tk.ID, time.Now()), core.ErrConflict)
}

func TestCouponUseDeleteTwice(t *testing.T) {
	ctx := context.Background()
	s := New()

	u := &core.CouponUse{ID: uuid.NewString(), TicketID: uuid.NewString(), CouponID: uuid.NewString(), BuyerID: uuid.NewString(), UsedAt: time.Now()}
	require.NoError(t, s.CouponUses().Create(ctx, u))

	require.NoError(t, s.CouponUses().Delete(ctx, u.ID))
	assert.ErrorIs(t, s.CouponUses().Delete(ctx, u.ID), core.ErrNotFound)
}

func TestMileageLedger(t *testing.T) {
	ctx := context.Background()
	s := New()
	buyer := uuid.NewString()

	bal, err := s.Mileage().Balance(ctx, buyer)
	require.NoError(t, err)
	assert.EqualValues(t, 0, bal)

	bal, err = s.Mileage().Append(ctx, &core.MileageTx{ID: uuid.NewString(), BuyerID: buyer, Value: 300, Reason: "a"})
	require.NoError(t, err)
	assert.EqualValues(t, 300, bal)

	_, err = s.Mileage().Append(ctx, &core.MileageTx{ID: uuid.NewString(), BuyerID: buyer, Value: -500, Reason: "b"})
	assert.ErrorIs(t, err, core.ErrConflict, "el balance no puede quedar negativo")

	bal, err = s.Mileage().Balance(ctx, buyer)
	require.NoError(t, err)
	assert.EqualValues(t, 300, bal)

	items, total, err := s.Mileage().History(ctx, buyer, core.Page{Current: 1, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	assert.EqualValues(t, 300, items[0].Value)
}

func TestRefreshTokenLookupAndRevoke(t *testing.T) {
	ctx := context.Background()
	s := New()

	rt := &core.RefreshToken{
		ID: uuid.NewString(), ActorID: uuid.NewString(), Role: core.RoleBuyer,
		TokenHash: "hash-1", IssuedAt: time.Now(), ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, s.Tokens().Create(ctx, rt))

	got, err := s.Tokens().GetByHash(ctx, "hash-1")
	require.NoError(t, err)
	assert.Equal(t, rt.ID, got.ID)
	assert.Nil(t, got.RevokedAt)

	require.NoError(t, s.Tokens().Revoke(ctx, rt.ID, time.Now()))
	got, err = s.Tokens().GetByHash(ctx, "hash-1")
	require.NoError(t, err)
	assert.NotNil(t, got.RevokedAt)

	_, err = s.Tokens().GetByHash(ctx, "hash-2")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestCommentPaginationOrder(t *testing.T) {
	ctx := context.Background()
	s := New()

	ch := &core.Channel{ID: uuid.NewString(), Code: "c", Name: "c"}
	require.NoError(t, s.Channels().Create(ctx, ch))
	sec := &core.Section{ID: uuid.NewString(), ChannelID: ch.ID, Code: "s", Name: "s"}
	require.NoError(t, s.Sections().Create(ctx, sec))
	pr := &core.Product{ID: uuid.NewString(), SellerID: uuid.NewString(), ChannelID: ch.ID, SectionID: sec.ID, Name: "p", Price: 1, Stock: 1, Status: "on_sale"}
	require.NoError(t, s.Products().Create(ctx, pr))
	inq := &core.Inquiry{ID: uuid.NewString(), ProductID: pr.ID, BuyerID: uuid.NewString(), Title: "t", Question: "q"}
	require.NoError(t, s.Inquiries().Create(ctx, inq))

	for i := 0; i < 6; i++ {
		c := &core.Comment{
			ID: uuid.NewString(), InquiryID: inq.ID, AuthorID: inq.BuyerID,
			AuthorRole: core.RoleBuyer, Body: fmt.Sprintf("c%d", i),
			Visibility: "public", Status: "published",
		}
		require.NoError(t, s.Comments().Create(ctx, c))
	}

	p1, total, err := s.Comments().ListByInquiry(ctx, inq.ID, core.Page{Current: 1, Limit: 4})
	require.NoError(t, err)
	assert.EqualValues(t, 6, total)
	require.Len(t, p1, 4)
	assert.Equal(t, "c0", p1[0].Body, "el orden es el de inserción")

	p2, _, err := s.Comments().ListByInquiry(ctx, inq.ID, core.Page{Current: 2, Limit: 4})
	require.NoError(t, err)
	require.Len(t, p2, 2)
	assert.Equal(t, "c4", p2[0].Body)

	p3, _, err := s.Comments().ListByInquiry(ctx, inq.ID, core.Page{Current: 3, Limit: 4})
	require.NoError(t, err)
	assert.Empty(t, p3)
}
