package e2e

import (
	"context"
	"testing"

	"github.com/kasadel/mallcore/internal/http/dto"
	"github.com/kasadel/mallcore/pkg/scenario"
)

// joinActor registra un actor nuevo del rol dado, cortando el test si falla.
func joinActor(t *testing.T, ctx context.Context, role string) *scenario.Actor {
	t.Helper()
	a, err := scenario.Join(ctx, newConn(), role)
	scenario.Must(t, "join "+role, err)
	return a
}

// storefront es el grafo mínimo de catálogo que la mayoría de los
// escenarios necesita: canal, sección y un producto publicado.
type storefront struct {
	Admin   *scenario.Actor
	Seller  *scenario.Actor
	Channel dto.Channel
	Section dto.Section
	Product dto.Product
}

// newStorefront arma la cadena canal → sección → producto con actores
// frescos. stock y price controlan el producto publicado.
func newStorefront(t *testing.T, ctx context.Context, price, stock int64) *storefront {
	t.Helper()

	admin := joinActor(t, ctx, "admin")
	seller := joinActor(t, ctx, "seller")

	bag, err := scenario.NewChain().
		Step("channel", nil, func(ctx context.Context, _ *scenario.Bag) (any, error) {
			var ch dto.Channel
			err := admin.Post(ctx, "/v1/channels", dto.ChannelRequest{
				Code: scenario.RandomCode("ch"),
				Name: "Canal " + scenario.RandomCode("n"),
			}, &ch)
			return ch, err
		}).
		Step("section", []string{"channel"}, func(ctx context.Context, bag *scenario.Bag) (any, error) {
			ch, err := scenario.From[dto.Channel](bag, "channel")
			if err != nil {
				return nil, err
			}
			var sec dto.Section
			err = admin.Post(ctx, "/v1/channels/"+ch.ID+"/sections", dto.SectionRequest{
				Code: scenario.RandomCode("sec"),
				Name: "Sección " + scenario.RandomCode("n"),
			}, &sec)
			return sec, err
		}).
		Step("product", []string{"channel", "section"}, func(ctx context.Context, bag *scenario.Bag) (any, error) {
			ch, err := scenario.From[dto.Channel](bag, "channel")
			if err != nil {
				return nil, err
			}
			sec, err := scenario.From[dto.Section](bag, "section")
			if err != nil {
				return nil, err
			}
			var pr dto.Product
			err = seller.Post(ctx, "/v1/products", dto.ProductRequest{
				ChannelID:   ch.ID,
				SectionID:   sec.ID,
				Name:        "Producto " + scenario.RandomCode("p"),
				Description: scenario.RandomParagraph(),
				Price:       price,
				Stock:       stock,
			}, &pr)
			return pr, err
		}).
		Run(ctx)
	scenario.Must(t, "armar storefront", err)

	ch, err := scenario.From[dto.Channel](bag, "channel")
	scenario.Must(t, "channel del bag", err)
	sec, err := scenario.From[dto.Section](bag, "section")
	scenario.Must(t, "section del bag", err)
	pr, err := scenario.From[dto.Product](bag, "product")
	scenario.Must(t, "product del bag", err)

	scenario.Shape(t, "product", pr, "ID", "SellerID", "ChannelID", "SectionID", "Name", "Price")

	return &storefront{Admin: admin, Seller: seller, Channel: ch, Section: sec, Product: pr}
}

// openInquiry abre una consulta del buyer sobre el producto del storefront.
func openInquiry(t *testing.T, ctx context.Context, buyer *scenario.Actor, productID string) dto.Inquiry {
	t.Helper()
	var inq dto.Inquiry
	err := buyer.Post(ctx, "/v1/inquiries", dto.InquiryRequest{
		ProductID: productID,
		Title:     scenario.RandomTitle(),
		Question:  scenario.RandomParagraph(),
	}, &inq)
	scenario.Must(t, "crear inquiry", err)
	scenario.Shape(t, "inquiry", inq, "ID", "ProductID", "BuyerID")
	return inq
}
