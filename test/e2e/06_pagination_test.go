package e2e

import (
	"fmt"
	"testing"

	"github.com/kasadel/mallcore/internal/http/dto"
	"github.com/kasadel/mallcore/internal/store/core"
	"github.com/kasadel/mallcore/pkg/scenario"
)

type commentPage struct {
	Pagination core.Pagination `json:"pagination"`
	Data       []dto.Comment   `json:"data"`
}

// TestPaginationWindow: sobre 6 comentarios con límite 4, la primera
// página trae 4 y la segunda los 2 restantes, sin repetir ni perder.
func TestPaginationWindow(t *testing.T) {
	ctx := testCtx(t)
	sf := newStorefront(t, ctx, 2500, 5)
	buyer := joinActor(t, ctx, "buyer")
	inq := openInquiry(t, ctx, buyer, sf.Product.ID)

	const total = 6
	written := make([]string, 0, total)
	for i := 0; i < total; i++ {
		var cm dto.Comment
		err := buyer.Post(ctx, "/v1/inquiries/"+inq.ID+"/comments", dto.CommentRequest{
			Body: fmt.Sprintf("comentario %d: %s", i, scenario.RandomParagraph()),
		}, &cm)
		scenario.Must(t, fmt.Sprintf("comentario %d", i), err)
		written = append(written, cm.ID)
	}

	base := "/v1/inquiries/" + inq.ID + "/comments"

	var page1 commentPage
	scenario.Must(t, "página 1", buyer.Get(ctx, base+"?page=1&limit=4", &page1))
	if page1.Pagination.Current != 1 || page1.Pagination.Limit != 4 {
		t.Fatalf("metadata de página 1: %+v", page1.Pagination)
	}
	if page1.Pagination.Records != total {
		t.Fatalf("Records = %d, quería %d", page1.Pagination.Records, total)
	}
	if page1.Pagination.Pages != 2 {
		t.Fatalf("Pages = %d, quería 2", page1.Pagination.Pages)
	}
	if len(page1.Data) != 4 {
		t.Fatalf("página 1 trajo %d registros, quería 4", len(page1.Data))
	}

	var page2 commentPage
	scenario.Must(t, "página 2", buyer.Get(ctx, base+"?page=2&limit=4", &page2))
	if len(page2.Data) != 2 {
		t.Fatalf("página 2 trajo %d registros, quería 2", len(page2.Data))
	}
	if page2.Pagination.Current != 2 {
		t.Fatalf("Current = %d en página 2", page2.Pagination.Current)
	}

	t.Run("sin repetidos ni faltantes entre páginas", func(t *testing.T) {
		seen := map[string]bool{}
		for _, cm := range append(page1.Data, page2.Data...) {
			if seen[cm.ID] {
				t.Fatalf("comentario repetido entre páginas: %s", cm.ID)
			}
			seen[cm.ID] = true
		}
		for _, id := range written {
			if !seen[id] {
				t.Fatalf("comentario %s no apareció en ninguna página", id)
			}
		}
	})

	t.Run("página fuera de rango viene vacía", func(t *testing.T) {
		var page9 commentPage
		scenario.Must(t, "página 9", buyer.Get(ctx, base+"?page=9&limit=4", &page9))
		if len(page9.Data) != 0 {
			t.Fatalf("página fuera de rango trajo %d registros", len(page9.Data))
		}
		if page9.Pagination.Records != total {
			t.Fatalf("Records = %d fuera de rango, quería %d", page9.Pagination.Records, total)
		}
	})

	t.Run("parámetros inválidos rebotan", func(t *testing.T) {
		err := buyer.Get(ctx, base+"?page=abc", nil)
		scenario.ExpectError(t, "page no numérico", err)

		err = buyer.Get(ctx, base+"?limit=-1", nil)
		scenario.ExpectError(t, "limit negativo", err)
	})
}

// TestPaginationDefaults: sin parámetros aplica la página 1 con el límite
// por defecto.
func TestPaginationDefaults(t *testing.T) {
	ctx := testCtx(t)
	sf := newStorefront(t, ctx, 1000, 5)
	buyer := joinActor(t, ctx, "buyer")
	inq := openInquiry(t, ctx, buyer, sf.Product.ID)

	var cm dto.Comment
	scenario.Must(t, "un comentario", buyer.Post(ctx, "/v1/inquiries/"+inq.ID+"/comments", dto.CommentRequest{
		Body: scenario.RandomParagraph(),
	}, &cm))

	var page commentPage
	scenario.Must(t, "listado sin parámetros", buyer.Get(ctx, "/v1/inquiries/"+inq.ID+"/comments", &page))
	if page.Pagination.Current != 1 {
		t.Fatalf("Current = %d por defecto", page.Pagination.Current)
	}
	if page.Pagination.Limit != 20 {
		t.Fatalf("Limit = %d por defecto, quería 20", page.Pagination.Limit)
	}
	if page.Pagination.Records != 1 || len(page.Data) != 1 {
		t.Fatalf("listado por defecto inesperado: %+v", page.Pagination)
	}
}
