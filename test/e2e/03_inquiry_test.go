package e2e

import (
	"testing"

	"github.com/kasadel/mallcore/internal/http/dto"
	"github.com/kasadel/mallcore/pkg/scenario"
)

// TestInquiryCommentRoundTrip: el comentario escrito se lee idéntico por
// la misma ruta, campo por campo.
func TestInquiryCommentRoundTrip(t *testing.T) {
	ctx := testCtx(t)
	sf := newStorefront(t, ctx, 9900, 5)
	buyer := joinActor(t, ctx, "buyer")
	inq := openInquiry(t, ctx, buyer, sf.Product.ID)

	body := scenario.RandomParagraph()
	var written dto.Comment
	err := buyer.Post(ctx, "/v1/inquiries/"+inq.ID+"/comments", dto.CommentRequest{
		Body:       body,
		Visibility: "public",
		Status:     "published",
	}, &written)
	scenario.Must(t, "escribir comentario", err)
	scenario.Shape(t, "comentario escrito", written, "ID", "InquiryID", "AuthorID", "Body")

	var read dto.Comment
	err = buyer.Get(ctx, "/v1/inquiries/"+inq.ID+"/comments/"+written.ID, &read)
	scenario.Must(t, "leer comentario", err)

	if read.ID != written.ID ||
		read.InquiryID != written.InquiryID ||
		read.AuthorID != buyer.ID ||
		read.AuthorRole != "buyer" ||
		read.Body != body ||
		read.Visibility != "public" ||
		read.Status != "published" {
		t.Fatalf("el comentario leído difiere del escrito:\nescrito: %+v\nleído:   %+v", written, read)
	}

	t.Run("el seller del producto también comenta", func(t *testing.T) {
		var reply dto.Comment
		err := sf.Seller.Post(ctx, "/v1/inquiries/"+inq.ID+"/comments", dto.CommentRequest{
			Body: "Hay stock del talle que pedís.",
		}, &reply)
		scenario.Must(t, "respuesta del seller", err)
		if reply.AuthorRole != "seller" {
			t.Fatalf("AuthorRole = %s, quería seller", reply.AuthorRole)
		}
	})
}

// TestInquiryOwnership: sólo participan el buyer dueño y el seller del
// producto; todo otro actor rebota.
func TestInquiryOwnership(t *testing.T) {
	ctx := testCtx(t)
	sf := newStorefront(t, ctx, 4500, 5)
	owner := joinActor(t, ctx, "buyer")
	inq := openInquiry(t, ctx, owner, sf.Product.ID)

	var cm dto.Comment
	err := owner.Post(ctx, "/v1/inquiries/"+inq.ID+"/comments", dto.CommentRequest{
		Body: scenario.RandomParagraph(),
	}, &cm)
	scenario.Must(t, "comentario del dueño", err)

	t.Run("otro buyer no lee el comentario por id", func(t *testing.T) {
		intruder := joinActor(t, ctx, "buyer")
		err := intruder.Get(ctx, "/v1/inquiries/"+inq.ID+"/comments/"+cm.ID, nil)
		scenario.ExpectError(t, "lectura directa por buyer ajeno", err)
	})

	t.Run("otro buyer no comenta", func(t *testing.T) {
		intruder := joinActor(t, ctx, "buyer")
		err := intruder.Post(ctx, "/v1/inquiries/"+inq.ID+"/comments", dto.CommentRequest{
			Body: "no es mi consulta",
		}, nil)
		scenario.ExpectError(t, "comentario de buyer ajeno", err)
	})

	t.Run("seller sin relación no comenta", func(t *testing.T) {
		stranger := joinActor(t, ctx, "seller")
		err := stranger.Post(ctx, "/v1/inquiries/"+inq.ID+"/comments", dto.CommentRequest{
			Body: "no es mi producto",
		}, nil)
		scenario.ExpectError(t, "comentario de seller ajeno", err)
	})

	t.Run("otro buyer tampoco lista", func(t *testing.T) {
		intruder := joinActor(t, ctx, "buyer")
		err := intruder.Get(ctx, "/v1/inquiries/"+inq.ID+"/comments", nil)
		scenario.ExpectError(t, "listado por buyer ajeno", err)
	})
}

// TestInquiryWrongParent: un commentId válido bajo un inquiryId que no es
// su padre no debe resolverse.
func TestInquiryWrongParent(t *testing.T) {
	ctx := testCtx(t)
	sf := newStorefront(t, ctx, 3000, 5)
	buyer := joinActor(t, ctx, "buyer")

	inqA := openInquiry(t, ctx, buyer, sf.Product.ID)
	inqB := openInquiry(t, ctx, buyer, sf.Product.ID)

	var cm dto.Comment
	err := buyer.Post(ctx, "/v1/inquiries/"+inqA.ID+"/comments", dto.CommentRequest{
		Body: scenario.RandomParagraph(),
	}, &cm)
	scenario.Must(t, "comentar en inquiry A", err)

	t.Run("leer bajo el padre equivocado", func(t *testing.T) {
		err := buyer.Get(ctx, "/v1/inquiries/"+inqB.ID+"/comments/"+cm.ID, nil)
		scenario.ExpectError(t, "comentario de A leído vía B", err)
	})

	t.Run("inquiry inexistente", func(t *testing.T) {
		err := buyer.Post(ctx, "/v1/inquiries/00000000-0000-0000-0000-000000000000/comments", dto.CommentRequest{
			Body: "a la nada",
		}, nil)
		scenario.ExpectError(t, "comentario sobre inquiry inexistente", err)
	})
}
