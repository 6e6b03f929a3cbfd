package core

// Page son los parámetros de paginación de una consulta (1-based).
type Page struct {
	Current int
	Limit   int
}

// Normalize aplica defaults y cotas al pedido de página.
func (p Page) Normalize() Page {
	if p.Current < 1 {
		p.Current = 1
	}
	if p.Limit < 1 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	return p
}

// Offset retorna el offset 0-based equivalente.
func (p Page) Offset() int {
	return (p.Current - 1) * p.Limit
}

// Pagination es la metadata que acompaña toda respuesta de listado.
type Pagination struct {
	Current int   `json:"current"`
	Limit   int   `json:"limit"`
	Records int64 `json:"records"`
	Pages   int   `json:"pages"`
}

// NewPagination calcula la metadata para el total dado.
func NewPagination(p Page, records int64) Pagination {
	pages := int((records + int64(p.Limit) - 1) / int64(p.Limit))
	return Pagination{
		Current: p.Current,
		Limit:   p.Limit,
		Records: records,
		Pages:   pages,
	}
}
