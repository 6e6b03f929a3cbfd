package scenario

import (
	"context"
	"fmt"
)

// Bag guarda los recursos producidos por los pasos de una cadena,
// indexados por nombre de paso.
type Bag struct {
	values map[string]any
}

// Put guarda un valor. Sobrescribir un nombre existente es un bug del
// escenario y paniquea.
func (b *Bag) Put(name string, v any) {
	if _, dup := b.values[name]; dup {
		panic(fmt.Sprintf("scenario: paso duplicado en bag: %q", name))
	}
	b.values[name] = v
}

// Value retorna el valor crudo del paso, o nil si no existe.
func (b *Bag) Value(name string) any {
	return b.values[name]
}

// From retorna el resultado del paso name tipado como T.
func From[T any](b *Bag, name string) (T, error) {
	var zero T
	raw, ok := b.values[name]
	if !ok {
		return zero, fmt.Errorf("scenario: el paso %q no está en el bag", name)
	}
	v, ok := raw.(T)
	if !ok {
		return zero, fmt.Errorf("scenario: el paso %q es %T, no %T", name, raw, zero)
	}
	return v, nil
}

// StepFunc produce el recurso de un paso. Recibe el bag con los resultados
// de los pasos anteriores.
type StepFunc func(ctx context.Context, bag *Bag) (any, error)

type step struct {
	name  string
	needs []string
	fn    StepFunc
}

// Chain arma una cadena de recursos dependientes: cada paso declara qué
// pasos previos necesita y produce un recurso que queda disponible para
// los siguientes. La ejecución es secuencial y aborta en el primer error,
// así los pasos posteriores nunca corren sobre dependencias rotas.
type Chain struct {
	steps []step
	err   error
}

// NewChain crea una cadena vacía.
func NewChain() *Chain {
	return &Chain{}
}

// Step agrega un paso. needs debe referir a pasos ya agregados: una
// dependencia hacia adelante es un error de construcción que se reporta
// en Run.
func (c *Chain) Step(name string, needs []string, fn StepFunc) *Chain {
	if c.err != nil {
		return c
	}
	if name == "" {
		c.err = fmt.Errorf("scenario: paso sin nombre")
		return c
	}
	for _, s := range c.steps {
		if s.name == name {
			c.err = fmt.Errorf("scenario: paso duplicado %q", name)
			return c
		}
	}
	for _, need := range needs {
		if !c.has(need) {
			c.err = fmt.Errorf("scenario: el paso %q necesita %q, que no fue declarado antes", name, need)
			return c
		}
	}
	c.steps = append(c.steps, step{name: name, needs: needs, fn: fn})
	return c
}

func (c *Chain) has(name string) bool {
	for _, s := range c.steps {
		if s.name == name {
			return true
		}
	}
	return false
}

// Run ejecuta los pasos en orden de declaración. El primer error corta la
// cadena y se retorna envuelto con el nombre del paso; el bag parcial se
// retorna igual para diagnóstico.
func (c *Chain) Run(ctx context.Context) (*Bag, error) {
	bag := &Bag{values: map[string]any{}}
	if c.err != nil {
		return bag, c.err
	}
	for _, s := range c.steps {
		if err := ctx.Err(); err != nil {
			return bag, err
		}
		v, err := s.fn(ctx, bag)
		if err != nil {
			return bag, fmt.Errorf("paso %q: %w", s.name, err)
		}
		bag.Put(s.name, v)
	}
	return bag, nil
}
