package scenario

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChainRunsInOrder(t *testing.T) {
	var order []string

	bag, err := NewChain().
		Step("uno", nil, func(context.Context, *Bag) (any, error) {
			order = append(order, "uno")
			return 1, nil
		}).
		Step("dos", []string{"uno"}, func(_ context.Context, b *Bag) (any, error) {
			order = append(order, "dos")
			n, err := From[int](b, "uno")
			if err != nil {
				return nil, err
			}
			return n + 1, nil
		}).
		Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"uno", "dos"}, order)

	n, err := From[int](bag, "dos")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestChainAbortsOnFirstError(t *testing.T) {
	boom := errors.New("boom")
	ran := false

	bag, err := NewChain().
		Step("falla", nil, func(context.Context, *Bag) (any, error) {
			return nil, boom
		}).
		Step("nunca", []string{"falla"}, func(context.Context, *Bag) (any, error) {
			ran = true
			return nil, nil
		}).
		Run(context.Background())

	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), `"falla"`, "el error nombra el paso")
	assert.False(t, ran, "los pasos posteriores no corren")
	assert.Nil(t, bag.Value("falla"))
}

func TestChainRejectsForwardDependency(t *testing.T) {
	_, err := NewChain().
		Step("a", []string{"z"}, func(context.Context, *Bag) (any, error) { return nil, nil }).
		Run(context.Background())
	assert.Error(t, err)
}

func TestChainRejectsDuplicateStep(t *testing.T) {
	_, err := NewChain().
		Step("a", nil, func(context.Context, *Bag) (any, error) { return 1, nil }).
		Step("a", nil, func(context.Context, *Bag) (any, error) { return 2, nil }).
		Run(context.Background())
	assert.Error(t, err)
}

func TestChainHonorsContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	_, err := NewChain().
		Step("primero", nil, func(context.Context, *Bag) (any, error) {
			cancel()
			return 1, nil
		}).
		Step("segundo", nil, func(context.Context, *Bag) (any, error) {
			t.Fatal("no debería ejecutarse tras cancel")
			return nil, nil
		}).
		Run(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestFromTypeMismatch(t *testing.T) {
	bag, err := NewChain().
		Step("n", nil, func(context.Context, *Bag) (any, error) { return 42, nil }).
		Run(context.Background())
	require.NoError(t, err)

	_, err = From[string](bag, "n")
	assert.Error(t, err)

	_, err = From[int](bag, "inexistente")
	assert.Error(t, err)
}
