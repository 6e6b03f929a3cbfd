package scenario

import (
	"errors"
	"reflect"
	"testing"
)

// Must corta el test si la operación falló. Es el fail-fast estándar de
// los escenarios: un paso roto invalida todo lo que sigue.
func Must(t testing.TB, op string, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("%s: %v", op, err)
	}
}

// Shape valida que una respuesta tenga sus campos obligatorios poblados
// antes de que el escenario la use como dependencia. Falla nombrando el
// primer campo en cero.
func Shape(t testing.TB, what string, v any, fields ...string) {
	t.Helper()
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			t.Fatalf("%s: respuesta nil", what)
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		t.Fatalf("%s: Shape espera un struct, no %T", what, v)
	}
	for _, f := range fields {
		fv := rv.FieldByName(f)
		if !fv.IsValid() {
			t.Fatalf("%s: el campo %q no existe en %T", what, f, v)
		}
		if fv.IsZero() {
			t.Fatalf("%s: el campo %q vino vacío", what, f)
		}
	}
}

// NotZero valida que v no sea el cero de su tipo y lo retorna, para
// encadenar la validación con el uso.
func NotZero[T comparable](t testing.TB, what string, v T) T {
	t.Helper()
	var zero T
	if v == zero {
		t.Fatalf("%s: valor en cero", what)
	}
	return v
}

// ExpectError valida que la operación HAYA fallado. El contenido del error
// no se inspecciona: el contrato de los escenarios negativos es sólo que
// el servidor rechace. Si el error vino de la API se retorna el *CallError
// por si el test quiere mirar el status.
func ExpectError(t testing.TB, op string, err error) *CallError {
	t.Helper()
	if err == nil {
		t.Fatalf("%s: se esperaba un error y la operación tuvo éxito", op)
	}
	var callErr *CallError
	if errors.As(err, &callErr) {
		return callErr
	}
	return nil
}
