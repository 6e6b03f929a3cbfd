// Package scenario es un toolkit para escribir tests e2e contra la API:
// conexiones autenticadas por actor, armado de cadenas de recursos
// dependientes, validación de respuestas y helpers de datos aleatorios.
package scenario

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Conn es una conexión a la API con (opcionalmente) un access token.
// Es barata de clonar: cambiar de actor es tomar otra Conn.
type Conn struct {
	BaseURL string
	Client  *http.Client
	Token   string
}

// NewConn crea una conexión anónima contra baseURL.
func NewConn(baseURL string) *Conn {
	return &Conn{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// WithToken retorna una copia de la conexión autenticada con token.
// La conexión original no se modifica: sirve para cambiar de identidad
// dentro de un mismo escenario.
func (c *Conn) WithToken(token string) *Conn {
	clone := *c
	clone.Token = token
	return &clone
}

// CallError es el error de una llamada que respondió fuera de 2xx.
type CallError struct {
	Status  int
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail"`
}

func (e *CallError) Error() string {
	return fmt.Sprintf("api: status %d code=%s message=%q", e.Status, e.Code, e.Message)
}

// Call ejecuta method path con body JSON (nil para sin body) y decodifica
// la respuesta 2xx en out (nil para descartarla). Respuestas fuera de 2xx
// retornan *CallError.
func (c *Conn) Call(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("scenario: serializar body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		callErr := &CallError{Status: resp.StatusCode}
		// El body de error puede no ser JSON (proxies, timeouts).
		if err := json.Unmarshal(raw, callErr); err != nil {
			callErr.Message = strings.TrimSpace(string(raw))
		}
		return callErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("scenario: decodificar respuesta de %s %s: %w", method, path, err)
	}
	return nil
}

// Get es azúcar para Call GET.
func (c *Conn) Get(ctx context.Context, path string, out any) error {
	return c.Call(ctx, http.MethodGet, path, nil, out)
}

// Post es azúcar para Call POST.
func (c *Conn) Post(ctx context.Context, path string, body, out any) error {
	return c.Call(ctx, http.MethodPost, path, body, out)
}

// Delete es azúcar para Call DELETE.
func (c *Conn) Delete(ctx context.Context, path string) error {
	return c.Call(ctx, http.MethodDelete, path, nil, nil)
}
