package scenario

import (
	"context"
	"fmt"

	"github.com/kasadel/mallcore/internal/http/dto"
)

// Actor es una identidad de test con su conexión ya autenticada.
type Actor struct {
	*Conn

	ID       string
	Role     string
	Email    string
	Name     string
	Password string

	RefreshToken string
}

// Join registra un actor nuevo del rol dado con identidad aleatoria y
// retorna la conexión autenticada resultante.
func Join(ctx context.Context, conn *Conn, role string) (*Actor, error) {
	email := RandomEmail()
	pw := RandomPassword()
	name := RandomName()

	var sess dto.Session
	err := conn.Post(ctx, "/v1/auth/"+role+"/join", dto.JoinRequest{
		Email:    email,
		Name:     name,
		Nickname: RandomNickname(),
		Password: pw,
	}, &sess)
	if err != nil {
		return nil, fmt.Errorf("join %s: %w", role, err)
	}
	return &Actor{
		Conn:         conn.WithToken(sess.Token.Access),
		ID:           sess.Actor.ID,
		Role:         role,
		Email:        email,
		Name:         name,
		Password:     pw,
		RefreshToken: sess.Token.Refresh,
	}, nil
}

// Atajos por rol para los escenarios que leen mejor con el rol en el
// nombre que como argumento.
func JoinAdmin(ctx context.Context, conn *Conn) (*Actor, error)  { return Join(ctx, conn, "admin") }
func JoinSeller(ctx context.Context, conn *Conn) (*Actor, error) { return Join(ctx, conn, "seller") }
func JoinBuyer(ctx context.Context, conn *Conn) (*Actor, error)  { return Join(ctx, conn, "buyer") }

// Login abre sesión con credenciales existentes.
func Login(ctx context.Context, conn *Conn, role, email, password string) (*Actor, error) {
	var sess dto.Session
	err := conn.Post(ctx, "/v1/auth/"+role+"/login", dto.LoginRequest{
		Email:    email,
		Password: password,
	}, &sess)
	if err != nil {
		return nil, fmt.Errorf("login %s: %w", role, err)
	}
	return &Actor{
		Conn:         conn.WithToken(sess.Token.Access),
		ID:           sess.Actor.ID,
		Role:         role,
		Email:        email,
		Password:     password,
		RefreshToken: sess.Token.Refresh,
	}, nil
}

// Relogin vuelve a autenticar al actor con sus credenciales guardadas.
// Sirve para retomar una identidad después de operar con otra.
func (a *Actor) Relogin(ctx context.Context) error {
	fresh, err := Login(ctx, &Conn{BaseURL: a.BaseURL, Client: a.Client}, a.Role, a.Email, a.Password)
	if err != nil {
		return err
	}
	a.Conn = fresh.Conn
	a.RefreshToken = fresh.RefreshToken
	return nil
}

// Refresh rota el refresh token del actor y actualiza su access token.
func (a *Actor) Refresh(ctx context.Context) error {
	var sess dto.Session
	err := a.Conn.Post(ctx, "/v1/auth/"+a.Role+"/refresh", dto.RefreshRequest{
		RefreshToken: a.RefreshToken,
	}, &sess)
	if err != nil {
		return fmt.Errorf("refresh %s: %w", a.Role, err)
	}
	a.Conn = a.Conn.WithToken(sess.Token.Access)
	a.RefreshToken = sess.Token.Refresh
	return nil
}

// Me consulta el perfil del actor autenticado.
func (a *Actor) Me(ctx context.Context) (*dto.Actor, error) {
	var out dto.Actor
	if err := a.Get(ctx, "/v1/auth/me", &out); err != nil {
		return nil, err
	}
	return &out, nil
}
