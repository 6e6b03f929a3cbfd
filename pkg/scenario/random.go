package scenario

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	mrand "math/rand/v2"
	"strings"
)

// token retorna n bytes aleatorios en hex (2n caracteres).
func token(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// RandomEmail genera un email único con plus-addressing, de modo que todos
// los correos de un run caen en la misma casilla real.
func RandomEmail() string {
	return fmt.Sprintf("qa+%s@mallcore.dev", token(6))
}

// RandomName genera un nombre de persona plausible y único.
func RandomName() string {
	first := []string{"Ana", "Bruno", "Carla", "Diego", "Elena", "Franco", "Gala", "Hugo"}
	last := []string{"Acosta", "Benítez", "Castro", "Duarte", "Esposito", "Funes", "Gómez", "Herrera"}
	return fmt.Sprintf("%s %s %s",
		first[mrand.IntN(len(first))],
		last[mrand.IntN(len(last))],
		token(3),
	)
}

// RandomNickname genera un alias corto.
func RandomNickname() string {
	return "nick-" + token(4)
}

// RandomPassword genera una contraseña válida para join.
func RandomPassword() string {
	return "pw-" + token(8)
}

// RandomCode genera un código identificatorio (canales, secciones).
func RandomCode(prefix string) string {
	return prefix + "-" + token(4)
}

// RandomTitle genera un título corto.
func RandomTitle() string {
	return "Consulta " + token(4)
}

// RandomParagraph genera texto de relleno de algunas oraciones.
func RandomParagraph() string {
	sentences := []string{
		"El producto llegó en perfectas condiciones.",
		"Quisiera saber si hay stock en otro color.",
		"La entrega fue más rápida de lo esperado.",
		"Necesito la factura a nombre de mi empresa.",
		"El talle corresponde a la tabla publicada.",
	}
	n := 2 + mrand.IntN(3)
	var sb strings.Builder
	for i := 0; i < n; i++ {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(sentences[mrand.IntN(len(sentences))])
	}
	sb.WriteString(" [" + token(3) + "]")
	return sb.String()
}

// RandomPrice genera un precio en centavos entre 1.00 y 500.00.
func RandomPrice() int64 {
	return int64(100 + mrand.IntN(49900))
}

// RandomQuantity genera una cantidad chica, 1..5.
func RandomQuantity() int64 {
	return int64(1 + mrand.IntN(5))
}
