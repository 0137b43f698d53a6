package tokens

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodec_SignParse(t *testing.T) {
	c := NewCodec([]byte("secret"), time.Hour)

	raw, err := c.Sign(Identity{ID: 7, Username: "alice", Role: "admin"})
	require.NoError(t, err)

	id, err := c.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, uint(7), id.ID)
	assert.Equal(t, "alice", id.Username)
	assert.Equal(t, "admin", id.Role)
}

func TestCodec_Expired(t *testing.T) {
	issued := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c := &Codec{Secret: []byte("secret"), TTL: time.Hour, Now: func() time.Time { return issued }}

	raw, err := c.Sign(Identity{ID: 1, Username: "bob", Role: "user"})
	require.NoError(t, err)

	c.Now = func() time.Time { return issued.Add(59 * time.Minute) }
	_, err = c.Parse(raw)
	require.NoError(t, err)

	c.Now = func() time.Time { return issued.Add(61 * time.Minute) }
	_, err = c.Parse(raw)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestCodec_WrongSecret(t *testing.T) {
	raw, err := NewCodec([]byte("one"), time.Hour).Sign(Identity{ID: 1, Username: "bob", Role: "user"})
	require.NoError(t, err)

	_, err = NewCodec([]byte("two"), time.Hour).Parse(raw)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestCodec_Tampered(t *testing.T) {
	c := NewCodec([]byte("secret"), time.Hour)
	raw, err := c.Sign(Identity{ID: 1, Username: "bob", Role: "user"})
	require.NoError(t, err)

	parts := strings.Split(raw, ".")
	require.Len(t, parts, 3)
	forged, err := NewCodec([]byte("secret"), time.Hour).Sign(Identity{ID: 1, Username: "bob", Role: "admin"})
	require.NoError(t, err)
	// payload from the admin token, signature from the user token
	mixed := parts[0] + "." + strings.Split(forged, ".")[1] + "." + parts[2]

	_, err = c.Parse(mixed)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestCodec_RejectsOtherAlgorithms(t *testing.T) {
	c := NewCodec([]byte("secret"), time.Hour)

	claims := Claims{
		User: Identity{ID: 1, Username: "eve", Role: "admin"},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = c.Parse(raw)
	require.ErrorIs(t, err, ErrInvalidToken)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = c.Parse(none)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestCodec_Garbage(t *testing.T) {
	_, err := NewCodec([]byte("secret"), time.Hour).Parse("not.a.jwt")
	require.ErrorIs(t, err, ErrInvalidToken)
}
