package token

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linguastream/linguastream/internal/audio/domain"
)

func newTestCodec(t *testing.T) *Codec {
	t.Helper()

	c, err := NewCodec([]byte("unit-test-secret"))
	require.NoError(t, err)
	return c
}

func testGrant() domain.Grant {
	return domain.Grant{
		SubjectID: "user-123",
		CourseID:  "course-9",
		UnitID:    "unit-4",
		TrackID:   "track-77",
		Action:    domain.ActionStreamAudio,
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	c := newTestCodec(t)

	opaque, sealed, err := c.Issue(testGrant())
	require.NoError(t, err)
	require.NotEmpty(t, opaque)

	got, err := c.Parse(opaque)
	require.NoError(t, err)

	assert.Equal(t, "user-123", got.SubjectID)
	assert.Equal(t, "course-9", got.CourseID)
	assert.Equal(t, "unit-4", got.UnitID)
	assert.Equal(t, "track-77", got.TrackID)
	assert.Equal(t, domain.ActionStreamAudio, got.Action)
	assert.NotEmpty(t, got.Nonce)
	assert.Equal(t, got.IssuedAt+int64(TTL/time.Second), got.ExpiresAt)

	// The grant handed back to the issuer matches what the token carries.
	assert.Equal(t, sealed, got)

	assert.NoError(t, c.Validate(got, domain.ActionStreamAudio))
}

func TestCodec_TokensAreUnique(t *testing.T) {
	c := newTestCodec(t)

	a, _, err := c.Issue(testGrant())
	require.NoError(t, err)
	b, _, err := c.Issue(testGrant())
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestCodec_TamperDetection(t *testing.T) {
	c := newTestCodec(t)

	opaque, _, err := c.Issue(testGrant())
	require.NoError(t, err)

	raw, err := base64.RawURLEncoding.DecodeString(opaque)
	require.NoError(t, err)

	// Flipping any single byte must invalidate the whole token.
	for i := range raw {
		mutated := make([]byte, len(raw))
		copy(mutated, raw)
		mutated[i] ^= 0x01

		_, err := c.Parse(base64.RawURLEncoding.EncodeToString(mutated))
		assert.ErrorIs(t, err, ErrInvalidToken, "byte %d", i)
	}
}

func TestCodec_ParseRejectsGarbage(t *testing.T) {
	c := newTestCodec(t)

	for _, in := range []string{
		"",
		"not base64!!",
		"AAAA",
		base64.RawURLEncoding.EncodeToString([]byte("short")),
	} {
		_, err := c.Parse(in)
		assert.ErrorIs(t, err, ErrInvalidToken, "input %q", in)
	}
}

func TestCodec_DifferentSecretsDoNotInterop(t *testing.T) {
	a := newTestCodec(t)
	b, err := NewCodec([]byte("a different secret"))
	require.NoError(t, err)

	opaque, _, err := a.Issue(testGrant())
	require.NoError(t, err)

	_, err = b.Parse(opaque)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCodec_ValidateWrongAction(t *testing.T) {
	c := newTestCodec(t)

	opaque, _, err := c.Issue(testGrant())
	require.NoError(t, err)
	g, err := c.Parse(opaque)
	require.NoError(t, err)

	assert.ErrorIs(t, c.Validate(g, domain.ActionDeleteTrack), ErrWrongAction)
}

func TestCodec_ValidateExpired(t *testing.T) {
	c := newTestCodec(t)

	opaque, _, err := c.Issue(testGrant())
	require.NoError(t, err)
	g, err := c.Parse(opaque)
	require.NoError(t, err)

	c.now = func() time.Time { return time.Unix(g.ExpiresAt, 0).Add(time.Second) }
	assert.ErrorIs(t, c.Validate(g, domain.ActionStreamAudio), ErrExpired)
}

func TestCodec_ValidateClockSkew(t *testing.T) {
	c := newTestCodec(t)

	// Grant minted "in the future" relative to the validator's clock.
	c.now = func() time.Time { return time.Now().Add(10 * time.Minute) }
	opaque, _, err := c.Issue(testGrant())
	require.NoError(t, err)
	g, err := c.Parse(opaque)
	require.NoError(t, err)

	c.now = time.Now
	assert.ErrorIs(t, c.Validate(g, domain.ActionStreamAudio), ErrClockSkew)
}

func TestCodec_EmptySecret(t *testing.T) {
	_, err := NewCodec(nil)
	assert.Error(t, err)
}
