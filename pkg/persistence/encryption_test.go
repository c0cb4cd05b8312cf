package persistence_test

import (
	"crypto/rand"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loomcraft/vbed/pkg/machine"
	"github.com/loomcraft/vbed/pkg/persistence"
)

func generateKey(t *testing.T) []byte {
	t.Helper()
	k := make([]byte, 32)
	_, err := io.ReadFull(rand.Reader, k)
	require.NoError(t, err)
	return k
}

func workedSnapshot(t *testing.T) machine.Snapshot {
	t.Helper()
	cfg := machine.DefaultConfig()
	cfg.Width = 8
	m, err := machine.New(cfg)
	require.NoError(t, err)
	require.NoError(t, m.Execute(machine.BringInAt(2, machine.FrontNeedle(0), machine.Rightward)))
	require.NoError(t, m.Execute(machine.Tuck(machine.FrontNeedle(3), []int{2}, machine.Rightward)))
	return m.Snapshot()
}

func TestEncryptedRoundtrip(t *testing.T) {
	codec, err := persistence.NewEncrypted(nil, persistence.EncryptionConfig{ActiveKey: generateKey(t)})
	require.NoError(t, err)

	snap := workedSnapshot(t)
	data, err := codec.Encode(snap)
	require.NoError(t, err)

	// The stored bytes must not leak the machine state.
	assert.NotContains(t, string(data), "needles")
	assert.NotContains(t, string(data), "carriers")

	loaded, err := codec.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, snap, loaded)
}

func TestEncryptedKeyRotation(t *testing.T) {
	oldKey := generateKey(t)
	newKey := generateKey(t)

	oldCodec, err := persistence.NewEncrypted(nil, persistence.EncryptionConfig{ActiveKey: oldKey})
	require.NoError(t, err)

	snap := workedSnapshot(t)
	data, err := oldCodec.Encode(snap)
	require.NoError(t, err)

	// A codec rotated to a new active key still reads old ciphertext.
	rotated, err := persistence.NewEncrypted(nil, persistence.EncryptionConfig{
		ActiveKey:    newKey,
		FallbackKeys: [][]byte{oldKey},
	})
	require.NoError(t, err)

	loaded, err := rotated.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, snap, loaded)

	// Without the fallback the old ciphertext is unreadable.
	newOnly, err := persistence.NewEncrypted(nil, persistence.EncryptionConfig{ActiveKey: newKey})
	require.NoError(t, err)
	_, err = newOnly.Decode(data)
	assert.Error(t, err)
}

func TestEncryptedRejectsPlainData(t *testing.T) {
	codec, err := persistence.NewEncrypted(nil, persistence.EncryptionConfig{ActiveKey: generateKey(t)})
	require.NoError(t, err)

	plain, err := persistence.JSON{}.Encode(workedSnapshot(t))
	require.NoError(t, err)

	_, err = codec.Decode(plain)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "envelope")
}

func TestEncryptedRejectsTamperedCiphertext(t *testing.T) {
	codec, err := persistence.NewEncrypted(nil, persistence.EncryptionConfig{ActiveKey: generateKey(t)})
	require.NoError(t, err)

	data, err := codec.Encode(workedSnapshot(t))
	require.NoError(t, err)

	tampered := strings.Replace(string(data), `"encrypted":"`, `"encrypted":"AAAA`, 1)
	_, err = codec.Decode([]byte(tampered))
	assert.Error(t, err)
}

func TestNewEncryptedRejectsBadKeys(t *testing.T) {
	_, err := persistence.NewEncrypted(nil, persistence.EncryptionConfig{ActiveKey: []byte("short")})
	assert.Error(t, err)

	_, err = persistence.NewEncrypted(nil, persistence.EncryptionConfig{
		ActiveKey:    generateKey(t),
		FallbackKeys: [][]byte{[]byte("short")},
	})
	assert.Error(t, err)
}
