package kernel_test

import (
	"encoding/json"
	"testing"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUUID(t *testing.T) {
	t.Run("should create a new UUID", func(t *testing.T) {
		id := kernel.NewUUID()

		require.NoError(t, id.Validate())
		assert.Regexp(t, `^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[0-9a-f]{4}-[0-9a-f]{12}$`, id.String())
	})

	t.Run("should create unique UUIDs", func(t *testing.T) {
		assert.False(t, kernel.NewUUID().IsEqual(kernel.NewUUID()))
	})
}

func TestUUIDFromString(t *testing.T) {
	validUUID := "550e8400-e29b-41d4-a716-446655440000"

	t.Run("should accept standard textual forms", func(t *testing.T) {
		for _, in := range []string{
			validUUID,
			"{550e8400-e29b-41d4-a716-446655440000}",
			"urn:uuid:550e8400-e29b-41d4-a716-446655440000",
			"550e8400e29b41d4a716446655440000",
		} {
			id, err := kernel.UUIDFromString(in)

			require.NoError(t, err, in)
			assert.Equal(t, validUUID, id.String())
		}
	})

	t.Run("should reject malformed input as invalid value", func(t *testing.T) {
		for _, in := range []string{"", "not-a-uuid", "550e8400-e29b-41d4-a716", "zzze8400-e29b-41d4-a716-446655440000"} {
			_, err := kernel.UUIDFromString(in)

			require.ErrorIs(t, err, errs.ErrValueIsInvalid, in)
			assert.Contains(t, err.Error(), "invalid UUID format")
		}
	})

	t.Run("should reject the nil UUID", func(t *testing.T) {
		_, err := kernel.UUIDFromString("00000000-0000-0000-0000-000000000000")

		assert.Equal(t, kernel.ErrUUIDIsNotConstructed, err)
	})
}

func TestUUIDFromGoogle(t *testing.T) {
	raw := uuid.New()

	id, err := kernel.UUIDFromGoogle(raw)
	require.NoError(t, err)
	assert.Equal(t, raw, id.Google())

	_, err = kernel.UUIDFromGoogle(uuid.Nil)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestUUID_IsEqual(t *testing.T) {
	id1 := kernel.MustUUID("550e8400-e29b-41d4-a716-446655440000")
	id2 := kernel.MustUUID("550e8400-e29b-41d4-a716-446655440000")

	assert.True(t, id1.IsEqual(id2))
	assert.False(t, id1.IsEqual(kernel.NewUUID()))

	var zero1, zero2 kernel.UUID
	assert.True(t, zero1.IsEqual(zero2))
	assert.True(t, zero1.IsZero())
}

func TestUUID_Validate(t *testing.T) {
	var id kernel.UUID

	err := id.Validate()

	require.Error(t, err)
	assert.Equal(t, kernel.ErrUUIDIsNotConstructed, err)
}

func TestUUID_JSON(t *testing.T) {
	type payload struct {
		EntityID kernel.UUID `json:"entityId"`
	}

	t.Run("round_trips_as_string", func(t *testing.T) {
		in := payload{EntityID: kernel.MustUUID("550e8400-e29b-41d4-a716-446655440000")}

		b, err := json.Marshal(in)
		require.NoError(t, err)
		assert.JSONEq(t, `{"entityId":"550e8400-e29b-41d4-a716-446655440000"}`, string(b))

		var out payload
		require.NoError(t, json.Unmarshal(b, &out))
		assert.True(t, in.EntityID.IsEqual(out.EntityID))
	})

	t.Run("rejects_invalid_string", func(t *testing.T) {
		var out payload
		require.Error(t, json.Unmarshal([]byte(`{"entityId":"abc"}`), &out))
	})
}
