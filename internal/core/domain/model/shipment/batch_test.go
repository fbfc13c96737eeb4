package shipment_test

import (
	"testing"
	"time"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/shipment"
	"shopfloor/internal/core/domain/model/workflow"
	"shopfloor/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var createdAt = time.Date(2024, 3, 4, 7, 30, 0, 0, time.UTC)

func TestNewBatch(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		b, err := shipment.NewBatch(kernel.NewUUID(), "PV-88", "10", "ACME", 4, createdAt)

		require.NoError(t, err)
		require.NoError(t, b.Validate())
		assert.Equal(t, shipment.Separacao, b.Status())
		assert.Equal(t, kernel.ShipmentBatch, b.Ref().Kind)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := shipment.NewBatch(kernel.NewUUID(), "", "10", " ", 0, createdAt)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "customer")
	})
}

func TestBatch_Advance(t *testing.T) {
	b, err := shipment.NewBatch(kernel.NewUUID(), "PV-88", "10", "ACME", 4, createdAt)
	require.NoError(t, err)

	_, err = b.Advance("", nil)
	require.NoError(t, err)
	assert.Equal(t, shipment.Conferencia, b.Status())

	_, err = b.Advance("", []workflow.Stage{shipment.Conferencia})
	var gv *errs.GuardViolationError
	require.ErrorAs(t, err, &gv)
	assert.Equal(t, shipment.ConditionNoOpenSequence, gv.Condition)

	from, err := b.Advance("", nil)
	require.NoError(t, err)
	assert.Equal(t, shipment.Conferencia, from)
	assert.True(t, b.IsClosed())

	_, err = b.Advance(shipment.Cancelada, nil)
	assert.Equal(t, errs.ErrEntityIsClosed, err)
}
