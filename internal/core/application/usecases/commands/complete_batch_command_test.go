package commands_test

import (
	"testing"

	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCompleteBatchCommand(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		cmd, err := commands.NewCompleteBatchCommand(testBatchID, "ops")

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Equal(t, testBatchID, cmd.BatchID())
		assert.Equal(t, "ops", cmd.Operator())
	})

	t.Run("batch_id_is_required", func(t *testing.T) {
		_, err := commands.NewCompleteBatchCommand("", "ops")

		require.ErrorIs(t, err, commands.ErrBatchIDIsRequired)
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var cmd commands.CompleteBatchCommand

		require.ErrorIs(t, cmd.Validate(), commands.ErrCompleteBatchCommandIsNotConstructed)
	})
}

func TestNewRecordBatchUploadCommand(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		cmd, err := commands.NewRecordBatchUploadCommand(testBatchID, false, "rejected")

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Equal(t, testBatchID, cmd.BatchID())
		assert.False(t, cmd.Succeeded())
		assert.Equal(t, "rejected", cmd.Remarks())
	})

	t.Run("batch_id_is_required", func(t *testing.T) {
		_, err := commands.NewRecordBatchUploadCommand("", true, "")

		require.ErrorIs(t, err, commands.ErrBatchIDIsRequired)
	})
}
