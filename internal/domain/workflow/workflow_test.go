package workflow_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Swasthya-api/internal/domain"
	"github.com/jhoicas/Swasthya-api/internal/domain/entity"
	"github.com/jhoicas/Swasthya-api/internal/domain/workflow"
)

func TestNext_OrdenDeCompraCompleta(t *testing.T) {
	steps := []struct {
		role   string
		action workflow.Action
		want   string
	}{
		{entity.RoleStorekeeper, workflow.ActionSubmit, entity.StatusPendingAccount},
		{entity.RoleAccount, workflow.ActionVerify, entity.StatusAccountVerified},
		{entity.RoleApproval, workflow.ActionApprove, entity.StatusGenerated},
	}
	status := workflow.InitialStatus(entity.KindPurchaseOrder)
	require.Equal(t, entity.StatusPending, status)
	for _, s := range steps {
		next, err := workflow.Next(entity.KindPurchaseOrder, status, s.role, s.action)
		require.NoError(t, err, "%s %s desde %s", s.role, s.action, status)
		assert.Equal(t, s.want, next)
		status = next
	}
	assert.True(t, workflow.IsFinal(entity.KindPurchaseOrder, status))
}

func TestNext_NoSePuedeSaltarEstados(t *testing.T) {
	_, err := workflow.Next(entity.KindPurchaseOrder, entity.StatusPending, entity.RoleAdmin, workflow.ActionApprove)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = workflow.Next(entity.KindPurchaseOrder, entity.StatusGenerated, entity.RoleSuperAdmin, workflow.ActionReject)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "los estados finales no retroceden")
}

func TestNext_RolIncorrecto(t *testing.T) {
	_, err := workflow.Next(entity.KindPurchaseOrder, entity.StatusPendingAccount, entity.RoleStorekeeper, workflow.ActionVerify)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = workflow.Next(entity.KindStockEntry, entity.StatusPending, entity.RoleStorekeeper, workflow.ActionApprove)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestNext_SolicitudDeEntrada(t *testing.T) {
	for _, role := range []string{entity.RoleAdmin, entity.RoleSuperAdmin, entity.RoleApproval} {
		next, err := workflow.Next(entity.KindStockEntry, entity.StatusPending, role, workflow.ActionApprove)
		require.NoError(t, err, role)
		assert.Equal(t, entity.StatusApproved, next)

		next, err = workflow.Next(entity.KindStockEntry, entity.StatusPending, role, workflow.ActionReject)
		require.NoError(t, err, role)
		assert.Equal(t, entity.StatusRejected, next)
	}
}

func TestAllowed(t *testing.T) {
	assert.Equal(t,
		[]workflow.Action{workflow.ActionApprove, workflow.ActionReject},
		workflow.Allowed(entity.KindReturn, entity.StatusVerified, entity.RoleApproval))
	assert.Empty(t, workflow.Allowed(entity.KindReturn, entity.StatusPending, entity.RoleStaff))
}

func TestInitialStatus(t *testing.T) {
	assert.Equal(t, entity.StatusGenerated, workflow.InitialStatus(entity.KindDakhila))
	assert.True(t, workflow.IsFinal(entity.KindDakhila, entity.StatusGenerated))
	assert.False(t, workflow.IsFinal(entity.KindMaintenance, entity.StatusApproved))
}
