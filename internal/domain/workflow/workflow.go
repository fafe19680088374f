// Package workflow centraliza las máquinas de estado de aprobación de los documentos.
//
// Cada transición se identifica por (tipo de documento, estado actual, acción) y declara los
// roles que pueden ejecutarla y el estado destino. No hay saltos ni retrocesos: lo que no está
// en la tabla no se puede hacer.
package workflow

import (
	"fmt"
	"sort"

	"github.com/jhoicas/Swasthya-api/internal/domain"
	"github.com/jhoicas/Swasthya-api/internal/domain/entity"
)

// Action acción que un usuario ejecuta sobre un documento.
type Action string

const (
	ActionSubmit   Action = "submit"
	ActionVerify   Action = "verify"
	ActionApprove  Action = "approve"
	ActionIssue    Action = "issue"
	ActionComplete Action = "complete"
	ActionReject   Action = "reject"
)

// Transition una fila de la tabla.
type Transition struct {
	Kind   entity.DocKind
	From   string
	Action Action
	Roles  []string
	To     string
}

type key struct {
	kind   entity.DocKind
	from   string
	action Action
}

var (
	stores    = []string{entity.RoleStorekeeper, entity.RoleAdmin, entity.RoleSuperAdmin}
	approvers = []string{entity.RoleAdmin, entity.RoleApproval, entity.RoleSuperAdmin}
	accounts  = []string{entity.RoleAccount, entity.RoleSuperAdmin}
)

var table = []Transition{
	// Kharid Adesh: Pending → Pending Account → Account Verified → Generated
	{entity.KindPurchaseOrder, entity.StatusPending, ActionSubmit, stores, entity.StatusPendingAccount},
	{entity.KindPurchaseOrder, entity.StatusPending, ActionReject, stores, entity.StatusRejected},
	{entity.KindPurchaseOrder, entity.StatusPendingAccount, ActionVerify, accounts, entity.StatusAccountVerified},
	{entity.KindPurchaseOrder, entity.StatusPendingAccount, ActionReject, accounts, entity.StatusRejected},
	{entity.KindPurchaseOrder, entity.StatusAccountVerified, ActionApprove, approvers, entity.StatusGenerated},
	{entity.KindPurchaseOrder, entity.StatusAccountVerified, ActionReject, approvers, entity.StatusRejected},

	// Solicitud de entrada: un solo paso
	{entity.KindStockEntry, entity.StatusPending, ActionApprove, approvers, entity.StatusApproved},
	{entity.KindStockEntry, entity.StatusPending, ActionReject, approvers, entity.StatusRejected},

	// Nikasha
	{entity.KindIssueReport, entity.StatusPending, ActionIssue, stores, entity.StatusIssued},
	{entity.KindIssueReport, entity.StatusPending, ActionReject, stores, entity.StatusRejected},

	// Jinshi Firta
	{entity.KindReturn, entity.StatusPending, ActionVerify, stores, entity.StatusVerified},
	{entity.KindReturn, entity.StatusPending, ActionReject, stores, entity.StatusRejected},
	{entity.KindReturn, entity.StatusVerified, ActionApprove, approvers, entity.StatusApproved},
	{entity.KindReturn, entity.StatusVerified, ActionReject, approvers, entity.StatusRejected},

	// Mag Faram
	{entity.KindDemandForm, entity.StatusPending, ActionVerify, stores, entity.StatusVerified},
	{entity.KindDemandForm, entity.StatusPending, ActionReject, stores, entity.StatusRejected},
	{entity.KindDemandForm, entity.StatusVerified, ActionApprove, approvers, entity.StatusApproved},
	{entity.KindDemandForm, entity.StatusVerified, ActionReject, approvers, entity.StatusRejected},

	// Marmat
	{entity.KindMaintenance, entity.StatusPending, ActionApprove, approvers, entity.StatusApproved},
	{entity.KindMaintenance, entity.StatusPending, ActionReject, approvers, entity.StatusRejected},
	{entity.KindMaintenance, entity.StatusApproved, ActionComplete, stores, entity.StatusCompleted},

	// Dhuliyauna
	{entity.KindDisposal, entity.StatusPending, ActionApprove, approvers, entity.StatusApproved},
	{entity.KindDisposal, entity.StatusPending, ActionReject, approvers, entity.StatusRejected},
}

var index = buildIndex(table)

func buildIndex(rows []Transition) map[key]Transition {
	m := make(map[key]Transition, len(rows))
	for _, t := range rows {
		k := key{t.Kind, t.From, t.Action}
		if _, dup := m[k]; dup {
			panic(fmt.Sprintf("workflow: transición duplicada %s/%s/%s", t.Kind, t.From, t.Action))
		}
		m[k] = t
	}
	return m
}

// InitialStatus estado con el que se crea un documento del tipo dado.
// Los dakhila nacen finalizados (los genera la aprobación o son saldos iniciales).
func InitialStatus(kind entity.DocKind) string {
	if kind == entity.KindDakhila {
		return entity.StatusGenerated
	}
	return entity.StatusPending
}

// Next valida la transición y devuelve el estado destino.
//   - domain.ErrInvalidTransition si la acción no existe desde el estado actual.
//   - domain.ErrForbidden si el rol no puede ejecutarla.
func Next(kind entity.DocKind, current string, role string, action Action) (string, error) {
	t, ok := index[key{kind, current, action}]
	if !ok {
		return "", fmt.Errorf("%w: %s no admite %q desde %q", domain.ErrInvalidTransition, kind, action, current)
	}
	for _, r := range t.Roles {
		if r == role {
			return t.To, nil
		}
	}
	return "", fmt.Errorf("%w: el rol %q no puede ejecutar %q en %s", domain.ErrForbidden, role, action, kind)
}

// Allowed acciones que el rol puede ejecutar sobre un documento en el estado actual (ordenadas).
func Allowed(kind entity.DocKind, current string, role string) []Action {
	var out []Action
	for _, t := range table {
		if t.Kind != kind || t.From != current {
			continue
		}
		for _, r := range t.Roles {
			if r == role {
				out = append(out, t.Action)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// IsFinal indica si no hay ninguna transición que salga del estado.
func IsFinal(kind entity.DocKind, status string) bool {
	for _, t := range table {
		if t.Kind == kind && t.From == status {
			return false
		}
	}
	return true
}
