package reports

import (
	"github.com/jhoicas/Swasthya-api/internal/domain/entity"
	"github.com/jhoicas/Swasthya-api/internal/domain/inventory"
	"github.com/jhoicas/Swasthya-api/internal/domain/workflow"
)

// Field par etiqueta/valor de la cabecera del impreso.
type Field struct {
	Label string
	Value string
}

// Signature bloque de firma: quién hizo cada paso del flujo.
type Signature struct {
	Role string
	Name string
	Date string
}

// DocumentView todo lo que necesita el impreso de un documento, sin depender de su tipo concreto.
type DocumentView struct {
	Office     string
	Title      string
	Kind       entity.DocKind
	Header     entity.Header
	Fields     []Field
	Lines      []entity.LineItem
	Spec       inventory.FormSpec
	Totals     inventory.Totals
	Signatures []Signature
}

var titles = map[entity.DocKind]string{
	entity.KindDemandForm:    "Mag Faram",
	entity.KindPurchaseOrder: "Kharid Adesh",
	entity.KindIssueReport:   "Nikasha Pratibedan",
	entity.KindStockEntry:    "Jinshi Dakhila Anurodh",
	entity.KindDakhila:       "Dakhila Pratibedan",
	entity.KindReturn:        "Jinshi Firta Faram",
	entity.KindMaintenance:   "Marmat Adesh",
	entity.KindDisposal:      "Jinshi Dhuliyauna",
}

// Title nombre del formulario impreso.
func Title(kind entity.DocKind) string {
	if t, ok := titles[kind]; ok {
		return t
	}
	return string(kind)
}

// ViewOf arma la vista de impresión del documento.
func ViewOf(office string, doc entity.Document) DocumentView {
	h := *doc.Head()
	lines := doc.Lines()
	v := DocumentView{
		Office: office,
		Title:  Title(doc.Kind()),
		Kind:   doc.Kind(),
		Header: h,
		Lines:  lines,
		Spec:   inventory.SpecFor(doc.Kind()),
		Totals: inventory.Footer(lines),
	}
	add := func(label, value string) {
		if value != "" {
			v.Fields = append(v.Fields, Field{label, value})
		}
	}

	switch d := doc.(type) {
	case *entity.DemandForm:
		add("Requested by", d.RequestedBy)
		add("Designation", d.Designation)
		add("Purpose", d.Purpose)
	case *entity.PurchaseOrder:
		add("Vendor", d.VendorName)
		add("PAN", d.VendorPAN)
		add("Address", d.VendorAddress)
		add("Demand ref", d.DemandRef)
		add("Delivery date", d.DeliveryDate)
	case *entity.IssueReport:
		add("Recipient", d.Recipient)
		add("Designation", d.Designation)
		add("Demand ref", d.DemandRef)
	case *entity.StockEntryRequest:
		add("Vendor", d.VendorName)
		add("Invoice no", d.InvoiceNo)
		add("Purchase order", d.PurchaseOrderRef)
		add("Dakhila", d.DakhilaRef)
	case *entity.DakhilaPratibedan:
		add("Source", d.Source)
		add("Vendor", d.VendorName)
		add("Invoice no", d.InvoiceNo)
	case *entity.ReturnEntry:
		add("Returned by", d.ReturnedBy)
		add("Designation", d.Designation)
		add("Reason", d.Reason)
	case *entity.MaintenanceOrder:
		add("Asset", d.AssetName)
		add("Asset code", d.AssetCode)
		add("Problem", d.Problem)
		add("Requested by", d.RequestedBy)
		add("Repairer", d.RepairerName)
		add("Estimated cost", inventory.Format2(d.EstimatedCost))
	case *entity.Disposal:
		add("Method", d.Method)
		add("Reason", d.Reason)
	}
	add("Remarks", h.Remarks)

	for _, c := range h.History {
		if c.To == entity.StatusRejected {
			continue
		}
		v.Signatures = append(v.Signatures, Signature{
			Role: signatureRole(c.Action),
			Name: c.ByName,
			Date: c.At.Format("2006-01-02"),
		})
	}
	return v
}

func signatureRole(action string) string {
	switch workflow.Action(action) {
	case workflow.ActionSubmit, workflow.ActionIssue, workflow.ActionComplete:
		return "Storekeeper"
	case workflow.ActionVerify:
		return "Verified by"
	case workflow.ActionApprove:
		return "Approved by"
	}
	return action
}
