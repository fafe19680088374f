package entity

import "github.com/shopspring/decimal"

// DemandForm formulario de demanda (Mag Faram) presentado por el personal.
type DemandForm struct {
	Header
	RequestedBy string     `json:"requested_by"`
	Designation string     `json:"designation,omitempty"`
	Purpose     string     `json:"purpose,omitempty"`
	Items       []LineItem `json:"items"`
}

func (d *DemandForm) Kind() DocKind         { return KindDemandForm }
func (d *DemandForm) Head() *Header         { return &d.Header }
func (d *DemandForm) Lines() []LineItem     { return d.Items }
func (d *DemandForm) SetLines(l []LineItem) { d.Items = l }
func (d *DemandForm) Party() string         { return d.RequestedBy }

// PurchaseOrder orden de compra (Kharid Adesh).
type PurchaseOrder struct {
	Header
	VendorName    string     `json:"vendor_name"`
	VendorPAN     string     `json:"vendor_pan,omitempty"`
	VendorAddress string     `json:"vendor_address,omitempty"`
	DemandRef     string     `json:"demand_ref,omitempty"`
	DeliveryDate  string     `json:"delivery_date,omitempty"`
	Items         []LineItem `json:"items"`
}

func (p *PurchaseOrder) Kind() DocKind         { return KindPurchaseOrder }
func (p *PurchaseOrder) Head() *Header         { return &p.Header }
func (p *PurchaseOrder) Lines() []LineItem     { return p.Items }
func (p *PurchaseOrder) SetLines(l []LineItem) { p.Items = l }
func (p *PurchaseOrder) Party() string         { return p.VendorName }

// IssueReport informe de salida (Nikasha Pratibedan): bienes entregados a una persona.
type IssueReport struct {
	Header
	Recipient   string     `json:"recipient"`
	Designation string     `json:"designation,omitempty"`
	DemandRef   string     `json:"demand_ref,omitempty"`
	Items       []LineItem `json:"items"`
}

func (r *IssueReport) Kind() DocKind         { return KindIssueReport }
func (r *IssueReport) Head() *Header         { return &r.Header }
func (r *IssueReport) Lines() []LineItem     { return r.Items }
func (r *IssueReport) SetLines(l []LineItem) { r.Items = l }
func (r *IssueReport) Party() string         { return r.Recipient }

// IsIssued indica si los bienes ya salieron del almacén.
func (r IssueReport) IsIssued() bool { return r.Status == StatusIssued }

// StockEntryRequest solicitud de entrada al almacén; al aprobarse genera un DakhilaPratibedan.
type StockEntryRequest struct {
	Header
	VendorName       string     `json:"vendor_name"`
	InvoiceNo        string     `json:"invoice_no,omitempty"`
	PurchaseOrderRef string     `json:"purchase_order_ref,omitempty"`
	StoreID          string     `json:"store_id,omitempty"`
	DakhilaRef       string     `json:"dakhila_ref,omitempty"` // dakhila generado al aprobar
	Items            []LineItem `json:"items"`
}

func (s *StockEntryRequest) Kind() DocKind         { return KindStockEntry }
func (s *StockEntryRequest) Head() *Header         { return &s.Header }
func (s *StockEntryRequest) Lines() []LineItem     { return s.Items }
func (s *StockEntryRequest) SetLines(l []LineItem) { s.Items = l }
func (s *StockEntryRequest) Party() string         { return s.VendorName }

// DakhilaPratibedan informe de entrada finalizado. Fuente de las entradas (Income/Opening) del Jinshi Khata.
type DakhilaPratibedan struct {
	Header
	Source     string     `json:"source"` // Opening | Purchase
	VendorName string     `json:"vendor_name,omitempty"`
	InvoiceNo  string     `json:"invoice_no,omitempty"`
	RequestRef string     `json:"request_ref,omitempty"` // ID de la StockEntryRequest de origen
	StoreID    string     `json:"store_id,omitempty"`
	Items      []LineItem `json:"items"`
}

func (d *DakhilaPratibedan) Kind() DocKind         { return KindDakhila }
func (d *DakhilaPratibedan) Head() *Header         { return &d.Header }
func (d *DakhilaPratibedan) Lines() []LineItem     { return d.Items }
func (d *DakhilaPratibedan) SetLines(l []LineItem) { d.Items = l }
func (d *DakhilaPratibedan) Party() string         { return d.VendorName }

// ReturnEntry devolución de bienes al almacén (Jinshi Firta).
type ReturnEntry struct {
	Header
	ReturnedBy  string     `json:"returned_by"`
	Designation string     `json:"designation,omitempty"`
	Reason      string     `json:"reason,omitempty"`
	Items       []LineItem `json:"items"`
}

func (r *ReturnEntry) Kind() DocKind         { return KindReturn }
func (r *ReturnEntry) Head() *Header         { return &r.Header }
func (r *ReturnEntry) Lines() []LineItem     { return r.Items }
func (r *ReturnEntry) SetLines(l []LineItem) { r.Items = l }
func (r *ReturnEntry) Party() string         { return r.ReturnedBy }

// IsApproved devolución aprobada por la autoridad.
func (r ReturnEntry) IsApproved() bool { return r.Status == StatusApproved }

// CountsAsReceived devolución que ya cuenta como entrada en el Jinshi Khata (verificada o aprobada).
func (r ReturnEntry) CountsAsReceived() bool {
	return r.Status == StatusApproved || r.Status == StatusVerified
}

// MaintenanceOrder orden de reparación (Marmat Adesh). Items = repuestos / trabajos.
type MaintenanceOrder struct {
	Header
	AssetName     string          `json:"asset_name"`
	AssetCode     string          `json:"asset_code,omitempty"`
	Problem       string          `json:"problem,omitempty"`
	RequestedBy   string          `json:"requested_by,omitempty"`
	RepairerName  string          `json:"repairer_name,omitempty"`
	EstimatedCost decimal.Decimal `json:"estimated_cost"`
	Items         []LineItem      `json:"items"`
}

func (m *MaintenanceOrder) Kind() DocKind         { return KindMaintenance }
func (m *MaintenanceOrder) Head() *Header         { return &m.Header }
func (m *MaintenanceOrder) Lines() []LineItem     { return m.Items }
func (m *MaintenanceOrder) SetLines(l []LineItem) { m.Items = l }
func (m *MaintenanceOrder) Party() string         { return m.AssetName }

// Métodos de baja.
const (
	DisposalAuction  = "auction"
	DisposalDestroy  = "destroy"
	DisposalTransfer = "transfer"
)

// Disposal baja de bienes (Dhuliyauna / lilam).
type Disposal struct {
	Header
	Method string     `json:"method"`
	Reason string     `json:"reason,omitempty"`
	Items  []LineItem `json:"items"`
}

func (d *Disposal) Kind() DocKind         { return KindDisposal }
func (d *Disposal) Head() *Header         { return &d.Header }
func (d *Disposal) Lines() []LineItem     { return d.Items }
func (d *Disposal) SetLines(l []LineItem) { d.Items = l }
func (d *Disposal) Party() string         { return d.Method }
