package billing

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	masterdata "nebenkosten/internal/masterdata/domain"
)

// DocumentMeta carries presentation settings for rendered statements.
type DocumentMeta struct {
	Title        string
	LandlordName string
	FooterNote   string
	Currency     string
}

const statementHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{.Meta.Title}}</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 40px; }
        .header { text-align: center; margin-bottom: 30px; }
        .info { margin-bottom: 20px; }
        .total { margin-top: 30px; font-weight: bold; }
        .footer { margin-top: 40px; font-size: 12px; color: #6b7280; }
    </style>
</head>
<body>
    <div class="header">
        <h1>{{.Meta.Title}}</h1>
        {{if .Meta.LandlordName}}<p>{{.Meta.LandlordName}}</p>{{end}}
        <p>Abrechnungszeitraum: {{formatDate .PeriodStart}} bis {{formatDate .PeriodEnd}}</p>
    </div>

    <div class="info">
        <h2>Mieter: {{.TenantName}}</h2>
        <p><strong>Personen:</strong> {{.Persons}}</p>
        <p><strong>Wohnfl&auml;che:</strong> {{formatArea .LivingAreaM2}} m&sup2;</p>
    </div>

    <div class="total">
        <p>Gesamtbetrag: {{formatAmount .Total}} {{.Meta.Currency}}</p>
    </div>

    {{if .Meta.FooterNote}}<div class="footer">{{.Meta.FooterNote}}</div>{{end}}
</body>
</html>
`

var statementTemplate = template.Must(template.New("statement").Funcs(template.FuncMap{
	"formatDate":   func(t time.Time) string { return t.Format("2006-01-02") },
	"formatAmount": func(v float64) string { return fmt.Sprintf("%.2f", v) },
	"formatArea":   func(v float64) string { return fmt.Sprintf("%.1f", v) },
}).Parse(statementHTMLTemplate))

// ComposeStatement renders the statement document and packages the result
// for persistence. The living area comes from the tenant's own property
// unit, which is not necessarily the unit the billing period references; a
// tenant who moved between units keeps the area of the unit they occupy
// now. The generation timestamp is UTC at second precision. Composing never
// touches existing statements.
func ComposeStatement(period BillingPeriod, tenant masterdata.Tenant, tenantUnit masterdata.PropertyUnit, total float64, meta DocumentMeta, now time.Time) (BillingStatement, error) {
	if meta.Title == "" {
		meta.Title = "Nebenkostenabrechnung"
	}
	if meta.Currency == "" {
		meta.Currency = "EUR"
	}
	rounded := RoundAmount(total)

	data := struct {
		Meta         DocumentMeta
		PeriodStart  time.Time
		PeriodEnd    time.Time
		TenantName   string
		Persons      int
		LivingAreaM2 float64
		Total        float64
	}{
		Meta:         meta,
		PeriodStart:  period.StartDate,
		PeriodEnd:    period.EndDate,
		TenantName:   tenant.Name,
		Persons:      tenant.NumberOfPersons,
		LivingAreaM2: tenantUnit.LivingAreaM2,
		Total:        rounded,
	}

	var buf bytes.Buffer
	if err := statementTemplate.Execute(&buf, data); err != nil {
		return BillingStatement{}, err
	}

	return BillingStatement{
		BillingPeriodID: period.ID,
		TenantID:        tenant.ID,
		TotalAmount:     rounded,
		GeneratedAt:     now.UTC().Truncate(time.Second),
		Document:        buf.String(),
	}, nil
}
